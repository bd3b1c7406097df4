package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	dbm "tripflow/internal/models/db_models"
	"tripflow/internal/models/request_models"
	mem "tripflow/pkg/memcache"
	"tripflow/pkg/utils"
)

func registeredAccount(t *testing.T, name, email, password string) (*fakeAccountRepo, *dbm.Account) {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	account := &dbm.Account{Name: name, Email: email, PasswordHash: hash, Role: "user"}
	repo := newFakeAccountRepo()
	require.NoError(t, repo.Insert(context.Background(), account))
	return repo, account
}

func TestLogin(t *testing.T) {
	repo, account := registeredAccount(t, "Ana", "ana@example.com", "sekret99")
	service := NewAccountService(repo, mem.NewResetTokens(), &fakeMailService{})

	ctx := context.Background()

	resp, err := service.Login(ctx, request_models.LoginRequest{Email: "ana@example.com", Password: "sekret99"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, account.ID.String(), resp.Account.ID)
	require.Equal(t, "ana@example.com", resp.Account.Email)

	_, err = service.Login(ctx, request_models.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = service.Login(ctx, request_models.LoginRequest{Email: "ghost@example.com", Password: "sekret99"})
	require.ErrorIs(t, err, utils.ErrAccountNotFound)
}

func TestCreateAccount(t *testing.T) {
	repo := newFakeAccountRepo()
	service := NewAccountService(repo, mem.NewResetTokens(), &fakeMailService{})

	ctx := context.Background()

	err := service.CreateAccount(ctx, request_models.SignUpRequest{
		Name:     "Ben",
		Email:    "ben@example.com",
		Password: "sekret99",
	})
	require.NoError(t, err)
	require.Len(t, repo.inserted, 1)
	// The hash goes to storage, never the password itself.
	require.NotEqual(t, "sekret99", repo.inserted[0].PasswordHash)
	require.Equal(t, "user", repo.inserted[0].Role)

	err = service.CreateAccount(ctx, request_models.SignUpRequest{
		Name:     "Ben again",
		Email:    "ben@example.com",
		Password: "other999",
	})
	require.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestRequestPasswordResetUnknownEmailStaysQuiet(t *testing.T) {
	repo := newFakeAccountRepo()
	mail := &fakeMailService{}
	service := NewAccountService(repo, mem.NewResetTokens(), mail)

	err := service.RequestPasswordReset(context.Background(), request_models.RequestPasswordResetRequest{
		Email: "nobody@example.com",
	})
	require.NoError(t, err)
	require.Empty(t, mail.resetTo)
}

func TestPasswordResetRoundTrip(t *testing.T) {
	repo, account := registeredAccount(t, "Ana", "ana@example.com", "oldpass1")
	tokens := mem.NewResetTokens()
	mail := &fakeMailService{}
	service := NewAccountService(repo, tokens, mail)

	ctx := context.Background()

	err := service.RequestPasswordReset(ctx, request_models.RequestPasswordResetRequest{Email: "ana@example.com"})
	require.NoError(t, err)
	require.Equal(t, []string{"ana@example.com"}, mail.resetTo)
	require.Len(t, mail.resetTokens, 1)
	token := mail.resetTokens[0]
	require.NotEmpty(t, token)

	err = service.ConfirmPasswordReset(ctx, request_models.ConfirmPasswordResetRequest{
		Email:       "ana@example.com",
		Token:       token,
		NewPassword: "newpass1",
	})
	require.NoError(t, err)
	require.NoError(t, utils.ComparePasswords(repo.updatedHash[account.ID.String()], "newpass1"))

	// Tokens are single-use.
	err = service.ConfirmPasswordReset(ctx, request_models.ConfirmPasswordResetRequest{
		Email:       "ana@example.com",
		Token:       token,
		NewPassword: "again999",
	})
	require.ErrorIs(t, err, utils.ErrInvalidResetToken)
}

func TestConfirmPasswordResetWrongEmail(t *testing.T) {
	repo, _ := registeredAccount(t, "Ana", "ana@example.com", "oldpass1")
	tokens := mem.NewResetTokens()
	mail := &fakeMailService{}
	service := NewAccountService(repo, tokens, mail)

	ctx := context.Background()

	err := service.RequestPasswordReset(ctx, request_models.RequestPasswordResetRequest{Email: "ana@example.com"})
	require.NoError(t, err)

	err = service.ConfirmPasswordReset(ctx, request_models.ConfirmPasswordResetRequest{
		Email:       "mallory@example.com",
		Token:       mail.resetTokens[0],
		NewPassword: "stolen99",
	})
	require.ErrorIs(t, err, utils.ErrInvalidResetToken)
	require.Empty(t, repo.updatedHash)
}

func TestGetProfile(t *testing.T) {
	repo, account := registeredAccount(t, "Ana", "ana@example.com", "sekret99")
	service := NewAccountService(repo, mem.NewResetTokens(), &fakeMailService{})

	resp, err := service.GetProfile(context.Background(), account.ID.String())
	require.NoError(t, err)
	require.Equal(t, "Ana", resp.Name)

	_, err = service.GetProfile(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, utils.ErrAccountNotFound)
}
