package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"tripflow/internal/models/db_models"
	"tripflow/internal/models/request_models"
	"tripflow/internal/models/response_models"
	"tripflow/internal/repositories"
	mem "tripflow/pkg/memcache"
	"tripflow/pkg/utils"
)

const resetTokenTTL = 30 * time.Minute

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	GetProfile(ctx context.Context, accountID string) (*response_models.AccountResponse, error)
	RequestPasswordReset(ctx context.Context, request request_models.RequestPasswordResetRequest) error
	ConfirmPasswordReset(ctx context.Context, request request_models.ConfirmPasswordResetRequest) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	resetTokens mem.ResetTokenStore
	mail        IMailService
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	resetTokens mem.ResetTokenStore,
	mail IMailService,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		resetTokens: resetTokens,
		mail:        mail,
	}
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {

	startTime := time.Now()

	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	log.Printf("Login process took %s", time.Since(startTime))

	return &response_models.AccountLoginResponse{
		Token:   token,
		Account: toAccountResponse(account),
	}, nil
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {

	existingAccount, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         request.Name,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         "user", // default role
	}

	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) GetProfile(ctx context.Context, accountID string) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	resp := toAccountResponse(account)
	return &resp, nil
}

// RequestPasswordReset always reports success so callers cannot probe
// which emails have accounts.
func (a *AccountService) RequestPasswordReset(ctx context.Context, request request_models.RequestPasswordResetRequest) error {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}

	a.resetTokens.Set(token, account.Email, resetTokenTTL)

	if err := a.mail.SendMailToResetPassword(account.Email, token); err != nil {
		log.Printf("reset mail to %s failed: %v", account.Email, err)
	}

	return nil
}

func (a *AccountService) ConfirmPasswordReset(ctx context.Context, request request_models.ConfirmPasswordResetRequest) error {
	email := a.resetTokens.Consume(request.Token)
	if email == "" || email != request.Email {
		return utils.ErrInvalidResetToken
	}

	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		return utils.ErrAccountNotFound
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}

	if err := a.accountRepo.UpdatePasswordHash(ctx, account.ID.String(), hashedPassword); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func toAccountResponse(account *db_models.Account) response_models.AccountResponse {
	return response_models.AccountResponse{
		ID:    account.ID.String(),
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role,
	}
}
