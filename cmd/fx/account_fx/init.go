package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripflow/internal/repositories"
	"tripflow/internal/services"
	mem "tripflow/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(accountRepo repositories.AccountRepository, resetTokens mem.ResetTokenStore, mailService services.IMailService) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, resetTokens, mailService)
}
