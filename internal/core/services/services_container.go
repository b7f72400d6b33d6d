package services

import (
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/platform/config"
)

// NewServiceContainer wires every service against the repository provider.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:        NewUserService(repos.UserRepo, repos.AccountRepo, repos.CategoryRepo),
		Account:     NewAccountService(repos.AccountRepo, repos.TransactionRepo, repos.BalanceRepo),
		Category:    NewCategoryService(repos.CategoryRepo),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo, repos.BalanceRepo),
		Dashboard:   NewDashboardService(repos.UserRepo, repos.AccountRepo, repos.CategoryRepo, repos.TransactionRepo),
		Token:       NewTokenService(cfg, repos.UserRepo),
		GoogleOAuth: NewGoogleOAuthService(cfg),
	}
}
