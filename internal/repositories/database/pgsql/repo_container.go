package pgsql

import (
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres-backed repository against the
// shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(pool),
		AccountRepo:     newPgxAccountRepository(pool),
		CategoryRepo:    newPgxCategoryRepository(pool),
		TransactionRepo: newPgxTransactionRepository(pool),
		BalanceRepo:     newPgxBalanceRepository(pool),
	}
}
