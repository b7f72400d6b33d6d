package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrack-app/fintrack_backend/internal/apperrors"
	"github.com/fintrack-app/fintrack_backend/internal/core/domain"
	portsrepo "github.com/fintrack-app/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrack-app/fintrack_backend/internal/core/ports/services"
	"github.com/fintrack-app/fintrack_backend/internal/dto"
	"github.com/fintrack-app/fintrack_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultAccountName is the account every new user starts with.
const defaultAccountName = "Wallet"

type defaultCategory struct {
	kind  domain.CategoryKind
	name  string
	icon  string
	color string
}

// defaultCategories is the category set seeded at signup.
var defaultCategories = []defaultCategory{
	{domain.KindIncome, "Salary", "💼", "#16A34A"},
	{domain.KindIncome, "Freelance", "💻", "#0EA5E9"},
	{domain.KindOutgo, "Groceries", "🛒", "#F59E0B"},
	{domain.KindOutgo, "Transport", "🚌", "#6366F1"},
	{domain.KindOutgo, "Food", "🍔", "#EF4444"},
	{domain.KindOutgo, "Home", "🏠", "#8B5CF6"},
}

type userService struct {
	BaseService
	userRepo     portsrepo.UserRepositoryWithTx
	accountRepo  portsrepo.AccountRepositoryWithTx
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewUserService creates the user service.
func NewUserService(userRepo portsrepo.UserRepositoryWithTx, accountRepo portsrepo.AccountRepositoryWithTx, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo:     userRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
	}
}

// RegisterUser creates a local user and seeds their starter data in one unit
// of work: a default account and the default category set.
func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing email during registration")
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewInternalServerError("failed to hash password", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Balance:      decimal.Zero,
		AuthProvider: domain.ProviderLocal,
		PasswordHash: &passwordHash,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.seedNewUser(ctx, user); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// seedNewUser inserts the user row plus the default account and categories
// atomically. A failure anywhere leaves no trace of the signup.
func (s *userService) seedNewUser(ctx context.Context, user domain.User) error {
	tx, err := s.userRepo.Begin(ctx)
	if err != nil {
		return apperrors.NewInternalServerError("failed to begin transaction", err)
	}
	defer s.userRepo.Rollback(ctx, tx)

	if err := s.userRepo.SaveUserInTx(ctx, tx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return err
	}

	now := user.CreatedAt
	account := domain.Account{
		AccountID:  uuid.NewString(),
		UserID:     user.UserID,
		Name:       defaultAccountName,
		Balance:    decimal.Zero,
		Icon:       "👛",
		Color:      "#0D9488",
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		s.LogError(ctx, err, "Failed to seed default account", slog.String("user_id", user.UserID))
		return err
	}

	categories := make([]domain.Category, 0, len(defaultCategories))
	for _, dc := range defaultCategories {
		categories = append(categories, domain.Category{
			CategoryID: uuid.NewString(),
			UserID:     user.UserID,
			Kind:       dc.kind,
			Name:       dc.name,
			Icon:       dc.icon,
			Color:      dc.color,
			Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		})
	}
	if err := s.categoryRepo.SaveCategoriesInTx(ctx, tx, categories); err != nil {
		s.LogError(ctx, err, "Failed to seed default categories", slog.String("user_id", user.UserID))
		return err
	}

	if err := s.userRepo.Commit(ctx, tx); err != nil {
		return apperrors.NewInternalServerError("failed to commit signup transaction", err)
	}
	return nil
}

// AuthenticateUser verifies local credentials and returns the user.
func (s *userService) AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}

	if user.AuthProvider != domain.ProviderLocal || user.PasswordHash == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// FindOrCreateOAuthUser resolves the user for a validated OAuth identity,
// creating and seeding one on first login.
func (s *userService) FindOrCreateOAuthUser(ctx context.Context, name string, email string, photoURL string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up OAuth user")
		return nil, err
	}

	now := time.Now().UTC()
	newUser := domain.User{
		UserID:       uuid.NewString(),
		Name:         name,
		Email:        email,
		PhotoURL:     photoURL,
		Balance:      decimal.Zero,
		AuthProvider: domain.ProviderGoogle,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.seedNewUser(ctx, newUser); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "OAuth user created", slog.String("user_id", newUser.UserID))
	return &newUser, nil
}

// GetUserByID retrieves a user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies profile changes. The cached balance is never writable
// through this path.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user and everything they own.
func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		}
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

// ClearRefreshToken invalidates the stored refresh token.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}
