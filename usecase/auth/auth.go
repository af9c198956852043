package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/techgit41/Advanced-Todo-App/domain"
	"github.com/techgit41/Advanced-Todo-App/repository"
	"github.com/techgit41/Advanced-Todo-App/usecase"
)

const bcryptCost = 12

type UseCase struct {
	users  repository.UserRepository
	tokens usecase.TokenIssuer
	logger *zap.Logger
}

func New(users repository.UserRepository, tokens usecase.TokenIssuer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates an account and issues its first session token. Email and
// username conflicts are reported independently, email checked first.
func (uc *UseCase) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	if err := uc.checkTaken(ctx, uc.users.GetByEmail, email, domain.ErrEmailTaken); err != nil {
		return nil, "", err
	}
	if err := uc.checkTaken(ctx, uc.users.GetByUsername, username, domain.ErrUsernameTaken); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "failed to hash password", err)
	}

	user, err := uc.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, "", err
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "failed to issue token", err)
	}

	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, token, nil
}

// Login verifies the credentials and issues a fresh session token. A missing
// account and a wrong password produce the same error.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", domain.WrapError(domain.ErrCodeInternal, "failed to issue token", err)
	}

	return user, token, nil
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// ChangePassword replaces the stored hash after re-verifying the current
// password.
func (uc *UseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "failed to hash password", err)
	}

	if err := uc.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return err
	}

	uc.logger.Info("password changed", zap.String("user_id", userID))
	return nil
}

type lookupFunc func(ctx context.Context, key string) (*domain.User, error)

func (uc *UseCase) checkTaken(ctx context.Context, lookup lookupFunc, key string, conflict *domain.Error) error {
	_, err := lookup(ctx, key)
	switch {
	case err == nil:
		return conflict
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return err
	}
}
