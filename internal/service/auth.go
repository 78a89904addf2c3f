package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/domain/models"
	security "github.com/linemk/vetcent/internal/jwt-new"
	"github.com/linemk/vetcent/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	log         *slog.Logger
	userRepo    storage.UserStorage
	profileRepo storage.ProfileStorage
	tokenTTL    time.Duration
	secret      string
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, profileRepo storage.ProfileStorage, tokenTTL time.Duration, secret string) *AuthService {
	return &AuthService{
		log:         log,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokenTTL:    tokenTTL,
		secret:      secret,
	}
}

type AuthServiceInterface interface {
	Signup(ctx context.Context, email, password, role string) (*SignupResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// SignupResult: данные созданного пользователя
type SignupResult struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

// LoginResult: данные успешного входа
type LoginResult struct {
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	AccessToken string    `json:"access_token"`
}

// Signup регистрирует пользователя. Роль проверяется до любых обращений к БД.
// Пароль хэшируется bcrypt, роль уходит в метаданные учётной записи;
// профиль и запись поставщика создаёт триггер платформы.
func (a *AuthService) Signup(ctx context.Context, email, password, role string) (*SignupResult, error) {
	const op = "auth.Signup"
	email = strings.ToLower(strings.TrimSpace(email))
	role = strings.ToLower(strings.TrimSpace(role))
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
		slog.String("role", role),
	)

	if !models.IsValidRole(role) {
		logger.Warn("invalid role")
		return nil, invalidInput("role must be either 'clinic' or 'supplier'")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := a.userRepo.CreateUser(ctx, &models.User{
		Email:    email,
		PassHash: passHash,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			logger.Info("email already registered")
			return nil, ErrUserExists
		}
		logger.Error("failed to create user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	logger.Info("user signed up", slog.String("userID", user.ID.String()))
	return &SignupResult{UserID: user.ID, Role: role}, nil
}

// Login проверяет пароль, затем читает роль из profiles.
// Если триггер ещё не создал профиль, вход завершается ErrRoleNotFound.
func (a *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "auth.Login"
	email = strings.ToLower(strings.TrimSpace(email))
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("user not found")
			return nil, ErrInvalidCredentials
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return nil, ErrInvalidCredentials
	}

	role, err := a.profileRepo.GetRoleByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			logger.Warn("profile role not found", slog.String("userID", user.ID.String()))
			return nil, ErrRoleNotFound
		}
		logger.Error("failed to get profile role", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get profile role: %w", op, err)
	}

	token, err := security.NewToken(user, role, a.tokenTTL, a.secret)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.String("userID", user.ID.String()))
	return &LoginResult{UserID: user.ID, Role: role, AccessToken: token}, nil
}
