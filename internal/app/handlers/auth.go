package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/linemk/vetcent/internal/service"
)

// SignupRequest: регистрация; роль проверяет сервис
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

// LoginRequest: вход по email и паролю
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
	Role    string    `json:"role"`
}

type LoginResponse struct {
	Message     string    `json:"message"`
	UserID      uuid.UUID `json:"user_id"`
	Role        string    `json:"role"`
	AccessToken string    `json:"access_token"`
}

// SignupHandler обрабатывает POST /signup
func SignupHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SignupHandler"
		logger := log.With(slog.String("op", op))

		var req SignupRequest
		if err := decodeRequest(r, &req); err != nil {
			logger.Warn("invalid signup request", slog.Any("error", err))
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		res, err := authService.Signup(r.Context(), req.Email, req.Password, req.Role)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, SignupResponse{
			Message: "signup successful",
			UserID:  res.UserID,
			Role:    res.Role,
		})
	}
}

// LoginHandler обрабатывает POST /login
func LoginHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if err := decodeRequest(r, &req); err != nil {
			logger.Warn("invalid login request", slog.Any("error", err))
			writeDetail(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		res, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, logger, err)
			return
		}

		writeJSON(w, logger, http.StatusOK, LoginResponse{
			Message:     "login successful",
			UserID:      res.UserID,
			Role:        res.Role,
			AccessToken: res.AccessToken,
		})
	}
}
