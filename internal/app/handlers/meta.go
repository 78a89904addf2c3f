package handlers

import (
	"context"
	"log/slog"
	"net/http"
)

// Pinger: проверка доступности БД, её реализует *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RootHandler обрабатывает GET /
func RootHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, log, http.StatusOK, map[string]string{"message": "Vetcent backend is running"})
	}
}

// HealthHandler обрабатывает GET /health
func HealthHandler(log *slog.Logger, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.HealthHandler"
		logger := log.With(slog.String("op", op))

		if err := db.PingContext(r.Context()); err != nil {
			logger.Error("database is unreachable", slog.Any("error", err))
			writeJSON(w, logger, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	}
}
