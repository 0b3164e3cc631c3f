package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"overcooked-pos/pos-svc/internal/domain"

	"go.uber.org/zap"
)

type ctxKey int

const ownerKey ctxKey = iota

func ownerID(r *http.Request) int {
	id, _ := r.Context().Value(ownerKey).(int)
	return id
}

func (h *Handler) sessionUser(r *http.Request) (int, bool) {
	cookie, err := r.Cookie(h.Cookie.Name)
	if err != nil || cookie.Value == "" {
		return 0, false
	}
	userID, err := h.Sessions.UserID(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			h.Logger.Error("failed to resolve session", zap.Error(err))
		}
		return 0, false
	}
	return userID, true
}

// requireAuth rejects requests without a live session and passes the session
// user on as the owner of every resource the handler touches.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := h.sessionUser(r)
		if !ok {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ownerKey, userID)))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.Logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
