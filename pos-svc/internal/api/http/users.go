package httpapi

import (
	"net/http"

	"overcooked-pos/pos-svc/internal/service"

	"go.uber.org/zap"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if !decodeJSON(w, r, &input) {
		return
	}
	user, err := h.Users.Register(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.startSession(w, r, user.ID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if user == nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if err := h.startSession(w, r, user.ID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.Cookie.Name); err == nil {
		if err := h.Sessions.Destroy(r.Context(), cookie.Value); err != nil {
			h.Logger.Error("failed to destroy session", zap.Error(err))
			writeJSON(w, http.StatusOK, map[string]bool{"ok": false})
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) confirmUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	ok, err := h.Users.ConfirmUser(r.Context(), req.Code)
	h.writeResult(w, ok, err)
}

func (h *Handler) resendCode(w http.ResponseWriter, r *http.Request) {
	ok, err := h.Users.ResendVerificationCode(r.Context(), ownerID(r))
	h.writeResult(w, ok, err)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	ok, err := h.Users.ForgotPassword(r.Context(), req.Email)
	h.writeResult(w, ok, err)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.Users.ChangePassword(r.Context(), req.Token, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if user == nil {
		http.Error(w, "Token expired", http.StatusBadRequest)
		return
	}
	if err := h.startSession(w, r, user.ID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// me responds with null when there is no valid session.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.sessionUser(r)
	if !ok {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	user, err := h.Users.Me(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) isLoggedIn(w http.ResponseWriter, r *http.Request) {
	_, ok := h.sessionUser(r)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": ok})
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, userID int) error {
	sessionID, err := h.Sessions.Create(r.Context(), userID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cookie.Name,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.Cookie.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
