// Package httpapi exposes the account service over the /auth REST
// surface consumed by the client.
package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"fintrack/internal/common"
	"fintrack/internal/logging"
	"fintrack/internal/server/users"
)

type Handler struct {
	users *users.Service
	log   logging.Logger
}

func NewHandler(users *users.Service, log logging.Logger) *Handler {
	return &Handler{users: users, log: log}
}

// Routes mounts every endpoint on a fresh mux.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", h.register)
	mux.HandleFunc("POST /auth/login", h.login)
	mux.HandleFunc("POST /auth/refresh-token", h.refresh)
	mux.HandleFunc("GET /auth/profile", h.requireAuth(h.profile))
	mux.HandleFunc("PUT /auth/update-profile", h.requireAuth(h.updateProfile))
	mux.HandleFunc("POST /auth/change-password", h.requireAuth(h.changePassword))
	mux.HandleFunc("POST /auth/logout", h.requireAuth(h.logout))
	return withLogging(h.log, mux)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", common.ErrorValidation)
	}
	return nil
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string  `json:"name"`
		Email           string  `json:"email"`
		Password        string  `json:"password"`
		ConfirmPassword string  `json:"confirmPassword"`
		MonthlyIncome   float64 `json:"monthlyIncome"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Password != req.ConfirmPassword {
		writeError(w, fmt.Errorf("%w: passwords do not match", common.ErrorValidation))
		return
	}

	creds, err := h.users.Register(r.Context(), users.RegisterParams{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		MonthlyIncome: req.MonthlyIncome,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeCredentials(w, http.StatusCreated, creds)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	creds, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCredentials(w, http.StatusOK, creds)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	creds, err := h.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}
	writeCredentials(w, http.StatusOK, creds)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Profile(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeUser(w, user)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), UserID(r.Context()), users.UpdateProfileParams{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeUser(w, user)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.users.ChangePassword(r.Context(), UserID(r.Context()), req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Logout(r.Context(), UserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
