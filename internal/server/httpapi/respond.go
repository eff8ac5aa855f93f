package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/common"
	"fintrack/internal/models"
	"fintrack/internal/server/users"
)

// envelope is the wrapper used by the credential-bearing endpoints and
// by every error response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type credentialsData struct {
	Tokens models.AuthTokens `json:"tokens"`
	User   models.User       `json:"user"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeCredentials(w http.ResponseWriter, status int, creds *users.Credentials) {
	writeJSON(w, status, envelope{
		Success: true,
		Data:    credentialsData{Tokens: creds.Tokens, User: creds.User},
	})
}

// writeUser emits the user directly, without the envelope. The profile
// endpoints respond flat.
func writeUser(w http.ResponseWriter, user *models.User) {
	writeJSON(w, http.StatusOK, user)
}

// writeError maps a service error to a status code and a stable error
// code the client matches on.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, common.ErrorInvalidCredentials):
		status, code = http.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, common.ErrorAlreadyExists):
		status, code = http.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, common.ErrorValidation):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, common.ErrorTokenExpired):
		status, code = http.StatusUnauthorized, "TOKEN_EXPIRED"
	case errors.Is(err, common.ErrorRefreshTokenExpired):
		status, code = http.StatusUnauthorized, "REFRESH_TOKEN_EXPIRED"
	case errors.Is(err, common.ErrorInvalidToken):
		status, code = http.StatusUnauthorized, "INVALID_TOKEN"
	case errors.Is(err, common.ErrorUnauthorized):
		status, code = http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, common.ErrorNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	}

	writeJSON(w, status, envelope{Success: false, Message: err.Error(), Code: code})
}
