package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"tutortribe/internal/service"
)

type AuthHandler struct {
	service *service.AuthService
	env     string
}

func NewAuthHandler(svc *service.AuthService, env string) *AuthHandler {
	return &AuthHandler{service: svc, env: env}
}

// Token is the password-grant login endpoint.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if req.GrantType != "password" {
		writeError(w, http.StatusBadRequest, "unsupported_grant_type", "Only password grant supported")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "Missing username or password")
		return
	}

	resp, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDomainNotAllowed):
			writeError(w, http.StatusBadRequest, "invalid_request",
				fmt.Sprintf("Only institutional emails ending with %s are allowed", h.service.AllowedDomain()))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid_grant", "Invalid credentials")
		default:
			writeServerError(w, h.env, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
