package handlers

import (
	"errors"
	"strings"

	"github.com/dukani/credit-ledger/internal/auth"
	xhttp "github.com/dukani/credit-ledger/pkg/http"
)

type AuthService interface {
	Login(username, password string) (string, error)
	Validate(token string) error
	Logout(token string) error
}

type AuthHandler struct {
	svc AuthService
}

func RegisterAuthRoutes(g *xhttp.Group, h *AuthHandler) {
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	var req loginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	token, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(ctx, xhttp.StatusUnauthorized, err.Error())
			return
		}
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(ctx, xhttp.StatusOK, loginResponse{Token: token})
}

func (h *AuthHandler) Logout(ctx *xhttp.RequestCtx) {
	if err := h.svc.Logout(sessionToken(ctx)); err != nil {
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"status": "logged out"})
}

// sessionToken pulls the token from X-Session-Token or a bearer
// Authorization header.
func sessionToken(ctx *xhttp.RequestCtx) string {
	if v := ctx.Request.Header.Peek("X-Session-Token"); len(v) > 0 {
		return string(v)
	}
	if v := ctx.Request.Header.Peek("Authorization"); len(v) > 0 {
		return strings.TrimPrefix(string(v), "Bearer ")
	}
	return ""
}
