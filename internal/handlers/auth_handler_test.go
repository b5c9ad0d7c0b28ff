package handlers

import (
	"encoding/json"
	"testing"

	"github.com/dukani/credit-ledger/internal/auth"
	xhttp "github.com/dukani/credit-ledger/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(username, password string) (string, error) {
	args := m.Called(username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Validate(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockAuthService) Logout(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		svc := new(MockAuthService)
		handler := NewAuthHandler(svc)

		bodyBytes, _ := json.Marshal(loginRequest{Username: "Admin", Password: "hunter2"})
		svc.On("Login", "Admin", "hunter2").Return("tok-123", nil)

		ctx := setupTestContext("POST", "/login", bodyBytes)
		handler.Login(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response loginResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, "tok-123", response.Token)

		svc.AssertExpectations(t)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		svc := new(MockAuthService)
		handler := NewAuthHandler(svc)

		bodyBytes, _ := json.Marshal(loginRequest{Username: "Admin", Password: "wrong"})
		svc.On("Login", "Admin", "wrong").Return("", auth.ErrInvalidCredentials)

		ctx := setupTestContext("POST", "/login", bodyBytes)
		handler.Login(ctx)

		assert.Equal(t, 401, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		svc := new(MockAuthService)
		handler := NewAuthHandler(svc)

		ctx := setupTestContext("POST", "/login", []byte("{"))
		handler.Login(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(MockAuthService)
	handler := NewAuthHandler(svc)

	svc.On("Logout", "tok-123").Return(nil)

	ctx := setupTestContext("POST", "/logout", nil)
	ctx.Request.Header.Set("X-Session-Token", "tok-123")
	handler.Logout(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestSessionToken(t *testing.T) {
	t.Run("header token wins", func(t *testing.T) {
		ctx := setupTestContext("GET", "/accounts", nil)
		ctx.Request.Header.Set("X-Session-Token", "tok-a")
		ctx.Request.Header.Set("Authorization", "Bearer tok-b")
		assert.Equal(t, "tok-a", sessionToken(ctx))
	})

	t.Run("bearer fallback", func(t *testing.T) {
		ctx := setupTestContext("GET", "/accounts", nil)
		ctx.Request.Header.Set("Authorization", "Bearer tok-b")
		assert.Equal(t, "tok-b", sessionToken(ctx))
	})

	t.Run("absent", func(t *testing.T) {
		ctx := setupTestContext("GET", "/accounts", nil)
		assert.Equal(t, "", sessionToken(ctx))
	})
}

func TestSessionMiddleware(t *testing.T) {
	next := func(called *bool) xhttp.RequestHandler {
		return func(ctx *xhttp.RequestCtx) { *called = true }
	}

	t.Run("login path skips validation", func(t *testing.T) {
		svc := new(MockAuthService)
		mw := SessionMiddleware(svc)

		var called bool
		ctx := setupTestContext("POST", "/api/v1/login", nil)
		mw(next(&called))(ctx)

		assert.True(t, called)
		svc.AssertNotCalled(t, "Validate", mock.Anything)
	})

	t.Run("health path skips validation", func(t *testing.T) {
		svc := new(MockAuthService)
		mw := SessionMiddleware(svc)

		var called bool
		ctx := setupTestContext("GET", "/health", nil)
		mw(next(&called))(ctx)

		assert.True(t, called)
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		svc := new(MockAuthService)
		mw := SessionMiddleware(svc)

		svc.On("Validate", "").Return(auth.ErrInvalidToken)

		var called bool
		ctx := setupTestContext("GET", "/api/v1/accounts", nil)
		mw(next(&called))(ctx)

		assert.False(t, called)
		assert.Equal(t, 401, ctx.Response.StatusCode())
	})

	t.Run("valid token passes through", func(t *testing.T) {
		svc := new(MockAuthService)
		mw := SessionMiddleware(svc)

		svc.On("Validate", "tok-123").Return(nil)

		var called bool
		ctx := setupTestContext("GET", "/api/v1/accounts", nil)
		ctx.Request.Header.Set("X-Session-Token", "tok-123")
		mw(next(&called))(ctx)

		assert.True(t, called)
		svc.AssertExpectations(t)
	})
}
