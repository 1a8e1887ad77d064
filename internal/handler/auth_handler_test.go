package handler

import (
	"net/http/httptest"
	"testing"

	"go-pos-dashboard/internal/model"
	"go-pos-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	loginResp *service.LoginResponse
	loginErr  error
	changeErr error
	operator  *model.User
	createErr error

	lastUsername string
	lastPassword string
}

func (m *mockAuthService) Login(username, password string) (*service.LoginResponse, error) {
	m.lastUsername, m.lastPassword = username, password
	return m.loginResp, m.loginErr
}

func (m *mockAuthService) ChangePassword(username, oldPassword, newPassword string) error {
	m.lastUsername = username
	return m.changeErr
}

func (m *mockAuthService) CreateOperator(fullName, username, password string) (*model.User, error) {
	m.lastUsername = username
	return m.operator, m.createErr
}

func newAuthApp(mock *mockAuthService) *fiber.App {
	app := fiber.New()
	h := NewAuthHandler(mock)
	app.Post("/auth/login", h.Login)
	app.Post("/auth/change-password", func(c *fiber.Ctx) error {
		c.Locals("username", "pos1")
		return h.ChangePassword(c)
	})
	app.Post("/users/operators", h.CreateOperator)
	return app
}

func TestLoginEndpoint(t *testing.T) {
	mock := &mockAuthService{
		loginResp: &service.LoginResponse{
			Token:      "jwt-token",
			User:       model.UserResponse{Username: "admin", FullName: "System Admin"},
			Privileges: []string{"order:create", "order:cancel"},
		},
	}
	app := newAuthApp(mock)

	req := httptest.NewRequest("POST", "/auth/login", jsonBody(t, LoginRequest{
		Username: "admin",
		Password: "Admin@123",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "jwt-token", body["token"])
	assert.Equal(t, "admin", mock.lastUsername)
	assert.Equal(t, "Admin@123", mock.lastPassword)
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: &service.Error{Kind: service.KindUnauthorized, Msg: "invalid username or password"}}
	app := newAuthApp(mock)

	req := httptest.NewRequest("POST", "/auth/login", jsonBody(t, LoginRequest{
		Username: "admin",
		Password: "nope",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestChangePasswordEndpoint(t *testing.T) {
	mock := &mockAuthService{}
	app := newAuthApp(mock)

	req := httptest.NewRequest("POST", "/auth/change-password", jsonBody(t, ChangePasswordRequest{
		OldPassword: "Pos@123",
		NewPassword: "Pos@456",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	// The acting user comes from the auth context, not the body.
	assert.Equal(t, "pos1", mock.lastUsername)
}

func TestCreateOperatorEndpoint(t *testing.T) {
	mock := &mockAuthService{
		operator: &model.User{Username: "pos2", FullName: "POS Operator 2", IsActive: true},
	}
	app := newAuthApp(mock)

	req := httptest.NewRequest("POST", "/users/operators", jsonBody(t, CreateOperatorRequest{
		FullName: "POS Operator 2",
		Username: "pos2",
		Password: "Pos@123",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "pos2", data["username"])
}
