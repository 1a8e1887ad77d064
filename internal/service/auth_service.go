package service

import (
	"errors"

	"go-pos-dashboard/internal/model"
	"go-pos-dashboard/internal/repository"
	"go-pos-dashboard/pkg/jwt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	ChangePassword(username, oldPassword, newPassword string) error
	CreateOperator(fullName, username, password string) (*model.User, error)
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type authService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewAuthService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) AuthService {
	return &authService{userRepo: userRepo, roleRepo: roleRepo}
}

// Login authenticates a username/password pair and issues a JWT whose claims
// carry the role and its privileges; downstream authorization reads the
// claims, never the user record. Usernames are case-sensitive.
func (s *authService) Login(username, password string) (*LoginResponse, error) {
	if username == "" || password == "" {
		return nil, validationErr("username and password cannot be empty")
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil || user.Username != username {
		return nil, unauthorizedErr("invalid username or password")
	}
	if !user.IsActive {
		return nil, unauthorizedErr("user account is inactive")
	}
	if !user.CheckPassword(password) {
		return nil, unauthorizedErr("invalid username or password")
	}

	roleCode := ""
	if user.Role != nil {
		roleCode = user.Role.Code
	}

	// Single session: a fresh token version invalidates earlier tokens.
	newTokenVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, consistencyErr("session update failed", err)
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.FullName, roleCode, user.GetPrivilegeCodes(), newTokenVersion)
	if err != nil {
		return nil, consistencyErr("token generation failed", err)
	}

	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) ChangePassword(username, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return validationErr("new password must be at least 6 characters")
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return notFoundErr("user %q not found", username)
	}
	if !user.CheckPassword(oldPassword) {
		return unauthorizedErr("current password is incorrect")
	}
	if err := user.SetPassword(newPassword); err != nil {
		return consistencyErr("password hash failed", err)
	}
	return s.userRepo.UpdatePassword(user.ID, user.Password)
}

// CreateOperator registers a new CASHIER account. Only admins reach this
// (route-level privilege gate).
func (s *authService) CreateOperator(fullName, username, password string) (*model.User, error) {
	if username == "" || fullName == "" {
		return nil, validationErr("full name and username are required")
	}
	if len(password) < 6 {
		return nil, validationErr("password must be at least 6 characters")
	}

	role, err := s.roleRepo.FindByCode(model.RoleCashier)
	if err != nil {
		return nil, consistencyErr("cashier role missing", err)
	}

	operator := &model.User{
		Username:   username,
		FullName:   fullName,
		RoleID:     &role.ID,
		IsActive:   true,
		Privileges: role.Privileges,
	}
	if err := operator.SetPassword(password); err != nil {
		return nil, consistencyErr("password hash failed", err)
	}
	if err := s.userRepo.Create(operator); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictErr("username %q is taken", username)
		}
		return nil, consistencyErr("operator persist failed", err)
	}
	return operator, nil
}
