package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"acservice/internal/model"
	"acservice/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var errPhoneTaken = fmt.Errorf("%w: phone number already registered", ErrConflict)

// DTOs for request validation
type CreateUserRequest struct {
	Name     string     `json:"name" binding:"required"`
	Phone    string     `json:"phone" binding:"required,min=10,max=20"`
	Password string     `json:"password" binding:"required,min=6"`
	Role     model.Role `json:"role"`
}

// UpdateUserRequest leaves fields unchanged when empty. A non-empty password is re-hashed.
type UpdateUserRequest struct {
	Name     string     `json:"name"`
	Phone    string     `json:"phone" binding:"omitempty,min=10,max=20"`
	Password string     `json:"password" binding:"omitempty,min=6"`
	Role     model.Role `json:"role"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned unwrapped by POST /auth/login
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// UserService defines account management and authentication
type UserService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	CreateUser(ctx context.Context, actorID string, req CreateUserRequest) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, actorID, id string, req UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, actorID, id string) error
	EnsureAdmin(ctx context.Context, name, phone, password string) (bool, error)
}

type userService struct {
	repo      repository.UserRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	tokens    *TokenIssuer
}

// NewUserService returns a new instance of UserService
func NewUserService(
	repo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	tokens *TokenIssuer,
) UserService {
	return &userService{repo: repo, auditRepo: auditRepo, txManager: txManager, tokens: tokens}
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.repo.GetByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *userService) CreateUser(ctx context.Context, actorID string, req CreateUserRequest) (*model.User, error) {
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	if _, err := s.repo.GetByPhone(ctx, req.Phone); err == nil {
		return nil, errPhoneTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: string(hashed),
		Role:     role,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return errPhoneTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return s.audit(txCtx, actorID, model.ActionCreateUser, user, map[string]any{
			"name": user.Name, "phone": user.Phone, "role": user.Role,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, actorID, id string, req UpdateUserRequest) (*model.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Phone != "" && req.Phone != user.Phone {
		if _, err := s.repo.GetByPhone(ctx, req.Phone); err == nil {
			return nil, errPhoneTaken
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check phone: %w", err)
		}
		user.Phone = req.Phone
	}
	passwordChanged := req.Password != ""
	if passwordChanged {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errors.New("failed to hash password")
		}
		user.Password = string(hashed)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return errPhoneTaken
			}
			return fmt.Errorf("failed to update user: %w", err)
		}
		return s.audit(txCtx, actorID, model.ActionUpdateUser, user, map[string]any{
			"name": user.Name, "phone": user.Phone, "role": user.Role, "password_changed": passwordChanged,
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, actorID, id string) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if actorID == user.ID.String() {
		return fmt.Errorf("%w: you cannot delete your own account", ErrConflict)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: user not found", ErrNotFound)
			}
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return s.audit(txCtx, actorID, model.ActionDeleteUser, user, map[string]any{"phone": user.Phone})
	})
}

// EnsureAdmin creates the bootstrap admin account unless the phone is already registered
func (s *userService) EnsureAdmin(ctx context.Context, name, phone, password string) (bool, error) {
	_, err := s.repo.GetByPhone(ctx, phone)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("failed to check phone: %w", err)
	}
	_, err = s.CreateUser(ctx, "", CreateUserRequest{Name: name, Phone: phone, Password: password, Role: model.RoleAdmin})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *userService) audit(ctx context.Context, actorID, action string, user *model.User, details map[string]any) error {
	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		UserID:     actorUUID(actorID),
		Action:     action,
		EntityID:   user.ID.String(),
		EntityName: user.Name,
		Details:    string(payload),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// actorUUID parses the acting user id; an unparsable id records a system action
func actorUUID(actorID string) *uuid.UUID {
	if parsed, err := uuid.Parse(actorID); err == nil {
		return &parsed
	}
	return nil
}
