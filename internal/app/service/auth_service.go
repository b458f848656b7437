package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"playex_v2/internal/common"
	"playex_v2/internal/common/security"
	"playex_v2/internal/domain/model"
	"playex_v2/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	LoginField string `json:"login_field"` // Can be username or email
	Password   string `json:"password"`
}

// RegisterRequest covers both registration paths of the platform: a
// messaging-app identity (tg_id) or classic email+password.
type RegisterRequest struct {
	TelegramID *int64 `json:"tg_id,omitempty"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Password   string `json:"password,omitempty"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       &req.Username,
		Email:          &req.Email,
		HashedPassword: &hashedPassword,
		Role:           model.RoleUser,
		Level:          1,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = nil
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.LoginField == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	var user *model.User
	var err error

	// Try finding by email first, then by username
	user, err = s.userRepo.FindByEmail(ctx, req.LoginField)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			user, err = s.userRepo.FindByUsername(ctx, req.LoginField)
		}
	}

	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.HashedPassword == nil || !security.CheckPasswordHash(req.Password, *user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = nil
	return &AuthResponse{User: user, Token: token}, nil
}

// Register resolves the two registration variants. The telegram path is
// idempotent: registering an already-known tg_id returns the existing user.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.TelegramID != nil {
		return s.registerTelegram(ctx, *req.TelegramID, req.Name)
	}
	if req.Email != "" && req.Password != "" {
		username := req.Name
		if username == "" {
			username = strings.SplitN(req.Email, "@", 2)[0]
		}
		return s.Signup(ctx, SignupRequest{Username: username, Email: req.Email, Password: req.Password})
	}
	return nil, fmt.Errorf("either tg_id or email+password is required: %w", common.ErrBadRequest)
}

func (s *AuthService) registerTelegram(ctx context.Context, tgID int64, name string) (*AuthResponse, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, tgID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user == nil {
		user = &model.User{
			ID:         uuid.NewString(),
			TelegramID: &tgID,
			Role:       model.RoleUser,
			Level:      1,
		}
		if name != "" {
			user.Username = &name
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, common.ErrConflict) {
				// Concurrent registration of the same tg_id; re-read.
				if existing, findErr := s.userRepo.FindByTelegramID(ctx, tgID); findErr == nil {
					user = existing
				} else {
					return nil, fmt.Errorf("failed to create user: %w", err)
				}
			} else {
				return nil, fmt.Errorf("failed to create user: %w", err)
			}
		}
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = nil
	return &AuthResponse{User: user, Token: token}, nil
}
