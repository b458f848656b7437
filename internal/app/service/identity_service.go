package service

import (
	"context"
	"fmt"

	"playex_v2/internal/domain/model"
	"playex_v2/internal/domain/repository"
)

// IdentityRef carries whichever credential a request presented. At most one
// field is expected to be set; an empty ref is a guest.
type IdentityRef struct {
	UserID     string
	TelegramID *int64
	Username   string
	Email      string
}

func (r IdentityRef) IsGuest() bool {
	return r.UserID == "" && r.TelegramID == nil && r.Username == "" && r.Email == ""
}

// IdentityService resolves the current actor once per request, before any
// grading happens. Handlers never look users up themselves.
type IdentityService struct {
	userRepo repository.UserRepository
}

func NewIdentityService(userRepo repository.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

// Resolve returns (nil, nil) for guests, the user for a known credential,
// and ErrNotFound when a credential was presented but matches no one.
func (s *IdentityService) Resolve(ctx context.Context, ref IdentityRef) (*model.User, error) {
	switch {
	case ref.UserID != "":
		user, err := s.userRepo.FindByID(ctx, ref.UserID)
		if err != nil {
			return nil, fmt.Errorf("resolve by id: %w", err)
		}
		return user, nil
	case ref.TelegramID != nil:
		user, err := s.userRepo.FindByTelegramID(ctx, *ref.TelegramID)
		if err != nil {
			return nil, fmt.Errorf("resolve by tg_id: %w", err)
		}
		return user, nil
	case ref.Username != "":
		user, err := s.userRepo.FindByUsername(ctx, ref.Username)
		if err != nil {
			return nil, fmt.Errorf("resolve by username: %w", err)
		}
		return user, nil
	case ref.Email != "":
		user, err := s.userRepo.FindByEmail(ctx, ref.Email)
		if err != nil {
			return nil, fmt.Errorf("resolve by email: %w", err)
		}
		return user, nil
	}
	return nil, nil // guest
}
