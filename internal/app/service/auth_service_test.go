package service

import (
	"context"
	"errors"
	"testing"

	"playex_v2/internal/common"
)

func TestSignupAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	signup, err := svc.Signup(context.Background(), SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if signup.Token == "" {
		t.Error("expected a token after signup")
	}
	if signup.User.HashedPassword != nil {
		t.Error("hashed password must not leak in the response")
	}
	if signup.User.Level != 1 {
		t.Errorf("new users start at level 1, got %d", signup.User.Level)
	}

	byEmail, err := svc.Login(context.Background(), LoginRequest{LoginField: "alice@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login by email failed: %v", err)
	}
	if byEmail.User.ID != signup.User.ID {
		t.Errorf("login resolved a different user: %s vs %s", byEmail.User.ID, signup.User.ID)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{LoginField: "alice", Password: "s3cret"}); err != nil {
		t.Errorf("Login by username failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), LoginRequest{LoginField: "alice", Password: "wrong"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("wrong password: expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{LoginField: "nobody", Password: "s3cret"}); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("unknown user: expected ErrUnauthorized, got %v", err)
	}
}

func TestSignupMissingFields(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	if _, err := svc.Signup(context.Background(), SignupRequest{Username: "bob"}); !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}

func TestRegisterTelegramIdempotent(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)
	tgID := int64(123456789)

	first, err := svc.Register(context.Background(), RegisterRequest{TelegramID: &tgID, Name: "carol"})
	if err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	second, err := svc.Register(context.Background(), RegisterRequest{TelegramID: &tgID})
	if err != nil {
		t.Fatalf("second Register failed: %v", err)
	}
	if first.User.ID != second.User.ID {
		t.Errorf("re-registering the same tg_id must return the same user: %s vs %s", first.User.ID, second.User.ID)
	}
	if len(users.users) != 1 {
		t.Errorf("expected a single user row, got %d", len(users.users))
	}
	if second.Token == "" {
		t.Error("repeat registration still issues a token")
	}
}

func TestRegisterEmailDefaultsUsername(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users)

	resp, err := svc.Register(context.Background(), RegisterRequest{Email: "dave@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.User.Username == nil || *resp.User.Username != "dave" {
		t.Errorf("expected username derived from email local part, got %v", resp.User.Username)
	}
}

func TestRegisterRequiresCredential(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	if _, err := svc.Register(context.Background(), RegisterRequest{Name: "eve"}); !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}
