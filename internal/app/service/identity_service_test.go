package service

import (
	"context"
	"errors"
	"testing"

	"playex_v2/internal/common"
	"playex_v2/internal/domain/model"
)

func TestResolveGuest(t *testing.T) {
	svc := NewIdentityService(newFakeUserRepo())

	user, err := svc.Resolve(context.Background(), IdentityRef{})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if user != nil {
		t.Errorf("empty ref must resolve to a guest, got %+v", user)
	}
}

func TestResolveByEachCredential(t *testing.T) {
	users := newFakeUserRepo()
	tgID := int64(42)
	username := "frank"
	email := "frank@example.com"
	users.users["user-1"] = &model.User{ID: "user-1", TelegramID: &tgID, Username: &username, Email: &email}
	svc := NewIdentityService(users)

	refs := map[string]IdentityRef{
		"user_id":  {UserID: "user-1"},
		"tg_id":    {TelegramID: &tgID},
		"username": {Username: username},
		"email":    {Email: email},
	}
	for name, ref := range refs {
		user, err := svc.Resolve(context.Background(), ref)
		if err != nil {
			t.Errorf("Resolve by %s failed: %v", name, err)
			continue
		}
		if user == nil || user.ID != "user-1" {
			t.Errorf("Resolve by %s returned %+v", name, user)
		}
	}
}

func TestResolveUnknownCredential(t *testing.T) {
	svc := NewIdentityService(newFakeUserRepo())

	unknown := int64(999)
	if _, err := svc.Resolve(context.Background(), IdentityRef{TelegramID: &unknown}); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("unknown tg_id: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Resolve(context.Background(), IdentityRef{UserID: "ghost"}); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("unknown user id: expected ErrNotFound, got %v", err)
	}
}
