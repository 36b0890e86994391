package sqlite

import (
	"context"
	"testing"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/store"
)

func TestCreateGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := domain.NewUser("userid01", "kakao", "kakao-12345", "철수", "https://cdn/img.jpg")
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	got, err := s.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Nickname != "철수" || got.Provider != "kakao" || got.Role != domain.RoleUser {
		t.Errorf("unexpected user: %+v", got)
	}
	if got.LastLoginAt != nil {
		t.Errorf("expected nil last login, got %v", got.LastLoginAt)
	}
}

func TestGetUserByProvider(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := domain.NewUser("userid01", "naver", "naver-777", "영희", "")
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	got, err := s.GetUserByProvider(ctx, "naver", "naver-777")
	if err != nil {
		t.Fatalf("get by provider: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("expected %s, got %s", user.ID, got.ID)
	}

	if _, err := s.GetUserByProvider(ctx, "kakao", "naver-777"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound for wrong provider, got %v", err)
	}
}

func TestCreateUser_DuplicateProviderIdentity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := domain.NewUser("userid01", "google", "google-1", "a", "")
	if err := s.CreateUser(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}

	second := domain.NewUser("userid02", "google", "google-1", "b", "")
	if err := s.CreateUser(ctx, second); err != store.ErrAlreadyExists {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "userid01")

	user.Nickname = "새닉네임"
	user.MarkLogin()
	if err := s.UpdateUser(ctx, user); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Nickname != "새닉네임" {
		t.Errorf("nickname not updated: %s", got.Nickname)
	}
	if got.LastLoginAt == nil {
		t.Error("expected last login recorded")
	}
}

func TestDeleteUser_CascadesOwnedRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, s, "userid01")
	review := seedReview(t, s, "reviewid0001", user.ID, "horror")

	if err := s.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := s.GetUser(ctx, user.ID); err != store.ErrNotFound {
		t.Errorf("expected user gone, got %v", err)
	}
	if _, err := s.GetReview(ctx, review.ID); err != store.ErrNotFound {
		t.Errorf("expected review cascade-deleted, got %v", err)
	}
}
