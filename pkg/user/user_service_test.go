package user

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"foodgram/domain"
	"foodgram/internal/testutil"
	"foodgram/internal/utils/storage"
	"foodgram/pkg/follow"
	"foodgram/pkg/jwt"

	"gorm.io/gorm"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func newService(t *testing.T) (UserService, *gorm.DB, *storage.MemoryStorage, jwt.JWTService) {
	t.Helper()
	db := testutil.NewDB(t)
	store := storage.NewMemoryStorage()
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	svc := NewUserService(NewUserRepository(db), follow.NewFollowRepository(db), jwtService, store)
	return svc, db, store, jwtService
}

func register(t *testing.T, svc UserService, username string) domain.UserProfile {
	t.Helper()
	profile, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "First",
		LastName:  "Last",
		Password:  "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Register %s: %v", username, err)
	}
	return profile
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _, jwtService := newService(t)
	ctx := context.Background()

	profile := register(t, svc, "alice")
	if profile.Username != "alice" || profile.IsSubscribed {
		t.Fatalf("unexpected profile %+v", profile)
	}

	res, err := svc.Login(ctx, domain.LoginRequest{Email: "ALICE@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	userID, err := jwtService.GetUserIDByToken(res.AuthToken)
	if err != nil {
		t.Fatalf("token does not validate: %v", err)
	}
	if userID != profile.ID {
		t.Fatalf("token carries %s, want %s", userID, profile.ID)
	}

	for _, req := range []domain.LoginRequest{
		{Email: "alice@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "s3cret-pass"},
	} {
		if _, err := svc.Login(ctx, req); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("Login(%s): expected validation error, got %v", req.Email, err)
		}
	}
}

func TestRegisterConflicts(t *testing.T) {
	svc, _, _, _ := newService(t)
	register(t, svc, "alice")

	tests := []struct {
		name    string
		req     domain.RegisterRequest
		wantErr error
	}{
		{"email taken", domain.RegisterRequest{Email: "alice@example.com", Username: "alice2", Password: "s3cret-pass"}, domain.ErrEmailTaken},
		{"username taken", domain.RegisterRequest{Email: "other@example.com", Username: "alice", Password: "s3cret-pass"}, domain.ErrUsernameTaken},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			if !errors.Is(err, tc.wantErr) || !errors.Is(err, domain.ErrConflict) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestProfilesCarrySubscription(t *testing.T) {
	svc, db, _, _ := newService(t)
	ctx := context.Background()
	alice := register(t, svc, "alice")
	bob := register(t, svc, "bob")
	register(t, svc, "carol")

	followSvc := follow.NewFollowService(follow.NewFollowRepository(db))
	if _, err := followSvc.Follow(ctx, alice.ID, bob.ID, 0); err != nil {
		t.Fatalf("Follow: %v", err)
	}

	got, err := svc.GetUser(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if !got.IsSubscribed {
		t.Fatal("alice follows bob")
	}
	anon, err := svc.GetUser(ctx, bob.ID, "")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if anon.IsSubscribed {
		t.Fatal("anonymous viewers are never subscribed")
	}

	if _, err := svc.GetUser(ctx, "missing", ""); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}

	page, err := svc.ListUsers(ctx, domain.PageRequest{Page: 1, Limit: 2}, alice.ID)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if page.Count != 3 || len(page.Results) != 2 || page.TotalPages != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Results[0].Username != "alice" || page.Results[1].Username != "bob" || !page.Results[1].IsSubscribed {
		t.Fatalf("unexpected users %+v", page.Results)
	}

	me, err := svc.Me(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me.Email != "alice@example.com" {
		t.Fatalf("unexpected me %+v", me)
	}
}

func TestSetPassword(t *testing.T) {
	svc, _, _, _ := newService(t)
	ctx := context.Background()
	alice := register(t, svc, "alice")

	err := svc.SetPassword(ctx, alice.ID, domain.SetPasswordRequest{CurrentPassword: "nope", NewPassword: "another-pass"})
	if !errors.Is(err, domain.ErrWrongPassword) {
		t.Fatalf("expected wrong password, got %v", err)
	}

	if err := svc.SetPassword(ctx, alice.ID, domain.SetPasswordRequest{CurrentPassword: "s3cret-pass", NewPassword: "another-pass"}); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "s3cret-pass"}); err == nil {
		t.Fatal("old password still works")
	}
	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "alice@example.com", Password: "another-pass"}); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestAvatar(t *testing.T) {
	svc, _, store, _ := newService(t)
	ctx := context.Background()
	alice := register(t, svc, "alice")
	avatar := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)

	first, err := svc.UpdateAvatar(ctx, alice.ID, domain.AvatarRequest{Avatar: avatar})
	if err != nil {
		t.Fatalf("UpdateAvatar: %v", err)
	}
	second, err := svc.UpdateAvatar(ctx, alice.ID, domain.AvatarRequest{Avatar: avatar})
	if err != nil {
		t.Fatalf("UpdateAvatar: %v", err)
	}
	if store.Has(first.Avatar) || !store.Has(second.Avatar) {
		t.Fatal("replacing an avatar should drop the previous image")
	}

	me, _ := svc.Me(ctx, alice.ID)
	if me.Avatar != second.Avatar {
		t.Fatalf("profile avatar %q, want %q", me.Avatar, second.Avatar)
	}

	if _, err := svc.UpdateAvatar(ctx, alice.ID, domain.AvatarRequest{Avatar: "not an image"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := svc.DeleteAvatar(ctx, alice.ID); err != nil {
		t.Fatalf("DeleteAvatar: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty storage, got %d objects", store.Len())
	}
	me, _ = svc.Me(ctx, alice.ID)
	if me.Avatar != "" {
		t.Fatalf("avatar not cleared: %q", me.Avatar)
	}
}
