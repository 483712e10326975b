package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
	"github.com/mamadbah2/fleetstock/internal/repository/memory"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	user := models.User{ID: "U-1", Name: "Somchai", Username: "somchai", Role: models.RoleStaff}

	token, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != user {
		t.Errorf("expected %+v, got %+v", user, got)
	}
}

func TestTokenIssuer_Rejects(t *testing.T) {
	user := models.User{ID: "U-1", Name: "A", Username: "a", Role: models.RoleAdmin}

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, _ := expired.Issue(user)

	foreignToken, _ := NewTokenIssuer("other", time.Hour).Issue(user)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: expiredToken},
		{name: "wrong secret", token: foreignToken},
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
	}

	issuer := NewTokenIssuer("secret", time.Hour)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Parse(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()

	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := repo.InsertUser(ctx, models.User{ID: "U-1", Name: "Admin", Username: "admin", Role: models.RoleAdmin, PasswordHash: hash}); err != nil {
		t.Fatalf("InsertUser: %v", err)
	}

	svc := NewService(repo, NewTokenIssuer("secret", time.Hour), nil)

	token, user, err := svc.Login(ctx, "admin", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != "U-1" {
		t.Errorf("unexpected user %+v", user)
	}

	acting, err := svc.Authenticate(ctx, token)
	if err != nil || !acting.IsAdmin() {
		t.Errorf("expected admin from token, got %+v (%v)", acting, err)
	}

	for _, tc := range []struct{ username, password string }{
		{"admin", "wrong"},
		{"nobody", "s3cret"},
		{"", ""},
	} {
		if _, _, err := svc.Login(ctx, tc.username, tc.password); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q, %q): expected ErrInvalidCredentials, got %v", tc.username, tc.password, err)
		}
	}
}

func TestService_AuthenticateRequiresExistingAccount(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	issuer := NewTokenIssuer("secret", time.Hour)
	svc := NewService(repo, issuer, nil)

	staff := models.User{ID: "U-2", Name: "Staff", Username: "somchai", Role: models.RoleStaff}
	if err := repo.InsertUser(ctx, staff); err != nil {
		t.Fatalf("InsertUser: %v", err)
	}
	token, err := issuer.Issue(staff)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := svc.Authenticate(ctx, token); err != nil {
		t.Fatalf("Authenticate before deletion: %v", err)
	}

	if err := repo.DeleteUser(ctx, "U-2"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("deleted account: expected ErrInvalidToken, got %v", err)
	}

	recreated := staff
	recreated.ID = "U-3"
	if err := repo.InsertUser(ctx, recreated); err != nil {
		t.Fatalf("InsertUser: %v", err)
	}
	if _, err := svc.Authenticate(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("recreated username: expected ErrInvalidToken, got %v", err)
	}
}
