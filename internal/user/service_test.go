package user

import (
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	created, err := svc.Register(User{Email: "amina@example.com", Name: "Amina"}, "s3cret-pw")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if created.Role != RoleUser {
		t.Fatalf("new users must get role %q, got %q", RoleUser, created.Role)
	}
	if created.Password == "s3cret-pw" {
		t.Fatalf("password stored in plaintext")
	}

	// duplicate email
	if _, err := svc.Register(User{Email: "amina@example.com"}, "other"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	u, err := svc.Authenticate("amina@example.com", "s3cret-pw")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if u.ID != created.ID {
		t.Fatalf("authenticated wrong user: %+v", u)
	}

	if _, err := svc.Authenticate("amina@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials on bad password, got %v", err)
	}
	if _, err := svc.Authenticate("nobody@example.com", "s3cret-pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials on unknown email, got %v", err)
	}
}

func TestUpdateProfile_PartialPatch(t *testing.T) {
	repo := NewInMemoryRepository([]User{{ID: 4, Email: "t@example.com", Name: "Tariq", Phone: "0170000000", Role: RoleUser}})
	svc := NewService(repo)

	updated, err := svc.UpdateProfile(4, User{Phone: "0171111111"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Phone != "0171111111" {
		t.Fatalf("phone not updated: %+v", updated)
	}
	if updated.Name != "Tariq" {
		t.Fatalf("untouched field changed: %+v", updated)
	}
	if updated.Email != "t@example.com" {
		t.Fatalf("email must not change via profile patch: %+v", updated)
	}
}

func TestSetRole(t *testing.T) {
	repo := NewInMemoryRepository([]User{{ID: 4, Email: "t@example.com", Role: RoleUser}})
	svc := NewService(repo)

	u, err := svc.SetRole(4, RoleSeller)
	if err != nil {
		t.Fatalf("set role failed: %v", err)
	}
	if u.Role != RoleSeller {
		t.Fatalf("role = %q, want %q", u.Role, RoleSeller)
	}

	if _, err := svc.SetRole(4, "superuser"); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestAuthorize(t *testing.T) {
	admin := Principal{UserID: 1, Role: RoleAdmin}
	shopper := Principal{UserID: 2, Role: RoleUser}

	if err := Authorize(admin, RoleAdmin); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	if err := Authorize(shopper, RoleAdmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := Authorize(Principal{}, RoleAdmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("empty principal must be forbidden, got %v", err)
	}
}

func TestMintToken_RoundTrip(t *testing.T) {
	tok, err := MintToken(User{ID: 9, Email: "x@example.com", Role: RoleAdmin}, "test-secret")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if tok == "" {
		t.Fatalf("empty token")
	}
}
