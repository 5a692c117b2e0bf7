package model

import (
	"strings"
	"testing"
)

func TestNewUserNormalizesEmail(t *testing.T) {
	user, err := NewUser(SignupRequest{
		Email:    "  Cashier.One@Example.COM ",
		Password: "secret123",
		FullName: "Cashier One",
		Role:     RoleCashier,
	})
	if err != nil {
		t.Fatalf("NewUser failed: %v", err)
	}
	if user.Email != "cashier.one@example.com" {
		t.Errorf("expected normalized email, got %s", user.Email)
	}
}

func TestNewUserHashesPassword(t *testing.T) {
	user, err := NewUser(SignupRequest{
		Email:    "owner@example.com",
		Password: "secret123",
		FullName: "Owner",
		Role:     RoleOwner,
	})
	if err != nil {
		t.Fatalf("NewUser failed: %v", err)
	}
	if user.Password == "secret123" {
		t.Fatal("password stored in plaintext")
	}
	if !strings.HasPrefix(user.Password, "$2") {
		t.Errorf("expected bcrypt hash, got %s", user.Password[:4])
	}
	if !user.CheckPassword("secret123") {
		t.Error("correct password must verify")
	}
	if user.CheckPassword("wrong-pass1") {
		t.Error("wrong password must not verify")
	}
}

func TestPasswordPolicy(t *testing.T) {
	base := SignupRequest{Email: "a@b.co", FullName: "A", Role: RoleManager}

	for _, pw := range []string{"short1", "allletters", "12345678"} {
		req := base
		req.Password = pw
		if _, err := NewUser(req); err == nil {
			t.Errorf("password %q should be rejected", pw)
		}
	}

	req := base
	req.Password = "letters4ndnumbers"
	if _, err := NewUser(req); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
}

func TestNewUserRejectsBadInput(t *testing.T) {
	if _, err := NewUser(SignupRequest{Email: "not-an-email", Password: "secret123", FullName: "X", Role: RoleCashier}); err == nil {
		t.Error("expected error for invalid email")
	}
	if _, err := NewUser(SignupRequest{Email: "a@b.co", Password: "secret123", FullName: "", Role: RoleCashier}); err == nil {
		t.Error("expected error for empty full name")
	}
	if _, err := NewUser(SignupRequest{Email: "a@b.co", Password: "secret123", FullName: "X", Role: "Admin"}); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestRoleEnum(t *testing.T) {
	for _, r := range []Role{RoleOwner, RoleManager, RoleCashier} {
		if !r.Valid() {
			t.Errorf("role %s should be valid", r)
		}
	}
	if Role("Supervisor").Valid() {
		t.Error("unknown role must be invalid")
	}
}
