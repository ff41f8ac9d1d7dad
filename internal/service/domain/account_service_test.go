package domain_test

import (
	"errors"
	"testing"

	"github.com/qs-lzh/train-ticket/internal/service"
	"github.com/qs-lzh/train-ticket/internal/service/domain"
)

func TestRegisterStoresLowercasedEmailAndHashedPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := domain.NewAccountService(repo, domain.NewBcryptHasher())

	user, err := svc.Register("Alice", "Alice@X.Com", "Passw0rd1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "alice@x.com" {
		t.Errorf("email = %q, want lowercased", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "Passw0rd1" {
		t.Errorf("password stored without hashing")
	}
}

func TestRegisterRejectsDuplicateEmailCaseInsensitively(t *testing.T) {
	repo := newFakeUserRepo()
	svc := domain.NewAccountService(repo, domain.NewBcryptHasher())

	if _, err := svc.Register("Alice", "alice@x.com", "Passw0rd1"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register("Another Alice", "ALICE@x.com", "Passw0rd2")
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
	if len(repo.users) != 1 {
		t.Errorf("user count = %d, want 1, rejected registration must not create a row", len(repo.users))
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := domain.NewAccountService(repo, domain.NewBcryptHasher())
	if _, err := svc.Register("Alice", "alice@x.com", "Passw0rd1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Authenticate("ALICE@X.COM", "Passw0rd1"); err != nil {
		t.Errorf("Authenticate with correct password and different casing: %v", err)
	}

	if _, err := svc.Authenticate("alice@x.com", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate("nobody@x.com", "Passw0rd1"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}
