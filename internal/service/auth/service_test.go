package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"moneydream/internal/domain"
)

type stubUserRepo struct {
	user *domain.User
	err  error
}

func (s *stubUserRepo) Create(_ context.Context, _ domain.User) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserRepo) GetByID(_ context.Context, _ string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func seededUser(t *testing.T) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &domain.User{
		ID:           "2",
		Email:        "cliente@moneydream.com",
		PasswordHash: string(hash),
		Name:         "Cliente",
		Role:         domain.RoleClient,
	}
}

func TestLoginHappyPath(t *testing.T) {
	svc := New(&stubUserRepo{user: seededUser(t)})
	id, err := svc.Login(context.Background(), "Cliente@MoneyDream.com", "123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.ID != "2" || id.Role != domain.RoleClient || id.Email != "cliente@moneydream.com" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := New(&stubUserRepo{user: seededUser(t)})
	_, err := svc.Login(context.Background(), "cliente@moneydream.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := New(&stubUserRepo{err: domain.ErrNotFound})
	_, err := svc.Login(context.Background(), "nobody@moneydream.com", "123456")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginEmptyInput(t *testing.T) {
	svc := New(&stubUserRepo{user: seededUser(t)})
	if _, err := svc.Login(context.Background(), "", "123456"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "cliente@moneydream.com", "  "); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestLoginRepoError(t *testing.T) {
	boom := errors.New("boom")
	svc := New(&stubUserRepo{err: boom})
	if _, err := svc.Login(context.Background(), "cliente@moneydream.com", "123456"); !errors.Is(err, boom) {
		t.Fatalf("expected repo error passed through, got %v", err)
	}
}
