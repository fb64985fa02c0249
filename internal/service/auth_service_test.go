package service

import (
	"errors"
	"testing"

	"itms_backend/internal/models"
)

const testSigningKey = "test-signing-key"

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	CreateFn        func(username, hash string) (int, error)
	GetByUsernameFn func(username string) (*models.User, error)

	createCalls []struct {
		username string
		hash     string
	}
}

func (m *mockAuthRepo) Create(username, hash string) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		hash     string
	}{username: username, hash: hash})
	return m.CreateFn(username, hash)
}

func (m *mockAuthRepo) GetByUsername(username string) (*models.User, error) {
	return m.GetByUsernameFn(username)
}

func TestAuthService_SignUp(t *testing.T) {
	mock := &mockAuthRepo{
		CreateFn: func(username, hash string) (int, error) {
			return 42, nil
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	id, err := svc.SignUp("alice", "s3cr3t")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.hash == "s3cr3t" {
		t.Error("password must be stored hashed")
	}
	if err := verifyPassword(call.hash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestAuthService_SignUp_EmptyPassword(t *testing.T) {
	mock := &mockAuthRepo{
		CreateFn: func(username, hash string) (int, error) {
			t.Fatal("Create should not be called for empty password")
			return 0, nil
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	if _, err := svc.SignUp("bob", "   "); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	user := &models.User{ID: 7, Username: "diana", PasswordHash: hash}

	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return user, nil
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	token, err := svc.GenerateToken("diana", "letmein")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if uid != 7 {
		t.Fatalf("user id = %d, want 7", uid)
	}

	// A token signed with a different key must be rejected.
	other := NewAuthService(mock, "other-key")
	if _, err := other.ParseToken(token); err == nil {
		t.Fatal("expected error for foreign signing key")
	}
}

func TestAuthService_GenerateToken_Failures(t *testing.T) {
	hash, _ := hashPassword("right")

	t.Run("wrong password", func(t *testing.T) {
		mock := &mockAuthRepo{
			GetByUsernameFn: func(username string) (*models.User, error) {
				return &models.User{ID: 1, PasswordHash: hash}, nil
			},
		}
		svc := NewAuthService(mock, testSigningKey)
		if _, err := svc.GenerateToken("u", "wrong"); !errors.Is(err, ErrInvalidPassword) {
			t.Fatalf("err = %v, want ErrInvalidPassword", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		mock := &mockAuthRepo{
			GetByUsernameFn: func(username string) (*models.User, error) {
				return nil, nil
			},
		}
		svc := NewAuthService(mock, testSigningKey)
		if _, err := svc.GenerateToken("ghost", "x"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("err = %v, want ErrUserNotFound", err)
		}
	})

	t.Run("repo error", func(t *testing.T) {
		mock := &mockAuthRepo{
			GetByUsernameFn: func(username string) (*models.User, error) {
				return nil, errors.New("db down")
			},
		}
		svc := NewAuthService(mock, testSigningKey)
		if _, err := svc.GenerateToken("u", "x"); err == nil {
			t.Fatal("expected repo error")
		}
	})
}
