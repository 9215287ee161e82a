package user

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/carpediction/server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// memStore replicates the unique-email index: check-and-insert under one lock.
type memStore struct {
	mu    sync.Mutex
	users map[string]models.UserModel
}

func newMemStore() *memStore { return &memStore{users: make(map[string]models.UserModel)} }

func (m *memStore) Insert(_ context.Context, rec *models.UserModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[rec.Email]; exists {
		return ErrEmailTaken
	}
	m.users[rec.Email] = *rec
	return nil
}

func (m *memStore) ByEmail(_ context.Context, email string) (*models.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &rec, nil
}

func validReg() Registration {
	return Registration{
		Username:     "alice",
		Email:        "alice@example.com",
		Password:     "correct horse",
		PasswordConf: "correct horse",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := NewService(newMemStore(), zap.NewNop())

	rec, err := svc.Register(context.Background(), validReg())
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", rec.Password)
	assert.True(t, strings.HasPrefix(rec.Password, "$2"), "bcrypt hash expected")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte("correct horse")))
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newMemStore(), zap.NewNop())

	cases := []struct {
		name   string
		mutate func(*Registration)
		field  string
	}{
		{"short username", func(r *Registration) { r.Username = "a" }, "userName"},
		{"bad email", func(r *Registration) { r.Email = "not-an-email" }, "email"},
		{"bare at", func(r *Registration) { r.Email = "@example.com" }, "email"},
		{"short password", func(r *Registration) { r.Password = "short"; r.PasswordConf = "short" }, "password"},
		{"mismatch", func(r *Registration) { r.PasswordConf = "different horse" }, "passwordConf"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := validReg()
			tc.mutate(&reg)
			_, err := svc.Register(context.Background(), reg)
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs, tc.field)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newMemStore(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, validReg())
	require.NoError(t, err)

	reg := validReg()
	reg.Username = "other"
	_, err = svc.Register(ctx, reg)
	assert.ErrorIs(t, err, ErrEmailTaken)

	// email comparisons are case-insensitive
	reg.Email = "ALICE@example.com"
	_, err = svc.Register(ctx, reg)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc := NewService(newMemStore(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Register(ctx, validReg())
	require.NoError(t, err)

	rec, err := svc.Login(ctx, "Alice@Example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice", rec.Username)

	_, err = svc.Login(ctx, "alice@example.com", "wrong horse")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrBadCredentials, "unknown email and wrong password are indistinguishable")
}
