package auth

import (
	"context"
	"testing"

	"stayhub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byUsername map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byUsername: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.byUsername[u.Username] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) GenerateToken(userID uuid.UUID, role string) (string, error) {
	return "token-" + role, nil
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, fakeTokenIssuer{}, func(string, ...interface{}) {})
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{
		Username: "guest",
		Email:    "guest@example.com",
		Password: "guest12345",
		Name:     "Nguyen Van A",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGuest, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("guest12345")))

	res, err := svc.Login(ctx, LoginRequest{Username: "guest", Password: "guest12345"})
	require.NoError(t, err)
	assert.Equal(t, "token-GUEST", res.Token)
	assert.Equal(t, u.ID, res.User.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, fakeTokenIssuer{}, func(string, ...interface{}) {})
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Username: "nobody", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, RegisterRequest{
		Username: "guest", Email: "g@example.com", Password: "guest12345", Name: "G",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Username: "guest", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
