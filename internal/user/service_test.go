package user

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepository struct {
	byEmail map[string]*User
	nextID  int
}

func newMemRepository() *memRepository {
	return &memRepository{byEmail: map[string]*User{}}
}

func (r *memRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memRepository) GetByID(_ context.Context, id string) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memRepository) Create(_ context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.nextID++
	u.ID = "user-" + strconv.Itoa(r.nextID)
	u.CreatedAt = time.Now().UTC()
	clone := *u
	r.byEmail[u.Email] = &clone
	return nil
}

func (r *memRepository) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.LastLoginAt = &t
			return nil
		}
	}
	return ErrNotFound
}

func (r *memRepository) List(_ context.Context, _ Filter) ([]*User, int, error) {
	return nil, 0, nil
}

func (r *memRepository) Update(_ context.Context, u *User) error {
	for _, existing := range r.byEmail {
		if existing.ID == u.ID {
			*existing = *u
			return nil
		}
	}
	return ErrNotFound
}

func (r *memRepository) Deactivate(_ context.Context, id string) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.IsActive = false
			return nil
		}
	}
	return ErrNotFound
}

// plainHasher avoids bcrypt cost in tests.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hash:" + plain, nil }

func (plainHasher) Compare(hash, plain string) error {
	if hash != "hash:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func newTestService() (Service, *memRepository) {
	repo := newMemRepository()
	return NewService(repo, plainHasher{}), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Andi@Example.com ", "supersecret", "Andi")
	require.NoError(t, err)
	assert.Equal(t, "andi@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsAdmin)
	require.NotNil(t, u.DisplayName)
	assert.Equal(t, "Andi", *u.DisplayName)

	logged, err := svc.Login(ctx, "andi@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "   ", "supersecret", "")
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, "andi@example.com", "short", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "andi@example.com", "supersecret", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ANDI@example.com", "supersecret", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestLoginFailures(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "andi@example.com", "supersecret", "")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "andi@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, repo.Deactivate(ctx, u.ID))
	_, err = svc.Login(ctx, "andi@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestSetAdmin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "andi@example.com", "supersecret", "")
	require.NoError(t, err)

	promoted, err := svc.SetAdmin(ctx, u.ID, true)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	stored, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)
}
