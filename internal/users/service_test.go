package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfscargo/backoffice/internal/auth"
	"github.com/jfscargo/backoffice/internal/platform/httpx"
	"github.com/jfscargo/backoffice/internal/shared"
)

var (
	superAdmin = shared.Identity{UserID: 1, Role: shared.RoleSuperAdmin, Roles: []string{shared.RoleSuperAdmin}}
	admin      = shared.Identity{UserID: 2, Role: shared.RoleAdmin, Roles: []string{shared.RoleAdmin}}
)

type fakeRepo struct {
	users  map[int64]User
	hashes map[int64]string
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int64]User{}, hashes: map[int64]string{}, nextID: 10}
}

func (f *fakeRepo) List(_ context.Context, status string) ([]User, error) {
	var out []User
	for _, u := range f.users {
		if u.Status == status {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (User, error) {
	u, ok := f.users[id]
	if !ok {
		return User{}, httpx.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) Create(_ context.Context, u User, passwordHash string) (int64, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return 0, httpx.ErrDuplicate
		}
	}
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	f.hashes[u.ID] = passwordHash
	return u.ID, nil
}

func (f *fakeRepo) SetStatus(_ context.Context, id int64, status string) error {
	u := f.users[id]
	u.Status = status
	f.users[id] = u
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

func TestCreateHashesPasswordAndCanonicalizesRole(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), superAdmin, CreateInput{
		Name:     "Ririn",
		Email:    "ririn@example.com",
		Password: "sekret123",
		Role:     "superadmin",
	})
	require.NoError(t, err)

	u := repo.users[id]
	assert.Equal(t, shared.RoleSuperAdmin, u.Role)
	assert.Equal(t, StatusActive, u.Status)
	require.NoError(t, auth.CheckPassword(repo.hashes[id], "sekret123"))
}

func TestCreateRejections(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), admin, CreateInput{Name: "X", Email: "x@example.com", Password: "sekret123", Role: "Admin"})
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	_, err = svc.Create(context.Background(), superAdmin, CreateInput{Name: "X", Email: "x@example.com", Password: "sekret123", Role: "Courier"})
	assert.ErrorIs(t, err, httpx.ErrInvalidInput)

	_, err = svc.Create(context.Background(), superAdmin, CreateInput{Name: "X", Email: "x@example.com", Password: "password", Role: "Admin"})
	assert.ErrorIs(t, err, httpx.ErrInvalidInput, "password without digits must be rejected")

	_, err = svc.Create(context.Background(), superAdmin, CreateInput{Name: "X", Email: "x@example.com", Password: "sekret123", Role: "Admin"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), superAdmin, CreateInput{Name: "Y", Email: "x@example.com", Password: "sekret123", Role: "Admin"})
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestLifecycleGuards(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), superAdmin, CreateInput{Name: "X", Email: "x@example.com", Password: "sekret123", Role: "Admin"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SoftDelete(context.Background(), superAdmin, superAdmin.UserID), httpx.ErrInvalidInput, "self delete must be blocked")
	assert.ErrorIs(t, svc.Restore(context.Background(), superAdmin, id), httpx.ErrNotFound, "restore of an active account")

	require.NoError(t, svc.SoftDelete(context.Background(), superAdmin, id))
	assert.Equal(t, StatusDeleted, repo.users[id].Status)

	require.NoError(t, svc.Restore(context.Background(), superAdmin, id))
	assert.Equal(t, StatusActive, repo.users[id].Status)

	require.NoError(t, svc.PermanentDelete(context.Background(), superAdmin, id))
	assert.NotContains(t, repo.users, id)
}
