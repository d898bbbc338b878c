package inmem

import (
	"context"
	"testing"

	"github.com/dekarrin/relang/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_InMemoryUsersRepository_CreateAndGet(t *testing.T) {
	repo := NewUsersRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.User{Username: "alice", Role: dao.Normal})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "alice", created.Username)

	byID, err := repo.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created, byID)

	byName, err := repo.GetByUsername(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, created, byName)
}

func Test_InMemoryUsersRepository_CreateRejectsDuplicateUsername(t *testing.T) {
	repo := NewUsersRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, dao.User{Username: "alice"})
	assert.NoError(t, err)

	_, err = repo.Create(ctx, dao.User{Username: "alice"})
	assert.ErrorIs(t, err, dao.ErrConstraintViolation)
}

func Test_InMemoryUsersRepository_GetByID_NotFound(t *testing.T) {
	repo := NewUsersRepository()

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func Test_InMemoryUsersRepository_Update(t *testing.T) {
	repo := NewUsersRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.User{Username: "alice", Role: dao.Normal})
	assert.NoError(t, err)

	created.Role = dao.Admin
	updated, err := repo.Update(ctx, created.ID, created)
	assert.NoError(t, err)
	assert.Equal(t, dao.Admin, updated.Role)

	fetched, err := repo.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, dao.Admin, fetched.Role)
}

func Test_InMemoryUsersRepository_UpdateRejectsUsernameConflict(t *testing.T) {
	repo := NewUsersRepository()
	ctx := context.Background()

	alice, err := repo.Create(ctx, dao.User{Username: "alice"})
	assert.NoError(t, err)
	_, err = repo.Create(ctx, dao.User{Username: "bob"})
	assert.NoError(t, err)

	alice.Username = "bob"
	_, err = repo.Update(ctx, alice.ID, alice)
	assert.ErrorIs(t, err, dao.ErrConstraintViolation)
}

func Test_InMemoryUsersRepository_Delete(t *testing.T) {
	repo := NewUsersRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, dao.User{Username: "alice"})
	assert.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, dao.ErrNotFound)

	_, err = repo.GetByUsername(ctx, "alice")
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func Test_InMemoryUsersRepository_GetAll_SortedByID(t *testing.T) {
	repo := NewUsersRepository()
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"alice", "bob", "carol"} {
		u, err := repo.Create(ctx, dao.User{Username: name})
		assert.NoError(t, err)
		ids = append(ids, u.ID.String())
	}

	all, err := repo.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.True(t, all[i-1].ID.String() <= all[i].ID.String())
	}
}
