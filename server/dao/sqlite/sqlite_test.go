package sqlite

import (
	"context"
	"testing"

	"github.com/dekarrin/relang/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_NewDatastore_CreatesTables(t *testing.T) {
	store, err := NewDatastore(t.TempDir())
	assert.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store.Users())
	assert.NotNil(t, store.Library())
}

func Test_UsersDB_CreateGetUpdateDelete(t *testing.T) {
	store, err := NewDatastore(t.TempDir())
	assert.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	users := store.Users()

	created, err := users.Create(ctx, dao.User{Username: "alice", Password: "hash", Role: dao.Normal})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	fetched, err := users.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", fetched.Username)

	byName, err := users.GetByUsername(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	fetched.Role = dao.Admin
	updated, err := users.Update(ctx, fetched.ID, fetched)
	assert.NoError(t, err)
	assert.Equal(t, dao.Admin, updated.Role)

	deleted, err := users.Delete(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = users.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func Test_UsersDB_Create_RejectsDuplicateUsername(t *testing.T) {
	store, err := NewDatastore(t.TempDir())
	assert.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	users := store.Users()

	_, err = users.Create(ctx, dao.User{Username: "alice", Password: "hash", Role: dao.Normal})
	assert.NoError(t, err)

	_, err = users.Create(ctx, dao.User{Username: "alice", Password: "hash2", Role: dao.Normal})
	assert.ErrorIs(t, err, dao.ErrConstraintViolation)
}

func Test_LibraryDB_CreateGetUpdateDelete(t *testing.T) {
	store, err := NewDatastore(t.TempDir())
	assert.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	lib := store.Library()
	owner := uuid.New()

	created, err := lib.Create(ctx, dao.LibraryItem{
		OwnerID: owner,
		Name:    "evens",
		Kind:    dao.KindRegex,
		Source:  "(0|1)*0",
	})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	fetched, err := lib.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "evens", fetched.Name)
	assert.Equal(t, "(0|1)*0", fetched.Source)

	byName, err := lib.GetByOwnerAndName(ctx, owner, "evens")
	assert.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	fetched.Name = "renamed"
	updated, err := lib.Update(ctx, fetched.ID, fetched)
	assert.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	all, err := lib.GetAllByOwner(ctx, owner)
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	deleted, err := lib.Delete(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = lib.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, dao.ErrNotFound)
}

func Test_LibraryDB_Create_RejectsDuplicateNamePerOwner(t *testing.T) {
	store, err := NewDatastore(t.TempDir())
	assert.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	lib := store.Library()
	owner := uuid.New()

	_, err = lib.Create(ctx, dao.LibraryItem{OwnerID: owner, Name: "evens", Kind: dao.KindRegex, Source: "a*"})
	assert.NoError(t, err)

	_, err = lib.Create(ctx, dao.LibraryItem{OwnerID: owner, Name: "evens", Kind: dao.KindRegex, Source: "b*"})
	assert.ErrorIs(t, err, dao.ErrConstraintViolation)
}
