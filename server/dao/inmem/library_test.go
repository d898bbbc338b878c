package inmem

import (
	"context"
	"testing"

	"github.com/dekarrin/relang/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_InMemoryLibraryRepository_CreateAndGet(t *testing.T) {
	repo := NewLibraryRepository()
	ctx := context.Background()
	owner := uuid.New()

	created, err := repo.Create(ctx, dao.LibraryItem{
		OwnerID: owner,
		Name:    "evens",
		Kind:    dao.KindRegex,
		Source:  "(0|1)*0",
	})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created, byID)

	byName, err := repo.GetByOwnerAndName(ctx, owner, "evens")
	assert.NoError(t, err)
	assert.Equal(t, created, byName)
}

func Test_InMemoryLibraryRepository_CreateRejectsDuplicateNamePerOwner(t *testing.T) {
	repo := NewLibraryRepository()
	ctx := context.Background()
	owner := uuid.New()

	_, err := repo.Create(ctx, dao.LibraryItem{OwnerID: owner, Name: "evens", Kind: dao.KindRegex})
	assert.NoError(t, err)

	_, err = repo.Create(ctx, dao.LibraryItem{OwnerID: owner, Name: "evens", Kind: dao.KindRegex})
	assert.ErrorIs(t, err, dao.ErrConstraintViolation)
}

func Test_InMemoryLibraryRepository_SameNameDifferentOwnersAllowed(t *testing.T) {
	repo := NewLibraryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, dao.LibraryItem{OwnerID: uuid.New(), Name: "evens", Kind: dao.KindRegex})
	assert.NoError(t, err)
	_, err = repo.Create(ctx, dao.LibraryItem{OwnerID: uuid.New(), Name: "evens", Kind: dao.KindRegex})
	assert.NoError(t, err)
}

func Test_InMemoryLibraryRepository_GetAllByOwner_SortedByName(t *testing.T) {
	repo := NewLibraryRepository()
	ctx := context.Background()
	owner := uuid.New()

	for _, name := range []string{"zeta", "alpha", "mu"} {
		_, err := repo.Create(ctx, dao.LibraryItem{OwnerID: owner, Name: name, Kind: dao.KindGrammar})
		assert.NoError(t, err)
	}

	all, err := repo.GetAllByOwner(ctx, owner)
	assert.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, []string{"alpha", "mu", "zeta"}, []string{all[0].Name, all[1].Name, all[2].Name})
}

func Test_InMemoryLibraryRepository_Update_RenameFreesOldKey(t *testing.T) {
	repo := NewLibraryRepository()
	ctx := context.Background()
	owner := uuid.New()

	item, err := repo.Create(ctx, dao.LibraryItem{OwnerID: owner, Name: "old", Kind: dao.KindAutomaton})
	assert.NoError(t, err)

	item.Name = "new"
	updated, err := repo.Update(ctx, item.ID, item)
	assert.NoError(t, err)
	assert.Equal(t, "new", updated.Name)

	// old name should be reusable now
	_, err = repo.Create(ctx, dao.LibraryItem{OwnerID: owner, Name: "old", Kind: dao.KindAutomaton})
	assert.NoError(t, err)

	_, err = repo.GetByOwnerAndName(ctx, owner, "new")
	assert.NoError(t, err)
}

func Test_InMemoryLibraryRepository_Delete(t *testing.T) {
	repo := NewLibraryRepository()
	ctx := context.Background()
	owner := uuid.New()

	item, err := repo.Create(ctx, dao.LibraryItem{OwnerID: owner, Name: "evens", Kind: dao.KindRegex})
	assert.NoError(t, err)

	_, err = repo.Delete(ctx, item.ID)
	assert.NoError(t, err)

	_, err = repo.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, dao.ErrNotFound)

	all, err := repo.GetAllByOwner(ctx, owner)
	assert.NoError(t, err)
	assert.Len(t, all, 0)
}

func Test_InMemoryLibraryRepository_GetByID_NotFound(t *testing.T) {
	repo := NewLibraryRepository()

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, dao.ErrNotFound)
}
