package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dekarrin/relang/server/dao"
	"github.com/google/uuid"
)

func NewLibraryRepository() *InMemoryLibraryRepository {
	return &InMemoryLibraryRepository{
		items:          make(map[uuid.UUID]dao.LibraryItem),
		byOwnerIndex:   make(map[uuid.UUID][]uuid.UUID),
		byOwnerAndName: make(map[string]uuid.UUID),
	}
}

type InMemoryLibraryRepository struct {
	items        map[uuid.UUID]dao.LibraryItem
	byOwnerIndex map[uuid.UUID][]uuid.UUID

	// byOwnerAndName is keyed on ownerID.String()+"\x00"+name.
	byOwnerAndName map[string]uuid.UUID
}

func ownerNameKey(ownerID uuid.UUID, name string) string {
	return ownerID.String() + "\x00" + name
}

func (ilr *InMemoryLibraryRepository) Close() error {
	return nil
}

func (ilr *InMemoryLibraryRepository) Create(ctx context.Context, item dao.LibraryItem) (dao.LibraryItem, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.LibraryItem{}, fmt.Errorf("could not generate ID: %w", err)
	}

	key := ownerNameKey(item.OwnerID, item.Name)
	if _, ok := ilr.byOwnerAndName[key]; ok {
		return dao.LibraryItem{}, dao.ErrConstraintViolation
	}

	now := time.Now()
	item.ID = newUUID
	item.Created = now
	item.Modified = now

	ilr.items[item.ID] = item
	ilr.byOwnerIndex[item.OwnerID] = append(ilr.byOwnerIndex[item.OwnerID], item.ID)
	ilr.byOwnerAndName[key] = item.ID

	return item, nil
}

func (ilr *InMemoryLibraryRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.LibraryItem, error) {
	item, ok := ilr.items[id]
	if !ok {
		return dao.LibraryItem{}, dao.ErrNotFound
	}
	return item, nil
}

func (ilr *InMemoryLibraryRepository) GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (dao.LibraryItem, error) {
	id, ok := ilr.byOwnerAndName[ownerNameKey(ownerID, name)]
	if !ok {
		return dao.LibraryItem{}, dao.ErrNotFound
	}
	return ilr.items[id], nil
}

func (ilr *InMemoryLibraryRepository) GetAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]dao.LibraryItem, error) {
	ids := ilr.byOwnerIndex[ownerID]
	all := make([]dao.LibraryItem, 0, len(ids))
	for _, id := range ids {
		all = append(all, ilr.items[id])
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})

	return all, nil
}

func (ilr *InMemoryLibraryRepository) Update(ctx context.Context, id uuid.UUID, item dao.LibraryItem) (dao.LibraryItem, error) {
	existing, ok := ilr.items[id]
	if !ok {
		return dao.LibraryItem{}, dao.ErrNotFound
	}

	newKey := ownerNameKey(item.OwnerID, item.Name)
	oldKey := ownerNameKey(existing.OwnerID, existing.Name)
	if newKey != oldKey {
		if _, ok := ilr.byOwnerAndName[newKey]; ok {
			return dao.LibraryItem{}, dao.ErrConstraintViolation
		}
	}
	if item.ID != id {
		if _, ok := ilr.items[item.ID]; ok {
			return dao.LibraryItem{}, dao.ErrConstraintViolation
		}
	}

	item.Modified = time.Now()
	ilr.items[item.ID] = item
	if item.ID != id {
		delete(ilr.items, id)
	}
	if newKey != oldKey {
		delete(ilr.byOwnerAndName, oldKey)
		ilr.byOwnerAndName[newKey] = item.ID
	} else {
		ilr.byOwnerAndName[newKey] = item.ID
	}

	if item.OwnerID != existing.OwnerID {
		ilr.removeFromOwnerIndex(existing.OwnerID, existing.ID)
		ilr.byOwnerIndex[item.OwnerID] = append(ilr.byOwnerIndex[item.OwnerID], item.ID)
	} else if item.ID != id {
		byOwner := ilr.byOwnerIndex[existing.OwnerID]
		for i := range byOwner {
			if byOwner[i] == id {
				byOwner[i] = item.ID
				break
			}
		}
		ilr.byOwnerIndex[existing.OwnerID] = byOwner
	}

	return item, nil
}

func (ilr *InMemoryLibraryRepository) Delete(ctx context.Context, id uuid.UUID) (dao.LibraryItem, error) {
	item, ok := ilr.items[id]
	if !ok {
		return dao.LibraryItem{}, dao.ErrNotFound
	}

	ilr.removeFromOwnerIndex(item.OwnerID, item.ID)
	delete(ilr.byOwnerAndName, ownerNameKey(item.OwnerID, item.Name))
	delete(ilr.items, item.ID)

	return item, nil
}

func (ilr *InMemoryLibraryRepository) removeFromOwnerIndex(ownerID, id uuid.UUID) {
	byOwner := ilr.byOwnerIndex[ownerID]
	for i := range byOwner {
		if byOwner[i] == id {
			byOwner = append(byOwner[:i], byOwner[i+1:]...)
			break
		}
	}
	if len(byOwner) < 1 {
		delete(ilr.byOwnerIndex, ownerID)
	} else {
		ilr.byOwnerIndex[ownerID] = byOwner
	}
}
