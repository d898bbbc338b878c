package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/relang/server/dao"
	"github.com/google/uuid"
)

type LibraryDB struct {
	db *sql.DB
}

func (repo *LibraryDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS library_items (
		id TEXT NOT NULL PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		source TEXT NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL,
		UNIQUE(owner_id, name)
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *LibraryDB) Create(ctx context.Context, item dao.LibraryItem) (dao.LibraryItem, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.LibraryItem{}, fmt.Errorf("could not generate ID: %w", err)
	}

	now := time.Now()

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO library_items (id, owner_id, name, kind, source, created, modified) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(item.OwnerID),
		item.Name,
		item.Kind.String(),
		convertToDB_String(item.Source),
		convertToDB_Time(now),
		convertToDB_Time(now),
	)
	if err != nil {
		return dao.LibraryItem{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *LibraryDB) scanRow(row interface {
	Scan(dest ...interface{}) error
}) (dao.LibraryItem, error) {
	var item dao.LibraryItem
	var id, ownerID, kind, source string
	var created, modified int64

	err := row.Scan(&id, &ownerID, &item.Name, &kind, &source, &created, &modified)
	if err != nil {
		return item, wrapDBError(err)
	}

	if err := convertFromDB_UUID(id, &item.ID); err != nil {
		return item, err
	}
	if err := convertFromDB_UUID(ownerID, &item.OwnerID); err != nil {
		return item, err
	}
	parsedKind, err := dao.ParseItemKind(kind)
	if err != nil {
		return item, fmt.Errorf("stored kind %q is invalid: %w", kind, err)
	}
	item.Kind = parsedKind
	if err := convertFromDB_String(source, &item.Source); err != nil {
		return item, err
	}
	convertFromDB_Time(created, &item.Created)
	convertFromDB_Time(modified, &item.Modified)

	return item, nil
}

func (repo *LibraryDB) GetByID(ctx context.Context, id uuid.UUID) (dao.LibraryItem, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, kind, source, created, modified FROM library_items WHERE id = ?;`,
		convertToDB_UUID(id),
	)
	return repo.scanRow(row)
}

func (repo *LibraryDB) GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (dao.LibraryItem, error) {
	row := repo.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, kind, source, created, modified FROM library_items WHERE owner_id = ? AND name = ?;`,
		convertToDB_UUID(ownerID), name,
	)
	return repo.scanRow(row)
}

func (repo *LibraryDB) GetAllByOwner(ctx context.Context, ownerID uuid.UUID) ([]dao.LibraryItem, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, owner_id, name, kind, source, created, modified FROM library_items WHERE owner_id = ? ORDER BY name;`,
		convertToDB_UUID(ownerID),
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.LibraryItem
	for rows.Next() {
		item, err := repo.scanRow(rows)
		if err != nil {
			return all, err
		}
		all = append(all, item)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *LibraryDB) Update(ctx context.Context, id uuid.UUID, item dao.LibraryItem) (dao.LibraryItem, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE library_items SET id=?, owner_id=?, name=?, kind=?, source=?, modified=? WHERE id=?;`,
		convertToDB_UUID(item.ID),
		convertToDB_UUID(item.OwnerID),
		item.Name,
		item.Kind.String(),
		convertToDB_String(item.Source),
		convertToDB_Time(time.Now()),
		convertToDB_UUID(id),
	)
	if err != nil {
		return dao.LibraryItem{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return dao.LibraryItem{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return dao.LibraryItem{}, dao.ErrNotFound
	}

	return repo.GetByID(ctx, item.ID)
}

func (repo *LibraryDB) Delete(ctx context.Context, id uuid.UUID) (dao.LibraryItem, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM library_items WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *LibraryDB) Close() error {
	return repo.db.Close()
}
