package shiptracker

import (
	"context"
	"database/sql"
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS shipments (
	ledger               TEXT    NOT NULL,
	id                   INTEGER NOT NULL,
	product_name         TEXT    NOT NULL,
	product_description  TEXT    NOT NULL,
	location_origin      TEXT    NOT NULL,
	location_destination TEXT    NOT NULL,
	status               TEXT    NOT NULL,
	PRIMARY KEY (ledger, id)
)`

// SQLiteStore keeps a ledger in the "shipments" table of a SQLite database.
type SQLiteStore struct {
	db         *sql.DB
	ledgerName string
	owned      bool
}

// NewSQLiteStore opens the database at path, unless one is given with WithSQLiteDB,
// and creates the shipments table if it does not exist.
func NewSQLiteStore(ctx context.Context, path string, optFns ...func(*StoreOptions)) (*SQLiteStore, error) {
	o := defaultStoreOptions()
	for _, opt := range optFns {
		opt(o)
	}
	s := &SQLiteStore{
		db:         o.DB,
		ledgerName: o.LedgerName,
	}
	if s.db == nil {
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, &SQLiteError{Cause: err}
		}
		s.db = db
		s.owned = true
	}
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = s.Close()
		return nil, &SQLiteError{Cause: err}
	}
	return s, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]Shipment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_name, product_description, location_origin, location_destination, status
		FROM shipments WHERE ledger = ? ORDER BY id ASC`, s.ledgerName)
	if err != nil {
		return nil, &SQLiteError{Cause: err}
	}
	defer rows.Close()

	shipments := make([]Shipment, 0)
	for rows.Next() {
		var sh Shipment
		err := rows.Scan(&sh.ID, &sh.ProductName, &sh.ProductDescription,
			&sh.LocationOrigin, &sh.LocationDestination, &sh.Status)
		if err != nil {
			return nil, &SQLiteError{Cause: err}
		}
		shipments = append(shipments, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, &SQLiteError{Cause: err}
	}
	return shipments, nil
}

// Append inserts the shipments in a single transaction; either all of them are stored or none.
func (s *SQLiteStore) Append(ctx context.Context, shipments ...Shipment) (err error) {
	if len(shipments) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &SQLiteError{Cause: err}
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var stored int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM shipments WHERE ledger = ?`, s.ledgerName).Scan(&stored)
	if err != nil {
		return &SQLiteError{Cause: err}
	}
	if err = checkAppend(stored, shipments); err != nil {
		return err
	}
	for _, sh := range shipments {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO shipments (ledger, id, product_name, product_description, location_origin, location_destination, status)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.ledgerName, sh.ID, sh.ProductName, sh.ProductDescription,
			sh.LocationOrigin, sh.LocationDestination, sh.Status)
		if err != nil {
			err = handleSQLiteError(err, sh.ID)
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return &SQLiteError{Cause: err}
	}
	return nil
}

// Close closes the database if the store opened it.
func (s *SQLiteStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

func handleSQLiteError(err error, id int) error {
	var cause *sqlite.Error
	if errors.As(err, &cause) && cause.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
		return &IDDuplicatedError{ID: id}
	}
	return &SQLiteError{Cause: err}
}
