package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/validation"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the dataset in a SQLite database. Every table carries a
// position column so entities load back in the order they were saved, which
// keeps same-day, same-timestamp tie-breaks stable across a round trip.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// NewSQLiteStore opens or creates the database at dbPath and migrates it.
func NewSQLiteStore(dbPath string, logger logging.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath, logger: logger}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads every entity.
func (s *SQLiteStore) Load(ctx context.Context) (*models.Dataset, error) {
	ds := models.NewDataset()

	if err := queryRows(ctx, s.db, `SELECT id, name FROM owners ORDER BY position`, func(rows *sql.Rows) error {
		var o models.Owner
		if err := rows.Scan(&o.ID, &o.Name); err != nil {
			return err
		}
		ds.Owners = append(ds.Owners, o)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load owners: %w", err)
	}

	if err := queryRows(ctx, s.db, `SELECT id, name, type, color FROM categories ORDER BY position`, func(rows *sql.Rows) error {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Color); err != nil {
			return err
		}
		ds.Categories = append(ds.Categories, c)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	if err := queryRows(ctx, s.db, `SELECT id, name, currency, category_id, owner_id FROM accounts ORDER BY position`, func(rows *sql.Rows) error {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Currency, &a.CategoryID, &a.OwnerID); err != nil {
			return err
		}
		ds.Accounts = append(ds.Accounts, a)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	if err := queryRows(ctx, s.db, `SELECT id, date, account_id, amount, note, timestamp FROM records ORDER BY position`, func(rows *sql.Rows) error {
		var (
			r            models.Record
			date, amount string
		)
		if err := rows.Scan(&r.ID, &date, &r.AccountID, &amount, &r.Note, &r.Timestamp); err != nil {
			return err
		}
		d, err := models.ParseDate(date)
		if err != nil {
			return fmt.Errorf("record %s: %w", r.ID, err)
		}
		r.Date = d
		if r.Amount, err = decimal.NewFromString(amount); err != nil {
			return fmt.Errorf("record %s: %w", r.ID, err)
		}
		ds.Records = append(ds.Records, r)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("Loaded dataset",
			logging.Field{Key: logging.FieldBackend, Value: "sqlite"},
			logging.Field{Key: logging.FieldFile, Value: s.path},
			logging.Field{Key: logging.FieldCount, Value: len(ds.Records)})
	}
	return ds, nil
}

// Save replaces the stored entity set with ds in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, ds *models.Dataset) error {
	if ds == nil {
		ds = models.NewDataset()
	}
	if err := validation.UniqueIDs(ds); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"records", "accounts", "categories", "owners"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, o := range ds.Owners {
		if _, err := tx.ExecContext(ctx, `INSERT INTO owners (position, id, name) VALUES (?, ?, ?)`, i, o.ID, o.Name); err != nil {
			return fmt.Errorf("insert owner %s: %w", o.ID, err)
		}
	}
	for i, c := range ds.Categories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (position, id, name, type, color) VALUES (?, ?, ?, ?, ?)`,
			i, c.ID, c.Name, string(c.Type), c.Color); err != nil {
			return fmt.Errorf("insert category %s: %w", c.ID, err)
		}
	}
	for i, a := range ds.Accounts {
		if _, err := tx.ExecContext(ctx, `INSERT INTO accounts (position, id, name, currency, category_id, owner_id) VALUES (?, ?, ?, ?, ?, ?)`,
			i, a.ID, a.Name, string(a.Currency), a.CategoryID, a.OwnerID); err != nil {
			return fmt.Errorf("insert account %s: %w", a.ID, err)
		}
	}
	for i, r := range ds.Records {
		if _, err := tx.ExecContext(ctx, `INSERT INTO records (position, id, date, account_id, amount, note, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, r.ID, r.Date.String(), r.AccountID, r.Amount.String(), r.Note, r.Timestamp); err != nil {
			return fmt.Errorf("insert record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("Saved dataset",
			logging.Field{Key: logging.FieldBackend, Value: "sqlite"},
			logging.Field{Key: logging.FieldCount, Value: len(ds.Records)})
	}
	return nil
}

func queryRows(ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
