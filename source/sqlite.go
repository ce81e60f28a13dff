package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// RowIDColumn is the column name that, when selected first, is carried in
// Data.RowIDs instead of being shown.
const RowIDColumn = "_rowid_"

// SQLite is a read and write-back connection to one database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the database at path. ":memory:" opens a private
// in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) DB() *sql.DB { return s.db }

func (s *SQLite) Close() error { return s.db.Close() }

// Query runs q and returns its result set. Column names become labels.
func (s *SQLite) Query(ctx context.Context, q string, args ...any) (Data, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return Data{}, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return Data{}, fmt.Errorf("query columns: %w", err)
	}
	withID := len(names) > 0 && strings.EqualFold(names[0], RowIDColumn)

	var d Data
	for i, n := range names {
		if withID && i == 0 {
			continue
		}
		d.Columns = append(d.Columns, n)
	}

	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Data{}, fmt.Errorf("scan row %d: %w", len(d.Rows), err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		if withID {
			id, ok := vals[0].(int64)
			if !ok {
				return Data{}, fmt.Errorf("scan row %d: %s is %T, want integer", len(d.Rows), RowIDColumn, vals[0])
			}
			d.RowIDs = append(d.RowIDs, id)
			vals = vals[1:]
		}
		d.Rows = append(d.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return Data{}, fmt.Errorf("query rows: %w", err)
	}
	return d, nil
}

// WriteFunc stores v into column of the row identified by rowID.
type WriteFunc func(ctx context.Context, rowID int64, column string, v any) error

// Writer returns a WriteFunc that updates rows of table.
func (s *SQLite) Writer(table string) WriteFunc {
	return func(ctx context.Context, rowID int64, column string, v any) error {
		q := fmt.Sprintf("UPDATE %s SET %s = ? WHERE rowid = ?", quoteIdent(table), quoteIdent(column))
		res, err := s.db.ExecContext(ctx, q, v, rowID)
		if err != nil {
			return fmt.Errorf("update %s.%s: %w", table, column, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update %s.%s: %w", table, column, err)
		}
		if n == 0 {
			return fmt.Errorf("update %s.%s: %w: %d", table, column, sql.ErrNoRows, rowID)
		}
		return nil
	}
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
