package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"daybook/internal/ports"
)

const schemaVersion = "1"

// Store implements ports.RecordStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements RecordStore and CascadeDeleter
var (
	_ ports.RecordStore    = (*Store)(nil)
	_ ports.CascadeDeleter = (*Store)(nil)
)

// Open creates the database file if needed and applies the schema
func Open(dbPath string) (*Store, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL for concurrent readers; foreign keys guard items against missing lists
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
	` + schema)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file location
func (s *Store) Path() string {
	return s.dbPath
}

// Select returns the rows of table matching filter
func (s *Store) Select(ctx context.Context, tableName string, filter ports.Filter, order ...ports.Order) ([]ports.Row, error) {
	t, err := lookupTable(tableName)
	if err != nil {
		return nil, err
	}
	where, args, err := t.where(filter)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + strings.Join(t.columns, ", ") + " FROM " + t.name + where
	if len(order) > 0 {
		terms := make([]string, 0, len(order))
		for _, o := range order {
			if _, err := t.kind(o.Column); err != nil {
				return nil, err
			}
			term := o.Column + " ASC"
			if o.Desc {
				term = o.Column + " DESC"
			}
			terms = append(terms, term)
		}
		query += " ORDER BY " + strings.Join(terms, ", ")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ports.Row
	for rows.Next() {
		r, err := t.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Insert adds a row and returns it as stored, including its assigned id
func (s *Store) Insert(ctx context.Context, tableName string, row ports.Row) (ports.Row, error) {
	t, err := lookupTable(tableName)
	if err != nil {
		return nil, err
	}
	if len(row) == 0 {
		return nil, fmt.Errorf("insert into %s: empty row", t.name)
	}

	cols := make([]string, 0, len(row))
	args := make([]any, 0, len(row))
	for _, col := range t.columns {
		v, ok := row[col]
		if !ok {
			continue
		}
		enc, err := encode(t.kinds[col], v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.name, col, err)
		}
		cols = append(cols, col)
		args = append(args, enc)
	}
	if len(cols) != len(row) {
		return nil, fmt.Errorf("insert into %s: unknown columns in %v", t.name, keys(row))
	}

	query := "INSERT INTO " + t.name + " (" + strings.Join(cols, ", ") + ") VALUES (" +
		placeholders(len(cols)) + ") RETURNING " + strings.Join(t.columns, ", ")

	return t.scan(s.db.QueryRowContext(ctx, query, args...))
}

// Update patches the first row matching filter and returns it
func (s *Store) Update(ctx context.Context, tableName string, filter ports.Filter, patch ports.Row) (ports.Row, error) {
	t, err := lookupTable(tableName)
	if err != nil {
		return nil, err
	}
	if len(filter) == 0 {
		return nil, fmt.Errorf("update %s: refusing to update without a filter", t.name)
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("update %s: empty patch", t.name)
	}

	sets := make([]string, 0, len(patch))
	args := make([]any, 0, len(patch)+len(filter))
	for _, col := range t.columns {
		v, ok := patch[col]
		if !ok {
			continue
		}
		if col == "id" {
			return nil, fmt.Errorf("update %s: id is immutable", t.name)
		}
		enc, err := encode(t.kinds[col], v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.name, col, err)
		}
		sets = append(sets, col+" = ?")
		args = append(args, enc)
	}
	if len(sets) != len(patch) {
		return nil, fmt.Errorf("update %s: unknown columns in %v", t.name, keys(patch))
	}

	where, whereArgs, err := t.where(filter)
	if err != nil {
		return nil, err
	}
	args = append(args, whereArgs...)

	// rowid subquery keeps the write to a single row
	query := "UPDATE " + t.name + " SET " + strings.Join(sets, ", ") +
		" WHERE rowid = (SELECT rowid FROM " + t.name + where + " LIMIT 1)" +
		" RETURNING " + strings.Join(t.columns, ", ")

	r, err := t.scan(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNoRows
	}
	return r, err
}

// Delete removes the rows matching filter
func (s *Store) Delete(ctx context.Context, tableName string, filter ports.Filter) error {
	t, err := lookupTable(tableName)
	if err != nil {
		return err
	}
	return deleteRows(ctx, s.db, t, filter)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func deleteRows(ctx context.Context, db execer, t table, filter ports.Filter) error {
	if len(filter) == 0 {
		return fmt.Errorf("delete from %s: refusing to delete without a filter", t.name)
	}
	where, args, err := t.where(filter)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, "DELETE FROM "+t.name+where, args...)
	return err
}

// where builds a parameterised WHERE clause from a filter
func (t table) where(filter ports.Filter) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	clauses := make([]string, 0, len(filter))
	var args []any
	for _, c := range filter {
		k, err := t.kind(c.Column)
		if err != nil {
			return "", nil, err
		}
		switch c.Op {
		case ports.OpEq, ports.OpGte, ports.OpLte:
			enc, err := encode(k, c.Value)
			if err != nil {
				return "", nil, fmt.Errorf("%s.%s: %w", t.name, c.Column, err)
			}
			clauses = append(clauses, c.Column+" "+operator(c.Op)+" ?")
			args = append(args, enc)
		case ports.OpIn:
			values, ok := c.Value.([]any)
			if !ok {
				return "", nil, fmt.Errorf("%s.%s: IN expects a list, got %T", t.name, c.Column, c.Value)
			}
			if len(values) == 0 {
				clauses = append(clauses, "0 = 1")
				continue
			}
			for _, v := range values {
				enc, err := encode(k, v)
				if err != nil {
					return "", nil, fmt.Errorf("%s.%s: %w", t.name, c.Column, err)
				}
				args = append(args, enc)
			}
			clauses = append(clauses, c.Column+" IN ("+placeholders(len(values))+")")
		default:
			return "", nil, fmt.Errorf("unsupported operator %d", c.Op)
		}
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scan reads one row in column order into a ports.Row with Go typed values
func (t table) scan(sc scanner) (ports.Row, error) {
	dest := make([]any, len(t.columns))
	for i, col := range t.columns {
		switch t.kinds[col] {
		case kindInt, kindBool:
			dest[i] = new(sql.NullInt64)
		default:
			dest[i] = new(sql.NullString)
		}
	}
	if err := sc.Scan(dest...); err != nil {
		return nil, err
	}

	r := make(ports.Row, len(t.columns))
	for i, col := range t.columns {
		switch t.kinds[col] {
		case kindInt:
			r[col] = dest[i].(*sql.NullInt64).Int64
		case kindBool:
			r[col] = dest[i].(*sql.NullInt64).Int64 != 0
		case kindTime:
			ts, err := time.Parse(timeLayout, dest[i].(*sql.NullString).String)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t.name, col, err)
			}
			r[col] = ts
		default:
			r[col] = dest[i].(*sql.NullString).String
		}
	}
	return r, nil
}

func operator(op ports.Op) string {
	switch op {
	case ports.OpGte:
		return ">="
	case ports.OpLte:
		return "<="
	default:
		return "="
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func keys(r ports.Row) []string {
	out := make([]string, 0, len(r))
	for k := range r {
		out = append(out, k)
	}
	return out
}
