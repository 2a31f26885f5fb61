package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/arloliu/go-bts/record"
)

// ErrInvalidTable indicates a table name that is not a plain SQL identifier.
var ErrInvalidTable = errors.New("export: invalid table name")

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// OpenSQLite opens or creates the SQLite database file at path.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("export: open %s: %w", path, err)
	}

	return db, nil
}

// WriteSQLite appends the rows of cols to table, creating the table when it
// does not exist. Column types are taken from the values: INTEGER when every
// value is an integer, REAL when every value is numeric, TEXT otherwise.
//
// Rows are inserted in one transaction; on error nothing is written.
// Empty columns create nothing.
func WriteSQLite(ctx context.Context, db *sql.DB, table string, cols *record.Columns) error {
	if !identRe.MatchString(table) {
		return fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	names := cols.Names()
	if len(names) == 0 {
		return nil
	}

	defs := make([]string, 0, len(names))
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		q := quoteIdent(name)
		quoted = append(quoted, q)
		defs = append(defs, q+" "+sqlType(cols.Column(name)))
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("export: begin: %w", err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("export: create table %s: %w", table, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s(%s) VALUES(%s)",
		table, strings.Join(quoted, ", "), placeholders))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("export: prepare insert: %w", err)
	}
	defer stmt.Close()

	row := make([]any, len(names))
	for i := 0; i < cols.Rows(); i++ {
		for j, name := range names {
			row[j] = cols.Column(name)[i]
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("export: insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("export: commit: %w", err)
	}

	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func sqlType(values []any) string {
	typ := "INTEGER"
	for _, v := range values {
		switch v.(type) {
		case nil, int64:
		case float64:
			typ = "REAL"
		default:
			return "TEXT"
		}
	}

	return typ
}
