package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/gridline/internal/log"
	"github.com/zjrosen/gridline/internal/tableengine"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLite reads every row of table from the database at path, opened
// read-only.
func LoadSQLite(ctx context.Context, path, table string) (Dataset, error) {
	if !identPattern.MatchString(table) {
		return Dataset{}, fmt.Errorf("invalid table name %q", table)
	}

	log.Debug(log.CatSource, "opening database", "path", path)
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return Dataset{}, fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return Dataset{}, fmt.Errorf("opening database: %w", err)
	}
	return QueryTable(ctx, db, table)
}

// QueryTable reads every row of table from an open database.
func QueryTable(ctx context.Context, db *sql.DB, table string) (Dataset, error) {
	if !identPattern.MatchString(table) {
		return Dataset{}, fmt.Errorf("invalid table name %q", table)
	}

	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+table+`"`)
	if err != nil {
		return Dataset{}, fmt.Errorf("querying %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	names, err := rows.Columns()
	if err != nil {
		return Dataset{}, fmt.Errorf("reading columns: %w", err)
	}
	ids, err := columnIDs(names)
	if err != nil {
		return Dataset{}, err
	}

	var records []tableengine.Record
	for rows.Next() {
		raw := make([]any, len(ids))
		ptrs := make([]any, len(ids))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Dataset{}, fmt.Errorf("scanning row: %w", err)
		}
		values := make(map[string]any, len(ids))
		for i, id := range ids {
			values[id] = sqlValue(raw[i])
		}
		records = append(records, tableengine.NewRecord(values))
	}
	if err := rows.Err(); err != nil {
		return Dataset{}, fmt.Errorf("reading rows: %w", err)
	}

	cols := inferColumns(ids, records)
	normalizeNumbers(cols, records)
	return Dataset{Columns: cols, Records: records}, nil
}

func sqlValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case int64:
		return int(v)
	case float64:
		return v
	case []byte:
		return string(v)
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
