// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchdb loads benchmark results databases, either from a
// directory of CSV files or from a SQL database.
//
// In both forms a database is a set of named tables. In a directory,
// table NAME is the file NAME.csv. In a SQL database, it is the SQL
// table NAME.
package benchdb

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/flux-utah/confirm-analysis/benchclean"
	"github.com/flux-utah/confirm-analysis/benchframe"
)

// LoadDir loads the named tables from the CSV files dir/NAME.csv. If
// no names are given, it loads every .csv file in dir.
func LoadDir(dir string, schema benchframe.Schema, names ...string) (benchclean.DB, error) {
	if len(names) == 0 {
		paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			if _, err := os.Stat(dir); err != nil {
				return nil, err
			}
		}
		for _, path := range paths {
			names = append(names, strings.TrimSuffix(filepath.Base(path), ".csv"))
		}
	}
	db := make(benchclean.DB, len(names))
	for _, name := range names {
		t, err := benchframe.LoadCSV(filepath.Join(dir, name+".csv"), schema)
		if err != nil {
			return nil, err
		}
		db[name] = t
	}
	return db, nil
}

// DB is a SQL database holding benchmark tables.
type DB struct {
	sql    *sql.DB
	driver string
}

// OpenSQL opens a SQL database. The parameters are the same as the
// parameters for sql.Open. Only mysql and sqlite3 are explicitly
// supported; other engines receive the MySQL dialect, which they may
// or may not accept.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	if hook := dsnHooks[driverName]; hook != nil {
		var err error
		if dataSourceName, err = hook(dataSourceName); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	return &DB{sql: db, driver: driverName}, nil
}

var (
	dsnHooks  = make(map[string]func(dsn string) (string, error))
	openHooks = make(map[string]func(*sql.DB) error)
)

// Close closes the database, releasing any open resources.
func (db *DB) Close() error {
	return db.sql.Close()
}

// LoadSQL opens a SQL database, loads the named tables (or all tables
// if no names are given), and closes the database.
func LoadSQL(ctx context.Context, driverName, dataSourceName string, schema benchframe.Schema, names ...string) (benchclean.DB, error) {
	db, err := OpenSQL(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.Load(ctx, schema, names...)
}

// Load reads the named tables, or all tables if no names are given.
func (db *DB) Load(ctx context.Context, schema benchframe.Schema, names ...string) (benchclean.DB, error) {
	if len(names) == 0 {
		var err error
		if names, err = db.Tables(ctx); err != nil {
			return nil, err
		}
	}
	out := make(benchclean.DB, len(names))
	for _, name := range names {
		t, err := db.ReadTable(ctx, name, schema)
		if err != nil {
			return nil, err
		}
		out[name] = t
	}
	return out, nil
}

// Tables returns the names of the tables in db, sorted.
func (db *DB) Tables(ctx context.Context) ([]string, error) {
	q := "SHOW TABLES"
	if db.driver == "sqlite3" {
		q = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'"
	}
	rows, err := db.sql.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// quote returns name as a quoted SQL identifier. Backquotes work in
// both MySQL and SQLite.
func quote(name string) (string, error) {
	if !identRE.MatchString(name) {
		return "", fmt.Errorf("invalid SQL identifier %q", name)
	}
	return "`" + name + "`", nil
}

// ReadTable reads every row of SQL table name. Column kinds come from
// schema or are inferred from the values, as in benchframe.ReadCSV.
// NULL is a missing value.
func (db *DB) ReadTable(ctx context.Context, name string, schema benchframe.Schema) (*table.Table, error) {
	qname, err := quote(name)
	if err != nil {
		return nil, err
	}
	rows, err := db.sql.QueryContext(ctx, "SELECT * FROM "+qname)
	if err != nil {
		return nil, fmt.Errorf("read %s: %v", name, err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	text := make([][]string, len(cols))
	vals := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("read %s: %v", name, err)
		}
		for i, v := range vals {
			text[i] = append(text[i], cellText(v))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %v", name, err)
	}

	var b table.Builder
	for i, col := range cols {
		data, err := benchframe.ParseColumn(text[i], schema[col])
		if err != nil {
			return nil, fmt.Errorf("read %s: column %q: %v", name, col, err)
		}
		b.Add(col, data)
	}
	return b.Done(), nil
}

// cellText formats a value scanned from the database the way it
// would appear in a CSV file.
func cellText(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fmt.Sprint(v)
}

// StoreTable creates SQL table name holding the rows of t. NaN is
// stored as NULL.
func (db *DB) StoreTable(ctx context.Context, name string, t *table.Table) (err error) {
	qname, err := quote(name)
	if err != nil {
		return err
	}
	cols := t.Columns()
	if len(cols) == 0 {
		return fmt.Errorf("store %s: table has no columns", name)
	}
	defs := make([]string, len(cols))
	data := make([]reflect.Value, len(cols))
	for i, col := range cols {
		qcol, err := quote(col)
		if err != nil {
			return fmt.Errorf("store %s: %v", name, err)
		}
		data[i] = reflect.ValueOf(t.Column(col))
		defs[i] = qcol + " " + db.sqlType(data[i].Type().Elem().Kind())
	}

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", qname, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("create %s: %v", name, err)
	}
	q := fmt.Sprintf("INSERT INTO %s VALUES (%s)", qname, strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()
	args := make([]interface{}, len(cols))
	for r := 0; r < t.Len(); r++ {
		for i, d := range data {
			args[i] = d.Index(r).Interface()
			if f, ok := args[i].(float64); ok && math.IsNaN(f) {
				args[i] = nil
			}
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("store %s: row %d: %v", name, r, err)
		}
	}
	return nil
}

func (db *DB) sqlType(k reflect.Kind) string {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "BIGINT"
	case reflect.Float32, reflect.Float64:
		if db.driver == "sqlite3" {
			return "REAL"
		}
		return "DOUBLE"
	case reflect.Bool:
		return "BOOLEAN"
	}
	return "TEXT"
}

// Store writes every table of tabs with StoreTable, in name order.
func (db *DB) Store(ctx context.Context, tabs benchclean.DB) error {
	for _, name := range tabs.Names() {
		if err := db.StoreTable(ctx, name, tabs[name]); err != nil {
			return err
		}
	}
	return nil
}
