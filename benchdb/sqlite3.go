// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdb

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

func init() {
	// Every connection to ":memory:" is a separate database.
	openHooks["sqlite3"] = func(db *sql.DB) error {
		db.SetMaxOpenConns(1)
		return db.Ping()
	}
}
