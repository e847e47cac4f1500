// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdb

import (
	"fmt"

	"github.com/go-sql-driver/mysql"
)

func init() {
	dsnHooks["mysql"] = mysqlDSN
}

// mysqlDSN checks that dsn names a database, since tables are
// listed with SHOW TABLES.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	if cfg.DBName == "" {
		return "", fmt.Errorf("mysql: data source name has no database")
	}
	return cfg.FormatDSN(), nil
}
