// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchclean joins raw disk, memory, and network benchmark
// results with the metadata recorded alongside them and removes
// measurements that should not be analyzed: runs after the data
// collection cutoff, failed runs, runs built with a different
// compiler, and hardware configurations with too few samples.
//
// Each pipeline returns two tables: the joined table before any
// exclusion ("raw") and after ("clean").
package benchclean

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aclements/go-gg/table"
	"github.com/flux-utah/confirm-analysis/benchframe"
)

// Names of the tables in a results database.
const (
	DiskResults   = "disk_results"
	DiskInfo      = "disk_info"
	EnvInfo       = "env_info"
	MemResults    = "mem_results"
	MembenchInfo  = "membench_info"
	PingResults   = "ping_results"
	PingInfo      = "ping_info"
	NetworkInfo   = "network_info"
	Iperf3Results = "iperf3_results"
	Iperf3Info    = "iperf3_info"
)

// TableNames lists every table a DB may hold.
var TableNames = []string{
	DiskResults, DiskInfo, EnvInfo,
	MemResults, MembenchInfo,
	PingResults, PingInfo, NetworkInfo, Iperf3Results, Iperf3Info,
}

// RunKeys are the columns that identify one benchmark run on one node.
// Every results and metadata table carries them.
var RunKeys = []string{"run_uuid", "nodeid", "nodeuuid", "timestamp"}

// Schema gives the kinds of the columns the pipelines depend on, for
// loading tables from text.
var Schema = benchframe.Schema{
	"run_uuid":    benchframe.String,
	"nodeid":      benchframe.String,
	"nodeuuid":    benchframe.String,
	"timestamp":   benchframe.Int,
	"run_success": benchframe.Int,
	"gcc_ver":     benchframe.String,
	"device":      benchframe.String,
	"disk_name":   benchframe.String,
	"disk_size":   benchframe.String,
	"disk_type":   benchframe.String,
	"disk_model":  benchframe.String,
	"site":        benchframe.String,
	"hw_type":     benchframe.String,
	"reverse":     benchframe.Bool,
}

// ErrMissingTable is returned, wrapped, when a DB lacks a table.
var ErrMissingTable = errors.New("missing table")

// A DB is a loaded benchmark results database: a set of named tables.
// The pipelines only read a DB.
type DB map[string]*table.Table

// Table returns the table called name.
func (db DB) Table(name string) (*table.Table, error) {
	t, ok := db[name]
	if !ok || t == nil {
		return nil, fmt.Errorf("%w %q", ErrMissingTable, name)
	}
	return t, nil
}

// Names returns the names of the tables in db, sorted.
func (db DB) Names() []string {
	names := make([]string, 0, len(db))
	for name := range db {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// tables returns the named tables, failing on the first missing one.
func (db DB) tables(names ...string) ([]*table.Table, error) {
	ts := make([]*table.Table, len(names))
	for i, name := range names {
		t, err := db.Table(name)
		if err != nil {
			return nil, err
		}
		ts[i] = t
	}
	return ts, nil
}
