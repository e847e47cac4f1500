// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchclean

import (
	"fmt"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/aclements/go-gg/table"
	"github.com/flux-utah/confirm-analysis/benchframe"
)

// Rules are the exclusion rules applied by the pipelines.
type Rules struct {
	Cutoff       int64  // exclude runs with a timestamp after Cutoff (Unix seconds)
	GCCVersion   string // exclude runs whose gcc_ver is not GCCVersion
	MinGroupSize int    // exclude disk configurations with fewer runs than this
	Warn         func(format string, args ...interface{})
}

// DefaultRules returns the rules used for the published analysis:
// runs before April 2, 2018, built with gcc 5.4.0, on disk
// configurations with at least 200 runs.
func DefaultRules() *Rules {
	return &Rules{
		Cutoff:       1522636071,
		GCCVersion:   "5.4.0",
		MinGroupSize: 200,
		Warn: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format, args...)
		},
	}
}

func (r *Rules) warn(format string, args ...interface{}) {
	if r.Warn != nil {
		r.Warn(format, args...)
	}
}

// Columns the pipelines read, by table.
var (
	diskKeys      = []string{"run_uuid", "timestamp", "nodeuuid", "disk_name", "nodeid"}
	diskGroupCols = []string{"site", "hw_type", "device", "disk_type", "disk_model", "disk_size"}
	filterCols    = []string{"timestamp", "run_success", "gcc_ver"}
)

// DiskName returns the name of the disk holding device: the device
// name without its partition number. NVMe devices ("nvme0n1") lose
// their last two characters, others their trailing digits.
func DiskName(device string) string {
	if strings.Contains(device, "nvm") {
		if len(device) < 2 {
			return ""
		}
		return device[:len(device)-2]
	}
	return strings.TrimRightFunc(device, func(r rune) bool { return r >= '0' && r <= '9' })
}

// ProcessDisk joins disk_results with env_info and disk_info and
// applies the exclusion rules. If r is nil, DefaultRules is used.
//
// Each disk result is matched to its disk by the disk name derived
// from its device. raw is the joined table. clean additionally lacks
// the rows of hardware configurations (site, hw_type, device,
// disk_type, disk_model, disk_size) with fewer than r.MinGroupSize
// rows, then the rows excluded by the run filters.
func ProcessDisk(db DB, r *Rules) (raw, clean *table.Table, err error) {
	if r == nil {
		r = DefaultRules()
	}
	ts, err := db.tables(DiskResults, EnvInfo, DiskInfo)
	if err != nil {
		return nil, nil, err
	}
	results, env, info := ts[0], ts[1], ts[2]
	if err := requireAll(map[string]*table.Table{
		DiskResults: results,
		EnvInfo:     env,
		DiskInfo:    info,
	}, RunKeys); err != nil {
		return nil, nil, err
	}
	if err := benchframe.Require(results, "device"); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", DiskResults, err)
	}
	if err := benchframe.Require(info, "disk_name"); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", DiskInfo, err)
	}

	t, err := r.join(results, env, RunKeys)
	if err != nil {
		return nil, nil, err
	}
	if t, err = benchframe.MapString(t, "device", "disk_name", DiskName); err != nil {
		return nil, nil, err
	}
	if t, err = r.join(t, info, diskKeys); err != nil {
		return nil, nil, err
	}
	if err := benchframe.Require(t, append(diskGroupCols, filterCols...)...); err != nil {
		return nil, nil, fmt.Errorf("disk: %w", err)
	}
	if t, err = benchframe.MapString(t, "disk_size", "disk_size", leftTrim); err != nil {
		return nil, nil, err
	}
	raw = t

	if t, err = benchframe.DropSmallGroups(t, r.MinGroupSize, diskGroupCols...); err != nil {
		return nil, nil, err
	}
	if dropped := raw.Len() - t.Len(); dropped > 0 {
		r.warn("disk: excluded %d row(s) in configurations with fewer than %d runs\n", dropped, r.MinGroupSize)
	}
	if clean, err = r.exclude("disk", t); err != nil {
		return nil, nil, err
	}
	return raw, clean, nil
}

// ProcessMemory joins mem_results with env_info and membench_info and
// applies the run filters of r. If r is nil, DefaultRules is used.
func ProcessMemory(db DB, r *Rules) (raw, clean *table.Table, err error) {
	if r == nil {
		r = DefaultRules()
	}
	ts, err := db.tables(MemResults, EnvInfo, MembenchInfo)
	if err != nil {
		return nil, nil, err
	}
	results, env, info := ts[0], ts[1], ts[2]
	if err := requireAll(map[string]*table.Table{
		MemResults:   results,
		EnvInfo:      env,
		MembenchInfo: info,
	}, RunKeys); err != nil {
		return nil, nil, err
	}

	t, err := r.join(results, env, RunKeys)
	if err != nil {
		return nil, nil, err
	}
	if raw, err = r.join(t, info, RunKeys); err != nil {
		return nil, nil, err
	}
	if err := benchframe.Require(raw, filterCols...); err != nil {
		return nil, nil, fmt.Errorf("memory: %w", err)
	}
	if clean, err = r.exclude("memory", raw); err != nil {
		return nil, nil, err
	}
	return raw, clean, nil
}

// ProcessNetwork combines latency and bandwidth measurements and
// applies the run filters of r. If r is nil, DefaultRules is used.
//
// Latency rows come from ping_results, bandwidth rows from
// iperf3_results. Each is joined with env_info, restricted to
// successful runs, and joined with its test's info table and with
// network_info. raw holds the latency rows followed by the bandwidth
// rows, tagged by a "test" column ("latency" or "bandwidth") and a
// "directionality" column ("forward", or "reverse" for bandwidth runs
// with reverse set). A column found in only one test's tables is
// filled in the other test's rows with NaN if it holds floats and with
// the zero value otherwise, so latency rows have "bw" NaN and
// "reverse" false. A numeric column whose type differs between the
// tests is widened to float64. clean additionally has columns
// "rack_locality" (see IsRackLocal) and "rack_local", true for Local
// nodes.
func ProcessNetwork(db DB, r *Rules) (raw, clean *table.Table, err error) {
	if r == nil {
		r = DefaultRules()
	}
	ts, err := db.tables(PingResults, PingInfo, Iperf3Results, Iperf3Info, EnvInfo, NetworkInfo)
	if err != nil {
		return nil, nil, err
	}
	if err := requireAll(map[string]*table.Table{
		PingResults:   ts[0],
		PingInfo:      ts[1],
		Iperf3Results: ts[2],
		Iperf3Info:    ts[3],
		EnvInfo:       ts[4],
		NetworkInfo:   ts[5],
	}, RunKeys); err != nil {
		return nil, nil, err
	}
	env, netInfo := ts[4], ts[5]

	lat, err := r.networkTest("latency", ts[0], env, ts[1], netInfo)
	if err != nil {
		return nil, nil, err
	}
	if lat, err = benchframe.AddConst(lat, "test", "latency"); err != nil {
		return nil, nil, err
	}
	if lat, err = benchframe.AddConst(lat, "directionality", "forward"); err != nil {
		return nil, nil, err
	}

	bw, err := r.networkTest("bandwidth", ts[2], env, ts[3], netInfo)
	if err != nil {
		return nil, nil, err
	}
	if bw, err = benchframe.AddConst(bw, "test", "bandwidth"); err != nil {
		return nil, nil, err
	}
	if err := benchframe.Require(bw, "reverse"); err != nil {
		return nil, nil, fmt.Errorf("bandwidth: %w", err)
	}
	rv := reflect.ValueOf(bw.Column("reverse"))
	dirs := make([]string, rv.Len())
	for i := range dirs {
		dirs[i] = "forward"
		if truthy(rv.Index(i).Interface()) {
			dirs[i] = "reverse"
		}
	}
	if bw, err = benchframe.WithColumn(bw, "directionality", dirs); err != nil {
		return nil, nil, err
	}

	if raw, err = benchframe.Concat(lat, bw); err != nil {
		return nil, nil, fmt.Errorf("network: %w", err)
	}
	if err := benchframe.Require(raw, append(filterCols, "nodeid")...); err != nil {
		return nil, nil, fmt.Errorf("network: %w", err)
	}
	t, err := r.exclude("network", raw)
	if err != nil {
		return nil, nil, err
	}

	nodes, err := benchframe.Strings(t, "nodeid")
	if err != nil {
		return nil, nil, err
	}
	local := make([]bool, len(nodes))
	locality := make([]string, len(nodes))
	for i, id := range nodes {
		l := IsRackLocal(id)
		local[i] = l == Local
		locality[i] = l.String()
	}
	if t, err = benchframe.WithColumn(t, "rack_local", local); err != nil {
		return nil, nil, err
	}
	if clean, err = benchframe.WithColumn(t, "rack_locality", locality); err != nil {
		return nil, nil, err
	}
	return raw, clean, nil
}

// networkTest joins the results of one network test with the run
// environment, keeps successful runs, and joins the test's info and
// the network info.
func (r *Rules) networkTest(test string, results, env, info, netInfo *table.Table) (*table.Table, error) {
	t, err := r.join(results, env, RunKeys)
	if err != nil {
		return nil, err
	}
	if t, err = benchframe.Subset(t, []benchframe.Eq{{Col: "run_success", Val: 1}}, benchframe.SubsetOptions{}); err != nil {
		return nil, fmt.Errorf("%s: %w", test, err)
	}
	if t, err = r.join(t, info, RunKeys); err != nil {
		return nil, err
	}
	return r.join(t, netInfo, RunKeys)
}

// join is benchframe.Join, warning when nothing matches.
func (r *Rules) join(t1, t2 *table.Table, keys []string) (*table.Table, error) {
	t, err := benchframe.Join(t1, t2, keys...)
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 && t1.Len() > 0 && t2.Len() > 0 {
		r.warn("join on %s matched no rows\n", strings.Join(keys, ", "))
	}
	return t, nil
}

// exclude applies the run filters: the cutoff time, the success flag,
// and the compiler version.
func (r *Rules) exclude(name string, t *table.Table) (*table.Table, error) {
	n := t.Len()
	t, err := benchframe.FilterFloat(t, "timestamp", func(ts float64) bool {
		return ts <= float64(r.Cutoff)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	// A missing run_success (NaN) is not a recorded failure.
	if t, err = benchframe.FilterFloat(t, "run_success", func(ok float64) bool {
		return ok != 0
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if t, err = benchframe.FilterString(t, "gcc_ver", func(v string) bool {
		return v == r.GCCVersion
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if t.Len() == 0 && n > 0 {
		r.warn("%s: all %d row(s) excluded\n", name, n)
	}
	return t, nil
}

func requireAll(tabs map[string]*table.Table, cols []string) error {
	for _, name := range TableNames {
		t, ok := tabs[name]
		if !ok {
			continue
		}
		if err := benchframe.Require(t, cols...); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func leftTrim(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// truthy reports whether v, a cell of a flag column, is set. Flag
// columns may be read as bools, numbers, or text.
func truthy(v interface{}) bool {
	switch v := v.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return rv.Int() != 0
	case rv.CanUint():
		return rv.Uint() != 0
	case rv.CanFloat():
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	}
	return false
}
