// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchclean cleans benchmark results databases.
//
// Usage:
//
//	benchclean [options] -data dir
//	benchclean [options] -sql driver:dsn
//
// Benchclean loads the disk, memory, and network benchmark tables
// from a directory of CSV files (one file per table, named
// TABLE.csv) or from a SQL database, joins each dataset's results
// with the run environment and hardware metadata, and excludes runs
// that should not be analyzed. It prints the number of rows in each
// dataset before and after cleaning.
//
// The -sql flag takes a database/sql driver name and data source
// name separated by a colon. The sqlite3 and mysql drivers are
// available:
//
//	benchclean -sql sqlite3:results.db
//	benchclean -sql 'mysql:user:pass@tcp(host:3306)/results'
//
// Runs are excluded if their timestamp is after -cutoff, if they
// failed, or if they were built with a gcc version other than -gcc.
// Disk runs are also excluded if their hardware configuration has
// fewer than -min-group runs.
//
// With -o, benchclean writes each dataset to DATASET_raw.csv and
// DATASET_clean.csv in the given directory.
//
// The -where flag restricts the cleaned datasets further to rows
// whose columns have the given values, as in -where site=utah,hw_type=m510.
//
// The -summary flag prints, for each cleaned dataset, the count,
// mean, median, standard deviation, and coefficient of variation of a
// metric for each group of the -by columns, as CSV.
//
// The -plot flag draws a box plot of a metric for each value of the
// first -by column. Plots are saved in the -o directory in the
// -format format and listed on standard output. With -html, they are
// also collected into an HTML report in the -o directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/flux-utah/confirm-analysis/benchclean"
	"github.com/flux-utah/confirm-analysis/benchcolor"
	"github.com/flux-utah/confirm-analysis/benchdb"
	"github.com/flux-utah/confirm-analysis/benchframe"
	"github.com/flux-utah/confirm-analysis/benchplot"
)

var exit = os.Exit // replaced during testing

func main() {
	log.SetPrefix("benchclean: ")
	log.SetFlags(0)
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			exit(2)
		}
		log.Fatal(err)
	}
}

type pipeline func(benchclean.DB, *benchclean.Rules) (raw, clean *table.Table, err error)

var pipelines = map[string]pipeline{
	"disk":    benchclean.ProcessDisk,
	"memory":  benchclean.ProcessMemory,
	"network": benchclean.ProcessNetwork,
}

func run(w, wErr io.Writer, args []string) error {
	rules := benchclean.DefaultRules()
	rules.Warn = func(format string, args ...interface{}) {
		fmt.Fprintf(wErr, "warning: "+format, args...)
	}

	fs := flag.NewFlagSet("benchclean", flag.ContinueOnError)
	fs.SetOutput(wErr)
	fs.Usage = func() {
		fmt.Fprintf(wErr, "usage: benchclean [options] {-data dir | -sql driver:dsn}\n")
		fmt.Fprintf(wErr, "options:\n")
		fs.PrintDefaults()
	}
	var (
		flagData     = fs.String("data", "", "load tables from the CSV files in `dir`")
		flagSQL      = fs.String("sql", "", "load tables from the SQL database `driver:dsn`")
		flagDatasets = fs.String("dataset", "disk,memory,network", "clean the comma-separated `datasets`")
		flagOut      = fs.String("o", "", "write CSV files and plots to `dir`")
		flagIndex    = fs.Bool("index", false, "write a row index column to CSV files")
		flagWhere    = fs.String("where", "", "keep only cleaned rows matching `col=value,...`")
		flagSummary  = fs.String("summary", "", "summarize `metric` in each cleaned dataset")
		flagBy       = fs.String("by", "hw_type", "group summaries and plots by `columns`")
		flagPlot     = fs.String("plot", "", "box-plot `metric` in each cleaned dataset")
		flagFormat   = fs.String("format", "png", "plot file `format`: png, svg, pdf, eps, jpg, or tif")
		flagPalette  = fs.String("palette", benchcolor.DefaultPalette, "plot color `palette`")
		flagHTML     = fs.String("html", "", "write an HTML report of the plots to `file` in the -o directory")
		flagVerbose  = fs.Bool("v", false, "report filtering and written files")
	)
	fs.Int64Var(&rules.Cutoff, "cutoff", rules.Cutoff, "exclude runs after Unix `time`")
	fs.StringVar(&rules.GCCVersion, "gcc", rules.GCCVersion, "exclude runs not built with gcc `version`")
	fs.IntVar(&rules.MinGroupSize, "min-group", rules.MinGroupSize, "exclude disk configurations with fewer than `n` runs")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 || (*flagData == "") == (*flagSQL == "") {
		fs.Usage()
		return flag.ErrHelp
	}
	if *flagHTML != "" && (*flagOut == "" || *flagPlot == "") {
		return fmt.Errorf("-html requires -o and -plot")
	}

	var names []string
	for _, name := range strings.Split(*flagDatasets, ",") {
		if _, ok := pipelines[name]; !ok {
			return fmt.Errorf("unknown dataset %q", name)
		}
		names = append(names, name)
	}
	where, err := parseWhere(*flagWhere)
	if err != nil {
		return err
	}
	by := strings.Split(*flagBy, ",")

	db, err := load(*flagData, *flagSQL)
	if err != nil {
		return err
	}

	var display benchplot.Display = benchplot.TextDisplay{W: w}
	var report *benchplot.HTMLDisplay
	if *flagHTML != "" {
		report = benchplot.NewHTMLDisplay(*flagOut, "Benchmark variability")
		display = report
	}
	csvOpts := benchframe.CSVOptions{Index: *flagIndex, Verbose: *flagVerbose, Log: w}

	for _, name := range names {
		raw, clean, err := pipelines[name](db, rules)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if len(where) > 0 {
			clean, err = benchframe.Subset(clean, where, benchframe.SubsetOptions{Verbose: *flagVerbose, Log: w})
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
		fmt.Fprintf(w, "%s: %d raw, %d clean rows\n", name, raw.Len(), clean.Len())
		if clean.Len() > 0 {
			gcc, err := benchframe.Column2Val(clean, "gcc_ver")
			if err != nil {
				return err
			}
			if msg := gcc.Warning(); msg != "" {
				fmt.Fprintf(wErr, "warning: %s: %s\n", name, msg)
			}
		}

		if *flagOut != "" {
			for _, t := range []struct {
				suffix string
				tab    *table.Table
			}{{"raw", raw}, {"clean", clean}} {
				if _, err := benchframe.ToCSV(t.tab, name+"_"+t.suffix+".csv", *flagOut, csvOpts); err != nil {
					return err
				}
			}
		}

		if *flagSummary != "" {
			s, err := benchframe.Summarize(clean, *flagSummary, by...)
			if err != nil {
				return fmt.Errorf("%s: summary: %w", name, err)
			}
			fmt.Fprintf(w, "\n%s %s\n", name, *flagSummary)
			if err := benchframe.WriteCSV(w, s, false); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}

		if *flagPlot != "" {
			if clean.Len() == 0 {
				fmt.Fprintf(wErr, "warning: %s: nothing to plot\n", name)
				continue
			}
			cmap, err := benchcolor.GetCmap(clean, by[0], *flagPalette, nil)
			if err != nil {
				return err
			}
			fig, err := benchplot.BoxPlot(clean, by[0], *flagPlot, cmap)
			if err != nil {
				return fmt.Errorf("%s: plot: %w", name, err)
			}
			file := fmt.Sprintf("%s_%s.%s", name, *flagPlot, *flagFormat)
			if _, err := benchplot.ShowAndSave(display, fig, file, *flagOut, *flagOut == ""); err != nil {
				return fmt.Errorf("%s: plot: %w", name, err)
			}
		}
	}

	if report != nil {
		path, err := report.WriteFile(*flagHTML)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "report: %s\n", path)
	}
	return nil
}

// load reads the results database from a CSV directory or a SQL
// database given as driver:dsn.
func load(dir, sqlSource string) (benchclean.DB, error) {
	if dir != "" {
		return benchdb.LoadDir(dir, benchclean.Schema)
	}
	driver, dsn, ok := strings.Cut(sqlSource, ":")
	if !ok || driver == "" {
		return nil, fmt.Errorf("-sql %q: want driver:dsn", sqlSource)
	}
	if driver == "sqlite3" && !strings.HasPrefix(dsn, "file:") {
		// Opening a missing file would create an empty database.
		if _, err := os.Stat(dsn); err != nil {
			return nil, err
		}
	}
	return benchdb.LoadSQL(context.Background(), driver, dsn, benchclean.Schema)
}

// parseWhere parses a list of col=value filters. Values that parse as
// integers or floats filter numerically.
func parseWhere(s string) ([]benchframe.Eq, error) {
	if s == "" {
		return nil, nil
	}
	var eqs []benchframe.Eq
	for _, f := range strings.Split(s, ",") {
		col, val, ok := strings.Cut(f, "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("-where %q: want col=value", f)
		}
		eq := benchframe.Eq{Col: col, Val: val}
		if i, err := strconv.Atoi(val); err == nil {
			eq.Val = i
		} else if x, err := strconv.ParseFloat(val, 64); err == nil {
			eq.Val = x
		}
		eqs = append(eqs, eq)
	}
	return eqs, nil
}
