// Command extrafn is the CLI for the extension function catalog.
// It opens SQLite databases with every catalog function registered, runs
// ad-hoc SQL against them, and lists what the catalog provides.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"

	"github.com/mlourenco/extrafn/core/funcs"
	"github.com/mlourenco/extrafn/core/sqlite"
	"github.com/mlourenco/extrafn/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for extrafn.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log format (text, json)"`

	Query     QueryCmd     `cmd:"" help:"Run SQL against a database with the catalog registered"`
	Functions FunctionsCmd `cmd:"" help:"List the functions in the catalog"`
	Driver    DriverCmd    `cmd:"" help:"Print SQLite driver information"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// QueryCmd runs one SQL statement and prints the result rows.
type QueryCmd struct {
	SQL string `arg:"" help:"SQL statement to run"`
	DB  string `name:"db" default:":memory:" help:"Database path (defaults to an in-memory database)"`
}

func (c *QueryCmd) Run() error {
	db, err := sqlite.Open(c.DB)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.DB, err)
	}
	defer db.Close()

	start := time.Now()
	rows, err := db.Query(c.SQL)
	if err != nil {
		logging.QueryError(c.SQL, err)
		return err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("columns: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, col := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)

	count := 0
	cells := make([]any, len(cols))
	for i := range cells {
		cells[i] = new(any)
	}
	for rows.Next() {
		if err := rows.Scan(cells...); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		for i, cell := range cells {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, formatCell(*cell.(*any)))
		}
		fmt.Fprintln(w)
		count++
	}
	if err := rows.Err(); err != nil {
		logging.QueryError(c.SQL, err)
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}

	logging.QueryExecuted(c.SQL, count, time.Since(start))
	return nil
}

// formatCell renders one result cell for the terminal.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return fmt.Sprintf("x'%x'", x)
	default:
		return fmt.Sprint(x)
	}
}

// FunctionsCmd lists the catalog, one function per line.
type FunctionsCmd struct{}

func (c *FunctionsCmd) Run() error {
	all := funcs.DefaultRegistry().All()
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tARGS\tKIND")
	for _, fn := range all {
		kind := "scalar"
		if _, ok := fn.(funcs.AggregateFunction); ok {
			kind = "aggregate"
		}
		args := fmt.Sprint(fn.NumArgs())
		if fn.NumArgs() < 0 {
			args = "variadic"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", fn.Name(), args, kind)
	}
	return w.Flush()
}

// DriverCmd prints which SQLite implementation the binary carries.
type DriverCmd struct{}

func (c *DriverCmd) Run() error {
	out, err := json.MarshalIndent(sqlite.GetInfo(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("extrafn %s (%s driver)\n", version, sqlite.DriverType())
	return nil
}

func initLogging() {
	level := logging.LevelInfo
	switch CLI.LogLevel {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}
	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("extrafn"),
		kong.Description("SQLite extension functions - math, string, and statistical SQL functions"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	initLogging()
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
