package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/arloliu/go-bts/bts"
	"github.com/arloliu/go-bts/export"
	"github.com/arloliu/go-bts/record"
)

// knownStates are the channel states a BTS server reports.
var knownStates = []string{"working", "stop", "finish", "protect", "pause"}

type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// invocation is a parsed command line.
type invocation struct {
	args      []string
	state     string
	backupDir string

	csvPath    string
	sqlitePath string
	table      string
}

type command struct {
	name    string
	args    string
	summary string
	minArgs int
	maxArgs int // -1 for no limit

	// stateField names the record field filtered by -state; empty disables the flag.
	stateField string
	// exports enables -csv, -sqlite and -table.
	exports bool
	// backup enables -backup-dir.
	backup bool

	// check validates the arguments before connecting.
	check func(args []string) error
	exec  func(ctx context.Context, c *bts.Client, inv invocation) (any, error)
}

var commands = []*command{
	{
		name: "devices", summary: "list the channels reported by the server",
		exec: func(_ context.Context, c *bts.Client, _ invocation) (any, error) {
			return c.DeviceInfo()
		},
	},
	{
		name: "status", args: "[ids]", summary: "show the state of channels", maxArgs: -1,
		stateField: "status",
		exec: func(ctx context.Context, c *bts.Client, inv invocation) (any, error) {
			res, err := c.Status(ctx, inv.args...)
			return filterState(res, err, "status", inv.state)
		},
	},
	{
		name: "inquire", args: "[ids]", summary: "show live readings of channels", maxArgs: -1,
		stateField: "workstatus",
		exec: func(ctx context.Context, c *bts.Client, inv invocation) (any, error) {
			res, err := c.Inquire(ctx, inv.args...)
			return filterState(res, err, "workstatus", inv.state)
		},
	},
	{
		name: "num-datapoints", args: "[ids]", summary: "show the number of stored datapoints", maxArgs: -1,
		exec: func(ctx context.Context, c *bts.Client, inv invocation) (any, error) {
			return c.NumDatapoints(ctx, inv.args...)
		},
	},
	{
		name: "testid", args: "[ids]", summary: "show the current test id of channels", maxArgs: -1,
		exec: func(ctx context.Context, c *bts.Client, inv invocation) (any, error) {
			return c.TestID(ctx, inv.args...)
		},
	},
	{
		name: "download", args: "<id> <n>", summary: "download the last n datapoints, 0 for all",
		minArgs: 2, maxArgs: 2, exports: true,
		check: func(args []string) error {
			_, err := parseCount(args[1])
			return err
		},
		exec: func(ctx context.Context, c *bts.Client, inv invocation) (any, error) {
			n, err := parseCount(inv.args[1])
			if err != nil {
				return nil, err
			}

			cols, err := c.Download(ctx, inv.args[0], n)
			if err != nil {
				return nil, err
			}
			if inv.csvPath == "" && inv.sqlitePath == "" {
				return cols, nil
			}

			return writeExports(ctx, inv, cols)
		},
	},
	{
		name: "downloadlog", args: "<id>", summary: "download the event log of a channel",
		minArgs: 1, maxArgs: 1,
		exec: func(ctx context.Context, c *bts.Client, inv invocation) (any, error) {
			return c.DownloadLog(ctx, inv.args[0])
		},
	},
	{
		name: "steps", args: "<id>", summary: "download the step summary of a channel",
		minArgs: 1, maxArgs: 1,
		exec: func(ctx context.Context, c *bts.Client, inv invocation) (any, error) {
			return c.Steps(ctx, inv.args[0])
		},
	},
	{
		name: "start", args: "<id> <sample> <payload>", summary: "start the test profile at payload",
		minArgs: 3, maxArgs: 3, backup: true,
		check: func(args []string) error {
			if _, err := os.Stat(args[2]); err != nil {
				return fmt.Errorf("payload: %w", err)
			}

			return nil
		},
		exec: func(ctx context.Context, c *bts.Client, inv invocation) (any, error) {
			recs, err := c.Start(ctx, inv.args[0], inv.args[1], inv.args[2])
			if err != nil {
				return nil, err
			}

			return recs, checkVerdicts(recs, "start")
		},
	},
	{
		name: "stop", args: "<ids>", summary: "stop the tests on channels", minArgs: 1, maxArgs: -1,
		exec: func(ctx context.Context, c *bts.Client, inv invocation) (any, error) {
			recs, err := c.Stop(ctx, inv.args...)
			if err != nil {
				return nil, err
			}

			return recs, checkVerdicts(recs, "stop")
		},
	},
	{
		name: "clearflag", args: "<ids>", summary: "clear the alarm flag of channels", minArgs: 1, maxArgs: -1,
		exec: func(ctx context.Context, c *bts.Client, inv invocation) (any, error) {
			return c.ClearFlag(ctx, inv.args...)
		},
	},
	{
		name: "light", args: "<ids>", summary: "flash the indicator light of channels", minArgs: 1, maxArgs: -1,
		exec: func(ctx context.Context, c *bts.Client, inv invocation) (any, error) {
			return c.Light(ctx, inv.args...)
		},
	},
}

func lookupCommand(name string) (*command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}

	return nil, false
}

func (cmd *command) parse(args []string, stderr io.Writer) (invocation, error) {
	fs := flag.NewFlagSet("btsctl "+cmd.name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var inv invocation
	if cmd.stateField != "" {
		fs.StringVar(&inv.state, "state", "", "only show channels in this state")
	}
	if cmd.exports {
		fs.StringVar(&inv.csvPath, "csv", "", "write the datapoints to this CSV file")
		fs.StringVar(&inv.sqlitePath, "sqlite", "", "append the datapoints to this SQLite database")
		fs.StringVar(&inv.table, "table", "download", "SQLite table name")
	}
	if cmd.backup {
		fs.StringVar(&inv.backupDir, "backup-dir", "", "server-side directory for the test archive, overriding backup_dir")
	}
	if err := fs.Parse(args); err != nil {
		return invocation{}, usagef("%s: %v", cmd.name, err)
	}

	if inv.state != "" && !slices.Contains(knownStates, inv.state) {
		return invocation{}, usagef("%s: unknown state %q, expected one of %v", cmd.name, inv.state, knownStates)
	}

	n := fs.NArg()
	if n < cmd.minArgs || (cmd.maxArgs >= 0 && n > cmd.maxArgs) {
		return invocation{}, usagef("usage: btsctl %s %s", cmd.name, cmd.args)
	}

	inv.args = fs.Args()
	if cmd.check != nil {
		if err := cmd.check(inv.args); err != nil {
			return invocation{}, err
		}
	}

	return inv, nil
}

// exportSummary is printed instead of the datapoints when they were exported.
type exportSummary struct {
	Pipeline string `json:"pipeline"`
	Rows     int    `json:"rows"`
	CSV      string `json:"csv,omitempty"`
	SQLite   string `json:"sqlite,omitempty"`
	Table    string `json:"table,omitempty"`
}

func writeExports(ctx context.Context, inv invocation, cols *record.Columns) (any, error) {
	sum := exportSummary{Pipeline: inv.args[0], Rows: cols.Rows()}

	if inv.csvPath != "" {
		f, err := os.Create(inv.csvPath)
		if err != nil {
			return nil, err
		}
		err = export.WriteCSV(f, cols)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", inv.csvPath, err)
		}
		sum.CSV = inv.csvPath
	}

	if inv.sqlitePath != "" {
		db, err := export.OpenSQLite(inv.sqlitePath)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		if err := export.WriteSQLite(ctx, db, inv.table, cols); err != nil {
			return nil, err
		}
		sum.SQLite = inv.sqlitePath
		sum.Table = inv.table
	}

	return sum, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, usagef("n must be a non-negative integer, got %q", s)
	}

	return n, nil
}

func filterState(res *bts.Results, err error, field, state string) (any, error) {
	if err != nil || state == "" {
		return res, err
	}

	return res.Filter(func(_ string, rec *record.Record) bool {
		v, _ := rec.String(field)
		return v == state
	}), nil
}

// verdictError reports a command the server answered with something other than "ok".
type verdictError struct {
	verb     string
	pipeline string
	verdict  any
}

func (e *verdictError) Error() string {
	return fmt.Sprintf("%s refused on %s: %v", e.verb, e.pipeline, e.verdict)
}

// checkVerdicts fails when the server did not answer "ok" for every channel.
func checkVerdicts(recs []*record.Record, verb string) error {
	for _, rec := range recs {
		if v, _ := rec.String(verb); v != "ok" {
			return &verdictError{
				verb:     verb,
				pipeline: fmt.Sprintf("%v-%v-%v", rec.Value("devid"), rec.Value("subdevid"), rec.Value("chlid")),
				verdict:  rec.Value(verb),
			}
		}
	}

	return nil
}
