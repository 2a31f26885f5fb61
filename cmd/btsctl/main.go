// Command btsctl talks to a Neware BTS server from the shell.
//
// Usage:
//
//	btsctl [-config file] [-indent] <command> [arguments]
//
// Results are written to stdout as JSON. Errors go to stderr and exit with
// status 1, or 2 for invalid usage. Settings come from the TOML file named by
// -config or BTS_CONFIG, overridden by BTS_HOST, BTS_PORT, BTS_USERNAME,
// BTS_PASSWORD and BTS_LOG_LEVEL.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/arloliu/go-bts/bts"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type connectFunc func(ctx context.Context, cfg *bts.ClientConfig) (*bts.Client, error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv, bts.Connect)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string, connect connectFunc) int {
	fs := flag.NewFlagSet("btsctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path of a TOML config file")
	indent := fs.Bool("indent", false, "indent the JSON output")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cmd, ok := lookupCommand(fs.Arg(0))
	if !ok {
		fmt.Fprintf(stderr, "btsctl: unknown command %q\n", fs.Arg(0))
		fs.Usage()
		return exitUsage
	}

	inv, err := cmd.parse(fs.Args()[1:], stderr)
	if err != nil {
		return report(stderr, err)
	}

	cfg, err := loadConfig(*configPath, getenv)
	if err != nil {
		return report(stderr, err)
	}

	log, err := cfg.newLogger(stderr)
	if err != nil {
		return report(stderr, err)
	}

	var opts []bts.ConnOption
	if inv.backupDir != "" {
		opts = append(opts, bts.WithBackupDir(inv.backupDir))
	}

	clientCfg, err := cfg.clientConfig(log, opts...)
	if err != nil {
		return report(stderr, fmt.Errorf("invalid config: %w", err))
	}

	client, err := connect(ctx, clientCfg)
	if err != nil {
		return report(stderr, err)
	}
	defer client.Close()

	out, err := cmd.exec(ctx, client, inv)

	// refused verdicts are still printed
	var verr *verdictError
	if err == nil || errors.As(err, &verr) {
		if werr := writeJSON(stdout, out, *indent); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		return report(stderr, err)
	}

	return exitOK
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(v)
}

// report prints err and returns its exit status.
func report(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "btsctl: %v\n", err)

	var uerr *usageError
	if errors.As(err, &uerr) || errors.Is(err, bts.ErrUsage) {
		return exitUsage
	}

	return exitError
}

func printUsage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintln(w, "usage: btsctl [-config file] [-indent] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-16s %s\n", cmd.name+" "+cmd.args, cmd.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "flags:")
	fs.PrintDefaults()
}
