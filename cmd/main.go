package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"cosmetic-platform-dataset/internal/infrastructure/database"
)

const usage = `Usage: seedctl <command> [flags]

Commands:
  check      validate the embedded dataset offline
  export     write the SQL import artifact (--out DIR)
  import     load the dataset into Postgres (--dry-run --force --truncate --skip-policies)
  verify     compare a live database against the dataset (--policies)
  policies   print the row level security script (--apply to run it)
  token      mint a requester JWT (--sub UUID --role ROLE --ttl DURATION)
  serve      run the inspection HTTP API
`

// errFindings makes a command exit non-zero without printing an error line
var errFindings = errors.New("findings reported")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	err := cmd(ctx, args[1:], stdout, stderr)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFindings):
		return 1
	case errors.Is(err, errUsage):
		return 2
	}

	fmt.Fprintf(stderr, "seedctl %s: %v\n", args[0], err)
	if hint := database.Hint(err); hint != "" {
		fmt.Fprintf(stderr, "hint: %s\n", hint)
	}
	return 1
}
