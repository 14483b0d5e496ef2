package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"cosmetic-platform-dataset/cmd/bootstrap"
	"cosmetic-platform-dataset/internal/converter"
	"cosmetic-platform-dataset/internal/domain/entity"
	"cosmetic-platform-dataset/internal/integrity"
	"cosmetic-platform-dataset/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

var (
	errUsage         = errors.New("usage")
	errMissingSecret = errors.New("JWT_SECRET is not set")
)

type command func(ctx context.Context, args []string, stdout, stderr io.Writer) error

var commands = map[string]command{
	"check":    checkCommand,
	"export":   exportCommand,
	"import":   importCommand,
	"verify":   verifyCommand,
	"policies": policiesCommand,
	"token":    tokenCommand,
	"serve":    serveCommand,
}

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printReport writes the report and turns findings into errFindings
func printReport(w io.Writer, report *integrity.Report) error {
	if err := writeJSON(w, converter.ReportToResponse(report)); err != nil {
		return err
	}
	if !report.OK() {
		return errFindings
	}
	return nil
}

func checkCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("check", stderr)
	if err := parse(fs, args); err != nil {
		return err
	}

	app, err := bootstrap.New(ctx, bootstrap.DBNone, stderr)
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.Verify.Check(ctx)
	if err != nil {
		return err
	}
	return printReport(stdout, report)
}

func exportCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("export", stderr)
	out := fs.StringP("out", "o", "supabase_export", "directory to write the SQL files to")
	if err := parse(fs, args); err != nil {
		return err
	}

	app, err := bootstrap.New(ctx, bootstrap.DBNone, stderr)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.Export.Export(ctx, *out)
	if err != nil {
		return err
	}
	return writeJSON(stdout, result)
}

func importCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("import", stderr)
	opts := usecase.ImportOptions{}
	fs.BoolVar(&opts.DryRun, "dry-run", false, "check the dataset and print the plan without connecting")
	fs.BoolVar(&opts.Force, "force", false, "import even if this dataset was imported before")
	fs.BoolVar(&opts.Truncate, "truncate", false, "empty the dataset tables before importing")
	fs.BoolVar(&opts.SkipPolicies, "skip-policies", false, "do not apply row level security policies")
	if err := parse(fs, args); err != nil {
		return err
	}

	mode := bootstrap.DBRequired
	if opts.DryRun {
		mode = bootstrap.DBNone
	}
	app, err := bootstrap.New(ctx, mode, stderr)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.Import.Run(ctx, opts)
	if result != nil {
		if werr := writeJSON(stdout, result); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

func verifyCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("verify", stderr)
	opts := usecase.VerifyOptions{}
	fs.BoolVar(&opts.Policies, "policies", false, "check row level security as the seeded owners")
	if err := parse(fs, args); err != nil {
		return err
	}

	app, err := bootstrap.New(ctx, bootstrap.DBRequired, stderr)
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.Verify.Verify(ctx, opts)
	if err != nil {
		return err
	}
	return printReport(stdout, report)
}

func policiesCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("policies", stderr)
	apply := fs.Bool("apply", false, "run the script against the database")
	if err := parse(fs, args); err != nil {
		return err
	}

	mode := bootstrap.DBNone
	if *apply {
		mode = bootstrap.DBRequired
	}
	app, err := bootstrap.New(ctx, mode, stderr)
	if err != nil {
		return err
	}
	defer app.Close()

	if !*apply {
		_, err := io.WriteString(stdout, app.Policies.Script())
		return err
	}
	return app.Policies.Apply(ctx)
}

func tokenCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("token", stderr)
	sub := fs.String("sub", "", "user id the token speaks for")
	role := fs.String("role", "authenticated", "anon, authenticated or service_role")
	ttl := fs.Duration("ttl", 0, "token lifetime (default JWT_ACCESS_EXPIRY)")
	if err := parse(fs, args); err != nil {
		return err
	}

	var subject *uuid.UUID
	if *sub != "" {
		id, err := uuid.Parse(*sub)
		if err != nil {
			return fmt.Errorf("invalid --sub: %w", err)
		}
		subject = &id
	}
	if !entity.Role(*role).Valid() {
		return fmt.Errorf("unknown role %q", *role)
	}
	if *role == string(entity.RoleAuthenticated) && subject == nil {
		return errors.New("--sub is required for authenticated tokens")
	}

	app, err := bootstrap.New(ctx, bootstrap.DBNone, stderr)
	if err != nil {
		return err
	}
	defer app.Close()

	if !app.JWT.Configured() {
		return errMissingSecret
	}

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = app.JWT.GetAccessExpiry()
	}
	token, err := app.JWT.GenerateToken(subject, *role, lifetime)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, token)
	return err
}

func serveCommand(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("serve", stderr)
	if err := parse(fs, args); err != nil {
		return err
	}

	app, err := bootstrap.New(ctx, bootstrap.DBOptional, stdout)
	if err != nil {
		return err
	}
	defer app.Close()

	if !app.JWT.Configured() {
		return errMissingSecret
	}
	return app.Run()
}
