package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrForeignKeyViolation = errors.New("foreign key violation: a table was imported before a table it references")
	ErrDuplicateRow        = errors.New("duplicate row: the dataset was already imported")
	ErrDataFormat          = errors.New("data format error: a value does not match its column type")
	ErrConnection          = errors.New("connection failure: check the database host, credentials and network access")
)

var codeErrors = map[string]error{
	"23503": ErrForeignKeyViolation,
	"23505": ErrDuplicateRow,
	"22P02": ErrDataFormat, // invalid_text_representation
	"22007": ErrDataFormat, // invalid_datetime_format
	"22003": ErrDataFormat, // numeric_value_out_of_range
	"22001": ErrDataFormat, // string_data_right_truncation
	"23502": ErrDataFormat, // not_null_violation
}

// Classify maps a Postgres failure onto the runbook's failure modes. The
// original error stays in the chain; unknown errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if sentinel, ok := codeErrors[pgErr.Code]; ok {
			return fmt.Errorf("%w: %w", sentinel, err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return err
}

// Hint is the operator action for a classified error
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrForeignKeyViolation):
		return "import the tables in dependency order (seedctl import does this)"
	case errors.Is(err, ErrDuplicateRow):
		return "the rows already exist; re-run with --truncate to replace them"
	case errors.Is(err, ErrDataFormat):
		return "fix the offending value in the seed data and run seedctl check"
	case errors.Is(err, ErrConnection):
		return "check DATABASE_URL and that the database accepts connections"
	}
	return ""
}
