package dbx

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/dmitrijs2005/userdirectory/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// integrityViolationClass is the SQLSTATE class for constraint failures
// (not null, foreign key, unique, check).
const integrityViolationClass = "23"

// ClassifyError maps a driver error onto the common sentinels:
//
//   - unreachable server or broken session -> common.ErrorConnection
//   - constraint violation                 -> common.ErrorInvalidInput
//   - anything else                        -> "db error: ..."
//
// The driver error stays in the chain. Already classified errors and nil are
// returned as is.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, common.ErrorConnection) || errors.Is(err, common.ErrorInvalidInput) {
		return err
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connectErr) || errors.As(err, &netErr) ||
		errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", common.ErrorConnection, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityViolationClass) {
		return fmt.Errorf("%w: %s: %w", common.ErrorInvalidInput, violatedConstraint(pgErr), err)
	}

	return fmt.Errorf("db error: %w", err)
}

func violatedConstraint(e *pgconn.PgError) string {
	switch {
	case e.ConstraintName != "":
		return e.ConstraintName
	case e.ColumnName != "":
		return e.ColumnName
	default:
		return e.Code
	}
}
