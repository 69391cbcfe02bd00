package dbx

import (
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/userdirectory/internal/common"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// OpenOptions tunes Open.
type OpenOptions struct {
	// User and Password override the credentials found in the DSN when set.
	User     string
	Password string

	// TraceLogger, when non-nil, receives every statement through the pgx
	// tracer at the logger's level.
	TraceLogger *zerolog.Logger
}

// Open returns a *sql.DB backed by the pgx stdlib driver. No connection is
// made here: database/sql dials on first use and keeps the session pooled
// for the lifetime of the handle. A malformed DSN is a configuration error.
func Open(dsn string, opts OpenOptions) (*sql.DB, error) {
	cc, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing connection string: %v", common.ErrorConfiguration, err)
	}

	if opts.User != "" {
		cc.User = opts.User
	}
	if opts.Password != "" {
		cc.Password = opts.Password
	}

	if opts.TraceLogger != nil {
		cc.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(*opts.TraceLogger),
			LogLevel: traceLogLevel(opts.TraceLogger.GetLevel()),
		}
	}

	return stdlib.OpenDB(*cc), nil
}

func traceLogLevel(l zerolog.Level) tracelog.LogLevel {
	switch l {
	case zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return tracelog.LogLevelError
	default:
		return tracelog.LogLevelNone
	}
}
