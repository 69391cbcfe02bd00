package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/userdirectory/internal/flagx"
)

// parseFlags overlays selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL connection string
//	-u string   database user
//	-p string   database password
//	-l int      users limit for the age query
//	-v string   log level (debug, info, warn, error)
//	-f string   log format (json, console)
//	-t          trace SQL statements (use -t=false to disable)
//
// Arguments not in this list are filtered out first with flagx.FilterArgs so
// that -c and flags owned by other components do not cause parse errors.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-u", "-p", "-l", "-v", "-f", "-t"})

	fs := flag.NewFlagSet("userdirectory", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database connection string")
	fs.StringVar(&config.DatabaseUser, "u", config.DatabaseUser, "database user")
	fs.StringVar(&config.DatabasePassword, "p", config.DatabasePassword, "database password")
	fs.IntVar(&config.UsersLimit, "l", config.UsersLimit, "max users returned by the age query")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")
	fs.BoolVar(&config.TraceSQL, "t", config.TraceSQL, "trace SQL statements")

	return fs.Parse(args)
}
