package config

import (
	"flag"
	"os"

	"fintrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   listen address (default from Config)
//	-d string   path of the SQLite database file (default from Config)
//	-k string   access token signing key (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address")
	fs.StringVar(&cfg.DatabaseFile, "d", cfg.DatabaseFile, "path of the SQLite database file")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "access token signing key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
