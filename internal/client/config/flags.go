package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/healthcomp/internal/flagx"
)

var knownFlags = []string{"-b", "-f", "-d", "-l", "-o", "-s", "-t"}

// parseFlags populates selected Config fields from command-line flags. Only
// the flags listed in the package doc are looked at; the rest of args is
// ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("healthcomp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.BackendURL, "b", cfg.BackendURL, "backend base address")
	fs.StringVar(&cfg.FrontendURL, "f", cfg.FrontendURL, "frontend address")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "sqlite file for credentials")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.OTelEndpoint, "o", cfg.OTelEndpoint, "OTLP/HTTP endpoint")
	fs.BoolVar(&cfg.SingleFlight, "s", cfg.SingleFlight, "share concurrent identical reads")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
