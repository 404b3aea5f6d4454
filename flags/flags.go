package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "CIVET_DOCS"

// PrefixEnvVar prefixes an environment variable name with the application
// prefix
func PrefixEnvVar(name string) []string {
	return []string{fmt.Sprintf("%s_%s", EnvVarPrefix, name)}
}

var (
	Config = &cli.StringFlag{
		Name:    "config",
		Value:   "civet.yaml",
		EnvVars: PrefixEnvVar("CONFIG"),
		Usage:   "Path to the build configuration file",
	}
	SiteDir = &cli.StringFlag{
		Name:    "site-dir",
		EnvVars: PrefixEnvVar("SITE_DIR"),
		Usage:   "Markdown source directory (overrides the config file)",
	}
	DestDir = &cli.StringFlag{
		Name:    "dest-dir",
		EnvVars: PrefixEnvVar("DEST_DIR"),
		Usage:   "Rendered site output directory (overrides the config file)",
	}
	Download = &cli.BoolFlag{
		Name:    "download",
		Value:   true,
		EnvVars: PrefixEnvVar("DOWNLOAD"),
		Usage:   "Download fresh test results for the current merge commits",
	}
	Reports = &cli.BoolFlag{
		Name:    "reports",
		Value:   true,
		EnvVars: PrefixEnvVar("REPORTS"),
		Usage:   "Generate test report pages when results exist",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: PrefixEnvVar("LOG_LEVEL"),
		Usage:   "Log level (debug, info, warn, error)",
	}
	MetricsAddr = &cli.StringFlag{
		Name:    "metrics-addr",
		EnvVars: PrefixEnvVar("METRICS_ADDR"),
		Usage:   "Address to serve prometheus metrics on during the build (empty disables)",
	}
)

var Flags = []cli.Flag{
	Config,
	SiteDir,
	DestDir,
	Download,
	Reports,
	LogLevel,
	MetricsAddr,
}
