package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	Plain   bool   `help:"Plain output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`
	EnvFile string `help:"Dotenv file with credentials (default .env.local)." placeholder:"PATH"`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version VersionCmd `cmd:"" help:"Print version."`
	Config  ConfigCmd  `cmd:"" help:"Manage configuration."`
	Crawl   CrawlCmd   `cmd:"" help:"Crawl the job board in bulk and refresh company intent."`
	Fetch   FetchCmd   `cmd:"" help:"Search the web per registry company and refresh intent."`
	Stats   StatsCmd   `cmd:"" help:"Show persisted intent statistics."`
	Cleanup CleanupCmd `cmd:"" help:"Delete errored intent rows so companies can be re-processed."`
}

func NewCLI() *CLI {
	return &CLI{}
}
