package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/intentpipe/internal/config"
)

type ConfigCmd struct {
	Init InitConfigCmd `cmd:"" help:"Write the default config file."`
	Path PathConfigCmd `cmd:"" help:"Print config directory."`
	Show ShowConfigCmd `cmd:"" default:"1" help:"Print the resolved configuration."`
}

type InitConfigCmd struct{}

type PathConfigCmd struct{}

type ShowConfigCmd struct{}

func (c *InitConfigCmd) Run(ctx *Context) error {
	paths, err := config.Init()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		ctx.UI.Infof("Config already initialized at %s", ctx.ConfigDir)
		return nil
	}
	ctx.UI.Infof("Created: %s", strings.Join(paths, ", "))
	return nil
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, ctx.ConfigDir)
	return err
}

func (c *ShowConfigCmd) Run(ctx *Context) error {
	cfg := ctx.Config

	w := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "config dir\t%s\n", ctx.ConfigDir)
	fmt.Fprintf(w, "department\t%s\n", cfg.DepartmentType)
	fmt.Fprintf(w, "database\t%s\n", redact(cfg.DatabaseURL))
	fmt.Fprintf(w, "serper key\t%s\n", redact(cfg.SerperAPIKey))
	fmt.Fprintf(w, "proxies\t%d\n", len(cfg.Proxies))
	fmt.Fprintf(w, "crawl keywords\t%s\n", strings.Join(cfg.Crawl.Keywords, ", "))
	fmt.Fprintf(w, "crawl max pages\t%d\n", cfg.Crawl.MaxPages)
	fmt.Fprintf(w, "crawl delay\t%s (+%s jitter)\n", cfg.Crawl.PageDelay, cfg.Crawl.PageJitter)
	fmt.Fprintf(w, "search templates\t%d\n", len(cfg.Search.QueryTemplates))
	fmt.Fprintf(w, "search results\t%d (%s/%s)\n", cfg.Search.ResultCount, cfg.Search.Country, cfg.Search.Locale)
	return w.Flush()
}

func redact(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(not set)"
	}
	return "(set)"
}
