package cmd

import (
	"github.com/jimezsa/intentpipe/internal/network"
	"github.com/jimezsa/intentpipe/internal/pipeline"
	"github.com/jimezsa/intentpipe/internal/source"
)

type CrawlCmd struct {
	Pages    int      `help:"Max result pages per keyword." placeholder:"N"`
	Keywords []string `help:"Override crawl keywords." placeholder:"KEYWORD"`
}

func (c *CrawlCmd) Run(ctx *Context) error {
	runCtx, stop := signalContext()
	defer stop()

	st, pool, err := openStore(runCtx, ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	cfg := ctx.Config.Crawl
	if c.Pages > 0 {
		cfg.MaxPages = c.Pages
	}
	if len(c.Keywords) > 0 {
		cfg.Keywords = c.Keywords
	}

	client, err := network.NewClient(ctx.Config.Proxies)
	if err != nil {
		return err
	}

	src := source.NewKyujinbox(client, cfg, ctx.Logger)
	pipe := pipeline.New(st, ctx.UI, ctx.Logger, ctx.Config.DepartmentType)

	_, err = pipe.RunCrawl(runCtx, src)
	return err
}
