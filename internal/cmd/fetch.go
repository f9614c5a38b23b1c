package cmd

import (
	"github.com/jimezsa/intentpipe/internal/network"
	"github.com/jimezsa/intentpipe/internal/pipeline"
	"github.com/jimezsa/intentpipe/internal/source"
)

type FetchCmd struct{}

func (c *FetchCmd) Run(ctx *Context) error {
	if err := ctx.Config.RequireSerper(); err != nil {
		return err
	}

	runCtx, stop := signalContext()
	defer stop()

	st, pool, err := openStore(runCtx, ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	client, err := network.NewClient(ctx.Config.Proxies)
	if err != nil {
		return err
	}

	searcher := source.NewSerper(client, ctx.Config.SerperAPIKey, ctx.Config.Search, ctx.Logger)
	pipe := pipeline.New(st, ctx.UI, ctx.Logger, ctx.Config.DepartmentType)

	_, err = pipe.RunSearch(runCtx, searcher, ctx.Config.Search.CompanyDelay)
	return err
}
