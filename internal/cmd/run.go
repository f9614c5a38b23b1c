package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimezsa/intentpipe/internal/store"
)

// signalContext returns a context cancelled on interrupt, so a long crawl
// can stop between pages instead of mid-write.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func openStore(runCtx context.Context, ctx *Context) (*store.Store, *pgxpool.Pool, error) {
	if err := ctx.Config.RequireDatabase(); err != nil {
		return nil, nil, err
	}
	pool, err := store.NewPool(runCtx, ctx.Config.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return store.New(pool, ctx.Logger), pool, nil
}
