package cmd

import (
	"fmt"
	"text/tabwriter"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	runCtx, stop := signalContext()
	defer stop()

	st, pool, err := openStore(runCtx, ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	stats, err := st.Stats(runCtx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "companies\t%d\n", stats.Companies)
	fmt.Fprintf(w, "with intent\t%d\n", stats.CompaniesWithIntent)
	fmt.Fprintf(w, "signals\t%d\n", stats.Signals)
	fmt.Fprintf(w, "hot\t%d\n", stats.Hot)
	fmt.Fprintf(w, "middle\t%d\n", stats.Middle)
	fmt.Fprintf(w, "low\t%d\n", stats.Low)
	fmt.Fprintf(w, "none\t%d\n", stats.None)
	fmt.Fprintf(w, "errored (none/0)\t%d\n", stats.ErroredNone)
	return w.Flush()
}
