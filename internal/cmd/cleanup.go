package cmd

type CleanupCmd struct {
	DryRun bool `help:"Count errored rows without deleting them."`
}

func (c *CleanupCmd) Run(ctx *Context) error {
	runCtx, stop := signalContext()
	defer stop()

	st, pool, err := openStore(runCtx, ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	if c.DryRun {
		stats, err := st.Stats(runCtx)
		if err != nil {
			return err
		}
		ctx.UI.Infof("%d errored intent rows would be deleted", stats.ErroredNone)
		return nil
	}

	deleted, err := st.DeleteErroredIntents(runCtx)
	if err != nil {
		return err
	}

	stats, err := st.Stats(runCtx)
	if err != nil {
		return err
	}
	ctx.UI.Successf("Deleted %d errored intent rows, %d intent rows remain", deleted, stats.CompaniesWithIntent)
	return nil
}
