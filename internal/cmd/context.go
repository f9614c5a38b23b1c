package cmd

import (
	"io"

	"github.com/jimezsa/intentpipe/internal/config"
	"github.com/jimezsa/intentpipe/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	Out       io.Writer
	Err       io.Writer
	UI        *ui.UI
	Config    config.Config
	ConfigDir string
	Logger    zerolog.Logger
	Verbose   bool
	PlainText bool
	Version   string
	ColorMode ui.ColorMode
}
