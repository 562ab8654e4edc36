package ui

import (
	"io"

	"github.com/bamsammich/copytree/internal/stats"
)

// Presenter consumes events and displays them.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan Event) error
	// Summary returns the final summary line.
	Summary() string
}

// Config configures a Presenter.
type Config struct {
	Writer  io.Writer
	Stats   stats.Reader
	Styles  Styles
	SrcRoot string
	DstRoot string
	Quiet   bool
	Verbose bool
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory returns the Presenter interface
func NewPresenter(cfg Config) Presenter {
	if cfg.Quiet {
		return &quietPresenter{stats: cfg.Stats}
	}
	return &plainPresenter{
		w:       cfg.Writer,
		stats:   cfg.Stats,
		styles:  cfg.Styles,
		srcRoot: cfg.SrcRoot,
		dstRoot: cfg.DstRoot,
		verbose: cfg.Verbose,
	}
}
