// Package toolkit ships the example tools bundled with the saku binary:
// a Star Wars character lookup against a public API and an in-process
// calculator. They exercise the registry/dispatcher contract but carry
// no orchestration logic of their own.
package toolkit

import (
	"time"

	"github.com/harunnryd/saku/pkg/tools"
)

// Options configures the bundled tools.
type Options struct {
	LookupBaseURL string
	LookupTimeout time.Duration
}

// Register adds the bundled tools to a registry.
func Register(reg *tools.Registry, opts Options) error {
	lookup := NewStarWarsClient(opts.LookupBaseURL, opts.LookupTimeout)
	if err := reg.Register(StarWarsSpec(), lookup.Handler()); err != nil {
		return err
	}
	return reg.Register(CalculatorSpec(), CalculatorHandler())
}
