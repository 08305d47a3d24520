package pool

import (
	"io"

	"github.com/joshuapare/objpool/pkg/types"
	"github.com/joshuapare/objpool/pool/printer"
)

// Blocks returns every registered block, live or garbage, in registry
// order (newest first). It returns nil for an uninitialized pool.
func (p *Pool) Blocks() []types.BlockInfo {
	if p.reg == nil {
		return nil
	}
	return p.reg.infos()
}

// Lookup returns the block registered under h, including garbage blocks
// that have not been collected yet.
func (p *Pool) Lookup(h types.Handle) (types.BlockInfo, bool) {
	if p.reg == nil {
		return types.BlockInfo{}, false
	}
	rec := p.reg.lookup(h)
	if rec == nil {
		return types.BlockInfo{}, false
	}
	return rec.info(), true
}

// Dump writes a text listing of every registered block to w.
func (p *Pool) Dump(w io.Writer) error {
	return p.DumpWith(w, printer.DefaultOptions())
}

// DumpWith writes the block listing to w using opts.
func (p *Pool) DumpWith(w io.Writer, opts printer.Options) error {
	return printer.New(w, opts).PrintBlocks(p.Blocks())
}
