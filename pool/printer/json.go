package printer

import (
	"encoding/json"

	"github.com/joshuapare/objpool/pkg/types"
)

// jsonDump is the JSON form of a block dump.
type jsonDump struct {
	Blocks []types.BlockInfo `json:"blocks"`
}

// jsonCompaction is the JSON form of compaction statistics.
type jsonCompaction struct {
	Compaction types.CompactStats `json:"compaction"`
}

func (p *Printer) printBlocksJSON(blocks []types.BlockInfo) error {
	if blocks == nil {
		blocks = []types.BlockInfo{}
	}
	return p.writeJSON(jsonDump{Blocks: blocks})
}

func (p *Printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
