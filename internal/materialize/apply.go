package materialize

import (
	"fmt"
	"os"

	"github.com/jorge-barreto/appgen/internal/codeblock"
)

// ApplyResult reports what Apply changed.
type ApplyResult struct {
	Updated []string // paths written, in block order
	Skipped []int    // indexes of blocks that had no target
}

// Apply writes blocks over an existing app. For a directory target only
// blocks with a filename are written, each to target/filename. For a file
// target the first block replaces the whole file and the rest are skipped.
func Apply(target string, blocks []codeblock.Block, allowUnsafe bool) (*ApplyResult, error) {
	if len(blocks) == 0 {
		return nil, ErrNoContent
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("app target: %w", err)
	}

	res := &ApplyResult{}
	if !info.IsDir() {
		if err := writeFile(target, blocks[0].Code); err != nil {
			return res, err
		}
		res.Updated = append(res.Updated, target)
		for i := 1; i < len(blocks); i++ {
			res.Skipped = append(res.Skipped, i)
		}
		return res, nil
	}

	for i, b := range blocks {
		if !b.HasFilename() {
			res.Skipped = append(res.Skipped, i)
			continue
		}
		path, err := resolve(target, b.Filename, allowUnsafe)
		if err != nil {
			return res, err
		}
		if err := writeFile(path, b.Code); err != nil {
			return res, err
		}
		res.Updated = append(res.Updated, path)
	}
	return res, nil
}
