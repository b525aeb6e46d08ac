package render

import (
	"fmt"

	"github.com/goliatone/go-aemdialog/pkg/model"
)

// BlockError records why a single block could not be rendered.
type BlockError struct {
	BlockID string
	Type    model.FieldType
	Name    string
	Err     error
}

// NewBlockError wraps err with the identity of block.
func NewBlockError(block model.Block, err error) *BlockError {
	return &BlockError{
		BlockID: block.ID,
		Type:    block.Type,
		Name:    block.Name,
		Err:     err,
	}
}

func (e *BlockError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("render: block %s %q failed", e.Type, e.Name)
	}
	return fmt.Sprintf("render: block %s %q: %v", e.Type, e.Name, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }
