package designer

import (
	"fmt"

	"github.com/goliatone/go-aemdialog/pkg/blocks"
	"github.com/goliatone/go-aemdialog/pkg/model"
)

// AddCustomBlock registers a custom block with the project. Its name is
// stripped of markup; the ID is assigned here.
func (d *Designer) AddCustomBlock(s State, custom model.CustomBlock) (State, model.CustomBlock, error) {
	custom.Name = blocks.SanitizeLabel(custom.Name)
	if custom.Name == "" {
		return s, model.CustomBlock{}, fmt.Errorf("%w: custom block name is required", ErrInvalidName)
	}
	custom.ID = d.newID()

	next, err := d.mutateProject(s, func(p *model.Project) error {
		p.CustomBlocks = append(p.CustomBlocks, custom)
		return nil
	})
	if err != nil {
		return s, model.CustomBlock{}, err
	}
	return next, custom, nil
}

// RemoveCustomBlock deletes a custom block from the palette. Blocks already
// placed from it keep their copy of the template.
func (d *Designer) RemoveCustomBlock(s State, id string) (State, error) {
	return d.mutateProject(s, func(p *model.Project) error {
		for idx, custom := range p.CustomBlocks {
			if custom.ID == id {
				p.CustomBlocks = append(p.CustomBlocks[:idx], p.CustomBlocks[idx+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: custom block %q", ErrNotFound, id)
	})
}
