package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-aemdialog/pkg/blocks"
	"github.com/goliatone/go-aemdialog/pkg/designer"
	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/prompt"
	"github.com/goliatone/go-aemdialog/pkg/renderers/aemxml"
)

func newBlockCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Place, configure and arrange blocks in the active dialog",
	}

	var customID string
	addCmd := &cobra.Command{
		Use:   "add [type] [name]",
		Short: "Place a block on the active tab; without a type the palette is offered",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fieldType, name := "", ""
			if len(args) > 0 {
				fieldType = args[0]
			}
			if len(args) > 1 {
				name = args[1]
			}
			if customID != "" && len(args) == 1 {
				fieldType, name = "", args[0]
			}

			if fieldType == "" && customID == "" {
				entry, err := a.pickEntry(cmd.Context())
				if err != nil {
					return err
				}
				fieldType, customID = string(entry.Type), entry.CustomBlockID
			}

			var placed model.Block
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				var (
					next designer.State
					err  error
				)
				if customID != "" {
					next, placed, err = a.designer.AddCustomBlockInstance(s, customID, name)
				} else {
					next, placed, err = a.designer.AddBlock(s, model.FieldType(fieldType), name)
				}
				return next, err
			})
			if err != nil {
				return err
			}
			a.printf("block %s %s\n", placed.ID, placed.Name)
			return nil
		},
	}
	addCmd.Flags().StringVar(&customID, "custom", "", "place an instance of this project custom block")

	rmCmd := &cobra.Command{
		Use:   "rm <block-id>",
		Short: "Remove a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.RemoveBlock(s, args[0])
			})
			return err
		},
	}

	var (
		setName, setLabel, setTab, setProps string
	)
	setCmd := &cobra.Command{
		Use:   "set <block-id>",
		Short: "Change a block's name, label, tab or properties",
		Long: "Change a block's name, label, tab or properties. --props takes a JSON object that is\n" +
			"merged over the current properties, for example --props '{\"required\":true}'.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				var update designer.BlockUpdate
				if flags.Changed("name") {
					update.Name = &setName
				}
				if flags.Changed("label") {
					update.Label = &setLabel
				}
				if flags.Changed("tab") {
					update.TabID = &setTab
				}
				if flags.Changed("props") {
					block, err := activeBlock(s, args[0])
					if err != nil {
						return s, err
					}
					merged, err := model.MergeProperties(block.Properties, json.RawMessage(setProps))
					if err != nil {
						return s, err
					}
					update.Properties = merged
				}
				return a.designer.UpdateBlock(s, args[0], update)
			})
			return err
		},
	}
	setCmd.Flags().StringVar(&setName, "name", "", "node name")
	setCmd.Flags().StringVar(&setLabel, "label", "", "palette label")
	setCmd.Flags().StringVar(&setTab, "tab", "", "tab ID to move the block to")
	setCmd.Flags().StringVar(&setProps, "props", "", "JSON properties patch")

	editCmd := &cobra.Command{
		Use:   "edit <block-id>",
		Short: "Edit a block's properties interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			block, err := activeBlock(state, args[0])
			if err != nil {
				return err
			}
			props, err := prompt.NewEditor(a.promptDriver()).EditProperties(cmd.Context(), block)
			if err != nil {
				return err
			}
			_, err = a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.UpdateBlock(s, block.ID, designer.BlockUpdate{Properties: props})
			})
			return err
		},
	}

	moveCmd := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a block to another position in the dialog's block list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("from: %w", err)
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("to: %w", err)
			}
			_, err = a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.MoveBlock(s, from, to)
			})
			return err
		},
	}

	selectCmd := &cobra.Command{
		Use:   "select [block-id]",
		Short: "Select a block; without an ID the selection is cleared",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.SelectBlock(s, id)
			})
			return err
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every block from the active dialog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.ClearBlocks(s)
			})
			return err
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the blocks of the active dialog in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			dialog, err := a.designer.ActiveDialog(state)
			if err != nil {
				return err
			}
			for idx, block := range dialog.Blocks {
				a.printf("%s %d  %s  %-10s %-20s tab=%s\n",
					marker(block.ID == state.SelectedBlockID), idx, block.ID, block.Type, block.Name, block.TabID)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [block-id]",
		Short: "Print a block's XML fragment; defaults to the selected block",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			id := state.SelectedBlockID
			if len(args) == 1 {
				id = args[0]
			}
			block, err := activeBlock(state, id)
			if err != nil {
				return err
			}
			fragment, err := aemxml.RenderBlock(block)
			if err != nil {
				return err
			}
			a.printf("%s\n", fragment)
			return nil
		},
	}

	cmd.AddCommand(addCmd, rmCmd, setCmd, editCmd, moveCmd, selectCmd, clearCmd, listCmd, showCmd)
	return cmd
}

func (a *app) pickEntry(ctx context.Context) (blocks.PaletteEntry, error) {
	state, err := a.load(ctx)
	if err != nil {
		return blocks.PaletteEntry{}, err
	}
	var custom []model.CustomBlock
	if state.Project != nil {
		custom = state.Project.CustomBlocks
	}
	return prompt.NewEditor(a.promptDriver()).ChooseEntry(ctx, a.designer.Registry().Palette(custom))
}

func activeBlock(s designer.State, id string) (model.Block, error) {
	if _, err := requireProject(s); err != nil {
		return model.Block{}, err
	}
	dialog, ok := s.ActiveDialog()
	if !ok {
		return model.Block{}, designer.ErrNoActiveDialog
	}
	if id == "" {
		return model.Block{}, fmt.Errorf("%w: no block selected", designer.ErrNotFound)
	}
	idx := dialog.BlockIndex(id)
	if idx < 0 {
		return model.Block{}, fmt.Errorf("%w: block %q", designer.ErrNotFound, id)
	}
	return dialog.Blocks[idx], nil
}
