package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-aemdialog/pkg/designer"
	"github.com/goliatone/go-aemdialog/pkg/model"
)

func newCustomCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Manage the project's custom blocks",
	}

	var template, templateFile, imageURL string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a custom block from a literal XML fragment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if templateFile != "" {
				data, err := os.ReadFile(templateFile)
				if err != nil {
					return err
				}
				template = string(data)
			}
			if strings.TrimSpace(template) == "" {
				return errors.New("a template is required: use --template or --template-file")
			}

			var created model.CustomBlock
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				next, custom, err := a.designer.AddCustomBlock(s, model.CustomBlock{
					Name:        joinArgs(args),
					ImageURL:    imageURL,
					XMLTemplate: template,
				})
				created = custom
				return next, err
			})
			if err != nil {
				return err
			}
			a.printf("custom %s %s\n", created.ID, created.Name)
			return nil
		},
	}
	addCmd.Flags().StringVar(&template, "template", "", "XML fragment emitted verbatim")
	addCmd.Flags().StringVar(&templateFile, "template-file", "", "read the XML fragment from a file")
	addCmd.Flags().StringVar(&imageURL, "image", "", "palette image URL")

	rmCmd := &cobra.Command{
		Use:   "rm <custom-id>",
		Short: "Remove a custom block from the palette; placed instances are kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.RemoveCustomBlock(s, args[0])
			})
			return err
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the project's custom blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			p, err := requireProject(state)
			if err != nil {
				return err
			}
			for _, custom := range p.CustomBlocks {
				a.printf("%s  %s\n", custom.ID, custom.Name)
			}
			return nil
		},
	}

	cmd.AddCommand(addCmd, rmCmd, listCmd)
	return cmd
}

func newBlocksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "blocks",
		Short: "List the palette: built-in field types and project custom blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			var custom []model.CustomBlock
			if state.Project != nil {
				custom = state.Project.CustomBlocks
			}
			for _, entry := range a.designer.Registry().Palette(custom) {
				if entry.CustomBlockID != "" {
					a.printf("%-10s %s (--custom %s)\n", entry.Type, entry.Label, entry.CustomBlockID)
					continue
				}
				a.printf("%-10s %s\n", entry.Type, entry.Label)
			}
			return nil
		},
	}
}
