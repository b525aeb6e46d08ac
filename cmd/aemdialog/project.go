package main

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-aemdialog/pkg/designer"
	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/project"
)

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create, open, save and inspect the current project",
	}

	newCmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Start a new project with one empty dialog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.update(cmd.Context(), func(designer.State) (designer.State, error) {
				return a.designer.CreateProject(joinArgs(args))
			})
			if err != nil {
				return err
			}
			a.printf("created project %q (%s)\n", state.Project.Name, state.Project.ID)
			return nil
		},
	}

	openCmd := &cobra.Command{
		Use:   "open <file>",
		Short: "Load a project file (JSON or YAML) into the workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			p, err := project.Decode(file)
			if err != nil {
				return err
			}
			state, err := a.update(cmd.Context(), func(designer.State) (designer.State, error) {
				return a.designer.LoadProject(p), nil
			})
			if err != nil {
				return err
			}
			a.printf("opened project %q with %d dialog(s)\n", state.Project.Name, len(state.Project.Dialogs))
			return nil
		},
	}

	var saveTo string
	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Write the project file and clear the unsaved flag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var path string
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				next, saved, err := a.designer.SaveProject(s)
				if err != nil {
					return s, err
				}
				path = saveTo
				if path == "" {
					path = filepath.Join(a.cfg.Export.Dir, project.Filename(saved.Name))
				}
				return next, writeProject(path, saved)
			})
			if err != nil {
				return err
			}
			a.printf("saved %s\n", path)
			return nil
		},
	}
	saveCmd.Flags().StringVarP(&saveTo, "output", "o", "", "project file path (default <export dir>/<name>.aem-project.json)")

	renameCmd := &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.UpdateProjectName(s, joinArgs(args))
			})
			return err
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Summarise the project and the editing cursor",
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
			a.printf("project: %s (%s)\n", p.Name, p.ID)
			a.printf("modified: %s\n", p.LastModified)
			a.printf("unsaved: %t\n", state.HasUnsavedChanges)
			a.printf("custom blocks: %d\n", len(p.CustomBlocks))
			for _, dialog := range p.Dialogs {
				a.printf("%s %s  %s  (%d tab(s), %d block(s))\n",
					marker(dialog.ID == state.ActiveDialogID), dialog.ID, dialog.Name, len(dialog.Tabs), len(dialog.Blocks))
			}
			return nil
		},
	}

	cmd.AddCommand(newCmd, openCmd, saveCmd, renameCmd, showCmd)
	return cmd
}

func writeProject(path string, p model.Project) error {
	var buf bytes.Buffer
	if err := project.Encode(&buf, p); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
