package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-aemdialog/pkg/designer"
	"github.com/goliatone/go-aemdialog/pkg/model"
)

func newDialogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dialog",
		Short: "Manage the dialogs of the project",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a dialog and make it active",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var created model.Dialog
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				next, dialog, err := a.designer.CreateDialog(s, joinArgs(args))
				created = dialog
				return next, err
			})
			if err != nil {
				return err
			}
			a.printf("dialog %s\n", created.ID)
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <dialog-id>",
		Short: "Remove a dialog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.RemoveDialog(s, args[0])
			})
			return err
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename <dialog-id> <name>",
		Short: "Rename a dialog",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.UpdateDialogName(s, args[0], joinArgs(args[1:]))
			})
			return err
		},
	}

	useCmd := &cobra.Command{
		Use:   "use <dialog-id>",
		Short: "Make a dialog active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.SetActiveDialog(s, args[0])
			})
			return err
		},
	}

	helpCmd := &cobra.Command{
		Use:   "help-path [path]",
		Short: "Set or clear the help path of the active dialog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.SetDialogHelpPath(s, path)
			})
			return err
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List dialogs; the active one is starred",
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
			for _, dialog := range p.Dialogs {
				a.printf("%s %s  %s\n", marker(dialog.ID == state.ActiveDialogID), dialog.ID, dialog.Name)
			}
			return nil
		},
	}

	cmd.AddCommand(addCmd, rmCmd, renameCmd, useCmd, helpCmd, listCmd)
	return cmd
}

func newTabCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tab",
		Short: "Manage the tabs of the active dialog",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a tab to the active dialog and make it active",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var created model.Tab
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				next, tab, err := a.designer.AddTab(s, joinArgs(args))
				created = tab
				return next, err
			})
			if err != nil {
				return err
			}
			a.printf("tab %s\n", created.ID)
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <tab-id>",
		Short: "Remove a tab and every block placed on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.RemoveTab(s, args[0])
			})
			return err
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename <tab-id> <name>",
		Short: "Rename a tab",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.UpdateTab(s, args[0], joinArgs(args[1:]))
			})
			return err
		},
	}

	useCmd := &cobra.Command{
		Use:   "use <tab-id>",
		Short: "Make a tab active; new blocks land on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.update(cmd.Context(), func(s designer.State) (designer.State, error) {
				return a.designer.SetActiveTab(s, args[0])
			})
			return err
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the tabs of the active dialog",
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
			for _, tab := range dialog.Tabs {
				a.printf("%s %s  %s  (%d block(s))\n",
					marker(tab.ID == state.ActiveTabID), tab.ID, tab.Name, len(dialog.BlocksForTab(tab.ID)))
			}
			return nil
		},
	}

	cmd.AddCommand(addCmd, rmCmd, renameCmd, useCmd, listCmd)
	return cmd
}
