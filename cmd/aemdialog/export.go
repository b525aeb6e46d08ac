package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-aemdialog/internal/server"
	"github.com/goliatone/go-aemdialog/internal/workspace"
	"github.com/goliatone/go-aemdialog/pkg/designer"
	"github.com/goliatone/go-aemdialog/pkg/orchestrator"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		dialogID string
		renderer string
		output   string
		from     string
		stdout   bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a dialog (the active one by default) and write it to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := orchestrator.New(
				orchestrator.WithDefaultRenderer(a.cfg.Export.Renderer),
				orchestrator.WithProjectDecoder(a.decodeProject),
			)
			if renderer == "" && output != "" && gen.Registry() != nil {
				if byExt, err := gen.Registry().ForExtension(filepath.Ext(output)); err == nil {
					renderer = byExt.Name()
				}
			}
			req := orchestrator.Request{
				DialogID: dialogID,
				Renderer: renderer,
			}

			if from != "" {
				file, err := os.Open(from)
				if err != nil {
					return fmt.Errorf("open %s: %w", from, err)
				}
				defer file.Close()
				req.Source = file
			} else {
				state, err := a.load(cmd.Context())
				if err != nil {
					return err
				}
				p, err := requireProject(state)
				if err != nil {
					return err
				}
				if req.DialogID == "" {
					req.DialogID = state.ActiveDialogID
				}
				req.Project = p
			}
			req.RenderOptions = a.warnBlockErrors(req.DialogID)

			result, err := gen.Export(cmd.Context(), req)
			if err != nil {
				return err
			}

			if stdout {
				_, err := cmd.OutOrStdout().Write(result.Output)
				return err
			}
			path := output
			if path == "" {
				path = filepath.Join(a.cfg.Export.Dir, result.Filename)
			}
			if err := os.WriteFile(path, result.Output, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			a.printf("exported %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dialogID, "dialog", "", "dialog ID (default: the active dialog)")
	cmd.Flags().StringVar(&renderer, "renderer", "", "renderer name or alias: aem-xml (xml) or markdown (md); defaults to the output extension, then config")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <export dir>/<dialog name>.<ext>)")
	cmd.Flags().StringVar(&from, "from", "", "render from a project file instead of the workspace (default dialog: the first)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the document to stdout")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workspace state and rendered dialogs over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			path := a.cfg.Workspace.Path
			source := server.StateSourceFunc(func(ctx context.Context) (designer.State, error) {
				return workspace.Snapshot(ctx, path)
			})
			srv := server.New(source,
				server.WithRegistry(a.designer.Registry()),
				server.WithLogger(a.logger.With("component", "server")),
			)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
