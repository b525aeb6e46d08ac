package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-aemdialog/internal/config"
	applog "github.com/goliatone/go-aemdialog/internal/log"
	"github.com/goliatone/go-aemdialog/internal/workspace"
	"github.com/goliatone/go-aemdialog/pkg/designer"
	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/project"
	"github.com/goliatone/go-aemdialog/pkg/prompt"
	"github.com/goliatone/go-aemdialog/pkg/render"
)

// app carries what every command needs once the root command has resolved
// configuration.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath    string
	workspacePath string
	cfg           config.Config
	logger        *slog.Logger
	designer      *designer.Designer
	driver        prompt.Driver
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut, designer: designer.New()}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "aemdialog",
		Short:         "Design AEM component dialogs and export them as cq:dialog XML",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $AEMD_CONFIG or ~/.config/aemdialog/config.yaml)")
	root.PersistentFlags().StringVar(&a.workspacePath, "workspace", "", "workspace file overriding the configured one")

	root.AddCommand(
		newProjectCmd(a),
		newDialogCmd(a),
		newTabCmd(a),
		newBlockCmd(a),
		newCustomCmd(a),
		newBlocksCmd(a),
		newExportCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) init() error {
	path := a.configPath
	if path == "" {
		resolved, err := config.Path()
		if err == nil {
			path = resolved
		}
	}

	cfg := config.Defaults()
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.workspacePath != "" {
		cfg.Workspace.Path = a.workspacePath
	}
	a.cfg = cfg
	logOpts := cfg.LogOptions()
	logOpts.Writer = a.errOut
	a.logger = applog.Init(logOpts)
	return nil
}

// load reads the workspace state without holding the write lock.
func (a *app) load(ctx context.Context) (designer.State, error) {
	return workspace.Snapshot(ctx, a.cfg.Workspace.Path)
}

// update applies fn to the workspace state and persists the result.
func (a *app) update(ctx context.Context, fn func(designer.State) (designer.State, error)) (designer.State, error) {
	store, err := workspace.Open(a.cfg.Workspace.Path)
	if err != nil {
		return designer.State{}, err
	}
	defer store.Close()
	return store.Update(ctx, fn)
}

func (a *app) promptDriver() prompt.Driver {
	if a.driver == nil {
		a.driver = prompt.NewSurveyDriver(a.out)
	}
	return a.driver
}

// warnBlockErrors logs every block a renderer turned into an error comment.
func (a *app) warnBlockErrors(dialog string) render.RenderOptions {
	return render.RenderOptions{
		OnBlockError: func(block model.Block, err error) {
			a.logger.Warn("block render failed",
				slog.String("dialog", dialog),
				slog.String("block", block.Name),
				slog.String("type", string(block.Type)),
				slog.Any("err", err),
			)
		},
	}
}

// decodeProject reads a project file and warns about blocks whose properties
// did not decode. They still load, and render as error comments.
func (a *app) decodeProject(r io.Reader) (model.Project, error) {
	p, err := project.Decode(r)
	if err != nil {
		return model.Project{}, err
	}
	for _, dialog := range p.Dialogs {
		for _, block := range dialog.Blocks {
			raw, ok := block.Properties.(model.RawProperties)
			if !ok {
				continue
			}
			a.logger.Warn("block properties not decoded",
				slog.String("dialog", dialog.ID),
				slog.String("block", block.Name),
				slog.String("type", string(block.Type)),
				slog.String("err", raw.Err),
			)
		}
	}
	return p, nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func requireProject(s designer.State) (*model.Project, error) {
	if s.Project == nil {
		return nil, fmt.Errorf("%w: run \"aemdialog project new <name>\" or \"aemdialog project open <file>\"", designer.ErrNoProject)
	}
	return s.Project, nil
}

func marker(active bool) string {
	if active {
		return "*"
	}
	return " "
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
