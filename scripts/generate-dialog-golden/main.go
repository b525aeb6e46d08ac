package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/orchestrator"
	"github.com/goliatone/go-aemdialog/pkg/render"
)

func main() {
	var (
		projectPath = flag.String("project", "pkg/renderers/aemxml/testdata/hero_project.json", "project file to render")
		dialogID    = flag.String("dialog", "d1", "dialog ID to snapshot")
		renderer    = flag.String("renderer", "aem-xml", "renderer name")
		outputPath  = flag.String("output", "pkg/renderers/aemxml/testdata/dialog.golden.xml", "output path for the rendered dialog")
	)
	flag.Parse()

	source, err := os.Open(*projectPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open project: %v\n", err)
		os.Exit(1)
	}
	defer source.Close()

	output, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{
		Source:   source,
		DialogID: *dialogID,
		Renderer: *renderer,
		RenderOptions: render.RenderOptions{
			OnBlockError: func(block model.Block, err error) {
				fmt.Fprintf(os.Stderr, "block %s rendered as comment: %v\n", block.Name, err)
			},
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to render dialog: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outputPath, output, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write golden: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%d bytes)\n", *outputPath, len(output))
}
