package aemdialog_test

import (
	"strings"
	"testing"

	aemdialog "github.com/goliatone/go-aemdialog"
	"github.com/goliatone/go-aemdialog/pkg/model"
	"github.com/goliatone/go-aemdialog/pkg/testsupport"
)

func TestGenerateXML(t *testing.T) {
	dialog := testsupport.HeadlineDialog()

	out, err := aemdialog.GenerateXML(testsupport.Context(), &dialog, aemdialog.RenderOptions{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(string(out), `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Fatalf("missing declaration:\n%s", out)
	}
	if !strings.Contains(string(out), `name="./headline"`) {
		t.Fatalf("missing headline field:\n%s", out)
	}

	placeholder, err := aemdialog.GenerateXML(testsupport.Context(), nil, aemdialog.RenderOptions{})
	if err != nil {
		t.Fatalf("generate nil: %v", err)
	}
	if string(placeholder) != "<!-- No active dialog -->" {
		t.Fatalf("placeholder = %q", placeholder)
	}
}

func TestGenerateFromProject(t *testing.T) {
	source := strings.NewReader(`{"dialogs":[{"id":"d1","name":"Card","tabs":[{"id":"default","name":"Properties"}],"blocks":[]}]}`)

	out, err := aemdialog.GenerateFromProject(testsupport.Context(), source, "", "markdown")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(string(out), "# Card\n") {
		t.Fatalf("unexpected markdown:\n%s", out)
	}
}

func TestRenderBlock(t *testing.T) {
	block := testsupport.Block("b1", model.CheckboxProperties{Text: "Show"}, "show")

	fragment, err := aemdialog.RenderBlock(block)
	if err != nil {
		t.Fatalf("render block: %v", err)
	}
	if !strings.HasPrefix(fragment, "<show\n") {
		t.Fatalf("unexpected fragment:\n%s", fragment)
	}
}
