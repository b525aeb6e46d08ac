package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Init(Options{Level: "warn", Writer: &buf})

	logger.Info("hidden")
	logger.With(slog.String("component", "export")).Warn("block render failed", slog.String("block", "size"), slog.Int("index", 2))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered at warn level:\n%s", out)
	}
	for _, want := range []string{" WRN block render failed", "app=aemdialog", "component=export", "block=size", "index=2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
	if L() != logger {
		t.Fatal("L should return the initialised logger")
	}
}

func TestInit_JSONFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aemdialog.log")
	var console bytes.Buffer
	Init(Options{Level: "debug", Format: "json", File: path, Writer: &console})

	WithComponent("server").Debug("request", slog.String("route", "/healthz"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var last string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			last = line
		}
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(last), &record); err != nil {
		t.Fatalf("unmarshal %q: %v", last, err)
	}
	if record["msg"] != "request" || record["component"] != "server" || record["route"] != "/healthz" || record["app"] != "aemdialog" {
		t.Fatalf("unexpected record %v", record)
	}
	if !strings.Contains(console.String(), `"msg":"request"`) {
		t.Fatalf("console should receive json too: %q", console.String())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "yes")
	t.Setenv(EnvLogFile, "/tmp/aemd.log")

	opts := FromEnv()
	if opts.Level != "error" || opts.Format != "json" || !opts.AddSource || opts.File != "/tmp/aemd.log" {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
