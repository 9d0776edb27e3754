// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/rendergraph"
)

const testConfig = `
frames = 4

viewport {
  width  = 48
  height = 32
}

shadow_map_size = 16

event "resize" {
  frame  = 2
  width  = 24
  height = 16
}

event "bloom" {
  frame   = 1
  enabled = true
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Software(t *testing.T) {
	t.Cleanup(func() { rendergraph.SetLogger(nil) })
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.png")
	dot := filepath.Join(dir, "frame.dot")

	var logs bytes.Buffer
	err := run(options{
		configPath: writeFile(t, dir, "mapframe.hcl", testConfig),
		output:     out,
		dot:        dot,
	}, &logs)
	if err != nil {
		t.Fatalf("run() error = %v\n%s", err, logs.String())
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 16 {
		t.Errorf("image size = %dx%d, want 24x16", b.Dx(), b.Dy())
	}

	graph, err := os.ReadFile(dot)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(graph), "digraph") {
		t.Errorf("dot output = %q", graph)
	}

	for _, want := range []string{"event=resize@2(24x16)", "event=bloom@1(true)", "msg=saved"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log missing %q:\n%s", want, logs.String())
		}
	}
}

func TestRun_NoopSkipsImage(t *testing.T) {
	t.Cleanup(func() { rendergraph.SetLogger(nil) })
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.png")

	var logs bytes.Buffer
	err := run(options{
		configPath: writeFile(t, dir, "mapframe.hcl", testConfig),
		backend:    "noop",
		frames:     2,
		output:     out,
	}, &logs)
	if err != nil {
		t.Fatalf("run() error = %v\n%s", err, logs.String())
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("PNG written on the noop backend: %v", err)
	}
	if !strings.Contains(logs.String(), "skipping PNG output") {
		t.Errorf("log missing skip warning:\n%s", logs.String())
	}
}

func TestRun_Errors(t *testing.T) {
	t.Cleanup(func() { rendergraph.SetLogger(nil) })
	dir := t.TempDir()

	tests := []struct {
		name string
		opts options
	}{
		{"missing config", options{configPath: filepath.Join(dir, "missing.hcl")}},
		{"invalid config", options{configPath: writeFile(t, dir, "bad.hcl", `frames = -1`)}},
		{"unknown backend", options{backend: "vulkan"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.opts, &bytes.Buffer{}); err == nil {
				t.Error("run() error = nil")
			}
		})
	}
}
