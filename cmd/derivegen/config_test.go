package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigDefaultsAndOverrides(t *testing.T) {
	path := writeFile(t, "derivegen.toml", `
namespace = " crate::wire "
contracts = ["SerJson", "", "DeJson", "SerJson"]
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Namespace != "crate::wire" {
		t.Fatalf("unexpected namespace: %q", cfg.Namespace)
	}
	if !reflect.DeepEqual(cfg.Contracts, []string{"SerJson", "DeJson"}) {
		t.Fatalf("unexpected contracts: %+v", cfg.Contracts)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
	if cfg.OutputDir != "" {
		t.Fatalf("unexpected output dir: %q", cfg.OutputDir)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "derivegen.toml", "namespaces = \"x\"\n")
	_, err := loadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "unknown key namespaces") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestRun(t *testing.T) {
	decl := writeFile(t, "decl.toml", `
[[struct]]
name = "Pair"
generics = "<T>"

  [[struct.field]]
  name = "a"
  attributes = ['#[nserde(rename = "A")]']
`)
	var stdout, stderr strings.Builder
	if err := run([]string{"-contract", "SerBin", "-log_level", "off", decl}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := `// Pair
//   a: wire="A"
impl<T: nanoserde::SerBin, > nanoserde::SerBin for Pair<T, > {}
`
	if stdout.String() != want {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}
}

func TestRunOutputDirFromConfig(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen")
	conf := writeFile(t, "derivegen.toml", "output_dir = \""+filepath.ToSlash(out)+"\"\ncontracts = [\"DeRon\"]\nlog_level = \"off\"\n")
	decl := writeFile(t, "decl.toml", "[[enum]]\nname = \"E\"\n")

	var stdout, stderr strings.Builder
	if err := run([]string{"-config", conf, decl}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no stdout, got %q", stdout.String())
	}
	data, err := os.ReadFile(filepath.Join(out, "E.rs"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "// E\nimpl nanoserde::DeRon for E {}\n" {
		t.Fatalf("unexpected output: %q", data)
	}
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr strings.Builder
	if err := run(nil, &stdout, &stderr); err == nil {
		t.Fatalf("expected error without declaration files")
	}

	decl := writeFile(t, "decl.toml", "[[struct]]\nname = \"S\"\nattributes = ['#[nserde(transparent(1))]']\n")
	err := run([]string{"-log_level", "off", decl}, &stdout, &stderr)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if err.Error() != `S: type-level annotation "transparent" expects 0 arguments but found 1` {
		t.Fatalf("unexpected error: %v", err)
	}
}
