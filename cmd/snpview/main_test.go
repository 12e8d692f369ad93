package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeS2P(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "dut.s2p")
	body := "! cal\n# GHZ S RI R 50\n1 0.1 0 0.2 0 0.3 0 0.4 0\n2 0.5 0 0.6 0 0.7 0 0.8 0\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, p
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestExportCommand(t *testing.T) {
	dir, p := writeS2P(t)
	out := filepath.Join(dir, "s21.json")
	msg, err := run(t, "export", p, "[2,1]", out, "--where", "freq > 1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(msg, "wrote 1 samples") {
		t.Fatalf("output: %q", msg)
	}
	data, _ := os.ReadFile(out)
	if !strings.HasPrefix(string(data), `{"series":"S21","row":2,"col":1,"freq":2,"re":0.7,"im":0}`) {
		t.Fatalf("json: %s", data)
	}
}

func TestRootHeadlessExport(t *testing.T) {
	dir, p := writeS2P(t)
	out := filepath.Join(dir, "all.csv")
	_, err := run(t, p, "--columns", "[1,1],[2,2]", "--export", "csv", "-o", out, "--no-session")
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	data, _ := os.ReadFile(out)
	if lines := strings.Count(string(data), "\n"); lines != 5 {
		t.Fatalf("csv has %d lines:\n%s", lines, data)
	}
}

func TestInfoCommand(t *testing.T) {
	_, p := writeS2P(t)
	if _, err := run(t, "info", p, "--comments"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if _, err := run(t, "info", filepath.Join(t.TempDir(), "missing.s2p")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestVersionCommand(t *testing.T) {
	msg, err := run(t, "version")
	if err != nil || !strings.HasPrefix(msg, "snpview ") {
		t.Fatalf("version: %q %v", msg, err)
	}
}
