package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "chatter.log")
	c, err := Setup(Options{Path: p, MaxSizeMB: 1, MaxBackups: 1})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer log.SetOutput(os.Stderr)

	log.Printf("session started")
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), "session started") {
		t.Fatalf("log line missing: %q", raw)
	}
}

func TestSetupEmptyPathUsesStderr(t *testing.T) {
	c, err := Setup(Options{})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
