package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/dori/taskboard/internal/app"
	"github.com/dori/taskboard/internal/config"
	"github.com/dori/taskboard/internal/model"
)

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskboard.log")

	logger, closeLog, err := newLogger(nil, config.LoggingConfig{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Debug("hello", "k", "v")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "msg=hello") || !strings.Contains(string(data), "k=v") {
		t.Fatalf("log file missing entry: %q", data)
	}
}

func TestNewLoggerConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeLog, err := newLogger(&buf, config.LoggingConfig{Level: "warn"})
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	defer closeLog()

	if logger.GetLevel() != log.WarnLevel {
		t.Fatalf("level = %v, want warn", logger.GetLevel())
	}
	logger.Info("quiet")
	logger.Warn("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Fatalf("unexpected console output: %q", buf.String())
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	if _, _, err := newLogger(nil, config.LoggingConfig{Level: "chatty"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestAddCommandCreatesTask(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default(filepath.Join(dir, "tasks.db"))
	a, err := app.New(cfg, nil)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	defer a.Close()

	srv := httptest.NewServer(a.Server.Handler())
	defer srv.Close()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"add",
		"--config", filepath.Join(dir, "missing.toml"),
		"--server", srv.URL,
		"Write", "docs", "!high", "#progress", "due:2026-11-01",
	})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("add: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "Write docs") {
		t.Fatalf("output = %q", out.String())
	}

	tasks, err := a.DB.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Description != "Write docs" || got.Priority != model.PriorityHigh ||
		got.Status != model.StatusInProgress || got.DueDate != "2026-11-01" {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestAddCommandRejectsEmptyDescription(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"add", "--config", filepath.Join(t.TempDir(), "none.toml"), "!high"})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("err = %v, want empty description error", err)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out.String()) != "taskboard v"+version {
		t.Fatalf("output = %q", out.String())
	}
}
