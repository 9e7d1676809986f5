package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventmod/internal/domain"
	"eventmod/internal/history"
	"eventmod/internal/moderation"
)

func init() {
	color.NoColor = true
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`view = "other"`+"\n"), 0600))

	cfg, err := loadConfig(&options{
		configPath: path,
		view:       "all_future",
		baseURL:    "https://events.example.org",
		logFile:    "/tmp/eventmod-test.log",
	})
	require.NoError(t, err)

	assert.Equal(t, "all_future", cfg.View)
	assert.Equal(t, "https://events.example.org", cfg.Service.BaseURL)
	assert.Equal(t, "/tmp/eventmod-test.log", cfg.LogFile)
}

func TestLoadConfigRejectsUnknownView(t *testing.T) {
	_, err := loadConfig(&options{
		configPath: filepath.Join(t.TempDir(), "missing.toml"),
		view:       "sometimes",
	})
	assert.Error(t, err)
}

func TestNewClientRejectsBadTimezone(t *testing.T) {
	cfg, err := loadConfig(&options{configPath: filepath.Join(t.TempDir(), "missing.toml")})
	require.NoError(t, err)

	_, _, err = newClient(cfg, &options{timezone: "Mars/Olympus"})
	assert.Error(t, err)

	_, loc, err := newClient(cfg, &options{timezone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestPrintHistory(t *testing.T) {
	var out bytes.Buffer
	printHistory(&out, []history.Entry{
		{Action: domain.ActionApprove, EventIDs: []string{"1", "2"}, View: domain.ViewPending, Outcome: "remove", OK: true, At: time.Now()},
		{Action: domain.ActionDelete, EventIDs: []string{"3"}, View: domain.ViewOther, Error: "service returned 500", At: time.Now()},
	})

	s := out.String()
	assert.Contains(t, s, "ACTION")
	assert.Contains(t, s, "Approve")
	assert.Contains(t, s, "1, 2")
	assert.Contains(t, s, "remove")
	assert.Contains(t, s, "failed: service returned 500")
}

func TestPrintHistoryEmpty(t *testing.T) {
	var out bytes.Buffer
	printHistory(&out, nil)
	assert.Equal(t, "No actions recorded yet\n", out.String())
}

func TestPrintVerdict(t *testing.T) {
	var out bytes.Buffer
	printVerdict(&out, moderation.Verdict{
		Valid:   []domain.Action{domain.ActionHold},
		Invalid: []domain.Action{domain.ActionApprove},
		Unknown: []string{"archive"},
	})

	s := out.String()
	assert.Regexp(t, `Hold\s+yes`, s)
	assert.Regexp(t, `Approve\s+no`, s)
	assert.Regexp(t, `Delete\s+no`, s)
	assert.Contains(t, s, "Unknown actions ignored: archive")
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestInitWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventmod", "config.toml")

	out, err := runRoot(t, "init", "--config", path, "--view", "all_future", "--base-url", "https://events.example.org")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := loadConfig(&options{configPath: path})
	require.NoError(t, err)
	assert.Equal(t, "all_future", cfg.View)
	assert.Equal(t, "https://events.example.org", cfg.Service.BaseURL)
	assert.True(t, cfg.UISettings.ConfirmDelete)

	_, err = runRoot(t, "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = runRoot(t, "init", "--config", path, "--force")
	require.NoError(t, err)
	cfg, err = loadConfig(&options{configPath: path})
	require.NoError(t, err)
	assert.Equal(t, "pending", cfg.View)
}
