package main

import (
	"testing"

	"github.com/krillinai/klicbridge/internal/config"
)

func baselineConfig() *config.Config {
	cfg := &config.Config{}
	cfg.KlicStudioURL = "http://127.0.0.1:8888"
	cfg.Transport = config.TransportStdio
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8001
	cfg.LogLevel = "info"
	return cfg
}

func TestApplyFlagOverrides(t *testing.T) {
	cmd := newRootCmd()
	err := cmd.ParseFlags([]string{
		"--transport", "streamable-http",
		"--port", "9100",
		"--log-level", "debug",
	})
	if err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg := baselineConfig()
	applyFlagOverrides(cmd, cfg)

	if cfg.Transport != config.TransportStreamableHTTP {
		t.Errorf("Expected transport override, got %q", cfg.Transport)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Expected port override, got %d", cfg.Server.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level override, got %q", cfg.LogLevel)
	}

	// Flags that were not given leave the configuration alone
	if cfg.KlicStudioURL != "http://127.0.0.1:8888" {
		t.Errorf("Expected KlicStudio URL untouched, got %q", cfg.KlicStudioURL)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected host untouched, got %q", cfg.Server.Host)
	}
}

func TestApplyFlagOverrides_NoFlags(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("Failed to parse flags: %v", err)
	}

	cfg := baselineConfig()
	applyFlagOverrides(cmd, cfg)

	if cfg.Transport != config.TransportStdio || cfg.Server.Port != 8001 {
		t.Errorf("Expected configuration untouched, got transport %q port %d", cfg.Transport, cfg.Server.Port)
	}
}

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()

	for _, name := range []string{"klicstudio-url", "transport", "host", "port", "log-level"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag --%s to be registered", name)
		}
	}
}
