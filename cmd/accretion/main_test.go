package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func parsed(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addSimFlags(cmd)
	addLiveFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return cmd
}

func TestResolveConfigDefaults(t *testing.T) {
	cfg, err := resolveConfig(parsed(t))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scenario != "accretion" || cfg.Orbit.OrbiterCount != 70 || cfg.Ticks != 5000 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("ticks: 300\nseed: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := parsed(t, "--preset", "dense", "--config", path, "--seed", "4", "--bodies", "12")
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}

	// flag over file
	if cfg.Seed != 4 || cfg.Orbit.OrbiterCount != 12 {
		t.Errorf("flags not applied: seed %d bodies %d", cfg.Seed, cfg.Orbit.OrbiterCount)
	}
	// file over preset
	if cfg.Ticks != 300 {
		t.Errorf("expected ticks from file, got %d", cfg.Ticks)
	}
	// preset over defaults
	if cfg.SampleEvery != 25 || cfg.Orbit.MaxDistanceFrac != 0.30 {
		t.Errorf("preset lost: sample %d max %g", cfg.SampleEvery, cfg.Orbit.MaxDistanceFrac)
	}
}

func TestResolveConfigErrors(t *testing.T) {
	if _, err := resolveConfig(parsed(t, "--preset", "nope")); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := resolveConfig(parsed(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"))); err == nil {
		t.Error("expected error for missing config file")
	}
	if _, err := resolveConfig(parsed(t, "--dt=-1")); err == nil {
		t.Error("expected error for negative dt")
	}
}
