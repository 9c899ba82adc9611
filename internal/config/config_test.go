package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mazeman.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.Tuning.StartHealth != 3 || cfg.Tuning.NumWater != 2 || cfg.Persistence.Type != "json" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
log_level = "debug"
seed = 99

[tuning]
num_water = 3
frog_damage = 70

[persistence]
type = "postgres"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 99 || cfg.LogLevel != "debug" {
		t.Fatalf("top-level keys not applied: %+v", cfg)
	}
	if cfg.Tuning.NumWater != 3 || cfg.Tuning.FrogDamage != 70 {
		t.Fatalf("tuning keys not applied: %+v", cfg.Tuning)
	}
	if cfg.Tuning.SpiderDamage != 80 {
		t.Fatalf("unset tuning key lost its default: %d", cfg.Tuning.SpiderDamage)
	}
	if cfg.Persistence.Type != "postgres" || cfg.Persistence.File != "mazeman.json" {
		t.Fatalf("unexpected persistence %+v", cfg.Persistence)
	}
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := writeFile(t, "[persistence]\nfile = \"from-file.json\"\n")
	t.Setenv(EnvDBFile, "from-env.json")
	t.Setenv(EnvSpectateAddr, ":9000")
	t.Setenv(EnvDBType, "JSON")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Persistence.File != "from-env.json" || cfg.Persistence.Type != "json" {
		t.Fatalf("env not applied: %+v", cfg.Persistence)
	}
	if cfg.Spectate.Addr != ":9000" {
		t.Fatalf("expected spectate addr, got %q", cfg.Spectate.Addr)
	}
}

func TestLoad_RejectsBadInput(t *testing.T) {
	if _, err := Load(writeFile(t, "this is = = not toml")); err == nil {
		t.Fatal("expected decode error")
	}
	if _, err := Load(writeFile(t, "[tuning]\nticks_per_second = 0\n")); err == nil {
		t.Fatal("expected validation error for zero tick rate")
	}
	if _, err := Load(writeFile(t, "[persistence]\ntype = \"redis\"\n")); err == nil {
		t.Fatal("expected validation error for unknown store")
	}
}

func TestLoad_DotEnvFillsUnsetVariables(t *testing.T) {
	dir := t.TempDir()
	body := EnvDBFile + "=dot.json\n" + EnvSpectateAddr + "=:7000\n"
	if err := os.WriteFile(filepath.Join(dir, DotEnvFile), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv(EnvDBFile, "from-env.json")
	t.Setenv(EnvSpectateAddr, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Persistence.File != "from-env.json" {
		t.Fatalf("process env should win over .env, got %q", cfg.Persistence.File)
	}
	if cfg.Spectate.Addr != ":7000" {
		t.Fatalf("expected .env spectate addr, got %q", cfg.Spectate.Addr)
	}
}

func TestApplyEnv_ProcessOnly(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	cfg := Default()
	cfg.ApplyEnv()
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected warn, got %q", cfg.LogLevel)
	}
}
