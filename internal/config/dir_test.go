package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDir_Default(t *testing.T) {
	t.Setenv("COMMITGATE_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	if dir == "" {
		t.Fatal("Dir() returned empty string")
	}
	if runtime.GOOS != "windows" && filepath.Base(dir) != "commitgate" {
		t.Errorf("Dir() = %q, want path ending in 'commitgate'", dir)
	}
}

func TestDir_ExplicitOverride(t *testing.T) {
	t.Setenv("COMMITGATE_CONFIG_HOME", "/custom/path")
	if got := Dir(); got != "/custom/path" {
		t.Errorf("Dir() = %q, want %q", got, "/custom/path")
	}
}

func TestDir_XDGOverride(t *testing.T) {
	t.Setenv("COMMITGATE_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	want := filepath.Join("/xdg/config", "commitgate")
	if got := Dir(); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
}
