package config

import (
	"path/filepath"
	"testing"
)

func TestInitializeAtCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := InitializeAt(dir); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	if AppConfig.LogLevel != "info" {
		t.Errorf("log_level = %q, want info", AppConfig.LogLevel)
	}
	if AppConfig.ReportSchedule != "0 6 1 * *" {
		t.Errorf("report_schedule = %q", AppConfig.ReportSchedule)
	}
	if want := filepath.Join(dir, "hireboard.db"); AppConfig.DBPath != want {
		t.Errorf("db_path = %q, want %q", AppConfig.DBPath, want)
	}
	if GetConfigPath() != filepath.Join(dir, "config.yaml") {
		t.Errorf("unexpected config path %q", GetConfigPath())
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HIREBOARD_LOG_LEVEL", "debug")
	if err := InitializeAt(t.TempDir()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if AppConfig.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", AppConfig.LogLevel)
	}
}

func TestSetPersistsAndMasksSecrets(t *testing.T) {
	dir := t.TempDir()
	if err := InitializeAt(dir); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	if err := Set("password", "hunter22"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := Set("email", "bo@example.com"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := Set("favourite_color", "blue"); err == nil {
		t.Error("expected unknown key to be rejected")
	}

	// Reload from disk
	if err := InitializeAt(dir); err != nil {
		t.Fatalf("reinitialize: %v", err)
	}
	if AppConfig.Email != "bo@example.com" || AppConfig.Password != "hunter22" {
		t.Errorf("values not persisted: %+v", AppConfig)
	}

	for _, kv := range Values() {
		if kv[1] == "hunter22" {
			t.Errorf("secret %s printed in clear", kv[0])
		}
	}
}
