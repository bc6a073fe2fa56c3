package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeGamesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write games file: %v", err)
	}
	return path
}

func TestLoadGamesConfig(t *testing.T) {
	path := writeGamesFile(t, `
games:
  - id: kalyan
    name: Kalyan
    session: Day
    open_time: 1709287200
    close_time: 1709294400
  - id: main-bazar
    name: Main Bazar
    session: Night
    open_time: 1709328900
    close_time: 1709251500
results:
  - game_id: kalyan
    panel_open: "138"
    open_number: "2"
    jodi_number: "25"
`)

	cfg, err := LoadGamesConfig(path)
	if err != nil {
		t.Fatalf("LoadGamesConfig failed: %v", err)
	}
	if len(cfg.Games) != 2 {
		t.Fatalf("Expected 2 games, got %d", len(cfg.Games))
	}

	kalyan := cfg.Games[0]
	if kalyan.Name != "Kalyan" || kalyan.Session != "Day" {
		t.Errorf("Unexpected game %+v", kalyan)
	}
	if kalyan.Schedule.OpenTime != 1709287200 || kalyan.Schedule.CloseTime != 1709294400 {
		t.Errorf("Expected inline schedule to be decoded, got %+v", kalyan.Schedule)
	}

	results := cfg.ResultsByGame()
	if r, ok := results["kalyan"]; !ok || r.JodiNumber != "25" || r.PanelClose != "" {
		t.Errorf("Unexpected result %+v", r)
	}

	if g, ok := cfg.FindGame("main-bazar"); !ok || g.Name != "Main Bazar" {
		t.Errorf("Expected to find main-bazar, got %+v", g)
	}
	if _, ok := cfg.FindGame("nope"); ok {
		t.Error("Expected unknown game lookup to fail")
	}
}

func TestLoadGamesConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing id", "games:\n  - name: Kalyan\n", "missing id"},
		{"missing name", "games:\n  - id: kalyan\n", "missing name"},
		{"duplicate id", "games:\n  - id: a\n    name: A\n  - id: a\n    name: B\n", "duplicate game id"},
		{"unknown result game", "games:\n  - id: a\n    name: A\nresults:\n  - game_id: b\n", "unknown game"},
		{"not yaml", "games: [", "unable to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadGamesConfig(writeGamesFile(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadGamesConfig_MissingFile(t *testing.T) {
	if _, err := LoadGamesConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
