package common

import (
	"fmt"
	"os"
	"path/filepath"

	"matka-ledger-go/internal/models"

	"gopkg.in/yaml.v2"
)

type GamesConfig struct {
	Games   []models.Game       `yaml:"games"`
	Results []models.GameResult `yaml:"results"`
}

func LoadGamesConfig(gamesFile string) (*GamesConfig, error) {
	var gamesPath string
	if filepath.IsAbs(gamesFile) {
		gamesPath = gamesFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		gamesPath = filepath.Join(wd, gamesFile)
	}

	data, err := os.ReadFile(gamesPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", gamesFile, err)
	}

	var config GamesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", gamesFile, err)
	}

	seen := make(map[string]bool, len(config.Games))
	for i, game := range config.Games {
		if game.Id == "" {
			return nil, fmt.Errorf("game at index %d missing id", i)
		}
		if game.Name == "" {
			return nil, fmt.Errorf("game %s missing name", game.Id)
		}
		if seen[game.Id] {
			return nil, fmt.Errorf("duplicate game id %s", game.Id)
		}
		seen[game.Id] = true
	}

	for i, result := range config.Results {
		if !seen[result.GameId] {
			return nil, fmt.Errorf("result at index %d refers to unknown game %q", i, result.GameId)
		}
	}

	return &config, nil
}

// ResultsByGame indexes results by game id. A later entry replaces an earlier one.
func (c *GamesConfig) ResultsByGame() map[string]models.GameResult {
	results := make(map[string]models.GameResult, len(c.Results))
	for _, r := range c.Results {
		results[r.GameId] = r
	}
	return results
}

// FindGame looks a game up by id
func (c *GamesConfig) FindGame(id string) (models.Game, bool) {
	for _, g := range c.Games {
		if g.Id == id {
			return g, true
		}
	}
	return models.Game{}, false
}
