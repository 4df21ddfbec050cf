package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"bigtwo/internal/domain"
)

// GameConfig carries the tunable match settings loaded at module startup.
type GameConfig struct {
	// OpeningRule selects the leader decision variant: "seeding" or "lowest_card".
	OpeningRule         string `json:"opening_rule"`
	TurnDurationSeconds int    `json:"turn_duration_seconds"`
	BotsEnabled         bool   `json:"bots_enabled"`
	BotMinDelaySeconds  int    `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds  int    `json:"bot_max_delay_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding bots to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// MatchRules returns the configured domain rule set, defaulting to the
// seeding opening when no config was loaded or the value is unknown.
func MatchRules() domain.Rules {
	if cfg == nil {
		return domain.DefaultRules()
	}
	switch domain.OpeningRule(cfg.OpeningRule) {
	case domain.OpeningLowestCard:
		return domain.Rules{Opening: domain.OpeningLowestCard}
	case domain.OpeningSeeding:
		return domain.Rules{Opening: domain.OpeningSeeding}
	default:
		return domain.DefaultRules()
	}
}

// TurnDuration returns the human turn timeout in seconds. An explicit 0
// disables the timeout.
func TurnDuration() int {
	if cfg == nil {
		return 30
	}
	return cfg.TurnDurationSeconds
}

// BotDelays returns the min/max bot think delays with safe defaults.
func BotDelays() (min, max int) {
	min, max = 1, 3
	if cfg == nil {
		return min, max
	}
	if cfg.BotMinDelaySeconds > 0 {
		min = cfg.BotMinDelaySeconds
	}
	if cfg.BotMaxDelaySeconds >= min {
		max = cfg.BotMaxDelaySeconds
	} else {
		max = min
	}
	return min, max
}

// BotAutoFillDelay returns the lobby auto-fill delay with a safe default.
func BotAutoFillDelay() int {
	if cfg == nil || cfg.BotAutoFillDelaySeconds <= 0 {
		return 5
	}
	return cfg.BotAutoFillDelaySeconds
}
