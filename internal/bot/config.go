package bot

import (
	"time"
)

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Maximum algorithms offered in one review session
	ReviewBatchSize int
	// Number of choices in a multiple-choice drill
	DrillOptionCount int
	// Idle time after which a review session is dropped
	SessionTimeout time.Duration
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		ReviewBatchSize:  10,
		DrillOptionCount: 4,
		SessionTimeout:   30 * time.Minute,
	}
}
