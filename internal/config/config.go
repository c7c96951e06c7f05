// Package config loads and validates planner configuration from YAML
// files, with environment variable interpolation and validated defaults.
package config

import (
	"time"

	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/blacklist"
	"github.com/V-Sekai-fire/aria-hybrid-planner-sub000/internal/engine"
)

// Config is the root configuration for the planner.
type Config struct {
	Planner PlannerConfig `mapstructure:"planner" validate:"required"`
	Logging LoggingConfig `mapstructure:"logging" validate:"required"`
	Events  EventsConfig  `mapstructure:"events"`
}

// PlannerConfig holds the refinement loop settings.
type PlannerConfig struct {
	// BlacklistScope is the default scope for new blacklist entries.
	BlacklistScope string `mapstructure:"blacklist_scope" validate:"required,oneof=session subtree global"`

	// MaxBacktrackDepth caps the number of backtracks per session.
	// Zero means unlimited.
	MaxBacktrackDepth int `mapstructure:"max_backtrack_depth" validate:"min=0"`

	// Deadline bounds a single planning session's wall-clock time.
	// Zero means no deadline.
	Deadline time.Duration `mapstructure:"deadline" validate:"min=0"`

	// ParallelRelaxation is the worker count for concurrent temporal
	// network solving; values <= 1 keep it serial.
	ParallelRelaxation int `mapstructure:"parallel_relaxation" validate:"min=0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
}

// EventsConfig holds refinement event emitter settings.
type EventsConfig struct {
	// BufferSize is the per-subscriber channel buffer. Zero keeps the
	// emitter default.
	BufferSize int `mapstructure:"buffer_size" validate:"min=0"`
}

// EngineOptions converts the planner section into engine options.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		BlacklistScopeDefault: blacklist.Scope(c.Planner.BlacklistScope),
		MaxBacktrackDepth:     c.Planner.MaxBacktrackDepth,
		Deadline:              c.Planner.Deadline,
		ParallelRelaxation:    c.Planner.ParallelRelaxation,
	}
}
