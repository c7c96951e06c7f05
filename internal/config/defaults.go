package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Planner: PlannerConfig{
			BlacklistScope:     "session",
			MaxBacktrackDepth:  0,
			Deadline:           0,
			ParallelRelaxation: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Events: EventsConfig{
			BufferSize: 128,
		},
	}
}
