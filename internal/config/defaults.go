package config

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Nanobot: NanobotConfig{
			SessionID: "tui",
		},
		Shell: ShellConfig{
			Autostart: boolPtr(true),
			RefreshMS: 2000,
		},
		UI: UIConfig{
			StreamLogs:     boolPtr(true),
			LogScrollSpeed: 3,
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}
