package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Options Lab Configuration

[market]
# Symbol used when a command does not name one
default_symbol = "NIFTY"

# Instrument universe served by the synthetic chain source.
# spot anchors the fabricated chain; strike_step spaces the strikes.
[[market.instruments]]
symbol = "NIFTY"
name = "Nifty 50"
lot_size = 50
spot = 19525.50
strike_step = 50.0

[[market.instruments]]
symbol = "BANKNIFTY"
name = "Nifty Bank"
lot_size = 15
spot = 44310.25
strike_step = 100.0

[[market.instruments]]
symbol = "FINNIFTY"
name = "Nifty Financial Services"
lot_size = 40
spot = 19866.40
strike_step = 50.0

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "02-Jan-2006"

[logging]
# Log level: debug, info, warn, error
level = "info"
# Echo logs to the terminal
console = false
# Write logs to ~/.config/options-lab/logs/
file = true
max_size_mb = 20
max_backups = 3
max_age_days = 30
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}
