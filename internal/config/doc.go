// Package config loads the inputcore configuration.
//
// Configuration is built in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← INPUTCORE_SECTION_SETTING
//	├─────────────────────────────┤
//	│  2. Config File             │  ← inputcore.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Command line flags are applied by the caller after Load returns.
//
// # Example
//
//	[input]
//	queue_capacity = 16
//	wheel_notch = 120
//
//	[terminal]
//	frame_interval = "16ms"
//	repeat_window = "60ms"
//
//	[logging]
//	level = "debug"
//	file = "/tmp/inputcore.log"
package config
