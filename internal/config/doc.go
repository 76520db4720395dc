// Package config provides the configuration for the keybind tools.
//
// Settings come from four sources, highest priority first:
//
//	┌─────────────────────────────┐
//	│  1. Command line flags      │
//	├─────────────────────────────┤
//	│  2. Environment (KEYBIND_*) │
//	├─────────────────────────────┤
//	│  3. keybind.{yaml,toml,json}│
//	├─────────────────────────────┤
//	│  4. Built-in defaults       │
//	└─────────────────────────────┘
//
// The configuration file is looked up in the working directory and in the
// user configuration directory, or named explicitly with --config.
//
// # Sub-packages
//
//   - lenient: comment-tolerant JSON parsing and typed re-decoding
//   - schema: JSON Schema model and validation
//   - watcher: file watching for live reload
//
// # Basic Usage
//
//	fs := pflag.NewFlagSet("keybind", pflag.ContinueOnError)
//	config.BindFlags(fs)
//	_ = fs.Parse(os.Args[1:])
//
//	cfg, err := config.Load(fs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Keymap)
package config
