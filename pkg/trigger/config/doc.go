/*
Package config provides typed read access over map[string]any values.

# Overview

The same Config type serves two purposes in trigger:

  - reading client settings loaded from YAML or JSON files
  - reading event payloads without repeated type assertions

Every accessor takes a default that is returned when the key is missing or
the stored value has an incompatible type.

	cfg := config.New(map[string]any{
	    "name":    "greeter",
	    "enabled": true,
	})

	name := cfg.String("name", "anonymous") // "greeter"
	on := cfg.Bool("enabled", false)        // true
	n := cfg.Int("missing", 3)              // 3

# Type Coercion

Duration accepts strings parsed with time.ParseDuration, integers and floats
as seconds, and time.Duration values. Int accepts int, int64 and
whole-valued float64 (JSON numbers). Float accepts any of those.

# File Loading

	cfg, err := config.FromFile("trigger.yaml")

Supported extensions are .yaml, .yml and .json. DecodeFile decodes the same
files into a tagged struct instead of a map.

# Thread Safety

Config never writes to the wrapped map. Concurrent reads are safe as long as
the caller does not mutate the map it passed to New.
*/
package config
