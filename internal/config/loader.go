package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Resolve builds the final Defaults by starting from DefaultDefaults,
// overlaying a .jsonai.toml file at path (if it exists), then overlaying
// JSONAI_* environment variables. Flags are applied by the CLI layer on top
// of the returned value, since cobra owns flag parsing.
//
// A missing file at path is not an error -- it's the common case when no
// project-local config exists. A present-but-invalid file is an error.
func Resolve(path string) (*Defaults, error) {
	d := DefaultDefaults()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := loadFromFile(path, d); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	applyEnv(d)
	return d, nil
}

// loadFromFile decodes the TOML file at path into d, overwriting only the
// fields present in the file. Unknown keys produce a slog warning rather
// than an error, so a newer jsonai binary's config additions don't break an
// older file and vice versa.
func loadFromFile(path string, d *Defaults) error {
	meta, err := toml.DecodeFile(path, d)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	warnUndecodedKeys(meta, path)
	return nil
}

func warnUndecodedKeys(meta toml.MetaData, source string) {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return
	}

	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}

	slog.Warn("unknown config keys will be ignored",
		"source", source,
		"keys", strings.Join(keys, ", "),
	)
}
