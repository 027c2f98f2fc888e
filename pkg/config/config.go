// Course Match
// Copyright (c) 2026 The Course Match Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Course Match.
//
// Course Match is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Course Match is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Course Match.  If not, see <http://www.gnu.org/licenses/>.

// Package config loads the TOML configuration shared by the coursematch
// subcommands.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/coursematch/coursematch/pkg/courses/catalog"
	"github.com/coursematch/coursematch/pkg/courses/matcher"
	"github.com/coursematch/coursematch/pkg/courses/normalize"
	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	SchemaVersion = 1
	CfgEnv        = "COURSEMATCH_CFG"
	CfgFile       = "coursematch.toml"
)

var (
	// ErrSchemaVersion is returned when config_schema does not match
	// SchemaVersion.
	ErrSchemaVersion = errors.New("schema version mismatch")
	// ErrInvalidConfig is returned when a loaded value is out of range.
	ErrInvalidConfig = errors.New("invalid config")
)

type Values struct {
	Scorer       string            `toml:"scorer" validate:"scorer"`
	LogFile      string            `toml:"log_file,omitempty"`
	Columns      catalog.Columns   `toml:"columns"`
	Normalize    normalize.Options `toml:"normalize"`
	ConfigSchema int               `toml:"config_schema"`
	Threshold    int               `toml:"threshold" validate:"min=0,max=100"`
	Workers      int               `toml:"workers" validate:"min=0"`
	DebugLogging bool              `toml:"debug_logging"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Threshold:    matcher.DefaultThreshold,
	Scorer:       matcher.DefaultScorer,
	Columns:      catalog.DefaultColumns(),
	Normalize:    normalize.DefaultOptions(),
}

// clone returns a copy of v that shares no slices with it.
func (v *Values) clone() Values {
	c := *v
	c.Normalize.Stopwords = slices.Clone(v.Normalize.Stopwords)
	c.Normalize.Punctuation = slices.Clone(v.Normalize.Punctuation)
	return c
}

// Path picks the config file location: an explicit path wins over the
// CfgEnv environment variable. An empty result means no config file.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(CfgEnv)
}

// Load reads the config file at path on top of defaults. Keys missing from
// the file keep their default values. An empty path returns the defaults
// unchanged, and a path that does not exist yet is created from defaults.
//
//nolint:gocritic // config struct copied for immutability
func Load(fs afero.Fs, path string, defaults Values) (Values, error) {
	if path == "" {
		return defaults.clone(), nil
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return Values{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !exists {
		log.Info().Str("path", path).Msg("saving new default config to disk")
		if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return Values{}, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := Save(fs, path, defaults); err != nil {
			return Values{}, err
		}
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Values{}, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	vals := defaults.clone()
	if err := toml.Unmarshal(data, &vals); err != nil {
		return Values{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if vals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			vals.ConfigSchema,
			SchemaVersion,
		)
		return Values{}, fmt.Errorf("%w: got %d, expecting %d",
			ErrSchemaVersion, vals.ConfigSchema, SchemaVersion)
	}

	if err := Validate(&vals); err != nil {
		return Values{}, err
	}

	log.Debug().Str("path", path).Msg("loaded config")
	return vals, nil
}

// Save writes vals to path with the current schema version.
//
//nolint:gocritic // config struct copied for immutability
func Save(fs afero.Fs, path string, vals Values) error {
	if path == "" {
		return errors.New("config path not set")
	}

	vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("toml"), ",")
		return name
	})
	// tag is static and valid, registration cannot fail
	_ = v.RegisterValidation("scorer", func(fl validator.FieldLevel) bool {
		_, err := matcher.ScorerByName(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks value ranges, the scorer name and the required column
// names.
func Validate(vals *Values) error {
	err := validate.Struct(vals)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Values.")
	switch fe.Tag() {
	case "required":
		return field + " must be set"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "scorer":
		return fmt.Sprintf("%s %q is not one of %v", field, fe.Value(), matcher.ScorerNames())
	default:
		return fmt.Sprintf("%s failed %q check", field, fe.Tag())
	}
}
