// teamstamp - personalised competition PDFs
// Copyright (C) 2026  The teamstamp authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads the settings of teamstamp from an optional YAML
// file, a .env file and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/teamstamp/roster"
	"seehuhn.de/go/teamstamp/stamp"
)

// DefaultFile is read if no configuration file is given explicitly.
const DefaultFile = "teamstamp.yaml"

// Environment variables which override the upload settings.
const (
	EnvBucket = "TEAMSTAMP_S3_BUCKET"
	EnvPrefix = "TEAMSTAMP_S3_PREFIX"
	EnvRegion = "AWS_REGION"
)

// Config holds all settings.
type Config struct {
	// SourceDir contains the PDF files named in the manifest.
	SourceDir string `yaml:"source_dir"`

	// TargetDir receives one sub-directory per place.
	TargetDir string `yaml:"target_dir"`

	// Headers name the columns of the roster.
	Headers roster.Headers `yaml:"headers"`

	// Font is the path of a TrueType font for the watermark.  If empty,
	// Go Regular is used.
	Font string `yaml:"font"`

	// Text is an optional template for the watermark text, for example
	// "{{.Name}} ({{.Place}})".
	Text string `yaml:"text"`

	Watermark stamp.Options         `yaml:"watermark"`
	Footnote  stamp.FootnoteOptions `yaml:"footnote"`
	Upload    Upload                `yaml:"upload"`
}

// Upload configures the S3 destination of the merged bundles.
type Upload struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

// Default returns the settings used when no configuration file exists.
func Default() *Config {
	return &Config{
		SourceDir: "pdfsrc",
		TargetDir: "target",
		Headers:   roster.DefaultHeaders,
		Watermark: stamp.DefaultOptions,
		Footnote:  stamp.DefaultFootnote,
	}
}

// Load reads the configuration file at path on top of the defaults.  If
// path is empty, [DefaultFile] is used if it exists.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Default(), nil
	} else if err != nil {
		return nil, err
	}

	c, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML configuration on top of the defaults.  Unknown
// keys are an error.
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(c)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return c, nil
}

// LoadDotEnv adds the variables from a .env file to the environment.
// Variables which are already set are kept.  A missing file is not an
// error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnv overrides the upload settings from the environment.  lookup is
// normally [os.LookupEnv].
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvBucket); ok && v != "" {
		c.Upload.Bucket = v
	}
	if v, ok := lookup(EnvPrefix); ok {
		c.Upload.Prefix = v
	}
	if v, ok := lookup(EnvRegion); ok && v != "" {
		c.Upload.Region = v
	}
}
