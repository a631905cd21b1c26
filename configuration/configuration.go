package configuration

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"
)

// Configuration is a versioned elixir configuration, intended to be provided
// by a yaml file, and optionally modified by environment variables.
//
// Note that yaml field names should never include _ characters, since this
// is the separator used in environment variable names.
type Configuration struct {
	// Version is the version which defines the format of the rest of the
	// configuration.
	Version Version `yaml:"version"`

	// Log supports setting various parameters related to the logging
	// subsystem.
	Log Log `yaml:"log"`

	// Loglevel is the level at which operations are logged.
	//
	// Deprecated: Use Log.Level instead.
	Loglevel Loglevel `yaml:"loglevel,omitempty"`

	// Project describes the source tree this instance indexes and queries.
	Project Project `yaml:"project"`

	// Collaborator configures the external highlighter/tokenizer process
	// the updater shells out to.
	Collaborator Collaborator `yaml:"collaborator"`

	// Store configures the embedded key-value engine backing every table.
	Store Store `yaml:"store"`

	// Updater configures the incremental indexing pipeline.
	Updater Updater `yaml:"updater,omitempty"`

	// Health provides the configuration section for health checks.
	Health Health `yaml:"health,omitempty"`
}

// Log represents the configuration for logging within the application.
type Log struct {
	// Level is the granularity at which operations are logged.
	Level Loglevel `yaml:"level,omitempty"`

	// Formatter overrides the default formatter with another. Options
	// include "text" and "json".
	Formatter string `yaml:"formatter,omitempty"`

	// Fields allows users to specify static string fields to include in
	// the logger context.
	Fields map[string]interface{} `yaml:"fields,omitempty"`

	// ReportCaller allows the user to configure the log to report the
	// caller.
	ReportCaller bool `yaml:"reportcaller,omitempty"`
}

// Project describes the indexed source tree.
type Project struct {
	// Name identifies the project, e.g. "linux" (the key filter.FiltersFor
	// takes). Parse rejects a configuration without it; metrics and log
	// lines do not include it.
	Name string `yaml:"name"`

	// DataDir is the directory holding the badger tables for this
	// project's store.
	DataDir string `yaml:"dataDir"`

	// DTSComp enables the devicetree-compatible-string index, a feature
	// only meaningful for kernel-style projects that ship .dts/.dtsi
	// sources.
	DTSComp bool `yaml:"dtsComp,omitempty"`
}

// Collaborator configures the external process the updater uses to
// enumerate blobs, list tags, and tokenize files.
type Collaborator struct {
	// Command is the path to the collaborator executable.
	Command string `yaml:"command"`

	// BlobTimeout bounds how long a single collaborator invocation may
	// run before it is killed.
	BlobTimeout time.Duration `yaml:"blobTimeout,omitempty"`

	// Args are additional arguments passed to every invocation, e.g. a
	// repository path.
	Args []string `yaml:"args,omitempty"`
}

// Store defines the configuration for elixir's key-value storage engine.
type Store struct {
	// Engine names the storage engine. Only "badger" is implemented; the
	// field exists so a future engine can be selected without an API
	// break.
	Engine string `yaml:"engine"`

	// Parameters carries engine-specific options. The badger engine
	// (store.OpenBadger) reads none of them.
	Parameters Parameters `yaml:"parameters,omitempty"`
}

// Updater configures the incremental indexing pipeline.
type Updater struct {
	// Workers bounds the number of concurrent extraction workers used in
	// each pipeline stage. Zero means GOMAXPROCS.
	Workers int `yaml:"workers,omitempty"`
}

// Parameters defines a key-value parameters mapping.
type Parameters map[string]interface{}

// FileChecker is a type of entry in the health section for checking files.
// elixir-update registers a check for File but never polls it, so Interval
// and Threshold are parsed and not read.
type FileChecker struct {
	// Interval is the duration in between checks.
	Interval time.Duration `yaml:"interval,omitempty"`

	// File is the path to check.
	File string `yaml:"file,omitempty"`

	// Threshold is the number of times a check must fail to trigger an
	// unhealthy state.
	Threshold int `yaml:"threshold,omitempty"`
}

// Health provides the configuration section for health checks.
type Health struct {
	// FileCheckers is a list of paths to check.
	FileCheckers []FileChecker `yaml:"file,omitempty"`

	// StoreCheckInterval is the polling interval for the store-openness
	// check. elixir-update registers that check but does not poll it, so
	// the value is parsed and not read.
	StoreCheckInterval time.Duration `yaml:"storeCheckInterval,omitempty"`

	// CollaboratorCheckInterval is the polling interval for the
	// collaborator-reachability check. elixir-update registers that check
	// but does not poll it, so the value is parsed and not read.
	CollaboratorCheckInterval time.Duration `yaml:"collaboratorCheckInterval,omitempty"`
}

// v0_1Configuration is a Version 0.1 Configuration struct.
// This is currently aliased to Configuration, as it is the current version.
type v0_1Configuration Configuration

// UnmarshalYAML implements the yaml.Unmarshaler interface.
// Unmarshals a string of the form X.Y into a Version, validating that X and
// Y can represent unsigned integers.
func (version *Version) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var versionString string
	err := unmarshal(&versionString)
	if err != nil {
		return err
	}

	newVersion := Version(versionString)
	if _, err := newVersion.major(); err != nil {
		return err
	}

	if _, err := newVersion.minor(); err != nil {
		return err
	}

	*version = newVersion
	return nil
}

// CurrentVersion is the most recent Version that can be parsed.
var CurrentVersion = MajorMinorVersion(0, 1)

// Loglevel is the level at which operations are logged.
// This can be error, warn, info, or debug.
type Loglevel string

// UnmarshalYAML implements the yaml.Umarshaler interface.
// Unmarshals a string into a Loglevel, lowercasing the string and
// validating that it represents a valid loglevel.
func (loglevel *Loglevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var loglevelString string
	err := unmarshal(&loglevelString)
	if err != nil {
		return err
	}

	loglevelString = strings.ToLower(loglevelString)
	switch loglevelString {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("invalid loglevel %s Must be one of [error, warn, info, debug]", loglevelString)
	}

	*loglevel = Loglevel(loglevelString)
	return nil
}

// Parse parses an input configuration yaml document into a Configuration
// struct. This should generally be capable of handling old configuration
// format versions.
//
// Environment variables may be used to override configuration parameters
// other than version, following the scheme below:
// Configuration.Abc may be replaced by the value of ELIXIR_ABC,
// Configuration.Abc.Xyz may be replaced by the value of ELIXIR_ABC_XYZ, and
// so forth.
func Parse(rd io.Reader) (*Configuration, error) {
	in, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}

	p := NewParser("elixir", []VersionedParseInfo{
		{
			Version: MajorMinorVersion(0, 1),
			ParseAs: reflect.TypeOf(v0_1Configuration{}),
			ConversionFunc: func(c interface{}) (interface{}, error) {
				if v0_1, ok := c.(*v0_1Configuration); ok {
					if v0_1.Log.Level == Loglevel("") {
						if v0_1.Loglevel != Loglevel("") {
							v0_1.Log.Level = v0_1.Loglevel
						} else {
							v0_1.Log.Level = Loglevel("info")
						}
					}
					if v0_1.Loglevel != Loglevel("") {
						v0_1.Loglevel = Loglevel("")
					}

					if v0_1.Project.Name == "" {
						return nil, errors.New("no project name provided")
					}
					if v0_1.Project.DataDir == "" {
						return nil, errors.New("no project dataDir provided")
					}
					if v0_1.Store.Engine == "" {
						v0_1.Store.Engine = "badger"
					}
					if v0_1.Collaborator.BlobTimeout == 0 {
						v0_1.Collaborator.BlobTimeout = 60 * time.Second
					}
					if v0_1.Health.StoreCheckInterval == 0 {
						v0_1.Health.StoreCheckInterval = 10 * time.Second
					}
					if v0_1.Health.CollaboratorCheckInterval == 0 {
						v0_1.Health.CollaboratorCheckInterval = 30 * time.Second
					}

					return (*Configuration)(v0_1), nil
				}
				return nil, fmt.Errorf("expected *v0_1Configuration, received %#v", c)
			},
		},
	})

	config := new(Configuration)
	err = p.Parse(in, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
