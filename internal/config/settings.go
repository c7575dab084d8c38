// Package config resolves cloudaudit settings from command-line flags,
// CLOUDAUDIT_* environment variables, an optional HCL file and built-in
// defaults, in that order of precedence.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"cloudaudit/pkg/logging"
)

// EnvPrefix prefixes every environment variable read by cloudaudit.
const EnvPrefix = "CLOUDAUDIT"

// Setting keys. They match the persistent flag names.
const (
	KeyProfile   = "profile"
	KeyRegion    = "region"
	KeyOutputDir = "output-dir"
	KeyFormat    = "format"
	KeySentinel  = "sentinel"
	KeyLogLevel  = "log-level"
	KeyJSONLogs  = "json-logs"
)

// Defaults applied when no other layer sets a value.
var Defaults = map[string]any{
	KeyOutputDir: "output",
	KeyFormat:    "csv",
	KeySentinel:  "N/A",
	KeyLogLevel:  "info",
	KeyJSONLogs:  false,
}

// Settings are the resolved values of one invocation.
type Settings struct {
	Profile   string
	Region    string
	OutputDir string
	Format    string
	Sentinel  string
	LogLevel  string
	JSONLogs  bool

	// Source is the HCL file that was read, or "".
	Source string

	file *File
}

// Audit returns the audit block of the config file for name, or nil.
func (s *Settings) Audit(name string) *AuditBlock {
	return s.file.Audit(name)
}

// Loader layers the configuration sources.
type Loader struct {
	parser *Parser
	logger logging.Logger
}

// NewLoader creates a Loader
func NewLoader(logger logging.Logger) *Loader {
	return &Loader{
		parser: NewParserWithLogger(logger),
		logger: logger,
	}
}

// Load resolves the settings. path names the HCL file; when empty,
// DefaultFile is used if it exists. flags are the command's flags; only the
// ones the user changed take precedence over the other layers.
func (l *Loader) Load(path string, flags *pflag.FlagSet, knownAudits []string) (*Settings, error) {
	v := viper.New()
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	settings := &Settings{}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, &Error{Path: DefaultFile, Err: err}
		}
	}

	if path != "" {
		file, err := l.parser.ParseFile(path, knownAudits)
		if err != nil {
			return nil, err
		}
		if err := v.MergeConfigMap(file.values()); err != nil {
			return nil, &Error{Path: path, Err: err}
		}
		settings.Source = path
		settings.file = file
	}

	if flags != nil {
		for _, key := range []string{KeyProfile, KeyRegion, KeyOutputDir, KeyFormat, KeySentinel, KeyLogLevel, KeyJSONLogs} {
			if flag := flags.Lookup(key); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, &Error{Path: "--" + key, Err: err}
				}
			}
		}
	}

	settings.Profile = v.GetString(KeyProfile)
	settings.Region = v.GetString(KeyRegion)
	settings.OutputDir = v.GetString(KeyOutputDir)
	settings.Format = v.GetString(KeyFormat)
	settings.Sentinel = v.GetString(KeySentinel)
	settings.LogLevel = v.GetString(KeyLogLevel)
	settings.JSONLogs = v.GetBool(KeyJSONLogs)

	if _, err := logging.ParseLogLevel(settings.LogLevel); err != nil {
		return nil, &Error{Path: KeyLogLevel, Err: err}
	}

	return settings, nil
}

// values returns the non-empty top-level settings of the file keyed like the flags.
func (f *File) values() map[string]any {
	values := map[string]any{}
	put := func(key, value string) {
		if value != "" {
			values[key] = value
		}
	}
	put(KeyProfile, f.Profile)
	put(KeyRegion, f.Region)
	put(KeyOutputDir, f.OutputDir)
	put(KeyFormat, f.Format)
	put(KeySentinel, f.Sentinel)
	put(KeyLogLevel, f.LogLevel)
	if f.JSONLogs != nil {
		values[KeyJSONLogs] = *f.JSONLogs
	}
	return values
}
