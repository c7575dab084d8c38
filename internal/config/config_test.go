package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudaudit/pkg/logging"
)

var knownAudits = []string{"rds", "s3", "vpc"}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("cloudaudit", pflag.ContinueOnError)
	flags.String(KeyProfile, "", "")
	flags.String(KeyRegion, "", "")
	flags.String(KeyOutputDir, "output", "")
	flags.String(KeyFormat, "csv", "")
	flags.String(KeySentinel, "N/A", "")
	flags.String(KeyLogLevel, "info", "")
	flags.Bool(KeyJSONLogs, false, "")
	return flags
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestParseFile(t *testing.T) {
	parser := NewParserWithLogger(logging.NewMockLogger())

	file, err := parser.ParseFile(filepath.Join("testdata", "cloudaudit.hcl"), knownAudits)

	require.NoError(t, err)
	assert.Equal(t, "audit", file.Profile)
	assert.Equal(t, "eu-west-1", file.Region)
	require.Len(t, file.Audits, 2)

	rds := file.Audit("rds")
	require.NotNil(t, rds)
	assert.Equal(t, []string{"backups", "security"}, rds.Sections)
	assert.Equal(t, "databases.csv", rds.OutputFile)
	assert.Equal(t, []string{"assets", "logs"}, file.Audit("s3").Resources)
	assert.Nil(t, file.Audit("vpc"))
}

func TestParseFile_Errors(t *testing.T) {
	parser := NewParserWithLogger(logging.NewMockLogger())

	tests := []struct {
		name    string
		file    string
		message string
	}{
		{"missing file", "nope.hcl", "nope.hcl"},
		{"syntax error", "invalid.hcl", "failed to parse HCL file"},
		{"duplicate audit", "duplicate.hcl", "declared more than once"},
		{"unknown audit", "unknown_audit.hcl", `unknown audit "lambda"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.ParseFile(filepath.Join("testdata", tt.file), knownAudits)

			var cfgErr *Error
			require.ErrorAs(t, err, &cfgErr)
			assert.ErrorContains(t, err, tt.message)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	settings, err := NewLoader(logging.NewMockLogger()).Load("", newFlags(), knownAudits)

	require.NoError(t, err)
	assert.Equal(t, "output", settings.OutputDir)
	assert.Equal(t, "csv", settings.Format)
	assert.Equal(t, "N/A", settings.Sentinel)
	assert.Equal(t, "info", settings.LogLevel)
	assert.False(t, settings.JSONLogs)
	assert.Empty(t, settings.Source)
	assert.Nil(t, settings.Audit("rds"))
}

func TestLoad_Precedence(t *testing.T) {
	path, err := filepath.Abs(filepath.Join("testdata", "cloudaudit.hcl"))
	require.NoError(t, err)

	t.Setenv("CLOUDAUDIT_REGION", "us-west-2")
	t.Setenv("CLOUDAUDIT_OUTPUT_DIR", "env-reports")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--output-dir", "flag-reports", "--json-logs"}))

	settings, err := NewLoader(logging.NewMockLogger()).Load(path, flags, knownAudits)

	require.NoError(t, err)
	assert.Equal(t, "audit", settings.Profile, "file value applies when nothing overrides it")
	assert.Equal(t, "us-west-2", settings.Region, "environment beats the file")
	assert.Equal(t, "flag-reports", settings.OutputDir, "flags beat the environment")
	assert.Equal(t, "MISSING", settings.Sentinel)
	assert.Equal(t, "csv", settings.Format)
	assert.True(t, settings.JSONLogs)
	assert.Equal(t, path, settings.Source)
	assert.Equal(t, "databases.csv", settings.Audit("rds").OutputFile)
}

func TestLoad_DefaultFileInWorkingDirectory(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "cloudaudit.hcl"))
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), data, 0o644))
	chdir(t, dir)

	settings, err := NewLoader(logging.NewMockLogger()).Load("", nil, knownAudits)

	require.NoError(t, err)
	assert.Equal(t, DefaultFile, settings.Source)
	assert.Equal(t, "reports", settings.OutputDir)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CLOUDAUDIT_LOG_LEVEL", "chatty")

	_, err := NewLoader(logging.NewMockLogger()).Load("", newFlags(), knownAudits)

	var cfgErr *Error
	assert.True(t, errors.As(err, &cfgErr))
}

func TestProfileRegistry(t *testing.T) {
	registry, err := NewProfileRegistry(filepath.Join("testdata", "credentials"), filepath.Join("testdata", "config"))
	require.NoError(t, err)

	profiles := registry.Profiles()
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"audit", "default", "sso-readonly"}, names)
	assert.Equal(t, "eu-west-1", profiles[0].Region)
	assert.Equal(t, filepath.Join("testdata", "credentials"), profiles[0].Source)
	assert.Equal(t, "us-east-1", profiles[1].Region)

	assert.NoError(t, registry.Validate("audit"))
	assert.NoError(t, registry.Validate(""))

	var cfgErr *Error
	assert.ErrorAs(t, registry.Validate("prod"), &cfgErr)
}

func TestProfileRegistry_NoFiles(t *testing.T) {
	dir := t.TempDir()
	registry, err := NewProfileRegistry(filepath.Join(dir, "credentials"), filepath.Join(dir, "config"))

	require.NoError(t, err)
	assert.Empty(t, registry.Profiles())
	assert.NoError(t, registry.Validate("anything"))
}

func TestSharedFiles_Environment(t *testing.T) {
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/tmp/creds")
	t.Setenv("AWS_CONFIG_FILE", "/tmp/cfg")

	credentials, cfg := SharedFiles()
	assert.Equal(t, "/tmp/creds", credentials)
	assert.Equal(t, "/tmp/cfg", cfg)
}
