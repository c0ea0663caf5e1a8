package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandStructure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "refpin", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)

	names := make(map[string]bool)
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"serve", "tools", "search", "version"} {
		assert.True(t, names[want], "expected subcommand %q to be registered", want)
	}
}

func TestServeCommandStructure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "serve", serveCmd.Use)
	assert.NotNil(t, serveCmd.RunE)

	for _, flag := range []string{"http", "port", "otel", "debug"} {
		f := serveCmd.Flags().Lookup(flag)
		require.NotNil(t, f, "flag %q should exist", flag)
		assert.NotEmpty(t, f.Usage)
	}
}

func TestSearchCommandStructure(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, searchCmd.RunE)

	for _, flag := range []string{"limit", "art-focused", "diverse", "images-per-query", "queries-file", "server-command"} {
		f := searchCmd.Flags().Lookup(flag)
		require.NotNil(t, f, "flag %q should exist", flag)
		assert.NotEmpty(t, f.Usage)
	}

	assert.Equal(t, "10", searchCmd.Flags().Lookup("limit").DefValue)
	assert.Equal(t, "true", searchCmd.Flags().Lookup("art-focused").DefValue)
	assert.Equal(t, "5", searchCmd.Flags().Lookup("images-per-query").DefValue)
}

func TestGetBindPort(t *testing.T) {
	t.Setenv(BindPortEnvVar, "")
	serveCmdBindPort = ""
	assert.Equal(t, BindPortDefault, getBindPort())

	t.Setenv(BindPortEnvVar, "9090")
	assert.Equal(t, "9090", getBindPort())

	// the flag takes precedence over the environment variable
	serveCmdBindPort = "7070"
	defer func() { serveCmdBindPort = "" }()
	assert.Equal(t, "7070", getBindPort())
}

func TestIsTelemetryEnabled(t *testing.T) {
	tests := []struct {
		name    string
		flag    bool
		env     string
		want    bool
		wantErr bool
	}{
		{name: "disabled by default", flag: false, env: "", want: false},
		{name: "enabled by flag", flag: true, env: "", want: true},
		{name: "env true overrides flag", flag: false, env: "true", want: true},
		{name: "env false overrides flag", flag: true, env: "false", want: false},
		{name: "env 1", flag: false, env: "1", want: true},
		{name: "invalid env value", flag: false, env: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serveCmdOtelEnabled = tt.flag
			defer func() { serveCmdOtelEnabled = false }()
			t.Setenv(TelemetryEnabledEnvVar, tt.env)

			got, err := isTelemetryEnabled()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadQueriesFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "queries.yaml")
		content := "queries:\n  - dynamic pose\n  - portrait lighting\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		queries, err := loadQueriesFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"dynamic pose", "portrait lighting"}, queries)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "queries.yaml")
		require.NoError(t, os.WriteFile(path, []byte("queries: []\n"), 0o644))

		_, err := loadQueriesFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no queries")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadQueriesFile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "queries.yaml")
		require.NoError(t, os.WriteFile(path, []byte("queries: [unclosed"), 0o644))

		_, err := loadQueriesFile(path)
		require.Error(t, err)
	})
}
