package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{Lookup: envMap(nil)})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "http://localhost:5000/api", cfg.BackendURL)
	assert.Zero(t, cfg.RequestTimeout)
	assert.True(t, cfg.AltScreen)
	require.NoError(t, cfg.Validate())
}

func TestLoadPrecedence(t *testing.T) {
	file := writeFile(t, "intake.yaml", `
backend_url: http://yaml.test/api
request_timeout: 30s
receipts_path: /tmp/yaml.jsonl
notification_ttl: 2
alt_screen: false
`)
	dotenv := writeFile(t, ".env", "INTAKE_BACKEND_URL=http://dotenv.test/api\nINTAKE_LOG_PATH=/tmp/dotenv.log\n")

	cfg, err := Load(Options{
		File:   file,
		DotEnv: dotenv,
		Lookup: envMap(map[string]string{
			EnvBackendURL:     "http://env.test/api",
			EnvRequestTimeout: "",
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, "http://env.test/api", cfg.BackendURL, "process env beats .env and yaml")
	assert.Equal(t, "/tmp/dotenv.log", cfg.LogPath, ".env beats defaults")
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout, "empty env keeps yaml value")
	assert.Equal(t, "/tmp/yaml.jsonl", cfg.ReceiptsPath)
	assert.Equal(t, 2*time.Second, cfg.NotificationTTL)
	assert.False(t, cfg.AltScreen)
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	cfg, err := Load(Options{DotEnv: filepath.Join(t.TempDir(), ".env"), Lookup: envMap(nil)})
	require.NoError(t, err)
	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(Options{File: filepath.Join(t.TempDir(), "missing.yaml"), Lookup: envMap(nil)})
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml", "request_timeout: soon\n")
	_, err = Load(Options{File: bad, Lookup: envMap(nil)})
	assert.ErrorContains(t, err, "request_timeout")

	_, err = Load(Options{Lookup: envMap(map[string]string{EnvNotificationTTL: "often"})})
	assert.ErrorContains(t, err, EnvNotificationTTL)
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"", 0},
		{"5", 5 * time.Second},
		{"1.5", 1500 * time.Millisecond},
		{"250ms", 250 * time.Millisecond},
		{" 1m ", time.Minute},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDuration("x", tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.BackendURL = "localhost:5000"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.RequestTimeout = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.NotificationTTL = 0
	assert.Error(t, cfg.Validate())
}
