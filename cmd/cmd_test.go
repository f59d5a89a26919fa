package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `server:
  listen: "127.0.0.1:9999"
  shutdown-timeout: 3s
assets:
  geojson: /tmp/regions.geojson
data:
  seed: 7
  as-of: "2025-10-07"
log:
  level: warn
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sdboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", path}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVarianceCommand(t *testing.T) {
	out, err := execute(t, "variance", "--value=-6100", "--reference=-5000")
	require.NoError(t, err)
	assert.Equal(t, "↓ -22.0% (worsened, adverse)\n", out)

	out, err = execute(t, "variance", "--value", "46.1", "--reference", "45.8")
	require.NoError(t, err)
	assert.Equal(t, "↑ +0.7% (improved, marginal)\n", out)
}

func TestVarianceCommandZeroReference(t *testing.T) {
	_, err := execute(t, "variance", "--value", "12", "--reference", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero reference")
}

func TestSeverityCommand(t *testing.T) {
	tests := []struct {
		percent string
		want    string
	}{
		{"5", "strong #107C10\n"},
		{"4.99", "moderate #FFA500\n"},
		{"-2", "marginal #FFD700\n"},
		{"-2.01", "adverse #D13438\n"},
	}
	for _, tt := range tests {
		out, err := execute(t, "severity", "--percent="+tt.percent)
		require.NoError(t, err)
		assert.Equal(t, tt.want, out, "percent %s", tt.percent)
	}
}

func TestFormatCommand(t *testing.T) {
	out, err := execute(t, "format", "16240")
	require.NoError(t, err)
	assert.Equal(t, "16.2K\n", out)

	out, err = execute(t, "format", "--", "-6100")
	require.NoError(t, err)
	assert.Equal(t, "-6.1K\n", out)

	_, err = execute(t, "format", "lots")
	assert.Error(t, err)
}

func TestCardsCommand(t *testing.T) {
	out, err := execute(t, "cards", "--page", "overview")
	require.NoError(t, err)
	assert.Contains(t, out, "Market Share")
	assert.Contains(t, out, "+0.7%")
	assert.Contains(t, out, "-22.0%")
	assert.Contains(t, out, "adverse")
	assert.Contains(t, out, "+2.3%")
	assert.Contains(t, out, "Report date: 07 Oct 2025")

	out, err = execute(t, "cards", "--page", "agents")
	require.NoError(t, err)
	assert.Contains(t, out, "no budgeted KPI cards")

	_, err = execute(t, "cards", "--page", "nope")
	assert.Error(t, err)
}

func TestServerConfigFromFile(t *testing.T) {
	_, err := execute(t, "severity", "--percent", "1")
	require.NoError(t, err)

	cfg, err := serverConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", cfg.ListenAddr)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/tmp/regions.geojson", cfg.GeoJSONLocation)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC), cfg.AsOf)
	assert.Equal(t, "warn", viper.GetString("log.level"))
}

func TestServerConfigEnvOverride(t *testing.T) {
	t.Setenv("SDBOARD_SERVER_LISTEN", ":7000")
	_, err := execute(t, "severity", "--percent", "1")
	require.NoError(t, err)

	cfg, err := serverConfig()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ListenAddr)
}

func TestCardsCommandInvalidReportDate(t *testing.T) {
	t.Setenv("SDBOARD_DATA_AS_OF", "07/10/2025")
	_, err := execute(t, "cards", "--page", "overview")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid data.as-of")
}
