package app

import (
	"os"
	"testing"

	"github.com/gasoline-dev/gas/internal/testutil"
	"github.com/stretchr/testify/require"
)

// SetupAppTest creates an App over projectRoot that reads artifacts with
// testutil.JSONLoader and captures output and logs.
func SetupAppTest(t *testing.T, cfg Config, opts ...Option) (*App, *testutil.SafeBuffer, *testutil.SafeBuffer) {
	t.Helper()

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "json"
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 4
	}
	cfg.LogLevel = "debug"

	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	out := &testutil.SafeBuffer{}
	logs := &testutil.SafeBuffer{}
	testApp, err := NewApp(out, logs, appConfig, testutil.JSONLoader{}, opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("GAS_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
