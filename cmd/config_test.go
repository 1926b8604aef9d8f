package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "holdings.yaml")
	yaml := `transactions: trades.csv
prices: closes.csv
benchmark: QQQ
calendar_policy: reject
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvCalendarFile+"=nyse.txt\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvBenchmark, "VTI")
	// godotenv sets the variables of .env in the process environment.
	t.Setenv(EnvCalendarFile, "")
	os.Unsetenv(EnvCalendarFile)

	testCases := []struct {
		name  string
		path  string
		flags Config
		want  Config
	}{
		{
			name: "file then env",
			path: path,
			want: Config{
				Transactions:   "trades.csv",
				Prices:         "closes.csv",
				Calendar:       "nyse.txt",
				Benchmark:      "VTI",
				Currency:       "USD",
				CalendarPolicy: "reject",
			},
		},
		{
			name:  "flags win",
			path:  path,
			flags: Config{Benchmark: "SPY", Currency: "EUR"},
			want: Config{
				Transactions:   "trades.csv",
				Prices:         "closes.csv",
				Calendar:       "nyse.txt",
				Benchmark:      "SPY",
				Currency:       "EUR",
				CalendarPolicy: "reject",
			},
		},
		{
			name: "missing file",
			path: filepath.Join(dir, "missing.yaml"),
			want: Config{
				Transactions:   "transactions.csv",
				Prices:         "prices.csv",
				Calendar:       "nyse.txt",
				Benchmark:      "VTI",
				Currency:       "USD",
				CalendarPolicy: "shift",
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig(tc.path)
			if err != nil {
				t.Fatalf("LoadConfig() failed: %v", err)
			}
			if diff := cmp.Diff(tc.want, cfg.With(tc.flags)); diff != "" {
				t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("benchmark: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("LoadConfig() with invalid YAML succeeded, want an error")
	}
}

func TestConfig_Environ(t *testing.T) {
	env := DefaultConfig().Environ()
	if len(env) != 6 || env[3] != EnvBenchmark+"=SPY" {
		t.Errorf("Environ() = %q", env)
	}
}
