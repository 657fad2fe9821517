package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestDirs(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("TABSWITCH_CONFIG_DIR", "")
	t.Setenv("TABSWITCH_STATE_DIR", "")
	t.Setenv("HOME", tmp)
	ResetForTest()
	return tmp
}

func TestDefaults(t *testing.T) {
	tmp := setupTestDirs(t)

	tests := []struct {
		name string
		got  func() string
		want string
	}{
		{"config dir", ConfigDir, filepath.Join(tmp, ".config", "tabswitch")},
		{"state dir", StateDir, filepath.Join(tmp, ".local", "state", "tabswitch")},
		{"config path", ConfigPath, filepath.Join(tmp, ".config", "tabswitch", "config.yaml")},
		{"state path", func() string { return StatePath("perf.log") }, filepath.Join(tmp, ".local", "state", "tabswitch", "perf.log")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.got(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	tmp := setupTestDirs(t)
	cfg := filepath.Join(tmp, "custom-config")
	state := filepath.Join(tmp, "custom-state")
	t.Setenv("TABSWITCH_CONFIG_DIR", cfg)
	t.Setenv("TABSWITCH_STATE_DIR", state)
	ResetForTest()

	if got := ConfigDir(); got != cfg {
		t.Errorf("ConfigDir() = %q, want %q", got, cfg)
	}
	if got := StateDir(); got != state {
		t.Errorf("StateDir() = %q, want %q", got, state)
	}
}

func TestEnsureDirsCreate(t *testing.T) {
	tmp := setupTestDirs(t)

	for name, ensure := range map[string]func() (string, error){
		filepath.Join(tmp, ".config", "tabswitch"):         EnsureConfigDir,
		filepath.Join(tmp, ".local", "state", "tabswitch"): EnsureStateDir,
	} {
		dir, err := ensure()
		if err != nil {
			t.Fatalf("ensure %s: %v", name, err)
		}
		if dir != name {
			t.Errorf("ensure returned %q, want %q", dir, name)
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %q was not created", dir)
		}
	}
}
