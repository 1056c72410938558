// Package environ provides environment-variable snapshot/restore for tests,
// so a test can mutate the process environment without leaking the changes
// into other tests:
//
//	func TestWithEnv(t *testing.T) {
//	    environ.Scoped(t)
//	    os.Setenv("APP_MODE", "test")
//	    // test body
//	}
//
// Variables set, changed or unset inside the scope are reverted when the
// test (and its cleanup) completes.
package environ

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// RestoreFunc reverts the process environment to a captured snapshot.
type RestoreFunc func()

// Snapshot captures the current process environment and returns a function
// restoring it: variables added since the snapshot are unset, removed ones
// are re-set and changed ones get their old values back.
func Snapshot() RestoreFunc {
	saved := environMap()
	return func() {
		current := environMap()
		for name := range current {
			if old, ok := saved[name]; ok {
				os.Setenv(name, old)
			} else {
				os.Unsetenv(name)
			}
		}
		for name, value := range saved {
			if _, ok := current[name]; !ok {
				os.Setenv(name, value)
			}
		}
	}
}

// Scoped snapshots the environment and restores it when the test finishes.
// Restoration runs on every exit path, including FailNow.
func Scoped(tb testing.TB) {
	tb.Helper()
	restore := Snapshot()
	tb.Cleanup(restore)
}

// ApplyFile sets environment variables from a YAML file holding a flat
// mapping of names to string values. Intended for per-test env presets,
// typically inside a Scoped block.
func ApplyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("environ: read %s: %w", path, err)
	}
	var vars map[string]string
	if err := yaml.Unmarshal(b, &vars); err != nil {
		return fmt.Errorf("environ: parse %s: %w", path, err)
	}
	for name, value := range vars {
		if err := os.Setenv(name, value); err != nil {
			return fmt.Errorf("environ: set %s: %w", name, err)
		}
	}
	return nil
}

func environMap() map[string]string {
	env := os.Environ()
	m := make(map[string]string, len(env))
	for _, kv := range env {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		m[name] = value
	}
	return m
}
