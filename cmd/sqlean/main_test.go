package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nerrad567/sqlean-go/internal/bundle"
)

// isolateEnv clears every variable the CLI reads and restores them when
// the test ends. It also moves into an empty directory so no sqlean.yaml
// is picked up.
func isolateEnv(t *testing.T) {
	t.Helper()

	keys := []string{bundle.GlobalFlag, configEnv,
		"SQLEAN_DATABASE_PATH", "SQLEAN_LOG_LEVEL", "SQLEAN_LOG_FORMAT"}
	for _, name := range append(bundle.Names(), bundle.Excluded()...) {
		keys = append(keys, bundle.FlagFor(name))
	}
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k) //nolint:errcheck // Restored by t.Setenv
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) }) //nolint:errcheck // Best-effort restore
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var stdout, stderr bytes.Buffer
	err := run(ctx, args, &stdout, &stderr)
	return stdout.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sqlean.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// planStates parses `sqlean plan` output into name -> state.
func planStates(t *testing.T, out string) map[string]string {
	t.Helper()

	states := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			t.Fatalf("unexpected plan line %q", line)
		}
		states[fields[0]] = fields[1]
	}
	return states
}

func TestVersionCmd(t *testing.T) {
	isolateEnv(t)

	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "sqlean "+bundle.Version+"\n") {
		t.Errorf("version output = %q", out)
	}
}

func TestPlanCmd(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		config string
		want   map[string]string
	}{
		{
			name: "nothing set",
			want: map[string]string{"mode": "per-module", "sqlean_version()": "active", "text": "inactive"},
		},
		{
			name: "module flag",
			env:  map[string]string{"SQLEAN_ENABLE_TEXT": "1"},
			want: map[string]string{"text": "active", "crypto": "inactive"},
		},
		{
			name: "global disable",
			env:  map[string]string{bundle.GlobalFlag: "0", "SQLEAN_ENABLE_TEXT": "1"},
			want: map[string]string{"mode": "disabled", "sqlean_version()": "inactive", "text": "inactive"},
		},
		{
			name:   "config enables modules",
			config: "extensions:\n  enable: [stats, TEXT]\n",
			want:   map[string]string{"stats": "active", "text": "active", "uuid": "inactive"},
		},
		{
			name:   "config enables all",
			config: "extensions:\n  enable: [all]\n",
			want:   map[string]string{"mode": "all", "uuid": "active"},
		},
		{
			name:   "config disables all",
			config: "extensions:\n  disable_all: true\n",
			want:   map[string]string{"mode": "disabled", "sqlean_version()": "inactive"},
		},
		{
			name:   "environment wins over config",
			env:    map[string]string{"SQLEAN_ENABLE_FUZZY": "1"},
			config: "extensions:\n  enable: [stats]\n",
			want:   map[string]string{"fuzzy": "active", "stats": "inactive"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			args := []string{"plan"}
			if tt.config != "" {
				args = append(args, "--config", writeConfig(t, tt.config))
			}

			out, err := runCLI(t, args...)
			if err != nil {
				t.Fatalf("plan error = %v", err)
			}

			states := planStates(t, out)
			got := make(map[string]string, len(tt.want))
			for k := range tt.want {
				got[k] = states[k]
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("plan mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlanCmd_UnknownModule(t *testing.T) {
	isolateEnv(t)

	_, err := runCLI(t, "plan", "--config", writeConfig(t, "extensions:\n  enable: [nosuch]\n"))
	if !errors.Is(err, ErrUnknownModule) {
		t.Errorf("plan error = %v, want ErrUnknownModule", err)
	}
}

func TestConfigPath(t *testing.T) {
	t.Run("explicit missing file", func(t *testing.T) {
		isolateEnv(t)

		if _, err := runCLI(t, "plan", "--config", "/nonexistent/sqlean.yaml"); err == nil {
			t.Error("plan with missing --config expected error, got nil")
		}
	})

	t.Run("environment missing file", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv(configEnv, "/nonexistent/sqlean.yaml")

		if _, err := runCLI(t, "plan"); err == nil {
			t.Error("plan with missing SQLEAN_CONFIG expected error, got nil")
		}
	})

	t.Run("environment path", func(t *testing.T) {
		isolateEnv(t)
		t.Setenv(configEnv, writeConfig(t, "extensions:\n  enable: [uuid]\n"))

		out, err := runCLI(t, "plan")
		if err != nil {
			t.Fatalf("plan error = %v", err)
		}
		if got := planStates(t, out)["uuid"]; got != "active" {
			t.Errorf("uuid = %q, want active", got)
		}
	})
}

func TestEnvFile(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		isolateEnv(t)
		path := filepath.Join(t.TempDir(), "sqlean.env")
		if err := os.WriteFile(path, []byte("SQLEAN_ENABLE_VSV=1\n"), 0600); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		out, err := runCLI(t, "--env-file", path, "query", "select vsv_count('a,b,c')")
		if err != nil {
			t.Fatalf("query error = %v", err)
		}
		if out != "3\n" {
			t.Errorf("query output = %q, want %q", out, "3\n")
		}
	})

	t.Run("default file in working directory", func(t *testing.T) {
		isolateEnv(t)
		if err := os.WriteFile(".env", []byte("SQLEAN_ENABLE=0\n"), 0600); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		out, err := runCLI(t, "plan")
		if err != nil {
			t.Fatalf("plan error = %v", err)
		}
		if got := planStates(t, out)["mode"]; got != "disabled" {
			t.Errorf("mode = %q, want disabled", got)
		}
	})

	t.Run("explicit missing file", func(t *testing.T) {
		isolateEnv(t)

		if _, err := runCLI(t, "--env-file", "/nonexistent/.env", "plan"); err == nil {
			t.Error("plan with missing --env-file expected error, got nil")
		}
	})
}

func TestQueryCmd(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want string
	}{
		{
			name: "module function with argument",
			env:  map[string]string{"SQLEAN_ENABLE_TEXT": "1"},
			args: []string{"query", "select text_reverse(?)", "hello"},
			want: "olleh\n",
		},
		{
			name: "header and mixed values",
			args: []string{"query", "--header", "select sqlean_version() as v, 1.5 as f, NULL as n"},
			want: "v\tf\tn\n" + bundle.Version + "\t1.5\tNULL\n",
		},
		{
			name: "all modules",
			env:  map[string]string{bundle.GlobalFlag: ""},
			args: []string{"query", "select levenshtein('kitten', 'sitting')"},
			want: "3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			out, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("query error = %v", err)
			}
			if out != tt.want {
				t.Errorf("query output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestQueryCmd_InactiveModule(t *testing.T) {
	isolateEnv(t)

	if _, err := runCLI(t, "query", "select text_reverse('abc')"); err == nil {
		t.Error("query with inactive module expected error, got nil")
	}
}

func TestQueryCmd_DatabaseFromEnv(t *testing.T) {
	isolateEnv(t)
	dbPath := filepath.Join(t.TempDir(), "cli.db")
	t.Setenv("SQLEAN_DATABASE_PATH", dbPath)

	if _, err := runCLI(t, "query", "create table t (x)"); err != nil {
		t.Fatalf("create table error = %v", err)
	}
	if _, err := runCLI(t, "query", "insert into t values (7)"); err != nil {
		t.Fatalf("insert error = %v", err)
	}

	out, err := runCLI(t, "query", "select x from t")
	if err != nil {
		t.Fatalf("select error = %v", err)
	}
	if out != "7\n" {
		t.Errorf("select output = %q, want %q", out, "7\n")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "NULL"},
		{"string", "abc", "abc"},
		{"text blob", []byte("abc"), "abc"},
		{"binary blob", []byte{0xff, 0x00}, "X'FF00'"},
		{"int", int64(-3), "-3"},
		{"float", 0.25, "0.25"},
		{"bool", true, "true"},
		{"time", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02T03:04:05Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.in); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
