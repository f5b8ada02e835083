package main

import (
	"bytes"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"urlcheck/internal/store"
)

func writeConfig(t *testing.T, provider string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "urlcheck.yaml")
	data := provider + fmt.Sprintf(`
log:
  log_file: %s
  log_level: debug
`, filepath.Join(dir, "urlcheck.log"))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

const sampleProvider = "provider:\n  kind: sample\n"

func TestCheckCmd(t *testing.T) {
	cfg := writeConfig(t, sampleProvider)

	tests := []struct {
		name string
		args []string
		code int
		out  string
	}{
		{"found", []string{"--config", cfg, "http://test.com"}, 0, "http://test.com exists, it is a file\n"},
		{"found via flag", []string{"--config", cfg, "--url", " http://test1.com "}, 0, "http://test1.com exists, it is a folder\n"},
		{"flags after url", []string{"http://test.com", "--config", cfg}, 0, "http://test.com exists, it is a file\n"},
		{"not found", []string{"--config", cfg, "http://unknown.com"}, 1, "Invalid URL, URL does not exist!\n"},
		{"invalid", []string{"--config", cfg, "http//missing-colon.com"}, 2, "Invalid URL format\n"},
		{"empty", []string{"--config", cfg}, 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tt.code, checkCmd(tt.args, &out))
			assert.Equal(t, tt.out, out.String())
		})
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		cfg  string
		pos  []string
	}{
		{"flags first", []string{"--config", "a.yaml", "http://x.com"}, "a.yaml", []string{"http://x.com"}},
		{"flags last", []string{"http://x.com", "--config", "a.yaml"}, "a.yaml", []string{"http://x.com"}},
		{"interleaved", []string{"one", "--config=b.yaml", "two"}, "b.yaml", []string{"one", "two"}},
		{"terminator", []string{"one", "--", "--config", "c.yaml"}, "", []string{"one", "--config", "c.yaml"}},
		{"none", nil, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			cfg := fs.String("config", "", "")
			assert.Equal(t, tt.pos, parseArgs(fs, tt.args))
			assert.Equal(t, tt.cfg, *cfg)
		})
	}
}

func TestCheckCmd_ProviderDownIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	cfg := writeConfig(t, fmt.Sprintf("provider:\n  kind: http\n  endpoint: %s\n", srv.URL))

	var out bytes.Buffer
	assert.Equal(t, 1, checkCmd([]string{"--config", cfg, "http://test.com"}, &out))
	assert.Equal(t, "Invalid URL, URL does not exist!\n", out.String())
}

func TestListCmd(t *testing.T) {
	cfg := writeConfig(t, sampleProvider)

	var out bytes.Buffer
	require.Equal(t, 0, listCmd([]string{"--config", cfg}, &out))
	assert.Contains(t, out.String(), "http://test.com\tfile\n")
	assert.Contains(t, out.String(), "http://test5.com\tfolder\n")
}

func TestSnapshotCmd(t *testing.T) {
	cfg := writeConfig(t, sampleProvider)
	dest := filepath.Join(t.TempDir(), "urls.json")

	var out bytes.Buffer
	require.Equal(t, 0, snapshotCmd([]string{"--config", cfg, "--out", dest}, &out))
	assert.Contains(t, out.String(), "saved 6 records")

	records, err := store.LoadSnapshot(dest)
	require.NoError(t, err)
	assert.Len(t, records, 6)

	// the snapshot feeds the file provider
	fileCfg := writeConfig(t, fmt.Sprintf("provider:\n  kind: file\n  file: %s\n", dest))
	out.Reset()
	assert.Equal(t, 0, checkCmd([]string{"--config", fileCfg, "http://test3.com"}, &out))
	assert.Equal(t, "http://test3.com exists, it is a file\n", out.String())
}

func TestSnapshotCmd_RequiresOut(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 2, snapshotCmd(nil, &out))
}

func TestSetup_BadConfig(t *testing.T) {
	cfg := writeConfig(t, "provider:\n  kind: ftp\n")
	_, err := setup(cfg, nil)
	assert.Error(t, err)
}
