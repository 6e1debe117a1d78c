package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/helmcode/aomaas/pkg/miner"
	"github.com/helmcode/aomaas/pkg/view"
	"github.com/helmcode/aomaas/pkg/web"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runRootEnv(t, nil, args...)
}

func runRootEnv(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	t.Setenv("AOMAAS_ENDPOINT", "")
	t.Setenv("AOMAAS_OUTPUT", "")
	for k, v := range env {
		t.Setenv(k, v)
	}

	root := &cobra.Command{Use: "aomaas", SilenceUsage: true, SilenceErrors: true}
	AddPersistentFlags(root)
	root.AddCommand(NewAnalyzeCmd())

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml"), "--log-level", "error"))

	err := root.Execute()
	return out.String(), err
}

func TestAnalyzeCmd_JSON(t *testing.T) {
	srv := httptest.NewServer(web.NewRouter(web.Options{Miner: miner.NewSample(2)}))
	defer srv.Close()

	out, err := runRoot(t, "analyze", "https://github.com/a/b", "--endpoint", srv.URL+web.MinePath, "-o", "json")
	require.NoError(t, err)

	var got view.Output
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, view.KindResults, got.Kind)
	assert.Equal(t, 2, got.Results.Count)
}

func TestAnalyzeCmd_Human(t *testing.T) {
	srv := httptest.NewServer(web.NewRouter(web.Options{Miner: miner.NewSample(1)}))
	defer srv.Close()

	out, err := runRoot(t, "analyze", "https://gitlab.com/g/p", "--endpoint", srv.URL+web.MinePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Provider: gitlab")
	assert.Contains(t, out, "Found 1 opportunities for improvement")
	assert.Contains(t, out, "Optimize database query performance")
}

func TestAnalyzeCmd_MissingURL(t *testing.T) {
	out, err := runRoot(t, "analyze", "-o", "json")

	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.Contains(t, out, view.ValidationMessage)
}

func TestAnalyzeCmd_BackendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database is down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	out, err := runRoot(t, "analyze", "https://github.com/a/b", "--endpoint", srv.URL, "-o", "yaml")

	require.Error(t, err)
	assert.True(t, IsReported(err))
	assert.Contains(t, out, view.FailureMessage)
	assert.NotContains(t, out, "database is down")
}

func TestAnalyzeCmd_FlagOverridesInvalidEnvOutput(t *testing.T) {
	srv := httptest.NewServer(web.NewRouter(web.Options{Miner: miner.NewSample(1)}))
	defer srv.Close()

	env := map[string]string{"AOMAAS_OUTPUT": "table"}
	out, err := runRootEnv(t, env, "analyze", "https://github.com/a/b", "--endpoint", srv.URL+web.MinePath, "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "results"`)
}

func TestAnalyzeCmd_BadOutput(t *testing.T) {
	_, err := runRoot(t, "analyze", "https://github.com/a/b", "-o", "table")

	require.Error(t, err)
	assert.False(t, IsReported(err))
}
