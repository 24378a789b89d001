package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/boolex/analyze"
	tt "github.com/gnoswap-labs/boolex/internal/types"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// execute runs the command line args against a fresh command tree. The
// config flag points at a file that does not exist, so every run starts
// from the default configuration.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	if !containsFlag(args, "--config") {
		args = append(args, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidateCmd(t *testing.T) {
	out, err := execute(t, "", "validate", "A.B+!C", "(A+B")
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "valid: A.B+!C\n")
	assert.Contains(t, out, "invalid: bracket-imbalance")

	out, err = execute(t, "", "validate", "A^B")
	assert.NoError(t, err)
	assert.Equal(t, "valid: A^B\n", out)
}

func TestValidateCmdTableLimit(t *testing.T) {
	wide := "A.B.C.D.E.F.G.H.I.J.K.L.M.N"

	_, err := execute(t, "", "validate", wide)
	assert.NoError(t, err)

	out, err := execute(t, "", "validate", "--table", wide)
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "table-too-large")
}

func TestTableCmd(t *testing.T) {
	out, err := execute(t, "", "table", "A+B")
	require.NoError(t, err)
	assert.Contains(t, out, "A+B")

	out, err = execute(t, "", "table", "--steps", "!(A.B)")
	require.NoError(t, err)
	assert.Contains(t, out, "A.B")
	assert.Contains(t, out, "!(A.B)")

	_, err = execute(t, "", "table", "A+C")
	assert.Error(t, err)
}

func TestTableCmdStepsFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steps.yaml")
	config := analyze.DefaultConfig()
	config.Steps = true
	require.NoError(t, analyze.WriteConfig(path, config))

	out, err := execute(t, "", "table", "!(A.B)", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "A.B")

	// the flag overrides the file
	out, err = execute(t, "", "table", "--steps=false", "!(A.B)", "--config", path)
	require.NoError(t, err)
	assert.NotContains(t, strings.ReplaceAll(out, "!(A.B)", ""), "A.B")
}

func TestMinimizeCmd(t *testing.T) {
	out, err := execute(t, "", "minimize", "A+A.B", "A.B+A.C+B.C")
	require.NoError(t, err)
	assert.Equal(t, "A\n(A.B)+(A.C)+(B.C)\n", out)

	out, err = execute(t, "", "minimize", "--verify", "A.B+A.!B")
	require.NoError(t, err)
	assert.Equal(t, "A\n  verified\n", out)

	out, err = execute(t, "", "minimize", "--detail", "!A.!B+!B.C+A.B+!A.B.!C")
	require.NoError(t, err)
	assert.Contains(t, out, "  essentials: -\n")
	assert.Contains(t, out, "  petrick:    yes\n")

	_, err = execute(t, "", "minimize", "A$")
	assert.Error(t, err)
}

func TestEquivCmd(t *testing.T) {
	out, err := execute(t, "", "equiv", "!(A+B)", "!A.!B")
	require.NoError(t, err)
	assert.Equal(t, "equivalent\n", out)

	out, err = execute(t, "", "equiv", "A+B", "A^B")
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, "not equivalent: A=1 B=1\n", out)
}

func TestCountCmd(t *testing.T) {
	out, err := execute(t, "", "count", "A^B^C")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	// beyond the truth table limit
	out, err = execute(t, "", "count", "A+B+C+D+E+F+G+H+I+J+K+L+M+N+O+P")
	require.NoError(t, err)
	assert.Equal(t, "65535\n", out)
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.bool", "# majority\nA.B+A.C+B.C\n\nA+!A\n")

	out, err := execute(t, "", "check", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "ok: valid\n")
	assert.Contains(t, out, "good.bool:2\n")
	assert.Contains(t, out, "= minimized: (A.B)+(A.C)+(B.C)\n")
	assert.Contains(t, out, "good.bool:4\n")
	assert.Contains(t, out, "= minimized: 1\n")

	writeFile(t, dir, "bad.bool", "A+C\n")
	out, err = execute(t, "", "check", dir)
	assert.ErrorIs(t, err, errFailed)
	assert.Contains(t, out, "error: non-sequential-inputs\n")

	// the root command behaves like check
	_, err = execute(t, "", filepath.Join(dir, "good.bool"))
	assert.NoError(t, err)
}

func TestCheckCmdIgnore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.bool", "A.B\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "skip"), 0o755))
	writeFile(t, filepath.Join(dir, "skip"), "b.bool", "A+C\n")

	out, err := execute(t, "", "check", "--ignore-paths", "skip", "--ignore", "minimize,verify", dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "minimized")
	assert.Contains(t, out, "= minterms: 1\n")
}

func TestCheckCmdStdin(t *testing.T) {
	out, err := execute(t, "A.B+A.!B\n", "check", "-")
	require.NoError(t, err)
	assert.Contains(t, out, " --> <input>:1\n")
	assert.Contains(t, out, "= minimized: A\n")
}

func TestCheckCmdJSON(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "x.bool", "A^B\nA+\n")
	outPath := filepath.Join(dir, "out.json")

	_, err := execute(t, "", "check", "--json", "-o", outPath, file)
	assert.ErrorIs(t, err, errFailed)

	d, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var byFile map[string][]tt.Report
	require.NoError(t, json.Unmarshal(d, &byFile))
	require.Len(t, byFile[file], 2)
	assert.Equal(t, "(!A.B)+(A.!B)", byFile[file][0].Minimized)
	assert.True(t, byFile[file][0].Verified)
	assert.Equal(t, "malformed-postfix", byFile[file][1].Reason)
}

func TestCheckCmdCache(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "x.bool", "A.B\n")
	cacheDir := filepath.Join(dir, "cache")

	first, err := execute(t, "", "check", "--cache", cacheDir, file)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(cacheDir, "report_cache.gob"))

	second, err := execute(t, "", "check", "--cache", cacheDir, file)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".boolex.yaml")

	out, err := execute(t, "", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	config, err := analyze.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, analyze.DefaultConfig(), config)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchCmd(t *testing.T) {
	dir := t.TempDir()

	root := newRootCmd()
	out := &lockedBuffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"watch", dir, "--config", filepath.Join(dir, "absent.yaml")})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	// give the watcher time to register the directory
	time.Sleep(300 * time.Millisecond)
	writeFile(t, dir, "live.bool", "A.B+A.!B\n")

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "= minimized: A\n")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
