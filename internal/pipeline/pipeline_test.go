package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/backmassage/mediastandard/internal/config"
	"github.com/backmassage/mediastandard/internal/standard"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	okName   = "pd31_v007004_2022-05-20_museumsnacht-2022_s-031.jpg"
	okName2  = "sm52_2021-12-31_depot-ost_d-001.pdf"
	badName  = "pd31_2022-05-20_Museumsnacht_s-031.jpg"
	badName2 = "zd31_2022-05-20_x_s-031.jpg"
)

// --- Discover tests ---

func TestDiscover_RecursiveAndSorted(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b"), "2.jpg")
	touch(t, filepath.Join(dir, "a"), "3.jpg")
	touch(t, filepath.Join(dir, "a"), "1.jpg")
	touch(t, dir, "0.jpg")

	files, err := Discover([]string{dir}, nil)
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "0.jpg"),
		filepath.Join(dir, "a", "1.jpg"),
		filepath.Join(dir, "a", "3.jpg"),
		filepath.Join(dir, "b", "2.jpg"),
	}
	assert.Equal(t, want, files)
}

func TestDiscover_SkipsHidden(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "visible.jpg")
	touch(t, dir, ".DS_Store")
	touch(t, filepath.Join(dir, ".git"), "config")

	files, err := Discover([]string{dir}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"visible.jpg"}, basenames(files))
}

func TestDiscover_Excludes(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "keep.jpg")
	touch(t, dir, "old.bak")
	touch(t, filepath.Join(dir, "tmp", "deep"), "x.jpg")
	touch(t, filepath.Join(dir, "archiv"), "y.jpg")

	files, err := Discover([]string{dir}, []string{"*.bak", "tmp/**", "**/archiv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.jpg"}, basenames(files))
}

func TestDiscover_KeepsArgumentOrderAndBareNames(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "z.jpg")

	files, err := Discover([]string{"nicht-vorhanden.jpg", dir, "a.jpg"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"nicht-vorhanden.jpg", filepath.Join(dir, "z.jpg"), "a.jpg"}, files)
}

func TestDiscover_EmptyDir(t *testing.T) {
	files, err := Discover([]string{t.TempDir()}, nil)
	require.NoError(t, err)
	assert.Empty(t, files)
}

// --- RunStats tests ---

func TestRunStats(t *testing.T) {
	s := RunStats{Total: 2, Passed: 2}
	assert.True(t, s.OK())

	s.Add(RunStats{Total: 3, Passed: 1, Failed: 2, ExtractFailed: 1})
	assert.Equal(t, RunStats{Total: 5, Passed: 3, Failed: 2, ExtractFailed: 1}, s)
	assert.False(t, s.OK())
}

// --- Checker tests ---

func TestChecker_CachesByBaseName(t *testing.T) {
	c, err := NewChecker(loadDefault(t), 8)
	require.NoError(t, err)

	a := c.Check(filepath.Join("a", okName))
	b := c.Check(filepath.Join("b", okName))
	assert.Equal(t, filepath.Join("b", okName), b.Path)
	assert.True(t, a.Passed())
	assert.Same(t, a.Info, b.Info)
	assert.Equal(t, 1, c.cache.Len())
}

func TestChecker_NoCache(t *testing.T) {
	c, err := NewChecker(loadDefault(t), 0)
	require.NoError(t, err)
	assert.Nil(t, c.cache)

	res := c.Check(badName)
	assert.False(t, res.Passed())
	assert.Nil(t, res.Info)
	assert.Equal(t, "Ungültige Zeichen: Grossbuchstaben!", res.Outcome.Message)
}

// --- Runner tests ---

func TestRun_Report(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, okName)
	touch(t, dir, badName)

	cfg := testConfig(dir, "bare-"+badName2)
	out, log, stats := run(t, cfg, loadDefault(t))

	assert.Equal(t, RunStats{Total: 3, Passed: 1, Failed: 2}, stats)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Checking 3 filenames.", lines[0])
	assert.Equal(t, filepath.Join(dir, badName)+"\t[FAIL]", lines[1])
	assert.Equal(t, filepath.Join(dir, okName)+"\t[OK]", lines[2])
	assert.Equal(t, "bare-"+badName2+"\t[FAIL]", lines[3])
	assert.Contains(t, log.String(), "Done: 1 passed, 2 failed")
}

func TestRun_VerboseAndFailOnly(t *testing.T) {
	cfg := testConfig(okName, badName)
	cfg.Verbose = true
	out, _, _ := run(t, cfg, loadDefault(t))
	assert.Contains(t, out, "Informationen zu "+okName+": \n\tBereich:\tProjekte\n")
	assert.Contains(t, out, badName+"\t[FAIL]: Ungültige Zeichen: Grossbuchstaben!\n")

	cfg.Verbose = false
	cfg.FailOnly = true
	out, _, stats := run(t, cfg, loadDefault(t))
	assert.NotContains(t, out, "[OK]")
	assert.Contains(t, out, badName+"\t[FAIL]")
	assert.Equal(t, 1, stats.Passed)
}

func TestRun_ExtractionFailureIsReportedAndCounted(t *testing.T) {
	def, err := standard.New(`(?P<medium>[a-z])\.jpg`, nil,
		map[string]standard.Table{"medium": {"s": "Standbild"}},
		map[string]string{"medium": "Medientyp"})
	require.NoError(t, err)

	cfg := testConfig("s.jpg", "q.jpg")
	cfg.Verbose = true
	cfg.FailOnly = true
	out, log, stats := run(t, cfg, def)

	assert.Equal(t, RunStats{Total: 2, Passed: 1, Failed: 1, ExtractFailed: 1}, stats)
	assert.Contains(t, out, "q.jpg\t[FAIL]: q not in \"Medientyp\"\n")
	assert.Contains(t, log.String(), "could not be decoded")
}

func TestRun_NothingToDo(t *testing.T) {
	out, _, stats := run(t, testConfig(t.TempDir()), loadDefault(t))
	assert.Equal(t, "Checking 0 filenames.\nNothing to do ...\n", out)
	assert.Equal(t, RunStats{}, stats)
}

func TestCheckFiles_OrderWithManyWorkers(t *testing.T) {
	var files []string
	for i := 0; i < 50; i++ {
		files = append(files, fmt.Sprintf("pd31_2022-05-20_titel-%02d_s-%03d.jpg", i, i))
	}
	cfg := testConfig()
	cfg.Workers = 8
	var out bytes.Buffer
	r, err := NewRunner(&cfg, loadDefault(t), &out, &testLogger{})
	require.NoError(t, err)

	stats, err := r.CheckFiles(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, 50, stats.Passed)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 50)
	for i, line := range lines {
		assert.Equal(t, files[i]+"\t[OK]", line)
	}
}

func TestCheckFiles_Canceled(t *testing.T) {
	cfg := testConfig()
	var out bytes.Buffer
	r, err := NewRunner(&cfg, loadDefault(t), &out, &testLogger{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := r.CheckFiles(ctx, []string{okName, badName})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Total)
}

// --- Watch tests ---

func TestWatch_ChecksNewFiles(t *testing.T) {
	old := watchDebounce
	watchDebounce = 20 * time.Millisecond
	t.Cleanup(func() { watchDebounce = old })

	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Excludes = []string{"*.tmp"}
	out := &syncBuffer{}
	r, err := NewRunner(&cfg, loadDefault(t), out, &testLogger{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var stats RunStats
	done := make(chan error, 1)
	go func() { done <- r.Watch(ctx, &stats) }()

	// Wait until the watcher is installed; files written before are missed.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, okName), []byte("x"), 0o644)
		return strings.Contains(out.String(), okName+"\t[OK]")
	}, 5*time.Second, 50*time.Millisecond)

	touch(t, dir, "upload.tmp")
	touch(t, filepath.Join(dir, "neu"), badName)
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), badName+"\t[FAIL]")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.NotContains(t, out.String(), "upload.tmp")
	assert.GreaterOrEqual(t, stats.Failed, 1)
}

func TestWatch_NothingToWatch(t *testing.T) {
	cfg := testConfig(okName)
	r, err := NewRunner(&cfg, loadDefault(t), &bytes.Buffer{}, &testLogger{})
	require.NoError(t, err)

	var stats RunStats
	assert.ErrorIs(t, r.Watch(context.Background(), &stats), ErrNothingToWatch)
}

// --- helpers ---

func loadDefault(t *testing.T) *standard.Definition {
	t.Helper()
	def, err := standard.LoadDefault()
	require.NoError(t, err)
	return def
}

func testConfig(paths ...string) config.Config {
	cfg := config.DefaultConfig()
	cfg.Paths = paths
	cfg.Workers = 2
	return cfg
}

func run(t *testing.T, cfg config.Config, def *standard.Definition) (string, *testLogger, RunStats) {
	t.Helper()
	var out bytes.Buffer
	log := &testLogger{}
	r, err := NewRunner(&cfg, def, &out, log)
	require.NoError(t, err)
	stats, err := r.Run(context.Background())
	require.NoError(t, err)
	return out.String(), log, stats
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

type testLogger struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (l *testLogger) line(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(&l.buf, level+" "+format+"\n", args...)
}

func (l *testLogger) Info(f string, a ...interface{})  { l.line("INFO", f, a...) }
func (l *testLogger) Warn(f string, a ...interface{})  { l.line("WARN", f, a...) }
func (l *testLogger) Error(f string, a ...interface{}) { l.line("ERROR", f, a...) }
func (l *testLogger) Debug(f string, a ...interface{}) { l.line("DEBUG", f, a...) }

func (l *testLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
