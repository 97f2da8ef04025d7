package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mvp-joe/project-scrub/internal/config"
	"github.com/mvp-joe/project-scrub/internal/transform"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Strip Command:
// - A run mirrors the scrubbed tree under the output directory
// - In-place runs rewrite only the files that change
// - The output directory is never read back as input
// - Explicit file arguments are scrubbed alone
// - Whitelist mode drops un-annotated top-level types
// - A parse error fails the run and names the file
// - Flags override config values and invalid overrides are rejected
// - Watch mode refuses in-place whitelist runs
// - Watch mode scrubs once up front and exits cleanly on cancel
// - The progress reporter prints a summary unless quiet

const serverOnly = `package app;

class Shared {
  void show() {}

  @ServerOnly
  void save() {}
}
`

const serverOnlyStripped = `package app;

class Shared {
  void show() {}
}
`

func testConfig(strip ...string) *config.Config {
	cfg := config.Default()
	cfg.Annotations.Strip = strip
	cfg.Workers = 2
	return cfg
}

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readSource(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func quietReporter() transform.ProgressReporter {
	return &transform.NoOpProgressReporter{}
}

func TestStripRun_MirrorsTree(t *testing.T) {
	rootDir := t.TempDir()
	writeSource(t, filepath.Join(rootDir, "src", "app", "Shared.java"), serverOnly)
	writeSource(t, filepath.Join(rootDir, "src", "app", "Plain.java"), serverOnlyStripped)

	cfg := testConfig("ServerOnly")
	run, err := newStripRun(rootDir, cfg, []string{"src"}, quietReporter())
	require.NoError(t, err)

	stats, err := run.once(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 1, stats.Changed)

	out := filepath.Join(rootDir, "scrubbed", "src", "app")
	assert.Equal(t, serverOnlyStripped, readSource(t, filepath.Join(out, "Shared.java")))
	assert.Equal(t, serverOnlyStripped, readSource(t, filepath.Join(out, "Plain.java")))
	assert.Equal(t, serverOnly, readSource(t, filepath.Join(rootDir, "src", "app", "Shared.java")))

	// A second run must not pick up its own output.
	stats, err = run.once(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Files)
}

func TestStripRun_InPlace(t *testing.T) {
	rootDir := t.TempDir()
	path := filepath.Join(rootDir, "Shared.java")
	writeSource(t, path, serverOnly)

	cfg := testConfig("ServerOnly")
	cfg.Output.InPlace = true
	run, err := newStripRun(rootDir, cfg, nil, quietReporter())
	require.NoError(t, err)

	_, err = run.once(context.Background())
	require.NoError(t, err)
	assert.Equal(t, serverOnlyStripped, readSource(t, path))
	assert.NoDirExists(t, filepath.Join(rootDir, "scrubbed"))
}

func TestStripRun_ExplicitFile(t *testing.T) {
	rootDir := t.TempDir()
	target := filepath.Join(rootDir, "a", "Shared.java")
	other := filepath.Join(rootDir, "b", "Other.java")
	writeSource(t, target, serverOnly)
	writeSource(t, other, serverOnly)

	run, err := newStripRun(rootDir, testConfig("ServerOnly"), []string{filepath.Join("a", "Shared.java")}, quietReporter())
	require.NoError(t, err)

	stats, err := run.once(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Files)
	assert.FileExists(t, filepath.Join(rootDir, "scrubbed", "a", "Shared.java"))
	assert.NoFileExists(t, filepath.Join(rootDir, "scrubbed", "b", "Other.java"))
}

func TestStripRun_Whitelist(t *testing.T) {
	rootDir := t.TempDir()
	writeSource(t, filepath.Join(rootDir, "Kept.java"), "@Shared\nclass Kept {}\n\nclass Dropped {}\n")

	cfg := testConfig()
	cfg.Annotations.Include = []string{"Shared"}
	run, err := newStripRun(rootDir, cfg, nil, quietReporter())
	require.NoError(t, err)

	_, err = run.once(context.Background())
	require.NoError(t, err)
	// Dropped ends on the last line, so the final newline survives.
	assert.Equal(t, "class Kept {}\n\n", readSource(t, filepath.Join(rootDir, "scrubbed", "Kept.java")))
}

func TestStripRun_ParseError(t *testing.T) {
	rootDir := t.TempDir()
	bad := filepath.Join(rootDir, "Bad.java")
	writeSource(t, bad, "class Bad {\n")

	run, err := newStripRun(rootDir, testConfig("ServerOnly"), nil, quietReporter())
	require.NoError(t, err)

	_, err = run.once(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}

func TestStripRun_WatchRejectsInPlaceWhitelist(t *testing.T) {
	rootDir := t.TempDir()

	cfg := testConfig()
	cfg.Annotations.Include = []string{"Shared"}
	cfg.Output.InPlace = true
	run, err := newStripRun(rootDir, cfg, nil, quietReporter())
	require.NoError(t, err)

	err = run.watch(context.Background(), &bytes.Buffer{})
	assert.ErrorIs(t, err, errWatchInPlaceWhitelist)
}

func TestStripRun_WatchStopsOnCancel(t *testing.T) {
	rootDir := t.TempDir()
	writeSource(t, filepath.Join(rootDir, "Shared.java"), serverOnly)

	run, err := newStripRun(rootDir, testConfig("ServerOnly"), nil, quietReporter())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() { done <- run.watch(ctx, &out) }()

	scrubbed := filepath.Join(rootDir, "scrubbed", "Shared.java")
	require.Eventually(t, func() bool {
		_, err := os.Stat(scrubbed)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Contains(t, out.String(), "Watching 1 directories")
	assert.Equal(t, serverOnlyStripped, readSource(t, scrubbed))
}

// newFlagCommand builds a command carrying the strip flags, bound to fresh
// variables so tests do not share state through the globals.
func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	stripNames, includeNames, outDirFlag, inPlaceFlag, workersFlag = nil, nil, "", false, 0

	cmd := &cobra.Command{Use: "strip"}
	cmd.Flags().StringSliceVar(&stripNames, "strip", nil, "")
	cmd.Flags().StringSliceVar(&includeNames, "include", nil, "")
	cmd.Flags().StringVarP(&outDirFlag, "out", "o", "", "")
	cmd.Flags().BoolVar(&inPlaceFlag, "in-place", false, "")
	cmd.Flags().IntVarP(&workersFlag, "workers", "j", 0, "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestApplyStripFlags(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		cmd := newFlagCommand(t, "--strip", "A,B", "--include", "C", "--out", "dist", "-j", "3")
		cfg := config.Default()

		require.NoError(t, applyStripFlags(cmd, cfg))
		assert.Equal(t, []string{"A", "B"}, cfg.Annotations.Strip)
		assert.Equal(t, []string{"C"}, cfg.Annotations.Include)
		assert.Equal(t, "dist", cfg.Output.Dir)
		assert.Equal(t, 3, cfg.Workers)
	})

	t.Run("untouched flags keep config", func(t *testing.T) {
		cmd := newFlagCommand(t)
		cfg := config.Default()

		require.NoError(t, applyStripFlags(cmd, cfg))
		assert.Equal(t, config.Default().Annotations.Strip, cfg.Annotations.Strip)
		assert.Equal(t, "scrubbed", cfg.Output.Dir)
	})

	t.Run("in place", func(t *testing.T) {
		cmd := newFlagCommand(t, "--in-place")
		cfg := config.Default()

		require.NoError(t, applyStripFlags(cmd, cfg))
		assert.True(t, cfg.Output.InPlace)
	})

	t.Run("padded flag value", func(t *testing.T) {
		cmd := newFlagCommand(t, "--strip", "A, B")
		cfg := config.Default()

		err := applyStripFlags(cmd, cfg)
		assert.ErrorIs(t, err, config.ErrPaddedAnnotation)
	})

	t.Run("invalid override", func(t *testing.T) {
		cmd := newFlagCommand(t, "--strip", "X", "--include", "X")
		cfg := config.Default()

		err := applyStripFlags(cmd, cfg)
		assert.ErrorIs(t, err, config.ErrConflictingAnnotation)
	})
}

func TestCLIProgressReporter(t *testing.T) {
	t.Run("summary", func(t *testing.T) {
		var out bytes.Buffer
		r := NewCLIProgressReporter(false, &out)

		r.OnFileProcessingStart(2)
		r.OnFileProcessed(&transform.FileResult{Path: "A.java", BytesBefore: 10, BytesAfter: 4})
		r.OnFileProcessed(&transform.FileResult{Path: "B.java", BytesBefore: 5, BytesAfter: 5})
		r.OnComplete(&transform.Stats{Files: 2, Changed: 1, BytesRemoved: 1234})

		assert.Equal(t, 2, r.processed)
		assert.Contains(t, out.String(), "Scrub complete: 2 files")
		assert.Contains(t, out.String(), "1,234")
	})

	t.Run("quiet", func(t *testing.T) {
		var out bytes.Buffer
		r := NewCLIProgressReporter(true, &out)

		r.OnFileProcessingStart(1)
		r.OnFileProcessed(&transform.FileResult{Path: "A.java"})
		r.OnComplete(&transform.Stats{Files: 1})
		assert.Empty(t, out.String())
	})
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,000", formatNumber(1000))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}
