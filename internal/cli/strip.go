package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mvp-joe/project-scrub/internal/config"
	"github.com/mvp-joe/project-scrub/internal/scrub"
	"github.com/mvp-joe/project-scrub/internal/transform"
	"github.com/spf13/cobra"
)

var (
	stripNames   []string
	includeNames []string
	outDirFlag   string
	inPlaceFlag  bool
	workersFlag  int
	quietFlag    bool
	watchFlag    bool
)

// stripCmd represents the strip command
var stripCmd = &cobra.Command{
	Use:   "strip [paths...]",
	Short: "Strip annotated declarations from Java sources",
	Long: `Strip removes every class, method, constructor and field carrying one of
the strip annotations. When include annotations are given, every top-level
type without one is removed too (whitelist mode), and the include
annotations themselves are deleted from what remains.

Paths may be files or directories; directories are searched with the
configured source patterns. With no paths the working directory is used.

Examples:
  # Strip @GwtIncompatible code into ./scrubbed
  scrub strip src

  # Strip two annotations in place
  scrub strip --strip ServerOnly,Debug --in-place src

  # Keep only types marked @Shared
  scrub strip --include Shared --out client-src src

  # Re-run whenever a source file changes
  scrub strip --watch src
`,
	RunE: runStrip,
}

func init() {
	rootCmd.AddCommand(stripCmd)
	stripCmd.Flags().StringSliceVar(&stripNames, "strip", nil, "Annotations whose declarations are removed")
	stripCmd.Flags().StringSliceVar(&includeNames, "include", nil, "Annotations marking top-level types to keep (enables whitelist mode)")
	stripCmd.Flags().StringVarP(&outDirFlag, "out", "o", "", "Directory receiving the scrubbed tree")
	stripCmd.Flags().BoolVar(&inPlaceFlag, "in-place", false, "Overwrite the input files")
	stripCmd.Flags().IntVarP(&workersFlag, "workers", "j", 0, "Files processed concurrently")
	stripCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	stripCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and scrub them as they happen")
	stripCmd.MarkFlagsMutuallyExclusive("out", "in-place")
}

func runStrip(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := loadConfig(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyStripFlags(cmd, cfg); err != nil {
		return err
	}

	run, err := newStripRun(rootDir, cfg, args, NewCLIProgressReporter(quietFlag, cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	if watchFlag {
		return run.watch(ctx, cmd.OutOrStdout())
	}
	_, err = run.once(ctx)
	return err
}

// applyStripFlags overrides config values with the flags that were set and
// re-validates the result.
func applyStripFlags(cmd *cobra.Command, cfg *config.Config) error {
	applyAnnotationFlags(cmd, cfg, stripNames, includeNames)

	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output.Dir = outDirFlag
		cfg.Output.InPlace = false
	}
	if flags.Changed("in-place") {
		cfg.Output.InPlace = inPlaceFlag
	}
	if flags.Changed("workers") {
		cfg.Workers = workersFlag
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

var errWatchInPlaceWhitelist = errors.New("--watch cannot rewrite files in place when include annotations are set")

// applyAnnotationFlags replaces each configured annotation set whose flag was
// set, leaving the other one as configured.
func applyAnnotationFlags(cmd *cobra.Command, cfg *config.Config, strip, include []string) {
	if cmd.Flags().Changed("strip") {
		cfg.Annotations.Strip = strip
	}
	if cmd.Flags().Changed("include") {
		cfg.Annotations.Include = include
	}
}

// stripRun holds everything one invocation of strip needs.
type stripRun struct {
	rootDir     string
	inputs      []string
	discovery   *transform.Discovery
	transformer *transform.Transformer
	progress    transform.ProgressReporter
	inPlace     bool
	whitelist   bool
}

func newStripRun(rootDir string, cfg *config.Config, args []string, progress transform.ProgressReporter) (*stripRun, error) {
	if len(args) == 0 {
		args = []string{rootDir}
	}
	inputs := make([]string, len(args))
	for i, arg := range args {
		inputs[i] = absUnder(rootDir, arg)
	}

	discovery, err := transform.NewDiscovery(cfg.Paths.Sources, cfg.Paths.Ignore)
	if err != nil {
		return nil, err
	}

	outputPath := transform.OutputPathFunc(transform.InPlace)
	if !cfg.Output.InPlace {
		outDir := absUnder(rootDir, cfg.Output.Dir)
		discovery.SkipDir(outDir)
		outputPath = transform.OutputUnder(rootDir, outDir)
	}

	transformer := transform.New(transform.Options{
		OutputPath: outputPath,
		Workers:    cfg.Workers,
		Progress:   progress,
	}, scrub.NewStripAnnotated(cfg.Policy()))

	return &stripRun{
		rootDir:     rootDir,
		inputs:      inputs,
		discovery:   discovery,
		transformer: transformer,
		progress:    progress,
		inPlace:     cfg.Output.InPlace,
		whitelist:   cfg.Policy().Whitelist(),
	}, nil
}

// once discovers every input file and transforms it.
func (r *stripRun) once(ctx context.Context) (*transform.Stats, error) {
	files, err := r.discovery.Resolve(r.inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	r.progress.OnDiscoveryComplete(len(files))

	return r.transformer.Transform(ctx, files)
}

// watch runs once, then re-scrubs changed files until ctx is cancelled.
// Changes made during the first run are held back and handled right after it.
func (r *stripRun) watch(ctx context.Context, out io.Writer) error {
	// A whitelist pass deletes its include markers, so re-running it over
	// its own output would remove every type.
	if r.inPlace && r.whitelist {
		return errWatchInPlaceWhitelist
	}

	var dirs []string
	for _, input := range r.inputs {
		if info, err := os.Stat(input); err == nil && info.IsDir() {
			dirs = append(dirs, input)
		}
	}
	if len(dirs) == 0 {
		return fmt.Errorf("--watch needs at least one directory argument")
	}

	watcher, err := transform.NewWatcher(dirs, transform.DefaultDebounce)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Stop()

	err = watcher.Start(ctx, func(changed []string) {
		files := r.accepted(dirs, changed)
		if len(files) == 0 {
			return
		}

		// In-place writes come back as events once; the second pass finds
		// nothing to change and writes nothing.
		if _, err := r.transformer.Transform(ctx, files); err != nil {
			log.Printf("Error: %v", err)
		}
	})
	if err != nil {
		return err
	}

	watcher.Pause()
	_, err = r.once(ctx)
	watcher.Resume()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Watching %d directories for changes (Ctrl+C to stop)\n", len(dirs))
	<-ctx.Done()
	return nil
}

// accepted filters watcher events down to existing source files.
func (r *stripRun) accepted(dirs, changed []string) []string {
	var files []string
	for _, path := range changed {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		for _, dir := range dirs {
			if r.discovery.Accepts(dir, path) {
				files = append(files, path)
				break
			}
		}
	}
	return files
}

// absUnder resolves path against rootDir unless it is already absolute.
func absUnder(rootDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(rootDir, path)
}
