package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mvp-joe/project-scrub/internal/config"
	"github.com/mvp-joe/project-scrub/internal/scrub"
	"github.com/mvp-joe/project-scrub/internal/syntax"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	rangesStrip   []string
	rangesInclude []string
)

// rangesCmd represents the ranges command
var rangesCmd = &cobra.Command{
	Use:   "ranges FILE",
	Short: "Print the byte ranges strip would remove from a file",
	Long: `Ranges parses one Java file and prints, as YAML, the removal ranges the
strip command would apply. Offsets are half-open byte offsets; lines are
1-based and inclusive. The file is not modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runRanges,
}

func init() {
	rootCmd.AddCommand(rangesCmd)
	rangesCmd.Flags().StringSliceVar(&rangesStrip, "strip", nil, "Annotations whose declarations are removed")
	rangesCmd.Flags().StringSliceVar(&rangesInclude, "include", nil, "Annotations marking top-level types to keep")
}

// rangeReport is the YAML document printed by the ranges command.
type rangeReport struct {
	File         string       `yaml:"file"`
	Bytes        int          `yaml:"bytes"`
	BytesRemoved int          `yaml:"bytes_removed"`
	Ranges       []rangeEntry `yaml:"ranges"`
}

type rangeEntry struct {
	Start     int `yaml:"start"`
	End       int `yaml:"end"`
	FirstLine int `yaml:"first_line"`
	LastLine  int `yaml:"last_line"`
}

func runRanges(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyAnnotationFlags(cmd, cfg, rangesStrip, rangesInclude)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	report, err := buildRangeReport(args[0], string(content), cfg.Policy())
	if err != nil {
		return err
	}
	return writeRangeReport(cmd.OutOrStdout(), report)
}

func buildRangeReport(path, source string, policy scrub.Policy) (*rangeReport, error) {
	file, err := syntax.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	set, err := scrub.ComputeRemovalRanges(file, policy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	report := &rangeReport{
		File:         path,
		Bytes:        len(source),
		BytesRemoved: set.Size(),
		Ranges:       []rangeEntry{},
	}
	for _, r := range set.Ranges() {
		report.Ranges = append(report.Ranges, rangeEntry{
			Start:     r.Start,
			End:       r.End,
			FirstLine: file.Lines.LineOf(r.Start),
			LastLine:  file.Lines.LineOf(r.End - 1),
		})
	}
	return report, nil
}

func writeRangeReport(w io.Writer, report *rangeReport) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode ranges: %w", err)
	}
	return encoder.Close()
}
