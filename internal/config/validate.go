package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mvp-joe/project-scrub/internal/transform"
)

var (
	// ErrEmptyAnnotation indicates a blank annotation name
	ErrEmptyAnnotation = errors.New("empty annotation name")

	// ErrPaddedAnnotation indicates an annotation name with surrounding whitespace
	ErrPaddedAnnotation = errors.New("annotation name has surrounding whitespace")

	// ErrConflictingAnnotation indicates a name listed for both strip and include
	ErrConflictingAnnotation = errors.New("annotation both stripped and included")

	// ErrNoAnnotations indicates a policy that would never strip anything
	ErrNoAnnotations = errors.New("no annotations configured")

	// ErrInvalidWorkers indicates a non-positive worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrEmptySources indicates missing source patterns
	ErrEmptySources = errors.New("empty source patterns")

	// ErrInvalidPattern indicates a glob that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrEmptyOutputDir indicates no output directory outside in-place mode
	ErrEmptyOutputDir = errors.New("empty output directory")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateAnnotations(&cfg.Annotations); err != nil {
		errs = append(errs, err)
	}

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if cfg.Workers < 1 {
		errs = append(errs, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateAnnotations(cfg *AnnotationsConfig) error {
	var errs []error

	if len(cfg.Strip) == 0 && len(cfg.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: set annotations.strip or annotations.include", ErrNoAnnotations))
	}

	strip := make(map[string]bool)
	for _, name := range cfg.Strip {
		if err := validateAnnotationName(name, "annotations.strip"); err != nil {
			errs = append(errs, err)
			continue
		}
		strip[name] = true
	}

	for _, name := range cfg.Include {
		if err := validateAnnotationName(name, "annotations.include"); err != nil {
			errs = append(errs, err)
			continue
		}
		if strip[name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrConflictingAnnotation, name))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// validateAnnotationName rejects names that can never match, since names are
// compared exactly as written in source.
func validateAnnotationName(name, key string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w in %s", ErrEmptyAnnotation, key)
	}
	if trimmed != name {
		return fmt.Errorf("%w in %s: %q", ErrPaddedAnnotation, key, name)
	}
	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	if len(cfg.Sources) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one pattern required", ErrEmptySources))
	}

	for _, pattern := range append(append([]string{}, cfg.Sources...), cfg.Ignore...) {
		if err := transform.CompilePattern(pattern); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateOutput(cfg *OutputConfig) error {
	if !cfg.InPlace && strings.TrimSpace(cfg.Dir) == "" {
		return fmt.Errorf("%w: set output.dir or output.in_place", ErrEmptyOutputDir)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
