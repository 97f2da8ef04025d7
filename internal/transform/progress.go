package transform

// ProgressReporter provides callbacks for reporting transform progress.
// Implementations can display progress bars, log messages, or remain silent.
// OnFileProcessed may be called from several goroutines at once.
type ProgressReporter interface {
	// OnDiscoveryComplete is called when file discovery finishes.
	OnDiscoveryComplete(files int)

	// OnFileProcessingStart is called before processing files.
	OnFileProcessingStart(totalFiles int)

	// OnFileProcessed is called after each file is written.
	OnFileProcessed(result *FileResult)

	// OnComplete is called when a run completes successfully.
	OnComplete(stats *Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryComplete(files int)        {}
func (n *NoOpProgressReporter) OnFileProcessingStart(totalFiles int) {}
func (n *NoOpProgressReporter) OnFileProcessed(result *FileResult)   {}
func (n *NoOpProgressReporter) OnComplete(stats *Stats)              {}
