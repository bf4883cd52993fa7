package ctxengine

import "log/slog"

// BuildPipeline assembles the standard transformer chain for one agent:
// image extraction first, then compaction. The order matters — compaction
// must see the normalized context so its size estimate reflects what the
// provider will actually receive.
func BuildPipeline(summarizer Summarizer, estimator TokenEstimator, cfg CompactionConfig, logger *slog.Logger) (Pipeline, error) {
	compactor, err := NewCompactor(summarizer, estimator, cfg, logger)
	if err != nil {
		return nil, err
	}
	return Pipeline{ImageExtractor{}, compactor}, nil
}
