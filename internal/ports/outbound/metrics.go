package outbound

import "time"

// MetricsRecorder defines the interface for recording business metrics.
// Implementations must tolerate concurrent calls.
type MetricsRecorder interface {
	// RecordPlanSetGenerated records one engine run and its duration
	RecordPlanSetGenerated(duration time.Duration)

	// RecordPlanScore records the score of one generated plan
	RecordPlanScore(strategy string, score int)

	// RecordPlanAccepted records one accepted plan
	RecordPlanAccepted(strategy string)

	// SetCatalogSize updates the stored catalog size
	SetCatalogSize(n int)

	// RecordCacheOperation records a cache operation outcome
	RecordCacheOperation(operation, result string)
}
