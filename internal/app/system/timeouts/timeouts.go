// internal/app/system/timeouts/timeouts.go

// Package timeouts centralizes the deadlines handlers put on store calls,
// so a slow or partitioned MongoDB turns into a bounded error instead of a
// hung request.
package timeouts

import "time"

const (
	// Ping bounds health-check connectivity checks.
	Ping = 2 * time.Second

	// Short bounds single-document reads and writes.
	Short = 5 * time.Second

	// Medium bounds list queries, exports, and multi-collection reads.
	Medium = 10 * time.Second
)
