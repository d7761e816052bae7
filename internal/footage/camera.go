// Package footage turns a snapshot of the camera directory into a report of
// the time ranges for which recorded footage is known to exist.
package footage

import "time"

// Camera is a directory entry as seen by the report builder.
// A nil RecordingStart or RecordingEnd means the bound is unknown.
type Camera struct {
	ID             string
	Name           string
	RecordingStart *time.Time
	RecordingEnd   *time.Time
}

// Interval is a closed range of footage, rendered as ISO-8601 strings.
// Fields are declared in key order so the encoded object is sorted.
type Interval struct {
	End   string `json:"end"`
	Start string `json:"start"`
}

// Range is the per-camera entry of a Report.
type Range struct {
	Intervals []Interval `json:"intervals"`
	Name      string     `json:"name"`
}

// Report maps camera IDs to their footage range.
type Report map[string]Range
