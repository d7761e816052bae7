package footage

import (
	"slices"
	"strings"
	"time"
)

const (
	isoLayout      = "2006-01-02T15:04:05-07:00"
	isoMicroLayout = "2006-01-02T15:04:05.000000-07:00"
)

// FormatTimestamp renders t in UTC as ISO-8601 with an explicit "+00:00"
// offset. A microsecond fraction is only written when it is non-zero.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format(isoLayout)
	}
	return t.Format(isoMicroLayout)
}

// Intervals returns the known footage intervals of a camera. A camera
// missing either bound has none; a start without an end is never reported
// as an open range.
func Intervals(cam Camera) []Interval {
	if cam.RecordingStart == nil || cam.RecordingEnd == nil {
		return []Interval{}
	}
	return []Interval{{
		Start: FormatTimestamp(*cam.RecordingStart),
		End:   FormatTimestamp(*cam.RecordingEnd),
	}}
}

// Build constructs the report for the given cameras. Every camera gets an
// entry, including those without footage.
func Build(cameras []Camera) Report {
	sorted := slices.Clone(cameras)
	slices.SortStableFunc(sorted, func(a, b Camera) int {
		return strings.Compare(a.Name, b.Name)
	})

	report := make(Report, len(sorted))
	for _, cam := range sorted {
		report[cam.ID] = Range{
			Name:      cam.Name,
			Intervals: Intervals(cam),
		}
	}
	return report
}

// Collect selects cameras with sel and builds their report.
func Collect(cameras []Camera, sel Selection) Report {
	return Build(sel.Filter(cameras))
}
