package footage

import (
	"sort"
	"strings"
)

// SelectAll is the selection expression matching every camera.
const SelectAll = "all"

// Selection decides which cameras end up in a report.
type Selection struct {
	all bool
	ids map[string]struct{}
}

// ParseSelection parses either "all" or a comma separated list of camera IDs.
// Blank elements are dropped.
func ParseSelection(expr string) Selection {
	if expr == SelectAll {
		return Selection{all: true}
	}

	ids := make(map[string]struct{})
	for _, id := range strings.Split(expr, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			ids[trimmed] = struct{}{}
		}
	}
	return Selection{ids: ids}
}

// All reports whether every camera is selected.
func (s Selection) All() bool { return s.all }

// IDs returns the requested camera IDs in sorted order.
func (s Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Matches reports whether the camera with the given ID is selected.
func (s Selection) Matches(id string) bool {
	if s.all {
		return true
	}
	_, ok := s.ids[id]
	return ok
}

// Filter returns the selected cameras in their input order. IDs that match
// no camera are ignored.
func (s Selection) Filter(cameras []Camera) []Camera {
	out := make([]Camera, 0, len(cameras))
	for _, cam := range cameras {
		if s.Matches(cam.ID) {
			out = append(out, cam)
		}
	}
	return out
}
