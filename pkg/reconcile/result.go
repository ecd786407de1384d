package reconcile

import (
	"fmt"
	"strings"

	"github.com/agentstation/agentsync/pkg/artifacts"
)

// Status is the classification of a local file.
type Status string

// Verdict statuses.
const (
	// Synced means the local file matches its canonical entry.
	Synced Status = "synced"
	// Modified means the local file differs from the entry it mirrors.
	Modified Status = "modified"
	// Duplicate means the local file closely resembles a differently named entry.
	Duplicate Status = "duplicate"
	// New means nothing in the registry corresponds to the local file.
	New Status = "new"
)

// Statuses lists the statuses in report order.
var Statuses = []Status{Synced, Modified, Duplicate, New}

func (s Status) String() string {
	return string(s)
}

// Promotable reports whether promote acts on verdicts with this status.
func (s Status) Promotable() bool {
	return s != Synced
}

// Verdict is the classification of one local file. Type and Key identify
// the matched canonical entry and are empty for New.
type Verdict struct {
	Status Status `json:"status" yaml:"status"`
	Path   string `json:"path" yaml:"path"`
	Rel    string `json:"rel" yaml:"rel"`
	// LocalType is the type folder the local file was found in, when known.
	LocalType  artifacts.Type `json:"local_type,omitempty" yaml:"local_type,omitempty"`
	Type       artifacts.Type `json:"type,omitempty" yaml:"type,omitempty"`
	Key        string         `json:"key,omitempty" yaml:"key,omitempty"`
	Score      int            `json:"score,omitempty" yaml:"score,omitempty"`
	Similarity float64        `json:"similarity,omitempty" yaml:"similarity,omitempty"`
}

// Match returns the matched canonical entry as an artifact.
func (v Verdict) Match() (artifacts.FileArtifact, bool) {
	if v.Status == New || v.Key == "" {
		return artifacts.FileArtifact{}, false
	}
	return artifacts.FileArtifact{Type: v.Type, Key: v.Key}, true
}

// Describe returns a one-line human description.
func (v Verdict) Describe() string {
	switch v.Status {
	case Synced:
		return fmt.Sprintf("%s (matches %s)", v.Rel, v.Key)
	case Modified:
		return fmt.Sprintf("%s (differs from %s:%s)", v.Rel, v.Type, v.Key)
	case Duplicate:
		return fmt.Sprintf("%s (%.0f%% similar to %s:%s)", v.Rel, v.Similarity*100, v.Type, v.Key)
	default:
		return fmt.Sprintf("%s (not in registry)", v.Rel)
	}
}

// Summary counts verdicts per status.
type Summary struct {
	Total  int            `json:"total" yaml:"total"`
	Counts map[Status]int `json:"counts" yaml:"counts"`
}

// Summarize counts the given verdicts.
func Summarize(verdicts []Verdict) Summary {
	s := Summary{Total: len(verdicts), Counts: make(map[Status]int, len(Statuses))}
	for _, v := range verdicts {
		s.Counts[v.Status]++
	}
	return s
}

// Clean reports whether every file is synced.
func (s Summary) Clean() bool {
	return s.Counts[Synced] == s.Total
}

func (s Summary) String() string {
	if s.Total == 0 {
		return "No local artifacts found"
	}
	parts := make([]string, 0, len(Statuses))
	for _, st := range Statuses {
		parts = append(parts, fmt.Sprintf("%d %s", s.Counts[st], st))
	}
	return fmt.Sprintf("%d artifacts: %s", s.Total, strings.Join(parts, ", "))
}
