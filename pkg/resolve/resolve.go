// Package resolve maps a requested manifest name to the canonical artifact
// that should be fetched for it.
//
// Every registry file and every top-level skill directory is scored against
// the request; the first rule that applies decides the base score:
//
//	100  exact key (or directory name)
//	 90  case-insensitive exact key
//	 80  exact basename
//	 70  case-insensitive basename
//	 s*50 fuzzy, when the token similarity s of the basenames exceeds 0.5
//
// A file candidate that scored gets +5 when the request contains the name of
// the candidate's parent directory. Only positive scores count and the
// highest wins; ties keep the first candidate seen (files in type then key
// order, then directories by name).
package resolve

import (
	"path"
	"sort"
	"strings"

	"github.com/agentstation/agentsync/pkg/artifacts"
	"github.com/agentstation/agentsync/pkg/catalogs"
	"github.com/agentstation/agentsync/pkg/constants"
	"github.com/agentstation/agentsync/pkg/similarity"
)

// Match is a scored resolution candidate.
type Match struct {
	Artifact artifacts.Artifact
	Score    float64
}

// Folder returns the type folder the match is written into.
func (m Match) Folder(layout artifacts.Layout) string {
	return layout.Folder(m.Artifact.ArtifactType())
}

// Normalize trims the request and appends the document extension.
func Normalize(requested string) string {
	return artifacts.WithExt(strings.TrimSpace(requested))
}

// Resolve returns the best canonical artifact for requested.
func Resolve(requested string, set *catalogs.Set) (Match, bool) {
	ranked := Rank(requested, set)
	if len(ranked) == 0 {
		return Match{}, false
	}
	return ranked[0], true
}

// Rank returns every positively scored candidate, best first. Equal scores
// keep their discovery order.
func Rank(requested string, set *catalogs.Set) []Match {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return nil
	}
	normalized := Normalize(requested)

	var matches []Match
	for _, e := range set.Entries() {
		if s := scoreFile(requested, normalized, e.Key); s > 0 {
			matches = append(matches, Match{Artifact: e.Artifact(), Score: s})
		}
	}

	dirName := strings.TrimSuffix(normalized, constants.DocumentExt)
	for _, name := range set.SkillDirs() {
		if s := scoreName(dirName, name); s > 0 {
			matches = append(matches, Match{Artifact: artifacts.DirectoryArtifact{Name: name}, Score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

func scoreFile(requested, normalized, key string) float64 {
	want, have := path.Base(normalized), path.Base(key)

	var score float64
	switch {
	case key == normalized:
		score = constants.ScoreExactKey
	case strings.EqualFold(key, normalized):
		score = constants.ScoreExactKeyFold
	case have == want:
		score = constants.ScoreExactBasename
	case strings.EqualFold(have, want):
		score = constants.ScoreExactBasenameFold
	default:
		score = fuzzy(want, have)
	}

	if score > 0 {
		if parent := path.Base(path.Dir(key)); parent != "." && strings.Contains(requested, parent) {
			score += constants.ParentSegmentBonus
		}
	}
	return score
}

func scoreName(want, have string) float64 {
	switch {
	case want == have:
		return constants.ScoreExactKey
	case strings.EqualFold(want, have):
		return constants.ScoreExactKeyFold
	}
	return fuzzy(want, have)
}

// fuzzy weights the token similarity of two names, or returns 0 below the
// threshold.
func fuzzy(a, b string) float64 {
	if s := similarity.Jaccard(a, b); s > constants.FuzzyNameThreshold {
		return s * constants.FuzzyNameWeight
	}
	return 0
}
