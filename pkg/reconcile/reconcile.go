// Package reconcile classifies local artifact files against the canonical
// registry.
//
// Classification runs in three stages:
//
//  1. Every canonical entry whose basename equals the local basename becomes
//     a candidate.
//  2. Candidates are scored: +100 for identical trimmed content, +50 when the
//     canonical key equals the local path relative to its type folder, -1000
//     for a generic basename (SKILL.md, index.md, ...) without that path
//     match, and minus the key depth. The best candidate is accepted when its
//     score is positive and yields Synced or Modified.
//  3. Otherwise the local content is compared with every canonical entry by
//     token similarity; above 0.8 it is a Duplicate of the closest entry,
//     else New.
//
// Ties go to the first candidate in catalog order (types in artifacts.Types
// order, keys sorted).
package reconcile

import (
	"path"
	"strings"

	"github.com/agentstation/agentsync/pkg/artifacts"
	"github.com/agentstation/agentsync/pkg/catalogs"
	"github.com/agentstation/agentsync/pkg/constants"
	"github.com/agentstation/agentsync/pkg/similarity"
)

// Input is the local side of a classification.
type Input struct {
	// Path is the filesystem path, reported back in the verdict.
	Path string
	// Rel is the slash path relative to the local type folder.
	Rel     string
	Content string
}

// FromLocal converts a listed local file into an Input.
func FromLocal(f catalogs.LocalFile) Input {
	return Input{Path: f.Path, Rel: f.Rel, Content: f.Content}
}

// Candidate is a scored filename match.
type Candidate struct {
	Type  artifacts.Type
	Key   string
	Score int
	Exact bool
}

// Candidates returns every canonical entry sharing the local basename,
// scored, in catalog order.
func Candidates(in Input, set *catalogs.Set) []Candidate {
	base := path.Base(in.Rel)
	generic := artifacts.IsGeneric(base)
	local := strings.TrimSpace(in.Content)

	var out []Candidate
	for _, e := range set.Entries() {
		if path.Base(e.Key) != base {
			continue
		}

		c := Candidate{Type: e.Type, Key: e.Key}
		if local == strings.TrimSpace(e.Content) {
			c.Exact = true
			c.Score += constants.ExactContentBonus
		}
		pathMatch := e.Key == in.Rel
		if pathMatch {
			c.Score += constants.PathMatchBonus
		}
		if generic && !pathMatch {
			c.Score += constants.GenericNamePenalty
		}
		c.Score -= artifacts.Depth(e.Key)

		out = append(out, c)
	}
	return out
}

// Best returns the highest scoring candidate, first-seen on ties. It
// reports false when there are no candidates or the best score is not
// positive.
func Best(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	if best.Score <= 0 {
		return Candidate{}, false
	}
	return best, true
}

// Classify computes the verdict for one local file.
func Classify(in Input, set *catalogs.Set) Verdict {
	v := Verdict{Path: in.Path, Rel: in.Rel}

	if best, ok := Best(Candidates(in, set)); ok {
		v.Type = best.Type
		v.Key = best.Key
		v.Score = best.Score
		v.Status = Modified
		if best.Exact {
			v.Status = Synced
		}
		return v
	}

	var (
		top   catalogs.Entry
		score float64
		found bool
	)
	for _, e := range set.Entries() {
		s := similarity.Jaccard(in.Content, e.Content)
		if !found || s > score {
			top, score, found = e, s, true
		}
	}

	if found && score > constants.DuplicateThreshold {
		v.Status = Duplicate
		v.Type = top.Type
		v.Key = top.Key
		v.Similarity = score
		return v
	}

	v.Status = New
	return v
}

// ClassifyAll classifies every local file, in order.
func ClassifyAll(files []catalogs.LocalFile, set *catalogs.Set) []Verdict {
	verdicts := make([]Verdict, 0, len(files))
	for _, f := range files {
		v := Classify(FromLocal(f), set)
		v.LocalType = f.Type
		verdicts = append(verdicts, v)
	}
	return verdicts
}
