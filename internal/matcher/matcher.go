// Package matcher scores canonical keys against candidate keys.
//
// An exact key match always wins with confidence 1.0. Otherwise a candidate
// qualifies when one key contains the other, scored by the length ratio of the
// shorter key to the longer one, and is accepted only at or above the threshold.
package matcher

import (
	"strings"

	"catalog-import/internal/canonical"
	"catalog-import/internal/domain"
)

// DefaultThreshold is the minimum substring score that counts as a match.
const DefaultThreshold = 0.7

// Candidate is one comparable key owned by an id. A master record with aliases
// yields several candidates sharing the same id.
type Candidate struct {
	ID  string
	Key string
}

// Result is the accepted match.
type Result struct {
	ID         string
	Key        string
	Confidence float64
}

// Matcher holds the acceptance threshold.
type Matcher struct {
	threshold float64
}

// New creates a Matcher. A non-positive threshold falls back to DefaultThreshold.
func New(threshold float64) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Threshold returns the acceptance threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Match returns the best candidate for targetKey. Ties on score resolve to the
// lowest id so that results do not depend on candidate order.
func (m *Matcher) Match(targetKey string, candidates []Candidate) (Result, bool) {
	if targetKey == "" {
		return Result{}, false
	}

	var exact *Candidate
	for i := range candidates {
		c := &candidates[i]
		if c.Key == targetKey && (exact == nil || c.ID < exact.ID) {
			exact = c
		}
	}
	if exact != nil {
		return Result{ID: exact.ID, Key: exact.Key, Confidence: 1.0}, true
	}

	var best Result
	found := false
	for _, c := range candidates {
		score := Score(targetKey, c.Key)
		if score == 0 {
			continue
		}
		if !found || score > best.Confidence || (score == best.Confidence && c.ID < best.ID) {
			best = Result{ID: c.ID, Key: c.Key, Confidence: score}
			found = true
		}
	}

	if !found || best.Confidence < m.threshold {
		return Result{}, false
	}
	return best, true
}

// Score is min(len)/max(len) when one key contains the other, otherwise 0.
// Empty keys never score.
func Score(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return 0
	}
	shorter, longer := len(a), len(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	return float64(shorter) / float64(longer)
}

// RecordCandidates expands master records into candidates over name and aliases.
func RecordCandidates(records []domain.MasterRecord) []Candidate {
	candidates := make([]Candidate, 0, len(records))
	for _, r := range records {
		if key := canonical.Canonicalize(r.Name); key != "" {
			candidates = append(candidates, Candidate{ID: r.ID, Key: key})
		}
		for _, alias := range r.Aliases {
			if key := canonical.Canonicalize(alias); key != "" {
				candidates = append(candidates, Candidate{ID: r.ID, Key: key})
			}
		}
	}
	return candidates
}

// IndexCandidates turns archive entries into candidates keyed by filename.
func IndexCandidates(entries []domain.ZipIndexEntry) []Candidate {
	candidates := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		candidates = append(candidates, Candidate{ID: e.Filename, Key: e.CanonicalKey})
	}
	return candidates
}

// MatchAny tries each name in order and keeps the highest-confidence result.
func (m *Matcher) MatchAny(names []string, candidates []Candidate) (Result, bool) {
	var best Result
	found := false
	for _, name := range names {
		r, ok := m.Match(canonical.Canonicalize(name), candidates)
		if ok && (!found || r.Confidence > best.Confidence) {
			best, found = r, true
		}
	}
	return best, found
}
