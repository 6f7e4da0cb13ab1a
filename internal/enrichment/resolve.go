package enrichment

import (
	"catalog-import/internal/canonical"
	"catalog-import/internal/domain"
	"catalog-import/internal/matcher"
)

// Resolver checks the master references of a suggestion against the lists the model was given.
type Resolver struct {
	matcher *matcher.Matcher
	byID    map[domain.MasterKind]map[string]domain.MasterRecord
	cands   map[domain.MasterKind][]matcher.Candidate
}

// NewResolver indexes the master lists once per batch.
func NewResolver(m *matcher.Matcher, masters domain.MasterLists) *Resolver {
	r := &Resolver{
		matcher: m,
		byID:    make(map[domain.MasterKind]map[string]domain.MasterRecord, len(domain.MasterKinds)),
		cands:   make(map[domain.MasterKind][]matcher.Candidate, len(domain.MasterKinds)),
	}
	for _, kind := range domain.MasterKinds {
		records := masters.ByKind(kind)
		index := make(map[string]domain.MasterRecord, len(records))
		for _, record := range records {
			index[record.ID] = record
		}
		r.byID[kind] = index
		r.cands[kind] = matcher.RecordCandidates(records)
	}
	return r
}

// Resolve fixes up the generic, manufacturer and category references in place.
// A known id is kept and its canonical name filled in. An unknown id or a bare
// name goes through the fuzzy matcher; a miss clears the id and keeps the name.
// It reports whether the generic reference resolved to a master record.
func (r *Resolver) Resolve(s *domain.Suggestion) bool {
	if s == nil {
		return false
	}
	r.resolveRef(domain.MasterManufacturer, &s.ManufacturerID, &s.ManufacturerName, &s.ManufacturerConfidence)
	r.resolveRef(domain.MasterCategory, &s.CategoryID, &s.CategoryName, &s.CategoryConfidence)
	return r.resolveRef(domain.MasterGeneric, &s.GenericID, &s.GenericName, &s.GenericConfidence)
}

func (r *Resolver) resolveRef(kind domain.MasterKind, id, name **string, confidence **float64) bool {
	if *id != nil {
		if record, ok := r.byID[kind][**id]; ok {
			if *name == nil || **name == "" {
				recordName := record.Name
				*name = &recordName
			}
			return true
		}
	}

	target := ""
	if *name != nil {
		target = canonical.Canonicalize(**name)
	}
	if target == "" {
		*id = nil
		*confidence = nil
		return false
	}

	result, ok := r.matcher.Match(target, r.cands[kind])
	if !ok {
		*id = nil
		*confidence = nil
		return false
	}

	record := r.byID[kind][result.ID]
	matchedID := record.ID
	matchedName := record.Name
	score := result.Confidence
	*id = &matchedID
	*name = &matchedName
	*confidence = &score
	return true
}
