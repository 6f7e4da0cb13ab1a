package domain

// MasterKind names one of the curated lookup lists.
type MasterKind string

const (
	MasterGeneric      MasterKind = "generic"
	MasterManufacturer MasterKind = "manufacturer"
	MasterCategory     MasterKind = "category"
)

// MasterKinds lists every master list, in prompt order.
var MasterKinds = []MasterKind{MasterGeneric, MasterManufacturer, MasterCategory}

// MasterRecord is a curated reference entry. Read-only for the pipeline.
type MasterRecord struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// MasterLists bundles the three lookup lists handed to enrichment.
type MasterLists struct {
	Generics      []MasterRecord `json:"generics"`
	Manufacturers []MasterRecord `json:"manufacturers"`
	Categories    []MasterRecord `json:"categories"`
}

// ByKind returns the list for a kind.
func (m MasterLists) ByKind(kind MasterKind) []MasterRecord {
	switch kind {
	case MasterGeneric:
		return m.Generics
	case MasterManufacturer:
		return m.Manufacturers
	case MasterCategory:
		return m.Categories
	}
	return nil
}

// ZipIndexEntry describes one image inside an archive. Rebuilt per invocation.
type ZipIndexEntry struct {
	Filename     string `json:"filename"`
	CanonicalKey string `json:"canonical_key"`
	Size         int64  `json:"size"`
}
