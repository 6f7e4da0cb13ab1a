package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// DraftStatus represents the review status of a product draft.
type DraftStatus string

const (
	DraftPendingReview  DraftStatus = "PENDING_REVIEW"
	DraftApproved       DraftStatus = "APPROVED"
	DraftRejected       DraftStatus = "REJECTED"
	DraftAIError        DraftStatus = "AI_ERROR"
	DraftManuallyEdited DraftStatus = "MANUALLY_EDITED"
)

// ActiveDraftStatuses are the statuses the pipeline may still touch.
var ActiveDraftStatuses = []DraftStatus{DraftPendingReview, DraftAIError, DraftManuallyEdited}

// IsTerminal reports whether the draft has left the pipeline.
func (s DraftStatus) IsTerminal() bool {
	return s == DraftApproved || s == DraftRejected
}

// IsValidDraftStatus checks if a draft status is valid.
func IsValidDraftStatus(status string) bool {
	switch DraftStatus(status) {
	case DraftPendingReview, DraftApproved, DraftRejected, DraftAIError, DraftManuallyEdited:
		return true
	}
	return false
}

// ImageStatus represents the image state of a product draft.
type ImageStatus string

const (
	ImageUnmatched ImageStatus = "UNMATCHED"
	ImageMatched   ImageStatus = "MATCHED"
	ImageMissing   ImageStatus = "MISSING"
	ImageProcessed ImageStatus = "PROCESSED"
)

// RawRow is one spreadsheet row. Name is the mandatory column; Columns holds every
// column of the row keyed by lower-cased header, name included.
type RawRow struct {
	Name    string            `json:"name"`
	Columns map[string]string `json:"columns"`
}

// Get returns the trimmed value of a column, or "" when absent.
func (r RawRow) Get(column string) string {
	return strings.TrimSpace(r.Columns[strings.ToLower(column)])
}

// Suggestion is the structured enrichment result for one row.
// Fields the pipeline does not know are kept in Extra and written back on marshal.
type Suggestion struct {
	RowIndex               int      `json:"rowIndex"`
	Name                   *string  `json:"name"`
	Description            *string  `json:"description"`
	GenericID              *string  `json:"genericId"`
	GenericName            *string  `json:"genericName"`
	GenericConfidence      *float64 `json:"genericConfidence"`
	ManufacturerID         *string  `json:"manufacturerId"`
	ManufacturerName       *string  `json:"manufacturerName"`
	ManufacturerConfidence *float64 `json:"manufacturerConfidence"`
	CategoryID             *string  `json:"categoryId"`
	CategoryName           *string  `json:"categoryName"`
	CategoryConfidence     *float64 `json:"categoryConfidence"`
	Strength               *string  `json:"strength"`
	DosageForm             *string  `json:"dosageForm"`
	PackSize               *string  `json:"packSize"`
	RequiresPrescription   *bool    `json:"requiresPrescription"`
	Confidence             *float64 `json:"confidence"`

	Extra map[string]json.RawMessage `json:"-"`
}

// suggestionFields is an alias without methods, used to avoid recursive (un)marshalling.
type suggestionFields Suggestion

var knownSuggestionKeys = map[string]struct{}{
	"rowIndex": {}, "name": {}, "description": {},
	"genericId": {}, "genericName": {}, "genericConfidence": {},
	"manufacturerId": {}, "manufacturerName": {}, "manufacturerConfidence": {},
	"categoryId": {}, "categoryName": {}, "categoryConfidence": {},
	"strength": {}, "dosageForm": {}, "packSize": {}, "requiresPrescription": {},
	"confidence": {},
}

// UnmarshalJSON decodes the known fields and keeps everything else in Extra.
func (s *Suggestion) UnmarshalJSON(data []byte) error {
	var fields suggestionFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	*s = Suggestion(fields)
	for key, value := range all {
		if _, known := knownSuggestionKeys[key]; known {
			continue
		}
		if s.Extra == nil {
			s.Extra = make(map[string]json.RawMessage)
		}
		s.Extra[key] = value
	}
	return nil
}

// MarshalJSON encodes the known fields followed by the Extra bucket.
func (s Suggestion) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(suggestionFields(s))
	if err != nil {
		return nil, err
	}
	if len(s.Extra) == 0 {
		return base, nil
	}
	merged := make(map[string]json.RawMessage, len(knownSuggestionKeys)+len(s.Extra))
	for key, value := range s.Extra {
		merged[key] = value
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(base, &known); err != nil {
		return nil, err
	}
	for key, value := range known {
		merged[key] = value
	}
	return json.Marshal(merged)
}

// ProductDraft is one row of an import job awaiting human review.
type ProductDraft struct {
	ID                   string      `json:"id"`
	JobID                string      `json:"job_id"`
	RowIndex             int         `json:"row_index"`
	RawData              RawRow      `json:"raw_data"`
	AISuggestion         *Suggestion `json:"ai_suggestion,omitempty"`
	AIConfidence         *float64    `json:"ai_confidence,omitempty"`
	Status               DraftStatus `json:"status"`
	ImageStatus          ImageStatus `json:"image_status"`
	ImageRawFilename     *string     `json:"image_raw_filename,omitempty"`
	ImageMatchConfidence float64     `json:"image_match_confidence"`
	ImageURL             *string     `json:"image_url,omitempty"`
	Notes                string      `json:"notes,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// MatchNames returns the names tried against archive filenames, raw name first.
func (d *ProductDraft) MatchNames() []string {
	names := []string{d.RawData.Name}
	if d.AISuggestion != nil && d.AISuggestion.Name != nil && *d.AISuggestion.Name != d.RawData.Name {
		names = append(names, *d.AISuggestion.Name)
	}
	return names
}

// DraftUpdate is a partial update of a draft. Nil fields are left unchanged.
type DraftUpdate struct {
	AISuggestion         *Suggestion
	AIConfidence         *float64
	ClearAISuggestion    bool
	Status               *DraftStatus
	ImageStatus          *ImageStatus
	ImageRawFilename     *string
	ClearImageFilename   bool
	ImageMatchConfidence *float64
	ImageURL             *string
	Notes                *string
}

// Apply writes the update onto a draft. Stores without partial-update support use it.
func (u DraftUpdate) Apply(d *ProductDraft) {
	if u.ClearAISuggestion {
		d.AISuggestion = nil
		d.AIConfidence = nil
	}
	if u.AISuggestion != nil {
		d.AISuggestion = u.AISuggestion
	}
	if u.AIConfidence != nil {
		d.AIConfidence = u.AIConfidence
	}
	if u.Status != nil {
		d.Status = *u.Status
	}
	if u.ImageStatus != nil {
		d.ImageStatus = *u.ImageStatus
	}
	if u.ClearImageFilename {
		d.ImageRawFilename = nil
	}
	if u.ImageRawFilename != nil {
		d.ImageRawFilename = u.ImageRawFilename
	}
	if u.ImageMatchConfidence != nil {
		d.ImageMatchConfidence = *u.ImageMatchConfidence
	}
	if u.ImageURL != nil {
		d.ImageURL = u.ImageURL
	}
	if u.Notes != nil {
		d.Notes = *u.Notes
	}
}

// DraftFilter selects drafts of one job. Empty slices and nil pointers do not filter.
type DraftFilter struct {
	Statuses      []DraftStatus
	ImageStatuses []ImageStatus
	// Enriched filters on presence of an AI suggestion.
	Enriched *bool
	// AfterRowIndex keeps rows with rowIndex strictly greater than the value.
	AfterRowIndex *int
}

// Matches reports whether a draft satisfies the filter.
func (f DraftFilter) Matches(d *ProductDraft) bool {
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, d.Status) {
		return false
	}
	if len(f.ImageStatuses) > 0 && !containsImageStatus(f.ImageStatuses, d.ImageStatus) {
		return false
	}
	if f.Enriched != nil && (d.AISuggestion != nil) != *f.Enriched {
		return false
	}
	if f.AfterRowIndex != nil && d.RowIndex <= *f.AfterRowIndex {
		return false
	}
	return true
}

func containsStatus(list []DraftStatus, s DraftStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsImageStatus(list []ImageStatus, s ImageStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// DraftCounts aggregates the drafts of a job per status.
type DraftCounts struct {
	Total         int                 `json:"total"`
	ByStatus      map[DraftStatus]int `json:"by_status"`
	ByImageStatus map[ImageStatus]int `json:"by_image_status"`
}

// NewDraftCounts returns empty counts.
func NewDraftCounts() DraftCounts {
	return DraftCounts{
		ByStatus:      make(map[DraftStatus]int),
		ByImageStatus: make(map[ImageStatus]int),
	}
}

// Add counts one draft.
func (c *DraftCounts) Add(status DraftStatus, imageStatus ImageStatus, n int) {
	c.Total += n
	c.ByStatus[status] += n
	c.ByImageStatus[imageStatus] += n
}
