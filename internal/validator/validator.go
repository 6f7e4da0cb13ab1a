package validator

import (
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"catalog-import/internal/domain"
)

// Patchable statuses a reviewer may set directly.
var patchStatuses = []interface{}{
	string(domain.DraftApproved),
	string(domain.DraftRejected),
	string(domain.DraftPendingReview),
}

// SuggestionItem is one element of a model response. RowIndex is nil when the
// element did not carry a rowIndex key.
type SuggestionItem struct {
	RowIndex   *int
	Suggestion *domain.Suggestion
}

// DraftPatch is a reviewer's manual edit of a draft.
type DraftPatch struct {
	AISuggestion *domain.Suggestion `json:"aiSuggestion"`
	Status       *string            `json:"status"`
	Notes        *string            `json:"notes"`
}

// BatchRequest is the input of a batch-advance call.
type BatchRequest struct {
	JobID     string `json:"jobId"`
	Stage     string `json:"stage"`
	BatchSize int    `json:"batchSize"`
}

// Validator provides validation methods for pipeline payloads.
type Validator struct {
	maxBatchSize int
}

// NewValidator creates a new Validator instance.
func NewValidator(maxBatchSize int) *Validator {
	return &Validator{maxBatchSize: maxBatchSize}
}

// ValidateSuggestionItem validates one model response element against the rows that were requested.
func (v *Validator) ValidateSuggestionItem(item *SuggestionItem, requested map[int]struct{}) error {
	if item.RowIndex == nil {
		return validation.Errors{
			"rowIndex": validation.NewError("row_index_required", "rowIndex is required"),
		}
	}
	if _, ok := requested[*item.RowIndex]; !ok {
		return validation.Errors{
			"rowIndex": validation.NewError("row_index_unknown", fmt.Sprintf("rowIndex %d was not part of the request", *item.RowIndex)),
		}
	}
	return v.ValidateSuggestion(item.Suggestion)
}

// ValidateSuggestion validates the field shapes of a suggestion.
func (v *Validator) ValidateSuggestion(s *domain.Suggestion) error {
	if s == nil {
		return validation.Errors{
			"suggestion": validation.NewError("suggestion_required", "suggestion is required"),
		}
	}
	return validation.ValidateStruct(s,
		validation.Field(&s.Confidence,
			validation.NotNil.Error("confidence is required"),
			unitInterval(),
		),
		validation.Field(&s.GenericConfidence, unitInterval()),
		validation.Field(&s.ManufacturerConfidence, unitInterval()),
		validation.Field(&s.CategoryConfidence, unitInterval()),
		validation.Field(&s.Name, validation.NilOrNotEmpty.Error("name must not be empty")),
	)
}

// ValidateDraftPatch validates a manual edit.
func (v *Validator) ValidateDraftPatch(p *DraftPatch) error {
	if p.AISuggestion == nil && p.Status == nil && p.Notes == nil {
		return validation.Errors{
			"patch": validation.NewError("patch_empty", "at least one of aiSuggestion, status, notes is required"),
		}
	}
	err := validation.ValidateStruct(p,
		validation.Field(&p.Status,
			validation.NilOrNotEmpty.Error("status must not be empty"),
			validation.In(patchStatuses...).Error("status must be one of APPROVED, REJECTED, PENDING_REVIEW"),
		),
		validation.Field(&p.Notes, validation.Length(0, 2000).Error("notes must be at most 2000 characters")),
	)
	if err != nil {
		return err
	}
	if p.AISuggestion != nil {
		s := p.AISuggestion
		return validation.ValidateStruct(s,
			validation.Field(&s.Confidence, unitInterval()),
			validation.Field(&s.GenericConfidence, unitInterval()),
			validation.Field(&s.ManufacturerConfidence, unitInterval()),
			validation.Field(&s.CategoryConfidence, unitInterval()),
		)
	}
	return nil
}

// ValidateBatchRequest validates a batch-advance request. A zero batch size means the stage default.
func (v *Validator) ValidateBatchRequest(r *BatchRequest) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.JobID, validation.Required.Error("jobId is required")),
		validation.Field(&r.Stage,
			validation.Required.Error("stage is required"),
			validation.By(stageRule),
		),
		validation.Field(&r.BatchSize,
			validation.Min(0).Error("batchSize must not be negative"),
			validation.Max(v.maxBatchSize).Error(fmt.Sprintf("batchSize must be at most %d", v.maxBatchSize)),
		),
	)
}

// ValidateBatchSize validates a batch size given outside of a BatchRequest.
func (v *Validator) ValidateBatchSize(size int) error {
	return validation.Validate(size,
		validation.Min(0).Error("batchSize must not be negative"),
		validation.Max(v.maxBatchSize).Error(fmt.Sprintf("batchSize must be at most %d", v.maxBatchSize)),
	)
}

func stageRule(value interface{}) error {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil
	}
	if !domain.IsValidStage(s) {
		return validation.NewError("invalid_stage", "stage must be one of enrichment, image_match, image_process")
	}
	return nil
}

// unitInterval bounds a confidence to [0,1].
func unitInterval() validation.Rule {
	return validation.By(func(value interface{}) error {
		f, ok := value.(*float64)
		if !ok || f == nil {
			return nil
		}
		if *f < 0 || *f > 1 {
			return validation.NewError("confidence_out_of_range", fmt.Sprintf("must be between 0 and 1, got %v", *f))
		}
		return nil
	})
}

// ConvertValidationErrors flattens ozzo validation errors into one sorted, human-readable complaint.
func ConvertValidationErrors(err error) string {
	if err == nil {
		return ""
	}
	ve, ok := err.(validation.Errors)
	if !ok {
		return err.Error()
	}
	fields := make([]string, 0, len(ve))
	for field := range ve {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if ve[field] == nil {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, ve[field].Error()))
	}
	return strings.Join(parts, "; ")
}
