// Package enrichment turns raw spreadsheet rows into validated product suggestions
// with one model call per batch and at most one corrective retry.
package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"catalog-import/internal/domain"
	"catalog-import/internal/logger"
	"catalog-import/internal/metrics"
	"catalog-import/internal/validator"
)

// ErrProviderUnavailable reports that the model call itself failed (rate limit, network, timeout).
// Callers should back off and retry the batch later instead of failing rows.
var ErrProviderUnavailable = errors.New("enrichment provider unavailable")

// ValidationError is the per-row failure left after the corrective retry.
type ValidationError struct {
	RowIndex  int
	Complaint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: response failed schema validation: %s", e.RowIndex, e.Complaint)
}

// RowResult is the outcome for one requested row: exactly one of Suggestion and Err is set.
type RowResult struct {
	RowIndex   int
	Suggestion *domain.Suggestion
	Err        error
}

// Client enriches batches of rows.
type Client struct {
	generator Generator
	validator *validator.Validator
}

// NewClient creates a new enrichment client.
func NewClient(generator Generator, v *validator.Validator) *Client {
	return &Client{generator: generator, validator: v}
}

// attempt is the parsed outcome of one model response.
type attempt struct {
	results  map[int]*domain.Suggestion
	failures map[int]string
	// complaints are quoted back to the model on retry.
	complaints []string
}

func (a *attempt) complaint() string {
	return strings.Join(a.complaints, "; ")
}

// Enrich sends rows to the model once, retries the rows whose answer failed validation
// once more with the validator's complaint, and returns one result per row in input order.
// When a model call errors, the results gathered so far are returned with ErrProviderUnavailable.
func (c *Client) Enrich(ctx context.Context, rows []Row, masters domain.MasterLists) ([]RowResult, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	text, err := c.generator.Generate(ctx, BuildPrompt(rows, masters))
	if err != nil {
		metrics.RecordModelCall(metrics.ModelOutcomeProviderError)
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	first := c.parse(text, requestedSet(rows))
	if len(first.failures) == 0 {
		metrics.RecordModelCall(metrics.ModelOutcomeSuccess)
		return collect(rows, first.results, nil), nil
	}
	metrics.RecordModelCall(metrics.ModelOutcomeInvalid)

	var retryRows []Row
	for _, row := range rows {
		if _, failed := first.failures[row.RowIndex]; failed {
			retryRows = append(retryRows, row)
		}
	}
	logger.Warn("Model response failed validation, retrying once",
		"failed_rows", len(retryRows),
		"complaint", first.complaint(),
	)

	text, err = c.generator.Generate(ctx, BuildCorrectivePrompt(retryRows, masters, first.complaint()))
	if err != nil {
		metrics.RecordModelCall(metrics.ModelOutcomeProviderError)
		return collect(rows, first.results, nil), fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	second := c.parse(text, requestedSet(retryRows))
	if len(second.failures) == 0 {
		metrics.RecordModelCall(metrics.ModelOutcomeSuccess)
	} else {
		metrics.RecordModelCall(metrics.ModelOutcomeInvalid)
	}
	for rowIndex, suggestion := range second.results {
		first.results[rowIndex] = suggestion
	}
	return collect(rows, first.results, second.failures), nil
}

// parse decodes and validates one response against the requested row indexes.
func (c *Client) parse(text string, requested map[int]struct{}) *attempt {
	a := &attempt{
		results:  make(map[int]*domain.Suggestion),
		failures: make(map[int]string),
	}

	items, err := decodeItems(text)
	if err != nil {
		a.complaints = append(a.complaints, err.Error())
		for rowIndex := range requested {
			a.failures[rowIndex] = err.Error()
		}
		return a
	}

	for i, raw := range items {
		item, err := decodeItem(raw)
		if err != nil {
			msg := fmt.Sprintf("results[%d]: %v", i, err)
			a.complaints = append(a.complaints, msg)
			if item.RowIndex != nil {
				if _, ok := requested[*item.RowIndex]; ok {
					a.failures[*item.RowIndex] = msg
				}
			}
			continue
		}

		if err := c.validator.ValidateSuggestionItem(item, requested); err != nil {
			msg := fmt.Sprintf("results[%d]: %s", i, validator.ConvertValidationErrors(err))
			a.complaints = append(a.complaints, msg)
			if item.RowIndex != nil {
				if _, ok := requested[*item.RowIndex]; ok {
					a.failures[*item.RowIndex] = msg
				}
			}
			continue
		}

		rowIndex := *item.RowIndex
		if _, seen := a.results[rowIndex]; seen {
			continue
		}
		item.Suggestion.RowIndex = rowIndex
		a.results[rowIndex] = item.Suggestion
		delete(a.failures, rowIndex)
	}

	var missing []int
	for rowIndex := range requested {
		if _, ok := a.results[rowIndex]; ok {
			continue
		}
		if _, ok := a.failures[rowIndex]; !ok {
			missing = append(missing, rowIndex)
		}
	}
	sort.Ints(missing)
	for _, rowIndex := range missing {
		msg := fmt.Sprintf("no result for rowIndex %d", rowIndex)
		a.failures[rowIndex] = msg
		a.complaints = append(a.complaints, msg)
	}
	return a
}

// decodeItems accepts {"results":[...]} or a bare array.
func decodeItems(text string) ([]json.RawMessage, error) {
	text = stripFences(text)
	if text == "" {
		return nil, errors.New("response is empty")
	}

	if strings.HasPrefix(text, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal([]byte(text), &items); err != nil {
			return nil, fmt.Errorf("response is not valid JSON: %v", err)
		}
		return items, nil
	}

	var envelope struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %v", err)
	}
	if envelope.Results == nil {
		return nil, errors.New("results: key is required and must be an array")
	}
	return envelope.Results, nil
}

// decodeItem reads the rowIndex separately so that a missing key is distinguishable from zero.
func decodeItem(raw json.RawMessage) (*validator.SuggestionItem, error) {
	item := &validator.SuggestionItem{}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return item, errors.New("must be a JSON object")
	}
	if rawIndex, ok := keys["rowIndex"]; ok && !bytes.Equal(bytes.TrimSpace(rawIndex), []byte("null")) {
		var rowIndex int
		if err := json.Unmarshal(rawIndex, &rowIndex); err != nil {
			return item, errors.New("rowIndex: must be an integer")
		}
		item.RowIndex = &rowIndex
	}

	var suggestion domain.Suggestion
	if err := json.Unmarshal(raw, &suggestion); err != nil {
		return item, fmt.Errorf("field has the wrong type: %v", err)
	}
	item.Suggestion = &suggestion
	return item, nil
}

func requestedSet(rows []Row) map[int]struct{} {
	set := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		set[row.RowIndex] = struct{}{}
	}
	return set
}

// collect orders results by input row. Rows with neither a result nor a failure are omitted.
func collect(rows []Row, results map[int]*domain.Suggestion, failures map[int]string) []RowResult {
	out := make([]RowResult, 0, len(rows))
	for _, row := range rows {
		if suggestion, ok := results[row.RowIndex]; ok {
			out = append(out, RowResult{RowIndex: row.RowIndex, Suggestion: suggestion})
			continue
		}
		if complaint, ok := failures[row.RowIndex]; ok {
			out = append(out, RowResult{
				RowIndex: row.RowIndex,
				Err:      &ValidationError{RowIndex: row.RowIndex, Complaint: complaint},
			})
		}
	}
	return out
}
