package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"catalog-import/internal/domain"
	"catalog-import/internal/logger"
	"catalog-import/internal/metrics"
)

// Export formats.
const (
	FormatCSV    = "csv"
	FormatNDJSON = "ndjson"
)

// flushEvery is the number of drafts written between flushes.
const flushEvery = 100

var draftCSVHeader = []string{
	"row_index", "name", "status", "image_status", "ai_confidence",
	"suggested_name", "generic_id", "generic_name", "manufacturer_id", "manufacturer_name",
	"category_id", "category_name", "strength", "dosage_form", "pack_size",
	"requires_prescription", "image_url", "notes",
}

// StreamDrafts writes every draft of a job to the writer in row order, as CSV with a
// header row or as one JSON object per line.
func (s *PipelineService) StreamDrafts(ctx context.Context, jobID, format string, writer StreamWriter) (int, error) {
	if format != FormatCSV && format != FormatNDJSON {
		return 0, fmt.Errorf("%w: format must be csv or ndjson", ErrInvalidInput)
	}
	if _, err := s.loadJob(ctx, jobID); err != nil {
		return 0, err
	}

	start := time.Now()
	metrics.StartStreamingExport()

	count, err := s.streamDrafts(ctx, jobID, format, writer)
	result := "success"
	if err != nil {
		result = "error"
		logger.WithJobID(jobID).Error("Draft export failed", "format", format, "count", count, "error", err)
	}
	metrics.EndStreamingExport(format, result, time.Since(start).Seconds(), count)
	return count, err
}

func (s *PipelineService) streamDrafts(ctx context.Context, jobID, format string, writer StreamWriter) (int, error) {
	var buf bytes.Buffer
	var csvWriter *csv.Writer
	if format == FormatCSV {
		csvWriter = csv.NewWriter(&buf)
		if err := csvWriter.Write(draftCSVHeader); err != nil {
			return 0, fmt.Errorf("write csv header: %w", err)
		}
	}

	flush := func() error {
		if csvWriter != nil {
			csvWriter.Flush()
			if err := csvWriter.Error(); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
		}
		if buf.Len() == 0 {
			return nil
		}
		if err := writer.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		buf.Reset()
		writer.Flush()
		return nil
	}

	count := 0
	err := s.drafts.StreamByJob(ctx, jobID, domain.DraftFilter{}, func(d domain.ProductDraft) error {
		if csvWriter != nil {
			if err := csvWriter.Write(draftCSVRecord(&d)); err != nil {
				return err
			}
		} else {
			line, err := json.Marshal(d)
			if err != nil {
				return fmt.Errorf("marshal draft %s: %w", d.ID, err)
			}
			buf.Write(line)
			buf.WriteByte('\n')
		}
		count++
		if count%flushEvery == 0 {
			return flush()
		}
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("stream drafts: %w", err)
	}
	if err := flush(); err != nil {
		return count, err
	}
	return count, nil
}

func draftCSVRecord(d *domain.ProductDraft) []string {
	record := []string{
		strconv.Itoa(d.RowIndex),
		d.RawData.Name,
		string(d.Status),
		string(d.ImageStatus),
		formatFloat(d.AIConfidence),
	}
	s := d.AISuggestion
	if s == nil {
		s = &domain.Suggestion{}
	}
	record = append(record,
		deref(s.Name), deref(s.GenericID), deref(s.GenericName),
		deref(s.ManufacturerID), deref(s.ManufacturerName),
		deref(s.CategoryID), deref(s.CategoryName),
		deref(s.Strength), deref(s.DosageForm), deref(s.PackSize),
		formatBool(s.RequiresPrescription),
		deref(d.ImageURL),
		d.Notes,
	)
	return record
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}
