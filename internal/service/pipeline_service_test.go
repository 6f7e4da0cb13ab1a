package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"catalog-import/internal/domain"
	"catalog-import/internal/ingest"
	"catalog-import/internal/service"
	"catalog-import/internal/storage"
	"catalog-import/internal/validator"
)

func TestPipelineService_CreateImport(t *testing.T) {
	ctx := context.Background()

	t.Run("creates one pending draft per data row", func(t *testing.T) {
		f := newFixture(t)

		job := f.createImport(t, threeRowCSV, nil)

		assert.Equal(t, domain.JobStatusPending, job.Status)
		assert.Equal(t, 3, job.TotalRows)
		assert.Equal(t, domain.NoMatchCursor, job.MatchCursor)
		assert.Equal(t, domain.JobImageNotStarted, job.ImageStatus)
		assert.NotEmpty(t, job.IdempotencyToken)

		drafts := f.drafts(t, job.ID)
		require.Len(t, drafts, 3)
		for i, d := range drafts {
			assert.Equal(t, i+1, d.RowIndex)
			assert.Equal(t, domain.DraftPendingReview, d.Status)
			assert.Equal(t, domain.ImageUnmatched, d.ImageStatus)
			assert.Nil(t, d.AISuggestion)
		}
		assert.Equal(t, "Panadol", drafts[0].RawData.Get("brand"))

		stored, err := f.blobs.Get(ctx, job.SourceKey)
		require.NoError(t, err)
		assert.Equal(t, threeRowCSV, string(stored))
	})

	t.Run("same token returns the first job", func(t *testing.T) {
		f := newFixture(t)
		req := service.CreateImportRequest{
			IdempotencyToken: "tok-1",
			Filename:         "products.csv",
			Source:           []byte(threeRowCSV),
		}

		first, err := f.svc.CreateImport(ctx, req)
		require.NoError(t, err)
		second, err := f.svc.CreateImport(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 3, f.job(t, first.ID).Drafts.Total)

		byToken, err := f.svc.GetJobByToken(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, first.ID, byToken.ID)
	})

	t.Run("missing name column fails the job", func(t *testing.T) {
		f := newFixture(t)

		job, err := f.svc.CreateImport(ctx, service.CreateImportRequest{
			Filename: "products.csv",
			Source:   []byte("title,brand\nParacetamol,Panadol\n"),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrInvalidInput)
		assert.ErrorIs(t, err, ingest.ErrMissingColumn)
		require.NotNil(t, job)
		assert.Equal(t, domain.JobStatusFailed, job.Status)
		require.NotNil(t, job.ErrorMessage)

		stored := f.job(t, job.ID)
		assert.Equal(t, domain.JobStatusFailed, stored.Status)
		assert.Equal(t, 0, stored.Drafts.Total)
	})

	t.Run("reads the source from the blob store by key", func(t *testing.T) {
		f := newFixture(t)
		key := storage.SourceKey("tok-2", "products.csv")
		require.NoError(t, f.blobs.Put(ctx, key, []byte(threeRowCSV), "text/csv"))

		job, err := f.svc.CreateImport(ctx, service.CreateImportRequest{IdempotencyToken: "tok-2", SourceKey: key})

		require.NoError(t, err)
		assert.Equal(t, "source.csv", job.SourceFilename)
		assert.Equal(t, key, job.SourceKey)
		assert.Equal(t, 3, job.TotalRows)
	})

	t.Run("keeps the uploaded filename of a stored source", func(t *testing.T) {
		f := newFixture(t)
		key := storage.SourceKey("tok-3", "products.csv")
		require.NoError(t, f.blobs.Put(ctx, key, []byte(threeRowCSV), "text/csv"))

		job, err := f.svc.CreateImport(ctx, service.CreateImportRequest{
			IdempotencyToken: "tok-3",
			SourceKey:        key,
			Filename:         "products.csv",
		})

		require.NoError(t, err)
		assert.Equal(t, "products.csv", job.SourceFilename)
		assert.Equal(t, key, job.SourceKey)
	})

	t.Run("row index follows the source position", func(t *testing.T) {
		f := newFixture(t)
		job := f.createImport(t, "name\nfirst\n,\nthird\n", nil)

		drafts := f.drafts(t, job.ID)
		require.Len(t, drafts, 2)
		assert.Equal(t, 2, job.TotalRows)
		assert.Equal(t, 1, drafts[0].RowIndex)
		assert.Equal(t, 3, drafts[1].RowIndex)
	})

	t.Run("unknown source key is invalid input", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CreateImport(ctx, service.CreateImportRequest{SourceKey: "imports/none/source.csv"})

		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("rejects an archive that is not a zip", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CreateImport(ctx, service.CreateImportRequest{
			Filename: "products.csv",
			Source:   []byte(threeRowCSV),
			Archive:  []byte("not a zip"),
		})

		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("header only file completes immediately", func(t *testing.T) {
		f := newFixture(t)

		job := f.createImport(t, "name,brand\n", nil)

		assert.Equal(t, 0, job.TotalRows)
		assert.Equal(t, domain.JobStatusCompleted, job.Status)
		assert.NotNil(t, job.CompletedAt)
	})
}

func TestPipelineService_CancelJob(t *testing.T) {
	ctx := context.Background()

	t.Run("cancelled job rejects batches and reports remaining", func(t *testing.T) {
		f := newFixture(t)
		job := f.createImport(t, threeRowCSV, nil)

		cancelled, err := f.svc.CancelJob(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusCancelled, cancelled.Status)

		progress, err := f.svc.RunEnrichmentBatch(ctx, job.ID, 0)

		assert.ErrorIs(t, err, service.ErrJobNotActive)
		assert.Equal(t, 3, progress.Remaining)
		assert.Equal(t, 0, progress.Processed)
	})

	t.Run("cancelling twice is a no-op", func(t *testing.T) {
		f := newFixture(t)
		job := f.createImport(t, threeRowCSV, nil)

		_, err := f.svc.CancelJob(ctx, job.ID)
		require.NoError(t, err)
		again, err := f.svc.CancelJob(ctx, job.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusCancelled, again.Status)
	})

	t.Run("completed job cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)
		job := f.createImport(t, "name\n", nil)

		_, err := f.svc.CancelJob(ctx, job.ID)

		assert.ErrorIs(t, err, service.ErrJobNotActive)
	})

	t.Run("unknown job", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CancelJob(ctx, "missing")

		assert.ErrorIs(t, err, service.ErrJobNotFound)
	})
}

func TestPipelineService_PatchDraft(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, domain.ProductDraft) {
		f := newFixture(t)
		job := f.createImport(t, threeRowCSV, nil)
		return f, f.drafts(t, job.ID)[1]
	}

	t.Run("editing the suggestion marks the draft manually edited", func(t *testing.T) {
		f, draft := setup(t)
		name := "Vitamin C 1000mg Effervescent"
		confidence := 1.0

		patched, err := f.svc.PatchDraft(ctx, draft.ID, validator.DraftPatch{
			AISuggestion: &domain.Suggestion{RowIndex: 99, Name: &name, Confidence: &confidence},
		})

		require.NoError(t, err)
		assert.Equal(t, domain.DraftManuallyEdited, patched.Status)
		require.NotNil(t, patched.AISuggestion)
		assert.Equal(t, draft.RowIndex, patched.AISuggestion.RowIndex)

		details, err := f.svc.GetDraft(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DraftManuallyEdited, details.Status)
		assert.Equal(t, name, *details.AISuggestion.Name)
		assert.Equal(t, draft.JobID, details.Job.ID)
		assert.InDelta(t, 1.0, *details.AIConfidence, 0.0001)
	})

	t.Run("resetting an AI error draft hands it back to enrichment", func(t *testing.T) {
		f := newFixture(t)
		job := f.createImport(t, "name\nParacetamol 500mg\n", nil)
		f.gen.EXPECT().Generate(mock.Anything, mock.Anything).
			Return(`{"results":[{"rowIndex":1,"name":"Paracetamol"}]}`, nil).
			Times(2)
		_, err := f.svc.RunEnrichmentBatch(ctx, job.ID, 0)
		require.NoError(t, err)
		draft := f.drafts(t, job.ID)[0]
		require.Equal(t, domain.DraftAIError, draft.Status)
		require.Equal(t, 1, f.job(t, job.ID).FailedRows)

		pending := string(domain.DraftPendingReview)
		patched, err := f.svc.PatchDraft(ctx, draft.ID, validator.DraftPatch{Status: &pending})

		require.NoError(t, err)
		assert.Equal(t, domain.DraftPendingReview, patched.Status)
		assert.Empty(t, patched.Notes)
		reopened := f.job(t, job.ID)
		assert.Equal(t, 0, reopened.FailedRows)
		assert.Equal(t, domain.JobStatusProcessing, reopened.Status)

		f.gen.EXPECT().Generate(mock.Anything, mock.Anything).
			Return(`{"results":[{"rowIndex":1,"name":"Paracetamol","confidence":0.9}]}`, nil).
			Once()
		progress, err := f.svc.RunEnrichmentBatch(ctx, job.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, progress.Processed)

		final := f.job(t, job.ID)
		assert.Equal(t, 1, final.ProcessedRows)
		assert.Equal(t, 0, final.FailedRows)
		assert.LessOrEqual(t, final.ProcessedRows+final.FailedRows, final.TotalRows)
		assert.Equal(t, domain.JobStatusCompleted, final.Status)
	})

	t.Run("approving an AI error draft keeps it counted as failed", func(t *testing.T) {
		f := newFixture(t)
		job := f.createImport(t, "name\nParacetamol 500mg\n", nil)
		f.gen.EXPECT().Generate(mock.Anything, mock.Anything).
			Return(`{"results":[{"rowIndex":1,"name":"Paracetamol"}]}`, nil).
			Times(2)
		_, err := f.svc.RunEnrichmentBatch(ctx, job.ID, 0)
		require.NoError(t, err)
		draft := f.drafts(t, job.ID)[0]

		approved := string(domain.DraftApproved)
		_, err = f.svc.PatchDraft(ctx, draft.ID, validator.DraftPatch{Status: &approved})

		require.NoError(t, err)
		details := f.job(t, job.ID)
		assert.Equal(t, 1, details.FailedRows)
		assert.Equal(t, domain.JobStatusCompleted, details.Status)
	})

	t.Run("approved draft rejects further edits", func(t *testing.T) {
		f, draft := setup(t)
		approved := string(domain.DraftApproved)
		note := "checked"

		_, err := f.svc.PatchDraft(ctx, draft.ID, validator.DraftPatch{Status: &approved})
		require.NoError(t, err)
		_, err = f.svc.PatchDraft(ctx, draft.ID, validator.DraftPatch{Notes: &note})

		assert.ErrorIs(t, err, service.ErrDraftTerminal)
	})

	t.Run("invalid status", func(t *testing.T) {
		f, draft := setup(t)
		status := "AI_ERROR"

		_, err := f.svc.PatchDraft(ctx, draft.ID, validator.DraftPatch{Status: &status})

		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("empty patch", func(t *testing.T) {
		f, draft := setup(t)

		_, err := f.svc.PatchDraft(ctx, draft.ID, validator.DraftPatch{})

		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("unknown draft", func(t *testing.T) {
		f, _ := setup(t)
		note := "x"

		_, err := f.svc.PatchDraft(ctx, "missing", validator.DraftPatch{Notes: &note})

		assert.ErrorIs(t, err, service.ErrDraftNotFound)
	})
}

func TestPipelineService_RetryFailedEnrichment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	job := f.createImport(t, "name\nParacetamol 500mg\n", nil)

	f.gen.EXPECT().Generate(mock.Anything, mock.Anything).
		Return(`{"results":[{"rowIndex":1,"name":"Paracetamol"}]}`, nil).
		Times(2)

	progress, err := f.svc.RunEnrichmentBatch(ctx, job.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Failed)
	assert.Equal(t, 0, progress.Remaining)

	failed := f.job(t, job.ID)
	assert.Equal(t, 1, failed.FailedRows)
	assert.Equal(t, domain.JobStatusCompleted, failed.Status)
	draft := f.drafts(t, job.ID)[0]
	assert.Equal(t, domain.DraftAIError, draft.Status)
	assert.Contains(t, draft.Notes, "confidence is required")

	reset, err := f.svc.RetryFailedEnrichment(ctx, job.ID)

	require.NoError(t, err)
	assert.Equal(t, 1, reset)
	reopened := f.job(t, job.ID)
	assert.Equal(t, 0, reopened.FailedRows)
	assert.Equal(t, domain.JobStatusProcessing, reopened.Status)
	assert.Nil(t, reopened.CompletedAt)
	draft = f.drafts(t, job.ID)[0]
	assert.Equal(t, domain.DraftPendingReview, draft.Status)
	assert.Empty(t, draft.Notes)
	assert.Nil(t, draft.AISuggestion)

	again, err := f.svc.RetryFailedEnrichment(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again)
}

func TestPipelineService_AttachArchive(t *testing.T) {
	ctx := context.Background()

	t.Run("reopens a completed job", func(t *testing.T) {
		f := newFixture(t)
		job := f.createImport(t, "name\nParacetamol 500mg\n", nil)
		f.gen.EXPECT().Generate(mock.Anything, mock.Anything).
			Return(`{"results":[{"rowIndex":1,"confidence":0.8}]}`, nil).
			Once()
		_, err := f.svc.RunEnrichmentBatch(ctx, job.ID, 0)
		require.NoError(t, err)
		require.Equal(t, domain.JobStatusCompleted, f.job(t, job.ID).Status)

		zipData := buildZip(t, map[string][]byte{"paracetamol-500mg.png": encodePNG(t, 8, 8)})
		attached, err := f.svc.AttachArchive(ctx, job.ID, zipData, "")

		require.NoError(t, err)
		assert.True(t, attached.HasArchive())
		assert.Equal(t, domain.JobStatusProcessing, attached.Status)
		assert.Equal(t, domain.NoMatchCursor, attached.MatchCursor)
		assert.Equal(t, domain.JobImageNotStarted, attached.ImageStatus)
		assert.Nil(t, attached.CompletedAt)

		stored, err := f.blobs.Get(ctx, *attached.ArchiveKey)
		require.NoError(t, err)
		assert.Equal(t, zipData, stored)
	})

	t.Run("requires data or a key", func(t *testing.T) {
		f := newFixture(t)
		job := f.createImport(t, threeRowCSV, nil)

		_, err := f.svc.AttachArchive(ctx, job.ID, nil, "")

		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("cancelled job", func(t *testing.T) {
		f := newFixture(t)
		job := f.createImport(t, threeRowCSV, nil)
		_, err := f.svc.CancelJob(ctx, job.ID)
		require.NoError(t, err)

		_, err = f.svc.AttachArchive(ctx, job.ID, nil, "imports/x/images.zip")

		assert.True(t, errors.Is(err, service.ErrJobNotActive))
	})
}

func TestPipelineService_ListDrafts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	job := f.createImport(t, threeRowCSV, nil)

	page, err := f.svc.ListDrafts(ctx, job.ID, service.DraftQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)

	next, err := f.svc.ListDrafts(ctx, job.ID, service.DraftQuery{AfterRowIndex: page[1].RowIndex, Limit: 2})
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, 3, next[0].RowIndex)

	none, err := f.svc.ListDrafts(ctx, job.ID, service.DraftQuery{Statuses: []domain.DraftStatus{domain.DraftApproved}})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = f.svc.ListDrafts(ctx, "missing", service.DraftQuery{})
	assert.ErrorIs(t, err, service.ErrJobNotFound)
}
