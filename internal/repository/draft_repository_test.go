package repository_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-import/internal/domain"
	"catalog-import/internal/repository"
)

func TestPostgresDraftRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := SetupTestDB(t)
	defer testDB.Cleanup(t)

	jobs := repository.NewPostgresJobRepository(testDB.Pool)
	repo := repository.NewPostgresDraftRepository(testDB.Pool)
	ctx := context.Background()

	setupJob := func(t *testing.T, names ...string) []domain.ProductDraft {
		t.Helper()
		testDB.TruncateTables(t)
		job := newTestJob(uuid.New().String())
		require.NoError(t, jobs.CreateImportJob(ctx, job))
		drafts := newTestDrafts(job.ID, names...)
		require.NoError(t, repo.CreateDrafts(ctx, drafts))
		return drafts
	}

	t.Run("create and get draft", func(t *testing.T) {
		drafts := setupJob(t, "paracetamol 500mg")

		got, err := repo.GetDraft(ctx, drafts[0].ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 1, got.RowIndex)
		assert.Equal(t, "paracetamol 500mg", got.RawData.Name)
		assert.Equal(t, domain.DraftPendingReview, got.Status)
		assert.Equal(t, domain.ImageUnmatched, got.ImageStatus)
		assert.Nil(t, got.AISuggestion)
	})

	t.Run("get missing draft returns nil", func(t *testing.T) {
		setupJob(t)

		got, err := repo.GetDraft(ctx, uuid.New().String())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("create drafts in several chunks", func(t *testing.T) {
		names := make([]string, 2500)
		for i := range names {
			names[i] = fmt.Sprintf("product %d", i)
		}
		drafts := setupJob(t, names...)

		n, err := repo.CountDrafts(ctx, drafts[0].JobID, domain.DraftFilter{})
		require.NoError(t, err)
		assert.Equal(t, 2500, n)
	})

	t.Run("find filters and orders by row index", func(t *testing.T) {
		drafts := setupJob(t, "a", "b", "c", "d")
		jobID := drafts[0].JobID

		matched := domain.ImageMatched
		filename := "b.jpg"
		require.NoError(t, repo.UpdateDraft(ctx, drafts[1].ID, domain.DraftUpdate{ImageStatus: &matched, ImageRawFilename: &filename}))

		cursor := 1
		got, err := repo.FindDrafts(ctx, jobID, domain.DraftFilter{
			Statuses:      domain.ActiveDraftStatuses,
			ImageStatuses: []domain.ImageStatus{domain.ImageUnmatched},
			AfterRowIndex: &cursor,
		}, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 3, got[0].RowIndex)
		assert.Equal(t, 4, got[1].RowIndex)

		limited, err := repo.FindDrafts(ctx, jobID, domain.DraftFilter{}, 1)
		require.NoError(t, err)
		require.Len(t, limited, 1)
		assert.Equal(t, 1, limited[0].RowIndex)
	})

	t.Run("suggestion round trip keeps unknown fields", func(t *testing.T) {
		drafts := setupJob(t, "a", "b")

		name := "Paracetamol 500mg Tablet"
		confidence := 0.92
		suggestion := &domain.Suggestion{
			RowIndex:   1,
			Name:       &name,
			Confidence: &confidence,
			Extra:      map[string]json.RawMessage{"barcode": json.RawMessage(`"8901234"`)},
		}
		require.NoError(t, repo.UpdateDraft(ctx, drafts[0].ID, domain.DraftUpdate{AISuggestion: suggestion, AIConfidence: &confidence}))

		got, err := repo.GetDraft(ctx, drafts[0].ID)
		require.NoError(t, err)
		require.NotNil(t, got.AISuggestion)
		assert.Equal(t, name, *got.AISuggestion.Name)
		assert.InDelta(t, confidence, *got.AIConfidence, 1e-9)
		assert.JSONEq(t, `"8901234"`, string(got.AISuggestion.Extra["barcode"]))

		notEnriched := false
		pending, err := repo.FindDrafts(ctx, drafts[0].JobID, domain.DraftFilter{Enriched: &notEnriched}, 10)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, drafts[1].ID, pending[0].ID)
	})

	t.Run("clear flags reset columns", func(t *testing.T) {
		drafts := setupJob(t, "a")

		name := "A"
		confidence := 0.5
		filename := "a.jpg"
		require.NoError(t, repo.UpdateDraft(ctx, drafts[0].ID, domain.DraftUpdate{
			AISuggestion:     &domain.Suggestion{RowIndex: 1, Name: &name, Confidence: &confidence},
			AIConfidence:     &confidence,
			ImageRawFilename: &filename,
		}))
		require.NoError(t, repo.UpdateDraft(ctx, drafts[0].ID, domain.DraftUpdate{ClearAISuggestion: true, ClearImageFilename: true}))

		got, err := repo.GetDraft(ctx, drafts[0].ID)
		require.NoError(t, err)
		assert.Nil(t, got.AISuggestion)
		assert.Nil(t, got.AIConfidence)
		assert.Nil(t, got.ImageRawFilename)
	})

	t.Run("update missing draft fails", func(t *testing.T) {
		setupJob(t)

		notes := "x"
		err := repo.UpdateDraft(ctx, uuid.New().String(), domain.DraftUpdate{Notes: &notes})
		assert.Error(t, err)
	})

	t.Run("count by status", func(t *testing.T) {
		drafts := setupJob(t, "a", "b", "c")

		failed := domain.DraftAIError
		require.NoError(t, repo.UpdateDraft(ctx, drafts[2].ID, domain.DraftUpdate{Status: &failed}))

		counts, err := repo.CountByStatus(ctx, drafts[0].JobID)
		require.NoError(t, err)
		assert.Equal(t, 3, counts.Total)
		assert.Equal(t, 2, counts.ByStatus[domain.DraftPendingReview])
		assert.Equal(t, 1, counts.ByStatus[domain.DraftAIError])
		assert.Equal(t, 3, counts.ByImageStatus[domain.ImageUnmatched])
	})

	t.Run("stream by job", func(t *testing.T) {
		drafts := setupJob(t, "a", "b", "c")

		var rows []int
		err := repo.StreamByJob(ctx, drafts[0].JobID, domain.DraftFilter{}, func(d domain.ProductDraft) error {
			rows = append(rows, d.RowIndex)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, rows)
	})
}
