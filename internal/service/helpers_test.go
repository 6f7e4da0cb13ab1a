package service_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"catalog-import/internal/domain"
	"catalog-import/internal/enrichment"
	"catalog-import/internal/imageproc"
	"catalog-import/internal/matcher"
	"catalog-import/internal/mocks"
	"catalog-import/internal/repository"
	"catalog-import/internal/service"
	"catalog-import/internal/storage"
	"catalog-import/internal/validator"
)

type staticMasters struct {
	lists domain.MasterLists
}

func (m staticMasters) Load(ctx context.Context) (domain.MasterLists, error) {
	return m.lists, nil
}

func testMasters() domain.MasterLists {
	return domain.MasterLists{
		Generics: []domain.MasterRecord{
			{ID: "g-1", Name: "Paracetamol", Aliases: []string{"Acetaminophen"}},
			{ID: "g-2", Name: "Ascorbic Acid", Aliases: []string{"Vitamin C"}},
		},
		Manufacturers: []domain.MasterRecord{{ID: "m-1", Name: "GSK"}},
		Categories:    []domain.MasterRecord{{ID: "c-1", Name: "Analgesics"}},
	}
}

// failingDrafts fails the n-th UpdateDraft call once.
type failingDrafts struct {
	*repository.MemoryStore
	failOn int

	mu    sync.Mutex
	calls int
}

func (f *failingDrafts) UpdateDraft(ctx context.Context, id string, update domain.DraftUpdate) error {
	f.mu.Lock()
	f.calls++
	fail := f.calls == f.failOn
	f.mu.Unlock()
	if fail {
		return errors.New("write conflict")
	}
	return f.MemoryStore.UpdateDraft(ctx, id, update)
}

// hookedDrafts runs hook once, right before the first UpdateDraft call.
type hookedDrafts struct {
	*repository.MemoryStore
	hook func()
	once sync.Once
}

func (h *hookedDrafts) UpdateDraft(ctx context.Context, id string, update domain.DraftUpdate) error {
	h.once.Do(func() {
		if h.hook != nil {
			h.hook()
		}
	})
	return h.MemoryStore.UpdateDraft(ctx, id, update)
}

// failingPuts rejects writes to keys with the given prefix.
type failingPuts struct {
	*storage.MemoryStore
	prefix string
}

func (f *failingPuts) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if strings.HasPrefix(key, f.prefix) {
		return errors.New("service unavailable")
	}
	return f.MemoryStore.Put(ctx, key, data, contentType)
}

type fixture struct {
	store *repository.MemoryStore
	blobs *storage.MemoryStore
	gen   *mocks.MockGenerator
	svc   *service.PipelineService
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	opts   service.Options
	drafts func(*repository.MemoryStore) repository.DraftRepository
	blobs  func(*storage.MemoryStore) storage.BlobStore
}

func withOptions(opts service.Options) fixtureOption {
	return func(c *fixtureConfig) { c.opts = opts }
}

func withDrafts(wrap func(*repository.MemoryStore) repository.DraftRepository) fixtureOption {
	return func(c *fixtureConfig) { c.drafts = wrap }
}

func withBlobs(wrap func(*storage.MemoryStore) storage.BlobStore) fixtureOption {
	return func(c *fixtureConfig) { c.blobs = wrap }
}

func newFixture(t *testing.T, options ...fixtureOption) *fixture {
	t.Helper()
	cfg := fixtureConfig{opts: service.DefaultOptions()}
	for _, o := range options {
		o(&cfg)
	}

	store := repository.NewMemoryStore()
	blobs := storage.NewMemoryStore("")
	gen := mocks.NewMockGenerator(t)

	var drafts repository.DraftRepository = store
	if cfg.drafts != nil {
		drafts = cfg.drafts(store)
	}
	var blobStore storage.BlobStore = blobs
	if cfg.blobs != nil {
		blobStore = cfg.blobs(blobs)
	}

	v := validator.NewValidator(cfg.opts.MaxBatchSize)
	svc := service.NewPipelineService(
		store,
		drafts,
		blobStore,
		staticMasters{lists: testMasters()},
		enrichment.NewClient(gen, v),
		matcher.New(matcher.DefaultThreshold),
		imageproc.NewTransformer(0.35),
		v,
		cfg.opts,
	)
	return &fixture{store: store, blobs: blobs, gen: gen, svc: svc}
}

func (f *fixture) createImport(t *testing.T, csv string, archive []byte) *domain.ImportJob {
	t.Helper()
	job, err := f.svc.CreateImport(context.Background(), service.CreateImportRequest{
		Filename:  "products.csv",
		Source:    []byte(csv),
		Archive:   archive,
		RequestID: "req-test",
	})
	require.NoError(t, err)
	require.NotNil(t, job)
	return job
}

func (f *fixture) job(t *testing.T, id string) *service.JobDetails {
	t.Helper()
	details, err := f.svc.GetJob(context.Background(), id)
	require.NoError(t, err)
	return details
}

func (f *fixture) drafts(t *testing.T, jobID string) []domain.ProductDraft {
	t.Helper()
	drafts, err := f.svc.ListDrafts(context.Background(), jobID, service.DraftQuery{})
	require.NoError(t, err)
	return drafts
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func buildZip(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

const threeRowCSV = "name,brand\nParacetamol 500mg,Panadol\nVitamin C 1000mg,Redoxon\nUnknown Widget,Acme\n"

const threeRowResponse = `{"results":[` +
	`{"rowIndex":1,"name":"Paracetamol 500mg","genericId":"g-1","confidence":0.95},` +
	`{"rowIndex":2,"name":"Vitamin C 1000mg","genericName":"Vitamin C","confidence":0.9},` +
	`{"rowIndex":3,"name":"Unknown Widget","confidence":0.4}]}`
