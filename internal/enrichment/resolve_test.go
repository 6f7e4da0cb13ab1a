package enrichment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-import/internal/domain"
	"catalog-import/internal/enrichment"
	"catalog-import/internal/matcher"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestResolver_Resolve(t *testing.T) {
	r := enrichment.NewResolver(matcher.New(matcher.DefaultThreshold), testMasters())

	t.Run("known id keeps confidence and fills name", func(t *testing.T) {
		s := &domain.Suggestion{GenericID: strPtr("g-1"), GenericConfidence: floatPtr(0.9)}

		assert.True(t, r.Resolve(s))
		assert.Equal(t, "Paracetamol", *s.GenericName)
		assert.Equal(t, 0.9, *s.GenericConfidence)
	})

	t.Run("unknown id falls back to fuzzy name match", func(t *testing.T) {
		s := &domain.Suggestion{GenericID: strPtr("g-404"), GenericName: strPtr("Vitamin-C"), GenericConfidence: floatPtr(0.4)}

		assert.True(t, r.Resolve(s))
		require.NotNil(t, s.GenericID)
		assert.Equal(t, "g-2", *s.GenericID)
		assert.Equal(t, "Ascorbic Acid", *s.GenericName)
		assert.Equal(t, 1.0, *s.GenericConfidence)
	})

	t.Run("name without id resolves through aliases", func(t *testing.T) {
		s := &domain.Suggestion{ManufacturerName: strPtr("gsk")}

		r.Resolve(s)
		require.NotNil(t, s.ManufacturerID)
		assert.Equal(t, "m-1", *s.ManufacturerID)
	})

	t.Run("miss clears id and confidence but keeps name", func(t *testing.T) {
		s := &domain.Suggestion{GenericID: strPtr("g-404"), GenericName: strPtr("Ibuprofen"), GenericConfidence: floatPtr(0.8)}

		assert.False(t, r.Resolve(s))
		assert.Nil(t, s.GenericID)
		assert.Nil(t, s.GenericConfidence)
		assert.Equal(t, "Ibuprofen", *s.GenericName)
	})

	t.Run("empty suggestion does not resolve", func(t *testing.T) {
		assert.False(t, r.Resolve(&domain.Suggestion{}))
		assert.False(t, r.Resolve(nil))
	})
}
