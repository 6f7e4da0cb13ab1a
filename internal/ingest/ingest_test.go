package ingest_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"catalog-import/internal/ingest"
)

func TestParseCSV(t *testing.T) {
	input := "Name,Manufacturer,Price\n" +
		"paracetamol 500mg,Acme,12.50\n" +
		"vitamin c 1000mg,,\n" +
		"unknown xyz,Other,3\n"

	rows, err := ingest.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "paracetamol 500mg", rows[0].Name)
	assert.Equal(t, "Acme", rows[0].Get("manufacturer"))
	assert.Equal(t, "12.50", rows[0].Columns["price"])
	assert.Equal(t, "paracetamol 500mg", rows[0].Columns["name"])
	assert.Equal(t, "", rows[1].Get("manufacturer"))
	assert.Equal(t, "unknown xyz", rows[2].Name)
}

func TestParseCSV_HeaderVariants(t *testing.T) {
	input := "\ufeff NAME ,Dosage Form\nibuprofen,tablet\n"

	rows, err := ingest.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ibuprofen", rows[0].Name)
	assert.Equal(t, "tablet", rows[0].Get("Dosage Form"))
}

func TestParseCSV_RaggedAndBlankRows(t *testing.T) {
	input := "name,brand\nshort\n,\nlong,b,extra\n"

	rows, err := ingest.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "short", rows[0].Name)
	assert.Equal(t, "", rows[0].Columns["brand"])
	assert.Equal(t, "b", rows[1].Columns["brand"])
}

func TestParseCSV_IndexKeepsSourcePosition(t *testing.T) {
	input := "name,brand\nfirst,a\n,\nthird,c\n"

	rows, err := ingest.ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, "third", rows[1].Name)
	assert.Equal(t, 3, rows[1].Index)
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"missing name column", "title,price\nfoo,1\n", ingest.ErrMissingColumn},
		{"empty file", "", ingest.ErrEmptyFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ingest.ParseCSV(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("malformed quotes", func(t *testing.T) {
		_, err := ingest.ParseCSV(strings.NewReader("name\n\"unterminated\n"))
		assert.Error(t, err)
	})
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Name", "Category"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"paracetamol 500mg", "Analgesics"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"vitamin c 1000mg"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := ingest.ParseXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "paracetamol 500mg", rows[0].Name)
	assert.Equal(t, "Analgesics", rows[0].Get("category"))
	assert.Equal(t, "vitamin c 1000mg", rows[1].Name)
	assert.Equal(t, 1, rows[0].Index)
	assert.Equal(t, 3, rows[1].Index)
}

func TestParse_ByExtension(t *testing.T) {
	rows, err := ingest.Parse("Products.CSV", strings.NewReader("name\na\n"))
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = ingest.Parse("products.pdf", strings.NewReader("name\na\n"))
	assert.ErrorIs(t, err, ingest.ErrUnsupportedFormat)
}
