package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Paracetamol 500mg", "paracetamol500mg"},
		{"Vitamin C 1000MG", "vitaminc1000mg"},
		{"  ", ""},
		{"", ""},
		{"Ibuprofen-200 (Film Coated)", "ibuprofen200filmcoated"},
		{"Café Crème", "cafcrme"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonicalize(tt.input))
		})
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Paracetamol 500mg",
		"ÄÖÜ äöü 123",
		"already123canonical",
		"!!!",
		"日本語 text 42",
		"tab\tseparated\nlines",
	}

	for _, s := range inputs {
		once := Canonicalize(s)
		assert.Equal(t, once, Canonicalize(once), "input %q", s)
	}
}

func TestFileKey(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"paracetamol500mg.jpg", "paracetamol500mg"},
		{"images/Vitamin C 1000mg.PNG", "vitaminc1000mg"},
		{`folder\sub\Aspirin.webp`, "aspirin"},
		{"no-extension", "noextension"},
		{"archive.tar.gz", "archivetar"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, FileKey(tt.filename))
		})
	}
}
