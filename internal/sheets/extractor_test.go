package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSheetID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "full edit URL",
			input: "https://docs.google.com/spreadsheets/d/1AbC-dEf_123/edit#gid=0",
			want:  "1AbC-dEf_123",
		},
		{
			name:  "export URL",
			input: "https://docs.google.com/spreadsheets/d/xyz789/export?format=csv",
			want:  "xyz789",
		},
		{
			name:  "bare ID passes through",
			input: "1AbC-dEf_123",
			want:  "1AbC-dEf_123",
		},
		{
			name:  "bare ID with whitespace",
			input: "  1AbC-dEf_123  ",
			want:  "1AbC-dEf_123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSheetID(tt.input))
		})
	}
}

func TestExtractSheetID_Idempotent(t *testing.T) {
	id := ExtractSheetID("https://docs.google.com/spreadsheets/d/1AbC-dEf_123/edit")
	assert.Equal(t, id, ExtractSheetID(id))
}
