package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMissing(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"NA", true},
		{"N/A", true},
		{"nan", true},
		{"NULL", true},
		{"#N/A", true},
		{"<NA>", true},
		{"None", true},
		{" NA", false},
		{"na", false},
		{"0", false},
		{"Kabul", false},
		{" ", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMissing(tt.in))
		})
	}
}

func TestParseCell(t *testing.T) {
	assert.Equal(t, Null(), ParseCell("NaN"))
	assert.Equal(t, Null(), ParseCell(""))
	assert.Equal(t, Text("12"), ParseCell("12"))
	assert.True(t, ParseCell("Herat").Valid)
}
