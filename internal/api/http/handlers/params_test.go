package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	valid := []struct {
		name string
		raw  any
		want int64
	}{
		{"json number", float64(42), 42},
		{"numeric string", "42", 42},
		{"padded string", " 42 ", 42},
		{"json.Number", json.Number("42"), 42},
	}
	for _, tt := range valid {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseID(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}

	invalid := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"zero", float64(0)},
		{"negative", float64(-1)},
		{"fractional", 1.5},
		{"non numeric string", "abc"},
		{"empty string", ""},
		{"bool", true},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseID(tt.raw)
			assert.Error(t, err)
		})
	}
}
