package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{name: "Data válida", input: "2024-05-10", expected: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)},
		{name: "Data vazia vira data zero", input: "", expected: time.Time{}},
		{name: "Formato inválido", input: "10/05/2024", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := ParseDate(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(*date))
		})
	}
}

func TestEndOfDay(t *testing.T) {
	end := EndOfDay(time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 5, 10, 23, 59, 59, 999999999, time.UTC), end)
}
