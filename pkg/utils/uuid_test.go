package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Za-z0-9]{12}$`)
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		id, err := GenerateID()
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "ID repetido: %s", id)
		seen[id] = true
	}
}
