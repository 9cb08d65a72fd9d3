package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeSeed(t, dir, "orders.json", `[{"id":"o-1"},{"id":"o-2"}]`)
	writeSeed(t, dir, "feedbacks.json", `{"feedbacks":[{"id":"f-1"}]}`)
	writeSeed(t, dir, "campaigns.json", `{"campanhas":[]}`)
	writeSeed(t, dir, "sales.json", `[{"id":`)
	writeSeed(t, dir, "consumers.json", `null`)

	loader := &FileLoader{dir: dir}
	ctx := context.Background()

	tests := []struct {
		name        string
		collection  Collection
		expectedLen int
		expectError bool
	}{
		{name: "Lista JSON", collection: Orders, expectedLen: 2},
		{name: "Objeto com a lista sob a chave da coleção", collection: Feedbacks, expectedLen: 1},
		{name: "Objeto sem a chave da coleção", collection: Campaigns, expectError: true},
		{name: "JSON corrompido", collection: Sales, expectError: true},
		{name: "Arquivo ausente vira coleção vazia", collection: CampaignResults, expectedLen: 0},
		{name: "null vira coleção vazia", collection: Consumers, expectedLen: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := loader.Load(ctx, tt.collection)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Len(t, records, tt.expectedLen)
		})
	}
}

func TestFileLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&FileLoader{dir: t.TempDir()}).Load(ctx, Orders)

	assert.ErrorIs(t, err, context.Canceled)
}
