// Package seed lê os snapshots JSON usados como fonte de dados do dashboard
package seed

import (
	"context"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/store-insights-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Collection string

const (
	Orders          Collection = "orders"
	Feedbacks       Collection = "feedbacks"
	Campaigns       Collection = "campaigns"
	CampaignResults Collection = "campaign_results"
	Consumers       Collection = "consumers"
	Sales           Collection = "sales"
)

//go:generate mockgen -source=loader.go -destination=mocks/loader.go -package=mocks

// Loader carrega os registros brutos de uma coleção, sem nenhuma validação de esquema
type Loader interface {
	Load(ctx context.Context, collection Collection) ([]any, error)
}

type FileLoader struct {
	dir string
}

func NewFileLoader(cfg *config.Config) Loader {
	return &FileLoader{
		dir: cfg.Data.Dir,
	}
}

// Load lê <dir>/<coleção>.json. Arquivo ausente é tratado como coleção vazia.
// O arquivo pode conter uma lista ou um objeto com a lista sob a chave da coleção.
func (l *FileLoader) Load(ctx context.Context, collection Collection) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(l.dir, string(collection)+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logrus.WithFields(logrus.Fields{
				"collection": collection,
				"path":       path,
			}).Warn("seed: arquivo não encontrado, usando coleção vazia")
			return []any{}, nil
		}
		return nil, errors.Wrapf(err, "seed: erro ao ler %s", path)
	}

	var records []any
	if err := json.Unmarshal(data, &records); err == nil {
		if records == nil {
			return []any{}, nil
		}
		return records, nil
	}

	var wrapped map[string]any
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, errors.Wrapf(err, "seed: JSON inválido em %s", path)
	}

	list, ok := wrapped[string(collection)].([]any)
	if !ok {
		return nil, errors.Errorf("seed: %s não contém uma lista de %s", path, collection)
	}

	return list, nil
}
