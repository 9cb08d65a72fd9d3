package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gowebpki/jcs"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	CampaignInsightPrefix = "insights:campaign:"
	SegmentsPrefix        = "insights:segments:"
)

// ContentHash serializa o valor em JSON canônico (RFC 8785) e devolve o sha256 em hexadecimal
func ContentHash(value any) (string, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar conteúdo da chave")
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", errors.Wrap(err, "erro ao canonicalizar conteúdo da chave")
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Key monta a chave prefixada pelo tipo de conteúdo
func Key(prefix string, value any) (string, error) {
	hash, err := ContentHash(value)
	if err != nil {
		return "", err
	}
	return prefix + hash, nil
}
