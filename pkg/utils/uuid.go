package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idSize     = 12
)

// GenerateID gera IDs alfanuméricos para snapshots de insights e nomes de relatórios
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, idSize)
}
