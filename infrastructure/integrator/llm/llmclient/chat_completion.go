package llmclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/store-insights-api/internal/config"
	"github.com/vfg2006/store-insights-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrEmptyChoices = errors.New("resposta do modelo sem choices")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Chat envia as mensagens e devolve o conteúdo da primeira escolha.
// Erros de rede, 429 e 5xx são repetidos com backoff exponencial; os demais 4xx falham na hora.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    0.2,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", errors.Wrap(err, "erro ao serializar requisição do modelo")
	}

	ctx, cancel := context.WithTimeout(ctx, c.httpClient.Timeout+c.maxElapsedTime())
	defer cancel()

	var content string
	attempt := 0

	operation := func() error {
		attempt++

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(errors.Wrap(err, "erro ao criar a requisição"))
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			log.ForContext(ctx).WithError(err).Warnf("llm: tentativa %d falhou", attempt)
			return errors.Wrap(err, "erro ao executar a requisição")
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "erro ao ler a resposta")
		}

		if resp.StatusCode != http.StatusOK {
			statusErr := fmt.Errorf("requisição ao modelo falhou com status: %s", resp.Status)
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
				log.ForContext(ctx).Warnf("llm: tentativa %d recebeu status %d", attempt, resp.StatusCode)
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}

		var parsed chatResponse
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return backoff.Permanent(errors.Wrap(err, "erro ao decodificar a resposta"))
		}
		if len(parsed.Choices) == 0 {
			return backoff.Permanent(ErrEmptyChoices)
		}

		content = parsed.Choices[0].Message.Content
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(c.newBackOff(), ctx)); err != nil {
		return "", err
	}

	return content, nil
}

func (c *OpenAIClient) newBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialInterval
	bo.MaxElapsedTime = c.maxElapsedTime()
	return bo
}

// Em backoff, MaxElapsedTime zero significa repetir indefinidamente
func (c *OpenAIClient) maxElapsedTime() time.Duration {
	if c.maxElapsed <= 0 {
		return config.DefaultLLMMaxElapsed
	}
	return c.maxElapsed
}
