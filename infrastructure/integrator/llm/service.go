package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/store-insights-api/infrastructure/integrator/llm/llmclient"
	"github.com/vfg2006/store-insights-api/internal/config"
	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/pkg/log"
	"github.com/vfg2006/store-insights-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/generator.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrDisabled        = errors.New("geração por LLM desabilitada")
	ErrEmptyResponse   = errors.New("modelo retornou resposta vazia")
	ErrInvalidResponse = errors.New("modelo retornou resposta em formato inválido")
)

type Generator interface {
	GenerateCampaignInsight(ctx context.Context, summaries []domain.CampaignSummary) (*domain.Insight, error)
	GenerateSegments(ctx context.Context, profiles []domain.CustomerFeedbackProfile) ([]domain.Segment, error)
}

type LLMService struct {
	cfg    *config.Config
	Client llmclient.Client
}

func New(cfg *config.Config, client llmclient.Client) Generator {
	return &LLMService{
		cfg:    cfg,
		Client: client,
	}
}

const systemPrompt = "Você é um analista de CRM de uma loja. Responda apenas com JSON válido, em português do Brasil."

const campaignPrompt = `Analise os resumos de campanhas abaixo (valores monetários em centavos, taxas entre 0 e 1) ` +
	`e devolva o insight mais relevante no formato ` +
	`{"id":"","title":"","metric":"","summary":"","recommendation":"","evidence":"","severity":"low|medium|high"}.

%s`

const segmentsPrompt = `Agrupe os perfis de clientes abaixo em até 3 segmentos acionáveis e devolva ` +
	`{"segments":[{"id":"","name":"","description":"","coverage":"","signals":[],"actions":[],"priority":"high|medium","customerIds":[]}]}.

%s`

func (s *LLMService) GenerateCampaignInsight(ctx context.Context, summaries []domain.CampaignSummary) (*domain.Insight, error) {
	content, err := s.chat(ctx, campaignPrompt, summaries)
	if err != nil {
		return nil, err
	}

	var insight domain.Insight
	if err := json.Unmarshal([]byte(content), &insight); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if strings.TrimSpace(insight.Title) == "" || strings.TrimSpace(insight.Summary) == "" {
		return nil, ErrInvalidResponse
	}

	switch insight.Severity {
	case domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh:
	default:
		insight.Severity = domain.SeverityMedium
	}
	if insight.ID == "" {
		insight.ID = "llm-insight"
	}
	insight.Score = 0

	return &insight, nil
}

func (s *LLMService) GenerateSegments(ctx context.Context, profiles []domain.CustomerFeedbackProfile) ([]domain.Segment, error) {
	content, err := s.chat(ctx, segmentsPrompt, profiles)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Segments []domain.Segment `json:"segments"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	segments := make([]domain.Segment, 0, len(parsed.Segments))
	for _, segment := range parsed.Segments {
		if strings.TrimSpace(segment.Name) == "" {
			continue
		}
		if segment.Priority != domain.SegmentPriorityHigh {
			segment.Priority = domain.SegmentPriorityMedium
		}
		segments = append(segments, segment)
	}

	if len(segments) == 0 {
		return nil, ErrEmptyResponse
	}

	return segments, nil
}

func (s *LLMService) chat(ctx context.Context, prompt string, input any) (string, error) {
	if !s.cfg.LLM.Enabled || s.Client == nil {
		return "", ErrDisabled
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar dados para o modelo: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.LLMDeadline())
	defer cancel()

	content, err := s.Client.Chat(ctx, []llmclient.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(prompt, payload)},
	})
	if err != nil {
		return "", fmt.Errorf("erro ao chamar o modelo: %w", err)
	}

	content = stripCodeFence(content)
	if content == "" {
		return "", ErrEmptyResponse
	}

	log.ForContext(ctx).Debugf("llm: resposta recebida\n%s", utils.PrettyJson([]byte(content)))

	return content, nil
}

// Alguns modelos devolvem o JSON dentro de um bloco ```json
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	content = strings.TrimPrefix(content, "json")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
