// Package reporting exporta as métricas do painel em uma planilha XLSX
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/vfg2006/store-insights-api/internal/domain"
	"github.com/vfg2006/store-insights-api/internal/usecases/aggregating"
	"github.com/vfg2006/store-insights-api/internal/usecases/campaigning"
	"github.com/vfg2006/store-insights-api/pkg/log"
	"github.com/vfg2006/store-insights-api/pkg/utils"
)

const (
	SheetSummary   = "Resumo"
	SheetRevenue   = "Receita"
	SheetCampaigns = "Campanhas"
	SheetCustomers = "Clientes"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ExportFilters struct {
	Range  *domain.DateRange
	Period domain.Period
}

type Report struct {
	FileName string
	Content  []byte
}

type Exporter interface {
	Export(ctx context.Context, filters ExportFilters) (*Report, error)
}

type Service struct {
	aggregator   aggregating.Aggregator
	campaigns    campaigning.CampaignService
	profileLimit int
	now          func() time.Time
}

func NewService(aggregator aggregating.Aggregator, campaigns campaigning.CampaignService, profileLimit int) *Service {
	return &Service{
		aggregator:   aggregator,
		campaigns:    campaigns,
		profileLimit: profileLimit,
		now:          time.Now,
	}
}

// Export monta a planilha. Sem intervalo, a série de receita cobre os últimos 30 dias.
func (s *Service) Export(ctx context.Context, filters ExportFilters) (*Report, error) {
	period := filters.Period
	if period == "" {
		period = domain.PeriodDaily
	}

	seriesRange := aggregating.DefaultSeriesRange(s.now())
	if filters.Range != nil {
		seriesRange = *filters.Range
	}

	series, err := s.aggregator.RevenueSeries(ctx, period, seriesRange)
	if err != nil {
		return nil, fmt.Errorf("erro ao calcular série de receita: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.ForContext(ctx).WithError(err).Warn("relatório: erro ao fechar planilha")
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("erro ao renomear aba: %w", err)
	}
	for _, sheet := range []string{SheetRevenue, SheetCampaigns, SheetCustomers} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("erro ao criar aba %s: %w", sheet, err)
		}
	}

	writers := []func(*excelize.File) error{
		func(f *excelize.File) error { return writeSummary(f, s.aggregator.OrderStats(ctx, filters.Range)) },
		func(f *excelize.File) error { return writeRevenue(f, series) },
		func(f *excelize.File) error { return writeCampaigns(f, campaigning.Summarize(s.campaigns.ListCampaigns(ctx))) },
		func(f *excelize.File) error { return writeCustomers(f, s.aggregator.CustomerProfiles(ctx, s.profileLimit)) },
	}
	for _, write := range writers {
		if err := write(f); err != nil {
			return nil, err
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar planilha: %w", err)
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar nome do arquivo: %w", err)
	}

	return &Report{
		FileName: fmt.Sprintf("relatorio-%s.xlsx", id),
		Content:  buffer.Bytes(),
	}, nil
}

// Valores monetários saem em reais, não em centavos
func toCurrency(minorUnits int64) float64 {
	return float64(minorUnits) / 100
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("erro ao escrever linha %d da aba %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, stats domain.OrderStats) error {
	rows := [][]any{
		{"Métrica", "Valor"},
		{"Pedidos", stats.Count},
		{"Pedidos (período anterior)", stats.PreviousCount},
		{"Variação de pedidos (%)", stats.CountVariation},
		{"Receita entregue (R$)", toCurrency(stats.Revenue)},
		{"Receita entregue anterior (R$)", toCurrency(stats.PreviousRevenue)},
		{"Variação de receita (%)", stats.RevenueVariation},
		{"Taxa de cancelamento", stats.CancellationRate},
		{"Ticket médio (R$)", toCurrency(stats.AverageTicket)},
	}
	if stats.Range != nil {
		rows = append(rows,
			[]any{"Início", stats.Range.Start.Format(utils.DateLayout)},
			[]any{"Fim", stats.Range.End.Format(utils.DateLayout)},
		)
	}
	return writeRows(f, SheetSummary, rows)
}

func writeRevenue(f *excelize.File, series []domain.SalesPoint) error {
	rows := [][]any{{"Período", "Rótulo", "Receita (R$)"}}
	for _, point := range series {
		rows = append(rows, []any{point.Period, point.Label, toCurrency(point.Total)})
	}
	return writeRows(f, SheetRevenue, rows)
}

func writeCampaigns(f *excelize.File, summaries []domain.CampaignSummary) error {
	rows := [][]any{{"Campanha", "Público", "Status", "Enviadas", "Sucesso", "Erros", "Conversão", "Pedidos entregues", "Receita (R$)"}}
	for _, summary := range summaries {
		rows = append(rows, []any{
			summary.CampaignID,
			summary.Targeting,
			summary.Status,
			summary.TotalSent,
			summary.Success,
			summary.Errors,
			summary.ConversionRate,
			summary.OrdersDelivered,
			toCurrency(summary.TotalOrderValue),
		})
	}
	return writeRows(f, SheetCampaigns, rows)
}

func writeCustomers(f *excelize.File, profiles []domain.CustomerFeedbackProfile) error {
	rows := [][]any{{"Cliente", "Nome", "Feedbacks", "Nota média", "Último feedback", "Categoria principal"}}
	for _, profile := range profiles {
		lastFeedback := ""
		if profile.LastFeedbackAt != nil {
			lastFeedback = profile.LastFeedbackAt.Format(utils.DateLayout)
		}
		topCategory := ""
		if len(profile.TopCategories) > 0 {
			topCategory = profile.TopCategories[0].Category
		}

		rows = append(rows, []any{
			profile.StoreConsumerID,
			profile.Name,
			profile.TotalFeedbacks,
			profile.AverageRating,
			lastFeedback,
			topCategory,
		})
	}
	return writeRows(f, SheetCustomers, rows)
}
