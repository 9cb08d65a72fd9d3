package handler

import (
	"net/http"

	"github.com/vfg2006/store-insights-api/internal/api/handler/router"
	"github.com/vfg2006/store-insights-api/internal/usecases/aggregating"
	"github.com/vfg2006/store-insights-api/internal/usecases/campaigning"
	"github.com/vfg2006/store-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/store-insights-api/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics(aggregator aggregating.Aggregator, profileLimit int) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/orders/stats",
			Method:  http.MethodGet,
			Handler: GetOrderStats(aggregator),
		},
		{
			Path:    "/v1/sales/series",
			Method:  http.MethodGet,
			Handler: GetRevenueSeries(aggregator),
		},
		{
			Path:    "/v1/customers/profiles",
			Method:  http.MethodGet,
			Handler: GetCustomerProfiles(aggregator, profileLimit),
		},
	}
}

func Campaigns(service campaigning.CampaignService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/campaigns",
			Method:  http.MethodGet,
			Handler: ListCampaigns(service),
		},
	}
}

func Insights(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/insights/campaigns",
			Method:  http.MethodGet,
			Handler: GetCampaignInsight(service),
		},
		{
			Path:    "/v1/insights/revenue",
			Method:  http.MethodGet,
			Handler: GetRevenueInsight(service),
		},
		{
			Path:    "/v1/insights/history",
			Method:  http.MethodGet,
			Handler: GetInsightHistory(service),
		},
		{
			Path:    "/v1/segments",
			Method:  http.MethodGet,
			Handler: GetSegments(service),
		},
	}
}

func Reports(exporter reporting.Exporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports/export",
			Method:  http.MethodGet,
			Handler: ExportReport(exporter),
		},
	}
}

func CronJobs(warmup WarmupTrigger) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(warmup),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(warmup),
		},
	}
}
