package service

import (
	"context"

	"frappeinsight/models"
)

// Reasoner is the narrow surface of the reasoning service the pipeline
// depends on: prompt in, structured shape out. The concrete inference
// backend is swappable without touching pipeline logic.
type Reasoner interface {
	SelectDocTypes(ctx context.Context, userQuery string, allDocTypes []string, promptContext string) ([]string, error)
	GenerateQueryConfig(ctx context.Context, userQuery string, schemas []models.DocType, promptContext string) (*models.QueryConfig, error)
	GenerateInsight(ctx context.Context, userQuery string, schemas []models.DocType, rows []map[string]interface{}, promptContext string) (*models.InsightResponse, error)
}

// DataGateway is the data access surface to the external ERP.
type DataGateway interface {
	ListDocTypes(ctx context.Context, cfg *models.FrappeConfig) ([]string, error)
	FetchDocTypeSchema(ctx context.Context, cfg *models.FrappeConfig, name string) (*models.DocType, error)
	ExecuteQuery(ctx context.Context, cfg *models.FrappeConfig, doctype string, fields []string, filters map[string]interface{}, limit int) ([]map[string]interface{}, error)
	CheckConnection(ctx context.Context, cfg *models.FrappeConfig) bool
}
