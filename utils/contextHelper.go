package utils

import (
	"context"

	"bitbucket.org/intheforest/reports_backend/appctx"
)

var (
	ContextKeyCorrelationId = appctx.ContextKeyCorrelationId
	ContextKeyReportId      = appctx.ContextKeyReportId
)

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}

func GetReportIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyReportId)
}

func SetReportIdInContext(ctx context.Context, reportId string) context.Context {
	return appctx.Set(ctx, ContextKeyReportId, reportId)
}
