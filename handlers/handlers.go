// Package handlers exposes the report CRUD and export endpoints. Every handler
// takes the store handle explicitly; storage failures become JSON error bodies
// here and never crash the process.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"bitbucket.org/intheforest/reports_backend/config"
	"bitbucket.org/intheforest/reports_backend/editor"
	"bitbucket.org/intheforest/reports_backend/generator"
	"bitbucket.org/intheforest/reports_backend/models"
	"bitbucket.org/intheforest/reports_backend/store"
	"bitbucket.org/intheforest/reports_backend/utils"
)

var tracer = otel.Tracer("reports-backend")

func ListReportsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()
		group := c.Query("group")
		reportType := c.Query("type")

		var (
			reports []models.Report
			err     error
		)
		if group != "" && reportType != "" {
			reports, err = s.ListByGroupType(c.Request.Context(), group, reportType)
		} else {
			reports, err = s.ListAll(c.Request.Context())
		}
		if err != nil {
			config.LogError(logger, "handlers.go", "ListReportsHandler", "list reports", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, ListReportsResponse{Reports: reports})
	}
}

func GetReportHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := fetchReport(c, s)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func ReportRowsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := fetchReport(c, s)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, RowsResponse{
			ReportId: report.Id,
			Rows:     editor.BuildRows(report),
		})
	}
}

func SaveReportHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		var report models.Report
		if err := c.ShouldBindJSON(&report); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		if report.Id != c.Param("id") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "report id does not match path"})
			return
		}
		if fields := utils.ValidateStruct(&report); fields != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
			return
		}

		stored, err := s.Upsert(c.Request.Context(), &report)
		if err != nil {
			payload, _ := utils.MarshalToJSON(&report)
			config.LogError(logger, "handlers.go", "SaveReportHandler", "upsert report", payload, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stored)
	}
}

func DeleteReportHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()
		if err := s.DeleteById(c.Request.Context(), c.Param("id")); err != nil {
			config.LogError(logger, "handlers.go", "DeleteReportHandler", "delete report", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func ExportHTMLHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := fetchReport(c, s)
		if !ok {
			return
		}

		ctx := utils.SetReportIdInContext(c.Request.Context(), report.Id)
		var span trace.Span
		_, span = tracer.Start(ctx, "generate-html-report")
		html := generator.GenerateHTMLReport(report)
		span.End()

		c.Header("Content-Disposition", `attachment; filename="`+generator.ExportFilename(report.Id)+`"`)
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	}
}

func ExportExcelHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()
		report, ok := fetchReport(c, s)
		if !ok {
			return
		}

		ctx := utils.SetReportIdInContext(c.Request.Context(), report.Id)
		var span trace.Span
		_, span = tracer.Start(ctx, "generate-xlsx-report")
		f, err := generator.GenerateExcelReport(report)
		span.End()
		if err != nil {
			config.LogError(logger, "handlers.go", "ExportExcelHandler", "generate workbook", report.Id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="`+generator.ExcelFilename(report.Id)+`"`)
		c.Status(http.StatusOK)
		if err := f.Write(c.Writer); err != nil {
			config.LogError(logger, "handlers.go", "ExportExcelHandler", "write workbook", report.Id, err)
		}
	}
}

// fetchReport resolves the :id path param. A missing record answers 404 with a
// JSON body; other storage errors answer 500. Returns ok=false when a response
// was already written.
func fetchReport(c *gin.Context, s *store.Store) (*models.Report, bool) {
	logger := config.GetLogger()
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report id is required"})
		return nil, false
	}

	report, err := s.GetById(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return nil, false
		}
		config.LogError(logger, "handlers.go", "fetchReport", "get report", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return report, true
}
