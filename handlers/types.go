package handlers

import (
	"bitbucket.org/intheforest/reports_backend/editor"
	"bitbucket.org/intheforest/reports_backend/models"
)

type ListReportsResponse struct {
	Reports []models.Report `json:"reports"`
}

// RowsResponse is the flattened grid model the editor front end binds to.
type RowsResponse struct {
	ReportId string       `json:"reportId"`
	Rows     []editor.Row `json:"rows"`
}
