package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"bitbucket.org/intheforest/reports_backend/config"
	"bitbucket.org/intheforest/reports_backend/models"
	"bitbucket.org/intheforest/reports_backend/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.Open(filepath.Join(t.TempDir(), "db.json"), config.GetLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	r := gin.New()
	r.GET("/reports", ListReportsHandler(db))
	r.GET("/reports/:id", GetReportHandler(db))
	r.GET("/reports/:id/rows", ReportRowsHandler(db))
	r.PUT("/reports/:id", SaveReportHandler(db))
	r.DELETE("/reports/:id", DeleteReportHandler(db))
	r.GET("/reports/:id/export", ExportHTMLHandler(db))
	r.GET("/reports/:id/export.xlsx", ExportExcelHandler(db))
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testReport(id, group, reportType string) *models.Report {
	return &models.Report{
		Id:    id,
		Title: "Trellix 점검 보고서",
		Group: group,
		Type:  reportType,
		Sections: []models.Section{{
			Id:    "s1",
			Title: "하드웨어 상태 점검",
			Items: []models.InspectionItem{
				{Id: "i1", Category: "전원 상태", Criteria: "전원 확인\n(CLI - show power)", Result: "Overall power status: Good"},
				{Id: "i2", Category: "전원 상태", Result: "Good"},
			},
		}},
	}
}

func TestSaveAndGetReport(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/reports/r1", testReport("r1", "LSITC", "HX"))
	if w.Code != http.StatusOK {
		t.Fatalf("save: expected 200, got %d: %s", w.Code, w.Body)
	}
	var saved models.Report
	if err := json.Unmarshal(w.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode saved: %v", err)
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Fatalf("save response missing timestamps: %+v", saved)
	}

	w = doJSON(t, r, http.MethodGet, "/reports/r1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	var got models.Report
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if got.Id != "r1" || got.Title != "Trellix 점검 보고서" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestSaveRejectsBadPayloads(t *testing.T) {
	r, _ := newTestRouter(t)

	// Path/body id mismatch.
	w := doJSON(t, r, http.MethodPut, "/reports/other", testReport("r1", "LSITC", "HX"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("id mismatch: expected 400, got %d", w.Code)
	}

	// Validation failure: blank title.
	bad := testReport("r1", "LSITC", "HX")
	bad.Title = ""
	w = doJSON(t, r, http.MethodPut, "/reports/r1", bad)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("validation: expected 400, got %d: %s", w.Code, w.Body)
	}
	if !strings.Contains(w.Body.String(), "fields") {
		t.Fatalf("validation response should name the failing fields: %s", w.Body)
	}

	// Malformed JSON.
	req := httptest.NewRequest(http.MethodPut, "/reports/r1", strings.NewReader("{nope"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", rec.Code)
	}
}

func TestGetReportNotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/reports/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "report not found") {
		t.Fatalf("404 body: %s", w.Body)
	}
}

func TestListReportsFilter(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, rep := range []*models.Report{
		testReport("r1", "LSITC", "HX"),
		testReport("r2", "LSITC", "CM"),
		testReport("r3", "주성엔지니어링", "HX"),
	} {
		if w := doJSON(t, r, http.MethodPut, "/reports/"+rep.Id, rep); w.Code != http.StatusOK {
			t.Fatalf("seed %s: %d %s", rep.Id, w.Code, w.Body)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/reports", nil)
	var all ListReportsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(all.Reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(all.Reports))
	}

	w = doJSON(t, r, http.MethodGet, "/reports?group=LSITC&type=HX", nil)
	var filtered ListReportsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &filtered); err != nil {
		t.Fatalf("decode filtered list: %v", err)
	}
	if len(filtered.Reports) != 1 || filtered.Reports[0].Id != "r1" {
		t.Fatalf("filter expected only r1, got %+v", filtered.Reports)
	}

	// Group alone does not filter; both params are required.
	w = doJSON(t, r, http.MethodGet, "/reports?group=LSITC", nil)
	var partial ListReportsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &partial); err != nil {
		t.Fatalf("decode partial list: %v", err)
	}
	if len(partial.Reports) != 3 {
		t.Fatalf("partial filter should list everything, got %d", len(partial.Reports))
	}
}

func TestDeleteReport(t *testing.T) {
	r, _ := newTestRouter(t)

	doJSON(t, r, http.MethodPut, "/reports/r1", testReport("r1", "LSITC", "HX"))

	w := doJSON(t, r, http.MethodDelete, "/reports/r1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/reports/r1", nil); w.Code != http.StatusNotFound {
		t.Fatalf("deleted report still readable: %d", w.Code)
	}

	// Deleting an absent report is still a 204.
	if w := doJSON(t, r, http.MethodDelete, "/reports/never", nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete absent: expected 204, got %d", w.Code)
	}
}

func TestReportRows(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPut, "/reports/r1", testReport("r1", "LSITC", "HX"))

	w := doJSON(t, r, http.MethodGet, "/reports/r1/rows", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("rows: expected 200, got %d", w.Code)
	}
	var resp RowsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if resp.ReportId != "r1" || len(resp.Rows) != 2 {
		t.Fatalf("rows response: %+v", resp)
	}
	if resp.Rows[0].SectionSpan != 2 || resp.Rows[0].CategorySpan != 2 {
		t.Fatalf("row spans: %+v", resp.Rows[0])
	}
	if resp.Rows[0].CriteriaCmd != "(CLI - show power)" {
		t.Fatalf("criteria command: %+v", resp.Rows[0])
	}
	// Result lines cross the wire with their emphasis flags.
	if len(resp.Rows[0].ResultLines) != 1 || !resp.Rows[0].ResultLines[0].Emphasis {
		t.Fatalf("result lines missing or unemphasized: %+v", resp.Rows[0].ResultLines)
	}
	if resp.Rows[0].ResultLines[0].Text != "Overall power status: Good" {
		t.Fatalf("result line text: %+v", resp.Rows[0].ResultLines[0])
	}
	if len(resp.Rows[1].ResultLines) != 1 || resp.Rows[1].ResultLines[0].Emphasis {
		t.Fatalf("plain result line should not be emphasized: %+v", resp.Rows[1].ResultLines)
	}
}

func TestExportHTML(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPut, "/reports/r1", testReport("r1", "LSITC", "HX"))

	w := doJSON(t, r, http.MethodGet, "/reports/r1/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type: %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="report-r1.html"` {
		t.Fatalf("content disposition: %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "<!DOCTYPE html>") {
		t.Fatalf("export body is not a standalone document")
	}

	if w := doJSON(t, r, http.MethodGet, "/reports/missing/export", nil); w.Code != http.StatusNotFound {
		t.Fatalf("export of missing report: expected 404, got %d", w.Code)
	}
}

func TestExportExcel(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(t, r, http.MethodPut, "/reports/r1", testReport("r1", "LSITC", "HX"))

	w := doJSON(t, r, http.MethodGet, "/reports/r1/export.xlsx", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("xlsx export: expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("content type: %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="report-r1.xlsx"` {
		t.Fatalf("content disposition: %q", cd)
	}
	// XLSX is a zip container.
	if body := w.Body.Bytes(); len(body) < 4 || body[0] != 'P' || body[1] != 'K' {
		t.Fatalf("xlsx body does not look like a workbook")
	}
}
