package generator

import (
	"strings"
	"testing"

	"bitbucket.org/intheforest/reports_backend/models"
)

func reportForHTML() *models.Report {
	return &models.Report{
		Id:        "hx-report-lsitc",
		Title:     "Trellix HX 정기점검 보고서",
		Inspector: "김진수 (인더포레스트)",
		Type:      "HX",
		CustomInfo: &models.CustomReportInfo{
			Customer: models.CustomerInfo{Name: "LS ITC", Support: "(주) 인더포레스트"},
			System: models.OneOrMany[models.SystemInfo]{{
				Product: "Trellix HX", Equipment: "LS-HX1", Version: "10.0.2",
			}},
			License: models.OneOrMany[models.LicenseInfo]{{
				Appliance: "HX4502",
				Serial:    "FZ2022QA6PF",
				Id:        "AC1F6BD75160",
				EndDate:   "2026-02-28",
				Features:  []string{"FIREEYE_SUPPORT", "HX_ADVANCED"},
			}},
			Summary: models.SummaryInfo{Result: "[점검 결과]\n정상"},
		},
		Sections: []models.Section{
			{
				Id:    "s1",
				Title: "하드웨어 상태 점검",
				Items: []models.InspectionItem{
					{Id: "i1", Category: "전원 상태", Criteria: "전원 확인\n(CLI - show power)", Result: "Overall power status: Good"},
					{Id: "i2", Category: "전원 상태", Criteria: "이중화 확인", Result: "Good"},
					{Id: "i3", Category: "Disk 상태", Criteria: "raid 확인", Result: "Overall raid status: Good"},
				},
			},
			{
				Id:    "s2",
				Title: "삭제된 섹션",
				Items: []models.InspectionItem{
					{Id: "i4", Category: "X", IsDeleted: true},
				},
			},
		},
	}
}

func TestGenerateHTMLReportIsDeterministic(t *testing.T) {
	report := reportForHTML()
	first := GenerateHTMLReport(report)
	second := GenerateHTMLReport(report)
	if first != second {
		t.Fatalf("same report produced different documents")
	}
}

func TestGenerateHTMLReportStructure(t *testing.T) {
	report := reportForHTML()
	doc := GenerateHTMLReport(report)

	if !strings.HasPrefix(doc, "<!DOCTYPE html>") {
		t.Fatalf("document must be standalone HTML")
	}
	if !strings.Contains(doc, "<title>Trellix HX 정기점검 보고서</title>") {
		t.Fatalf("title missing")
	}
	// First section: section cell spans 3 rows, first category spans 2.
	if !strings.Contains(doc, `rowspan="3" style="font-weight: bold; text-align: center; vertical-align: middle;">하드웨어 상태 점검`) {
		t.Fatalf("section rowspan missing:\n%s", doc)
	}
	if !strings.Contains(doc, `rowspan="2" style="vertical-align: middle;">전원 상태`) {
		t.Fatalf("category rowspan missing")
	}
	// All-deleted section contributes nothing.
	if strings.Contains(doc, "삭제된 섹션") {
		t.Fatalf("all-deleted section should not render")
	}
	// CLI fragment moves into its own span; canonicalization applies.
	if !strings.Contains(doc, `<span class="cli-cmd">(CLI - show power)</span>`) {
		t.Fatalf("cli command span missing")
	}
	if !strings.Contains(doc, "Overall RAID status: Good") {
		t.Fatalf("result text not canonicalized")
	}
	if !strings.Contains(doc, "<strong>Overall power status: Good</strong>") {
		t.Fatalf("overall result line not emphasized")
	}
}

func TestGenerateHTMLReportIssueHighlight(t *testing.T) {
	report := reportForHTML()
	report.Sections[0].Items[1].Result = "RX discards: 163"
	doc := GenerateHTMLReport(report)
	if !strings.Contains(doc, `class="result-issue">RX discards: 163`) {
		t.Fatalf("issue result should carry the issue class")
	}
	if strings.Contains(doc, `class="result-issue"><strong>Overall power status`) {
		t.Fatalf("normal result picked up the issue class")
	}
}

func TestLicenseBlockEndDates(t *testing.T) {
	// HX is not in the default repeat list: rows after the first show N/A.
	doc := GenerateHTMLReport(reportForHTML())
	if strings.Count(doc, ">2026-02-28<") != 1 {
		t.Fatalf("HX end date should appear once, doc has %d", strings.Count(doc, ">2026-02-28<"))
	}
	if !strings.Contains(doc, ">N/A<") {
		t.Fatalf("HX second feature row should show N/A")
	}

	// CM repeats the end date on every feature row by default.
	cm := reportForHTML()
	cm.Type = "CM"
	doc = GenerateHTMLReport(cm)
	if strings.Count(doc, ">2026-02-28<") != 2 {
		t.Fatalf("CM end date should repeat per feature row")
	}
	if strings.Contains(doc, ">N/A<") {
		t.Fatalf("CM should not emit N/A")
	}

	// The repeat list is an env knob.
	t.Setenv("LICENSE_END_DATE_REPEAT_TYPES", "HX")
	doc = GenerateHTMLReport(reportForHTML())
	if strings.Count(doc, ">2026-02-28<") != 2 {
		t.Fatalf("env override should make HX repeat the end date")
	}
}

func TestLicenseIdLabelByType(t *testing.T) {
	doc := GenerateHTMLReport(reportForHTML())
	if !strings.Contains(doc, ">Appliance ID<") {
		t.Fatalf("HX reports label the id column Appliance ID")
	}

	cm := reportForHTML()
	cm.Type = "CM"
	doc = GenerateHTMLReport(cm)
	if !strings.Contains(doc, ">MAC ID<") || strings.Contains(doc, ">Appliance ID<") {
		t.Fatalf("non-HX reports label the id column MAC ID")
	}
}

func TestEmptyFeatureListStillRendersOneRow(t *testing.T) {
	report := reportForHTML()
	report.CustomInfo.License[0].Features = nil
	doc := GenerateHTMLReport(report)

	// License header rowspan is feature rows + 1; one blank row keeps it at 2,
	// matching the system block's rowspan for this single-system report.
	if n := strings.Count(doc, `rowspan="2" style="background-color: #3b82f6`); n != 2 {
		t.Fatalf("empty feature list should still yield one license row, got %d header cells", n)
	}
	if !strings.Contains(doc, ">HX4502<") {
		t.Fatalf("license appliance cell missing")
	}
}

func TestThemeOverridesAndEscaping(t *testing.T) {
	report := reportForHTML()
	report.Theme = &models.ThemeConfig{Primary: "#dc2626", Secondary: "#f87171"}
	report.Title = `점검 <script>alert("x")</script>`
	doc := GenerateHTMLReport(report)

	if !strings.Contains(doc, "--header-bg:#dc2626") || !strings.Contains(doc, "--thead-bg:#f87171") {
		t.Fatalf("theme colors not applied to stylesheet")
	}
	if strings.Contains(doc, "<script>") {
		t.Fatalf("user content not escaped")
	}
	if !strings.Contains(doc, "&lt;script&gt;") {
		t.Fatalf("escaped title missing")
	}
}

func TestResolveTheme(t *testing.T) {
	if got := ResolveTheme(nil); got != defaultTheme {
		t.Fatalf("nil config should yield the default palette, got %+v", got)
	}
	got := ResolveTheme(&models.ThemeConfig{Primary: "#000000"})
	if got.Primary != "#000000" || got.Secondary != defaultTheme.Secondary {
		t.Fatalf("partial config should merge over defaults, got %+v", got)
	}
}

func TestExportFilename(t *testing.T) {
	if got := ExportFilename("abc-123"); got != "report-abc-123.html" {
		t.Fatalf("ExportFilename = %q", got)
	}
}

func TestReportWithoutCustomInfo(t *testing.T) {
	report := reportForHTML()
	report.CustomInfo = nil
	doc := GenerateHTMLReport(report)
	if strings.Contains(doc, "정기점검 확인서") {
		t.Fatalf("header block rendered without customInfo")
	}
	if !strings.Contains(doc, "점 검 항 목") {
		t.Fatalf("inspection table missing")
	}
}
