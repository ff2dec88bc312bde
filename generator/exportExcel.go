package generator

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"bitbucket.org/intheforest/reports_backend/models"
	"bitbucket.org/intheforest/reports_backend/reportutils"
)

// ExcelFilename is the deterministic download name for a report's XLSX export.
func ExcelFilename(reportId string) string {
	return "report-" + reportId + ".xlsx"
}

// GenerateExcelReport renders the inspection grid into a workbook. Merged cell
// ranges mirror the HTML rowspans: one merge per section and one per
// consecutive-category run.
func GenerateExcelReport(report *models.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Sheet1"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}

	// Add headers
	f.SetCellValue(sheet, "A1", "구분")
	f.SetCellValue(sheet, "B1", "항목")
	f.SetCellValue(sheet, "C1", "판단 기준")
	f.SetCellValue(sheet, "D1", "점검 결과")
	f.SetCellValue(sheet, "E1", "점검 의견")

	f.SetColWidth(sheet, "A", "B", 22)
	f.SetColWidth(sheet, "C", "D", 45)
	f.SetColWidth(sheet, "E", "E", 18)

	rowNo := 2
	for si := range report.Sections {
		section := &report.Sections[si]
		visible := section.VisibleItems()
		if len(visible) == 0 {
			continue
		}
		spans := reportutils.SectionRowSpans(visible)

		for idx := range visible {
			item := &visible[idx]

			if spans[idx].SectionSpan > 0 {
				f.SetCellValue(sheet, "A"+fmt.Sprint(rowNo), section.Title)
				if spans[idx].SectionSpan > 1 {
					if err := f.MergeCell(sheet, "A"+fmt.Sprint(rowNo), "A"+fmt.Sprint(rowNo+spans[idx].SectionSpan-1)); err != nil {
						return nil, err
					}
				}
			}
			if spans[idx].CategorySpan > 0 {
				f.SetCellValue(sheet, "B"+fmt.Sprint(rowNo), item.Category)
				if spans[idx].CategorySpan > 1 {
					if err := f.MergeCell(sheet, "B"+fmt.Sprint(rowNo), "B"+fmt.Sprint(rowNo+spans[idx].CategorySpan-1)); err != nil {
						return nil, err
					}
				}
			}

			parts := reportutils.SplitCriteria(item.Criteria)
			criteria := parts.Main
			if parts.Command != "" {
				criteria += "\n" + parts.Command
			}
			f.SetCellValue(sheet, "C"+fmt.Sprint(rowNo), criteria)
			f.SetCellValue(sheet, "D"+fmt.Sprint(rowNo), reportutils.CanonicalizeResultText(item.Result))
			f.SetCellValue(sheet, "E"+fmt.Sprint(rowNo), item.Opinion)
			rowNo++
		}
	}

	return f, nil
}
