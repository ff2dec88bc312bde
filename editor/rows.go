package editor

import (
	"bitbucket.org/intheforest/reports_backend/models"
	"bitbucket.org/intheforest/reports_backend/reportutils"
)

// Row is one display row of the interactive inspection grid: the raw cell
// values plus everything the grid needs to render them (merged-cell spans,
// split criteria, canonicalized result lines, status classification). A zero
// span means the cell is covered by a preceding row's merged cell.
type Row struct {
	SectionId    string                   `json:"sectionId"`
	SectionTitle string                   `json:"sectionTitle"`
	SectionSpan  int                      `json:"sectionSpan"`
	ItemId       string                   `json:"itemId"`
	Category     string                   `json:"category"`
	CategorySpan int                      `json:"categorySpan"`
	Criteria     string                   `json:"criteria"`
	CriteriaMain string                   `json:"criteriaMain"`
	CriteriaCmd  string                   `json:"criteriaCommand,omitempty"`
	Result       string                   `json:"result"`
	ResultLines  []reportutils.ResultLine `json:"resultLines"`
	ResultStatus reportutils.ResultStatus `json:"resultStatus"`
	Opinion      string                   `json:"opinion"`
}

// BuildRows flattens a report into grid rows. Soft-deleted items are skipped
// and sections with no visible items contribute nothing. The grouping and
// normalization all come from reportutils, the same code path the static
// exporters use.
func BuildRows(report *models.Report) []Row {
	var rows []Row
	for si := range report.Sections {
		section := &report.Sections[si]
		visible := section.VisibleItems()
		if len(visible) == 0 {
			continue
		}
		spans := reportutils.SectionRowSpans(visible)
		for idx := range visible {
			item := &visible[idx]
			parts := reportutils.SplitCriteria(item.Criteria)
			rows = append(rows, Row{
				SectionId:    section.Id,
				SectionTitle: section.Title,
				SectionSpan:  spans[idx].SectionSpan,
				ItemId:       item.Id,
				Category:     item.Category,
				CategorySpan: spans[idx].CategorySpan,
				Criteria:     item.Criteria,
				CriteriaMain: parts.Main,
				CriteriaCmd:  parts.Command,
				Result:       item.Result,
				ResultLines:  reportutils.ResultLines(item.Result),
				ResultStatus: reportutils.ClassifyResult(item.Result),
				Opinion:      item.Opinion,
			})
		}
	}
	return rows
}
