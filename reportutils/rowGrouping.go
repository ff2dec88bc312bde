package reportutils

import "bitbucket.org/intheforest/reports_backend/models"

// RowSpan carries the merged-cell spans for one visible row. A zero span means
// the row emits no cell and rides on the preceding row's merged cell.
type RowSpan struct {
	SectionSpan  int
	CategorySpan int
}

// SectionRowSpans computes spans for the already-deleted-filtered rows of one
// section. The section label cell spans every row and is emitted on the first
// row only. A category cell is emitted at the start of each run of consecutive
// equal category values and spans the run length; the empty string is a valid
// category key like any other.
func SectionRowSpans(items []models.InspectionItem) []RowSpan {
	spans := make([]RowSpan, len(items))
	for idx := range items {
		if idx == 0 {
			spans[idx].SectionSpan = len(items)
		}
		if idx == 0 || items[idx-1].Category != items[idx].Category {
			count := 1
			for k := idx + 1; k < len(items); k++ {
				if items[k].Category != items[idx].Category {
					break
				}
				count++
			}
			spans[idx].CategorySpan = count
		}
	}
	return spans
}
