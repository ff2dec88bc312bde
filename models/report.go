package models

import (
	"encoding/json"
	"strings"
	"time"
)

// InspectionItem is one row of a report table. Soft-deleted rows stay in storage
// but are excluded from rendering and rowspan counts.
type InspectionItem struct {
	Id        string `json:"id" validate:"required"`
	Category  string `json:"category"`
	Criteria  string `json:"criteria"`
	Result    string `json:"result"`
	Opinion   string `json:"opinion"`
	IsDeleted bool   `json:"isDeleted"`
	SortOrder int    `json:"sortOrder"`
}

// Section is a titled, ordered group of inspection rows. Items render in stored
// array order; SortOrder is informational only.
type Section struct {
	Id        string           `json:"id" validate:"required"`
	Title     string           `json:"title"`
	Items     []InspectionItem `json:"items" validate:"dive"`
	SortOrder int              `json:"sortOrder"`
}

// VisibleItems returns the section's rows with soft-deleted ones filtered out.
func (s *Section) VisibleItems() []InspectionItem {
	visible := make([]InspectionItem, 0, len(s.Items))
	for _, item := range s.Items {
		if !item.IsDeleted {
			visible = append(visible, item)
		}
	}
	return visible
}

type CustomerInfo struct {
	Name      string `json:"name"`
	Support   string `json:"support"`
	Inspector string `json:"inspector"`
	Date      string `json:"date"`
	Phone     string `json:"phone"`
	Type      string `json:"type"` // 월/분기/특별 checkboxes, multiline
	Note      string `json:"note"`
}

type SystemInfo struct {
	Product   string `json:"product"`
	Equipment string `json:"equipment"`
	Version   string `json:"version"`
	Customer  string `json:"customer"`
	Usage     string `json:"usage"`
}

type LicenseInfo struct {
	Appliance string   `json:"appliance"`
	Serial    string   `json:"serial"`
	Id        string   `json:"id"` // Appliance ID (HX) or MAC ID (CM/EX)
	EndDate   string   `json:"endDate"`
	Features  []string `json:"features"`
}

// VisibleFeatures drops blank entries but always keeps at least one row so the
// license block renders as a table even with no feature data.
func (l *LicenseInfo) VisibleFeatures() []string {
	cleaned := make([]string, 0, len(l.Features))
	for _, f := range l.Features {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		return []string{""}
	}
	return cleaned
}

type SummaryInfo struct {
	Result string `json:"result"`
	Note   string `json:"note"`
}

// CustomReportInfo is the structured header block used by HX/CM/EX report types.
// Legacy records stored system/license either as a single object or as an array;
// OneOrMany normalizes both shapes to a slice at the store boundary.
type CustomReportInfo struct {
	Customer CustomerInfo           `json:"customer"`
	System   OneOrMany[SystemInfo]  `json:"system"`
	License  OneOrMany[LicenseInfo] `json:"license"`
	Summary  SummaryInfo            `json:"summary"`
}

// TotalLicenseRows is the display row count of the license block: one row per
// non-empty feature, minimum one row per license entry.
func (c *CustomReportInfo) TotalLicenseRows() int {
	total := 0
	for i := range c.License {
		total += len(c.License[i].VisibleFeatures())
	}
	return total
}

type ThemeConfig struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Tertiary  string `json:"tertiary,omitempty"`
	Border    string `json:"border,omitempty"`
	Text      string `json:"text,omitempty"`
}

// Report is the aggregate root. Id is caller-supplied at creation, immutable,
// and doubles as the storage key and export filename component.
type Report struct {
	Id         string            `json:"id" validate:"required"`
	Title      string            `json:"title" validate:"required"`
	Inspector  string            `json:"inspector"`
	Group      string            `json:"group,omitempty"`
	Type       string            `json:"type,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	CustomInfo *CustomReportInfo `json:"customInfo,omitempty"`
	Theme      *ThemeConfig      `json:"themeConfig,omitempty"`
	Sections   []Section         `json:"sections" validate:"dive"`
}

// Clone deep-copies a report via a JSON round trip, same as the legacy
// duplicate script did. Used for editor snapshots and store isolation.
func (r *Report) Clone() (*Report, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var out Report
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
