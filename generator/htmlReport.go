// Package generator renders a report into standalone export documents: a
// self-contained HTML file and an XLSX workbook. Both reuse the grouping and
// normalization in reportutils so exports match the interactive grid exactly.
package generator

import (
	"fmt"
	"html"
	"strings"
	"time"

	"bitbucket.org/intheforest/reports_backend/config"
	"bitbucket.org/intheforest/reports_backend/models"
	"bitbucket.org/intheforest/reports_backend/reportutils"
)

// ExportFilename is the deterministic download name for a report's HTML export.
func ExportFilename(reportId string) string {
	return "report-" + reportId + ".html"
}

// Theme is the resolved color palette of one rendering. Missing themeConfig
// fields fall back to the default blue palette.
type Theme struct {
	Primary   string
	Secondary string
	Tertiary  string
	Border    string
	Text      string
}

var defaultTheme = Theme{
	Primary:   "#1e40af",
	Secondary: "#3b82f6",
	Tertiary:  "#dbeafe",
	Border:    "#1d4ed8",
	Text:      "#1e40af",
}

// ResolveTheme merges a report's themeConfig over the default palette.
func ResolveTheme(cfg *models.ThemeConfig) Theme {
	theme := defaultTheme
	if cfg == nil {
		return theme
	}
	if cfg.Primary != "" {
		theme.Primary = cfg.Primary
	}
	if cfg.Secondary != "" {
		theme.Secondary = cfg.Secondary
	}
	if cfg.Tertiary != "" {
		theme.Tertiary = cfg.Tertiary
	}
	if cfg.Border != "" {
		theme.Border = cfg.Border
	}
	if cfg.Text != "" {
		theme.Text = cfg.Text
	}
	return theme
}

const baseStyles = `
    :root { --bg:#ffffff; --fg:#111827; --header-bg:%s; --thead-bg:%s; --header-fg:#ffffff; --width-col-ab: 30%%; --width-col-c: 25%%; --width-col-d: 35%%; --width-col-e: 10%%; }
    *{box-sizing:border-box}
    body{margin:0;font-family:"Pretendard","Noto Sans KR",sans-serif;line-height:1.45;color:var(--fg);background:var(--bg)}
    header{background:var(--header-bg);}
    .container{max-width:1200px;margin:0 auto;padding:12px 20px}
    header .container{ text-align: center; padding: 15px 20px; }
    header h1{margin:10px 0;font-size:22px;color:var(--header-fg)}
    .header-bottom { font-size: 1.1em; color: #e0e0e0; letter-spacing: 1px; }
    main{padding:20px 0; font-size: 14px;}
    table{ border-collapse:collapse; width:100%%; border:1px solid #e5e7eb; table-layout: fixed; }
    th,td{border:1px solid #e5e7eb;padding:8px 10px;text-align:left;vertical-align:top;word-break:keep-all;white-space:pre-wrap;}
    thead th{ background:var(--thead-bg); color:var(--header-fg); text-align:center; vertical-align:middle; position: sticky; top: 0; z-index: 5; }
    tbody tr:nth-child(even){background:#fafafa}
    footer{background:var(--header-bg);color:var(--header-fg);padding:15px 20px;text-align:center;font-size:12px;margin-top:20px;}
    .col-ab { width: var(--width-col-ab); }
    .col-c { width: var(--width-col-c); }
    .col-d { width: var(--width-col-d); }
    .col-e { width: var(--width-col-e); }
    td.result-issue{color:#b91c1c;font-weight:600}
    .cli-cmd{display:block;font-family:ui-monospace,SFMono-Regular,monospace;font-size:12px;color:#6b7280;margin-top:6px}
`

// GenerateHTMLReport renders a complete, self-contained HTML document for the
// given report. Same input, same bytes (modulo the footer year).
func GenerateHTMLReport(report *models.Report) string {
	theme := ResolveTheme(report.Theme)
	styles := fmt.Sprintf(baseStyles, theme.Primary, theme.Secondary)

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"ko\">\n<head>\n")
	b.WriteString("    <meta charset=\"utf-8\"/>\n")
	b.WriteString("    <meta content=\"width=device-width, initial-scale=1\" name=\"viewport\"/>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", html.EscapeString(report.Title))
	fmt.Fprintf(&b, "    <style>%s</style>\n", styles)
	b.WriteString("</head>\n<body>\n")

	b.WriteString("    <header>\n        <div class=\"container\">\n")
	fmt.Fprintf(&b, "            <h1>%s</h1>\n", html.EscapeString(report.Title))
	fmt.Fprintf(&b, "            <div class=\"header-bottom\">%s</div>\n", html.EscapeString(report.Inspector))
	b.WriteString("        </div>\n    </header>\n\n")

	b.WriteString("    <main class=\"container\">\n")
	if report.CustomInfo != nil {
		reportType := report.Type
		if reportType == "" {
			reportType = "HX"
		}
		writeCustomHeader(&b, report.CustomInfo, reportType, theme)
	}

	b.WriteString("        <section>\n            <table>\n")
	b.WriteString("                <thead>\n                    <tr>\n")
	b.WriteString("                        <th class=\"col-ab\" colspan=\"2\">점 검 항 목</th>\n")
	b.WriteString("                        <th class=\"col-c\">판단 기준</th>\n")
	b.WriteString("                        <th class=\"col-d\">점검 결과</th>\n")
	b.WriteString("                        <th class=\"col-e\">점검 의견</th>\n")
	b.WriteString("                    </tr>\n                </thead>\n")
	b.WriteString("                <tbody>\n")
	writeInspectionRows(&b, report)
	b.WriteString("                </tbody>\n            </table>\n        </section>\n    </main>\n\n")

	b.WriteString("    <footer>\n")
	fmt.Fprintf(&b, "        <div class=\"footer-inner\">Copyright © %d %s. All Rights Reserved.</div>\n",
		time.Now().Year(), html.EscapeString(report.Inspector))
	b.WriteString("    </footer>\n</body>\n</html>")

	return b.String()
}

func writeInspectionRows(b *strings.Builder, report *models.Report) {
	for si := range report.Sections {
		section := &report.Sections[si]
		visible := section.VisibleItems()
		if len(visible) == 0 {
			continue
		}
		spans := reportutils.SectionRowSpans(visible)

		for idx := range visible {
			item := &visible[idx]
			b.WriteString("                    <tr>\n")

			if spans[idx].SectionSpan > 0 {
				fmt.Fprintf(b, "                        <td rowspan=\"%d\" style=\"font-weight: bold; text-align: center; vertical-align: middle;\">%s</td>\n",
					spans[idx].SectionSpan, html.EscapeString(section.Title))
			}
			if spans[idx].CategorySpan > 0 {
				fmt.Fprintf(b, "                        <td rowspan=\"%d\" style=\"vertical-align: middle;\">%s</td>\n",
					spans[idx].CategorySpan, html.EscapeString(item.Category))
			}

			parts := reportutils.SplitCriteria(item.Criteria)
			b.WriteString("                        <td>")
			b.WriteString(html.EscapeString(parts.Main))
			if parts.Command != "" {
				fmt.Fprintf(b, "<span class=\"cli-cmd\">%s</span>", html.EscapeString(parts.Command))
			}
			b.WriteString("</td>\n")

			writeResultCell(b, item.Result)

			fmt.Fprintf(b, "                        <td>%s</td>\n", html.EscapeString(item.Opinion))
			b.WriteString("                    </tr>\n")
		}
	}
}

func writeResultCell(b *strings.Builder, result string) {
	class := ""
	if reportutils.ClassifyResult(result) == reportutils.StatusIssue {
		class = " class=\"result-issue\""
	}
	fmt.Fprintf(b, "                        <td%s>", class)
	for i, line := range reportutils.ResultLines(result) {
		if i > 0 {
			b.WriteString("\n")
		}
		if line.Emphasis {
			fmt.Fprintf(b, "<strong>%s</strong>", html.EscapeString(line.Text))
		} else {
			b.WriteString(html.EscapeString(line.Text))
		}
	}
	b.WriteString("</td>\n")
}

func writeCustomHeader(b *strings.Builder, info *models.CustomReportInfo, reportType string, theme Theme) {
	systems := info.System
	licenses := info.License
	cellStyle := "padding: 12px; border: 1px solid #cbd5e1; background-color: #fff;"
	headStyle := fmt.Sprintf("background-color: %s; color: white; padding: 12px; border: 1px solid #cbd5e1;", theme.Secondary)
	subStyle := fmt.Sprintf("background-color: %s; color: %s; padding: 12px; border: 1px solid #cbd5e1;", theme.Tertiary, theme.Text)

	b.WriteString("        <div style=\"margin-bottom: 30px;\">\n")
	fmt.Fprintf(b, "        <div style=\"text-align: center; font-size: 20px; font-weight: 600; margin: 0 0 25px 0; padding: 15px; background-color: %s; color: white; border-radius: 6px; border-left: 4px solid %s;\">정기점검 확인서</div>\n",
		theme.Secondary, theme.Border)

	b.WriteString("        <table style=\"width: 100%; border-collapse: collapse; margin-bottom: 30px; border: 1px solid #cbd5e1; border-radius: 6px; overflow: hidden; font-size: 14px; table-layout: fixed;\">\n")
	b.WriteString("            <colgroup>\n")
	for _, w := range []string{"10%", "15%", "15%", "15%", "15%", "30%"} {
		fmt.Fprintf(b, "                <col style=\"width: %s\" />\n", w)
	}
	b.WriteString("            </colgroup>\n            <tbody>\n")

	// Customer block: four fixed rows.
	customer := info.Customer
	b.WriteString("                <tr>\n")
	fmt.Fprintf(b, "                    <th rowspan=\"4\" style=\"%s\">고객사</th>\n", headStyle)
	fmt.Fprintf(b, "                    <th style=\"%s\">고객사명</th>\n", subStyle)
	fmt.Fprintf(b, "                    <td colspan=\"2\" style=\"%s\">%s</td>\n", cellStyle, html.EscapeString(customer.Name))
	fmt.Fprintf(b, "                    <th style=\"%s\">확인자</th>\n", subStyle)
	fmt.Fprintf(b, "                    <td style=\"%s\"></td>\n", cellStyle)
	b.WriteString("                </tr>\n                <tr>\n")
	fmt.Fprintf(b, "                    <th style=\"%s\">지원회사명</th>\n", subStyle)
	fmt.Fprintf(b, "                    <td colspan=\"2\" style=\"%s\">%s</td>\n", cellStyle, html.EscapeString(customer.Support))
	fmt.Fprintf(b, "                    <th style=\"%s\">점검자</th>\n", subStyle)
	fmt.Fprintf(b, "                    <td style=\"%s\">%s</td>\n", cellStyle, html.EscapeString(customer.Inspector))
	b.WriteString("                </tr>\n                <tr>\n")
	fmt.Fprintf(b, "                    <th style=\"%s\">점검일자</th>\n", subStyle)
	fmt.Fprintf(b, "                    <td colspan=\"2\" style=\"%s\">%s</td>\n", cellStyle, html.EscapeString(customer.Date))
	fmt.Fprintf(b, "                    <th style=\"%s\">TEL</th>\n", subStyle)
	fmt.Fprintf(b, "                    <td style=\"%s\">%s</td>\n", cellStyle, html.EscapeString(customer.Phone))
	b.WriteString("                </tr>\n                <tr>\n")
	fmt.Fprintf(b, "                    <th style=\"%s\">점검구분</th>\n", subStyle)
	fmt.Fprintf(b, "                    <td colspan=\"2\" style=\"%s white-space: pre-wrap;\">%s</td>\n", cellStyle, html.EscapeString(customer.Type))
	fmt.Fprintf(b, "                    <th style=\"%s\">추가 사항</th>\n", subStyle)
	fmt.Fprintf(b, "                    <td style=\"%s white-space: pre-wrap;\">%s</td>\n", cellStyle, html.EscapeString(customer.Note))
	b.WriteString("                </tr>\n")

	// System block: one header row plus one row per system entry.
	b.WriteString("                <tr>\n")
	fmt.Fprintf(b, "                    <th rowspan=\"%d\" style=\"%s\">시스템<br />정보</th>\n", len(systems)+1, headStyle)
	for _, label := range []string{"제품명", "장비명", "버전정보", "고객사", "용도"} {
		fmt.Fprintf(b, "                    <th style=\"%s\">%s</th>\n", subStyle, label)
	}
	b.WriteString("                </tr>\n")
	for i := range systems {
		sys := &systems[i]
		b.WriteString("                <tr>\n")
		for _, v := range []string{sys.Product, sys.Equipment, sys.Version, sys.Customer, sys.Usage} {
			fmt.Fprintf(b, "                    <td style=\"%s\">%s</td>\n", cellStyle, html.EscapeString(v))
		}
		b.WriteString("                </tr>\n")
	}

	// License block: one row per non-empty feature, minimum one per entry.
	idLabel := "MAC ID"
	if reportType == "HX" {
		idLabel = "Appliance ID"
	}
	repeatEndDate := config.RepeatLicenseEndDate(reportType)

	b.WriteString("                <tr>\n")
	fmt.Fprintf(b, "                    <th rowspan=\"%d\" style=\"%s\">라이선스<br />정보</th>\n", info.TotalLicenseRows()+1, headStyle)
	for _, label := range []string{"Appliance", "Serial Number", idLabel, "End Date", "Feature"} {
		fmt.Fprintf(b, "                    <th style=\"%s\">%s</th>\n", subStyle, label)
	}
	b.WriteString("                </tr>\n")

	centered := cellStyle + " vertical-align: middle; text-align: center;"
	for li := range licenses {
		lic := &licenses[li]
		features := lic.VisibleFeatures()
		for fi, feature := range features {
			b.WriteString("                <tr>\n")
			if fi == 0 {
				fmt.Fprintf(b, "                    <td rowspan=\"%d\" style=\"%s\">%s</td>\n", len(features), centered, html.EscapeString(lic.Appliance))
				fmt.Fprintf(b, "                    <td rowspan=\"%d\" style=\"%s\">%s</td>\n", len(features), centered, html.EscapeString(lic.Serial))
				fmt.Fprintf(b, "                    <td rowspan=\"%d\" style=\"%s\">%s</td>\n", len(features), centered, html.EscapeString(lic.Id))
			}
			endDate := lic.EndDate
			if fi > 0 && !repeatEndDate {
				endDate = "N/A"
			}
			fmt.Fprintf(b, "                    <td style=\"%s\">%s</td>\n", cellStyle, html.EscapeString(endDate))
			fmt.Fprintf(b, "                    <td style=\"%s\">%s</td>\n", cellStyle, html.EscapeString(feature))
			b.WriteString("                </tr>\n")
		}
		if li < len(licenses)-1 {
			b.WriteString("                <tr><td colspan=\"5\" style=\"height: 10px; background-color: #f1f5f9; border: 1px solid #cbd5e1;\"></td></tr>\n")
		}
	}

	// Summary block.
	b.WriteString("                <tr>\n")
	fmt.Fprintf(b, "                    <th style=\"%s\">점검 종합의견</th>\n", headStyle)
	fmt.Fprintf(b, "                    <td colspan=\"5\" style=\"padding: 15px; border: 1px solid #cbd5e1; background-color: #fff; line-height: 1.7; text-align: left;\">\n")
	fmt.Fprintf(b, "                        <div style=\"white-space: pre-wrap;\">%s</div>\n", html.EscapeString(info.Summary.Result))
	b.WriteString("                        <br />\n")
	fmt.Fprintf(b, "                        <div style=\"white-space: pre-wrap;\">%s</div>\n", html.EscapeString(info.Summary.Note))
	b.WriteString("                    </td>\n                </tr>\n")

	b.WriteString("            </tbody>\n        </table>\n")

	// Per-equipment summary tables below the main header table.
	for i := range systems {
		sys := &systems[i]
		lic := &models.LicenseInfo{}
		if i < len(licenses) {
			lic = &licenses[i]
		} else if len(licenses) > 0 {
			lic = &licenses[0]
		}
		b.WriteString("        <table style=\"width: 100%; border-collapse: collapse; margin-bottom: 25px; border: 1px solid #cbd5e1; border-radius: 6px; overflow: hidden; font-size: 14px;\">\n            <tbody>\n                <tr>\n")
		fmt.Fprintf(b, "                    <th style=\"%s text-align: left; width: 200px; font-weight: 600;\">점검 장비명</th>\n", headStyle)
		fmt.Fprintf(b, "                    <td style=\"%s font-weight: 500;\">%s %s</td>\n", cellStyle, html.EscapeString(sys.Product), html.EscapeString(lic.Appliance))
		fmt.Fprintf(b, "                    <th style=\"%s text-align: left; width: 200px; font-weight: 600;\">Serial Number</th>\n", headStyle)
		fmt.Fprintf(b, "                    <td style=\"%s font-weight: 500;\">%s</td>\n", cellStyle, html.EscapeString(lic.Serial))
		b.WriteString("                </tr>\n            </tbody>\n        </table>\n")
	}

	b.WriteString("        </div>\n")
}
