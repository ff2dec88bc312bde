// Package reportutils holds the render-independent report logic: result
// classification, text canonicalization, criteria splitting and the merged-cell
// row grouping. Both the interactive row view and the static exporters consume
// this package, so the two renderings cannot drift apart.
package reportutils

import (
	"regexp"
	"strings"
)

// NormalKeywords is the allow-list of positive-status tokens. A result string
// containing any of them (case-insensitive substring) is classified normal.
var NormalKeywords = []string{"Good", "Ok", "Online", "Healthy", "Healthy System", "Success", "Normal", "정상"}

type ResultStatus string

const (
	StatusNormal ResultStatus = "normal"
	StatusIssue  ResultStatus = "issue"
)

// ClassifyResult flags a free-text result as normal or issue. Empty text is
// normal. This is a loose allow-list heuristic: "Status: Good ... 1 disk failed"
// still classifies normal, which callers accept as a known simplification.
func ClassifyResult(text string) ResultStatus {
	if text == "" {
		return StatusNormal
	}
	lower := strings.ToLower(text)
	for _, kw := range NormalKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return StatusNormal
		}
	}
	return StatusIssue
}

var (
	healthySystemRe = regexp.MustCompile(`(?i)healthySystem`)
	raidRe          = regexp.MustCompile(`(?i)raid`)
)

// CanonicalizeResultText normalizes appliance CLI spellings in result text:
// "healthySystem" becomes "Healthy System" and "raid" becomes "RAID", both
// case-insensitive. Everything else passes through untouched.
func CanonicalizeResultText(text string) string {
	if text == "" {
		return ""
	}
	formatted := healthySystemRe.ReplaceAllString(text, "Healthy System")
	formatted = raidRe.ReplaceAllString(formatted, "RAID")
	return formatted
}

var cliRe = regexp.MustCompile(`(?i)\(CLI\s*[-:]\s*(.*?)\)`)

// CriteriaParts is a criteria string split into the human-readable description
// and an optional embedded CLI command fragment. Command is "" when absent.
type CriteriaParts struct {
	Main    string
	Command string
}

// SplitCriteria pulls the first "(CLI - ...)" or "(CLI : ...)" fragment out of a
// criteria string. The fragment is rebuilt in the canonical "(CLI - ...)" form;
// only the first match is processed.
func SplitCriteria(text string) CriteriaParts {
	loc := cliRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return CriteriaParts{Main: text}
	}
	main := strings.TrimSpace(text[:loc[0]] + text[loc[1]:])
	command := "(CLI - " + text[loc[2]:loc[3]] + ")"
	return CriteriaParts{Main: main, Command: command}
}

// ResultLine is one display line of a result cell. Emphasis marks summary lines
// ("Overall ...") that render bold in both the grid and the export.
type ResultLine struct {
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis"`
}

// ResultLines canonicalizes a result string and splits it into display lines.
func ResultLines(text string) []ResultLine {
	if text == "" {
		return nil
	}
	raw := strings.Split(CanonicalizeResultText(text), "\n")
	lines := make([]ResultLine, len(raw))
	for i, line := range raw {
		lines[i] = ResultLine{
			Text:     line,
			Emphasis: strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "overall"),
		}
	}
	return lines
}
