package config

import (
	"os"
	"strings"
)

// RepeatLicenseEndDate decides whether the license End Date column is repeated on
// every feature row of an exported report, or shown only on the first row with
// "N/A" below it. The two legacy export templates disagreed on this, so it is
// type-driven and overridable.
//
// Set via env:
// - LICENSE_END_DATE_REPEAT_TYPES="CM,EX"
//
// Report type keys are case-insensitive.
func RepeatLicenseEndDate(reportType string) bool {
	reportType = strings.ToUpper(strings.TrimSpace(reportType))
	if reportType == "" {
		return false
	}
	raw := os.Getenv("LICENSE_END_DATE_REPEAT_TYPES")
	if strings.TrimSpace(raw) == "" {
		raw = "CM,EX"
	}
	for _, part := range strings.Split(raw, ",") {
		if strings.ToUpper(strings.TrimSpace(part)) == reportType {
			return true
		}
	}
	return false
}

// DataFilePath is the location of the JSON collection file backing the store.
//
// Set via env:
// - DB_PATH=data/db.json
func DataFilePath() string {
	if p := strings.TrimSpace(os.Getenv("DB_PATH")); p != "" {
		return p
	}
	return "data/db.json"
}
