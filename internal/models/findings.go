package models

import (
	"fmt"
	"strings"
)

type RiskLevel string

const (
	RiskCritical RiskLevel = "CRITICAL" // exact location, direct re-identification
	RiskHigh     RiskLevel = "HIGH"     // free text, precise geography
	RiskMedium   RiskLevel = "MEDIUM"
	RiskLow      RiskLevel = "LOW"
)

// Rank orders risk levels: Low < Medium < High < Critical.
// Unknown levels rank below Low.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskCritical:
		return 4
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	default:
		return 0
	}
}

func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return r.Rank() >= other.Rank()
}

// Max returns the more severe of the two levels.
func Max(a, b RiskLevel) RiskLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Title renders the level the way reports print it ("Critical", "Low").
func (r RiskLevel) Title() string {
	s := strings.ToLower(string(r))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func ParseRiskLevel(raw string) (RiskLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "CRITICAL":
		return RiskCritical, nil
	case "HIGH":
		return RiskHigh, nil
	case "MEDIUM":
		return RiskMedium, nil
	case "LOW":
		return RiskLow, nil
	default:
		return "", fmt.Errorf("unknown risk level %q", raw)
	}
}

type Category string

const (
	CategoryLocations     Category = "Locations"
	CategoryPersonalInfo  Category = "Personal Info"
	CategoryTimestamps    Category = "Timestamps"
	CategoryIDs           Category = "IDs"
	CategorySocialMedia   Category = "Social Media"
	CategoryURLs          Category = "URLs/Links"
	CategoryUncategorized Category = "Uncategorized"
)

// Finding is the classification of one column. Findings are built once
// per scan and shared read-only by every exporter.
type Finding struct {
	Category        Category  `json:"category"`
	Column          string    `json:"column"`
	Risk            RiskLevel `json:"risk_level"`
	InformationType string    `json:"information_type"`
	Concerns        []string  `json:"concerns"`
	Recommendations []string  `json:"recommendations"`
	SampleValues    []string  `json:"sample_values"`
}

// Scan is one run over one input, as handed to exporters and notifiers.
type Scan struct {
	ID       string    `json:"scan_id"`
	Source   string    `json:"source"`
	Encoding string    `json:"encoding,omitempty"`
	Rows     int       `json:"rows"`
	Findings []Finding `json:"findings"`
}

func FilterByMinRisk(findings []Finding, min RiskLevel) []Finding {
	var filtered []Finding
	for _, f := range findings {
		if f.Risk.AtLeast(min) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

func FilterByRisk(findings []Finding, risk RiskLevel) []Finding {
	var filtered []Finding
	for _, f := range findings {
		if f.Risk == risk {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
