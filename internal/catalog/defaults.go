package catalog

import "github.com/K0NGR3SS/colrisk/internal/models"

// Order matters: see the package comment.
var defaultRules = []PatternRule{
	{
		Category:        models.CategoryLocations,
		Keywords:        []string{"location", "coord", "timezone", "address"},
		BaseRisk:        models.RiskHigh,
		InformationType: "Geographic Data",
		Concerns: []string{
			"Contains precise location information",
			"Could be used for physical tracking",
			"Reveals user movement patterns",
		},
		Recommendations: []string{
			"Anonymize or remove exact coordinates",
			"Use broader geographic areas instead",
			"Implement geographic data masking",
		},
		Escalations: []Escalation{
			{
				Shape:           ShapeCoordinates,
				Level:           models.RiskCritical,
				Concerns:        []string{"Contains exact GPS coordinates"},
				Recommendations: []string{"Replace with geohashed or area-level data"},
			},
		},
	},
	{
		Category:        models.CategoryPersonalInfo,
		Keywords:        []string{"name", "gender", "profile", "description"},
		BaseRisk:        models.RiskMedium,
		InformationType: "Personal Information",
		Concerns: []string{
			"Contains demographic information",
			"Could be used for profiling",
			"May contain personally identifiable information",
		},
		Recommendations: []string{
			"Remove or anonymize personal identifiers",
			"Implement data minimization",
			"Consider aggregating demographic data",
		},
		Escalations: []Escalation{
			{
				Shape: ShapeFreeText,
				Level: models.RiskHigh,
				Concerns: []string{
					"May contain personal narratives",
					"Could include contact information",
					"Potential for indirect identification",
				},
				Recommendations: []string{
					"Implement text anonymization",
					"Remove or redact sensitive information",
					"Consider removing full descriptions",
				},
			},
		},
	},
	{
		Category:        models.CategoryTimestamps,
		Keywords:        []string{"created", "time", "date"},
		BaseRisk:        models.RiskLow,
		InformationType: "Temporal Data",
		Concerns: []string{
			"Reveals activity patterns over time",
		},
		Recommendations: []string{
			"Truncate timestamps to day or month precision",
		},
	},
	{
		Category:        models.CategoryIDs,
		Keywords:        []string{"id", "uuid", "guid"},
		BaseRisk:        models.RiskLow,
		InformationType: "Identifier",
		Concerns: []string{
			"Allows records to be linked across datasets",
		},
		Recommendations: []string{
			"Replace identifiers with salted hashes or surrogate keys",
		},
	},
	{
		Category:        models.CategorySocialMedia,
		Keywords:        []string{"tweet", "retweet", "profile", "sidebar", "user"},
		BaseRisk:        models.RiskLow,
		InformationType: "Social Media Activity",
		Concerns: []string{
			"Can be matched against public social media accounts",
		},
		Recommendations: []string{
			"Strip handles and post content before sharing",
		},
	},
	{
		Category:        models.CategoryURLs,
		Keywords:        []string{"link", "url", "href"},
		BaseRisk:        models.RiskLow,
		InformationType: "Web Reference",
		Concerns: []string{
			"Links may point to personal pages or embed tracking parameters",
		},
		Recommendations: []string{
			"Remove query strings or replace links with domains only",
		},
	},
}

// Default returns the built-in catalog.
func Default() Catalog {
	return New(defaultRules...)
}

// Uncategorized is the rule applied when nothing in the catalog matches.
func Uncategorized() PatternRule {
	return PatternRule{
		Category:        models.CategoryUncategorized,
		BaseRisk:        models.RiskLow,
		InformationType: "Unknown",
	}
}
