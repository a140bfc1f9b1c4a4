package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/K0NGR3SS/colrisk/internal/models"
)

func TestLookup_DefaultCategories(t *testing.T) {
	cat := Default()

	tests := []struct {
		column string
		want   models.Category
	}{
		{"tweet_coord", models.CategoryLocations},
		{"user_timezone", models.CategoryLocations},
		{"Home_Address", models.CategoryLocations},
		{"name", models.CategoryPersonalInfo},
		{"gender:confidence", models.CategoryPersonalInfo},
		{"description", models.CategoryPersonalInfo},
		{"created", models.CategoryTimestamps},
		{"_last_judgment_at_DATE", models.CategoryTimestamps},
		{"_unit_id", models.CategoryIDs},
		{"GUID", models.CategoryIDs},
		{"retweet_count", models.CategorySocialMedia},
		{"user_handle", models.CategorySocialMedia},
		{"sidebar_color", models.CategoryIDs}, // "sIDebar" hits IDs first
		{"profileimage", models.CategoryPersonalInfo},
		{"homepage_url", models.CategoryURLs},
		{"HREF", models.CategoryURLs},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			rule, ok := cat.Lookup(tt.column)
			require.True(t, ok)
			assert.Equal(t, tt.want, rule.Category)
		})
	}
}

func TestLookup_NoMatch(t *testing.T) {
	_, ok := Default().Lookup("notes")
	assert.False(t, ok)

	_, ok = Catalog{}.Lookup("name")
	assert.False(t, ok)
}

func TestLookup_ProfileResolvesByDeclarationOrder(t *testing.T) {
	cat := Default()

	var first models.Category
	for _, r := range cat.Rules() {
		if r.Matches("profile") {
			first = r.Category
			break
		}
	}

	rule, ok := cat.Lookup("profile")
	require.True(t, ok)
	assert.Equal(t, first, rule.Category)
	assert.Equal(t, models.CategoryPersonalInfo, rule.Category)
}

func TestLookup_FirstMatchWinsOverCustomOrder(t *testing.T) {
	cat := New(
		PatternRule{Category: "B", Keywords: []string{"user"}},
		PatternRule{Category: "A", Keywords: []string{"username"}},
	)

	rule, ok := cat.Lookup("username")
	require.True(t, ok)
	assert.Equal(t, models.Category("B"), rule.Category)
}

func TestWithCustomRules_AppendsAfterBuiltins(t *testing.T) {
	custom := PatternRule{
		Category: "Financial",
		Keywords: []string{"iban", "name"},
		BaseRisk: models.RiskCritical,
	}
	cat := Default().WithCustomRules(custom)

	assert.Equal(t, Default().Len()+1, cat.Len())

	rule, ok := cat.Lookup("account_iban")
	require.True(t, ok)
	assert.Equal(t, models.Category("Financial"), rule.Category)

	rule, ok = cat.Lookup("name")
	require.True(t, ok)
	assert.Equal(t, models.CategoryPersonalInfo, rule.Category)
}

func TestCatalog_IsImmutable(t *testing.T) {
	cat := Default()

	rule, _ := cat.Lookup("name")
	rule.Concerns[0] = "mutated"
	rule.Keywords = append(rule.Keywords, "zzz")

	rules := cat.Rules()
	rules[0].Category = "mutated"

	again, _ := cat.Lookup("name")
	assert.Equal(t, "Contains demographic information", again.Concerns[0])
	assert.Equal(t, models.CategoryLocations, cat.Rules()[0].Category)

	_, ok := cat.Lookup("zzz")
	assert.False(t, ok)
}

func TestDefault_EscalationsNeverLowerBase(t *testing.T) {
	for _, r := range Default().Rules() {
		for _, e := range r.Escalations {
			assert.Truef(t, e.Level.AtLeast(r.BaseRisk), "%s escalation %s below base %s", r.Category, e.Level, r.BaseRisk)
		}
	}
}
