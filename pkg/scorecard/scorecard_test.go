package scorecard

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestNormalizeNilDocument(t *testing.T) {
	assert.Equal(t, UnknownSummary(), Normalize(nil))
	assert.Equal(t, UnknownSummary(), Normalize(&Document{}))
}

func TestNormalizePartialDocument(t *testing.T) {
	doc := &Document{Data: []Category{
		{Name: CategoryPerformance, Score: &Score{Value: floatPtr(7.5), Max: 10}},
		{Name: CategoryGrowth, Score: &Score{Value: floatPtr(8)}},
	}}

	summary := Normalize(doc)
	assert.Equal(t, "7.5", summary.Performance)
	assert.Equal(t, "8", summary.Growth)
	assert.Equal(t, Unknown, summary.Valuation)
	assert.Equal(t, Unknown, summary.Profitability)
	assert.Equal(t, Unknown, summary.EntryPoint)
	assert.Equal(t, Unknown, summary.RedFlags)
}

func TestNormalizeTagFallback(t *testing.T) {
	doc := &Document{Data: []Category{
		{Name: CategoryEntryPoint, Tag: "Attractive"},
		{Name: CategoryRedFlags, Tag: "Low"},
		// Tags only stand in for scores on Entry point and Red flags.
		{Name: CategoryValuation, Tag: "High"},
	}}

	summary := Normalize(doc)
	assert.Equal(t, "Attractive", summary.EntryPoint)
	assert.Equal(t, "Low", summary.RedFlags)
	assert.Equal(t, Unknown, summary.Valuation)
}

func TestNormalizeNoScoreNoTag(t *testing.T) {
	doc := &Document{Data: []Category{
		{Name: CategoryEntryPoint},
		{Name: CategoryPerformance, Score: &Score{Value: nil}},
	}}

	summary := Normalize(doc)
	assert.Equal(t, Unknown, summary.EntryPoint)
	assert.Equal(t, Unknown, summary.Performance)
}

func TestNormalizeIgnoresUnrecognizedCategories(t *testing.T) {
	doc := &Document{Data: []Category{
		{Name: "Momentum", Score: &Score{Value: floatPtr(9)}},
		{Name: CategoryValuation, Score: &Score{Value: floatPtr(3.2)}},
	}}

	summary := Normalize(doc)
	assert.Equal(t, "3.2", summary.Valuation)
	assert.Equal(t, Unknown, summary.Performance)
}

func TestNormalizeFromRawJSON(t *testing.T) {
	raw := `{"data":[
		{"name":"Performance","description":"Hasn't fared well","score":{"value":4.5,"max":10}},
		{"name":"Entry point","tag":"Avg","score":{"value":null}},
		{"name":"Red flags","tag":"Low","elements":[
			{"title":"ASM","display":true,"score":null},
			{"title":"Promoter pledged holding","display":false}
		]}
	]}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	summary := Normalize(&doc)
	assert.Equal(t, "4.5", summary.Performance)
	assert.Equal(t, "Avg", summary.EntryPoint)
	assert.Equal(t, "Low", summary.RedFlags)
}

func TestScoreMaxOrDefault(t *testing.T) {
	var nilScore *Score
	assert.Equal(t, DefaultScoreMax, nilScore.MaxOrDefault())
	assert.Equal(t, DefaultScoreMax, (&Score{}).MaxOrDefault())
	assert.Equal(t, 5.0, (&Score{Max: 5}).MaxOrDefault())
}

func TestDetailed(t *testing.T) {
	doc := &Document{Data: []Category{
		{
			Name:        CategoryEntryPoint,
			Description: "The stock is underpriced",
			Score:       &Score{Value: floatPtr(7), Max: 10},
			Elements: []SubElement{
				{Title: "Fundamentals", Display: true, Score: &Score{Value: floatPtr(6.5), Max: 10}},
				{Title: "Technicals", Display: true, Score: &Score{Value: floatPtr(4)}},
				{Title: "Hidden", Display: false, Score: &Score{Value: floatPtr(1), Max: 10}},
			},
		},
	}}

	detail := Detailed(doc)
	assert.Equal(t, "7", detail["Entry_Point_Score"])
	assert.Equal(t, "The stock is underpriced", detail["Entry_Point_Description"])
	assert.Equal(t, "6.5/10", detail["Fundamentals_Score"])
	// Max defaults to 10 when the API omits it.
	assert.Equal(t, "4/10", detail["Technicals_Score"])
	assert.NotContains(t, detail, "Hidden_Score")

	assert.Empty(t, Detailed(nil))
}

func TestFprint(t *testing.T) {
	doc := &Document{Data: []Category{
		{
			Name: CategoryRedFlags,
			Tag:  "Low",
			Elements: []SubElement{
				{Title: "ASM", Display: true, Description: "Not in ASM list"},
			},
		},
	}}

	var buf bytes.Buffer
	Fprint(&buf, doc)
	out := buf.String()
	assert.Contains(t, out, "Red flags (Low)")
	assert.Contains(t, out, "\tASM: Not in ASM list")

	buf.Reset()
	Fprint(&buf, nil)
	assert.Contains(t, buf.String(), "No scorecard data available.")
}
