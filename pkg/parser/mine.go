package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/helmcode/aomaas/pkg/model"
)

var fenceRe = regexp.MustCompile("```[a-zA-Z]*\n|```")

// ParseMineResponse decodes an LLM reply into an analysis result. Replies
// that are not the expected JSON become a single review item carrying the
// raw text, so the user still sees something.
func ParseMineResponse(raw string) *model.AnalysisResult {
	cleaned := stripFences(raw)

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err == nil {
		if result.Opportunities == nil {
			result.Opportunities = []model.Opportunity{}
		}
		return &result
	}

	// A bare array is also accepted.
	var list []model.Opportunity
	if err := json.Unmarshal([]byte(cleaned), &list); err == nil {
		if list == nil {
			list = []model.Opportunity{}
		}
		return &model.AnalysisResult{Opportunities: list}
	}
	return fallback(raw)
}

// LimitOpportunities trims result to at most max items; max <= 0 means no limit.
func LimitOpportunities(result *model.AnalysisResult, max int) *model.AnalysisResult {
	if result == nil || max <= 0 || len(result.Opportunities) <= max {
		return result
	}
	result.Opportunities = result.Opportunities[:max]
	return result
}

func fallback(raw string) *model.AnalysisResult {
	text := strings.TrimSpace(raw)
	if text == "" {
		return &model.AnalysisResult{Opportunities: []model.Opportunity{}}
	}
	return &model.AnalysisResult{Opportunities: []model.Opportunity{{
		Type:        "Review",
		Priority:    "medium",
		Title:       "Review the full analysis",
		Description: text,
	}}}
}

// stripFences removes markdown code fences such as ```json ... ``` so JSON can be parsed
func stripFences(text string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))
}
