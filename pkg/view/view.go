package view

import (
	"fmt"
	"strings"

	"github.com/helmcode/aomaas/pkg/model"
)

// Fallbacks shown when an opportunity leaves a field empty.
const (
	DefaultType        = "Improvement"
	DefaultPriority    = "Medium"
	DefaultTitle       = "Unnamed Opportunity"
	DefaultDescription = "No description provided"
	DefaultLocation    = "Repository-wide"
	UnknownEffort      = "Unknown effort"
)

// User-facing messages.
const (
	ValidationMessage    = "Please enter a valid repository URL"
	FailureMessage       = "An error occurred while analyzing the repository. Please try again."
	NoOpportunitiesFound = "No maintenance opportunities found in this repository."
	ResultsTitle         = "Maintenance Opportunities"
)

// Kind tells a surface which of the three renderings an Output holds.
type Kind string

const (
	KindError   Kind = "error"
	KindNotice  Kind = "notice"
	KindResults Kind = "results"
)

// Card is the display form of one opportunity.
type Card struct {
	Type          string `json:"type" yaml:"type"`
	Priority      string `json:"priority" yaml:"priority"`
	PriorityLevel string `json:"priority_level" yaml:"priority_level"`
	PriorityClass string `json:"priority_class" yaml:"priority_class"`
	Title         string `json:"title" yaml:"title"`
	Description   string `json:"description" yaml:"description"`
	Location      string `json:"location" yaml:"location"`
	Effort        string `json:"effort" yaml:"effort"`
}

// Results is the header plus cards for a non-empty analysis.
type Results struct {
	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary" yaml:"summary"`
	Count   int    `json:"count" yaml:"count"`
	Cards   []Card `json:"cards" yaml:"cards"`
}

// Output is everything a surface needs to draw the outcome of one submission.
type Output struct {
	Kind    Kind     `json:"kind" yaml:"kind"`
	Message string   `json:"message,omitempty" yaml:"message,omitempty"`
	Results *Results `json:"results,omitempty" yaml:"results,omitempty"`
}

// PriorityLevel maps a priority case-insensitively onto high, medium or low.
// Unknown and missing values count as medium.
func PriorityLevel(priority string) string {
	switch strings.ToLower(priority) {
	case "high":
		return "high"
	case "low":
		return "low"
	default:
		return "medium"
	}
}

// PriorityClass is the style class for a priority, e.g. "priority-high".
func PriorityClass(priority string) string {
	return "priority-" + PriorityLevel(priority)
}

// EffortLabel turns an effort estimate into a readable label. Unrecognised
// estimates are shown verbatim.
func EffortLabel(effort string) string {
	if effort == "" {
		return UnknownEffort
	}

	switch strings.ToLower(effort) {
	case "small":
		return "Small effort (< 1 hour)"
	case "medium":
		return "Medium effort (1-4 hours)"
	case "large":
		return "Large effort (> 4 hours)"
	default:
		return effort
	}
}

// Render applies display defaults to a single opportunity.
func Render(o model.Opportunity) Card {
	return Card{
		Type:          orDefault(o.Type, DefaultType),
		Priority:      orDefault(o.Priority, DefaultPriority),
		PriorityLevel: PriorityLevel(o.Priority),
		PriorityClass: PriorityClass(o.Priority),
		Title:         orDefault(o.Title, DefaultTitle),
		Description:   orDefault(o.Description, DefaultDescription),
		Location:      orDefault(o.Location, DefaultLocation),
		Effort:        EffortLabel(o.EffortEstimate),
	}
}

// RenderResult turns an analysis into either the empty notice or a list of
// cards in input order. A nil result renders like an empty one.
func RenderResult(result *model.AnalysisResult) Output {
	if result == nil || len(result.Opportunities) == 0 {
		return Output{Kind: KindNotice, Message: NoOpportunitiesFound}
	}

	cards := make([]Card, 0, len(result.Opportunities))
	for _, o := range result.Opportunities {
		cards = append(cards, Render(o))
	}

	return Output{
		Kind: KindResults,
		Results: &Results{
			Title:   ResultsTitle,
			Summary: fmt.Sprintf("Found %d opportunities for improvement", len(cards)),
			Count:   len(cards),
			Cards:   cards,
		},
	}
}

// ValidationError is the inline output for an empty submission.
func ValidationError() Output {
	return Output{Kind: KindError, Message: ValidationMessage}
}

// RequestFailure is the generic output for any failed analysis call.
func RequestFailure() Output {
	return Output{Kind: KindError, Message: FailureMessage}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
