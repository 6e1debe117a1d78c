package model

import "github.com/helmcode/aomaas/pkg/provider"

// AnalyzeRequest is the body sent to the repository-analysis endpoint.
type AnalyzeRequest struct {
	RepositoryURL string        `json:"repository_url" yaml:"repository_url"`
	ProviderType  provider.Type `json:"provider_type" yaml:"provider_type"`
}

// AnalysisResult is what the analysis endpoint answers with.
type AnalysisResult struct {
	Opportunities []Opportunity `json:"opportunities" yaml:"opportunities"`
}

// Opportunity is a single suggested maintenance item. Every field is optional;
// empty values are replaced by display defaults at render time.
type Opportunity struct {
	Type           string `json:"type,omitempty" yaml:"type,omitempty"`
	Priority       string `json:"priority,omitempty" yaml:"priority,omitempty"`
	Title          string `json:"title,omitempty" yaml:"title,omitempty"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	Location       string `json:"location,omitempty" yaml:"location,omitempty"`
	EffortEstimate string `json:"effort_estimate,omitempty" yaml:"effort_estimate,omitempty"`
}
