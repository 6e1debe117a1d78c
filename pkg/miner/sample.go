package miner

import (
	"context"
	"strings"

	"github.com/helmcode/aomaas/pkg/apperrors"
	"github.com/helmcode/aomaas/pkg/model"
)

var sampleOpportunities = []model.Opportunity{
	{
		Type:           "performance",
		Priority:       "high",
		Title:          "Optimize database query performance",
		Description:    "The current query is fetching all records without pagination, causing performance issues with large datasets.",
		Location:       "app/models/user.py:45",
		EffortEstimate: "medium",
	},
	{
		Type:           "reliability",
		Priority:       "medium",
		Title:          "Add proper error handling",
		Description:    "The function lacks proper error handling, which can lead to unexpected crashes.",
		Location:       "app/services/api.py:78",
		EffortEstimate: "small",
	},
	{
		Type:           "security",
		Priority:       "high",
		Title:          "Fix security vulnerability in authentication",
		Description:    "The current implementation is vulnerable to timing attacks.",
		Location:       "app/auth/login.py:112",
		EffortEstimate: "large",
	},
	{
		Type:           "maintainability",
		Priority:       "low",
		Title:          "Improve code documentation",
		Description:    "The module lacks proper documentation, making it difficult for new developers to understand.",
		Location:       "app/utils/helpers.py:23",
		EffortEstimate: "small",
	},
	{
		Type:           "maintainability",
		Priority:       "medium",
		Title:          "Refactor duplicate code",
		Description:    "There's significant code duplication across multiple functions that should be refactored.",
		Location:       "app/controllers/product.py:156",
		EffortEstimate: "medium",
	},
}

// Sample answers every repository with the same canned opportunities.
type Sample struct {
	max int
}

func NewSample(maxOpportunities int) *Sample {
	return &Sample{max: maxOpportunities}
}

func (s *Sample) MineOpportunities(ctx context.Context, req model.AnalyzeRequest) (*model.AnalysisResult, error) {
	if strings.TrimSpace(req.RepositoryURL) == "" {
		return nil, apperrors.NewValidationError("repository_url is required", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n := len(sampleOpportunities)
	if s.max > 0 && s.max < n {
		n = s.max
	}
	out := make([]model.Opportunity, n)
	copy(out, sampleOpportunities[:n])
	return &model.AnalysisResult{Opportunities: out}, nil
}
