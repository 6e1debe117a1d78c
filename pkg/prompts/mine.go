package prompts

import (
	"fmt"
	"strings"

	"github.com/helmcode/aomaas/pkg/model"
)

// DefaultMaxOpportunities bounds how many items the model is asked for.
const DefaultMaxOpportunities = 10

// OpportunityTypes are the maintenance categories the miner asks about.
var OpportunityTypes = []string{
	"dependency_update",
	"security_vulnerability",
	"api_migration",
	"code_optimization",
	"test_coverage",
	"documentation",
}

func BuildMinePrompt(req model.AnalyzeRequest, maxOpportunities int) (string, error) {
	if strings.TrimSpace(req.RepositoryURL) == "" {
		return "", fmt.Errorf("repository URL is required")
	}
	if maxOpportunities <= 0 {
		maxOpportunities = DefaultMaxOpportunities
	}

	return fmt.Sprintf(`You are an experienced open-source maintainer reviewing a repository for maintenance work.

Repository: %s
Hosting provider: %s

Suggest at most %d concrete maintenance opportunities for this repository.
Prefer these categories: %s.

Respond in JSON format with this structure:
{
  "opportunities": [
    {
      "type": "one of the categories above",
      "priority": "high|medium|low",
      "title": "short imperative title",
      "description": "what to change and why",
      "location": "file path, optionally with :line, or Repository-wide",
      "effort_estimate": "small|medium|large"
    }
  ]
}

Order the list from most to least important. Respond with JSON only.`,
		req.RepositoryURL, req.ProviderType, maxOpportunities, strings.Join(OpportunityTypes, ", ")), nil
}
