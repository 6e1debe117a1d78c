// Package miner produces maintenance opportunities for the bundled demo
// backend. Both miners satisfy controller.Analyzer.
package miner

import (
	"context"
	"fmt"
	"strings"

	"github.com/helmcode/aomaas/pkg/apperrors"
	"github.com/helmcode/aomaas/pkg/llm"
	"github.com/helmcode/aomaas/pkg/model"
	"github.com/helmcode/aomaas/pkg/parser"
	"github.com/helmcode/aomaas/pkg/prompts"
)

// Kinds accepted by New.
const (
	KindSample = "sample"
	KindLLM    = "llm"
)

// Miner mines opportunities for one repository.
type Miner interface {
	MineOpportunities(ctx context.Context, req model.AnalyzeRequest) (*model.AnalysisResult, error)
}

// Options configures New.
type Options struct {
	Kind             string
	LLM              llm.Config
	MaxOpportunities int
}

// New builds the miner named by opts.Kind. An empty kind selects the sample miner.
func New(opts Options) (Miner, error) {
	switch strings.ToLower(opts.Kind) {
	case "", KindSample:
		return NewSample(opts.MaxOpportunities), nil
	case KindLLM:
		l, err := llm.CreateFromEnv(opts.LLM)
		if err != nil {
			return nil, fmt.Errorf("initialize LLM: %w", err)
		}
		return NewLLM(l, opts.MaxOpportunities), nil
	default:
		return nil, fmt.Errorf("unknown miner %q (supported: %s, %s)", opts.Kind, KindSample, KindLLM)
	}
}

// LLM asks a language model for opportunities.
type LLM struct {
	llm llm.LLM
	max int
}

func NewLLM(l llm.LLM, maxOpportunities int) *LLM {
	return &LLM{llm: l, max: maxOpportunities}
}

func (m *LLM) MineOpportunities(ctx context.Context, req model.AnalyzeRequest) (*model.AnalysisResult, error) {
	prompt, err := prompts.BuildMinePrompt(req, m.max)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), err)
	}

	rawResp, err := m.llm.Chat(ctx, prompt)
	if err != nil {
		return nil, apperrors.NewInternalError("LLM chat", err)
	}

	return parser.LimitOpportunities(parser.ParseMineResponse(rawResp), m.max), nil
}

// Model names the underlying LLM model.
func (m *LLM) Model() string {
	return m.llm.GetModel()
}
