package miner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/helmcode/aomaas/pkg/apperrors"
	"github.com/helmcode/aomaas/pkg/llm"
	"github.com/helmcode/aomaas/pkg/model"
	"github.com/helmcode/aomaas/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeLLM) Chat(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func (f *fakeLLM) GetModel() string { return "fake-model" }

var req = model.AnalyzeRequest{RepositoryURL: "https://github.com/a/b", ProviderType: provider.GitHub}

func TestSample(t *testing.T) {
	result, err := NewSample(0).MineOpportunities(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, result.Opportunities, len(sampleOpportunities))

	result.Opportunities[0].Title = "mutated"
	again, err := NewSample(0).MineOpportunities(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Optimize database query performance", again.Opportunities[0].Title)
}

func TestSample_Limit(t *testing.T) {
	result, err := NewSample(2).MineOpportunities(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, result.Opportunities, 2)
}

func TestSample_RequiresURL(t *testing.T) {
	_, err := NewSample(0).MineOpportunities(context.Background(), model.AnalyzeRequest{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestSample_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSample(0).MineOpportunities(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLLM(t *testing.T) {
	fake := &fakeLLM{reply: "```json\n" + `{"opportunities":[{"title":"a"},{"title":"b"},{"title":"c"}]}` + "\n```"}
	m := NewLLM(fake, 2)

	result, err := m.MineOpportunities(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, result.Opportunities, 2)
	assert.True(t, strings.Contains(fake.prompt, "https://github.com/a/b"))
	assert.Equal(t, "fake-model", m.Model())
}

func TestLLM_ChatError(t *testing.T) {
	m := NewLLM(&fakeLLM{err: errors.New("rate limited")}, 0)

	_, err := m.MineOpportunities(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func TestNew(t *testing.T) {
	m, err := New(Options{})
	require.NoError(t, err)
	assert.IsType(t, &Sample{}, m)

	_, err = New(Options{Kind: "magic"})
	assert.Error(t, err)

	t.Setenv("OPENAI_API_KEY", "k")
	m, err = New(Options{Kind: "LLM", LLM: llmConfig("openai")})
	require.NoError(t, err)
	assert.IsType(t, &LLM{}, m)
}

func llmConfig(p string) llm.Config {
	return llm.Config{Provider: llm.Provider(p)}
}
