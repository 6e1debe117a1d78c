package controller

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/helmcode/aomaas/pkg/apperrors"
	"github.com/helmcode/aomaas/pkg/logger"
	"github.com/helmcode/aomaas/pkg/model"
	"github.com/helmcode/aomaas/pkg/provider"
	"github.com/helmcode/aomaas/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrigger struct {
	enabled  bool
	enables  int
	disables int
}

func (f *fakeTrigger) SetEnabled(enabled bool) {
	f.enabled = enabled
	if enabled {
		f.enables++
	} else {
		f.disables++
	}
}

type fakeIndicator struct {
	visible bool
	shows   int
	hides   int
}

func (f *fakeIndicator) Show() { f.visible = true; f.shows++ }
func (f *fakeIndicator) Hide() { f.visible = false; f.hides++ }

type fakeResults struct {
	clears int
	shown  []view.Output
}

func (f *fakeResults) Clear()              { f.clears++ }
func (f *fakeResults) Show(out view.Output) { f.shown = append(f.shown, out) }

type fakeAnalyzer struct {
	requests []model.AnalyzeRequest
	result   *model.AnalysisResult
	err      error
	during   func()
}

func (f *fakeAnalyzer) MineOpportunities(_ context.Context, req model.AnalyzeRequest) (*model.AnalysisResult, error) {
	f.requests = append(f.requests, req)
	if f.during != nil {
		f.during()
	}
	return f.result, f.err
}

type harness struct {
	trigger   *fakeTrigger
	indicator *fakeIndicator
	results   *fakeResults
	analyzer  *fakeAnalyzer
	ctrl      *Controller
}

func newHarness(input string, analyzer *fakeAnalyzer) *harness {
	h := &harness{
		trigger:   &fakeTrigger{enabled: true},
		indicator: &fakeIndicator{},
		results:   &fakeResults{},
		analyzer:  analyzer,
	}
	h.ctrl = New(Elements{
		Input:     StaticInput(input),
		Trigger:   h.trigger,
		Results:   h.results,
		Indicator: h.indicator,
	}, analyzer, logger.Discard())
	return h
}

func TestSubmit_EmptyInputNeverCallsBackend(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		h := newHarness(input, &fakeAnalyzer{})

		out, err := h.ctrl.Submit(context.Background())

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Equal(t, view.ValidationError(), out)
		assert.Empty(t, h.analyzer.requests)
		assert.Equal(t, 0, h.indicator.shows)
		assert.Equal(t, 0, h.trigger.disables)
		assert.Equal(t, []view.Output{view.ValidationError()}, h.results.shown)
		assert.Equal(t, Idle, h.ctrl.State())
	}
}

func TestSubmit_DerivesProvider(t *testing.T) {
	tests := []struct {
		url  string
		want provider.Type
	}{
		{"https://github.com/a/b", provider.GitHub},
		{"  https://gitlab.com/a/b  ", provider.GitLab},
		{"https://bitbucket.org/a/b", provider.GitHub},
	}

	for _, tt := range tests {
		h := newHarness(tt.url, &fakeAnalyzer{result: &model.AnalysisResult{}})

		_, err := h.ctrl.Submit(context.Background())
		require.NoError(t, err)
		require.Len(t, h.analyzer.requests, 1)
		assert.Equal(t, tt.want, h.analyzer.requests[0].ProviderType)
	}
}

func TestSubmit_TrimsURL(t *testing.T) {
	h := newHarness("  https://github.com/a/b \n", &fakeAnalyzer{result: &model.AnalysisResult{}})

	_, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/a/b", h.analyzer.requests[0].RepositoryURL)
}

func TestSubmit_EmptyResultShowsNotice(t *testing.T) {
	h := newHarness("https://github.com/a/b", &fakeAnalyzer{
		result: &model.AnalysisResult{Opportunities: []model.Opportunity{}},
	})

	out, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, view.Output{Kind: view.KindNotice, Message: view.NoOpportunitiesFound}, out)
	assert.Equal(t, Succeeded, h.ctrl.Last())
}

func TestSubmit_RendersCards(t *testing.T) {
	h := newHarness("https://github.com/a/b", &fakeAnalyzer{
		result: &model.AnalysisResult{Opportunities: []model.Opportunity{
			{Type: "Bug", Priority: "HIGH", Title: "Fix X"},
		}},
	})

	out, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, view.KindResults, out.Kind)
	require.Len(t, out.Results.Cards, 1)

	card := out.Results.Cards[0]
	assert.Equal(t, "priority-high", card.PriorityClass)
	assert.Equal(t, "No description provided", card.Description)
	assert.Equal(t, 1, h.results.clears)
	assert.Equal(t, []view.Output{out}, h.results.shown)
}

func TestSubmit_InFlightElements(t *testing.T) {
	analyzer := &fakeAnalyzer{result: &model.AnalysisResult{}}
	h := newHarness("https://github.com/a/b", analyzer)

	analyzer.during = func() {
		assert.True(t, h.indicator.visible, "indicator shown while in flight")
		assert.False(t, h.trigger.enabled, "trigger disabled while in flight")
		assert.Equal(t, Submitting, h.ctrl.State())
	}

	_, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.False(t, h.indicator.visible)
	assert.True(t, h.trigger.enabled)
	assert.Equal(t, Idle, h.ctrl.State())
}

func TestSubmit_FailureRevertsOnceAndHidesDetail(t *testing.T) {
	var logBuf bytes.Buffer
	analyzer := &fakeAnalyzer{
		err: apperrors.NewRequestError("unexpected status 503", http.StatusServiceUnavailable, "Service Unavailable", nil),
	}
	h := newHarness("https://github.com/a/b", analyzer)
	h.ctrl.log = logger.New("info", logger.FormatText, &logBuf)

	out, err := h.ctrl.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, view.RequestFailure(), out)
	assert.NotContains(t, out.Message, "503")
	assert.NotContains(t, out.Message, "Service Unavailable")

	assert.Equal(t, 1, h.indicator.shows)
	assert.Equal(t, 1, h.indicator.hides)
	assert.False(t, h.indicator.visible)
	assert.Equal(t, 1, h.trigger.disables)
	assert.Equal(t, 1, h.trigger.enables)
	assert.True(t, h.trigger.enabled)

	assert.Equal(t, Idle, h.ctrl.State())
	assert.Equal(t, Failed, h.ctrl.Last())
	assert.Len(t, analyzer.requests, 1, "no retry")

	assert.Contains(t, logBuf.String(), "repository analysis failed")
	assert.Contains(t, logBuf.String(), "status=503")
}

func TestSubmit_TransportErrorIsGeneric(t *testing.T) {
	h := newHarness("https://gitlab.com/a/b", &fakeAnalyzer{err: errors.New("dial tcp: connection refused")})

	out, err := h.ctrl.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, view.FailureMessage, out.Message)
	assert.True(t, h.trigger.enabled)
	assert.False(t, h.indicator.visible)
}

func TestSubmit_Idempotent(t *testing.T) {
	analyzer := &fakeAnalyzer{result: &model.AnalysisResult{Opportunities: []model.Opportunity{
		{Title: "Update deps", EffortEstimate: "small"},
		{Title: "Add tests", Priority: "low"},
	}}}
	h := newHarness("https://github.com/a/b", analyzer)

	first, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)
	second, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, h.results.clears)
	assert.Equal(t, analyzer.requests[0], analyzer.requests[1])
}

func TestSubmit_RejectsReentrantSubmission(t *testing.T) {
	analyzer := &fakeAnalyzer{result: &model.AnalysisResult{}}
	h := newHarness("https://github.com/a/b", analyzer)

	var nestedErr error
	analyzer.during = func() {
		_, nestedErr = h.ctrl.Submit(context.Background())
	}

	_, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, nestedErr, ErrInFlight)
	assert.Len(t, analyzer.requests, 1)
	assert.Equal(t, 1, h.indicator.shows)
	assert.Equal(t, 1, h.trigger.enables)
}

func TestNew_NilOptionalElements(t *testing.T) {
	results := &fakeResults{}
	ctrl := New(Elements{Input: StaticInput("https://github.com/a/b"), Results: results},
		&fakeAnalyzer{result: &model.AnalysisResult{}}, nil)

	_, err := ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Len(t, results.shown, 1)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
}

func TestSubmit_NilResultShowsNotice(t *testing.T) {
	h := newHarness("https://github.com/a/b", &fakeAnalyzer{})
	h.ctrl.log = logger.New("debug", logger.FormatText, &bytes.Buffer{})

	out, err := h.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, view.KindNotice, out.Kind)
	assert.Equal(t, Succeeded, h.ctrl.Last())
}
