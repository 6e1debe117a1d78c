// Package controller drives the repository-analysis form: validate the URL,
// ask the analysis endpoint once, and hand the rendered outcome to whatever
// surface owns the elements.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/helmcode/aomaas/pkg/apperrors"
	"github.com/helmcode/aomaas/pkg/model"
	"github.com/helmcode/aomaas/pkg/provider"
	"github.com/helmcode/aomaas/pkg/view"
	"github.com/sirupsen/logrus"
)

// ErrInFlight is returned when Submit is called while a request is pending.
var ErrInFlight = errors.New("a submission is already in progress")

// State is where the form is in its submit cycle.
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Input yields the raw repository URL typed by the user.
type Input interface {
	Value() string
}

// Trigger is the submit control.
type Trigger interface {
	SetEnabled(enabled bool)
}

// Indicator is the loading indicator.
type Indicator interface {
	Show()
	Hide()
}

// Results is the container outcomes are drawn into.
type Results interface {
	Clear()
	Show(out view.Output)
}

// Analyzer mines opportunities for a repository. *client.Client and the demo
// miners both satisfy it.
type Analyzer interface {
	MineOpportunities(ctx context.Context, req model.AnalyzeRequest) (*model.AnalysisResult, error)
}

// Elements are the handles the controller works on.
type Elements struct {
	Input     Input
	Trigger   Trigger
	Results   Results
	Indicator Indicator
}

// Controller is the form controller. It is safe to call from several
// goroutines, but only one submission runs at a time.
type Controller struct {
	el       Elements
	analyzer Analyzer
	log      logrus.FieldLogger

	mu    sync.Mutex
	state State
	last  State
}

// New wires a controller to its elements. Nil Trigger and Indicator are
// replaced by no-ops; Input, Results and analyzer are required.
func New(el Elements, analyzer Analyzer, log logrus.FieldLogger) *Controller {
	if el.Trigger == nil {
		el.Trigger = nopTrigger{}
	}
	if el.Indicator == nil {
		el.Indicator = nopIndicator{}
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Controller{el: el, analyzer: analyzer, log: log}
}

// State returns the live state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Last returns how the most recent submission settled, or Idle if none has.
func (c *Controller) Last() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Submit handles one form submission. The returned Output has already been
// shown in the Results element. The error is a validation or request
// AppError, or ErrInFlight; in every case the controller is back to Idle
// (or still Submitting for ErrInFlight) when Submit returns.
func (c *Controller) Submit(ctx context.Context) (view.Output, error) {
	url := strings.TrimSpace(c.el.Input.Value())
	if url == "" {
		out := view.ValidationError()
		c.el.Results.Show(out)
		return out, apperrors.NewValidationError("repository URL is empty", nil)
	}

	if !c.begin() {
		return view.Output{}, ErrInFlight
	}

	c.el.Indicator.Show()
	c.el.Trigger.SetEnabled(false)
	c.el.Results.Clear()

	settled := Failed
	defer func() {
		c.el.Indicator.Hide()
		c.el.Trigger.SetEnabled(true)
		c.finish(settled)
	}()

	req := model.AnalyzeRequest{
		RepositoryURL: url,
		ProviderType:  provider.Detect(url),
	}
	result, err := c.analyzer.MineOpportunities(ctx, req)
	if err != nil {
		c.logFailure(req, err)
		out := view.RequestFailure()
		c.el.Results.Show(out)
		return out, err
	}

	out := view.RenderResult(result)
	c.el.Results.Show(out)
	settled = Succeeded

	found := 0
	if out.Results != nil {
		found = out.Results.Count
	}
	c.log.WithFields(logrus.Fields{
		"repository_url": req.RepositoryURL,
		"provider_type":  req.ProviderType,
		"opportunities":  found,
	}).Debug("repository analysis complete")

	return out, nil
}

func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Submitting {
		return false
	}
	c.state = Submitting
	return true
}

func (c *Controller) finish(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = s
	c.state = Idle
}

func (c *Controller) logFailure(req model.AnalyzeRequest, err error) {
	fields := logrus.Fields{
		"repository_url": req.RepositoryURL,
		"provider_type":  req.ProviderType,
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode != 0 {
			fields["status"] = appErr.StatusCode
		}
		if appErr.Details != "" {
			fields["details"] = appErr.Details
		}
	}
	c.log.WithFields(fields).WithError(err).Error("repository analysis failed")
}

type nopTrigger struct{}

func (nopTrigger) SetEnabled(bool) {}

type nopIndicator struct{}

func (nopIndicator) Show() {}
func (nopIndicator) Hide() {}

// StaticInput is an Input holding a fixed value, e.g. a CLI argument.
type StaticInput string

func (s StaticInput) Value() string { return string(s) }
