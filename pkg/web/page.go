package web

import (
	"html/template"
	"net/http"

	"github.com/helmcode/aomaas/pkg/view"
)

// page is the per-request form state. It is the Input and Trigger handle
// for the controller; results and indicator return the other two handles.
// Once the controller settles, the page is rendered as HTML.
type page struct {
	RepositoryURL string
	Disabled      bool
	Loading       bool
	Output        *view.Output
}

func (p *page) Value() string           { return p.RepositoryURL }
func (p *page) SetEnabled(enabled bool) { p.Disabled = !enabled }

func (p *page) results() *pageResults     { return &pageResults{p: p} }
func (p *page) indicator() *pageIndicator { return &pageIndicator{p: p} }

type pageResults struct{ p *page }

func (r *pageResults) Clear()               { r.p.Output = nil }
func (r *pageResults) Show(out view.Output) { r.p.Output = &out }

type pageIndicator struct{ p *page }

func (i *pageIndicator) Show() { i.p.Loading = true }
func (i *pageIndicator) Hide() { i.p.Loading = false }

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

func renderPage(w http.ResponseWriter, status int, p *page) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return pageTmpl.Execute(w, p)
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>AOMaaS Demo</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif; max-width: 860px; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
  form { display: flex; gap: .5rem; margin-bottom: 1.5rem; }
  input[type=text] { flex: 1; padding: .6rem 1rem; border: 1px solid #d0d7de; border-radius: 6px; }
  button { padding: .6rem 1.2rem; border-radius: 6px; border: 0; background: #1f6feb; color: #fff; }
  button:disabled { opacity: .5; }
  .error-message { color: #cf222e; padding: .75rem; border: 1px solid #cf222e; border-radius: 6px; }
  .no-results { color: #656d76; }
  .opportunity-card { border: 1px solid #d0d7de; border-radius: 8px; padding: 1rem; margin-bottom: 1rem; }
  .opportunity-header { display: flex; justify-content: space-between; font-size: .85rem; }
  .opportunity-meta { display: flex; justify-content: space-between; color: #656d76; font-size: .85rem; }
  .priority-high { color: #cf222e; font-weight: 600; }
  .priority-medium { color: #9a6700; }
  .priority-low { color: #1a7f37; }
  #loading-indicator { display: none; }
</style>
</head>
<body>
<h1>Autonomous Open-Source Maintainer</h1>
<p>Enter a GitHub or GitLab repository URL to see suggested maintenance work.</p>
<form id="demo-form" method="post" action="/demo/analyze">
  <input id="repo-input" type="text" name="repository_url" placeholder="https://github.com/owner/repo" value="{{.RepositoryURL}}">
  <button id="analyze-button" type="submit"{{if .Disabled}} disabled{{end}}>Analyze</button>
</form>
<div id="loading-indicator"{{if .Loading}} style="display:flex"{{end}}>Analyzing repository...</div>
<div id="demo-results">
{{- with .Output}}
  {{- if eq .Kind "error"}}
  <div class="error-message">{{.Message}}</div>
  {{- else if eq .Kind "notice"}}
  <div class="no-results">{{.Message}}</div>
  {{- else if .Results}}
  <div class="results-header">
    <h3>{{.Results.Title}}</h3>
    <p>{{.Results.Summary}}</p>
  </div>
  <div class="results-list">
    {{- range .Results.Cards}}
    <div class="opportunity-card">
      <div class="opportunity-header">
        <div class="opportunity-type">{{.Type}}</div>
        <div class="opportunity-priority {{.PriorityClass}}">{{.Priority}}</div>
      </div>
      <h4 class="opportunity-title">{{.Title}}</h4>
      <p class="opportunity-description">{{.Description}}</p>
      <div class="opportunity-meta">
        <span class="opportunity-location">{{.Location}}</span>
        <span class="opportunity-effort">{{.Effort}}</span>
      </div>
    </div>
    {{- end}}
  </div>
  {{- end}}
{{- end}}
</div>
</body>
</html>
`
