package provider

import "strings"

// Type is the coarse hosting-service hint sent along with a repository URL.
type Type string

const (
	GitHub Type = "github"
	GitLab Type = "gitlab"
)

// Detect classifies a repository URL by substring. It is not a URL parser:
// anything that mentions neither host falls back to GitHub.
func Detect(url string) Type {
	switch {
	case strings.Contains(url, "github.com"):
		return GitHub
	case strings.Contains(url, "gitlab.com"):
		return GitLab
	default:
		return GitHub
	}
}

// Valid reports whether t is one of the known provider types.
func Valid(t Type) bool {
	return t == GitHub || t == GitLab
}
