package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"
)

// NoEnrichment is the sentinel context used when no external enrichment was
// attempted or applicable for a candidate.
const NoEnrichment = "N/A"

// GitHubEnricher summarizes a candidate's public code-hosting profile into a
// bounded text blob. Failures come back as readable strings, not errors; a
// missing profile never blocks the scoring stage.
type GitHubEnricher interface {
	ProfileContext(ctx context.Context, profileURL string) string
}

// PortfolioEnricher scrapes a portfolio page into a bounded text blob under
// the same report-and-continue policy.
type PortfolioEnricher interface {
	PortfolioContext(ctx context.Context, portfolioURL string) string
}

type enrichmentService struct {
	client       *http.Client
	apiBase      string
	portfolioMax int
}

func NewEnrichmentService(timeout time.Duration, apiBase string, portfolioMax int) *enrichmentService {
	return &enrichmentService{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		apiBase:      apiBase,
		portfolioMax: portfolioMax,
	}
}

var githubUserPattern = regexp.MustCompile(`github\.com/([\w\-]+)`)

type githubRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Language    string `json:"language"`
}

// ProfileContext implements GitHubEnricher. It fetches the user's public
// repositories and summarizes the top three by stars.
func (s *enrichmentService) ProfileContext(ctx context.Context, profileURL string) string {
	if profileURL == "" {
		return NoEnrichment
	}

	match := githubUserPattern.FindStringSubmatch(profileURL)
	if match == nil {
		return "Invalid GitHub URL."
	}
	username := match[1]

	apiURL := fmt.Sprintf("%s/users/%s/repos", s.apiBase, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		log.Printf("⚠️  Failed to build GitHub request: %v\n", err)
		return "Error processing GitHub profile."
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("⚠️  GitHub request failed: %v\n", err)
		return "Error processing GitHub profile."
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "Could not fetch GitHub profile. It may be private or invalid."
	}

	var repos []githubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		log.Printf("⚠️  Failed to decode GitHub response: %v\n", err)
		return "Error processing GitHub profile."
	}

	if len(repos) == 0 {
		return "GitHub profile found but has no public repositories."
	}

	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].Stars > repos[j].Stars
	})

	var b strings.Builder
	b.WriteString("GitHub Context (Potential Analysis):\n")
	for i, repo := range repos {
		if i >= 3 {
			break
		}
		description := repo.Description
		if description == "" {
			description = "No description."
		}
		language := repo.Language
		if language == "" {
			language = "N/A"
		}
		fmt.Fprintf(&b, "- Repo: %s (Stars: %d)\n  Description: %s\n  Language: %s\n",
			repo.Name, repo.Stars, description, language)
	}

	return b.String()
}

// PortfolioContext implements PortfolioEnricher.
func (s *enrichmentService) PortfolioContext(ctx context.Context, portfolioURL string) string {
	if portfolioURL == "" {
		return NoEnrichment
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, portfolioURL, nil)
	if err != nil {
		return fmt.Sprintf("Error reading portfolio: %v", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Error reading portfolio: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "Could not access portfolio."
	}

	// 5MB cap on the page body
	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return fmt.Sprintf("Error reading portfolio: %v", err)
	}

	pageText := htmlToText(string(body))
	if len(pageText) > s.portfolioMax {
		pageText = pageText[:s.portfolioMax]
	}

	return fmt.Sprintf("Portfolio Context (%s):\n%s...", portfolioURL, pageText)
}

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// htmlToText strips scripts, styles, and markup, collapsing the remainder
// into whitespace-separated text.
func htmlToText(html string) string {
	html = stripElement(html, "script")
	html = stripElement(html, "style")
	html = htmlTagPattern.ReplaceAllString(html, " ")
	return strings.Join(strings.Fields(html), " ")
}

func stripElement(html, tag string) string {
	open := "<" + tag
	closing := "</" + tag + ">"

	for {
		start := strings.Index(strings.ToLower(html), open)
		if start == -1 {
			break
		}
		end := strings.Index(strings.ToLower(html[start:]), closing)
		if end == -1 {
			break
		}
		html = html[:start] + html[start+end+len(closing):]
	}

	return html
}
