package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestProfileContextSummarizesTopRepos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/jdoe/repos" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "tiny", "description": "", "stargazers_count": 1, "language": ""},
			{"name": "big", "description": "The popular one", "stargazers_count": 900, "language": "Go"},
			{"name": "mid", "description": "Middle", "stargazers_count": 40, "language": "Rust"},
			{"name": "fourth", "description": "Should be cut", "stargazers_count": 2, "language": "C"}
		]`))
	}))
	defer server.Close()

	svc := NewEnrichmentService(5*time.Second, server.URL, 2000)

	got := svc.ProfileContext(context.Background(), "https://github.com/jdoe")

	if !strings.HasPrefix(got, "GitHub Context (Potential Analysis):") {
		t.Fatalf("missing header: %q", got)
	}
	bigIdx := strings.Index(got, "Repo: big")
	midIdx := strings.Index(got, "Repo: mid")
	if bigIdx == -1 || midIdx == -1 || bigIdx > midIdx {
		t.Fatalf("repos not ordered by stars: %q", got)
	}
	if strings.Contains(got, "fourth") {
		t.Fatalf("more than three repos summarized: %q", got)
	}
	if !strings.Contains(got, "No description.") {
		t.Fatalf("empty description not defaulted: %q", got)
	}
}

func TestProfileContextFailureStrings(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer notFound.Close()

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer empty.Close()

	tests := []struct {
		name    string
		apiBase string
		url     string
		want    string
	}{
		{
			name:    "not a github url",
			apiBase: notFound.URL,
			url:     "https://example.com/jdoe",
			want:    "Invalid GitHub URL.",
		},
		{
			name:    "profile missing",
			apiBase: notFound.URL,
			url:     "https://github.com/ghost",
			want:    "Could not fetch GitHub profile. It may be private or invalid.",
		},
		{
			name:    "no public repos",
			apiBase: empty.URL,
			url:     "https://github.com/quiet",
			want:    "GitHub profile found but has no public repositories.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEnrichmentService(5*time.Second, tt.apiBase, 2000)
			if got := svc.ProfileContext(context.Background(), tt.url); got != tt.want {
				t.Fatalf("ProfileContext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPortfolioContextStripsMarkupAndCapsLength(t *testing.T) {
	page := `<html><head><style>body { color: red }</style>
		<script>alert("hi")</script></head>
		<body><h1>Ana Diaz</h1><p>Product designer. ` + strings.Repeat("Work sample. ", 400) + `</p></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer server.Close()

	maxChars := 100
	svc := NewEnrichmentService(5*time.Second, "https://api.github.com", maxChars)

	got := svc.PortfolioContext(context.Background(), server.URL)

	if !strings.HasPrefix(got, "Portfolio Context (") {
		t.Fatalf("missing header: %q", got)
	}
	if strings.Contains(got, "alert") || strings.Contains(got, "color: red") {
		t.Fatalf("script or style content leaked: %q", got)
	}
	if !strings.Contains(got, "Ana Diaz") {
		t.Fatalf("page text lost: %q", got)
	}

	_, body, _ := strings.Cut(got, ":\n")
	body = strings.TrimSuffix(body, "...")
	if len(body) > maxChars {
		t.Fatalf("body exceeds cap: %d > %d", len(body), maxChars)
	}
}

func TestPortfolioContextUnreachablePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	svc := NewEnrichmentService(5*time.Second, "https://api.github.com", 2000)

	if got := svc.PortfolioContext(context.Background(), server.URL); got != "Could not access portfolio." {
		t.Fatalf("PortfolioContext() = %q", got)
	}
}
