package services

import (
	"regexp"
	"sort"
)

var urlPattern = regexp.MustCompile(`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\\(\\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)

// Known profile-site path shapes, each normalized to a canonical prefix plus
// the captured handle so variants of the same profile collapse to one entry.
var profilePatterns = []struct {
	pattern *regexp.Regexp
	prefix  string
}{
	{regexp.MustCompile(`github\.com/([\w\-]+)`), "https://github.com/"},
	{regexp.MustCompile(`linkedin\.com/in/([\w\-]+)`), "https://linkedin.com/in/"},
	{regexp.MustCompile(`behance\.net/([\w\-]+)`), "https://behance.net/"},
	{regexp.MustCompile(`dribbble\.com/([\w\-]+)`), "https://dribbble.com/"},
}

// FindLinks scans CV text for URLs and known professional profile links.
// The result is duplicate-free and sorted so repeated runs over the same
// text are deterministic.
func FindLinks(text string) []string {
	found := make(map[string]struct{})

	for _, link := range urlPattern.FindAllString(text, -1) {
		found[link] = struct{}{}
	}

	for _, p := range profilePatterns {
		for _, match := range p.pattern.FindAllStringSubmatch(text, -1) {
			found[p.prefix+match[1]] = struct{}{}
		}
	}

	links := make([]string, 0, len(found))
	for link := range found {
		links = append(links, link)
	}
	sort.Strings(links)

	return links
}
