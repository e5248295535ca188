package models

import "testing"

func TestAnalysis360Normalize(t *testing.T) {
	tests := []struct {
		name      string
		in        Analysis360
		wantLight string
		wantMatch int
	}{
		{
			name:      "empty analysis gets grey fallback",
			in:        Analysis360{},
			wantLight: LightGrey,
			wantMatch: 0,
		},
		{
			name:      "unknown light becomes grey",
			in:        Analysis360{TrafficLight: "purple", OverallMatchAccuracy: 50},
			wantLight: LightGrey,
			wantMatch: 50,
		},
		{
			name:      "valid light kept",
			in:        Analysis360{TrafficLight: LightYellow, OverallMatchAccuracy: 74},
			wantLight: LightYellow,
			wantMatch: 74,
		},
		{
			name:      "match clamped high",
			in:        Analysis360{TrafficLight: LightGreen, OverallMatchAccuracy: 140},
			wantLight: LightGreen,
			wantMatch: 100,
		},
		{
			name:      "match clamped low",
			in:        Analysis360{TrafficLight: LightRed, OverallMatchAccuracy: -3},
			wantLight: LightRed,
			wantMatch: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()

			if tt.in.TrafficLight != tt.wantLight {
				t.Fatalf("TrafficLight = %q, want %q", tt.in.TrafficLight, tt.wantLight)
			}
			if tt.in.OverallMatchAccuracy != tt.wantMatch {
				t.Fatalf("OverallMatchAccuracy = %d, want %d", tt.in.OverallMatchAccuracy, tt.wantMatch)
			}

			if tt.in.RiskPillar.RedFlags == nil ||
				tt.in.PotentialPillar.GreenFlags == nil ||
				tt.in.PotentialPillar.PlusSkills == nil ||
				tt.in.EvidencePillar.TechnicalFit == nil ||
				tt.in.EvidencePillar.CulturalFit == nil {
				t.Fatalf("nil slices survived Normalize: %+v", tt.in)
			}
		})
	}
}

func TestAnalysis360NormalizeClampsFitScores(t *testing.T) {
	a := Analysis360{
		TrafficLight: LightGreen,
		EvidencePillar: EvidencePillar{
			TechnicalFit: []TechnicalFit{
				{Skill: "Go", FitScore: 130},
				{Skill: "SQL", FitScore: -10},
				{Skill: "Docker", FitScore: 85},
			},
		},
	}

	a.Normalize()

	if got := a.EvidencePillar.TechnicalFit[0].FitScore; got != 100 {
		t.Fatalf("high fit score not clamped: %d", got)
	}
	if got := a.EvidencePillar.TechnicalFit[1].FitScore; got != 0 {
		t.Fatalf("negative fit score not clamped: %d", got)
	}
	if got := a.EvidencePillar.TechnicalFit[2].FitScore; got != 85 {
		t.Fatalf("in-range fit score changed: %d", got)
	}
}

func TestTriageResultNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       TriageResult
		wantCat  string
		wantURLs int
	}{
		{
			name:     "empty triage defaults to Other",
			in:       TriageResult{},
			wantCat:  CategoryOther,
			wantURLs: 0,
		},
		{
			name:     "unknown category defaults to Other",
			in:       TriageResult{JobCategory: "Engineering", URLsToAnalyze: []string{"https://github.com/a"}},
			wantCat:  CategoryOther,
			wantURLs: 1,
		},
		{
			name:     "known category kept",
			in:       TriageResult{JobCategory: CategoryDesign},
			wantCat:  CategoryDesign,
			wantURLs: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()

			if tt.in.JobCategory != tt.wantCat {
				t.Fatalf("JobCategory = %q, want %q", tt.in.JobCategory, tt.wantCat)
			}
			if tt.in.URLsToAnalyze == nil {
				t.Fatalf("URLsToAnalyze is nil after Normalize")
			}
			if len(tt.in.URLsToAnalyze) != tt.wantURLs {
				t.Fatalf("len(URLsToAnalyze) = %d, want %d", len(tt.in.URLsToAnalyze), tt.wantURLs)
			}
		})
	}
}
