package models

// FileDiagnostic reports a per-file pipeline failure. Failures never abort
// the batch; each one names the file it belongs to.
type FileDiagnostic struct {
	Filename string `json:"filename"`
	Stage    string `json:"stage"`
	Error    string `json:"error"`
}

type AnalyzeResponse struct {
	Candidates  []Candidate      `json:"candidates"`
	Diagnostics []FileDiagnostic `json:"diagnostics"`
}

type DecideRequest struct {
	Decision string `json:"decision"`
}

type FinalizeRequest struct {
	Decision string `json:"decision"`
}

type SummaryResponse struct {
	CandidateID string `json:"candidate_id"`
	Summary     string `json:"summary"`
}

type FeedbackResponse struct {
	Feedback map[string]string `json:"feedback"`
}

type SimilarCandidate struct {
	CandidateID string  `json:"candidate_id"`
	Filename    string  `json:"filename"`
	Score       float32 `json:"score"`
}

type SimilarResponse struct {
	Results []SimilarCandidate `json:"results"`
}
