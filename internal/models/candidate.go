package models

import (
	"time"
)

// CandidateContext is the job/culture/CV material an analysis was produced
// from. It is retained with the candidate so feedback and executive summaries
// can reference it without re-deriving anything.
type CandidateContext struct {
	CVText      string `json:"cv_text"`
	CultureText string `json:"culture_text"`
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
}

// Candidate is one ingested CV plus its computed 360° analysis. Immutable
// once built; released only when the review session is reset.
type Candidate struct {
	ID       string           `json:"id"`
	Filename string           `json:"filename"`
	Analysis Analysis360      `json:"analysis_360"`
	Context  CandidateContext `json:"full_context"`
}

// CandidateRecord is the durable row written for every successfully analyzed
// candidate. Analysis360 is stored as a JSON blob.
type CandidateRecord struct {
	ID                uint      `gorm:"primary_key;auto_increment" json:"id"`
	CVFilename        string    `gorm:"type:text" json:"cv_filename"`
	CVFilepath        string    `gorm:"type:text" json:"cv_filepath"`
	Analysis360       string    `gorm:"type:jsonb" json:"analysis_360"`
	FeedbackEmailHTML *string   `gorm:"type:text" json:"feedback_email_html,omitempty"`
	Status            string    `gorm:"type:text" json:"status"`
	CreatedAt         time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CandidateRecord) TableName() string {
	return "candidates"
}

// Candidate record statuses.
const (
	StatusAnalyzed = "analyzed"
)
