package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildTriagePrompt creates the first-stage classification prompt. The model
// picks a job category and the candidate URLs worth enriching.
func (pb *PromptBuilder) BuildTriagePrompt(jobDescription, cvText string) string {
	return fmt.Sprintf(`You are an HR Assistant performing job classification triage. Based on the Job Description and CV text, return an analysis plan in JSON format.

The 'job_category' must be one of: ['Tech', 'Design', 'Sales', 'Manual Labor', 'Other'].
The 'urls_to_analyze' should only include URLs relevant for analyzing potential in that category.

[CONTEXT]
Job Description: %s
CV Text: %s

Return ONLY valid JSON without any markdown formatting or additional text.

JSON Example:
{
  "job_category": "Tech",
  "urls_to_analyze": ["https://github.com/username", "https://username.dev/blog"]
}`, jobDescription, cvText)
}

// BuildMatching360Prompt creates the second-stage scoring prompt producing the
// full risk/potential/evidence analysis.
func (pb *PromptBuilder) BuildMatching360Prompt(jobAndCultureText, cvText, externalContext string) string {
	return fmt.Sprintf(`You are 'Inter-sight', an HR Director expert in Risk, Potential, and Evidence analysis.
Analyze the candidate based on THREE contexts: the CV, the Job Description/Culture, and the External Context (GitHub/Portfolio).

Return your 360° analysis ONLY in valid JSON format without any markdown formatting.

[CONTEXT]
Culture and Job Description: %s
CV Text: %s
External Context (GitHub/Portfolio): %s

The JSON format must be:
{
  "traffic_light": "green | yellow | red",
  "overall_match_accuracy": <number 0-100>,
  "risk_pillar": {
    "red_flags": [
      {
        "alert": "Brief title",
        "detail": "Detailed explanation"
      }
    ]
  },
  "potential_pillar": {
    "green_flags": [
      {
        "hidden_gem": "Brief title",
        "detail": "Detailed explanation"
      }
    ],
    "plus_skills": ["Additional skill 1", "Additional skill 2"]
  },
  "evidence_pillar": {
    "technical_fit": [
      {
        "skill": "Skill name",
        "fit_score_%%": <number 0-100>,
        "cv_evidence": "Specific text from CV"
      }
    ],
    "cultural_fit": [
      {
        "value": "Company value",
        "cv_evidence": "Specific text from CV"
      }
    ]
  },
  "analyst_summary": "Brief summary of the analysis"
}

Ensure all fields are present even if empty arrays or default values are needed.`, jobAndCultureText, cvText, externalContext)
}

// BuildExecutiveSummaryPrompt creates the prompt used when a recruiter asks
// for extra help deciding on a held candidate.
func (pb *PromptBuilder) BuildExecutiveSummaryPrompt(analysisJSON, cultureText string) string {
	return fmt.Sprintf(`You are 'Inter-sight'. A recruiter is undecided ('On Hold') about a candidate and has requested additional information.
Use the 360° analysis JSON and the original context to generate an executive summary (maximum 120 words) to help them decide.

The summary must include:
1. Candidate's profile overview
2. The "Case For" (Potential/Strong Evidence from GitHub/Portfolio)
3. The "Case Against" (Risks/Red Flags)
4. Final verdict: (Recommendation: Interview / Do Not Interview)

[CONTEXT]
360° Analysis (JSON): %s
Company Culture: %s

Generate the executive summary in clear, professional language:`, analysisJSON, cultureText)
}

// BuildFeedbackPrompt creates the rejection feedback email prompt.
func (pb *PromptBuilder) BuildFeedbackPrompt(candidateName, jobTitle, companyName, analysisJSON string) string {
	return fmt.Sprintf(`You are 'Inter-sight' in Career Advisor Mode. A candidate has been rejected after the recruitment process.
Use their CV and the 360° analysis to generate a constructive, automated feedback email.
The email must be empathetic and suggest improvements based on the Evidence and Potential pillars.

[CONTEXT]
Candidate Name: %s
Job Title: %s
Company Name: %s
360° Analysis (JSON): %s

Generate the body of the feedback email with:
- Professional and empathetic tone
- Specific areas for improvement
- Actionable recommendations
- Encouragement for future applications

Email body:`, candidateName, jobTitle, companyName, analysisJSON)
}
