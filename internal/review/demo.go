package review

import (
	"intersight/api/internal/models"
)

// DemoDeck returns a pre-seeded deck so recruiters can try the swipe flow
// without uploading CVs or configuring an API key.
func DemoDeck() []models.Candidate {
	return []models.Candidate{
		{
			ID:       "demo_valeria",
			Filename: "Valeria_Romero.pdf",
			Analysis: models.Analysis360{
				TrafficLight:         models.LightGreen,
				OverallMatchAccuracy: 92,
				RiskPillar: models.RiskPillar{
					RedFlags: []models.RedFlag{
						{Alert: "Availability", Detail: "Needs two weeks before starting the new role."},
					},
				},
				PotentialPillar: models.PotentialPillar{
					GreenFlags: []models.GreenFlag{
						{HiddenGem: "Data architect", Detail: "Designed MLOps pipelines with zero incidents over 12 months."},
						{HiddenGem: "Mentor", Detail: "Leads a coaching program for women in tech."},
					},
					PlusSkills: []string{"People management", "Observability", "FinOps"},
				},
				EvidencePillar: models.EvidencePillar{
					TechnicalFit: []models.TechnicalFit{
						{Skill: "Python", FitScore: 95, CVEvidence: "Built FastAPI microservices orchestrated on Kubernetes."},
						{Skill: "AWS", FitScore: 93, CVEvidence: "Implemented serverless architectures with Lambda and Step Functions."},
						{Skill: "Data reliability", FitScore: 90, CVEvidence: "Implemented quality checks with Airflow and Great Expectations."},
					},
					CulturalFit: []models.CulturalFit{
						{Value: "Ownership", CVEvidence: "Proposed and delivered the cross-team observability roadmap."},
						{Value: "Collaboration", CVEvidence: "Ran workshops with product and compliance to prioritize deliverables."},
					},
				},
				AnalystSummary: "Senior profile with end-to-end vision. Excellent technical and cultural match; only the start date needs managing.",
			},
			Context: models.CandidateContext{
				CVText:      "Valeria leads data squads and automated large-scale financial reporting.",
				CultureText: "Aurora Bank prioritizes ownership, transparency, and customer obsession.",
				JobTitle:    "Senior Backend/Data Engineer",
				CompanyName: "Aurora Bank",
			},
		},
		{
			ID:       "demo_mateo",
			Filename: "Mateo_Suarez.pdf",
			Analysis: models.Analysis360{
				TrafficLight:         models.LightYellow,
				OverallMatchAccuracy: 74,
				RiskPillar: models.RiskPillar{
					RedFlags: []models.RedFlag{
						{Alert: "Short tenure", Detail: "Yearly rotation across the last three employers."},
					},
				},
				PotentialPillar: models.PotentialPillar{
					GreenFlags: []models.GreenFlag{
						{HiddenGem: "Commercial storytelling", Detail: "Won 4 enterprise deals running discovery workshops."},
					},
					PlusSkills: []string{"NPS measurement", "Sales playbooks"},
				},
				EvidencePillar: models.EvidencePillar{
					TechnicalFit: []models.TechnicalFit{
						{Skill: "B2B sales", FitScore: 78, CVEvidence: "Grew pipeline 160% at a cybersecurity SaaS."},
						{Skill: "Account Based Marketing", FitScore: 70, CVEvidence: "Co-created target-account campaigns with marketing."},
					},
					CulturalFit: []models.CulturalFit{
						{Value: "Continuous learning", CVEvidence: "Recent certification in strategic negotiation."},
					},
				},
				AnalystSummary: "Good revenue potential, but needs a retention plan and clarity on motivators to reduce churn.",
			},
			Context: models.CandidateContext{
				CVText:      "Mateo leads enterprise sales teams across Latin America.",
				CultureText: "Nexora prioritizes curiosity, collaboration, and results.",
				JobTitle:    "Account Executive LATAM",
				CompanyName: "Nexora",
			},
		},
		{
			ID:       "demo_lucia",
			Filename: "Lucia_Gomez.pdf",
			Analysis: models.Analysis360{
				TrafficLight:         models.LightRed,
				OverallMatchAccuracy: 48,
				RiskPillar: models.RiskPillar{
					RedFlags: []models.RedFlag{
						{Alert: "Technical gap", Detail: "Experience centered on support, not product development."},
						{Alert: "Cultural mismatch", Detail: "Declared preference for individual work in highly structured environments."},
					},
				},
				PotentialPillar: models.PotentialPillar{
					GreenFlags: []models.GreenFlag{
						{HiddenGem: "Attention to detail", Detail: "Led manual QA efforts that cut critical incidents by 30%."},
					},
					PlusSkills: []string{"Documentation", "Support coordination"},
				},
				EvidencePillar: models.EvidencePillar{
					TechnicalFit: []models.TechnicalFit{
						{Skill: "Manual testing", FitScore: 60, CVEvidence: "Designed test plans for banking systems."},
					},
					CulturalFit: []models.CulturalFit{},
				},
				AnalystSummary: "Does not cover the digital product requirements; better suited for quality or specialized support roles.",
			},
			Context: models.CandidateContext{
				CVText:      "Lucia works as a QA analyst focused on manual validation.",
				CultureText: "Pixel Labs favors extreme autonomy and rapid prototyping.",
				JobTitle:    "Product Designer",
				CompanyName: "Pixel Labs",
			},
		},
	}
}
