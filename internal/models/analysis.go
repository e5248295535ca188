package models

// Traffic light values the 360° analysis may carry. Grey is the fallback for
// anything missing or unrecognized coming back from the model.
const (
	LightGreen  = "green"
	LightYellow = "yellow"
	LightRed    = "red"
	LightGrey   = "grey"
)

// Analysis360 is the structured risk/potential/evidence record produced by the
// second scoring stage. JSON tags follow the model's output contract exactly,
// including the "fit_score_%" key.
type Analysis360 struct {
	TrafficLight         string          `json:"traffic_light"`
	OverallMatchAccuracy int             `json:"overall_match_accuracy"`
	RiskPillar           RiskPillar      `json:"risk_pillar"`
	PotentialPillar      PotentialPillar `json:"potential_pillar"`
	EvidencePillar       EvidencePillar  `json:"evidence_pillar"`
	AnalystSummary       string          `json:"analyst_summary"`
}

type RiskPillar struct {
	RedFlags []RedFlag `json:"red_flags"`
}

type RedFlag struct {
	Alert  string `json:"alert"`
	Detail string `json:"detail"`
}

type PotentialPillar struct {
	GreenFlags []GreenFlag `json:"green_flags"`
	PlusSkills []string    `json:"plus_skills"`
}

type GreenFlag struct {
	HiddenGem string `json:"hidden_gem"`
	Detail    string `json:"detail"`
}

type EvidencePillar struct {
	TechnicalFit []TechnicalFit `json:"technical_fit"`
	CulturalFit  []CulturalFit  `json:"cultural_fit"`
}

type TechnicalFit struct {
	Skill      string `json:"skill"`
	FitScore   int    `json:"fit_score_%"`
	CVEvidence string `json:"cv_evidence"`
}

type CulturalFit struct {
	Value      string `json:"value"`
	CVEvidence string `json:"cv_evidence"`
}

// Normalize fills defaults for everything the model left out so the rest of
// the system never re-checks for missing fields: nil lists become empty,
// unknown traffic lights become grey, and the match accuracy is clamped to
// 0-100.
func (a *Analysis360) Normalize() {
	switch a.TrafficLight {
	case LightGreen, LightYellow, LightRed:
	default:
		a.TrafficLight = LightGrey
	}

	if a.OverallMatchAccuracy < 0 {
		a.OverallMatchAccuracy = 0
	}
	if a.OverallMatchAccuracy > 100 {
		a.OverallMatchAccuracy = 100
	}

	if a.RiskPillar.RedFlags == nil {
		a.RiskPillar.RedFlags = []RedFlag{}
	}
	if a.PotentialPillar.GreenFlags == nil {
		a.PotentialPillar.GreenFlags = []GreenFlag{}
	}
	if a.PotentialPillar.PlusSkills == nil {
		a.PotentialPillar.PlusSkills = []string{}
	}
	if a.EvidencePillar.TechnicalFit == nil {
		a.EvidencePillar.TechnicalFit = []TechnicalFit{}
	}
	if a.EvidencePillar.CulturalFit == nil {
		a.EvidencePillar.CulturalFit = []CulturalFit{}
	}

	for i := range a.EvidencePillar.TechnicalFit {
		fit := &a.EvidencePillar.TechnicalFit[i]
		if fit.FitScore < 0 {
			fit.FitScore = 0
		}
		if fit.FitScore > 100 {
			fit.FitScore = 100
		}
	}
}

// TriageResult is the first-stage classification output: a job category and
// the candidate-supplied URLs worth enriching.
type TriageResult struct {
	JobCategory   string   `json:"job_category"`
	URLsToAnalyze []string `json:"urls_to_analyze"`
}

// Job categories the triage stage may return.
const (
	CategoryTech        = "Tech"
	CategoryDesign      = "Design"
	CategorySales       = "Sales"
	CategoryManualLabor = "Manual Labor"
	CategoryOther       = "Other"
)

// Normalize defaults an unknown category to Other and guarantees a non-nil
// URL list.
func (t *TriageResult) Normalize() {
	switch t.JobCategory {
	case CategoryTech, CategoryDesign, CategorySales, CategoryManualLabor, CategoryOther:
	default:
		t.JobCategory = CategoryOther
	}
	if t.URLsToAnalyze == nil {
		t.URLsToAnalyze = []string{}
	}
}
