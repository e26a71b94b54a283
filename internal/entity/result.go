package entity

// LinkSet holds at most one URL per well-known slot. Slots are filled
// first-match-wins while scanning the document.
type LinkSet struct {
	LinkedIn      string `json:"linkedin,omitempty"`
	GitHub        string `json:"github,omitempty"`
	Facebook      string `json:"facebook,omitempty"`
	PortfolioDemo string `json:"portfolio_demo,omitempty"`
}

// ExperienceItem is one work/internship/project-involvement entry.
// Dates are "YYYY" or "YYYY-MM", or empty when unknown.
type ExperienceItem struct {
	Company    string   `json:"company,omitempty"`
	Title      string   `json:"title,omitempty"`
	StartDate  string   `json:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty"`
	Highlights []string `json:"highlights"`
	Skills     []string `json:"skills"`
}

type EducationItem struct {
	School    string `json:"school,omitempty"`
	Degree    string `json:"degree,omitempty"`
	Major     string `json:"major,omitempty"`
	GPA       string `json:"gpa,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

type ProjectItem struct {
	Name      string   `json:"name,omitempty"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Desc      string   `json:"desc,omitempty"`
	Links     []string `json:"links"`
	Tech      []string `json:"tech"`
}

// Candidate is the profile-level slice of a parse.
type Candidate struct {
	FullName     string   `json:"full_name,omitempty"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Location     string   `json:"location,omitempty"`
	Headline     string   `json:"headline,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	Links        LinkSet  `json:"links"`
	Skills       []string `json:"skills"`
	Languages    []string `json:"languages"`
	QualityScore float64  `json:"quality_score"`
}

// ParseResult is the canonical output record. Both extraction strategies
// terminate here; it is built once per request and never mutated afterward.
type ParseResult struct {
	OK             bool             `json:"ok"`
	Candidate      Candidate        `json:"candidate"`
	Experiences    []ExperienceItem `json:"experiences"`
	Education      []EducationItem  `json:"education"`
	Certifications []map[string]any `json:"certifications"`
	Projects       []ProjectItem    `json:"projects"`
	RawText        string           `json:"raw_text,omitempty"`
	Mode           string           `json:"mode,omitempty"`
	ParserVersion  string           `json:"parser_version"`
}

// NewParseResult returns a result with every list initialized so the JSON
// encoding always carries arrays, never null.
func NewParseResult() *ParseResult {
	return &ParseResult{
		OK: true,
		Candidate: Candidate{
			Skills:    []string{},
			Languages: []string{},
		},
		Experiences:    []ExperienceItem{},
		Education:      []EducationItem{},
		Certifications: []map[string]any{},
		Projects:       []ProjectItem{},
		ParserVersion:  "v1",
	}
}
