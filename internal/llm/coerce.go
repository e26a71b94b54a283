package llm

import (
	"encoding/json"
	"fmt"

	"github.com/recruitflow/resume-parser/internal/entity"
	"github.com/recruitflow/resume-parser/internal/parser"
)

// Wire types mirror the prompt skeleton but decode through the flex wrappers
// so single-object lists, joined strings, and numeric scalars from loose
// backends all land in the canonical shapes.

type wireLinks struct {
	LinkedIn      string `json:"linkedin"`
	GitHub        string `json:"github"`
	Facebook      string `json:"facebook"`
	PortfolioDemo string `json:"portfolio_demo"`
}

type wireCandidate struct {
	FullName     string             `json:"full_name"`
	Email        string             `json:"email"`
	Phone        entity.FlexString  `json:"phone"`
	Location     string             `json:"location"`
	Headline     string             `json:"headline"`
	Summary      string             `json:"summary"`
	Links        wireLinks          `json:"links"`
	Skills       entity.FlexStrings `json:"skills"`
	Languages    entity.FlexStrings `json:"languages"`
	QualityScore float64            `json:"quality_score"`

	// Some models hoist these to the candidate level instead of the
	// education list.
	School string            `json:"school"`
	GPA    entity.FlexString `json:"gpa"`
}

type wireExperience struct {
	Company    string             `json:"company"`
	Title      string             `json:"title"`
	StartDate  entity.FlexString  `json:"start_date"`
	EndDate    entity.FlexString  `json:"end_date"`
	Highlights entity.FlexStrings `json:"highlights"`
	Skills     entity.FlexStrings `json:"skills"`
}

type wireEducation struct {
	School    string            `json:"school"`
	Degree    string            `json:"degree"`
	Major     string            `json:"major"`
	GPA       entity.FlexString `json:"gpa"`
	StartDate entity.FlexString `json:"start_date"`
	EndDate   entity.FlexString `json:"end_date"`
}

type wireProject struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Desc        string             `json:"desc"`
	StartDate   entity.FlexString  `json:"start_date"`
	EndDate     entity.FlexString  `json:"end_date"`
	Links       entity.FlexStrings `json:"links"`
	Tech        entity.FlexStrings `json:"technologies"`
}

type wireResult struct {
	Candidate      wireCandidate                   `json:"candidate"`
	Experiences    entity.FlexList[wireExperience] `json:"experiences"`
	Education      entity.FlexList[wireEducation]  `json:"education"`
	Certifications json.RawMessage                 `json:"certifications"`
	Projects       entity.FlexList[wireProject]    `json:"projects"`

	// Top-level skills fallback for models that flatten the candidate.
	Skills entity.FlexStrings `json:"skills"`
}

// DecodeResult maps salvaged, schema-checked model output onto the canonical
// ParseResult, applying the same normalization the heuristic path uses.
func DecodeResult(data []byte) (*entity.ParseResult, error) {
	var w wireResult
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}

	pr := entity.NewParseResult()
	pr.Candidate.FullName = w.Candidate.FullName
	pr.Candidate.Email = parser.NormalizeEmail(w.Candidate.Email)
	pr.Candidate.Phone = parser.NormalizePhone(w.Candidate.Phone.String())
	pr.Candidate.Location = parser.CleanLocation(w.Candidate.Location)
	pr.Candidate.Headline = w.Candidate.Headline
	pr.Candidate.Summary = w.Candidate.Summary
	pr.Candidate.Links = entity.LinkSet{
		LinkedIn:      w.Candidate.Links.LinkedIn,
		GitHub:        w.Candidate.Links.GitHub,
		Facebook:      w.Candidate.Links.Facebook,
		PortfolioDemo: w.Candidate.Links.PortfolioDemo,
	}

	skills := w.Candidate.Skills
	if len(skills) == 0 {
		skills = w.Skills
	}
	pr.Candidate.Skills = parser.DedupeFold(skills)
	pr.Candidate.Languages = parser.DedupeFold(w.Candidate.Languages)
	pr.Candidate.QualityScore = clamp01(w.Candidate.QualityScore)

	for _, e := range w.Experiences {
		pr.Experiences = append(pr.Experiences, entity.ExperienceItem{
			Company:    e.Company,
			Title:      e.Title,
			StartDate:  e.StartDate.String(),
			EndDate:    e.EndDate.String(),
			Highlights: orEmpty(e.Highlights),
			Skills:     orEmpty(parser.DedupeFold(e.Skills)),
		})
	}
	for _, e := range w.Education {
		pr.Education = append(pr.Education, entity.EducationItem{
			School:    e.School,
			Degree:    e.Degree,
			Major:     e.Major,
			GPA:       e.GPA.String(),
			StartDate: e.StartDate.String(),
			EndDate:   e.EndDate.String(),
		})
	}
	for _, p := range w.Projects {
		desc := p.Description
		if desc == "" {
			desc = p.Desc
		}
		pr.Projects = append(pr.Projects, entity.ProjectItem{
			Name:      p.Name,
			StartDate: p.StartDate.String(),
			EndDate:   p.EndDate.String(),
			Desc:      desc,
			Links:     orEmpty(p.Links),
			Tech:      orEmpty(parser.DedupeFold(p.Tech)),
		})
	}
	pr.Certifications = coerceCertifications(w.Certifications)

	// Hoisted school/gpa reconcile with the education list: never overwrite
	// present data, only fill gaps.
	if w.Candidate.School != "" || w.Candidate.GPA != "" {
		if len(pr.Education) == 0 {
			pr.Education = append(pr.Education, entity.EducationItem{
				School: w.Candidate.School,
				GPA:    w.Candidate.GPA.String(),
			})
		} else {
			if pr.Education[0].School == "" {
				pr.Education[0].School = w.Candidate.School
			}
			if pr.Education[0].GPA == "" {
				pr.Education[0].GPA = w.Candidate.GPA.String()
			}
		}
	}

	return pr, nil
}

// coerceCertifications accepts a list of objects, a list of strings, or a
// single value; string entries become {"name": s}.
func coerceCertifications(raw json.RawMessage) []map[string]any {
	out := []map[string]any{}
	if len(raw) == 0 {
		return out
	}
	var vals []any
	if err := json.Unmarshal(raw, &vals); err != nil {
		var one any
		if err := json.Unmarshal(raw, &one); err != nil || one == nil {
			return out
		}
		vals = []any{one}
	}
	for _, v := range vals {
		switch t := v.(type) {
		case map[string]any:
			out = append(out, t)
		case string:
			if t != "" {
				out = append(out, map[string]any{"name": t})
			}
		}
	}
	return out
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
