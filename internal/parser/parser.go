package parser

import (
	"context"
	"log/slog"
	"strings"

	"github.com/recruitflow/resume-parser/internal/common"
	"github.com/recruitflow/resume-parser/internal/core"
	"github.com/recruitflow/resume-parser/internal/entity"
)

// Heuristic is the credential-free extraction strategy: heading
// segmentation, per-region field extraction, normalization, and a
// completeness score.
type Heuristic struct {
	logger *slog.Logger
}

func NewHeuristic(logger *slog.Logger) *Heuristic {
	if logger == nil {
		logger = slog.Default()
	}
	return &Heuristic{logger: logger}
}

func (h *Heuristic) Name() string { return "heuristic" }

// Parse assembles a ParseResult from recovered text. Individual field
// extractors never fail; missing or malformed sections degrade to absent
// values.
func (h *Heuristic) Parse(_ context.Context, doc core.Document) (*entity.ParseResult, error) {
	text := doc.Text
	if strings.TrimSpace(text) == "" {
		return nil, common.NewAppError("EXTRACTION_EMPTY", "heuristic strategy needs text", common.ErrExtractionEmpty)
	}

	sections := segmentSections(text)
	pr := entity.NewParseResult()

	fullName, email, phone := extractBasicContact(text)
	pr.Candidate.FullName = fullName
	pr.Candidate.Email = NormalizeEmail(email)
	pr.Candidate.Phone = NormalizePhone(phone)
	pr.Candidate.Location = CleanLocation(guessLocation(text))
	pr.Candidate.Links = extractLinks(text)

	headline, summary := parseAbout(sectionFor(sections, headingAbout))
	pr.Candidate.Headline = headline
	pr.Candidate.Summary = summary

	pr.Candidate.Skills = parseSkills(sectionFor(sections, headingSkills))
	pr.Candidate.Languages = parseLanguages(sectionFor(sections, headingLanguages))

	pr.Education = parseEducation(sectionFor(sections, headingEducation))
	pr.Projects = parseProjects(sectionFor(sections, headingProjects))
	pr.Experiences = parseExperiences([]string{
		sectionFor(sections, headingInternship),
		sectionFor(sections, headingInvolvement),
		sectionFor(sections, headingExperience),
	})

	pr.RawText = text
	pr.Candidate.QualityScore = qualityScore(pr)

	h.logger.Debug("heuristic.parse.ok",
		"sections", len(sections),
		"skills", len(pr.Candidate.Skills),
		"experiences", len(pr.Experiences),
		"quality", pr.Candidate.QualityScore,
	)
	return pr, nil
}

var _ core.Strategy = (*Heuristic)(nil)
