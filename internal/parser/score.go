package parser

import "github.com/recruitflow/resume-parser/internal/entity"

// heuristicScoreCeiling reserves the top of the range for strategies with
// model-verified output.
const heuristicScoreCeiling = 0.98

// qualityScore computes a completeness confidence for a heuristically
// assembled result: 0.3 base, +0.3 for reachable contact info, +0.15 for a
// name, +0.15 for skills, +0.10 for any experience/project/education data.
func qualityScore(pr *entity.ParseResult) float64 {
	score := 0.3
	if pr.Candidate.Email != "" || pr.Candidate.Phone != "" {
		score += 0.3
	}
	if pr.Candidate.FullName != "" {
		score += 0.15
	}
	if len(pr.Candidate.Skills) > 0 {
		score += 0.15
	}
	if len(pr.Experiences) > 0 || len(pr.Projects) > 0 || len(pr.Education) > 0 {
		score += 0.10
	}
	if score > heuristicScoreCeiling {
		score = heuristicScoreCeiling
	}
	return score
}
