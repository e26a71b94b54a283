package llm

import "strings"

// promptSkeleton is the exact shape the model must return. It is embedded
// verbatim in the instruction so the completion and multimodal backends are
// constrained to the same contract.
const promptSkeleton = `{
  "candidate": {
    "full_name": "",
    "email": "",
    "phone": "",
    "location": "",
    "headline": "",
    "summary": "",
    "links": {"linkedin": "", "github": "", "facebook": "", "portfolio_demo": ""},
    "skills": [],
    "languages": [],
    "quality_score": 0.0
  },
  "experiences": [{"company": "", "title": "", "start_date": "", "end_date": "", "highlights": [], "skills": []}],
  "education": [{"school": "", "degree": "", "major": "", "gpa": "", "start_date": "", "end_date": ""}],
  "certifications": [],
  "projects": [{"name": "", "description": "", "start_date": "", "end_date": "", "links": [], "technologies": []}]
}`

// instructionHeader is shared by every backend. Resumes are frequently
// Vietnamese, so the rules spell out how to treat diacritics and the local
// "present" markers.
const instructionHeader = `You are a resume parser. The input is the content of one candidate's CV, often written in Vietnamese. Return ONLY a single JSON object matching this exact shape:

` + promptSkeleton + `

Rules:
- Keep names, school names, and locations exactly as written, including Vietnamese diacritics.
- Dates use the "YYYY-MM" format. "hiện tại", "hien tai", "present" or "now" as an end date means the role is ongoing; use "" for it.
- Phone numbers keep digits and a leading "+" only.
- "skills" and "languages" are arrays of short strings, no duplicates.
- "quality_score" is your 0..1 confidence that the extraction is complete and correct.
- Use "" for missing strings and [] for missing arrays. Never invent data that is not in the CV.
- Output raw JSON with no markdown fences and no commentary.`

// BuildTextPrompt appends the recovered resume text, truncated to charCap
// bytes to respect the backend's context budget. A charCap of zero means no
// cap.
func BuildTextPrompt(text string, charCap int) string {
	text = strings.TrimSpace(text)
	if charCap > 0 && len(text) > charCap {
		text = text[:charCap]
	}
	var b strings.Builder
	b.WriteString(instructionHeader)
	b.WriteString("\n\nCV content:\n")
	b.WriteString(text)
	return b.String()
}

// BuildBlobPrompt is the instruction used when the original document bytes
// are attached instead of text.
func BuildBlobPrompt() string {
	return instructionHeader + "\n\nThe CV document is attached. Read it and extract the fields."
}
