package llm

import (
	"reflect"
	"testing"
)

// looseOutput exercises the drift the wire types absorb: a joined skills
// string, an experience object instead of a list, a numeric gpa, and
// candidate-level school/gpa with no education list.
const looseOutput = `{
  "candidate": {
    "full_name": "Nguyễn Văn An",
    "email": "An.Nguyen@Example.com",
    "phone": "0912 345 678",
    "location": "Hà Nội",
    "headline": null,
    "links": {"github": "https://github.com/annguyen"},
    "skills": "Go, Node.js; Go",
    "languages": ["Tiếng Anh"],
    "quality_score": 0.87,
    "school": "Đại học Bách Khoa",
    "gpa": 3.6
  },
  "experiences": {
    "company": "ABC",
    "title": "Intern",
    "start_date": "2022-06",
    "end_date": "",
    "highlights": ["built the payment API"]
  },
  "certifications": ["IELTS 7.0", {"name": "AWS SAA", "year": 2023}],
  "projects": [
    {"name": "Movie Web", "description": "online cinema", "technologies": ["React"]}
  ]
}`

func TestDecodeResultLooseShapes(t *testing.T) {
	data, err := Salvage(looseOutput)
	if err != nil {
		t.Fatalf("salvage: %v", err)
	}
	if err := ValidateJSONAgainstSchema(BuildResultJSONSchema(), data); err != nil {
		t.Fatalf("schema: %v", err)
	}

	pr, err := DecodeResult(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	cand := pr.Candidate
	if cand.FullName != "Nguyễn Văn An" {
		t.Errorf("full name: got %q", cand.FullName)
	}
	if cand.Email != "an.nguyen@example.com" {
		t.Errorf("email must be normalized: got %q", cand.Email)
	}
	if cand.Phone != "+84912345678" {
		t.Errorf("phone must be normalized: got %q", cand.Phone)
	}
	if !reflect.DeepEqual(cand.Skills, []string{"Go", "Node.js"}) {
		t.Errorf("skills (joined string, deduped): got %v", cand.Skills)
	}
	if cand.QualityScore != 0.87 {
		t.Errorf("quality: got %v", cand.QualityScore)
	}
	if cand.Links.GitHub != "https://github.com/annguyen" {
		t.Errorf("github: got %q", cand.Links.GitHub)
	}

	if len(pr.Experiences) != 1 {
		t.Fatalf("experiences (single object): got %d", len(pr.Experiences))
	}
	if pr.Experiences[0].Company != "ABC" || pr.Experiences[0].Title != "Intern" {
		t.Errorf("experience: got %+v", pr.Experiences[0])
	}

	// Hoisted school/gpa must materialize an education entry.
	if len(pr.Education) != 1 {
		t.Fatalf("education: got %d", len(pr.Education))
	}
	if pr.Education[0].School != "Đại học Bách Khoa" || pr.Education[0].GPA != "3.6" {
		t.Errorf("education from hoisted fields: got %+v", pr.Education[0])
	}

	if len(pr.Certifications) != 2 {
		t.Fatalf("certifications: got %d", len(pr.Certifications))
	}
	if pr.Certifications[0]["name"] != "IELTS 7.0" {
		t.Errorf("string certification: got %v", pr.Certifications[0])
	}
	if pr.Certifications[1]["name"] != "AWS SAA" {
		t.Errorf("object certification: got %v", pr.Certifications[1])
	}

	if len(pr.Projects) != 1 || pr.Projects[0].Desc != "online cinema" {
		t.Errorf("projects: got %+v", pr.Projects)
	}
}

func TestDecodeResultDoesNotOverwriteEducation(t *testing.T) {
	data := []byte(`{
	  "candidate": {"school": "Hoisted U", "gpa": "9.9"},
	  "education": [{"school": "Listed U", "gpa": ""}]
	}`)
	pr, err := DecodeResult(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(pr.Education) != 1 {
		t.Fatalf("education: got %d", len(pr.Education))
	}
	if pr.Education[0].School != "Listed U" {
		t.Errorf("present school must win: got %q", pr.Education[0].School)
	}
	if pr.Education[0].GPA != "9.9" {
		t.Errorf("empty gpa must be filled: got %q", pr.Education[0].GPA)
	}
}

func TestDecodeResultTopLevelSkillsFallback(t *testing.T) {
	data := []byte(`{"candidate": {"full_name": "A B"}, "skills": ["Go", "SQL"]}`)
	pr, err := DecodeResult(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(pr.Candidate.Skills, []string{"Go", "SQL"}) {
		t.Errorf("skills fallback: got %v", pr.Candidate.Skills)
	}
}

func TestValidateRejectsNonObject(t *testing.T) {
	if err := ValidateJSONAgainstSchema(BuildResultJSONSchema(), []byte(`[1,2,3]`)); err == nil {
		t.Fatal("expected schema violation for array root")
	}
}

func TestValidateRejectsMissingCandidate(t *testing.T) {
	if err := ValidateJSONAgainstSchema(BuildResultJSONSchema(), []byte(`{"experiences": []}`)); err == nil {
		t.Fatal("expected schema violation when candidate is absent")
	}
}
