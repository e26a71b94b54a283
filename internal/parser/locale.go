package parser

// Locale-specific knowledge lives here as data, separate from segmentation
// and extraction control flow, so new locales mean new table entries rather
// than new code. Vietnamese resumes routinely mix accented, unaccented, and
// English headings; every form is listed.

type headingGroup struct {
	aliases []string
}

var (
	headingAbout       = headingGroup{aliases: []string{"giới thiệu bản thân", "gioi thieu ban than", "about me"}}
	headingEducation   = headingGroup{aliases: []string{"học vấn", "hoc van", "education"}}
	headingProjects    = headingGroup{aliases: []string{"dự án", "du an", "personal projects", "projects"}}
	headingInternship  = headingGroup{aliases: []string{"thực tập", "thuc tap", "internship"}}
	headingInvolvement = headingGroup{aliases: []string{"tham gia dự án", "tham gia du an"}}
	headingExperience  = headingGroup{aliases: []string{"kinh nghiệm", "kinh nghiem", "work experience"}}
	headingSkills      = headingGroup{aliases: []string{"kỹ năng", "ky nang", "skills"}}
	headingLanguages   = headingGroup{aliases: []string{"ngôn ngữ", "ngon ngu", "languages"}}
)

// headingAliases is the flattened synonym set the segmenter scans against.
// Longer aliases come first within a group so "tham gia dự án" is never
// shadowed by "dự án".
var headingAliases = func() []string {
	groups := []headingGroup{
		headingAbout, headingEducation, headingInvolvement, headingProjects,
		headingInternship, headingExperience, headingSkills, headingLanguages,
	}
	var all []string
	for _, g := range groups {
		all = append(all, g.aliases...)
	}
	return all
}()

// locationHints flag address lines; matched as lowercase substrings over the
// first lines of the document.
var locationHints = []string{
	"việt nam", "viet nam", "vietnam",
	"hà nội", "ha noi",
	"đà nẵng", "da nang",
	"huế", "hue",
	"hcm", "sài gòn", "sai gon",
}

// degreeHints flag degree/major lines inside an education block.
var degreeHints = []string{
	"cử nhân", "cu nhan", "kỹ sư", "ky su",
	"software", "cntt", "cnpm", "it", "degree",
}

// gpaHint flags GPA lines inside an education block.
const gpaHint = "gpa"

// techHints flag technology-stack lines inside a project block.
var techHints = []string{"công nghệ", "cong nghe", "technolog"}

// linkHints flag source/demo lines inside a project block.
var linkHints = []string{"source code", "demo"}
