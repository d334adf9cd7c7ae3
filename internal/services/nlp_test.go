package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analyzer/internal/models"
)

func TestTokenizeText(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []string
	}{
		{"plus and hash survive", "C++ and C#", []string{"c++", "and", "c#"}},
		{"interior dots survive", "Node.js, Vue.js.", []string{"node.js", "vue.js"}},
		{"slash splits", "CI/CD pipelines", []string{"ci", "cd", "pipelines"}},
		{"edge dots trimmed", "...dots...", []string{"dots"}},
		{"empty", "   ", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tokenizeText(tc.text))
		})
	}
}

func TestExtractSkillsNormalizesVariants(t *testing.T) {
	nlp := NewNLPProcessor()

	skills := nlp.ExtractSkills("Golang, k8s, Postgres and JS experience with CICD")

	assert.Equal(t, []string{"javascript", "go"}, skills["programming"])
	assert.Equal(t, []string{"kubernetes", "ci/cd"}, skills["cloud"])
	assert.Equal(t, []string{"postgresql"}, skills["database"])
}

func TestExtractSkillsMatchesPhrases(t *testing.T) {
	nlp := NewNLPProcessor()

	skills := nlp.ExtractSkills("Applied machine learning and statistical analysis on large datasets")

	assert.Equal(t, []string{"machine learning", "statistical analysis"}, skills["data_science"])
}

func TestExtractSkillsIgnoresSubstrings(t *testing.T) {
	nlp := NewNLPProcessor()

	// "javascript" must not register the shorter "java".
	skills := nlp.ExtractSkills("JavaScript only")

	assert.Equal(t, []string{"javascript"}, skills["programming"])
}

func TestExtractSkillListKeepsCategoryOrder(t *testing.T) {
	nlp := NewNLPProcessor()

	list := nlp.ExtractSkillList("Python and React with Docker on PostgreSQL using Git and strong leadership")

	assert.Equal(t, []string{"python", "react", "docker", "postgresql", "git", "leadership"}, list)
}

func TestDetectSections(t *testing.T) {
	nlp := NewNLPProcessor()

	text := strings.Join([]string{
		"Professional Summary",
		"Employment History",
		"Academic Background",
		"Core Competencies",
		"Key Projects",
	}, "\n")

	sections := nlp.DetectSections(text)

	assert.True(t, sections.Has("summary"))
	assert.True(t, sections.Has("experience"))
	assert.True(t, sections.Has("education"))
	assert.True(t, sections.Has("skills"))
	assert.True(t, sections.Has("projects"))
	assert.False(t, sections.Has("contact"))
	assert.False(t, sections.Has("certifications"))
}

func TestDetectSectionsContact(t *testing.T) {
	nlp := NewNLPProcessor()

	assert.True(t, nlp.DetectSections("Reach me at dev@example.com").Has("contact"))
	assert.True(t, nlp.DetectSections("Call 555-123-4567 anytime").Has("contact"))
	assert.False(t, nlp.DetectSections("No contact details here").Has("contact"))
}

func TestExtractContact(t *testing.T) {
	nlp := NewNLPProcessor()

	text := strings.Join([]string{
		"Jamie Doe",
		"jamie.doe@example.com jamie.doe@example.com",
		"(555) 123-4567 and +1 555-987-6543",
		"linkedin.com/in/jamiedoe github.com/jamiedoe",
	}, "\n")

	contact := nlp.ExtractContact(text)

	assert.Equal(t, []string{"jamie.doe@example.com"}, contact.Emails)
	require.Len(t, contact.Phones, 2)
	assert.Equal(t, "(555) 123-4567", contact.Phones[0])
	assert.Equal(t, "linkedin.com/in/jamiedoe", contact.LinkedIn)
	assert.Equal(t, "github.com/jamiedoe", contact.GitHub)
}

func TestExtractExperience(t *testing.T) {
	nlp := NewNLPProcessor()

	text := strings.Join([]string{
		"Experience",
		"Senior Backend Engineer at Initech 2019 - 2023",
		"Built billing APIs in Go",
		"Cut deploy times in half",
		"Mentored four engineers",
		"Shipped a queueing system",
		"Platform Engineer, Initrode 2016 to 2019",
		"Ran the Kubernetes migration",
	}, "\n")

	entries := nlp.ExtractExperience(text)

	require.Len(t, entries, 2)

	assert.Equal(t, "Senior Backend Engineer at Initech", entries[0].Title)
	assert.Equal(t, "2019 - 2023", entries[0].Period)
	assert.Equal(t, []string{
		"Built billing APIs in Go",
		"Cut deploy times in half",
		"Mentored four engineers",
	}, entries[0].Details)

	assert.Equal(t, "Platform Engineer, Initrode", entries[1].Title)
	assert.Equal(t, "2016 to 2019", entries[1].Period)
	assert.Equal(t, []string{"Ran the Kubernetes migration"}, entries[1].Details)
}

func TestExtractExperienceBareDateRange(t *testing.T) {
	nlp := NewNLPProcessor()

	entries := nlp.ExtractExperience("2019 - 2022\nDid various things")

	require.Len(t, entries, 1)
	assert.Equal(t, "2019 - 2022", entries[0].Title)
	assert.Equal(t, "2019 - 2022", entries[0].Period)
}

func TestExtractEducation(t *testing.T) {
	nlp := NewNLPProcessor()

	text := strings.Join([]string{
		"Education",
		"BSc Computer Science, State University, 2014",
		"Graduate coursework at Riverside College",
		"Certified Kubernetes Administrator",
	}, "\n")

	entries := nlp.ExtractEducation(text)

	require.Len(t, entries, 2)
	assert.Equal(t, "BSc Computer Science, State University, 2014", entries[0].Text)
	assert.True(t, entries[0].DegreeMentioned)
	assert.Equal(t, "Graduate coursework at Riverside College", entries[1].Text)
	assert.False(t, entries[1].DegreeMentioned)
}

func TestEstimateExperienceYears(t *testing.T) {
	nlp := NewNLPProcessor()

	cases := []struct {
		name string
		text string
		want int
	}{
		{"range", "Working from 2015 to 2023 on data platforms", 8},
		{"widest span wins", "Intern 1980, lead 2005, principal 2010", 30},
		{"capped", "Programming since 1950, last role ended 2019", 50},
		{"single year", "Portfolio refreshed in 2019", 0},
		{"no years", "No dates mentioned anywhere", 0},
		{"implausible years ignored", "Born 1949, predicts 2090", 0},
		{"future year does not stretch span", "From 2015 until 2090", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nlp.EstimateExperienceYears(tc.text))
		})
	}
}

func TestBuildDocument(t *testing.T) {
	nlp := NewNLPProcessor()

	text := strings.Join([]string{
		"Taylor Reyes - Data Engineer",
		"taylor@example.com 555-123-4567",
		"Experience",
		"Data Engineer at Initech 2018 - 2023",
		"Built Python pipelines on PostgreSQL",
		"Education",
		"MSc Data Science, State University",
		"Skills",
		"Python, SQL, Docker",
	}, "\n")

	doc := nlp.BuildDocument("resume.txt", models.FormatTXT, text)

	assert.Equal(t, "resume.txt", doc.FileName)
	assert.Equal(t, models.FormatTXT, doc.Format)
	assert.Equal(t, text, doc.RawText)
	assert.Equal(t, len(strings.Fields(text)), doc.WordCount)
	assert.Equal(t, strings.Join(tokenizeText(text), " "), doc.NormalizedText)

	assert.Equal(t, []string{"python", "sql", "docker", "postgresql"}, doc.SkillList)
	assert.Equal(t, []string{"taylor@example.com"}, doc.Contact.Emails)
	assert.True(t, doc.Sections.Has("experience"))
	assert.True(t, doc.Sections.Has("education"))
	assert.True(t, doc.Sections.Has("skills"))
	assert.True(t, doc.Sections.Has("contact"))
	assert.Equal(t, 5, doc.ExperienceYears)
	require.Len(t, doc.Experience, 1)
	assert.Equal(t, "Data Engineer at Initech", doc.Experience[0].Title)
	require.NotEmpty(t, doc.Education)
	assert.True(t, doc.Education[0].DegreeMentioned)
}
