package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"resume-analyzer/internal/models"
)

type NLPProcessor interface {
	BuildDocument(fileName string, format models.FileFormat, rawText string) *models.ResumeDocument
	ExtractSkills(text string) map[string][]string
	ExtractSkillList(text string) []string
	DetectSections(text string) models.SectionPresence
	ExtractContact(text string) models.ContactInfo
	ExtractExperience(text string) []models.ExperienceEntry
	ExtractEducation(text string) []models.EducationEntry
	EstimateExperienceYears(text string) int
}

// skillCategories is the fixed technology dictionary used for resume and job
// description skill extraction, grouped the way recruiters report them. The
// slice keeps category iteration deterministic.
var skillCategories = []struct {
	Name   string
	Skills []string
}{
	{"programming", []string{
		"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "go",
		"rust", "php", "swift", "kotlin", "scala", "r", "matlab", "sql", "bash",
	}},
	{"web", []string{
		"html", "css", "react", "angular", "vue.js", "node.js", "express",
		"django", "flask", "fastapi", "spring", "asp.net", "jquery",
	}},
	{"data_science", []string{
		"machine learning", "deep learning", "neural networks", "nlp",
		"computer vision", "tensorflow", "pytorch", "keras", "scikit-learn",
		"pandas", "numpy", "matplotlib", "seaborn", "data analysis",
		"statistical analysis", "predictive modeling",
	}},
	{"cloud", []string{
		"aws", "azure", "gcp", "google cloud", "docker", "kubernetes",
		"terraform", "jenkins", "ci/cd", "devops", "lambda", "s3", "ec2",
	}},
	{"database", []string{
		"mysql", "postgresql", "mongodb", "redis", "cassandra", "dynamodb",
		"oracle", "sql server", "sqlite", "elasticsearch",
	}},
	{"tools", []string{
		"git", "github", "gitlab", "jira", "confluence", "slack", "linux",
		"windows", "macos", "vscode", "jupyter", "postman",
	}},
	{"soft_skills", []string{
		"leadership", "communication", "teamwork", "problem solving",
		"critical thinking", "project management", "agile", "scrum",
		"collaboration", "presentation", "negotiation",
	}},
}

// skillVariants maps dictionary entries to alternate spellings that should
// still count as the canonical skill.
var skillVariants = map[string][]string{
	"go":         {"golang"},
	"javascript": {"js"},
	"typescript": {"ts"},
	"kubernetes": {"k8s"},
	"postgresql": {"postgres"},
	"ci/cd":      {"cicd"},
}

var sectionPatterns = []struct {
	Name    string
	Pattern *regexp.Regexp
}{
	{"summary", regexp.MustCompile(`(?i)\b(professional\s+summary|summary|objective|profile)\b`)},
	{"experience", regexp.MustCompile(`(?i)\b(work\s+experience|professional\s+experience|employment\s+history|experience)\b`)},
	{"education", regexp.MustCompile(`(?i)\b(education|academic\s+background|qualifications)\b`)},
	{"skills", regexp.MustCompile(`(?i)\b(technical\s+skills|core\s+competencies|skills|technologies)\b`)},
	{"projects", regexp.MustCompile(`(?i)\b(personal\s+projects|key\s+projects|projects)\b`)},
	{"certifications", regexp.MustCompile(`(?i)\b(certifications|certificates|licenses)\b`)},
}

var (
	emailRe     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe     = regexp.MustCompile(`(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedinRe  = regexp.MustCompile(`(?i)linkedin\.com/in/[\w\-]+`)
	githubRe    = regexp.MustCompile(`(?i)github\.com/[\w\-]+`)
	yearRe      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	dateRangeRe = regexp.MustCompile(`(?i)\b(19|20)\d{2}\s*(?:[-–—]|to|until)\s*(?:(19|20)\d{2}|present|current|now)\b`)
	degreeRe    = regexp.MustCompile(`(?i)\b(bachelor(?:'s)?|master(?:'s)?|ph\.?d|doctorate|mba|b\.?sc?|m\.?sc?|b\.?a|m\.?a|b\.?tech|m\.?tech|associate degree)\b`)
	schoolRe    = regexp.MustCompile(`(?i)\b(university|college|institute|academy|polytechnic)\b`)
)

type nlpProcessor struct {
	// phrases maps each dictionary skill to the token phrases (canonical
	// spelling plus variants) that mark it present.
	phrases map[string][]string
}

func NewNLPProcessor() NLPProcessor {
	p := &nlpProcessor{phrases: make(map[string][]string)}

	for _, category := range skillCategories {
		for _, skill := range category.Skills {
			candidates := append([]string{skill}, skillVariants[skill]...)
			for _, candidate := range candidates {
				tokens := tokenizeText(candidate)
				if len(tokens) == 0 {
					continue
				}
				p.phrases[skill] = append(p.phrases[skill], strings.Join(tokens, " "))
			}
		}
	}

	return p
}

// BuildDocument implements NLPProcessor. The returned document is complete;
// callers treat it as read-only for the rest of the request.
func (p *nlpProcessor) BuildDocument(fileName string, format models.FileFormat, rawText string) *models.ResumeDocument {
	skills := p.ExtractSkills(rawText)

	var skillList []string
	for _, category := range skillCategories {
		skillList = append(skillList, skills[category.Name]...)
	}

	return &models.ResumeDocument{
		FileName:        fileName,
		Format:          format,
		RawText:         rawText,
		NormalizedText:  strings.Join(tokenizeText(rawText), " "),
		WordCount:       len(strings.Fields(rawText)),
		Contact:         p.ExtractContact(rawText),
		Skills:          skills,
		SkillList:       skillList,
		Sections:        p.DetectSections(rawText),
		Experience:      p.ExtractExperience(rawText),
		Education:       p.ExtractEducation(rawText),
		ExperienceYears: p.EstimateExperienceYears(rawText),
	}
}

// ExtractSkills implements NLPProcessor. Matching is phrase-based over the
// token stream, so multi-word skills and tech names like c++ or node.js
// survive tokenization.
func (p *nlpProcessor) ExtractSkills(text string) map[string][]string {
	padded := " " + strings.Join(tokenizeText(text), " ") + " "

	found := make(map[string][]string)
	for _, category := range skillCategories {
		for _, skill := range category.Skills {
			for _, phrase := range p.phrases[skill] {
				if strings.Contains(padded, " "+phrase+" ") {
					found[category.Name] = append(found[category.Name], skill)
					break
				}
			}
		}
	}

	return found
}

// ExtractSkillList implements NLPProcessor. The flat list keeps category
// order, then dictionary order, so repeated runs agree.
func (p *nlpProcessor) ExtractSkillList(text string) []string {
	skills := p.ExtractSkills(text)

	var list []string
	for _, category := range skillCategories {
		list = append(list, skills[category.Name]...)
	}

	return list
}

// DetectSections implements NLPProcessor. The "contact" pseudo-section is
// present when an email address or phone number appears anywhere.
func (p *nlpProcessor) DetectSections(text string) models.SectionPresence {
	sections := make(models.SectionPresence, len(sectionPatterns)+1)

	for _, sp := range sectionPatterns {
		if sp.Pattern.MatchString(text) {
			sections[sp.Name] = true
		}
	}

	if emailRe.MatchString(text) || phoneRe.MatchString(text) {
		sections["contact"] = true
	}

	return sections
}

// ExtractContact implements NLPProcessor.
func (p *nlpProcessor) ExtractContact(text string) models.ContactInfo {
	contact := models.ContactInfo{
		Emails: dedupeStrings(emailRe.FindAllString(text, -1)),
		Phones: dedupeStrings(phoneRe.FindAllString(text, -1)),
	}

	if m := linkedinRe.FindString(text); m != "" {
		contact.LinkedIn = m
	}
	if m := githubRe.FindString(text); m != "" {
		contact.GitHub = m
	}

	return contact
}

// ExtractExperience implements NLPProcessor. A line carrying a year range
// starts an entry; following lines become details until the next range.
func (p *nlpProcessor) ExtractExperience(text string) []models.ExperienceEntry {
	var entries []models.ExperienceEntry
	var current *models.ExperienceEntry

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if period := dateRangeRe.FindString(line); period != "" {
			if current != nil {
				entries = append(entries, *current)
			}

			title := strings.Trim(dateRangeRe.ReplaceAllString(line, ""), " \t-–—|,.")
			if title == "" {
				title = line
			}

			current = &models.ExperienceEntry{Title: title, Period: period}
			continue
		}

		if current != nil && len(current.Details) < 3 {
			current.Details = append(current.Details, line)
		}
	}

	if current != nil {
		entries = append(entries, *current)
	}

	return entries
}

// ExtractEducation implements NLPProcessor.
func (p *nlpProcessor) ExtractEducation(text string) []models.EducationEntry {
	var entries []models.EducationEntry

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		degree := degreeRe.MatchString(line)
		if degree || schoolRe.MatchString(line) {
			entries = append(entries, models.EducationEntry{
				Text:            line,
				DegreeMentioned: degree,
			})
		}
	}

	return entries
}

// EstimateExperienceYears implements NLPProcessor. The estimate is the span
// between the earliest and latest plausible year mentioned, capped at 50.
func (p *nlpProcessor) EstimateExperienceYears(text string) int {
	minYear, maxYear := 0, 0
	currentYear := time.Now().Year()

	for _, m := range yearRe.FindAllString(text, -1) {
		year, err := strconv.Atoi(m)
		if err != nil || year < 1950 || year > currentYear+1 {
			continue
		}
		if minYear == 0 || year < minYear {
			minYear = year
		}
		if year > maxYear {
			maxYear = year
		}
	}

	if minYear == 0 {
		return 0
	}

	span := maxYear - minYear
	if span > 50 {
		span = 50
	}

	return span
}

// tokenizeText lowercases text and splits it into tokens, keeping +, # and
// interior dots inside tokens so c++, c# and node.js come through intact.
func tokenizeText(text string) []string {
	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() == 0 {
			return
		}
		token := strings.Trim(b.String(), ".")
		b.Reset()
		if token != "" {
			tokens = append(tokens, token)
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
	}

	return result
}
