package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileFormat tags the supported resume file formats. Every format maps to
// exactly one extractor; anything else is rejected before extraction.
type FileFormat string

const (
	FormatPDF  FileFormat = "pdf"
	FormatDOCX FileFormat = "docx"
	FormatTXT  FileFormat = "txt"
)

// DetectFormat maps a file name to its format tag by extension.
func DetectFormat(filename string) (FileFormat, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("unsupported file extension: %q (expected .pdf, .docx or .txt)", filepath.Ext(filename))
	}
}

// ResumeDocument is the request-scoped view of one uploaded resume. It is
// built once after text extraction and treated as read-only afterwards;
// nothing about it outlives the request.
type ResumeDocument struct {
	FileName        string
	Format          FileFormat
	RawText         string
	NormalizedText  string
	WordCount       int
	Contact         ContactInfo
	Skills          map[string][]string
	SkillList       []string
	Sections        SectionPresence
	Experience      []ExperienceEntry
	Education       []EducationEntry
	ExperienceYears int
}

// SectionPresence records which resume sections were detected.
type SectionPresence map[string]bool

func (s SectionPresence) Has(name string) bool {
	return s[name]
}

type ContactInfo struct {
	Emails   []string `json:"emails"`
	Phones   []string `json:"phones"`
	LinkedIn string   `json:"linkedin,omitempty"`
	GitHub   string   `json:"github,omitempty"`
}

type ExperienceEntry struct {
	Title   string   `json:"title"`
	Period  string   `json:"period,omitempty"`
	Details []string `json:"details,omitempty"`
}

type EducationEntry struct {
	Text            string `json:"text"`
	DegreeMentioned bool   `json:"degree_mentioned"`
}
