package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRecord is the scalar trail one analysis leaves behind. The resume
// itself is never stored.
type AnalysisRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FileName      string    `gorm:"type:text" json:"file_name"`
	FileFormat    string    `gorm:"type:text" json:"file_format"`
	WordCount     int       `gorm:"not null;default:0" json:"word_count"`
	ATSScore      int       `gorm:"not null;default:0" json:"ats_score"`
	TopSimilarity *float64  `gorm:"type:decimal(6,4)" json:"top_similarity,omitempty"`
	CreatedAt     time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (AnalysisRecord) TableName() string {
	return "analysis_records"
}
