package db_models

import "github.com/lib/pq"

// SurveyResult is the summary of one finished survey. Results are append-only;
// in-progress answers are never stored.
type SurveyResult struct {
	BaseModel
	SurveyKey   string         `gorm:"type:varchar(255);not null;index"`
	FinalTitle  string         `gorm:"type:text"`
	FinalText   string         `gorm:"type:text"`
	Lines       pq.StringArray `gorm:"type:text[]"`
	AnswerCount int            `gorm:"type:int;not null"`
}

// ResultCount is one row of a per-survey aggregate.
type ResultCount struct {
	SurveyKey string
	Total     int64
	LastAt    int64
}
