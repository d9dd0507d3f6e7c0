package models

import "time"

// RenderRecord is one rendered wheel and the scores it was drawn from.
type RenderRecord struct {
	ID         string
	InputPath  string
	OutputPath string
	Categories int
	Questions  int
	CreatedAt  time.Time
	Scores     []ScoreRow
}

type ScoreRow struct {
	Category string
	Key      string
	Score    float64
	Position int
}

type CategoryAverage struct {
	Category string
	Average  float64
	Count    int
}
