package dto

import "time"

type ReportSummary struct {
	TotalCards      int `json:"totalCards"`
	TotalGroups     int `json:"totalGroups"`
	ChallengeGroups int `json:"challengeGroups"`
	UngroupedCards  int `json:"ungroupedCards"`
}

type ReportCard struct {
	Id         string `json:"id"`
	Text       string `json:"text"`
	SourceType string `json:"sourceType"`
}

type ReportSolutions struct {
	Personal   []ReportCard `json:"personal"`
	Community  []ReportCard `json:"community"`
	Government []ReportCard `json:"government"`
	Other      []ReportCard `json:"other"`
}

type ReportGroup struct {
	Id         string          `json:"id"`
	Title      string          `json:"title"`
	Type       string          `json:"type"` // "challenge" | "other"
	Challenges []ReportCard    `json:"challenges"`
	Solutions  ReportSolutions `json:"solutions"`
	CardCount  int             `json:"cardCount"`
}

type ReportUngroupedCard struct {
	Id                  string  `json:"id"`
	Text                string  `json:"text"`
	SourceType          string  `json:"sourceType"`
	IsChallenge         bool    `json:"isChallenge"`
	SolutionPerspective *string `json:"solutionPerspective"`
}

type Report struct {
	GeneratedAt    time.Time             `json:"generatedAt"`
	Summary        ReportSummary         `json:"summary"`
	Groups         []ReportGroup         `json:"groups"`
	UngroupedCards []ReportUngroupedCard `json:"ungroupedCards"`
}
