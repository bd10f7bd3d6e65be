package dto

import "kj-canvas-be/internal/entity"

// GroupingResult is step 1 of auto-organize: semantic clusters with
// provisional theme names.
type GroupingResult struct {
	Groups       []GroupingCluster `json:"groups"`
	UngroupedIds []string          `json:"ungroupedIds"`
}

type GroupingCluster struct {
	GroupName string   `json:"groupName"`
	CardIds   []string `json:"cardIds"`
}

// GroupAnalysisResult is step 2: the cluster's central challenge plus
// per-card challenge/solution tagging.
type GroupAnalysisResult struct {
	GroupName         string             `json:"groupName"`
	MemberCardDetails []MemberCardDetail `json:"memberCardDetails"`
}

type MemberCardDetail struct {
	CardId              string  `json:"cardId"`
	IsChallenge         bool    `json:"isChallenge"`
	SolutionPerspective *string `json:"solutionPerspective"`
}

type OrganizeResponse struct {
	Cards  []entity.Card  `json:"cards"`
	Groups []entity.Group `json:"groups"`
}
