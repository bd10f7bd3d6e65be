package main

import (
	"log"

	"github.com/fatih/color"

	"kj-canvas-be/internal/config"
	"kj-canvas-be/internal/entity"
	"kj-canvas-be/internal/pkg/logger"
	"kj-canvas-be/internal/repository/implementation"
	"kj-canvas-be/internal/storage"
)

// Seeds a small demo board: one challenge group with a challenge card and
// solutions from each perspective, plus two loose cards.
func main() {
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)

	store, err := storage.NewFileStore(cfg.Store.DataDir, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize file store: %v", err)
	}

	cardRepo := implementation.NewCardRepository(store, sysLogger)
	groupRepo := implementation.NewGroupRepository(store, sysLogger)

	if len(cardRepo.GetAll()) > 0 {
		color.Yellow("Board already has cards, skipping seed")
		return
	}

	perspectivePersonal := entity.PerspectivePersonal
	perspectiveCommunity := entity.PerspectiveCommunity
	perspectiveGovernment := entity.PerspectiveGovernment

	group, err := groupRepo.Add(entity.Group{
		Title:            "課題1: 商店街の空き店舗が増えている",
		X:                30,
		Y:                20,
		Width:            640,
		Height:           340,
		Color:            "hsl(0, 70%, 95%)",
		IsChallengeGroup: true,
		SourceType:       entity.SourceTypeDiscussion,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to seed group: %v", err)
	}

	grouped := []entity.Card{
		{
			Text: "商店街の空き店舗が年々増えていて活気がない",
			X:    70, Y: 90, Width: 180, Height: 100,
			GroupId:     &group.Id,
			SourceType:  entity.SourceTypeDiscussion,
			IsChallenge: true,
		},
		{
			Text: "空き店舗でフリーマーケットを開いてみたい",
			X:    70, Y: 210, Width: 180, Height: 100,
			GroupId:             &group.Id,
			SourceType:          entity.SourceTypeDiscussion,
			SolutionPerspective: &perspectivePersonal,
		},
		{
			Text: "商店会が空き店舗のオーナーと出店希望者をつなぐ",
			X:    270, Y: 210, Width: 180, Height: 100,
			GroupId:             &group.Id,
			SourceType:          entity.SourceTypeDiscussion,
			SolutionPerspective: &perspectiveCommunity,
		},
		{
			Text: "市が空き店舗活用の補助金制度を周知する",
			X:    470, Y: 210, Width: 180, Height: 100,
			GroupId:             &group.Id,
			SourceType:          entity.SourceTypeDiscussion,
			SolutionPerspective: &perspectiveGovernment,
		},
	}

	loose := []entity.Card{
		{
			Text: "夜道が暗くて子どもの帰り道が心配",
			X:    720, Y: 90, Width: 180, Height: 100,
			SourceType:  entity.SourceTypeDiscussion,
			IsChallenge: true,
		},
		{
			Text: "公園の清掃ボランティアに参加者が集まらない",
			X:    720, Y: 210, Width: 180, Height: 100,
			SourceType:  entity.SourceTypeDiscussion,
			IsChallenge: true,
		},
	}

	if _, err := cardRepo.AddMultiple(append(grouped, loose...)); err != nil {
		log.Fatalf("[FATAL] Failed to seed cards: %v", err)
	}

	color.Green("Seeded demo board: 1 group, %d cards", len(grouped)+len(loose))
}
