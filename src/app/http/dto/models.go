// Package dto defines request payloads for the HTTP API.
package dto

import "monhaven/src/core/domain"

// CreateBossRequest spawns a new raid boss.
type CreateBossRequest struct {
	Name       string `json:"name" binding:"required"`
	FlavorText string `json:"flavor_text"`
	ImageURL   string `json:"image_url"`
	MaxHealth  int64  `json:"max_health" binding:"required"`
}

// DamageRequest applies damage from a player to a boss.
type DamageRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Amount   int64  `json:"amount" binding:"required"`
	Source   string `json:"source"`
}

// CreateTemplateRequest defines a reusable reward bundle.
type CreateTemplateRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Description    string                 `json:"description"`
	Coins          int64                  `json:"coins"`
	Levels         int                    `json:"levels"`
	Items          []domain.RewardItem    `json:"items"`
	Monsters       []domain.RewardMonster `json:"monsters"`
	TopDamagerOnly bool                   `json:"is_top_damager"`
}

// AssignTemplateRequest binds a reward template to a boss.
type AssignTemplateRequest struct {
	TemplateID int64 `json:"template_id" binding:"required"`
}

// CreateTradeRequest proposes a trade between two trainers.
type CreateTradeRequest struct {
	InitiatorID    int64             `json:"initiator_id" binding:"required"`
	RecipientID    int64             `json:"recipient_id" binding:"required"`
	OfferedMons    []int64           `json:"offered_mons"`
	RequestedMons  []int64           `json:"requested_mons"`
	OfferedItems   domain.ItemBundle `json:"offered_items"`
	RequestedItems domain.ItemBundle `json:"requested_items"`
}

// CreateTrainerRequest registers a new trainer for a player.
type CreateTrainerRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// AddCoinsRequest credits or debits trainer currency.
type AddCoinsRequest struct {
	Coins int64 `json:"coins" binding:"required"`
}

// AddLevelsRequest grants trainer levels.
type AddLevelsRequest struct {
	Levels int `json:"levels" binding:"required"`
}

// UpdateInventoryRequest adjusts one inventory entry by a signed delta.
type UpdateInventoryRequest struct {
	Category string `json:"category" binding:"required"`
	ItemName string `json:"item_name" binding:"required"`
	Delta    int    `json:"delta" binding:"required"`
}

// CreateMonsterRequest registers a monster for a trainer.
type CreateMonsterRequest struct {
	TrainerID   int64   `json:"trainer_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Level       int     `json:"level"`
	BoxNumber   int     `json:"box_number"`
	IsSpecial   bool    `json:"is_special"`
	Species1    string  `json:"species1" binding:"required"`
	Species2    *string `json:"species2"`
	Species3    *string `json:"species3"`
	Type1       string  `json:"type1" binding:"required"`
	Type2       *string `json:"type2"`
	Type3       *string `json:"type3"`
	Type4       *string `json:"type4"`
	Type5       *string `json:"type5"`
	Attribute   string  `json:"attribute"`
}

// StartMissionRequest begins a mission, optionally binding monsters that
// level up on completion.
type StartMissionRequest struct {
	MissionID int64   `json:"mission_id" binding:"required"`
	MonIDs    []int64 `json:"mon_ids"`
}

// MissionProgressRequest bumps the active mission's progress counter.
type MissionProgressRequest struct {
	Amount int `json:"amount" binding:"required"`
}

// CreateTaskRequest registers a one-shot task.
type CreateTaskRequest struct {
	TrainerID   int64  `json:"trainer_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	CoinReward  int64  `json:"coin_reward"`
	LevelReward int    `json:"level_reward"`
	MonsterID   *int64 `json:"monster_id"`
}

// CreateHabitRequest registers a repeating habit.
type CreateHabitRequest struct {
	TrainerID   int64  `json:"trainer_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Frequency   string `json:"frequency" binding:"required"`
	CoinReward  int64  `json:"coin_reward"`
	LevelReward int    `json:"level_reward"`
	MonsterID   *int64 `json:"monster_id"`
}
