package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ReviewLog is an append-only audit entry for one consumed credit.
type ReviewLog struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	BusinessSlug string       `gorm:"not null;index"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ReviewLog) TableName() string { return "review_logs" }

// GenerateResult is the transient outcome of one generation request.
// Exhausted results carry the recharge link; both variants carry text.
type GenerateResult struct {
	Review       string
	Exhausted    bool
	RechargeLink string
}
