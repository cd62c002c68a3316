package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/abhisek/intervue/internal/llm"
)

// llmCallRecord is one persisted evaluation-provider call.
type llmCallRecord struct {
	ID           uint `gorm:"primaryKey"`
	Provider     string
	Model        string
	Purpose      string `gorm:"index"`
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	CreatedAt    time.Time
}

func (llmCallRecord) TableName() string { return "llm_calls" }

// CallLog implements llm.CallLogger over the database.
type CallLog struct {
	db *gorm.DB
}

func (l *CallLog) AppendLLMCall(ctx context.Context, rec llm.CallRecord) error {
	row := llmCallRecord{
		Provider:     rec.Provider,
		Model:        rec.Model,
		Purpose:      rec.Purpose,
		InputTokens:  rec.InputTokens,
		OutputTokens: rec.OutputTokens,
		LatencyMs:    rec.LatencyMs,
		Success:      rec.Success,
		ErrorMessage: rec.ErrorMessage,
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("append llm call: %w", err)
	}
	return nil
}

// UsageByPurpose aggregates token consumption per call purpose.
func (l *CallLog) UsageByPurpose(ctx context.Context) ([]UsageStat, error) {
	var stats []UsageStat
	err := l.db.WithContext(ctx).
		Model(&llmCallRecord{}).
		Select("purpose, COUNT(*) AS calls, SUM(input_tokens) AS input_tokens, SUM(output_tokens) AS output_tokens").
		Group("purpose").
		Order("purpose").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("usage by purpose: %w", err)
	}
	return stats, nil
}

// UsageStat is aggregated call-log usage for one purpose.
type UsageStat struct {
	Purpose      string
	Calls        int64
	InputTokens  int64
	OutputTokens int64
}
