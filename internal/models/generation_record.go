package models

import "time"

// GenerationRecord is one finished generation kept in the local history.
type GenerationRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RequestID string    `gorm:"size:36;index" json:"requestId"`
	ModeID    string    `gorm:"size:64;not null" json:"modeId"`
	ModelID   string    `gorm:"size:128" json:"modelId"`
	Provider  string    `gorm:"size:32" json:"provider"`
	InputText string    `gorm:"type:text" json:"inputText"`
	Output    string    `gorm:"type:text" json:"output"`
	Failed    bool      `gorm:"not null;default:false" json:"failed"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
