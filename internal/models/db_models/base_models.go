package db_models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"questflow/pkg/utils"
)

type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt int64     `gorm:"autoCreateTime"`
}

// Hooks to manage int64 timestamps
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = utils.NowUnixSeconds()
	return nil
}
