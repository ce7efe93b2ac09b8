package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
// 导入全部走 upsert，冲突时由仓储层刷新 updated_at
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
