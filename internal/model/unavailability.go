package model

import "time"

// Unavailability 不可用日，对应 indisponibilita
// 一条记录一天；连续区间由 calendar.AggregatePeriods 按需重算，不落库。
// cod_mecc 在导入时已解析为规范编号（解析失败的行被跳过并计数）
type Unavailability struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"                                      json:"id"`
	CodMecc   string    `gorm:"column:cod_mecc;type:varchar(16);not null;uniqueIndex:uq_indisp" json:"cod_mecc"`
	Data      time.Time `gorm:"type:date;not null;uniqueIndex:uq_indisp;index"                json:"data"`
	Motivo    *string   `gorm:"type:varchar(200)"                                             json:"motivo,omitempty"`
	Qualifica *string   `gorm:"type:varchar(50)"                                              json:"qualifica,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Unavailability) TableName() string { return "indisponibilita" }
