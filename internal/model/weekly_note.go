package model

import "time"

// WeeklyNote 裁判的周备注，对应 note_settimanali
// 以 (cod_mecc, 周起, 周止) 为键 upsert；报表按区间相交查询
type WeeklyNote struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement"                                       json:"id"`
	CodMecc         string    `gorm:"column:cod_mecc;type:varchar(16);not null;uniqueIndex:uq_nota"  json:"cod_mecc"`
	SettimanaInizio time.Time `gorm:"type:date;not null;uniqueIndex:uq_nota"                         json:"settimana_inizio"`
	SettimanaFine   time.Time `gorm:"type:date;not null;uniqueIndex:uq_nota"                         json:"settimana_fine"`
	Nota            string    `gorm:"type:text;not null"                                             json:"nota"`
	BaseModel
}

// TableName 指定表名
func (WeeklyNote) TableName() string { return "note_settimanali" }
