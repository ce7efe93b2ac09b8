package model

// TechnicalOfficer 比赛的技术机构（OT）指派，对应 organi_tecnici
// 从 CRA01 行中 ruolo 为非零数字的记录派生
type TechnicalOfficer struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"                            json:"id"`
	NumeroGara string `gorm:"type:varchar(20);not null;uniqueIndex:uq_gara_ot"    json:"numero_gara"`
	CodOT      string `gorm:"column:cod_ot;type:varchar(16);not null;uniqueIndex:uq_gara_ot" json:"cod_ot"`
	CognomeOT  string `gorm:"column:cognome_ot;type:varchar(100);not null"        json:"cognome_ot"`
	BaseModel
}

// TableName 指定表名
func (TechnicalOfficer) TableName() string { return "organi_tecnici" }
