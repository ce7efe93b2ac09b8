package model

import "time"

// Match 比赛指派，对应 gare
//
// cod_mecc 的两种含义用 matched 区分（而不是混用同一个字段）：
//   - matched=true:  已解析到花名册的规范编号
//   - matched=false: 解析失败，存的是源文件原始编号（指派数据
//     不能因为身份解析失败而静默丢弃）
type Match struct {
	ID               uint64     `gorm:"primaryKey;autoIncrement"                                   json:"id"`
	NumeroGara       string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_gara_arbitro"      json:"numero_gara"`
	CodMecc          string     `gorm:"column:cod_mecc;type:varchar(16);not null;uniqueIndex:uq_gara_arbitro;index" json:"cod_mecc"`
	CodMeccRaw       string     `gorm:"column:cod_mecc_raw;type:varchar(16);not null"              json:"cod_mecc_raw"` // 源文件中的原始编号
	Matched          bool       `gorm:"not null;default:false"                                     json:"matched"`
	DataGara         *time.Time `gorm:"type:date;index"                                            json:"data_gara,omitempty"`
	Categoria        *string    `gorm:"type:varchar(50)"                                           json:"categoria,omitempty"`
	Girone           *string    `gorm:"type:varchar(20)"                                           json:"girone,omitempty"`
	Ruolo            *string    `gorm:"type:varchar(10)"                                           json:"ruolo,omitempty"`
	CognomeArbitro   *string    `gorm:"type:varchar(100)"                                          json:"cognome_arbitro,omitempty"`
	SquadraCasa      *string    `gorm:"type:varchar(100)"                                          json:"squadra_casa,omitempty"`
	SquadraTrasferta *string    `gorm:"type:varchar(100)"                                          json:"squadra_trasferta,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Match) TableName() string { return "gare" }
