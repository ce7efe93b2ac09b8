package model

// Referee 裁判花名册（anagrafica）— 对应 arbitri
// cod_mecc 是权威的 8 位机构编号，其它来源文件中的截断编号
// 在导入时都解析回这里
type Referee struct {
	CodMecc       string  `gorm:"column:cod_mecc;type:varchar(16);primaryKey" json:"cod_mecc"`
	Cognome       string  `gorm:"type:varchar(100);not null"                  json:"cognome"`
	Nome          string  `gorm:"type:varchar(100);not null"                  json:"nome"`
	Sezione       *string `gorm:"type:varchar(50)"                            json:"sezione,omitempty"`
	Eta           *int    `gorm:"type:smallint"                               json:"eta,omitempty"`
	AnnoAnzianita *int    `gorm:"type:smallint"                               json:"anno_anzianita,omitempty"` // OT 任职起始年份
	BaseModel
}

// TableName 指定表名
func (Referee) TableName() string { return "arbitri" }
