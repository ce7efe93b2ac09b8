package model

// Score 比赛评分，对应 voti
// voto_oa 是现场观察员评分，voto_ot 是技术机构评分，范围都是 [0,10]
type Score struct {
	ID         uint64   `gorm:"primaryKey;autoIncrement"                json:"id"`
	NumeroGara string   `gorm:"type:varchar(20);not null;uniqueIndex"   json:"numero_gara"`
	VotoOA     *float64 `gorm:"column:voto_oa;type:numeric(4,2)"        json:"voto_oa,omitempty"`
	VotoOT     *float64 `gorm:"column:voto_ot;type:numeric(4,2)"        json:"voto_ot,omitempty"`
	Note       *string  `gorm:"type:text"                               json:"note,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Score) TableName() string { return "voti" }
