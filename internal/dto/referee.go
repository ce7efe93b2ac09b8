package dto

// ── 裁判模块 DTO ──

// RefereeListRequest 裁判列表查询参数
type RefereeListRequest struct {
	Sezione string `form:"sezione" binding:"omitempty,max=50"`
	Search  string `form:"search"  binding:"omitempty,max=100"` // 按姓氏模糊匹配
	PaginationRequest
}

// RefereeResponse 裁判信息响应
type RefereeResponse struct {
	CodMecc       string `json:"cod_mecc"`
	Cognome       string `json:"cognome"`
	Nome          string `json:"nome"`
	Sezione       string `json:"sezione,omitempty"`
	Eta           *int   `json:"eta,omitempty"`
	AnnoAnzianita *int   `json:"anno_anzianita,omitempty"`
	Anzianita     *int   `json:"anzianita,omitempty"` // 参考年份 − anno_anzianita
}

// CareerSummaryResponse 裁判生涯汇总
type CareerSummaryResponse struct {
	Referee       RefereeResponse `json:"referee"`
	TotalMatches  int             `json:"total_matches"`
	ByRole        map[string]int  `json:"by_role"`
	ByCategory    map[string]int  `json:"by_category"`
	AvgVotoOA     *float64        `json:"avg_voto_oa,omitempty"`
	AvgVotoOT     *float64        `json:"avg_voto_ot,omitempty"`
	LastTenAvgOA  *float64        `json:"last_ten_avg_oa,omitempty"`
	LastTenAvgOT  *float64        `json:"last_ten_avg_ot,omitempty"`
	FirstMatch    string          `json:"first_match,omitempty"` // YYYY-MM-DD
	LastMatch     string          `json:"last_match,omitempty"`
	RecentMatches []MatchBrief    `json:"recent_matches,omitempty"`
}

// MatchBrief 场次简要信息
type MatchBrief struct {
	NumeroGara string   `json:"numero_gara"`
	DataGara   string   `json:"data_gara,omitempty"`
	Categoria  string   `json:"categoria,omitempty"`
	Girone     string   `json:"girone,omitempty"`
	Ruolo      string   `json:"ruolo,omitempty"`
	VotoOA     *float64 `json:"voto_oa,omitempty"`
	VotoOT     *float64 `json:"voto_ot,omitempty"`
}
