package dto

// ── 周报表 DTO ──

// WeeklyReportRequest 周报表查询参数
type WeeklyReportRequest struct {
	CodMecc string `form:"cod_mecc" binding:"omitempty,max=16"`
	DateRangeRequest
}

// WeekColumn 周列（周一至周日）
type WeekColumn struct {
	Inizio string `json:"inizio"` // YYYY-MM-DD，周一
	Fine   string `json:"fine"`   // YYYY-MM-DD，周日
	Label  string `json:"label"`  // "dd/mm - dd/mm"
}

// WeeklyCell 单个裁判在单周内的汇总格
type WeeklyCell struct {
	Gare            []string `json:"gare,omitempty"`            // "CAT GIR dd/mm"
	Voti            []string `json:"voti,omitempty"`            // "OA:x OT:y (COGNOME)"
	Indisponibilita []string `json:"indisponibilita,omitempty"` // 事由列表
	Note            []string `json:"note,omitempty"`
}

// WeeklyReportRow 单个裁判的周报表行
type WeeklyReportRow struct {
	Referee RefereeResponse `json:"referee"`
	Cells   []WeeklyCell    `json:"cells"` // 与 Weeks 等长、一一对应
}

// WeeklyReportResponse 周报表响应
type WeeklyReportResponse struct {
	Weeks []WeekColumn      `json:"weeks"`
	Rows  []WeeklyReportRow `json:"rows"`
}

// ── 不可用区间报表 ──

// PeriodsRequest 不可用区间查询参数
type PeriodsRequest struct {
	CodMecc string `form:"cod_mecc" binding:"omitempty,max=16"`
	Motivo  string `form:"motivo"  binding:"omitempty,max=200"`
	DateRangeRequest
}

// PeriodEntry 聚合后的连续不可用区间
type PeriodEntry struct {
	CodMecc string `json:"cod_mecc"`
	Cognome string `json:"cognome"`
	Nome    string `json:"nome"`
	Motivo  string `json:"motivo,omitempty"`
	Inizio  string `json:"inizio"` // YYYY-MM-DD
	Fine    string `json:"fine"`
	Giorni  int    `json:"giorni"`
}

// PeriodsResponse 不可用区间响应
type PeriodsResponse struct {
	Periods      []PeriodEntry `json:"periods"`
	TotalDays    int           `json:"total_days"`
	TotalPeriods int           `json:"total_periods"`
}

// ── 频次统计 ──

// FrequencyRequest 执裁频次查询参数
type FrequencyRequest struct {
	DateRangeRequest
}

// FrequencyEntry 单个裁判的执裁频次
type FrequencyEntry struct {
	Referee    RefereeResponse `json:"referee"`
	Matches    int             `json:"matches"`
	FirstMatch string          `json:"first_match,omitempty"`
	LastMatch  string          `json:"last_match,omitempty"`
	Categories []string        `json:"categories,omitempty"`
}

// MonthlyComparison 月度对比
type MonthlyComparison struct {
	Month          string  `json:"month"` // YYYY-MM
	ActiveReferees int     `json:"active_referees"`
	TotalMatches   int     `json:"total_matches"`
	MeanPerReferee float64 `json:"mean_per_referee"`
}

// DistributionBucket 频次分布桶
type DistributionBucket struct {
	Label    string `json:"label"` // 如 "1-2"、"3-5"
	Referees int    `json:"referees"`
}

// FrequencyResponse 执裁频次统计响应
type FrequencyResponse struct {
	Entries      []FrequencyEntry     `json:"entries"`
	Monthly      []MonthlyComparison  `json:"monthly"`
	Distribution []DistributionBucket `json:"distribution"`
}
