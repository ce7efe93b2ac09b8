package dto

// ── 导入模块 DTO ──

// ImportResult 批量导入结果
// 单行错误不会中止整批；Errors 仅回显前若干条，TotalErrors 为完整计数
type ImportResult struct {
	Processed   int      `json:"processed"`
	Skipped     int      `json:"skipped"`
	Unresolved  int      `json:"unresolved,omitempty"` // 身份未解析但仍入库的行数（仅赛程导入）
	Errors      []string `json:"errors,omitempty"`
	TotalErrors int      `json:"total_errors"`
	Message     string   `json:"message"`
}

// ScoreLinesRequest 裁判评分导入请求
// 客户端先在外部完成 PDF 文本提取，这里只接收逐行文本
type ScoreLinesRequest struct {
	Lines []string `json:"lines" binding:"required,min=1"`
}

// SeniorityLinesRequest 年资名册文本导入请求（graduatoria 逐行文本）
type SeniorityLinesRequest struct {
	Lines []string `json:"lines" binding:"required,min=1"`
}
