package dto

// ── 周备注模块 DTO ──

// UpsertNoteRequest 写入周备注请求
// 同一（裁判，周）重复写入覆盖原内容
type UpsertNoteRequest struct {
	CodMecc         string `json:"cod_mecc"         binding:"required,max=16"`
	SettimanaInizio string `json:"settimana_inizio" binding:"required,datetime=2006-01-02"`
	SettimanaFine   string `json:"settimana_fine"   binding:"required,datetime=2006-01-02"`
	Nota            string `json:"nota"             binding:"required,max=2000"`
}

// DeleteNoteRequest 删除周备注请求
type DeleteNoteRequest struct {
	CodMecc         string `json:"cod_mecc"         binding:"required,max=16"`
	SettimanaInizio string `json:"settimana_inizio" binding:"required,datetime=2006-01-02"`
	SettimanaFine   string `json:"settimana_fine"   binding:"required,datetime=2006-01-02"`
}

// NoteListRequest 周备注列表查询参数
type NoteListRequest struct {
	CodMecc string `form:"cod_mecc" binding:"omitempty,max=16"`
	DateRangeRequest
}

// NoteResponse 周备注响应
type NoteResponse struct {
	CodMecc         string `json:"cod_mecc"`
	SettimanaInizio string `json:"settimana_inizio"`
	SettimanaFine   string `json:"settimana_fine"`
	Nota            string `json:"nota"`
}
