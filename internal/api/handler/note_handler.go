package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dameliogcand/referee-dash/internal/dto"
	"github.com/dameliogcand/referee-dash/internal/service"
	"github.com/dameliogcand/referee-dash/pkg/response"
)

// NoteHandler 周备注模块 HTTP 处理器
type NoteHandler struct {
	noteSvc service.NoteService
}

// NewNoteHandler 创建 NoteHandler
func NewNoteHandler(noteSvc service.NoteService) *NoteHandler {
	return &NoteHandler{noteSvc: noteSvc}
}

// List 周备注列表
// GET /api/v1/notes?from=&to=&cod_mecc=
func (h *NoteHandler) List(c *gin.Context) {
	var req dto.NoteListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数错误: "+err.Error())
		return
	}

	notes, err := h.noteSvc.List(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			response.BadRequest(c, 13001, "日期区间无效")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, notes)
}

// Upsert 写入周备注（重复写入覆盖）
// PUT /api/v1/notes
func (h *NoteHandler) Upsert(c *gin.Context) {
	var req dto.UpsertNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数错误: "+err.Error())
		return
	}

	note, err := h.noteSvc.Upsert(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrNoteInvalidWeek) {
			response.BadRequest(c, 14001, "备注的周区间无效")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, note)
}

// Delete 删除周备注
// DELETE /api/v1/notes
func (h *NoteHandler) Delete(c *gin.Context) {
	var req dto.DeleteNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数错误: "+err.Error())
		return
	}

	if err := h.noteSvc.Delete(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrNoteNotFound):
			response.NotFound(c, 14002, "周备注不存在")
		case errors.Is(err, service.ErrNoteInvalidWeek):
			response.BadRequest(c, 14001, "备注的周区间无效")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}
