package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dameliogcand/referee-dash/internal/dto"
	"github.com/dameliogcand/referee-dash/internal/service"
	"github.com/dameliogcand/referee-dash/pkg/response"
)

// RefereeHandler 裁判模块 HTTP 处理器
type RefereeHandler struct {
	refereeSvc service.RefereeService
	statsSvc   service.StatsService
}

// NewRefereeHandler 创建 RefereeHandler
func NewRefereeHandler(refereeSvc service.RefereeService, statsSvc service.StatsService) *RefereeHandler {
	return &RefereeHandler{refereeSvc: refereeSvc, statsSvc: statsSvc}
}

// List 裁判列表
// GET /api/v1/referees?sezione=&search=&page=&page_size=
func (h *RefereeHandler) List(c *gin.Context) {
	var req dto.RefereeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数错误: "+err.Error())
		return
	}

	list, total, err := h.refereeSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Get 单个裁判
// GET /api/v1/referees/:cod_mecc
func (h *RefereeHandler) Get(c *gin.Context) {
	codMecc := c.Param("cod_mecc")

	referee, err := h.refereeSvc.Get(c.Request.Context(), codMecc)
	if err != nil {
		if errors.Is(err, service.ErrRefereeNotFound) {
			response.NotFound(c, 12001, "裁判不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, referee)
}

// Career 裁判生涯汇总
// GET /api/v1/referees/:cod_mecc/career
func (h *RefereeHandler) Career(c *gin.Context) {
	codMecc := c.Param("cod_mecc")

	summary, err := h.statsSvc.Career(c.Request.Context(), codMecc)
	if err != nil {
		if errors.Is(err, service.ErrRefereeNotFound) {
			response.NotFound(c, 12001, "裁判不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, summary)
}
