package allocation

import (
	"github.com/gin-gonic/gin"

	"stockadmin/internal/model"
	"stockadmin/internal/service"
	"stockadmin/pkg/errors"
	"stockadmin/pkg/errors/ecode"
	"stockadmin/pkg/response"
	"stockadmin/pkg/validator"
)

type Handler struct {
	service service.AllocationService
}

func NewHandler(service service.AllocationService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) StockConfigSave() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.StockConfigSaveReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		if err := h.service.StockConfigSave(ctx, req); err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}

func (h *Handler) StockConfigList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.StockConfigListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		res, err := h.service.StockConfigList(ctx, req)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "查询股票配置失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

func (h *Handler) StockConfigDelete() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.StockConfigDeleteReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		if err := h.service.StockConfigDelete(ctx, req.Id); err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "删除股票配置失败"), nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}

func (h *Handler) UserStockConfigSave() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.UserStockConfigSaveReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		if err := h.service.UserStockConfigSave(ctx, req); err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}

func (h *Handler) UserStockConfigList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.UserStockConfigListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		res, err := h.service.UserStockConfigList(ctx, req)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "查询账户配置失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

func (h *Handler) UserStockConfigDelete() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.StockConfigDeleteReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		if err := h.service.UserStockConfigDelete(ctx, req.Id); err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "删除账户配置失败"), nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}

// AllocationSummary 资金分配概况，编辑对话框里实时展示派生指标
func (h *Handler) AllocationSummary() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.AllocationSummaryReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		res, err := h.service.AllocationSummary(ctx, req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}
