package template

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"stockadmin/internal/model"
	"stockadmin/internal/service"
	tplengine "stockadmin/internal/template"
	"stockadmin/pkg/errors"
	"stockadmin/pkg/errors/ecode"
	"stockadmin/pkg/response"
	"stockadmin/pkg/validator"
)

type Handler struct {
	service service.TemplateService
}

func NewHandler(service service.TemplateService) *Handler {
	return &Handler{service: service}
}

// respond 把存储侧响应翻译给前端
// 冲突走ConflictErr业务码（HTTP仍是200），前端据此弹确认覆盖的对话框
func respond(ctx *gin.Context, resp *tplengine.Response, err error) {
	if err != nil {
		response.JSON(ctx, err, nil)
		return
	}
	if ce, ok := tplengine.AsConflict(resp, nil); ok {
		response.JSON(ctx, errors.WithCode(ecode.ConflictErr, ce.Message), resp)
		return
	}
	if !resp.Success {
		response.JSON(ctx, errors.WithCode(ecode.Unknown, resp.Message), resp)
		return
	}
	response.JSON(ctx, nil, resp)
}

func (h *Handler) TemplateSave() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.TemplateSaveReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		resp, err := h.service.TemplateSave(ctx, req)
		respond(ctx, resp, err)
	}
}

func (h *Handler) TemplateList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.TemplateListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		res, err := h.service.TemplateList(ctx, req)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "查询模板列表失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

func (h *Handler) TemplateDelete() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.TemplateDeleteReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		id, err := strconv.ParseInt(req.Id, 10, 64)
		if err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "模板id不合法"), nil)
			return
		}
		// 删除失败的服务端原因（比如模板被引用）原样透给前端
		if err := h.service.TemplateDelete(ctx, id); err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "删除模板失败"), nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}

func (h *Handler) TemplateApply() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.TemplateApplyReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		id, err := strconv.ParseInt(req.TemplateId, 10, 64)
		if err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "模板id不合法"), nil)
			return
		}
		resp, err := h.service.TemplateApply(ctx, id, req.TargetIds)
		respond(ctx, resp, err)
	}
}

func (h *Handler) SegTemplateSave() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.SegTemplateSaveReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		resp, err := h.service.SegTemplateSave(ctx, req)
		respond(ctx, resp, err)
	}
}

func (h *Handler) SegTemplateList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.SegTemplateListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		res, err := h.service.SegTemplateList(ctx, req)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "查询分时段模板失败"), nil)
			return
		}
		response.JSON(ctx, nil, res)
	}
}

func (h *Handler) SegTemplateDelete() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.TemplateDeleteReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		id, err := strconv.ParseInt(req.Id, 10, 64)
		if err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "模板id不合法"), nil)
			return
		}
		if err := h.service.SegTemplateDelete(ctx, id); err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "删除分时段模板失败"), nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}

// LevelSwitch 批量切换档位，部分成功也是正常返回，结果报告里带明细
func (h *Handler) LevelSwitch() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.LevelSwitchReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		res, err := h.service.LevelSwitch(ctx, req)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "批量切换档位失败"), nil)
			return
		}
		response.JSON(ctx, nil, model.LevelSwitchRes{Result: res})
	}
}
