package router

import (
	"github.com/gin-gonic/gin"

	"stockadmin/internal/handler/allocation"
	"stockadmin/internal/handler/ping"
	"stockadmin/internal/handler/template"
	"stockadmin/internal/middleware"
)

type ApiRouter struct {
	allocationHandler *allocation.Handler
	templateHandler   *template.Handler
}

func NewApiRouter(ah *allocation.Handler, th *template.Handler) *ApiRouter {
	return &ApiRouter{allocationHandler: ah, templateHandler: th}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.GET("/ping", ping.Ping())

	base := g.Group("/api/v1")

	sc := base.Group("/stock-config")
	{
		sc.POST("/save", api.allocationHandler.StockConfigSave())
		sc.GET("/list", api.allocationHandler.StockConfigList())
		sc.POST("/delete", api.allocationHandler.StockConfigDelete())
		// 编辑对话框里实时算派生资金指标
		sc.GET("/allocation", api.allocationHandler.AllocationSummary())
	}

	uc := base.Group("/user-stock-config")
	{
		uc.POST("/save", api.allocationHandler.UserStockConfigSave())
		uc.GET("/list", api.allocationHandler.UserStockConfigList())
		uc.POST("/delete", api.allocationHandler.UserStockConfigDelete())
	}

	tp := base.Group("/template")
	{
		tp.POST("/save", api.templateHandler.TemplateSave())
		tp.GET("/list", api.templateHandler.TemplateList())
		tp.POST("/delete", api.templateHandler.TemplateDelete())
		// 应用和批量切档是批量写操作，挂防重提交
		tp.POST("/apply", middleware.AntiDuplicateMiddleware(), api.templateHandler.TemplateApply())
		tp.POST("/level-switch", middleware.AntiDuplicateMiddleware(), api.templateHandler.LevelSwitch())
	}

	st := base.Group("/segment-template")
	{
		st.POST("/save", api.templateHandler.SegTemplateSave())
		st.GET("/list", api.templateHandler.SegTemplateList())
		st.POST("/delete", api.templateHandler.SegTemplateDelete())
	}
}
