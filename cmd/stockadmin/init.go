package api

import (
	"gorm.io/gorm"

	"stockadmin/internal/dao/query"
	"stockadmin/internal/handler/allocation"
	"stockadmin/internal/handler/template"
	"stockadmin/internal/router"
	"stockadmin/internal/service"
	"stockadmin/pkg/kafka"
)

func InitRouter(db *gorm.DB, producer kafka.ProducerService) Router {
	td := query.NewTemplateDao(db)
	ad := query.NewAllocationDao(db)

	ts := service.NewTemplateService(td, ad, producer)
	as := service.NewAllocationService(ad)

	th := template.NewHandler(ts)
	ah := allocation.NewHandler(as)

	return router.NewApiRouter(ah, th)
}
