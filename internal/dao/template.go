package dao

import (
	"context"
	"stockadmin/internal/model/entity"
)

type TemplateDao interface {
	// 创建通用配置模板
	TemplateCreate(ctx context.Context, tpl *entity.ConfigTemplate) error
	// 更新通用配置模板（确认覆盖时替换payload）
	TemplateUpdate(ctx context.Context, tpl *entity.ConfigTemplate) error
	// 按类型+名称查模板，不存在返回nil
	TemplateGetByName(ctx context.Context, configType int, name string) (*entity.ConfigTemplate, error)
	TemplateGetById(ctx context.Context, id int64) (*entity.ConfigTemplate, error)
	// 按类型列出模板
	TemplateListByType(ctx context.Context, configType int, strategyId int64) ([]entity.ConfigTemplate, error)
	// 删除模板，数据库错误原样返回
	TemplateDelete(ctx context.Context, id int64) error

	// 分时段模板
	SegTemplateCreate(ctx context.Context, tpl *entity.TimeSegmentTemplate) error
	SegTemplateUpdate(ctx context.Context, tpl *entity.TimeSegmentTemplate) error
	// 按标识键(股票+账户+档位)查模板，不存在返回nil
	SegTemplateGetByIdentity(ctx context.Context, stockCode, account, level string) (*entity.TimeSegmentTemplate, error)
	SegTemplateGetById(ctx context.Context, id int64) (*entity.TimeSegmentTemplate, error)
	SegTemplateList(ctx context.Context, stockCode, account, level string, strategyId int64) ([]entity.TimeSegmentTemplate, error)
	SegTemplateDelete(ctx context.Context, id int64) error
	// 按(策略,股票,档位)找切换用的模板，账户维度不参与匹配；不存在返回nil
	SegTemplateFindByLevel(ctx context.Context, strategyId int64, stockCode, level string) (*entity.TimeSegmentTemplate, error)
}
