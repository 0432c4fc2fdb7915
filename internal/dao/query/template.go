package query

import (
	"context"
	"stockadmin/internal/model/entity"

	"gorm.io/gorm"
)

type templateDao struct {
	db *gorm.DB
}

func NewTemplateDao(db *gorm.DB) *templateDao {
	return &templateDao{db: db}
}

func (d *templateDao) TemplateCreate(ctx context.Context, tpl *entity.ConfigTemplate) error {
	return d.db.WithContext(ctx).Create(tpl).Error
}

func (d *templateDao) TemplateUpdate(ctx context.Context, tpl *entity.ConfigTemplate) error {
	return d.db.WithContext(ctx).Updates(tpl).Error
}

func (d *templateDao) TemplateGetByName(ctx context.Context, configType int, name string) (*entity.ConfigTemplate, error) {
	var tpl entity.ConfigTemplate
	res := d.db.WithContext(ctx).
		Where("config_type = ?", configType).
		Where("name = ?", name).
		Limit(1).
		Find(&tpl)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &tpl, nil
}

func (d *templateDao) TemplateGetById(ctx context.Context, id int64) (*entity.ConfigTemplate, error) {
	var tpl entity.ConfigTemplate
	res := d.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&tpl)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &tpl, nil
}

func (d *templateDao) TemplateListByType(ctx context.Context, configType int, strategyId int64) ([]entity.ConfigTemplate, error) {
	var arr []entity.ConfigTemplate
	q := d.db.WithContext(ctx).Where("config_type = ?", configType)
	if strategyId > 0 {
		q = q.Where("strategy_id = ?", strategyId)
	}
	err := q.Order("id").Find(&arr).Error
	return arr, err
}

func (d *templateDao) TemplateDelete(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Delete(&entity.ConfigTemplate{}, id).Error
}

func (d *templateDao) SegTemplateCreate(ctx context.Context, tpl *entity.TimeSegmentTemplate) error {
	return d.db.WithContext(ctx).Create(tpl).Error
}

func (d *templateDao) SegTemplateUpdate(ctx context.Context, tpl *entity.TimeSegmentTemplate) error {
	return d.db.WithContext(ctx).Updates(tpl).Error
}

func (d *templateDao) SegTemplateGetByIdentity(ctx context.Context, stockCode, account, level string) (*entity.TimeSegmentTemplate, error) {
	var tpl entity.TimeSegmentTemplate
	res := d.db.WithContext(ctx).
		Where("stock_code = ?", stockCode).
		Where("account = ?", account).
		Where("template_level = ?", level).
		Limit(1).
		Find(&tpl)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &tpl, nil
}

func (d *templateDao) SegTemplateGetById(ctx context.Context, id int64) (*entity.TimeSegmentTemplate, error) {
	var tpl entity.TimeSegmentTemplate
	res := d.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&tpl)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &tpl, nil
}

func (d *templateDao) SegTemplateList(ctx context.Context, stockCode, account, level string, strategyId int64) ([]entity.TimeSegmentTemplate, error) {
	var arr []entity.TimeSegmentTemplate
	q := d.db.WithContext(ctx).Model(&entity.TimeSegmentTemplate{})
	if stockCode != "" {
		q = q.Where("stock_code = ?", stockCode)
	}
	if account != "" {
		q = q.Where("account = ?", account)
	}
	if level != "" {
		q = q.Where("template_level = ?", level)
	}
	if strategyId > 0 {
		q = q.Where("strategy_id = ?", strategyId)
	}
	err := q.Order("id").Find(&arr).Error
	return arr, err
}

func (d *templateDao) SegTemplateDelete(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Delete(&entity.TimeSegmentTemplate{}, id).Error
}

func (d *templateDao) SegTemplateFindByLevel(ctx context.Context, strategyId int64, stockCode, level string) (*entity.TimeSegmentTemplate, error) {
	var tpl entity.TimeSegmentTemplate
	q := d.db.WithContext(ctx).
		Where("stock_code = ?", stockCode).
		Where("template_level = ?", level)
	if strategyId > 0 {
		q = q.Where("strategy_id = ?", strategyId)
	}
	res := q.Order("id").Limit(1).Find(&tpl)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &tpl, nil
}
