package query

import (
	"context"
	"stockadmin/internal/model/entity"

	"gorm.io/gorm"
)

type allocationDao struct {
	db *gorm.DB
}

func NewAllocationDao(db *gorm.DB) *allocationDao {
	return &allocationDao{db: db}
}

func (d *allocationDao) StockCreate(ctx context.Context, stock *entity.StrategyStock) error {
	return d.db.WithContext(ctx).Create(stock).Error
}

func (d *allocationDao) StockUpdate(ctx context.Context, stock *entity.StrategyStock) error {
	return d.db.WithContext(ctx).Updates(stock).Error
}

func (d *allocationDao) StockGetById(ctx context.Context, id int64) (*entity.StrategyStock, error) {
	var stock entity.StrategyStock
	res := d.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&stock)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &stock, nil
}

func (d *allocationDao) StockGetByKey(ctx context.Context, strategyId int64, stockCode string) (*entity.StrategyStock, error) {
	var stock entity.StrategyStock
	res := d.db.WithContext(ctx).
		Where("strategy_id = ?", strategyId).
		Where("stock_code = ?", stockCode).
		Limit(1).
		Find(&stock)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &stock, nil
}

func (d *allocationDao) StockList(ctx context.Context, strategyId int64, stockCode string, page, limit int) ([]entity.StrategyStock, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit
	var arr []entity.StrategyStock
	q := d.db.WithContext(ctx).Model(&entity.StrategyStock{}).Where("strategy_id = ?", strategyId)
	if stockCode != "" {
		q = q.Where("stock_code = ?", stockCode)
	}
	err := q.Order("id").Limit(limit).Offset(offset).Find(&arr).Error
	return arr, err
}

func (d *allocationDao) StockListByIds(ctx context.Context, ids []int64) ([]entity.StrategyStock, error) {
	var arr []entity.StrategyStock
	err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&arr).Error
	return arr, err
}

func (d *allocationDao) StockUpdateColumns(ctx context.Context, id int64, updates map[string]interface{}) error {
	return d.db.WithContext(ctx).Model(&entity.StrategyStock{}).Where("id = ?", id).Updates(updates).Error
}

func (d *allocationDao) StockDelete(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Delete(&entity.StrategyStock{}, id).Error
}

func (d *allocationDao) UserStockCreate(ctx context.Context, us *entity.StrategyUserStock) error {
	return d.db.WithContext(ctx).Create(us).Error
}

func (d *allocationDao) UserStockUpdate(ctx context.Context, us *entity.StrategyUserStock) error {
	return d.db.WithContext(ctx).Updates(us).Error
}

func (d *allocationDao) UserStockGetById(ctx context.Context, id int64) (*entity.StrategyUserStock, error) {
	var us entity.StrategyUserStock
	res := d.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&us)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &us, nil
}

func (d *allocationDao) UserStockGetByKey(ctx context.Context, account string, strategyId int64, stockCode string) (*entity.StrategyUserStock, error) {
	var us entity.StrategyUserStock
	res := d.db.WithContext(ctx).
		Where("account = ?", account).
		Where("strategy_id = ?", strategyId).
		Where("stock_code = ?", stockCode).
		Limit(1).
		Find(&us)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &us, nil
}

func (d *allocationDao) UserStockList(ctx context.Context, strategyId int64, stockCode, account string, page, limit int) ([]entity.StrategyUserStock, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit
	var arr []entity.StrategyUserStock
	q := d.db.WithContext(ctx).Model(&entity.StrategyUserStock{})
	if strategyId > 0 {
		q = q.Where("strategy_id = ?", strategyId)
	}
	if stockCode != "" {
		q = q.Where("stock_code = ?", stockCode)
	}
	if account != "" {
		q = q.Where("account = ?", account)
	}
	err := q.Order("id").Limit(limit).Offset(offset).Find(&arr).Error
	return arr, err
}

func (d *allocationDao) UserStockListByStock(ctx context.Context, strategyId int64, stockCode string) ([]entity.StrategyUserStock, error) {
	var arr []entity.StrategyUserStock
	err := d.db.WithContext(ctx).
		Where("strategy_id = ?", strategyId).
		Where("stock_code = ?", stockCode).
		Find(&arr).Error
	return arr, err
}

func (d *allocationDao) UserStockUpdateColumns(ctx context.Context, id int64, updates map[string]interface{}) error {
	return d.db.WithContext(ctx).Model(&entity.StrategyUserStock{}).Where("id = ?", id).Updates(updates).Error
}

func (d *allocationDao) UserStockDelete(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Delete(&entity.StrategyUserStock{}, id).Error
}
