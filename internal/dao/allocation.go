package dao

import (
	"context"
	"stockadmin/internal/model/entity"
)

type AllocationDao interface {
	// 策略×股票配置
	StockCreate(ctx context.Context, stock *entity.StrategyStock) error
	StockUpdate(ctx context.Context, stock *entity.StrategyStock) error
	StockGetById(ctx context.Context, id int64) (*entity.StrategyStock, error)
	StockGetByKey(ctx context.Context, strategyId int64, stockCode string) (*entity.StrategyStock, error)
	StockList(ctx context.Context, strategyId int64, stockCode string, page, limit int) ([]entity.StrategyStock, error)
	StockListByIds(ctx context.Context, ids []int64) ([]entity.StrategyStock, error)
	// 部分字段更新（模板应用时的覆盖写）
	StockUpdateColumns(ctx context.Context, id int64, updates map[string]interface{}) error
	StockDelete(ctx context.Context, id int64) error

	// 账户×股票覆盖配置
	UserStockCreate(ctx context.Context, us *entity.StrategyUserStock) error
	UserStockUpdate(ctx context.Context, us *entity.StrategyUserStock) error
	UserStockGetById(ctx context.Context, id int64) (*entity.StrategyUserStock, error)
	UserStockGetByKey(ctx context.Context, account string, strategyId int64, stockCode string) (*entity.StrategyUserStock, error)
	UserStockList(ctx context.Context, strategyId int64, stockCode, account string, page, limit int) ([]entity.StrategyUserStock, error)
	// 一个策略标的行级联的所有账户覆盖配置
	UserStockListByStock(ctx context.Context, strategyId int64, stockCode string) ([]entity.StrategyUserStock, error)
	UserStockUpdateColumns(ctx context.Context, id int64, updates map[string]interface{}) error
	UserStockDelete(ctx context.Context, id int64) error
}
