package model

import "stockadmin/internal/timeseg"

// StockConfigSaveReq 保存策略×股票配置
type StockConfigSaveReq struct {
	Id         int64  `json:"id"`
	StrategyId int64  `json:"strategy_id" binding:"required"`
	StockCode  string `json:"stock_code" binding:"required"`

	// 互斥，恰好设置一个
	MaxAmount   float64 `json:"max_amount"`
	FundPercent float64 `json:"fund_percent"`

	UnsoldStackLimit int `json:"unsold_stack_limit"`
	LimitStartShares int `json:"limit_start_shares"`
	TotalFundShares  int `json:"total_fund_shares"`

	BuyRatioConfig string                 `json:"buy_ratio_config"`
	TimeSegments   []timeseg.DisplayEntry `json:"time_segments" binding:"dive"`
	EnableStatus   int                    `json:"enable_status"`
}

// UserStockConfigSaveReq 保存账户×股票覆盖配置
type UserStockConfigSaveReq struct {
	Id          int64  `json:"id"`
	Account     string `json:"account" binding:"required"`
	AccountName string `json:"account_name"`
	StrategyId  int64  `json:"strategy_id" binding:"required"`
	StockCode   string `json:"stock_code" binding:"required"`

	MaxAmount   float64 `json:"max_amount"`
	FundPercent float64 `json:"fund_percent"`

	UnsoldStackLimit int `json:"unsold_stack_limit"`
	LimitStartShares int `json:"limit_start_shares"`
	TotalFundShares  int `json:"total_fund_shares"`

	BuyRatioConfig string                 `json:"buy_ratio_config"`
	TimeSegments   []timeseg.DisplayEntry `json:"time_segments" binding:"dive"`
	EnableStatus   int                    `json:"enable_status"`
}

type StockConfigDeleteReq struct {
	Id int64 `json:"id" binding:"required"`
}

type StockConfigListReq struct {
	StrategyId int64  `json:"strategy_id" form:"strategy_id" binding:"required"`
	StockCode  string `json:"stock_code" form:"stock_code"`
	Page       int    `json:"page" form:"page"`
	Limit      int    `json:"limit" form:"limit"`
}

type UserStockConfigListReq struct {
	StrategyId int64  `json:"strategy_id" form:"strategy_id"`
	StockCode  string `json:"stock_code" form:"stock_code"`
	Account    string `json:"account" form:"account"`
	Page       int    `json:"page" form:"page"`
	Limit      int    `json:"limit" form:"limit"`
}

// AllocationSummaryReq 资金分配概况，account非空时查账户覆盖配置
type AllocationSummaryReq struct {
	StrategyId         int64   `json:"strategy_id" form:"strategy_id" binding:"required"`
	StockCode          string  `json:"stock_code" form:"stock_code" binding:"required"`
	Account            string  `json:"account" form:"account"`
	AccountTotalAmount float64 `json:"account_total_amount" form:"account_total_amount"` // 账户总资产，0表示未知
}

// AllocationSummaryRes 派生资金指标，金额在这里才做两位小数取整
type AllocationSummaryRes struct {
	SingleAmount    float64 `json:"single_amount"`
	DailyMaxHolding float64 `json:"daily_max_holding"`
	MaxHolding      float64 `json:"max_holding"`

	// 账户总资产未知时HasRatio=false，百分比字段无意义
	HasRatio        bool    `json:"has_ratio"`
	SingleRatio     float64 `json:"single_ratio"`
	DailyMaxRatio   float64 `json:"daily_max_ratio"`
	MaxHoldingRatio float64 `json:"max_holding_ratio"`
}
