package entity

import "time"

// StrategyStock 策略×股票的配置（策略级默认）
type StrategyStock struct {
	Id         int64  `gorm:"column:id;primaryKey" json:"id"`
	StrategyId int64  `gorm:"column:strategy_id;not null;index:idx_strategy_stock,unique" json:"strategy_id"`
	StockCode  string `gorm:"column:stock_code;size:16;not null;index:idx_strategy_stock,unique" json:"stock_code"`

	// 资金上限和资金占比互斥，只会设置一个
	MaxAmount   float64 `gorm:"column:max_amount;type:decimal(15,2)" json:"max_amount"`
	FundPercent float64 `gorm:"column:fund_percent;type:decimal(5,2)" json:"fund_percent"`

	UnsoldStackLimit int `gorm:"column:unsold_stack_limit;default:4" json:"unsold_stack_limit"`
	LimitStartShares int `gorm:"column:limit_start_shares;default:9" json:"limit_start_shares"`
	TotalFundShares  int `gorm:"column:total_fund_shares;default:18" json:"total_fund_shares"`

	// 梯度买入配置和分时段配置都以JSON串落库，解析边界在buyratio/timeseg包
	BuyRatioConfig           string `gorm:"column:buy_ratio_config;type:json" json:"buy_ratio_config"`
	TimeSegmentConfig        string `gorm:"column:time_segment_config;type:json" json:"time_segment_config"`
	TimeSegmentTemplateLevel string `gorm:"column:time_segment_template_level;size:2" json:"time_segment_template_level"`

	EnableStatus int `gorm:"column:enable_status;default:1" json:"enable_status"` // 1启用 0停用

	CreateTime time.Time `gorm:"column:create_time;autoCreateTime" json:"create_time"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
}

func (StrategyStock) TableName() string {
	return "strategy_stocks"
}

// StrategyUserStock 账户×股票×策略的覆盖配置
type StrategyUserStock struct {
	Id          int64  `gorm:"column:id;primaryKey" json:"id"`
	Account     string `gorm:"column:account;size:32;not null;index:idx_user_stock,unique" json:"account"`
	AccountName string `gorm:"column:account_name;size:64" json:"account_name"`
	StrategyId  int64  `gorm:"column:strategy_id;not null;index:idx_user_stock,unique" json:"strategy_id"`
	StockCode   string `gorm:"column:stock_code;size:16;not null;index:idx_user_stock,unique" json:"stock_code"`

	MaxAmount   float64 `gorm:"column:max_amount;type:decimal(15,2)" json:"max_amount"`
	FundPercent float64 `gorm:"column:fund_percent;type:decimal(5,2)" json:"fund_percent"`

	UnsoldStackLimit int `gorm:"column:unsold_stack_limit;default:4" json:"unsold_stack_limit"`
	LimitStartShares int `gorm:"column:limit_start_shares;default:9" json:"limit_start_shares"`
	TotalFundShares  int `gorm:"column:total_fund_shares;default:18" json:"total_fund_shares"`

	BuyRatioConfig           string `gorm:"column:buy_ratio_config;type:json" json:"buy_ratio_config"`
	TimeSegmentConfig        string `gorm:"column:time_segment_config;type:json" json:"time_segment_config"`
	TimeSegmentTemplateLevel string `gorm:"column:time_segment_template_level;size:2" json:"time_segment_template_level"`

	EnableStatus int `gorm:"column:enable_status;default:1" json:"enable_status"`

	CreateTime time.Time `gorm:"column:create_time;autoCreateTime" json:"create_time"`
	UpdateTime time.Time `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
}

func (StrategyUserStock) TableName() string {
	return "strategy_user_stocks"
}
