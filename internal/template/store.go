package template

import (
	"context"
)

// 模板引擎消费的抽象存储接口，由service层基于数据库实现
// 引擎本身只做冲突协议和批量结果聚合，不关心存储细节

// Template 通用策略配置模板
type Template struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	ConfigType      int     `json:"config_type"`
	SourceStockCode string  `json:"source_stock_code"` // 为空表示通配，可应用到任意股票
	StrategyID      int64   `json:"strategy_id"`
	MinMarketCap    float64 `json:"min_market_cap"`
	MaxMarketCap    float64 `json:"max_market_cap"`
	Config          string  `json:"config"` // 配置JSON串，引擎不拆开
}

// LevelTemplate 分时段模板，标识键是 股票+账户+档位
type LevelTemplate struct {
	ID           int64  `json:"id"`
	TemplateName string `json:"template_name"`
	Level        string `json:"level"` // S/A/B/C/D
	UseScenario  string `json:"use_scenario"`
	StockCode    string `json:"stock_code"`
	Account      string `json:"account"`
	StrategyID   int64  `json:"strategy_id"`
	TimeSegments string `json:"time_segments"` // 时段配置JSON串
}

// Response 存储侧的业务响应
// 冲突可能以HTTP 409出现，也可能包在200响应里以errorCode="409"出现，
// 两种形态都要经过conflict.go统一识别
type Response struct {
	Success   bool   `json:"success"`
	ErrorCode string `json:"errorCode,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Target 批量操作的一个目标行（策略标的配置行）
// UserStockIDs是该行级联的账户标的覆盖配置
type Target struct {
	ID           int64
	StrategyID   int64
	StockCode    string
	Account      string
	UserStockIDs []int64
}

// SwitchOutcome 一个目标行应用档位模板后的结果
type SwitchOutcome struct {
	StockApplied bool // 策略标的配置是否应用成功
	UserTotal    int  // 级联的账户标的配置总数
	UserApplied  int  // 其中应用成功的数量
}

// Filter 模板列表过滤条件
// SelectedStockCodes非空时做客户端侧的建议性收窄：只留通配模板和
// 来源股票在已选行里的模板，服务端不保证这一约束
type Filter struct {
	SourceStockCode    string
	StrategyID         int64
	SelectedStockCodes []string
}

type Store interface {
	// ListTemplates 按类型列出模板
	ListTemplates(ctx context.Context, configType int, filter Filter) ([]Template, error)
	// CreateTemplate 创建模板，同名冲突时返回errorCode="409"的响应，
	// forceOverwrite=true表示确认覆盖已有模板
	CreateTemplate(ctx context.Context, tpl Template, forceOverwrite bool) (*Response, error)
	// DeleteTemplate 删除模板，服务端错误原样返回
	DeleteTemplate(ctx context.Context, id int64) error
	// ApplyTemplate 把模板应用到多个目标配置上，覆盖其字段
	ApplyTemplate(ctx context.Context, templateID int64, targetIDs []int64) (*Response, error)

	// FindLevelTemplate 按(策略,股票,档位)查找分时段模板，没有返回nil, nil
	FindLevelTemplate(ctx context.Context, strategyID int64, stockCode, level string) (*LevelTemplate, error)
	// SwitchLevel 把档位模板应用到一个目标行及其级联的账户覆盖配置
	SwitchLevel(ctx context.Context, target Target, tpl *LevelTemplate) (SwitchOutcome, error)
}
