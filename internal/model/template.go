package model

import (
	"stockadmin/internal/template"
	"stockadmin/internal/timeseg"
)

// TemplateSaveReq 保存通用配置模板（"另存为模板"）
type TemplateSaveReq struct {
	Name            string  `json:"name" binding:"required"`
	ConfigType      int     `json:"config_type" binding:"required"`
	SourceStockCode string  `json:"source_stock_code"`
	StrategyId      int64   `json:"strategy_id"`
	MinMarketCap    float64 `json:"min_market_cap"`
	MaxMarketCap    float64 `json:"max_market_cap"`
	Config          string  `json:"config" binding:"required"` // 配置JSON串
	ForceOverwrite  bool    `json:"force_overwrite"`           // 冲突确认后的覆盖重试
}

type TemplateListReq struct {
	ConfigType      int    `json:"config_type" form:"config_type" binding:"required"`
	StrategyId      int64  `json:"strategy_id" form:"strategy_id"`
	SourceStockCode string `json:"source_stock_code" form:"source_stock_code"`
	// 已选中的目标行的股票代码，逗号分隔；非空时列表收窄为通配模板+来源匹配的模板
	SelectedStockCodes string `json:"selected_stock_codes" form:"selected_stock_codes"`
}

type TemplateOneRes struct {
	Id              string  `json:"id"`
	Name            string  `json:"name"`
	ConfigType      int     `json:"config_type"`
	SourceStockCode string  `json:"source_stock_code"`
	StrategyId      int64   `json:"strategy_id"`
	MinMarketCap    float64 `json:"min_market_cap"`
	MaxMarketCap    float64 `json:"max_market_cap"`
	Config          string  `json:"config"`
}

type TemplateListRes struct {
	Templates []TemplateOneRes `json:"templates"`
}

type TemplateDeleteReq struct {
	Id string `json:"id" form:"id" binding:"required"`
}

// TemplateApplyReq 把模板应用到一批目标配置行
type TemplateApplyReq struct {
	TemplateId string  `json:"template_id" binding:"required"`
	TargetIds  []int64 `json:"target_ids" binding:"required,min=1"`
}

// SegTemplateSaveReq 保存分时段模板，时段用编辑态（百分比）表示
type SegTemplateSaveReq struct {
	TemplateName   string                 `json:"template_name" binding:"required"`
	TemplateLevel  string                 `json:"template_level" binding:"required,oneof=S A B C D"`
	UseScenario    string                 `json:"use_scenario"`
	StockCode      string                 `json:"stock_code" binding:"required"`
	Account        string                 `json:"account"`
	StrategyId     int64                  `json:"strategy_id"`
	TimeSegments   []timeseg.DisplayEntry `json:"time_segments" binding:"required,min=1,dive"`
	ForceOverwrite bool                   `json:"force_overwrite"`
}

type SegTemplateListReq struct {
	StockCode     string `json:"stock_code" form:"stock_code"`
	Account       string `json:"account" form:"account"`
	TemplateLevel string `json:"template_level" form:"template_level"`
	StrategyId    int64  `json:"strategy_id" form:"strategy_id"`
}

type SegTemplateOneRes struct {
	Id            string                 `json:"id"`
	TemplateName  string                 `json:"template_name"`
	TemplateLevel string                 `json:"template_level"`
	UseScenario   string                 `json:"use_scenario"`
	StockCode     string                 `json:"stock_code"`
	Account       string                 `json:"account"`
	StrategyId    int64                  `json:"strategy_id"`
	TimeSegments  []timeseg.DisplayEntry `json:"time_segments"`
}

type SegTemplateListRes struct {
	Templates []SegTemplateOneRes `json:"templates"`
}

// LevelSwitchReq 批量切换档位
type LevelSwitchReq struct {
	TargetIds     []int64 `json:"target_ids"`
	TemplateLevel string  `json:"template_level" binding:"required,oneof=S A B C D"`
}

// LevelSwitchRes 批量切换的结果报告，直接透出引擎的聚合结果
type LevelSwitchRes struct {
	Result *template.LevelApplyResult `json:"result"`
}
