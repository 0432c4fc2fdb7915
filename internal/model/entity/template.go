package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/plugin/soft_delete"
)

// ConfigTemplate 通用策略配置模板
// 同一config_type内name唯一（软删除的行不占名字）
type ConfigTemplate struct {
	Id              int64          `gorm:"column:id;primaryKey" json:"id"`
	Name            string         `gorm:"column:name;size:64;not null;index:idx_type_name" json:"name"`
	ConfigType      int            `gorm:"column:config_type;not null;index:idx_type_name" json:"config_type"`
	SourceStockCode string         `gorm:"column:source_stock_code;size:16" json:"source_stock_code"` // 为空表示通配
	StrategyId      int64          `gorm:"column:strategy_id;index" json:"strategy_id"`
	MinMarketCap    float64        `gorm:"column:min_market_cap" json:"min_market_cap"` // 适用市值下限（亿）
	MaxMarketCap    float64        `gorm:"column:max_market_cap" json:"max_market_cap"`
	ConfigJson      datatypes.JSON `gorm:"column:config_json;type:json" json:"config_json"`

	CreateTime time.Time             `gorm:"column:create_time;autoCreateTime" json:"create_time"`
	UpdateTime time.Time             `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
	DeletedAt  soft_delete.DeletedAt `gorm:"column:deleted_at;softDelete:milli" json:"-"`
}

func (ConfigTemplate) TableName() string {
	return "config_templates"
}

// TimeSegmentTemplate 分时段配置模板
// 标识键是 股票+账户+档位，同一标识下重复保存需要显式确认覆盖
type TimeSegmentTemplate struct {
	Id            int64          `gorm:"column:id;primaryKey" json:"id"`
	TemplateName  string         `gorm:"column:template_name;size:64;not null" json:"template_name"`
	TemplateLevel string         `gorm:"column:template_level;size:2;not null;index:idx_seg_identity" json:"template_level"` // S/A/B/C/D
	UseScenario   string         `gorm:"column:use_scenario;size:255" json:"use_scenario"`                                   // 适用场景，自由文本
	StockCode     string         `gorm:"column:stock_code;size:16;index:idx_seg_identity" json:"stock_code"`
	Account       string         `gorm:"column:account;size:32;index:idx_seg_identity" json:"account"`
	StrategyId    int64          `gorm:"column:strategy_id;index" json:"strategy_id"`
	TimeSegments  datatypes.JSON `gorm:"column:time_segments;type:json" json:"time_segments"`

	CreateTime time.Time             `gorm:"column:create_time;autoCreateTime" json:"create_time"`
	UpdateTime time.Time             `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
	DeletedAt  soft_delete.DeletedAt `gorm:"column:deleted_at;softDelete:milli" json:"-"`
}

func (TimeSegmentTemplate) TableName() string {
	return "time_segment_templates"
}
