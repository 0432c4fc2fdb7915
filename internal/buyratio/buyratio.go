package buyratio

import (
	"stockadmin/pkg/logger"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// 梯度买入比例配置，以JSON串形式存储在策略标的/账户标的配置上
// 这里是唯一的解析/序列化边界，JSON串不会穿透到下游

// Tier 补仓梯度的一档：跌幅触发，按比例投入
type Tier struct {
	Drop        float64 `json:"drop"`        // 跌幅百分比
	Ratio       float64 `json:"ratio"`       // 投入资金的百分比
	SecondStage bool    `json:"secondStage"` // 是否启用二阶段策略，整个配置最多一档为true
}

type Config struct {
	FirstShareRatio float64 `json:"firstShareRatio"` // 前N笔每笔投入的资金百分比
	ExtraShares     []Tier  `json:"extraShares"`
}

// 存储侧的JSON是弱类型的（历史数据里布尔可能是字符串、数字可能是字符串），
// 先解到宽松结构再统一转换
type tierPayload struct {
	Drop        interface{} `json:"drop"`
	Ratio       interface{} `json:"ratio"`
	SecondStage interface{} `json:"secondStage"`
}

type configPayload struct {
	FirstShareRatio interface{}   `json:"firstShareRatio"`
	ExtraShares     []tierPayload `json:"extraShares"`
}

// Default 默认的梯度配置：首仓比例3，7档固定梯度，倒数第二档启用二阶段
func Default() Config {
	return Config{
		FirstShareRatio: 3,
		ExtraShares: []Tier{
			{Drop: 3, Ratio: 3},
			{Drop: 5, Ratio: 5},
			{Drop: 7, Ratio: 8},
			{Drop: 9, Ratio: 10},
			{Drop: 12, Ratio: 12},
			{Drop: 15, Ratio: 15, SecondStage: true},
			{Drop: 20, Ratio: 20},
		},
	}
}

// Parse 解析存储的JSON串
// 串为空或解析失败时退回默认配置，只记日志不向上抛错
func Parse(raw string) Config {
	if strings.TrimSpace(raw) == "" {
		return Default()
	}

	var payload configPayload
	if err := gojson.Unmarshal([]byte(raw), &payload); err != nil {
		logger.Warnf("buyratio: 解析梯度配置失败，使用默认配置: %v", err)
		return Default()
	}

	cfg := Config{FirstShareRatio: cast.ToFloat64(payload.FirstShareRatio)}
	for _, t := range payload.ExtraShares {
		cfg.ExtraShares = append(cfg.ExtraShares, Tier{
			Drop:        cast.ToFloat64(t.Drop),
			Ratio:       cast.ToFloat64(t.Ratio),
			SecondStage: cast.ToBool(t.SecondStage),
		})
	}
	cfg.Normalize()
	return cfg
}

// Normalize 保证最多一档SecondStage为true：按存储顺序保留第一个true，其余清掉
// 存储的JSON不可信，任何变更后都走一遍这里，不在各调用点零散检查
func (c *Config) Normalize() {
	found := false
	for i := range c.ExtraShares {
		if !c.ExtraShares[i].SecondStage {
			continue
		}
		if found {
			c.ExtraShares[i].SecondStage = false
		} else {
			found = true
		}
	}
}

// SelectSecondStage 选中第i档为二阶段档，互斥：其余档全部清除
func (c *Config) SelectSecondStage(i int) {
	for j := range c.ExtraShares {
		c.ExtraShares[j].SecondStage = j == i
	}
}

// Encode 序列化回JSON串用于落库
func (c Config) Encode() string {
	b, err := gojson.Marshal(c)
	if err != nil {
		logger.Errorf("buyratio: 序列化梯度配置失败: %v", err)
		return ""
	}
	return string(b)
}
