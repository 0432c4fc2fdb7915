package consts

import "time"

const (
	// RequestId 请求id名称
	RequestId = "request_id"

	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)

// 配置模板类型
const (
	// ConfigTypeStrategyStock 策略标的配置模板
	ConfigTypeStrategyStock = 1
	// ConfigTypeUserStock 账户标的配置模板
	ConfigTypeUserStock = 2
)

// 时段模板档位，闭集，表示模板的激进程度/行情风格
const (
	TemplateLevelS = "S"
	TemplateLevelA = "A"
	TemplateLevelB = "B"
	TemplateLevelC = "C"
	TemplateLevelD = "D"
)

// redis缓存key
const (
	// TemplateListPrefix 按模板类型缓存的模板列表，后跟config_type
	TemplateListPrefix = "Template_list:"

	// 默认redis过期时间
	RedisExrDefault = time.Hour * 24 * 5
)
