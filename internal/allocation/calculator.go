package allocation

import (
	"stockadmin/internal/buyratio"
)

// 资金分配的派生计算，纯函数，不做任何四舍五入
// 金额的取整只在展示边界（handler/DTO）做

// 账户标的配置的默认值
const (
	DefaultUnsoldStackLimit = 4  // 单日未卖出堆叠上限
	DefaultLimitStartShares = 9  // 从第几份开始按梯度限制
	DefaultTotalFundShares  = 18 // 资金总份数
)

// Params 一个账户×股票×策略的资金配置
// MaxAmount和FundPercent互斥，二者只会设置一个
type Params struct {
	MaxAmount        float64 // 资金上限（绝对金额），未设置时为0
	FundPercent      float64 // 资金占比模式，此时MaxAmount为0
	UnsoldStackLimit int
	LimitStartShares int
	TotalFundShares  int
}

func (p Params) withDefaults() Params {
	if p.UnsoldStackLimit < 1 {
		p.UnsoldStackLimit = DefaultUnsoldStackLimit
	}
	if p.LimitStartShares < 1 {
		p.LimitStartShares = DefaultLimitStartShares
	}
	if p.TotalFundShares < 1 {
		p.TotalFundShares = DefaultTotalFundShares
	}
	return p
}

// SingleAmount 单笔买入金额 = 资金上限 × 首仓比例
// 资金占比模式（MaxAmount<=0）下所有派生金额都是0，这是"尚未配置"的正常状态不是错误
func SingleAmount(p Params, cfg buyratio.Config) float64 {
	if p.MaxAmount <= 0 {
		return 0
	}
	return p.MaxAmount * cfg.FirstShareRatio / 100
}

// DailyMaxHolding 单日最大持仓 = 单笔金额 × 未卖出堆叠上限
func DailyMaxHolding(p Params, cfg buyratio.Config) float64 {
	p = p.withDefaults()
	return SingleAmount(p, cfg) * float64(p.UnsoldStackLimit)
}

// MaxHolding 总最大持仓
// 前limitStartShares份按单笔金额，之后的extraCount份按梯度比例投入；
// 梯度档数不足extraCount时缺的档按0计，不会越界
// 梯度按存储顺序取用，不按drop重排
// 归零只看MaxAmount：首仓比例为0时前段为0，梯度段照常计入
func MaxHolding(p Params, cfg buyratio.Config) float64 {
	p = p.withDefaults()
	if p.MaxAmount <= 0 {
		return 0
	}

	total := SingleAmount(p, cfg) * float64(p.LimitStartShares)

	extraCount := p.TotalFundShares - p.LimitStartShares
	if extraCount < 0 {
		extraCount = 0
	}
	if extraCount > len(cfg.ExtraShares) {
		extraCount = len(cfg.ExtraShares)
	}
	for i := 0; i < extraCount; i++ {
		total += p.MaxAmount * cfg.ExtraShares[i].Ratio / 100
	}
	return total
}

// Ratio 金额占账户总资产的百分比
// accountTotal<=0视为"账户总资产未知"，返回ok=false，调用方展示绝对金额即可
func Ratio(amount, accountTotal float64) (float64, bool) {
	if accountTotal <= 0 {
		return 0, false
	}
	return amount / accountTotal * 100, true
}

// Summary 一次性算出的资金概况，百分比字段只在账户总资产已知时有效（HasRatio=true）
type Summary struct {
	SingleAmount    float64
	DailyMaxHolding float64
	MaxHolding      float64

	HasRatio        bool
	SingleRatio     float64
	DailyMaxRatio   float64
	MaxHoldingRatio float64
}

// Summarize 汇总资金分配的全部派生指标
func Summarize(p Params, cfg buyratio.Config, accountTotal float64) Summary {
	p = p.withDefaults()
	s := Summary{
		SingleAmount:    SingleAmount(p, cfg),
		DailyMaxHolding: DailyMaxHolding(p, cfg),
		MaxHolding:      MaxHolding(p, cfg),
	}
	if r, ok := Ratio(s.SingleAmount, accountTotal); ok {
		s.HasRatio = true
		s.SingleRatio = r
		s.DailyMaxRatio, _ = Ratio(s.DailyMaxHolding, accountTotal)
		s.MaxHoldingRatio, _ = Ratio(s.MaxHolding, accountTotal)
	}
	return s
}
