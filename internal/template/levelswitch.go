package template

import (
	"context"

	"go.uber.org/multierr"

	"stockadmin/pkg/logger"
)

// 批量切换档位：对每个目标行按(策略,股票,档位)找模板并应用
// 操作不是事务性的，部分成功是预期结果不是错误；单个目标失败不影响其余目标，
// 每个目标的结果都单独记录进报告

type Status string

const (
	StatusSuccess        Status = "SUCCESS"
	StatusPartialSuccess Status = "PARTIAL_SUCCESS"
	StatusNoConfig       Status = "NO_CONFIG"
	StatusNoData         Status = "NO_DATA"
	StatusFailure        Status = "FAILURE"
)

// 子实体类别：一次切换会级联到策略标的配置和它关联的所有账户标的覆盖配置
const (
	CategoryStrategyStock = "strategyStock"
	CategoryUserStock     = "strategyUserStock"
)

// NoConfigItem 没有匹配到模板的目标，带标识字段供前端展示
type NoConfigItem struct {
	StockCode string `json:"stock_code"`
	Account   string `json:"account"`
}

type CategoryResult struct {
	Kind          string `json:"kind"`
	ProcessCount  int    `json:"process_count"`
	SuccessCount  int    `json:"success_count"`
	NoConfigCount int    `json:"no_config_count"`
	FailureCount  int    `json:"failure_count"`
}

// LevelApplyResult 一次批量切换的结果报告，不落库，调用方即取即用
type LevelApplyResult struct {
	Status             Status           `json:"status"`
	TotalProcessCount  int              `json:"total_process_count"`
	TotalSuccessCount  int              `json:"total_success_count"`
	TotalNoConfigCount int              `json:"total_no_config_count"`
	Categories         []CategoryResult `json:"categories"`
	NoConfigList       []NoConfigItem   `json:"no_config_list"`
	FailureMessages    []string         `json:"failure_messages,omitempty"`
}

// BatchSwitchLevel 对一批目标行切换到指定档位的模板
func BatchSwitchLevel(ctx context.Context, store Store, targets []Target, level string) *LevelApplyResult {
	res := &LevelApplyResult{
		TotalProcessCount: len(targets),
		NoConfigList:      []NoConfigItem{},
	}
	stock := CategoryResult{Kind: CategoryStrategyStock}
	user := CategoryResult{Kind: CategoryUserStock}

	var errs error
	failures := 0

	for _, target := range targets {
		stock.ProcessCount++
		user.ProcessCount += len(target.UserStockIDs)

		tpl, err := store.FindLevelTemplate(ctx, target.StrategyID, target.StockCode, level)
		if err != nil {
			// 查模板失败按目标失败计，继续处理后面的目标
			failures++
			stock.FailureCount++
			errs = multierr.Append(errs, err)
			continue
		}
		if tpl == nil {
			res.TotalNoConfigCount++
			stock.NoConfigCount++
			user.NoConfigCount += len(target.UserStockIDs)
			res.NoConfigList = append(res.NoConfigList, NoConfigItem{
				StockCode: target.StockCode,
				Account:   target.Account,
			})
			continue
		}

		outcome, err := store.SwitchLevel(ctx, target, tpl)
		if err != nil {
			failures++
			stock.FailureCount++
			errs = multierr.Append(errs, err)
			continue
		}

		res.TotalSuccessCount++
		if outcome.StockApplied {
			stock.SuccessCount++
		}
		user.SuccessCount += outcome.UserApplied
		user.FailureCount += outcome.UserTotal - outcome.UserApplied
	}

	res.Categories = []CategoryResult{stock, user}
	for _, err := range multierr.Errors(errs) {
		res.FailureMessages = append(res.FailureMessages, err.Error())
	}
	res.Status = aggregateStatus(res.TotalProcessCount, res.TotalSuccessCount, res.TotalNoConfigCount, failures)
	if errs != nil {
		logger.Warnf("levelswitch: 批量切换部分失败: %v", errs)
	}
	return res
}

func aggregateStatus(total, success, noConfig, failures int) Status {
	switch {
	case total == 0:
		return StatusNoData
	case noConfig == 0 && failures == 0:
		return StatusSuccess
	case success == 0 && noConfig > 0:
		return StatusNoConfig
	default:
		return StatusPartialSuccess
	}
}
