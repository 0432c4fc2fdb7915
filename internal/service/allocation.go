package service

import (
	"context"

	"stockadmin/internal/allocation"
	"stockadmin/internal/buyratio"
	"stockadmin/internal/dao"
	"stockadmin/internal/model"
	"stockadmin/internal/model/entity"
	"stockadmin/internal/timeseg"
	"stockadmin/pkg/errors"
	"stockadmin/pkg/errors/ecode"
	"stockadmin/pkg/utils"
)

var _ AllocationService = (*allocationService)(nil)

type AllocationService interface {
	StockConfigSave(ctx context.Context, req model.StockConfigSaveReq) error
	StockConfigList(ctx context.Context, req model.StockConfigListReq) ([]entity.StrategyStock, error)
	StockConfigDelete(ctx context.Context, id int64) error
	UserStockConfigSave(ctx context.Context, req model.UserStockConfigSaveReq) error
	UserStockConfigList(ctx context.Context, req model.UserStockConfigListReq) ([]entity.StrategyUserStock, error)
	UserStockConfigDelete(ctx context.Context, id int64) error
	AllocationSummary(ctx context.Context, req model.AllocationSummaryReq) (*model.AllocationSummaryRes, error)
}

type allocationService struct {
	ad dao.AllocationDao
}

func NewAllocationService(ad dao.AllocationDao) *allocationService {
	return &allocationService{ad: ad}
}

// parseBuyRatio 解析梯度买入配置，坏数据回退到默认梯度并归一化secondStage
func parseBuyRatio(raw string) buyratio.Config {
	cfg := buyratio.Parse(raw)
	cfg.Normalize()
	return cfg
}

// checkFundFields 资金上限和资金占比互斥，保存时必须恰好设置一个
func checkFundFields(maxAmount, fundPercent float64) error {
	if maxAmount > 0 && fundPercent > 0 {
		return errors.WithCode(ecode.ValidateErr, "资金上限和资金占比只能设置一个")
	}
	if maxAmount <= 0 && fundPercent <= 0 {
		return errors.WithCode(ecode.ValidateErr, "资金上限和资金占比必须设置一个")
	}
	return nil
}

// encodeTimeSegments 编辑态时段转落库形态：百分比转小数、校验、规范排序
func encodeTimeSegments(display []timeseg.DisplayEntry) (string, error) {
	if len(display) == 0 {
		return "", nil
	}
	entries := timeseg.FromDisplay(display)
	if err := timeseg.Validate(entries); err != nil {
		return "", errors.Wrap(err, ecode.ValidateErr, "分时段配置不合法")
	}
	return timeseg.Encode(entries), nil
}

func (s *allocationService) StockConfigSave(ctx context.Context, req model.StockConfigSaveReq) error {
	if err := checkFundFields(req.MaxAmount, req.FundPercent); err != nil {
		return err
	}
	segJson, err := encodeTimeSegments(req.TimeSegments)
	if err != nil {
		return err
	}

	row := &entity.StrategyStock{
		Id:               req.Id,
		StrategyId:       req.StrategyId,
		StockCode:        req.StockCode,
		MaxAmount:        req.MaxAmount,
		FundPercent:      req.FundPercent,
		UnsoldStackLimit: req.UnsoldStackLimit,
		LimitStartShares: req.LimitStartShares,
		TotalFundShares:  req.TotalFundShares,
		BuyRatioConfig:   parseBuyRatio(req.BuyRatioConfig).Encode(),
		EnableStatus:     req.EnableStatus,
	}
	if segJson != "" {
		row.TimeSegmentConfig = segJson
	}

	if req.Id > 0 {
		return s.ad.StockUpdate(ctx, row)
	}

	// 没带id时按(策略,股票)键兜底，已存在就更新，避免撞唯一索引
	existing, err := s.ad.StockGetByKey(ctx, req.StrategyId, req.StockCode)
	if err != nil {
		return err
	}
	if existing != nil {
		row.Id = existing.Id
		return s.ad.StockUpdate(ctx, row)
	}
	row.Id = utils.NextID()
	return s.ad.StockCreate(ctx, row)
}

func (s *allocationService) StockConfigList(ctx context.Context, req model.StockConfigListReq) ([]entity.StrategyStock, error) {
	return s.ad.StockList(ctx, req.StrategyId, req.StockCode, req.Page, req.Limit)
}

func (s *allocationService) StockConfigDelete(ctx context.Context, id int64) error {
	return s.ad.StockDelete(ctx, id)
}

func (s *allocationService) UserStockConfigSave(ctx context.Context, req model.UserStockConfigSaveReq) error {
	if err := checkFundFields(req.MaxAmount, req.FundPercent); err != nil {
		return err
	}
	segJson, err := encodeTimeSegments(req.TimeSegments)
	if err != nil {
		return err
	}

	row := &entity.StrategyUserStock{
		Id:               req.Id,
		Account:          req.Account,
		AccountName:      req.AccountName,
		StrategyId:       req.StrategyId,
		StockCode:        req.StockCode,
		MaxAmount:        req.MaxAmount,
		FundPercent:      req.FundPercent,
		UnsoldStackLimit: req.UnsoldStackLimit,
		LimitStartShares: req.LimitStartShares,
		TotalFundShares:  req.TotalFundShares,
		BuyRatioConfig:   parseBuyRatio(req.BuyRatioConfig).Encode(),
		EnableStatus:     req.EnableStatus,
	}
	if segJson != "" {
		row.TimeSegmentConfig = segJson
	}

	if req.Id > 0 {
		return s.ad.UserStockUpdate(ctx, row)
	}

	existing, err := s.ad.UserStockGetByKey(ctx, req.Account, req.StrategyId, req.StockCode)
	if err != nil {
		return err
	}
	if existing != nil {
		row.Id = existing.Id
		return s.ad.UserStockUpdate(ctx, row)
	}
	row.Id = utils.NextID()
	return s.ad.UserStockCreate(ctx, row)
}

func (s *allocationService) UserStockConfigList(ctx context.Context, req model.UserStockConfigListReq) ([]entity.StrategyUserStock, error) {
	return s.ad.UserStockList(ctx, req.StrategyId, req.StockCode, req.Account, req.Page, req.Limit)
}

func (s *allocationService) UserStockConfigDelete(ctx context.Context, id int64) error {
	return s.ad.UserStockDelete(ctx, id)
}

// AllocationSummary 算一只股票在当前配置下的派生资金指标
// account非空时用账户覆盖配置，否则用策略级配置
func (s *allocationService) AllocationSummary(ctx context.Context, req model.AllocationSummaryReq) (*model.AllocationSummaryRes, error) {
	var params allocation.Params
	var ratioRaw string

	if req.Account != "" {
		row, err := s.ad.UserStockGetByKey(ctx, req.Account, req.StrategyId, req.StockCode)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, errors.WithCode(ecode.NotFoundErr, "账户配置不存在")
		}
		params = allocation.Params{
			MaxAmount:        row.MaxAmount,
			FundPercent:      row.FundPercent,
			UnsoldStackLimit: row.UnsoldStackLimit,
			LimitStartShares: row.LimitStartShares,
			TotalFundShares:  row.TotalFundShares,
		}
		ratioRaw = row.BuyRatioConfig
	} else {
		row, err := s.ad.StockGetByKey(ctx, req.StrategyId, req.StockCode)
		if err != nil {
			return nil, err
		}
		if row == nil {
			return nil, errors.WithCode(ecode.NotFoundErr, "股票配置不存在")
		}
		params = allocation.Params{
			MaxAmount:        row.MaxAmount,
			FundPercent:      row.FundPercent,
			UnsoldStackLimit: row.UnsoldStackLimit,
			LimitStartShares: row.LimitStartShares,
			TotalFundShares:  row.TotalFundShares,
		}
		ratioRaw = row.BuyRatioConfig
	}

	// 占比模式下换算出绝对金额上限再参与计算
	if params.MaxAmount <= 0 && params.FundPercent > 0 && req.AccountTotalAmount > 0 {
		params.MaxAmount = req.AccountTotalAmount * params.FundPercent / 100
	}

	sum := allocation.Summarize(params, parseBuyRatio(ratioRaw), req.AccountTotalAmount)
	return &model.AllocationSummaryRes{
		SingleAmount:    utils.Round2(sum.SingleAmount),
		DailyMaxHolding: utils.Round2(sum.DailyMaxHolding),
		MaxHolding:      utils.Round2(sum.MaxHolding),
		HasRatio:        sum.HasRatio,
		SingleRatio:     utils.Round2(sum.SingleRatio),
		DailyMaxRatio:   utils.Round2(sum.DailyMaxRatio),
		MaxHoldingRatio: utils.Round2(sum.MaxHoldingRatio),
	}, nil
}
