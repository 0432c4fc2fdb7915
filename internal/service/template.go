package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"go.uber.org/multierr"

	"stockadmin/conf"
	"stockadmin/internal/consts"
	"stockadmin/internal/dao"
	"stockadmin/internal/model"
	"stockadmin/internal/model/entity"
	"stockadmin/internal/template"
	"stockadmin/internal/timeseg"
	"stockadmin/pkg/cache"
	"stockadmin/pkg/errors"
	"stockadmin/pkg/errors/ecode"
	"stockadmin/pkg/kafka"
	"stockadmin/pkg/logger"
	"stockadmin/pkg/utils"
)

var _ TemplateService = (*templateService)(nil)
var _ template.Store = (*templateService)(nil)

type TemplateService interface {
	TemplateSave(ctx context.Context, req model.TemplateSaveReq) (*template.Response, error)
	TemplateList(ctx context.Context, req model.TemplateListReq) (model.TemplateListRes, error)
	TemplateDelete(ctx context.Context, id int64) error
	TemplateApply(ctx context.Context, templateId int64, targetIds []int64) (*template.Response, error)

	SegTemplateSave(ctx context.Context, req model.SegTemplateSaveReq) (*template.Response, error)
	SegTemplateList(ctx context.Context, req model.SegTemplateListReq) (model.SegTemplateListRes, error)
	SegTemplateDelete(ctx context.Context, id int64) error

	LevelSwitch(ctx context.Context, req model.LevelSwitchReq) (*template.LevelApplyResult, error)
}

// templateService 同时实现控制台侧接口和模板引擎的Store接口，
// 引擎的冲突协议和批量聚合都建立在Store之上
type templateService struct {
	td       dao.TemplateDao
	ad       dao.AllocationDao
	producer kafka.ProducerService
}

func NewTemplateService(td dao.TemplateDao, ad dao.AllocationDao, producer kafka.ProducerService) *templateService {
	return &templateService{td: td, ad: ad, producer: producer}
}

// ---- template.Store ----

func (s *templateService) ListTemplates(ctx context.Context, configType int, filter template.Filter) ([]template.Template, error) {
	rows, err := s.listCached(ctx, configType, filter.StrategyID)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(filter.SelectedStockCodes))
	for _, code := range filter.SelectedStockCodes {
		selected[code] = true
	}

	var res []template.Template
	for _, row := range rows {
		if filter.SourceStockCode != "" && row.SourceStockCode != filter.SourceStockCode {
			continue
		}
		// 已选中目标行时做建议性收窄：只留通配模板和来源股票匹配的模板
		// 这是客户端侧的过滤，服务端不承诺该约束
		if len(selected) > 0 && row.SourceStockCode != "" && !selected[row.SourceStockCode] {
			continue
		}
		res = append(res, toTemplate(row))
	}
	return res, nil
}

// CreateTemplate 保存模板，先按名字做一次客户端侧预检
// 预检有并发窗口，唯一索引才是权威约束，这里只是第一道防线
func (s *templateService) CreateTemplate(ctx context.Context, tpl template.Template, forceOverwrite bool) (*template.Response, error) {
	existing, err := s.td.TemplateGetByName(ctx, tpl.ConfigType, tpl.Name)
	if err != nil {
		return nil, err
	}

	if existing != nil && !forceOverwrite {
		return &template.Response{
			Success:   false,
			ErrorCode: "409",
			Message:   fmt.Sprintf("已存在同名模板 %q，确认后将覆盖原有配置", tpl.Name),
		}, nil
	}

	row := &entity.ConfigTemplate{
		Name:            tpl.Name,
		ConfigType:      tpl.ConfigType,
		SourceStockCode: tpl.SourceStockCode,
		StrategyId:      tpl.StrategyID,
		MinMarketCap:    tpl.MinMarketCap,
		MaxMarketCap:    tpl.MaxMarketCap,
		ConfigJson:      []byte(tpl.Config),
	}

	if existing != nil {
		row.Id = existing.Id
		err = s.td.TemplateUpdate(ctx, row)
	} else {
		row.Id = utils.NextID()
		err = s.td.TemplateCreate(ctx, row)
	}
	if err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx, tpl.ConfigType)
	return &template.Response{Success: true}, nil
}

// DeleteTemplate 删除模板，服务端错误（比如模板仍被引用）原样向上，不吞掉
func (s *templateService) DeleteTemplate(ctx context.Context, id int64) error {
	tpl, err := s.td.TemplateGetById(ctx, id)
	if err != nil {
		return err
	}
	if err := s.td.TemplateDelete(ctx, id); err != nil {
		return err
	}
	if tpl != nil {
		s.invalidateListCache(ctx, tpl.ConfigType)
	}
	return nil
}

// 模板payload里可被覆盖写到目标配置行的字段
type templatePayload struct {
	MaxAmount        float64 `json:"max_amount"`
	FundPercent      float64 `json:"fund_percent"`
	UnsoldStackLimit int     `json:"unsold_stack_limit"`
	LimitStartShares int     `json:"limit_start_shares"`
	TotalFundShares  int     `json:"total_fund_shares"`
	BuyRatioConfig   string  `json:"buy_ratio_config"`
}

// ApplyTemplate 把模板应用到一批目标配置行，覆盖其字段
// 逐行独立执行，单行失败不会中断其余行
func (s *templateService) ApplyTemplate(ctx context.Context, templateID int64, targetIDs []int64) (*template.Response, error) {
	tpl, err := s.td.TemplateGetById(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return &template.Response{Success: false, Message: "模板不存在"}, nil
	}

	var payload templatePayload
	if err := gojson.Unmarshal(tpl.ConfigJson, &payload); err != nil {
		return nil, fmt.Errorf("模板配置解析失败: %w", err)
	}
	updates := payloadUpdates(payload)

	var errs error
	applied := 0
	for _, id := range targetIDs {
		var uerr error
		if tpl.ConfigType == consts.ConfigTypeUserStock {
			uerr = s.ad.UserStockUpdateColumns(ctx, id, updates)
		} else {
			uerr = s.ad.StockUpdateColumns(ctx, id, updates)
		}
		if uerr != nil {
			errs = multierr.Append(errs, fmt.Errorf("target %d: %w", id, uerr))
			continue
		}
		applied++
	}

	s.audit(ctx, "template_apply", map[string]interface{}{
		"template_id": templateID,
		"targets":     len(targetIDs),
		"applied":     applied,
	})

	if errs != nil {
		return &template.Response{
			Success: applied == len(targetIDs),
			Message: fmt.Sprintf("应用完成 %d/%d: %v", applied, len(targetIDs), errs),
		}, nil
	}
	return &template.Response{Success: true}, nil
}

func payloadUpdates(p templatePayload) map[string]interface{} {
	updates := map[string]interface{}{
		"max_amount":   p.MaxAmount,
		"fund_percent": p.FundPercent,
	}
	if p.UnsoldStackLimit > 0 {
		updates["unsold_stack_limit"] = p.UnsoldStackLimit
	}
	if p.LimitStartShares > 0 {
		updates["limit_start_shares"] = p.LimitStartShares
	}
	if p.TotalFundShares > 0 {
		updates["total_fund_shares"] = p.TotalFundShares
	}
	if p.BuyRatioConfig != "" {
		// 落库前重新过一遍归一化，保证secondStage互斥
		cfg := parseBuyRatio(p.BuyRatioConfig)
		updates["buy_ratio_config"] = cfg.Encode()
	}
	return updates
}

func (s *templateService) FindLevelTemplate(ctx context.Context, strategyID int64, stockCode, level string) (*template.LevelTemplate, error) {
	row, err := s.td.SegTemplateFindByLevel(ctx, strategyID, stockCode, level)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return toLevelTemplate(row), nil
}

// SwitchLevel 把档位模板写入一个策略标的行及其级联的账户覆盖配置
func (s *templateService) SwitchLevel(ctx context.Context, target template.Target, tpl *template.LevelTemplate) (template.SwitchOutcome, error) {
	entries, err := timeseg.Parse(tpl.TimeSegments)
	if err != nil {
		return template.SwitchOutcome{}, err
	}
	updates := map[string]interface{}{
		"time_segment_config":         timeseg.Encode(entries),
		"time_segment_template_level": tpl.Level,
	}

	if err := s.ad.StockUpdateColumns(ctx, target.ID, updates); err != nil {
		return template.SwitchOutcome{}, err
	}

	outcome := template.SwitchOutcome{StockApplied: true, UserTotal: len(target.UserStockIDs)}
	for _, id := range target.UserStockIDs {
		if uerr := s.ad.UserStockUpdateColumns(ctx, id, updates); uerr != nil {
			logger.Warnf("levelswitch: 账户覆盖配置 %d 更新失败: %v", id, uerr)
			continue
		}
		outcome.UserApplied++
	}
	return outcome, nil
}

// ---- 控制台侧接口 ----

func (s *templateService) TemplateSave(ctx context.Context, req model.TemplateSaveReq) (*template.Response, error) {
	return s.CreateTemplate(ctx, template.Template{
		Name:            req.Name,
		ConfigType:      req.ConfigType,
		SourceStockCode: req.SourceStockCode,
		StrategyID:      req.StrategyId,
		MinMarketCap:    req.MinMarketCap,
		MaxMarketCap:    req.MaxMarketCap,
		Config:          req.Config,
	}, req.ForceOverwrite)
}

func (s *templateService) TemplateList(ctx context.Context, req model.TemplateListReq) (model.TemplateListRes, error) {
	var selected []string
	if req.SelectedStockCodes != "" {
		selected = strings.Split(req.SelectedStockCodes, ",")
	}
	rows, err := s.ListTemplates(ctx, req.ConfigType, template.Filter{
		SourceStockCode:    req.SourceStockCode,
		StrategyID:         req.StrategyId,
		SelectedStockCodes: selected,
	})
	if err != nil {
		return model.TemplateListRes{}, err
	}

	res := model.TemplateListRes{}
	for _, row := range rows {
		res.Templates = append(res.Templates, model.TemplateOneRes{
			Id:              fmt.Sprintf("%d", row.ID),
			Name:            row.Name,
			ConfigType:      row.ConfigType,
			SourceStockCode: row.SourceStockCode,
			StrategyId:      row.StrategyID,
			MinMarketCap:    row.MinMarketCap,
			MaxMarketCap:    row.MaxMarketCap,
			Config:          row.Config,
		})
	}
	return res, nil
}

func (s *templateService) TemplateDelete(ctx context.Context, id int64) error {
	return s.DeleteTemplate(ctx, id)
}

func (s *templateService) TemplateApply(ctx context.Context, templateId int64, targetIds []int64) (*template.Response, error) {
	return s.ApplyTemplate(ctx, templateId, targetIds)
}

// SegTemplateSave 保存分时段模板
// 标识键是 股票+账户+档位，同标识重复保存走冲突确认协议
func (s *templateService) SegTemplateSave(ctx context.Context, req model.SegTemplateSaveReq) (*template.Response, error) {
	entries := timeseg.FromDisplay(req.TimeSegments)
	if err := timeseg.Validate(entries); err != nil {
		return nil, errors.Wrap(err, ecode.ValidateErr, "分时段配置不合法")
	}

	existing, err := s.td.SegTemplateGetByIdentity(ctx, req.StockCode, req.Account, req.TemplateLevel)
	if err != nil {
		return nil, err
	}
	if existing != nil && !req.ForceOverwrite {
		return &template.Response{
			Success:   false,
			ErrorCode: "409",
			Message:   fmt.Sprintf("股票 %s 账户 %s 档位 %s 已有模板 %q，确认后将覆盖", req.StockCode, req.Account, req.TemplateLevel, existing.TemplateName),
		}, nil
	}

	row := &entity.TimeSegmentTemplate{
		TemplateName:  req.TemplateName,
		TemplateLevel: req.TemplateLevel,
		UseScenario:   req.UseScenario,
		StockCode:     req.StockCode,
		Account:       req.Account,
		StrategyId:    req.StrategyId,
		TimeSegments:  []byte(timeseg.Encode(entries)),
	}
	if existing != nil {
		row.Id = existing.Id
		err = s.td.SegTemplateUpdate(ctx, row)
	} else {
		row.Id = utils.NextID()
		err = s.td.SegTemplateCreate(ctx, row)
	}
	if err != nil {
		return nil, err
	}
	return &template.Response{Success: true}, nil
}

func (s *templateService) SegTemplateList(ctx context.Context, req model.SegTemplateListReq) (model.SegTemplateListRes, error) {
	rows, err := s.td.SegTemplateList(ctx, req.StockCode, req.Account, req.TemplateLevel, req.StrategyId)
	if err != nil {
		return model.SegTemplateListRes{}, err
	}

	res := model.SegTemplateListRes{}
	for _, row := range rows {
		entries, perr := timeseg.Parse(string(row.TimeSegments))
		if perr != nil {
			logger.Warnf("segtemplate: 模板 %d 时段配置损坏: %v", row.Id, perr)
			continue
		}
		res.Templates = append(res.Templates, model.SegTemplateOneRes{
			Id:            fmt.Sprintf("%d", row.Id),
			TemplateName:  row.TemplateName,
			TemplateLevel: row.TemplateLevel,
			UseScenario:   row.UseScenario,
			StockCode:     row.StockCode,
			Account:       row.Account,
			StrategyId:    row.StrategyId,
			TimeSegments:  timeseg.ToDisplay(entries),
		})
	}
	return res, nil
}

func (s *templateService) SegTemplateDelete(ctx context.Context, id int64) error {
	return s.td.SegTemplateDelete(ctx, id)
}

// LevelSwitch 批量把一批策略标的行切到指定档位的模板
// 非事务操作，部分成功是预期结果，总是返回结构化报告
func (s *templateService) LevelSwitch(ctx context.Context, req model.LevelSwitchReq) (*template.LevelApplyResult, error) {
	stocks, err := s.ad.StockListByIds(ctx, req.TargetIds)
	if err != nil {
		return nil, err
	}

	var targets []template.Target
	for _, stock := range stocks {
		target := template.Target{
			ID:         stock.Id,
			StrategyID: stock.StrategyId,
			StockCode:  stock.StockCode,
		}
		userRows, uerr := s.ad.UserStockListByStock(ctx, stock.StrategyId, stock.StockCode)
		if uerr != nil {
			logger.Warnf("levelswitch: 查询 %s 的账户覆盖配置失败: %v", stock.StockCode, uerr)
		}
		for _, us := range userRows {
			target.UserStockIDs = append(target.UserStockIDs, us.Id)
		}
		targets = append(targets, target)
	}

	res := template.BatchSwitchLevel(ctx, s, targets, req.TemplateLevel)

	s.audit(ctx, "level_switch", map[string]interface{}{
		"level":     req.TemplateLevel,
		"status":    res.Status,
		"total":     res.TotalProcessCount,
		"success":   res.TotalSuccessCount,
		"no_config": res.TotalNoConfigCount,
	})
	return res, nil
}

// ---- 内部 ----

func (s *templateService) listCached(ctx context.Context, configType int, strategyId int64) ([]entity.ConfigTemplate, error) {
	ttl := time.Duration(conf.AppConfig.Template.CacheTTL) * time.Second
	useCache := cache.Available() && ttl > 0 && strategyId == 0
	key := fmt.Sprintf("%s%d", consts.TemplateListPrefix, configType)

	if useCache {
		raw, err := cache.GetRedisClient().Get(ctx, key).Result()
		if err == nil {
			var rows []entity.ConfigTemplate
			if gojson.Unmarshal([]byte(raw), &rows) == nil {
				return rows, nil
			}
		}
	}

	rows, err := s.td.TemplateListByType(ctx, configType, strategyId)
	if err != nil {
		return nil, err
	}

	if useCache {
		if b, merr := gojson.Marshal(rows); merr == nil {
			cache.GetRedisClient().Set(ctx, key, b, ttl)
		}
	}
	return rows, nil
}

func (s *templateService) invalidateListCache(ctx context.Context, configType int) {
	if !cache.Available() {
		return
	}
	key := fmt.Sprintf("%s%d", consts.TemplateListPrefix, configType)
	cache.GetRedisClient().Del(ctx, key)
}

// audit 把操作结果写入审计topic，失败只记日志，不影响主流程
func (s *templateService) audit(ctx context.Context, action string, detail map[string]interface{}) {
	if s.producer == nil {
		return
	}
	event := map[string]interface{}{
		"action": action,
		"detail": detail,
		"time":   time.Now().Format(consts.TimeLayout),
	}
	b, err := gojson.Marshal(event)
	if err != nil {
		return
	}
	if err := utils.Retry(3, 200*time.Millisecond, true, func() error {
		return s.producer.Produce(ctx, []byte(action), b)
	}); err != nil {
		logger.Warnf("audit: 审计事件写入失败: %v", err)
	}
}

func toTemplate(row entity.ConfigTemplate) template.Template {
	return template.Template{
		ID:              row.Id,
		Name:            row.Name,
		ConfigType:      row.ConfigType,
		SourceStockCode: row.SourceStockCode,
		StrategyID:      row.StrategyId,
		MinMarketCap:    row.MinMarketCap,
		MaxMarketCap:    row.MaxMarketCap,
		Config:          string(row.ConfigJson),
	}
}

func toLevelTemplate(row *entity.TimeSegmentTemplate) *template.LevelTemplate {
	return &template.LevelTemplate{
		ID:           row.Id,
		TemplateName: row.TemplateName,
		Level:        row.TemplateLevel,
		UseScenario:  row.UseScenario,
		StockCode:    row.StockCode,
		Account:      row.Account,
		StrategyID:   row.StrategyId,
		TimeSegments: string(row.TimeSegments),
	}
}
