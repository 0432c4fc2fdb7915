package service

import (
	"context"
	"fmt"
	"testing"

	"stockadmin/internal/consts"
	"stockadmin/internal/model"
	"stockadmin/internal/model/entity"
	"stockadmin/internal/template"
	"stockadmin/internal/timeseg"
	"stockadmin/pkg/errors"
	"stockadmin/pkg/errors/ecode"
)

// ---- 内存版dao桩 ----

type memTemplateDao struct {
	templates    map[int64]*entity.ConfigTemplate
	segTemplates map[int64]*entity.TimeSegmentTemplate
}

func newMemTemplateDao() *memTemplateDao {
	return &memTemplateDao{
		templates:    map[int64]*entity.ConfigTemplate{},
		segTemplates: map[int64]*entity.TimeSegmentTemplate{},
	}
}

func (m *memTemplateDao) TemplateCreate(_ context.Context, tpl *entity.ConfigTemplate) error {
	cp := *tpl
	m.templates[tpl.Id] = &cp
	return nil
}

func (m *memTemplateDao) TemplateUpdate(_ context.Context, tpl *entity.ConfigTemplate) error {
	if _, ok := m.templates[tpl.Id]; !ok {
		return fmt.Errorf("template %d not found", tpl.Id)
	}
	cp := *tpl
	m.templates[tpl.Id] = &cp
	return nil
}

func (m *memTemplateDao) TemplateGetByName(_ context.Context, configType int, name string) (*entity.ConfigTemplate, error) {
	for _, tpl := range m.templates {
		if tpl.ConfigType == configType && tpl.Name == name {
			cp := *tpl
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memTemplateDao) TemplateGetById(_ context.Context, id int64) (*entity.ConfigTemplate, error) {
	tpl, ok := m.templates[id]
	if !ok {
		return nil, nil
	}
	cp := *tpl
	return &cp, nil
}

func (m *memTemplateDao) TemplateListByType(_ context.Context, configType int, strategyId int64) ([]entity.ConfigTemplate, error) {
	var res []entity.ConfigTemplate
	for _, tpl := range m.templates {
		if tpl.ConfigType != configType {
			continue
		}
		if strategyId > 0 && tpl.StrategyId != strategyId {
			continue
		}
		res = append(res, *tpl)
	}
	return res, nil
}

func (m *memTemplateDao) TemplateDelete(_ context.Context, id int64) error {
	delete(m.templates, id)
	return nil
}

func (m *memTemplateDao) SegTemplateCreate(_ context.Context, tpl *entity.TimeSegmentTemplate) error {
	cp := *tpl
	m.segTemplates[tpl.Id] = &cp
	return nil
}

func (m *memTemplateDao) SegTemplateUpdate(_ context.Context, tpl *entity.TimeSegmentTemplate) error {
	if _, ok := m.segTemplates[tpl.Id]; !ok {
		return fmt.Errorf("seg template %d not found", tpl.Id)
	}
	cp := *tpl
	m.segTemplates[tpl.Id] = &cp
	return nil
}

func (m *memTemplateDao) SegTemplateGetByIdentity(_ context.Context, stockCode, account, level string) (*entity.TimeSegmentTemplate, error) {
	for _, tpl := range m.segTemplates {
		if tpl.StockCode == stockCode && tpl.Account == account && tpl.TemplateLevel == level {
			cp := *tpl
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memTemplateDao) SegTemplateGetById(_ context.Context, id int64) (*entity.TimeSegmentTemplate, error) {
	tpl, ok := m.segTemplates[id]
	if !ok {
		return nil, nil
	}
	cp := *tpl
	return &cp, nil
}

func (m *memTemplateDao) SegTemplateList(_ context.Context, stockCode, account, level string, strategyId int64) ([]entity.TimeSegmentTemplate, error) {
	var res []entity.TimeSegmentTemplate
	for _, tpl := range m.segTemplates {
		if stockCode != "" && tpl.StockCode != stockCode {
			continue
		}
		if account != "" && tpl.Account != account {
			continue
		}
		if level != "" && tpl.TemplateLevel != level {
			continue
		}
		if strategyId > 0 && tpl.StrategyId != strategyId {
			continue
		}
		res = append(res, *tpl)
	}
	return res, nil
}

func (m *memTemplateDao) SegTemplateDelete(_ context.Context, id int64) error {
	delete(m.segTemplates, id)
	return nil
}

func (m *memTemplateDao) SegTemplateFindByLevel(_ context.Context, strategyId int64, stockCode, level string) (*entity.TimeSegmentTemplate, error) {
	for _, tpl := range m.segTemplates {
		if tpl.StrategyId == strategyId && tpl.StockCode == stockCode && tpl.TemplateLevel == level {
			cp := *tpl
			return &cp, nil
		}
	}
	return nil, nil
}

type memAllocationDao struct {
	stocks     map[int64]*entity.StrategyStock
	userStocks map[int64]*entity.StrategyUserStock
	failIds    map[int64]bool // 更新这些id时报错，用来验证失败隔离
}

func newMemAllocationDao() *memAllocationDao {
	return &memAllocationDao{
		stocks:     map[int64]*entity.StrategyStock{},
		userStocks: map[int64]*entity.StrategyUserStock{},
		failIds:    map[int64]bool{},
	}
}

func (m *memAllocationDao) StockCreate(_ context.Context, stock *entity.StrategyStock) error {
	cp := *stock
	m.stocks[stock.Id] = &cp
	return nil
}

func (m *memAllocationDao) StockUpdate(_ context.Context, stock *entity.StrategyStock) error {
	if _, ok := m.stocks[stock.Id]; !ok {
		return fmt.Errorf("stock %d not found", stock.Id)
	}
	cp := *stock
	m.stocks[stock.Id] = &cp
	return nil
}

func (m *memAllocationDao) StockGetById(_ context.Context, id int64) (*entity.StrategyStock, error) {
	s, ok := m.stocks[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memAllocationDao) StockGetByKey(_ context.Context, strategyId int64, stockCode string) (*entity.StrategyStock, error) {
	for _, s := range m.stocks {
		if s.StrategyId == strategyId && s.StockCode == stockCode {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memAllocationDao) StockList(_ context.Context, strategyId int64, stockCode string, _, _ int) ([]entity.StrategyStock, error) {
	var res []entity.StrategyStock
	for _, s := range m.stocks {
		if s.StrategyId != strategyId {
			continue
		}
		if stockCode != "" && s.StockCode != stockCode {
			continue
		}
		res = append(res, *s)
	}
	return res, nil
}

func (m *memAllocationDao) StockListByIds(_ context.Context, ids []int64) ([]entity.StrategyStock, error) {
	var res []entity.StrategyStock
	for _, id := range ids {
		if s, ok := m.stocks[id]; ok {
			res = append(res, *s)
		}
	}
	return res, nil
}

func (m *memAllocationDao) StockUpdateColumns(_ context.Context, id int64, updates map[string]interface{}) error {
	if m.failIds[id] {
		return fmt.Errorf("stock %d: forced failure", id)
	}
	s, ok := m.stocks[id]
	if !ok {
		return fmt.Errorf("stock %d not found", id)
	}
	applyStockColumns(s, updates)
	return nil
}

func (m *memAllocationDao) StockDelete(_ context.Context, id int64) error {
	delete(m.stocks, id)
	return nil
}

func (m *memAllocationDao) UserStockCreate(_ context.Context, us *entity.StrategyUserStock) error {
	cp := *us
	m.userStocks[us.Id] = &cp
	return nil
}

func (m *memAllocationDao) UserStockUpdate(_ context.Context, us *entity.StrategyUserStock) error {
	if _, ok := m.userStocks[us.Id]; !ok {
		return fmt.Errorf("user stock %d not found", us.Id)
	}
	cp := *us
	m.userStocks[us.Id] = &cp
	return nil
}

func (m *memAllocationDao) UserStockGetById(_ context.Context, id int64) (*entity.StrategyUserStock, error) {
	us, ok := m.userStocks[id]
	if !ok {
		return nil, nil
	}
	cp := *us
	return &cp, nil
}

func (m *memAllocationDao) UserStockGetByKey(_ context.Context, account string, strategyId int64, stockCode string) (*entity.StrategyUserStock, error) {
	for _, us := range m.userStocks {
		if us.Account == account && us.StrategyId == strategyId && us.StockCode == stockCode {
			cp := *us
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memAllocationDao) UserStockList(_ context.Context, strategyId int64, stockCode, account string, _, _ int) ([]entity.StrategyUserStock, error) {
	var res []entity.StrategyUserStock
	for _, us := range m.userStocks {
		if strategyId > 0 && us.StrategyId != strategyId {
			continue
		}
		if stockCode != "" && us.StockCode != stockCode {
			continue
		}
		if account != "" && us.Account != account {
			continue
		}
		res = append(res, *us)
	}
	return res, nil
}

func (m *memAllocationDao) UserStockListByStock(_ context.Context, strategyId int64, stockCode string) ([]entity.StrategyUserStock, error) {
	var res []entity.StrategyUserStock
	for _, us := range m.userStocks {
		if us.StrategyId == strategyId && us.StockCode == stockCode {
			res = append(res, *us)
		}
	}
	return res, nil
}

func (m *memAllocationDao) UserStockUpdateColumns(_ context.Context, id int64, updates map[string]interface{}) error {
	if m.failIds[id] {
		return fmt.Errorf("user stock %d: forced failure", id)
	}
	us, ok := m.userStocks[id]
	if !ok {
		return fmt.Errorf("user stock %d not found", id)
	}
	if v, ok := updates["time_segment_config"]; ok {
		us.TimeSegmentConfig = v.(string)
	}
	if v, ok := updates["time_segment_template_level"]; ok {
		us.TimeSegmentTemplateLevel = v.(string)
	}
	if v, ok := updates["max_amount"]; ok {
		us.MaxAmount = v.(float64)
	}
	if v, ok := updates["fund_percent"]; ok {
		us.FundPercent = v.(float64)
	}
	return nil
}

func (m *memAllocationDao) UserStockDelete(_ context.Context, id int64) error {
	delete(m.userStocks, id)
	return nil
}

func applyStockColumns(s *entity.StrategyStock, updates map[string]interface{}) {
	if v, ok := updates["time_segment_config"]; ok {
		s.TimeSegmentConfig = v.(string)
	}
	if v, ok := updates["time_segment_template_level"]; ok {
		s.TimeSegmentTemplateLevel = v.(string)
	}
	if v, ok := updates["max_amount"]; ok {
		s.MaxAmount = v.(float64)
	}
	if v, ok := updates["fund_percent"]; ok {
		s.FundPercent = v.(float64)
	}
	if v, ok := updates["buy_ratio_config"]; ok {
		s.BuyRatioConfig = v.(string)
	}
	if v, ok := updates["unsold_stack_limit"]; ok {
		s.UnsoldStackLimit = v.(int)
	}
	if v, ok := updates["limit_start_shares"]; ok {
		s.LimitStartShares = v.(int)
	}
	if v, ok := updates["total_fund_shares"]; ok {
		s.TotalFundShares = v.(int)
	}
}

// ---- 模板保存的冲突协议 ----

func TestTemplateSaveConflictThenOverwrite(t *testing.T) {
	ctx := context.Background()
	svc := NewTemplateService(newMemTemplateDao(), newMemAllocationDao(), nil)

	req := model.TemplateSaveReq{
		Name:       "小市值激进",
		ConfigType: consts.ConfigTypeStrategyStock,
		Config:     `{"max_amount":50000}`,
	}
	resp, err := svc.TemplateSave(ctx, req)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if !resp.Success {
		t.Fatalf("first save should succeed, got %+v", resp)
	}

	// 同名再存，不带force应返回409冲突且不落库
	req.Config = `{"max_amount":80000}`
	resp, err = svc.TemplateSave(ctx, req)
	if err != nil {
		t.Fatalf("conflict save: %v", err)
	}
	if resp.Success || resp.ErrorCode != "409" {
		t.Fatalf("want 409 conflict, got %+v", resp)
	}
	list, _ := svc.TemplateList(ctx, model.TemplateListReq{ConfigType: consts.ConfigTypeStrategyStock})
	if len(list.Templates) != 1 || list.Templates[0].Config != `{"max_amount":50000}` {
		t.Fatalf("conflict must not mutate, got %+v", list.Templates)
	}

	// force重试覆盖原有payload，不新增行
	req.ForceOverwrite = true
	resp, err = svc.TemplateSave(ctx, req)
	if err != nil || !resp.Success {
		t.Fatalf("force save: resp=%+v err=%v", resp, err)
	}
	list, _ = svc.TemplateList(ctx, model.TemplateListReq{ConfigType: consts.ConfigTypeStrategyStock})
	if len(list.Templates) != 1 || list.Templates[0].Config != `{"max_amount":80000}` {
		t.Fatalf("force save should overwrite in place, got %+v", list.Templates)
	}
}

func TestTemplateSameNameDifferentTypeNoConflict(t *testing.T) {
	ctx := context.Background()
	svc := NewTemplateService(newMemTemplateDao(), newMemAllocationDao(), nil)

	for _, ct := range []int{consts.ConfigTypeStrategyStock, consts.ConfigTypeUserStock} {
		resp, err := svc.TemplateSave(ctx, model.TemplateSaveReq{
			Name: "通用模板", ConfigType: ct, Config: `{}`,
		})
		if err != nil || !resp.Success {
			t.Fatalf("type %d: resp=%+v err=%v", ct, resp, err)
		}
	}
}

// ---- 模板列表的建议性收窄 ----

func TestTemplateListNarrowing(t *testing.T) {
	ctx := context.Background()
	svc := NewTemplateService(newMemTemplateDao(), newMemAllocationDao(), nil)

	seed := []model.TemplateSaveReq{
		{Name: "通配", ConfigType: 1, Config: `{}`},
		{Name: "贵州茅台专用", ConfigType: 1, SourceStockCode: "600519", Config: `{}`},
		{Name: "宁德时代专用", ConfigType: 1, SourceStockCode: "300750", Config: `{}`},
	}
	for _, req := range seed {
		if _, err := svc.TemplateSave(ctx, req); err != nil {
			t.Fatalf("seed %s: %v", req.Name, err)
		}
	}

	list, err := svc.TemplateList(ctx, model.TemplateListReq{
		ConfigType:         1,
		SelectedStockCodes: "600519,000001",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// 通配模板和来源匹配的模板保留，来源不匹配的剔除
	if len(list.Templates) != 2 {
		t.Fatalf("want 2 templates after narrowing, got %d: %+v", len(list.Templates), list.Templates)
	}
	for _, tpl := range list.Templates {
		if tpl.Name == "宁德时代专用" {
			t.Fatalf("source-mismatched template should be filtered out")
		}
	}
}

// ---- 模板应用：逐行独立 ----

func TestTemplateApplyOverwritesTargets(t *testing.T) {
	ctx := context.Background()
	td := newMemTemplateDao()
	ad := newMemAllocationDao()
	svc := NewTemplateService(td, ad, nil)

	ad.stocks[101] = &entity.StrategyStock{Id: 101, StrategyId: 1, StockCode: "600519", MaxAmount: 10000}
	ad.stocks[102] = &entity.StrategyStock{Id: 102, StrategyId: 1, StockCode: "300750", MaxAmount: 20000}

	resp, err := svc.TemplateSave(ctx, model.TemplateSaveReq{
		Name:       "提额",
		ConfigType: consts.ConfigTypeStrategyStock,
		Config:     `{"max_amount":50000,"unsold_stack_limit":6}`,
	})
	if err != nil || !resp.Success {
		t.Fatalf("save: resp=%+v err=%v", resp, err)
	}
	list, _ := svc.TemplateList(ctx, model.TemplateListReq{ConfigType: consts.ConfigTypeStrategyStock})
	var tplId int64
	fmt.Sscanf(list.Templates[0].Id, "%d", &tplId)

	resp, err = svc.TemplateApply(ctx, tplId, []int64{101, 102})
	if err != nil || !resp.Success {
		t.Fatalf("apply: resp=%+v err=%v", resp, err)
	}
	for _, id := range []int64{101, 102} {
		if ad.stocks[id].MaxAmount != 50000 || ad.stocks[id].UnsoldStackLimit != 6 {
			t.Fatalf("target %d not overwritten: %+v", id, ad.stocks[id])
		}
	}
}

func TestTemplateApplyPartialFailureIsolated(t *testing.T) {
	ctx := context.Background()
	td := newMemTemplateDao()
	ad := newMemAllocationDao()
	svc := NewTemplateService(td, ad, nil)

	ad.stocks[101] = &entity.StrategyStock{Id: 101, StrategyId: 1, StockCode: "600519"}
	ad.stocks[102] = &entity.StrategyStock{Id: 102, StrategyId: 1, StockCode: "300750"}
	ad.failIds[102] = true

	resp, _ := svc.TemplateSave(ctx, model.TemplateSaveReq{
		Name: "提额", ConfigType: consts.ConfigTypeStrategyStock, Config: `{"max_amount":50000}`,
	})
	if !resp.Success {
		t.Fatalf("save: %+v", resp)
	}
	list, _ := svc.TemplateList(ctx, model.TemplateListReq{ConfigType: consts.ConfigTypeStrategyStock})
	var tplId int64
	fmt.Sscanf(list.Templates[0].Id, "%d", &tplId)

	resp, err := svc.TemplateApply(ctx, tplId, []int64{101, 102})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if resp.Success {
		t.Fatalf("partial failure must not report full success: %+v", resp)
	}
	// 失败行不影响成功行
	if ad.stocks[101].MaxAmount != 50000 {
		t.Fatalf("healthy target should still be applied: %+v", ad.stocks[101])
	}
}

// ---- 分时段模板的标识键冲突 ----

func TestSegTemplateSaveIdentityConflict(t *testing.T) {
	ctx := context.Background()
	svc := NewTemplateService(newMemTemplateDao(), newMemAllocationDao(), nil)

	req := model.SegTemplateSaveReq{
		TemplateName:  "早盘激进",
		TemplateLevel: "S",
		StockCode:     "600519",
		Account:       "A001",
		TimeSegments: []timeseg.DisplayEntry{
			{TimeSegment: "09:30", MaBelowPercent: 0.5, MaAbovePercent: 0.3},
		},
	}
	resp, err := svc.SegTemplateSave(ctx, req)
	if err != nil || !resp.Success {
		t.Fatalf("first save: resp=%+v err=%v", resp, err)
	}

	// 同一(股票,账户,档位)标识再存，名字不同也冲突
	req.TemplateName = "早盘保守"
	resp, err = svc.SegTemplateSave(ctx, req)
	if err != nil {
		t.Fatalf("conflict save: %v", err)
	}
	if resp.Success || resp.ErrorCode != "409" {
		t.Fatalf("want identity conflict, got %+v", resp)
	}

	req.ForceOverwrite = true
	resp, err = svc.SegTemplateSave(ctx, req)
	if err != nil || !resp.Success {
		t.Fatalf("force save: resp=%+v err=%v", resp, err)
	}
	list, _ := svc.SegTemplateList(ctx, model.SegTemplateListReq{StockCode: "600519"})
	if len(list.Templates) != 1 || list.Templates[0].TemplateName != "早盘保守" {
		t.Fatalf("force save should overwrite, got %+v", list.Templates)
	}
}

func TestSegTemplateSaveRejectsBadTime(t *testing.T) {
	ctx := context.Background()
	svc := NewTemplateService(newMemTemplateDao(), newMemAllocationDao(), nil)

	_, err := svc.SegTemplateSave(ctx, model.SegTemplateSaveReq{
		TemplateName:  "坏时间",
		TemplateLevel: "A",
		StockCode:     "600519",
		TimeSegments: []timeseg.DisplayEntry{
			{TimeSegment: "9:30", MaBelowPercent: 0.5},
		},
	})
	if err == nil {
		t.Fatalf("want validation error for '9:30'")
	}
}

// ---- 批量档位切换 ----

func seedLevelSwitch(td *memTemplateDao, ad *memAllocationDao) {
	// 两只股票，600519有S档模板，300750没有
	ad.stocks[101] = &entity.StrategyStock{Id: 101, StrategyId: 1, StockCode: "600519"}
	ad.stocks[102] = &entity.StrategyStock{Id: 102, StrategyId: 1, StockCode: "300750"}
	ad.userStocks[201] = &entity.StrategyUserStock{Id: 201, Account: "A001", StrategyId: 1, StockCode: "600519"}
	ad.userStocks[202] = &entity.StrategyUserStock{Id: 202, Account: "A002", StrategyId: 1, StockCode: "600519"}

	td.segTemplates[301] = &entity.TimeSegmentTemplate{
		Id: 301, TemplateName: "S档", TemplateLevel: "S", StrategyId: 1, StockCode: "600519",
		TimeSegments: []byte(`[{"timeSegment":"09:30","maBelowPercent":0.005,"maAbovePercent":0.003}]`),
	}
}

func TestLevelSwitchPartialSuccess(t *testing.T) {
	ctx := context.Background()
	td := newMemTemplateDao()
	ad := newMemAllocationDao()
	svc := NewTemplateService(td, ad, nil)
	seedLevelSwitch(td, ad)

	res, err := svc.LevelSwitch(ctx, model.LevelSwitchReq{
		TargetIds:     []int64{101, 102},
		TemplateLevel: "S",
	})
	if err != nil {
		t.Fatalf("level switch: %v", err)
	}

	if res.Status != template.StatusPartialSuccess {
		t.Fatalf("want PARTIAL_SUCCESS, got %s", res.Status)
	}
	if res.TotalSuccessCount != 1 || res.TotalNoConfigCount != 1 {
		t.Fatalf("want 1 success 1 no-config, got %+v", res)
	}
	if len(res.NoConfigList) != 1 || res.NoConfigList[0].StockCode != "300750" {
		t.Fatalf("no-config list should name 300750, got %+v", res.NoConfigList)
	}

	// 命中的行写入了模板内容并级联到账户覆盖配置
	if ad.stocks[101].TimeSegmentTemplateLevel != "S" || ad.stocks[101].TimeSegmentConfig == "" {
		t.Fatalf("stock 101 not switched: %+v", ad.stocks[101])
	}
	if ad.userStocks[201].TimeSegmentTemplateLevel != "S" || ad.userStocks[202].TimeSegmentTemplateLevel != "S" {
		t.Fatalf("cascade to user stocks missing")
	}
	// 没模板的行保持原样
	if ad.stocks[102].TimeSegmentTemplateLevel != "" {
		t.Fatalf("stock 102 must stay untouched: %+v", ad.stocks[102])
	}
}

func TestLevelSwitchAllMatchedSuccess(t *testing.T) {
	ctx := context.Background()
	td := newMemTemplateDao()
	ad := newMemAllocationDao()
	svc := NewTemplateService(td, ad, nil)
	seedLevelSwitch(td, ad)

	res, err := svc.LevelSwitch(ctx, model.LevelSwitchReq{
		TargetIds:     []int64{101},
		TemplateLevel: "S",
	})
	if err != nil {
		t.Fatalf("level switch: %v", err)
	}
	if res.Status != template.StatusSuccess {
		t.Fatalf("want SUCCESS, got %s", res.Status)
	}
}

func TestLevelSwitchNoData(t *testing.T) {
	ctx := context.Background()
	svc := NewTemplateService(newMemTemplateDao(), newMemAllocationDao(), nil)

	res, err := svc.LevelSwitch(ctx, model.LevelSwitchReq{TemplateLevel: "A"})
	if err != nil {
		t.Fatalf("level switch: %v", err)
	}
	if res.Status != template.StatusNoData {
		t.Fatalf("want NO_DATA, got %s", res.Status)
	}
}

// ---- 配置保存 ----

func TestStockConfigSaveFundFieldsExclusive(t *testing.T) {
	ctx := context.Background()
	svc := NewAllocationService(newMemAllocationDao())

	base := model.StockConfigSaveReq{StrategyId: 1, StockCode: "600519"}

	both := base
	both.MaxAmount = 10000
	both.FundPercent = 20
	if err := svc.StockConfigSave(ctx, both); !errors.IsCode(err, ecode.ValidateErr) {
		t.Fatalf("both set: want ValidateErr, got %v", err)
	}

	neither := base
	if err := svc.StockConfigSave(ctx, neither); !errors.IsCode(err, ecode.ValidateErr) {
		t.Fatalf("neither set: want ValidateErr, got %v", err)
	}

	one := base
	one.MaxAmount = 10000
	if err := svc.StockConfigSave(ctx, one); err != nil {
		t.Fatalf("single field should pass: %v", err)
	}
}

func TestStockConfigSaveUpsertByKey(t *testing.T) {
	ctx := context.Background()
	ad := newMemAllocationDao()
	svc := NewAllocationService(ad)

	req := model.StockConfigSaveReq{StrategyId: 1, StockCode: "600519", MaxAmount: 10000}
	if err := svc.StockConfigSave(ctx, req); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(ad.stocks) != 1 {
		t.Fatalf("want 1 row, got %d", len(ad.stocks))
	}

	// 不带id重复保存同键，更新而不是新增
	req.MaxAmount = 20000
	if err := svc.StockConfigSave(ctx, req); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if len(ad.stocks) != 1 {
		t.Fatalf("upsert must not add a row, got %d", len(ad.stocks))
	}
	for _, s := range ad.stocks {
		if s.MaxAmount != 20000 {
			t.Fatalf("upsert should update: %+v", s)
		}
	}
}

func TestStockConfigSaveNormalizesBuyRatio(t *testing.T) {
	ctx := context.Background()
	ad := newMemAllocationDao()
	svc := NewAllocationService(ad)

	// 两个secondStage=true，落库前归一化成只留第一个
	raw := `{"firstShareRatio":3,"extraShares":[{"drop":5,"ratio":5,"secondStage":true},{"drop":10,"ratio":10,"secondStage":true}]}`
	err := svc.StockConfigSave(ctx, model.StockConfigSaveReq{
		StrategyId: 1, StockCode: "600519", MaxAmount: 10000, BuyRatioConfig: raw,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, s := range ad.stocks {
		cfg := parseBuyRatio(s.BuyRatioConfig)
		count := 0
		for _, tier := range cfg.ExtraShares {
			if tier.SecondStage {
				count++
			}
		}
		if count != 1 || !cfg.ExtraShares[0].SecondStage {
			t.Fatalf("stored config not normalized: %s", s.BuyRatioConfig)
		}
	}
}

// ---- 资金分配概况 ----

func TestAllocationSummary(t *testing.T) {
	ctx := context.Background()
	ad := newMemAllocationDao()
	svc := NewAllocationService(ad)

	ad.stocks[101] = &entity.StrategyStock{
		Id: 101, StrategyId: 1, StockCode: "600519",
		MaxAmount:        10000,
		UnsoldStackLimit: 4,
		LimitStartShares: 9,
		TotalFundShares:  18,
	}

	res, err := svc.AllocationSummary(ctx, model.AllocationSummaryReq{
		StrategyId: 1, StockCode: "600519", AccountTotalAmount: 100000,
	})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	// 默认首份比例3%：单次300，单日300×4=1200
	if res.SingleAmount != 300 {
		t.Fatalf("single amount want 300, got %v", res.SingleAmount)
	}
	if res.DailyMaxHolding != 1200 {
		t.Fatalf("daily max want 1200, got %v", res.DailyMaxHolding)
	}
	if !res.HasRatio || res.SingleRatio != 0.3 {
		t.Fatalf("ratio want 0.3%%, got %+v", res)
	}
}

func TestAllocationSummaryNoAccountTotal(t *testing.T) {
	ctx := context.Background()
	ad := newMemAllocationDao()
	svc := NewAllocationService(ad)

	ad.stocks[101] = &entity.StrategyStock{
		Id: 101, StrategyId: 1, StockCode: "600519", MaxAmount: 10000,
	}

	res, err := svc.AllocationSummary(ctx, model.AllocationSummaryReq{
		StrategyId: 1, StockCode: "600519",
	})
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if res.HasRatio {
		t.Fatalf("unknown account total must suppress ratios: %+v", res)
	}
}

func TestAllocationSummaryNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewAllocationService(newMemAllocationDao())

	_, err := svc.AllocationSummary(ctx, model.AllocationSummaryReq{
		StrategyId: 1, StockCode: "999999",
	})
	if !errors.IsCode(err, ecode.NotFoundErr) {
		t.Fatalf("want NotFoundErr, got %v", err)
	}
}
