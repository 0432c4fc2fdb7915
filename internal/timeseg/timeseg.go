package timeseg

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
)

// 分时段均线配置，按股票（策略级默认）或账户+股票（覆盖）维护
// 比例字段落库存小数（0.005），前端编辑展示用百分比（0.5），换算只发生在
// ToDisplay/FromDisplay这一层，校验和排序都在小数表示上进行

// 时间必须是两位小时的24小时制HH:mm，"9:30"这种单位数小时视为非法
var timeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Entry struct {
	TimeSegment    string  `json:"timeSegment"`    // HH:mm
	MaBelowPercent float64 `json:"maBelowPercent"` // 低于均线的买入比例（小数）
	MaAbovePercent float64 `json:"maAbovePercent"` // 高于均线的买入比例（小数）
	ProfitPercent  float64 `json:"profitPercent"`  // 止盈比例（小数）
}

// DisplayEntry 前端编辑态，比例字段是百分比
type DisplayEntry struct {
	TimeSegment    string  `json:"timeSegment" binding:"required,timehhmm"`
	MaBelowPercent float64 `json:"maBelowPercent"`
	MaAbovePercent float64 `json:"maAbovePercent"`
	ProfitPercent  float64 `json:"profitPercent"`
}

// 模板档位闭集
var levels = []string{"S", "A", "B", "C", "D"}

// ValidLevel 判断档位是否在闭集内
func ValidLevel(level string) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}

// ValidTime 判断一个时间字面量是否合法
func ValidTime(ts string) bool {
	return timeRe.MatchString(ts)
}

// Validate 校验所有时段：格式非法报出具体字面量，时段重复列出全部重复值
func Validate(entries []Entry) error {
	for _, e := range entries {
		if !timeRe.MatchString(e.TimeSegment) {
			return fmt.Errorf("时间格式错误: %q，应为HH:mm", e.TimeSegment)
		}
	}

	seen := make(map[string]int, len(entries))
	for _, e := range entries {
		seen[e.TimeSegment]++
	}
	var dups []string
	for _, e := range entries {
		if seen[e.TimeSegment] > 1 {
			seen[e.TimeSegment] = -1 // 只报一次
			dups = append(dups, e.TimeSegment)
		}
	}
	if len(dups) > 0 {
		return fmt.Errorf("时间段重复: %s", strings.Join(dups, ", "))
	}
	return nil
}

// Minutes 时间字面量折算为当天第几分钟，非法输入返回-1
func Minutes(ts string) int {
	parts := strings.SplitN(ts, ":", 2)
	if len(parts) != 2 {
		return -1
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return -1
	}
	return h*60 + m
}

// Sort 按时段升序原地排序，落库前必须调用，读取侧依赖有序性
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Minutes(entries[i].TimeSegment) < Minutes(entries[j].TimeSegment)
	})
}

// Parse 解析存储的JSON串，空串返回nil
func Parse(raw string) ([]Entry, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var entries []Entry
	if err := gojson.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("解析时段配置失败: %w", err)
	}
	return entries, nil
}

// Encode 排序后序列化为落库JSON串，不修改传入切片
func Encode(entries []Entry) string {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	Sort(sorted)
	b, _ := gojson.Marshal(sorted)
	return string(b)
}

// ToDisplay 小数转百分比，序列化边界的唯一换算点
func ToDisplay(entries []Entry) []DisplayEntry {
	res := make([]DisplayEntry, 0, len(entries))
	for _, e := range entries {
		res = append(res, DisplayEntry{
			TimeSegment:    e.TimeSegment,
			MaBelowPercent: e.MaBelowPercent * 100,
			MaAbovePercent: e.MaAbovePercent * 100,
			ProfitPercent:  e.ProfitPercent * 100,
		})
	}
	return res
}

// FromDisplay 百分比转回小数
func FromDisplay(entries []DisplayEntry) []Entry {
	res := make([]Entry, 0, len(entries))
	for _, e := range entries {
		res = append(res, Entry{
			TimeSegment:    e.TimeSegment,
			MaBelowPercent: e.MaBelowPercent / 100,
			MaAbovePercent: e.MaAbovePercent / 100,
			ProfitPercent:  e.ProfitPercent / 100,
		})
	}
	return res
}
