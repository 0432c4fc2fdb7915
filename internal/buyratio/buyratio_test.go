package buyratio

import (
	"testing"
)

func TestParseEmptyReturnsDefault(t *testing.T) {
	for _, raw := range []string{"", "   ", "{invalid json", "[1,2,3"} {
		cfg := Parse(raw)
		if cfg.FirstShareRatio != 3 {
			t.Errorf("raw=%q firstShareRatio = %v, want 3", raw, cfg.FirstShareRatio)
		}
		if len(cfg.ExtraShares) != 7 {
			t.Errorf("raw=%q len(extraShares) = %d, want 7", raw, len(cfg.ExtraShares))
		}
	}
}

func TestDefaultSecondStage(t *testing.T) {
	cfg := Default()
	count := 0
	for _, tier := range cfg.ExtraShares {
		if tier.SecondStage {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("默认配置应该只有一档secondStage，实际 %d 档", count)
	}
}

func TestParseCoercesLooseTypes(t *testing.T) {
	raw := `{"firstShareRatio":"5","extraShares":[{"drop":"3","ratio":"6","secondStage":"true"},{"drop":5,"ratio":10,"secondStage":0}]}`
	cfg := Parse(raw)
	if cfg.FirstShareRatio != 5 {
		t.Errorf("firstShareRatio = %v, want 5", cfg.FirstShareRatio)
	}
	if len(cfg.ExtraShares) != 2 {
		t.Fatalf("len(extraShares) = %d, want 2", len(cfg.ExtraShares))
	}
	if !cfg.ExtraShares[0].SecondStage {
		t.Error("字符串\"true\"应被识别为布尔true")
	}
	if cfg.ExtraShares[1].SecondStage {
		t.Error("数字0应被识别为布尔false")
	}
	if cfg.ExtraShares[0].Drop != 3 || cfg.ExtraShares[0].Ratio != 6 {
		t.Errorf("tier0 = %+v", cfg.ExtraShares[0])
	}
}

func TestNormalizeKeepsFirstSecondStage(t *testing.T) {
	tests := []struct {
		name  string
		flags []bool
		want  []bool
	}{
		{"全false", []bool{false, false, false}, []bool{false, false, false}},
		{"单个true", []bool{false, true, false}, []bool{false, true, false}},
		{"多个true保留第一个", []bool{true, false, true, true}, []bool{true, false, false, false}},
		{"全true", []bool{true, true, true}, []bool{true, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{FirstShareRatio: 3}
			for _, f := range tt.flags {
				cfg.ExtraShares = append(cfg.ExtraShares, Tier{Drop: 1, Ratio: 1, SecondStage: f})
			}
			cfg.Normalize()
			for i, want := range tt.want {
				if cfg.ExtraShares[i].SecondStage != want {
					t.Errorf("tier[%d].secondStage = %v, want %v", i, cfg.ExtraShares[i].SecondStage, want)
				}
			}
		})
	}
}

func TestParseNormalizesStoredJSON(t *testing.T) {
	// 存储的JSON里有多档secondStage，解析后必须只剩第一档
	raw := `{"firstShareRatio":3,"extraShares":[{"drop":3,"ratio":3,"secondStage":true},{"drop":5,"ratio":5,"secondStage":true},{"drop":7,"ratio":8,"secondStage":true}]}`
	cfg := Parse(raw)
	if !cfg.ExtraShares[0].SecondStage {
		t.Error("第一档secondStage应保留")
	}
	for i := 1; i < len(cfg.ExtraShares); i++ {
		if cfg.ExtraShares[i].SecondStage {
			t.Errorf("tier[%d].secondStage应被清除", i)
		}
	}
}

func TestSelectSecondStage(t *testing.T) {
	cfg := Default()
	cfg.SelectSecondStage(2)
	for i, tier := range cfg.ExtraShares {
		if (i == 2) != tier.SecondStage {
			t.Errorf("tier[%d].secondStage = %v", i, tier.SecondStage)
		}
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.SelectSecondStage(0)
	got := Parse(cfg.Encode())
	if len(got.ExtraShares) != len(cfg.ExtraShares) {
		t.Fatalf("len = %d, want %d", len(got.ExtraShares), len(cfg.ExtraShares))
	}
	if !got.ExtraShares[0].SecondStage {
		t.Error("secondStage选择在序列化后丢失")
	}
}
