package validator

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func TestTranslatePassthrough(t *testing.T) {
	if got := Translate(nil); got != "" {
		t.Errorf("Translate(nil) = %q", got)
	}
	// 非校验类error原样返回
	if got := Translate(stderrors.New("boom")); got != "boom" {
		t.Errorf("Translate = %q, want boom", got)
	}
}

func TestTranslateValidationErrors(t *testing.T) {
	LazyInitGinValidator("zh")

	type req struct {
		Name string `binding:"required"`
	}
	v := binding.Validator.Engine().(*validator.Validate)
	err := v.Struct(req{})
	if err == nil {
		t.Fatal("required字段缺失应报错")
	}

	msg := Translate(err)
	// 绑定失败透出给前端的应是翻译后的中文文案，不是原始英文格式
	if !strings.Contains(msg, "必填") {
		t.Errorf("Translate = %q, 应包含中文翻译", msg)
	}
	if msg == err.Error() {
		t.Error("翻译结果不应等于原始错误串")
	}
}

func TestTimeHHMMRule(t *testing.T) {
	LazyInitGinValidator("zh")
	v := binding.Validator.Engine().(*validator.Validate)

	if err := v.Var("09:30", "timehhmm"); err != nil {
		t.Errorf("09:30 应通过: %v", err)
	}
	for _, bad := range []string{"9:30", "24:00", "09:60", "0930"} {
		if err := v.Var(bad, "timehhmm"); err == nil {
			t.Errorf("%s 应被拒绝", bad)
		}
	}
}
