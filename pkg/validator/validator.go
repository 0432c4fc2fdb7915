package validator

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	zhtranslations "github.com/go-playground/validator/v10/translations/zh"

	"stockadmin/pkg/logger"
)

var (
	once  sync.Once
	trans ut.Translator
)

// 两位小时的24小时制HH:mm
var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// LazyInitGinValidator 替换gin默认validator的翻译器并注册自定义规则
// language支持zh/en，默认zh
func LazyInitGinValidator(language string) {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			logger.Error("validator: gin binding engine类型不匹配")
			return
		}

		if err := v.RegisterValidation("timehhmm", func(fl validator.FieldLevel) bool {
			return hhmmRe.MatchString(fl.Field().String())
		}); err != nil {
			logger.Errorf("validator: 注册timehhmm规则失败: %v", err)
		}

		zhT := zh.New()
		enT := en.New()
		uni := ut.New(enT, zhT, enT)

		var err error
		switch language {
		case "en":
			trans, _ = uni.GetTranslator("en")
			err = entranslations.RegisterDefaultTranslations(v, trans)
		default:
			trans, _ = uni.GetTranslator("zh")
			err = zhtranslations.RegisterDefaultTranslations(v, trans)
		}
		if err != nil {
			logger.Errorf("validator: 注册翻译器失败: %v", err)
		}
	})
}

// Translate 把校验错误翻译成用户可读文案，非校验错误原样返回
func Translate(err error) string {
	if err == nil {
		return ""
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || trans == nil {
		return err.Error()
	}
	for _, e := range errs {
		return e.Translate(trans)
	}
	return err.Error()
}
