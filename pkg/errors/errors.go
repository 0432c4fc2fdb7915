package errors

import (
	"fmt"
	"stockadmin/pkg/errors/ecode"
)

// 带业务错误码的error，响应层通过DecodeErr取出码和提示信息
type withCode struct {
	code    int
	message string
	cause   error
}

func (e *withCode) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *withCode) Unwrap() error {
	return e.cause
}

// Code 返回业务错误码
func (e *withCode) Code() int {
	return e.code
}

// WithCode 创建一个带错误码的error
func WithCode(code int, message string) error {
	return &withCode{code: code, message: message}
}

// Wrap 包装一个已有error并附加错误码和提示信息，err可以为nil（用于携带成功提示）
func Wrap(err error, code int, message string) error {
	return &withCode{code: code, message: message, cause: err}
}

// Wrapf 格式化版本的Wrap
func Wrapf(err error, code int, format string, args ...interface{}) error {
	return &withCode{code: code, message: fmt.Sprintf(format, args...), cause: err}
}

// DecodeErr 从error中解出错误码和提示信息
// nil返回成功；非withCode的error统一按Unknown处理
// 包装过的error提示里带上底层原因，底层失败信息原样透出
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, "OK"
	}
	if e, ok := err.(*withCode); ok {
		return e.code, e.Error()
	}
	return ecode.Unknown, err.Error()
}

// IsCode 判断error是否携带指定错误码
func IsCode(err error, code int) bool {
	c, _ := DecodeErr(err)
	return c == code
}
