package template

import (
	"errors"
	"fmt"
)

// 冲突的三种形态在这里统一收口：
//  1. 传输层HTTP 409（StatusError.HTTPStatus）
//  2. 200响应体里的业务冲突（Response.ErrorCode == "409"）
//  3. 已经是ConflictError的error（可能被包装过）
// 引擎其余部分只认ConflictError一种类型

// ConflictError 模板标识冲突，需要调用方显式确认覆盖，绝不自动合并
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StatusError 携带HTTP状态码的传输层错误
type StatusError struct {
	HTTPStatus int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.HTTPStatus, e.Message)
}

// AsConflict 检查响应和错误是否表示冲突，是则归一化成ConflictError
func AsConflict(resp *Response, err error) (*ConflictError, bool) {
	if err != nil {
		var ce *ConflictError
		if errors.As(err, &ce) {
			return ce, true
		}
		var se *StatusError
		if errors.As(err, &se) && (se.HTTPStatus == 409 || se.Code == "409") {
			return &ConflictError{Message: se.Message}, true
		}
	}
	if resp != nil && !resp.Success && resp.ErrorCode == "409" {
		return &ConflictError{Message: resp.Message}, true
	}
	return nil, false
}
