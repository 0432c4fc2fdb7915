package errors

import (
	stderrors "errors"
	"testing"

	"stockadmin/pkg/errors/ecode"
)

func TestDecodeErrNil(t *testing.T) {
	code, msg := DecodeErr(nil)
	if code != ecode.Success || msg != "OK" {
		t.Errorf("DecodeErr(nil) = %d, %q", code, msg)
	}
}

func TestDecodeErrWithCode(t *testing.T) {
	err := WithCode(ecode.ValidateErr, "参数不合法")
	code, msg := DecodeErr(err)
	if code != ecode.ValidateErr || msg != "参数不合法" {
		t.Errorf("DecodeErr = %d, %q", code, msg)
	}
}

func TestDecodeErrKeepsCause(t *testing.T) {
	// 删除失败等场景下底层原因必须原样透出，不能只剩外层提示
	cause := stderrors.New("配置正在被策略引用")
	err := Wrap(cause, ecode.Unknown, "删除模板失败")
	code, msg := DecodeErr(err)
	if code != ecode.Unknown {
		t.Errorf("code = %d, want %d", code, ecode.Unknown)
	}
	if msg != "删除模板失败: 配置正在被策略引用" {
		t.Errorf("msg = %q", msg)
	}
}

func TestDecodeErrPlainError(t *testing.T) {
	code, msg := DecodeErr(stderrors.New("boom"))
	if code != ecode.Unknown || msg != "boom" {
		t.Errorf("DecodeErr = %d, %q", code, msg)
	}
}

func TestIsCode(t *testing.T) {
	err := Wrap(stderrors.New("x"), ecode.NotFoundErr, "没有找到")
	if !IsCode(err, ecode.NotFoundErr) {
		t.Error("IsCode应命中包装error上的错误码")
	}
	if IsCode(err, ecode.ValidateErr) {
		t.Error("IsCode不应命中其它错误码")
	}
}
