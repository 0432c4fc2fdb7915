package ecode

// 业务错误码，0表示成功，非0表示各类失败
const (
	Success = 0 // 成功

	Unknown     = 10001 // 未知错误
	ValidateErr = 10002 // 参数校验失败
	NotFoundErr = 10003 // 资源不存在
	InternalErr = 10004 // 服务内部错误

	// ConflictErr 模板同名或同标识冲突，需要调用方确认后强制覆盖。
	// 取409是为了与HTTP冲突状态码保持一致，前端据此弹出覆盖确认框。
	ConflictErr = 409
)
