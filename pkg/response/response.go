package response

import (
	"net/http"
	"stockadmin/internal/consts"
	"stockadmin/pkg/errors"
	"stockadmin/pkg/errors/ecode"

	"github.com/gin-gonic/gin"
)

// 代表响应给客户端的的一个消息结构，包括错误码，错误信息，响应数据
type ApiResponse struct {
	RequestId string      `json:"request_id"` // 请求的唯一ID
	Code      int         `json:"code"`       // 错误码 0表示无错误
	Message   string      `json:"message"`    // 提示信息
	Data      interface{} `json:"data"`       // 响应数据，前端从这个里面取出数据展示
}

// 发送json格式数据
// 注意：模板冲突（ecode.ConflictErr）也走HTTP 200返回，冲突信息放在业务错误码里，
// 由前端根据code弹出覆盖确认框后带force_overwrite重发
func JSON(c *gin.Context, err error, data interface{}) {
	code, message := errors.DecodeErr(err)
	var httpStatus int
	switch code {
	case ecode.Success, ecode.ConflictErr:
		httpStatus = http.StatusOK
	default:
		httpStatus = http.StatusBadRequest
	}
	c.JSON(httpStatus, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      code,
		Message:   message,
		Data:      data,
	})
}

// 请求频繁，返回429
func TooManyRequests(c *gin.Context) {
	message := "The request is too frequent. Please try again later."
	c.JSON(http.StatusTooManyRequests, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.Unknown,
		Message:   message,
		Data:      nil,
	})
}
