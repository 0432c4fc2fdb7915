package middleware

import (
	"github.com/gin-gonic/gin"
)

// GlobalMiddleware 全局中间件，在业务路由之前挂到gin实例上
type GlobalMiddleware struct{}

func NewMiddleware() *GlobalMiddleware {
	return &GlobalMiddleware{}
}

func (m *GlobalMiddleware) Load(g *gin.Engine) {
	g.Use(gin.Recovery())
	g.Use(NoCache())
	g.Use(Options())
	g.Use(Secure())
	g.Use(RequestId())
	g.Use(Logger)
}
