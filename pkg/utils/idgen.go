package utils

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	idNode *snowflake.Node
	idOnce sync.Once
)

// InitIDGen 初始化雪花ID节点，nodeId取配置里的节点编号
func InitIDGen(nodeId int64) error {
	var err error
	idOnce.Do(func() {
		idNode, err = snowflake.NewNode(nodeId)
	})
	return err
}

// NextID 生成一个全局唯一ID，未初始化时默认节点1
func NextID() int64 {
	if idNode == nil {
		_ = InitIDGen(1)
	}
	return idNode.Generate().Int64()
}
