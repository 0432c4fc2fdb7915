package template

import (
	"context"
	"errors"
)

// 模板保存/应用的冲突确认协议
// 每次Run都是一轮完整的状态机：
//   尝试（force=false）→ 成功 Applied
//                      → 冲突 ConflictDetected → 确认 → force重试 → Applied/Failed
//                                              → 取消 → Aborted（无任何变更）
//                      → 其他错误 Failed（错误信息原样向上）
// Run不持有状态，Aborted之后再次Run自然从头开始

type State int

const (
	StateApplied State = iota + 1
	StateAborted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateApplied:
		return "APPLIED"
	case StateAborted:
		return "ABORTED"
	case StateFailed:
		return "FAILED"
	}
	return "UNKNOWN"
}

// Confirmer 冲突时向用户要确认，message是服务端返回的冲突说明
type Confirmer func(ctx context.Context, message string) bool

// AttemptFunc 一次保存/应用尝试，force表示确认覆盖后的重试
type AttemptFunc func(ctx context.Context, force bool) (*Response, error)

type ApplyEngine struct {
	confirm Confirmer
}

func NewApplyEngine(confirm Confirmer) *ApplyEngine {
	return &ApplyEngine{confirm: confirm}
}

// Run 执行一轮冲突确认协议
func (e *ApplyEngine) Run(ctx context.Context, attempt AttemptFunc) (State, error) {
	resp, err := attempt(ctx, false)

	if conflict, ok := AsConflict(resp, err); ok {
		if e.confirm == nil || !e.confirm(ctx, conflict.Message) {
			// 用户取消，什么都没发生
			return StateAborted, nil
		}
		resp, err = attempt(ctx, true)
		if err != nil {
			return StateFailed, err
		}
		if resp != nil && !resp.Success {
			return StateFailed, errors.New(resp.Message)
		}
		return StateApplied, nil
	}

	if err != nil {
		return StateFailed, err
	}
	if resp != nil && !resp.Success {
		return StateFailed, errors.New(resp.Message)
	}
	return StateApplied, nil
}

// SaveTemplate 带冲突确认地保存一个模板
func (e *ApplyEngine) SaveTemplate(ctx context.Context, store Store, tpl Template) (State, error) {
	return e.Run(ctx, func(ctx context.Context, force bool) (*Response, error) {
		return store.CreateTemplate(ctx, tpl, force)
	})
}

// Apply 把模板应用到多个目标上
func (e *ApplyEngine) Apply(ctx context.Context, store Store, templateID int64, targetIDs []int64) (State, error) {
	return e.Run(ctx, func(ctx context.Context, force bool) (*Response, error) {
		return store.ApplyTemplate(ctx, templateID, targetIDs)
	})
}
