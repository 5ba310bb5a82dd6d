package blog

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// 错误分类：处理函数据此决定 HTTP 状态码
var (
	// ErrValidation 请求缺少必填输入
	ErrValidation = errors.New("validation failed")
	// ErrNotFound 按 id 或 slug 未命中任何行
	ErrNotFound = errors.New("record not found")
	// ErrConstraint 存储层唯一约束或外键约束冲突
	ErrConstraint = errors.New("constraint violation")
	// ErrPersistence 其余存储层故障（连接、超时等）
	ErrPersistence = errors.New("persistence failure")
)

// wrapRead 读路径错误归类，未命中与存储故障分开上报
func wrapRead(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// wrapWrite 写路径错误归类，重复键（slug 撞车、并发建标签落败方）单独归为约束冲突
func wrapWrite(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %s: %w", ErrConstraint, op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}
