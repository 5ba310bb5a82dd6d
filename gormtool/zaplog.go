// gormtool\zaplog.go
package gormtool

import (
	"context"

	"go.uber.org/zap"
)

// ZapLogger 基于 zap 的 Logger 实现，生产环境使用
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

func NewZapLogger(sugar *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{sugar: sugar}
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.sugar.Debugw(msg, flatten(fields)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.sugar.Infow(msg, flatten(fields)...)
}

func (l *ZapLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	l.sugar.Warnw(msg, flatten(fields)...)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	l.sugar.Errorw(msg, flatten(fields)...)
}

// flatten 把字段 map 展开成 zap 的键值对参数
func flatten(fields map[string]interface{}) []interface{} {
	kv := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return kv
}
