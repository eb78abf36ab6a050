package xlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/tree"
)

var _ tree.Listener[int] = (*TreeEventLogger[int])(nil)

// TreeEventLogger traces the structural changes of a tree at debug level.
type TreeEventLogger[K infra.OrderedKey] struct {
	logger *zap.Logger
}

func NewTreeEventLogger[K infra.OrderedKey](logger XLogger, name string) *TreeEventLogger[K] {
	return &TreeEventLogger[K]{
		logger: logger.zap().Named(name),
	}
}

func (l *TreeEventLogger[K]) OnEvent(ev tree.Event[K]) {
	if l == nil || l.logger == nil {
		return
	}
	ce := l.logger.Check(zapcore.DebugLevel, ev.Kind.String())
	if ce == nil {
		return
	}
	switch ev.Kind {
	case tree.EventRotate:
		ce.Write(zap.Any("pivot", ev.Key), zap.Stringer("dir", ev.Dir))
	case tree.EventRecolor:
		ce.Write(zap.Any("key", ev.Key), zap.Stringer("color", ev.Color))
	default:
		ce.Write(zap.Any("key", ev.Key))
	}
}
