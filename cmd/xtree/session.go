package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/tree"
	"github.com/benz9527/xtree/observability"
	"github.com/benz9527/xtree/xlog"
)

// session holds one tree and applies the ops of a run in order.
type session struct {
	kind     string
	tree     tree.Tree[int64]
	render   func(w io.Writer) int
	validate func() error
	stats    *observability.TreeStats[int64]
	logger   xlog.XLogger
}

func newSession(cfg *appConfig, logger xlog.XLogger, mp metric.MeterProvider) *session {
	s := &session{kind: cfg.Kind, logger: logger}
	s.stats = observability.NewTreeStats[int64](mp, cfg.Kind, func() int64 {
		return s.tree.Len()
	})
	opts := []tree.TreeOption[int64]{
		tree.WithListener[int64](s.stats),
		tree.WithListener[int64](xlog.NewTreeEventLogger[int64](logger, cfg.Kind)),
	}
	if cfg.Desc {
		opts = append(opts, tree.WithDesc[int64]())
	}
	if cfg.BorrowPred {
		opts = append(opts, tree.WithRemoveBorrowPred[int64]())
	}

	switch cfg.Kind {
	case kindRB:
		rb := tree.NewRBTree[int64](opts...)
		s.tree = rb
		s.render = func(w io.Writer) int { return rbView.print(w, rb.Root(), "", rootBranch) }
		s.validate = func() error { return tree.ValidateRB[int64](rb) }
	default:
		avl := tree.NewAVLTree[int64](opts...)
		s.tree = avl
		s.render = func(w io.Writer) int { return avlView.print(w, avl.Root(), "", rootBranch) }
		s.validate = func() error { return tree.ValidateAVL[int64](avl) }
	}
	return s
}

func (s *session) apply(w io.Writer, o op) {
	var res string
	switch o.kind {
	case opInsert:
		if _, ok := s.tree.Insert(o.key); ok {
			res = "inserted"
		} else {
			res = "exists"
		}
	case opDelete:
		if _, ok := s.tree.Delete(o.key); ok {
			res = "deleted"
		} else {
			res = "absent"
		}
	case opSearch:
		if s.tree.Contains(o.key) {
			res = "found"
		} else {
			res = "absent"
		}
	case opDeleteMin:
		if key, ok := s.tree.DeleteMin(); ok {
			res = strconv.FormatInt(key, 10)
		} else {
			res = "empty"
		}
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", o.raw, res)
}

// run applies the ops, then prints the keys and the shape. The
// invariants are checked at the end.
func (s *session) run(w io.Writer, ops []string) error {
	for _, raw := range ops {
		o, err := parseOp(raw)
		if err != nil {
			return err
		}
		s.apply(w, o)
	}

	keys := make([]string, 0, s.tree.Len())
	for key := range s.tree.All() {
		keys = append(keys, strconv.FormatInt(key, 10))
	}
	_, _ = fmt.Fprintf(w, "len: %d\n", s.tree.Len())
	_, _ = fmt.Fprintf(w, "keys: [%s]\n", strings.Join(keys, " "))
	depth := s.render(w)

	if err := s.validate(); err != nil {
		s.logger.ErrorStack(err, "tree invariants broken", zap.String("tree", s.kind))
		return err
	}
	s.logger.Info("tree is valid",
		zap.String("tree", s.kind),
		zap.Int64("len", s.tree.Len()),
		zap.Int("depth", depth),
	)
	return nil
}

func (s *session) close() error {
	s.tree.Release()
	return s.stats.Close()
}
