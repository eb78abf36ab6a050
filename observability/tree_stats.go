package observability

import (
	"context"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/tree"
)

const treeStatsPrefix = "xtree/tree"

var _ tree.Listener[int] = (*TreeStats[int])(nil)

// TreeStats counts the structural changes of a tree.
//
// Attributes:
//
//	tree: the tree kind, "avl" or "rb".
//	dir:  the rotation direction.
//	color: the color painted by recolor.
type TreeStats[K infra.OrderedKey] struct {
	kind      attribute.KeyValue
	inserts   metric.Int64Counter
	deletes   metric.Int64Counter
	rotations metric.Int64Counter
	recolors  metric.Int64Counter
	size      metric.Int64ObservableGauge
	reg       metric.Registration
}

// NewTreeStats registers the instruments by the meter, the size is
// observed by lenFn at every collection.
func NewTreeStats[K infra.OrderedKey](
	provider metric.MeterProvider,
	kind string,
	lenFn func() int64,
) *TreeStats[K] {
	meter := provider.Meter(treeStatsPrefix)
	stats := &TreeStats[K]{
		kind: attribute.String("tree", kind),
		inserts: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"tree.inserts",
			metric.WithDescription("The keys inserted."),
		)),
		deletes: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"tree.deletes",
			metric.WithDescription("The keys deleted."),
		)),
		rotations: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"tree.rotations",
			metric.WithDescription("The single rotations."),
		)),
		recolors: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"tree.recolors",
			metric.WithDescription("The red-black color changes."),
		)),
		size: lo.Must[metric.Int64ObservableGauge](meter.Int64ObservableGauge(
			"tree.size",
			metric.WithDescription("The keys held by the tree."),
		)),
	}
	if lenFn != nil {
		stats.reg = lo.Must[metric.Registration](meter.RegisterCallback(
			func(ctx context.Context, ob metric.Observer) error {
				ob.ObserveInt64(stats.size, lenFn(), metric.WithAttributes(stats.kind))
				return nil
			},
			stats.size,
		))
	}
	return stats
}

func (stats *TreeStats[K]) OnEvent(ev tree.Event[K]) {
	ctx := context.Background()
	switch ev.Kind {
	case tree.EventInsert:
		stats.inserts.Add(ctx, 1, metric.WithAttributes(stats.kind))
	case tree.EventDelete:
		stats.deletes.Add(ctx, 1, metric.WithAttributes(stats.kind))
	case tree.EventRotate:
		stats.rotations.Add(ctx, 1, metric.WithAttributes(
			stats.kind,
			attribute.String("dir", ev.Dir.String()),
		))
	case tree.EventRecolor:
		stats.recolors.Add(ctx, 1, metric.WithAttributes(
			stats.kind,
			attribute.String("color", ev.Color.String()),
		))
	}
}

// Close stops observing the size.
func (stats *TreeStats[K]) Close() error {
	if stats == nil || stats.reg == nil {
		return nil
	}
	return stats.reg.Unregister()
}
