package index

import (
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matst80/slask-catalog/pkg/types"
)

var (
	noRecomputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskcatalog_filter_total",
		Help: "The total number of filter and sort recomputations",
	})
	filterResults = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slaskcatalog_filter_results",
		Help:    "Number of views returned per recomputation",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
	totalItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slaskcatalog_items",
		Help: "The total number of product views in index",
	})
)

// ItemIndex holds the joined catalog, which is read-only once created.
type ItemIndex struct {
	views []types.ProductView
	byId  map[types.ProductId]int
}

func NewItemIndex(views []types.ProductView) *ItemIndex {
	byId := make(map[types.ProductId]int, len(views))
	for i, v := range views {
		if _, exists := byId[v.Id]; !exists {
			byId[v.Id] = i
		}
	}
	totalItems.Set(float64(len(views)))
	return &ItemIndex{
		views: slices.Clone(views),
		byId:  byId,
	}
}

func (i *ItemIndex) Len() int {
	return len(i.views)
}

// All returns a copy of every view in load order.
func (i *ItemIndex) All() []types.ProductView {
	return slices.Clone(i.views)
}

func (i *ItemIndex) Get(id types.ProductId) (types.ProductView, bool) {
	idx, ok := i.byId[id]
	if !ok {
		return types.ProductView{}, false
	}
	return i.views[idx], true
}

func (i *ItemIndex) Apply(state types.FilterState) []types.ProductView {
	noRecomputations.Inc()
	result := Apply(i.views, state)
	filterResults.Observe(float64(len(result)))
	return result
}
