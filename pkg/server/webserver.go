package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/index"
	"github.com/matst80/slask-catalog/pkg/session"
	"github.com/matst80/slask-catalog/pkg/types"
)

var (
	noRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskcatalog_requests_total",
		Help: "The total number of processed catalog requests",
	}, []string{"action"})
	noEmptyResults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskcatalog_empty_results_total",
		Help: "The total number of responses without matching products",
	})
)

type WebServer struct {
	Index      *index.ItemIndex
	Users      []types.User
	Categories []types.Category
	Sessions   *session.Holder
	Tracking   types.Tracking

	log         *zap.Logger
	categoryIds map[types.CategoryId]struct{}
}

// NewWebServer serves the joined catalog in idx. Tracking may be nil.
func NewWebServer(log *zap.Logger, idx *index.ItemIndex, ds catalog.Dataset, sessions *session.Holder, tracking types.Tracking) *WebServer {
	categoryIds := make(map[types.CategoryId]struct{}, len(ds.Categories))
	for _, c := range ds.Categories {
		categoryIds[c.Id] = struct{}{}
	}
	return &WebServer{
		Index:       idx,
		Users:       ds.Users,
		Categories:  ds.Categories,
		Sessions:    sessions,
		Tracking:    tracking,
		log:         log,
		categoryIds: categoryIds,
	}
}

func (ws *WebServer) handle(fn common.JsonHandlerFunc) http.HandlerFunc {
	return common.JsonHandler(ws.log, ws.Tracking, fn)
}

func (ws *WebServer) Handler() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv.Handle("GET /metrics", promhttp.Handler())

	srv.HandleFunc("GET /api/users", ws.handle(ws.GetUsers))
	srv.HandleFunc("GET /api/categories", ws.handle(ws.GetCategories))
	srv.HandleFunc("GET /api/products", ws.handle(ws.Products))

	srv.HandleFunc("GET /api/session", ws.handle(ws.SessionState))
	srv.HandleFunc("POST /api/session/query", ws.handle(ws.SetQuery))
	srv.HandleFunc("POST /api/session/categories/{id}", ws.handle(ws.ToggleCategory))
	srv.HandleFunc("DELETE /api/session/categories", ws.handle(ws.ClearCategories))
	srv.HandleFunc("POST /api/session/user", ws.handle(ws.SelectUser))
	srv.HandleFunc("POST /api/session/sort/{field}", ws.handle(ws.ToggleSort))
	srv.HandleFunc("POST /api/session/reset", ws.handle(ws.Reset))

	srv.HandleFunc("OPTIONS /api/", common.RespondToOptions)
	return srv
}
