package main

import (
	"context"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/matst80/slask-catalog/pkg/catalog"
	"github.com/matst80/slask-catalog/pkg/common"
	"github.com/matst80/slask-catalog/pkg/config"
	"github.com/matst80/slask-catalog/pkg/index"
	"github.com/matst80/slask-catalog/pkg/logger"
	"github.com/matst80/slask-catalog/pkg/server"
	"github.com/matst80/slask-catalog/pkg/session"
	"github.com/matst80/slask-catalog/pkg/storage"
	"github.com/matst80/slask-catalog/pkg/tracking"
	"github.com/matst80/slask-catalog/pkg/types"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ds, err := storage.LoadDataset(cfg.DataDir)
	if err != nil {
		log.Fatal("failed to load catalog", zap.String("dir", cfg.DataDir), zap.Error(err))
	}
	views, err := catalog.Join(ds)
	if err != nil {
		log.Fatal("catalog references are broken", zap.Error(err))
	}
	idx := index.NewItemIndex(views)
	log.Info("catalog loaded",
		zap.Int("users", len(ds.Users)),
		zap.Int("categories", len(ds.Categories)),
		zap.Int("products", idx.Len()))

	hooks := []common.ShutdownHook{}

	var store session.Store = session.NewMemoryStore()
	if cfg.Redis.Enabled() {
		rs := session.NewRedisStore(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.SessionTTL)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts().Hook)
		err := rs.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatal("redis not reachable", zap.String("addr", cfg.Redis.Address), zap.Error(err))
		}
		store = rs
		hooks = append(hooks, func(ctx context.Context) error {
			return rs.Close()
		})
		log.Info("using redis session store", zap.String("addr", cfg.Redis.Address))
	}

	var trk types.Tracking
	if cfg.Rabbit.Enabled() {
		rt, err := tracking.NewRabbitTracking(log, cfg.Rabbit.Url, cfg.Country)
		if err != nil {
			log.Error("tracking disabled, failed to connect to rabbit", zap.Error(err))
		} else {
			trk = rt
			hooks = append([]common.ShutdownHook{func(ctx context.Context) error {
				return rt.Close()
			}}, hooks...)
		}
	}

	ws := server.NewWebServer(log, idx, ds, session.NewHolder(store), trk)

	timeouts := cfg.Timeouts()
	srv := common.NewServerWithTimeouts(&http.Server{
		Addr:    cfg.ListenAddress,
		Handler: ws.Handler(),
	}, timeouts)
	common.RunServerWithShutdown(log, srv, "catalog", timeouts, hooks...)
}
