// Copyright (C) 2025 eternitymarket.io <dev@eternitymarket.io>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eternitymarket/chatd/backend/config"
	"github.com/eternitymarket/chatd/backend/handlers"
	"github.com/eternitymarket/chatd/backend/logging"
	"github.com/eternitymarket/chatd/backend/middleware"
	"github.com/eternitymarket/chatd/backend/service"
	"github.com/eternitymarket/chatd/backend/storage"
	"github.com/eternitymarket/chatd/backend/storage/memory"
	"github.com/eternitymarket/chatd/backend/storage/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log := logging.New(cfg.Dev)
	defer log.Sync()

	var store storage.Store
	if cfg.Dev {
		// Dev mode runs without postgres/redis.
		log.Warn("dev mode: using in-memory store, nothing is persisted")
		store = memory.NewStore()
	} else {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("failed to open database", zap.Error(err))
		}

		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisURL,
		})

		store = postgres.NewStore(db, rdb)
	}

	svc := service.New(store, log)
	defer svc.Close()

	// Eager initialization; handlers retry lazily if this loses the
	// race with the first request or the backends come up late.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := svc.EnsureInit(ctx); err != nil {
			log.Error("eager store initialization failed", zap.Error(err))
			return
		}
		log.Info("store initialized")
	}()

	r := mux.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RequestLogger(log))

	handlers.Register(r, svc, cfg.UploadDir, log)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.EnsureInit(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("store unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	log.Info("chat gateway starting", zap.String("addr", cfg.ListenAddr))

	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
