package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"

	"mergeverse/internal/adapter/actorstore/sqlite"
	httpadapter "mergeverse/internal/adapter/http"
	ledgerclient "mergeverse/internal/adapter/ledger/httpclient"
	staticlinks "mergeverse/internal/adapter/links/static"
	metricsinmem "mergeverse/internal/adapter/metrics/inmemory"
	gormrepo "mergeverse/internal/adapter/repo/gorm"
	taskclient "mergeverse/internal/adapter/taskcontent/httpclient"
	"mergeverse/internal/app/actor"
	"mergeverse/internal/app/auth"
	"mergeverse/internal/app/op"
	"mergeverse/internal/app/session"
	appsync "mergeverse/internal/app/sync"
	"mergeverse/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := gormrepo.OpenPostgres(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := gormrepo.ApplyMigrations(context.Background(), db, cfg.MigrationsDir); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	store, err := sqlite.Open(cfg.ActorStorePath)
	if err != nil {
		log.Fatalf("open actor store: %v", err)
	}
	defer store.Close()

	records := gormrepo.NewPlayerRecordRepo(db)
	txManager := gormrepo.NewTxManager(db)

	linkRng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var links *staticlinks.Provider
	if cfg.LinkPoolPath != "" {
		links, err = staticlinks.NewFromFile(cfg.LinkPoolPath, linkRng)
		if err != nil {
			log.Fatalf("load link pool: %v", err)
		}
	} else {
		links = staticlinks.New(linkRng)
	}

	reconciler := &appsync.Reconciler{Records: records}
	resolver := &op.Resolver{
		Records:    records,
		Tasks:      taskclient.New(cfg.TaskContentURL),
		Ledger:     ledgerclient.New(cfg.LedgerURL),
		Links:      links,
		Reconciler: reconciler,
		TxManager:  txManager,
		Now:        time.Now,
	}

	kpiRecorder := metricsinmem.NewRecorder()
	registry := actor.NewRegistry(actor.RegistryOptions{
		Resolver: resolver,
		Store:    store,
		Metrics:  kpiRecorder,
	})
	defer registry.Close()

	sweeper := &appsync.Sweeper{
		Records:     records,
		Actors:      registry,
		Reconciler:  reconciler,
		Interval:    cfg.SweepInterval,
		Concurrency: cfg.SweepConcurrency,
	}
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go sweeper.Run(sweepCtx)

	h := httpadapter.Handler{
		AuthUC:   auth.VerifyUseCase{Records: records},
		Records:  records,
		Actors:   registry,
		Sessions: &session.Manager{Actors: registry},
		KPI:      kpiRecorder,
	}

	s := server.Default(server.WithHostPorts(cfg.ListenAddr))
	h.RegisterRoutes(s)

	log.Printf("mergeverse server listening on %s", cfg.ListenAddr)
	s.Spin()
}
