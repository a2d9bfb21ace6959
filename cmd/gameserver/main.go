package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/dogwalk/server/internal/api"
	"github.com/dogwalk/server/internal/game/configio"
	"github.com/dogwalk/server/internal/game/scoreboard"
	"github.com/dogwalk/server/internal/game/snapshot"
	"github.com/dogwalk/server/internal/game/strand"
	"github.com/dogwalk/server/internal/game/tuning"
	"github.com/dogwalk/server/internal/game/world"
)

func main() {
	var (
		addr           = flag.String("addr", ":8080", "http listen address")
		configFile     = flag.String("config_file", "", "path to the map/loot config file (required)")
		tuningFile     = flag.String("tuning_file", "", "path to an optional tuning.yaml overriding retirement time, bag capacity, and db pool size")
		wwwRoot        = flag.String("www_root", "", "path to the static web client root (empty disables it)")
		tickPeriod     = flag.Duration("tick_period", 100*time.Millisecond, "internal tick period (0 switches to external /api/v1/game/tick mode)")
		randomizeSpawn = flag.Bool("randomize_spawn_points", false, "spawn new players at a random point on a random road instead of the map's first road start")
		stateFile      = flag.String("state_file", "", "path to the world snapshot file (empty disables persistence)")
		savePeriod     = flag.Duration("save_state_period", 0, "how often to save the world snapshot while running (0 disables periodic saves; state_file is still saved once on shutdown)")
		dbPoolSize     = flag.Int("db_pool_size", 0, "scoreboard connection pool size (0 uses the tuning file value, falling back to runtime.NumCPU())")
	)
	flag.StringVar(configFile, "c", "", "shorthand for -config_file")
	flag.StringVar(configFile, "config-file", "", "alias for -config_file")
	flag.StringVar(stateFile, "state-file", "", "alias for -state_file")
	flag.Parse()

	if *configFile == "" {
		fmt.Fprintln(os.Stderr, "gameserver: -config_file is required")
		os.Exit(2)
	}

	logger := log.New(os.Stdout, "[gameserver] ", log.LstdFlags|log.Lmicroseconds)

	dbURL := os.Getenv("GAME_DB_URL")
	if dbURL == "" {
		logger.Fatal("GAME_DB_URL must be set to the scoreboard's sqlite DSN")
	}

	tune, err := tuning.Load(*tuningFile)
	if err != nil {
		logger.Fatalf("load tuning: %v", err)
	}

	result, err := configio.LoadFile(*configFile)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if tune.DefaultBagCapacity > 0 {
		for _, m := range result.Maps {
			if m.BagCapacity == configio.DefaultBagCapacityFallback {
				m.BagCapacity = tune.DefaultBagCapacity
			}
		}
	}

	poolSize := *dbPoolSize
	if poolSize <= 0 {
		poolSize = tune.DBPoolSize
	}
	if poolSize <= 0 {
		poolSize = runtime.NumCPU()
	}

	store, err := scoreboard.Open(dbURL, poolSize)
	if err != nil {
		logger.Fatalf("open scoreboard: %v", err)
	}
	defer store.Close()

	w := world.NewWorld(result.Catalog, store, *randomizeSpawn)
	for _, m := range result.Maps {
		if err := w.AddMap(m); err != nil {
			logger.Fatalf("add map: %v", err)
		}
	}
	switch {
	case tune.DogRetirementTimeMs > 0:
		w.SetRetirementThreshold(tune.Retirement())
	case result.Retirement > 0:
		w.SetRetirementThreshold(result.Retirement)
	}

	if *stateFile != "" {
		if err := snapshot.Read(*stateFile, w); err != nil {
			logger.Fatalf("load snapshot: %v", err)
		}
	}

	s := strand.New(w, *tickPeriod, logger)
	if *stateFile != "" && *savePeriod > 0 {
		w.AddListener(snapshot.NewListener(*stateFile, *savePeriod, w, logger))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go s.Run(ctx)

	externalTick := *tickPeriod <= 0
	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.NewServer(w, s, logger, *wwwRoot, externalTick).Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Printf("ListenAndServe: %v", err)
	}

	if *stateFile != "" {
		if err := snapshot.Write(*stateFile, w); err != nil {
			logger.Printf("final snapshot save failed: %v", err)
		}
	}
}
