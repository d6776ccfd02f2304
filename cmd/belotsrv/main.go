// Command belotsrv is the process entrypoint: it opens the sqlite Store and
// builds the in-process Broadcaster and the Session Manager (the Manager is
// not given the Store and persists nothing), runs the idle reaper once a
// minute, and blocks until an interrupt or termination signal arrives.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decred/slog"

	"github.com/bela4us/belotsrv/internal/broadcast"
	"github.com/bela4us/belotsrv/internal/session"
	"github.com/bela4us/belotsrv/internal/store/sqlite"
)

func main() {
	var (
		dbPath     string
		debugLevel string
		seed       int64
	)
	flag.StringVar(&dbPath, "db", "", "Path to SQLite database file (created if missing)")
	flag.StringVar(&debugLevel, "debuglevel", "info", "Logging level: trace, debug, info, warn, error")
	flag.Int64Var(&seed, "seed", 0, "Deterministic RNG seed (0 = time-seeded)")
	flag.Parse()

	if dbPath == "" {
		dbPath = fmt.Sprintf("%s/belotsrv.sqlite", os.TempDir())
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	backend := slog.NewBackend(os.Stdout)
	log := backend.Logger("BELOTSRV")
	level, err := slog.LevelFromString(debugLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	log.SetLevel(level)

	db, err := sqlite.Open(dbPath)
	if err != nil {
		log.Errorf("failed to open database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	bc := broadcast.NewInProcess(backend.Logger("BROADCAST"))
	manager := session.NewManager(session.DefaultConfig(), backend.Logger("SESSION"), rand.New(rand.NewSource(seed)), nil, bc)

	reapTicker := time.NewTicker(time.Minute)
	defer reapTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	log.Infof("belotsrv started, db=%s seed=%d", dbPath, seed)

	for {
		select {
		case <-reapTicker.C:
			disposed := manager.ReapIdleRooms()
			released := manager.ReleaseCompletedGames()
			if disposed > 0 || released > 0 {
				log.Infof("reaper: disposed %d idle rooms, released %d completed games", disposed, released)
			}
		case sig := <-sigCh:
			log.Infof("received %s, shutting down", sig)
			return
		}
	}
}
