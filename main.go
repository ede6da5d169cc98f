package main

import (
	"time"

	"github.com/ubg-fkdk/portal/config"
	"github.com/ubg-fkdk/portal/models"
	"github.com/ubg-fkdk/portal/routes"
	"github.com/ubg-fkdk/portal/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db := config.InitDatabase(models.All()...)
	utils.InitRedis(cfg)

	store := routes.NewStorage(cfg)
	if err := store.Ensure(); err != nil {
		// handlers retry on every upload, so keep serving reads
		utils.Sugar.Errorf("public directories not ready: %v", err)
	}

	r := routes.SetupRouter(db, cfg)

	utils.StartOrphanSweeper(db, store.SweepTargets(),
		time.Duration(cfg.OrphanSweepMinutes)*time.Minute,
		time.Duration(cfg.OrphanGraceMinutes)*time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
