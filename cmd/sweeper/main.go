package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amaraspa/spa-scheduler/internal/config"
	dbpkg "github.com/amaraspa/spa-scheduler/internal/db"
	infraRepo "github.com/amaraspa/spa-scheduler/internal/infra/repository"
	"github.com/amaraspa/spa-scheduler/internal/timezone"
	ucAppointment "github.com/amaraspa/spa-scheduler/internal/usecase/appointment"
)

// The sweeper purges temporary appointments whose payment hold lapsed,
// so an unconfirmed booking never permanently consumes a room.
func main() {

	cfg := config.Load()
	timezone.Configure(cfg.Timezone)

	db := dbpkg.NewDB(cfg)
	repo := infraRepo.NewAppointmentGormRepository(db)
	expireUC := ucAppointment.NewExpireTemporary(repo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interval := time.Duration(cfg.SweepIntervalMin) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("sweeper running, interval %s", interval)

	for {
		select {
		case <-ticker.C:
			purged, err := expireUC.Execute(ctx)
			if err != nil {
				log.Printf("sweep error: %v", err)
				continue
			}
			if purged > 0 {
				log.Printf("purged %d expired temporary appointments", purged)
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
