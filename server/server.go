package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Daskott/sosrelay/server/cron"
	"github.com/Daskott/sosrelay/server/logger"
	"github.com/Daskott/sosrelay/server/sos"
	"github.com/Daskott/sosrelay/server/twilio"
	"github.com/Daskott/sosrelay/shared"
)

func Start(config *shared.ServerConfig, devMode bool) {
	var backup *sqliteBackup
	var err error

	logg := logger.NewLogger()
	ctx := context.Background()

	if config.Store.Driver == shared.SQLITE_STORE && config.Google.Storage.EnableSqliteBackup {
		dbRootDir, err := SqliteRootDir(config, devMode)
		if err != nil {
			logg.Fatal(err)
		}

		backup, err = newSqliteBackup(ctx, config, dbRootDir, logg)
		if err != nil {
			logg.Fatal(err)
		}

		if err = backup.restore(ctx); err != nil {
			logg.Fatal(err)
		}
	}

	store, closeStore, err := OpenContactStore(ctx, config, devMode)
	if err != nil {
		logg.Fatal(err)
	}
	logg.Infof("Using '%v' contact store", config.Store.Driver)

	if backup != nil {
		backup.watch(store)
	}

	scheduler := cron.NewCronScheduler(config.Cron.TimeZone)
	if err = registerJobs(scheduler, backup); err != nil {
		logg.Fatal(err)
	}

	sender := twilio.NewClient(config.Twilio, devMode, logg)
	dispatcher := sos.NewDispatcher(store, sender, config.Twilio.PhoneNumber, logg)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%v", config.Listener.Port),
		Handler: newRouter(newHandler(dispatcher, store, logg)),
	}

	onStop := []func() error{closeStore}
	if backup != nil {
		onStop = append(onStop, backup.close)
	}

	scheduler.StartAsync()
	go serve(server, logg)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cleanup(server, scheduler, onStop, logg)
}
