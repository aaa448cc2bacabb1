package server

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Daskott/sosrelay/utils"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func (h *handler) writeResponse(rw http.ResponseWriter, payLoad ResponsePayload, statusCode int) {
	if statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError {
		h.logg.Info(payLoad.Error)
	}

	h.writeJSON(rw, payLoad, statusCode)
}

func (h *handler) writeJSON(rw http.ResponseWriter, payLoad interface{}, statusCode int) {
	rw.WriteHeader(statusCode)
	if err := json.NewEncoder(rw).Encode(payLoad); err != nil {
		h.logg.Errorf("writeJSON: %v", err)
	}
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server, logg *zap.SugaredLogger) {
	logg.Infof("SOS relay server is listening on port%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(server *http.Server, scheduler *gocron.Scheduler, onStop []func() error, logg *zap.SugaredLogger) {
	// Stop scheduled jobs before the final backup & store shutdown
	scheduler.Stop()

	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Errorf("SOS relay server shutdown failed:%+s", err)
	}

	for _, stop := range onStop {
		if err := stop(); err != nil {
			logg.Error(err)
		}
	}

	logg.Infof("SOS relay server stopped properly")
}

// ConfigDirectory retrieves the directory used to store the sqlite db
func ConfigDirectory(devMode bool) (string, error) {
	// Use 'sosrelay' folder in home directory for prod
	configFolderName := "sosrelay"
	rootDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	// Use 'dev' folder in current directory for dev mode
	if devMode {
		configFolderName = "dev"
		rootDir, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}

	configDir := filepath.Join(rootDir, configFolderName)

	err = utils.CreateDirIfNotExist(configDir)
	if err != nil {
		return "", err
	}

	return configDir, nil
}
