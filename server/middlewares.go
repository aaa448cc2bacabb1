package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Daskott/sosrelay/colors"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type ResponseWriterWithStatus struct {
	http.ResponseWriter
	Status int
}

func (r *ResponseWriterWithStatus) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func newRouter(h *handler) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/sendSOS", h.sendSOS).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/check", h.check).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/addContacts", h.addContacts).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/getContacts", h.getContacts).Methods(http.MethodGet, http.MethodOptions)

	router.Use(loggingMiddleware(h.logg))
	router.Use(mux.CORSMethodMiddleware(router))
	router.Use(corsMiddleware)
	router.Use(jsonContentTypeMiddleware)

	return router
}

func loggingMiddleware(logg *zap.SugaredLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			responseWriter := &ResponseWriterWithStatus{
				ResponseWriter: w,
				Status:         200,
			}

			defer func() {
				logg.Info(
					r.Method, " ",
					r.RequestURI, " ",
					colors.Status(responseWriter.Status), " ",
					colors.Yellow(fmt.Sprintf("[%v]", time.Since(start))))
			}()

			next.ServeHTTP(responseWriter, r)
		})
	}
}

// corsMiddleware allows requests from any origin & answers preflight requests.
// Allowed methods are set by mux.CORSMethodMiddleware.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
