package handler

import (
	"clinic/config"
	"clinic/di"
	"clinic/shared/logger"
	server "clinic/transport/http"
	"clinic/transport/http/response"
	"net/http"
	"sync"
)

var (
	once    sync.Once
	service *server.HTTP
	initErr error
)

// Handler is the serverless entrypoint. The dependency graph is built on the
// first invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		service, initErr = di.InitializeService()
	})

	if initErr != nil {
		response.WithError(w, initErr)

		return
	}

	service.ServeHTTP(w, r)
}
