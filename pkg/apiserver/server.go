package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/driftdns/resolver-dns/pkg/backend"
	"github.com/driftdns/resolver-dns/pkg/version"
	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type apiServer struct {
	ctx           context.Context
	log           *logrus.Entry
	port          int
	authTokenHash string
}

func NewAPIServer(ctx context.Context, log *logrus.Entry, port int, authTokenHash string) *apiServer {
	return &apiServer{
		ctx:           ctx,
		log:           log,
		port:          port,
		authTokenHash: authTokenHash,
	}
}

func (a *apiServer) router(b backend.Backend) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(loggingMiddleware(a.log))
	h := newHandler(b)

	router.Path("/").Methods(http.MethodGet).HandlerFunc(h.root)
	router.Path("/health").Methods(http.MethodGet).HandlerFunc(h.health)

	api := router.PathPrefix("/resolvers").Subrouter()
	if a.authTokenHash != "" {
		api.Use(tokenAuthMiddleware(a.authTokenHash))
	}

	api.Path("").Methods(http.MethodGet).HandlerFunc(h.listResolvers)
	api.Path("").Methods(http.MethodPost).HandlerFunc(h.createResolver)
	api.Path("/{id}").Methods(http.MethodGet).HandlerFunc(h.getResolver)
	api.Path("/{id}").Methods(http.MethodPut, http.MethodPatch).HandlerFunc(h.updateResolver)
	api.Path("/{id}").Methods(http.MethodDelete).HandlerFunc(h.deleteResolver)

	// Note: this allows not found urls to be logged via the middleware.
	// It **HAS** to be defined after all other paths are defined.
	router.NotFoundHandler = router.NewRoute().HandlerFunc(h.notFound).GetHandler()

	return router
}

func (a *apiServer) Start(b backend.Backend) error {
	logrus.Infof("Version: %s", version.Get())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.port),
		Handler: ghandlers.CORS()(a.router(b)),
	}

	go func() {
		a.log.WithField("port", a.port).Info("starting api server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Fatalf("listen: %s\n", err)
		}
	}()

	<-a.ctx.Done()

	a.log.Info("shutting down the api server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		a.log.WithError(err).Error("unable to shutdown the api server gracefully")
		return err
	}

	return nil
}
