package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/club-budget-server/internal/handlers/v1/club"
	"github.com/carson-networks/club-budget-server/internal/handlers/v1/receipt"
	"github.com/carson-networks/club-budget-server/internal/handlers/v1/status"
	"github.com/carson-networks/club-budget-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/club-budget-server/internal/logging"
	"github.com/carson-networks/club-budget-server/internal/service"
	"github.com/carson-networks/club-budget-server/internal/storage"
)

const shutdownTimeout = 15 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Storage storage.Backend
}

// Handler builds the router: the plain status probe plus the Huma v1 API.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Club Budget API", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	club.NewCreateClubHandler(r.Service.Club).Register(api)
	club.NewGetClubHandler(r.Service.Club).Register(api)
	club.NewListClubsHandler(r.Service.Club).Register(api)
	club.NewSetBudgetHandler(r.Service.Club).Register(api)

	transaction.NewRecordTransactionHandler(r.Service.Ledger).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(api)
	transaction.NewUpdateTransactionHandler(r.Service.Ledger).Register(api)
	transaction.NewDeleteTransactionHandler(r.Service.Ledger).Register(api)

	receipt.NewExtractHandler(r.Service.Receipt).Register(api)
	receipt.NewScanHandler(r.Service.Receipt).Register(api)

	return mux
}

// Serve listens until ctx is done, then shuts the server down gracefully.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
