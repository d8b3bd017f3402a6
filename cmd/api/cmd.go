package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/ledgerpro/internal/bootstrap"
	"github.com/GregMSThompson/ledgerpro/internal/config"
	"github.com/GregMSThompson/ledgerpro/internal/crypto"
	"github.com/GregMSThompson/ledgerpro/internal/handlers"
	"github.com/GregMSThompson/ledgerpro/internal/middleware"
	"github.com/GregMSThompson/ledgerpro/internal/response"
	"github.com/GregMSThompson/ledgerpro/internal/router"
	"github.com/GregMSThompson/ledgerpro/internal/services"
	"github.com/GregMSThompson/ledgerpro/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// helpers
	kmsHelper := crypto.NewKMS(bs.KMS, cfg.KMSKeyName)
	hasher := crypto.NewPasswordHasher(cfg.BcryptCost)
	sessions, err := crypto.NewSessionIssuer(bs.SigningKey)
	exitOnError("session issuer failed", err, bs.Log)

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	acstore := store.NewAccountStore(bs.Firestore)
	tstore := store.NewTransactionStore(bs.Firestore)
	gstore := store.NewGoalStore(bs.Firestore)
	rstore := store.NewReminderStore(bs.Firestore)

	// services
	idserv := services.NewIdentityService(ustore, hasher, sessions, kmsHelper, nil)
	if bs.Firebase != nil {
		idserv = services.NewIdentityService(ustore, hasher, sessions, kmsHelper, bs.Firebase)
	}
	lserv := services.NewLedgerService(ustore, acstore, tstore, gstore)
	acserv := services.NewAccountService(acstore)
	gserv := services.NewGoalService(gstore, acstore)
	rserv := services.NewReminderService(rstore, acstore)
	sserv := services.NewSyncService(acstore, tstore)

	// response handler
	rh := response.New()

	// dependancies
	deps := new(handlers.Deps)
	deps.ResponseHandler = rh
	deps.IdentitySvc = idserv
	deps.LedgerSvc = lserv
	deps.AccountSvc = acserv
	deps.GoalSvc = gserv
	deps.ReminderSvc = rserv
	deps.SyncSvc = sserv

	mw := middleware.NewMiddleware(idserv, idserv, rh)

	// router
	r := router.NewRouter(bs.Log, deps, mw)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	bs.Log.Info("server listening", "port", cfg.Port)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return
	}
	exitOnError("server start failed", err, bs.Log)
}
