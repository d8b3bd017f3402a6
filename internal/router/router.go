package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/ledgerpro/internal/handlers"
	"github.com/GregMSThompson/ledgerpro/internal/middleware"
)

func NewRouter(log *slog.Logger, deps *handlers.Deps, mw *middleware.Middleware) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/", health)

	ah := handlers.NewAuthHandlers(deps)
	uh := handlers.NewUserHandlers(deps)
	lh := handlers.NewLedgerHandlers(deps)
	ach := handlers.NewAccountHandlers(deps)
	gh := handlers.NewGoalHandlers(deps)
	rmh := handlers.NewReminderHandlers(deps)
	sh := handlers.NewSyncHandlers(deps)

	r.Mount("/api/auth", ah.AuthRoutes())

	r.Route("/api/user", func(r chi.Router) {
		r.Use(mw.SessionAuth)
		r.Get("/api-key", uh.GetAPIKey)
		r.Post("/api-key", uh.RotateAPIKey)
		r.Get("/dashboard-data", lh.GetDashboard)
		r.Mount("/transactions", lh.TransactionRoutes())
		r.Mount("/accounts", ach.AccountRoutes())
		r.Mount("/goals", gh.GoalRoutes())
		r.Mount("/reminders", rmh.ReminderRoutes())
	})

	r.Route("/api/sync", func(r chi.Router) {
		r.Use(mw.APIKeyAuth)
		r.Post("/transactions", sh.ImportTransactions)
	})

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ledgerpro api is running"))
}
