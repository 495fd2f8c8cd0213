package http

import (
	"net/http"

	"entwine/internal/auth"
	"entwine/internal/collision"
	"entwine/internal/config"
	"entwine/internal/http/handler"
	mw "entwine/internal/http/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, engine *collision.Engine, sched *collision.Scheduler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: db, JWT: jwtSvc}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{DB: db}
	r.With(auth.RequireAuth(jwtSvc)).Get("/me", me.Me)
	r.With(auth.RequireAuth(jwtSvc)).Patch("/me/settings", me.UpdateSettings)

	connH := &handler.ConnectionHandler{Store: &collision.Store{DB: db}}
	detectH := &handler.DetectHandler{Engine: engine, Scheduler: sched}

	r.Route("/connections", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Get("/", connH.Graph)
		r.Get("/{userID}/events", connH.SharedEvents)
	})

	r.Route("/detect", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Post("/", detectH.Trigger)
		r.Get("/status", detectH.Status)
	})

	return r
}
