package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/shiftcoach/shiftcoach-api/docs"
	"github.com/shiftcoach/shiftcoach-api/internal/api/handler"
	"github.com/shiftcoach/shiftcoach-api/internal/api/middleware"
)

type Router struct {
	userHandler     *handler.UserHandler
	sleepHandler    *handler.SleepHandler
	shiftHandler    *handler.ShiftHandler
	activityHandler *handler.ActivityHandler
	scoreHandler    *handler.ScoreHandler
	coachHandler    *handler.CoachHandler
	logger          zerolog.Logger
}

func NewRouter(
	userHandler *handler.UserHandler,
	sleepHandler *handler.SleepHandler,
	shiftHandler *handler.ShiftHandler,
	activityHandler *handler.ActivityHandler,
	scoreHandler *handler.ScoreHandler,
	coachHandler *handler.CoachHandler,
	logger zerolog.Logger,
) *Router {
	return &Router{
		userHandler:     userHandler,
		sleepHandler:    sleepHandler,
		shiftHandler:    shiftHandler,
		activityHandler: activityHandler,
		scoreHandler:    scoreHandler,
		coachHandler:    coachHandler,
		logger:          logger,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.RequestLogger(rt.logger))
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)

			r.Route("/{userId}", func(r chi.Router) {
				r.Get("/", rt.userHandler.GetByID)
				r.Patch("/", rt.userHandler.Update)

				r.Route("/sleep-sessions", func(r chi.Router) {
					r.Post("/", rt.sleepHandler.Create)
					r.Get("/", rt.sleepHandler.List)
					r.Patch("/{sessionId}", rt.sleepHandler.Update)
					r.Delete("/{sessionId}", rt.sleepHandler.Delete)
				})

				r.Route("/shifts", func(r chi.Router) {
					r.Get("/", rt.shiftHandler.List)
					r.Put("/{date}", rt.shiftHandler.Upsert)
					r.Get("/{date}", rt.shiftHandler.GetByDate)
					r.Delete("/{date}", rt.shiftHandler.Delete)
				})

				r.Route("/activity", func(r chi.Router) {
					r.Put("/{date}", rt.activityHandler.Upsert)
					r.Get("/{date}", rt.activityHandler.GetByDate)
				})

				r.Route("/scores", func(r chi.Router) {
					r.Get("/overview", rt.scoreHandler.Overview)
					r.Get("/sleep-deficit", rt.scoreHandler.SleepDeficit)
					r.Get("/social-jetlag", rt.scoreHandler.SocialJetlag)
					r.Get("/shift-lag", rt.scoreHandler.ShiftLag)
					r.Get("/shift-rhythm", rt.scoreHandler.ShiftRhythm)
					r.Get("/binge-risk", rt.scoreHandler.BingeRisk)
					r.Get("/activity", rt.scoreHandler.Activity)
				})

				r.Route("/coach", func(r chi.Router) {
					r.Get("/weekly-summary", rt.coachHandler.WeeklySummary)
					r.Post("/feedback", rt.coachHandler.Feedback)
				})
			})
		})
	})

	return r
}
