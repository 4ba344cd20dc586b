package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	s := NewServer()

	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// ACARS clients post from a desktop webview, so the CORS surface has
	// to stay wide open.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", s.Index)
	r.Route("/api", func(r chi.Router) {
		// index
		r.Get("/", s.Index)
		r.Get("/health", s.Health)

		r.Route("/acars", func(r chi.Router) {
			r.Options("/pirep", s.Preflight)
			r.Post("/pirep", s.SubmitPirep)
		})

		// pilots
		r.Route("/pilots", func(r chi.Router) {
			r.Get("/{pilotId}", s.GetPilot)
			r.Get("/{pilotId}/flights/active", s.GetPilotActiveFlight)
		})

		// fleet
		r.Route("/fleet", func(r chi.Router) {
			r.Get("/", s.GetFleet)
			r.Get("/{registration}", s.GetFleetAircraft)
		})
	})

	logrus.WithField("addr", s.config.ListenAddr).Info("listening")
	logrus.Fatal(http.ListenAndServe(s.config.ListenAddr, r))
}
