package main

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"skyops"

	"github.com/go-chi/chi/v5"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/sirupsen/logrus"
)

type Server struct {
	config skyops.Config
	dbPool *pgxpool.Pool
	rng    *rand.Rand
}

func NewServer() Server {
	config, err := skyops.LoadConfig()
	if err != nil {
		logrus.Fatalf("Unable to load app config: %s", err)
	}

	mig, err := migrate.New("file://migrations", config.PostgresUrl)
	if err != nil {
		logrus.Fatalf("Unable to prepare migrations: %s", err)
	}
	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logrus.Fatalf("Unable to run migrations: %s", err)
	}

	pool, err := pgxpool.Connect(context.Background(), config.PostgresUrl)
	if err != nil {
		logrus.Fatalf("Unable to connect to connect to database: %s", err)
	}

	return Server{
		config: config,
		dbPool: pool,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("SkyOps crew center API"))
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.dbPool.Ping(r.Context()); err != nil {
		writeJson(w, http.StatusServiceUnavailable, skyops.ErrorResponse{Error: "database unreachable"})
		return
	}
	writeJson(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Preflight answers webview OPTIONS probes before the report POST.
func (s *Server) Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) SubmitPirep(w http.ResponseWriter, r *http.Request) {
	var sub skyops.PirepSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJson(w, http.StatusBadRequest, skyops.ErrorResponse{Error: "malformed pilot report"})
		return
	}

	resp, err := skyops.SettlePirep(r.Context(), s.dbPool, s.config, sub, time.Now().UTC(), s.rng)
	if err != nil {
		var se *skyops.SettlementError
		if errors.As(err, &se) {
			logrus.WithError(err).WithField("pilotId", sub.PilotId).Warn("pilot report refused")
			writeJson(w, se.Status, skyops.ErrorResponse{Error: se.Message})
			return
		}
		logrus.WithError(err).WithField("pilotId", sub.PilotId).Error("settlement failed")
		writeJson(w, http.StatusInternalServerError, skyops.ErrorResponse{Error: "internal server error"})
		return
	}

	writeJson(w, http.StatusOK, resp)
}

func (s *Server) GetPilot(w http.ResponseWriter, r *http.Request) {
	pilot, err := skyops.GetPilot(r.Context(), s.dbPool, chi.URLParam(r, "pilotId"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJson(w, http.StatusNotFound, skyops.ErrorResponse{Error: "Pilot not found"})
			return
		}
		logrus.WithError(err).Error("unable to get pilot")
		http.Error(w, http.StatusText(500), http.StatusInternalServerError)
		return
	}
	writeJson(w, http.StatusOK, pilot)
}

// GetPilotActiveFlight reports the pilot's in-progress flight, if any.
func (s *Server) GetPilotActiveFlight(w http.ResponseWriter, r *http.Request) {
	pilot, err := skyops.GetPilot(r.Context(), s.dbPool, chi.URLParam(r, "pilotId"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJson(w, http.StatusNotFound, skyops.ErrorResponse{Error: "Pilot not found"})
			return
		}
		logrus.WithError(err).Error("unable to get pilot")
		http.Error(w, http.StatusText(500), http.StatusInternalServerError)
		return
	}

	flight, err := skyops.GetActiveFlight(r.Context(), s.dbPool, pilot.Id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJson(w, http.StatusNotFound, skyops.ErrorResponse{Error: "No active flight"})
			return
		}
		logrus.WithError(err).Error("unable to get active flight")
		http.Error(w, http.StatusText(500), http.StatusInternalServerError)
		return
	}
	writeJson(w, http.StatusOK, flight)
}

func (s *Server) GetFleet(w http.ResponseWriter, r *http.Request) {
	fleet, err := skyops.GetFleet(r.Context(), s.dbPool)
	if err != nil {
		logrus.WithError(err).Error("unable to get fleet")
		http.Error(w, http.StatusText(500), http.StatusInternalServerError)
		return
	}
	writeJson(w, http.StatusOK, fleet)
}

func (s *Server) GetFleetAircraft(w http.ResponseWriter, r *http.Request) {
	a, err := skyops.GetFleetAircraftByRegistration(r.Context(), s.dbPool, chi.URLParam(r, "registration"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJson(w, http.StatusNotFound, skyops.ErrorResponse{Error: "Aircraft not found"})
			return
		}
		logrus.WithError(err).Error("unable to get aircraft")
		http.Error(w, http.StatusText(500), http.StatusInternalServerError)
		return
	}
	writeJson(w, http.StatusOK, a)
}

func writeJson(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
