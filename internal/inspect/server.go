// Package inspect serves a frozen, post-run snapshot of a simulation over
// HTTP for offline debugging. It is deliberately read-only and starts after
// the simulator has already reached EOF: the Non-goals exclude
// concurrent clients mutating simulation state, and this package never
// does -- the snapshot on disk is immutable by the time anything here reads
// it.
//
// Grounded on server/server.go's router/handler shape, repointed at a
// bakery.Snapshot instead of a live kitchen.
package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/fx"

	"github.com/pastryforge/pastryforge/internal/bakery"
)

// Server is a read-only HTTP front-end over one loaded Snapshot.
type Server struct {
	router   *mux.Router
	server   *http.Server
	snapshot bakery.Snapshot
	port     int
}

// Config holds the listen port; port 0 defaults to 8090.
type Config struct {
	Port int
}

func (c Config) withDefaults() Config {
	if c.Port == 0 {
		c.Port = 8090
	}
	return c
}

// LoadSnapshot reads a bakery.Snapshot previously written by --snapshot.
func LoadSnapshot(path string) (bakery.Snapshot, error) {
	var s bakery.Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing snapshot: %w", err)
	}
	return s, nil
}

// New builds a Server around an already-loaded snapshot.
func New(cfg Config, snapshot bakery.Snapshot) *Server {
	cfg = cfg.withDefaults()
	s := &Server{snapshot: snapshot, port: cfg.Port}
	s.router = mux.NewRouter()
	s.router.HandleFunc("/recipes", s.RecipesHandler).Methods("GET")
	s.router.HandleFunc("/warehouse", s.WarehouseHandler).Methods("GET")
	s.router.HandleFunc("/orders", s.OrdersHandler).Methods("GET")
	s.router.HandleFunc("/health", s.HealthHandler).Methods("GET")
	s.server = &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", cfg.Port),
		Handler: s.router,
	}
	return s
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
}

func (s *Server) RecipesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.snapshot.Recipes)
}

func (s *Server) WarehouseHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.snapshot.Ingredients)
}

type ordersResponse struct {
	Ready   []bakery.OrderSnapshot `json:"ready"`
	Waiting []bakery.OrderSnapshot `json:"waiting"`
}

func (s *Server) OrdersHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, ordersResponse{Ready: s.snapshot.ReadyOrders, Waiting: s.snapshot.WaitingOrders})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	bytes, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(bytes)
}

// Start wires the server's listen/close pair into an fx lifecycle, the same
// OnStart/OnStop shape server.Start uses.
func Start(lifecycle fx.Lifecycle, s *Server) error {
	lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go s.server.ListenAndServe()
			fmt.Printf("inspect server listening on %d\n", s.port)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.server.Shutdown(ctx)
		},
	})
	return nil
}
