// Todo list kept behind a bus: every operation is a call, the state lives in
// the listeners.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RidgeA/combus"
	"github.com/RidgeA/combus/internal/config"
)

type Todo struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type store struct {
	mu    sync.Mutex
	todos []Todo
}

func (s *store) snapshot() []Todo {
	return append([]Todo(nil), s.todos...)
}

func register(bus *combus.Bus, s *store, opts ...combus.HandlerOptionsFunc) error {
	listeners := []error{
		combus.ListenAs(bus, "get", func(context.Context, interface{}) (interface{}, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.snapshot(), nil
		}, opts...),
		combus.ListenAs(bus, "add", func(_ context.Context, todo Todo) (interface{}, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.todos = append(s.todos, todo)
			return s.snapshot(), nil
		}, opts...),
		combus.ListenAs(bus, "toggle", func(_ context.Context, id int) (interface{}, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i := range s.todos {
				if s.todos[i].ID == id {
					s.todos[i].Completed = !s.todos[i].Completed
				}
			}
			return s.snapshot(), nil
		}, opts...),
		combus.ListenAs(bus, "remove", func(_ context.Context, id int) (interface{}, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			rest := s.todos[:0]
			for _, todo := range s.todos {
				if todo.ID != id {
					rest = append(rest, todo)
				}
			}
			s.todos = rest
			return s.snapshot(), nil
		}, opts...),
	}
	return errors.Join(listeners...)
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (optional)")
	flag.Parse()

	log.SetFlags(log.Lshortfile | log.LstdFlags)

	cfg, err := config.LoadFromPath(*configPath)
	if err != nil {
		log.Fatalf("todo: %v", err)
	}

	registry := prometheus.NewRegistry()
	opts := append(cfg.Options(log.Printf), combus.SetMetrics(registry))

	bus, err := combus.New(opts...)
	if err != nil {
		log.Fatalf("todo: %v", err)
	}
	defer bus.Shutdown()

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(cfg.MetricsAddress, mux); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	if err := register(bus, &store{}, cfg.HandlerOptions()...); err != nil {
		log.Fatalf("todo: %v", err)
	}

	ctx := context.Background()
	steps := []struct {
		eventType string
		payload   interface{}
	}{
		{"add", Todo{ID: 0, Name: "foo"}},
		{"add", Todo{ID: 1, Name: "bar"}},
		{"add", Todo{ID: 2, Name: "baz"}},
		{"toggle", 2},
		{"remove", 0},
		{"remove", 1},
	}
	for _, step := range steps {
		if _, err := bus.Call(ctx, step.eventType, step.payload); err != nil {
			log.Fatalf("todo: %s: %v", step.eventType, err)
		}
	}

	todos, err := combus.CallAs[[]Todo](ctx, bus, "get", nil)
	if err != nil {
		log.Fatalf("todo: %v", err)
	}
	for _, todo := range todos {
		fmt.Printf("%d %s completed=%t\n", todo.ID, todo.Name, todo.Completed)
	}
}
