// Dependency injection container built from two listeners.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/RidgeA/combus"
)

type (
	Factory func(args ...int) Summer

	Summer interface {
		Sum() int
	}

	injectRequest struct {
		name    string
		factory Factory
	}

	instanceRequest struct {
		name string
		args []int
	}

	pair struct{ a, b int }

	list []int
)

func (p pair) Sum() int { return p.a + p.b }

func (l list) Sum() int {
	s := 0
	for _, v := range l {
		s += v
	}
	return s
}

func main() {
	log.SetFlags(log.Lshortfile | log.LstdFlags)

	bus, err := combus.New()
	if err != nil {
		log.Fatal(err.Error())
	}
	defer bus.Shutdown()

	// handlers run one at a time on the bus task queue
	injectables := make(map[string]Factory)

	err = combus.ListenAs(bus, "inject", func(_ context.Context, r injectRequest) (interface{}, error) {
		if _, ok := injectables[r.name]; ok {
			return fmt.Errorf("injectable %s is already registered", r.name), nil
		}
		injectables[r.name] = r.factory
		return nil, nil
	})
	if err != nil {
		log.Fatal(err.Error())
	}

	err = combus.ListenAs(bus, "getInstance", func(_ context.Context, r instanceRequest) (interface{}, error) {
		factory, ok := injectables[r.name]
		if !ok {
			return fmt.Errorf("injectable %s is not registered", r.name), nil
		}
		return factory(r.args...), nil
	})
	if err != nil {
		log.Fatal(err.Error())
	}

	ctx := context.Background()
	for _, r := range []injectRequest{
		{name: "Pair", factory: func(args ...int) Summer { return pair{args[0], args[1]} }},
		{name: "List", factory: func(args ...int) Summer { return list(args) }},
	} {
		if _, err := bus.Call(ctx, "inject", r); err != nil {
			log.Fatal(err.Error())
		}
	}

	for _, r := range []instanceRequest{
		{name: "Pair", args: []int{5, 10}},
		{name: "List", args: []int{1, 2, 3, 4}},
		{name: "Missing"},
	} {
		reply, err := bus.Call(ctx, "getInstance", r)
		if err != nil {
			log.Fatal(err.Error())
		}
		switch v := reply.Payload.(type) {
		case Summer:
			fmt.Printf("%s sum: %d\n", r.name, v.Sum())
		case error:
			fmt.Printf("%s: %s\n", r.name, v)
		}
	}
}
