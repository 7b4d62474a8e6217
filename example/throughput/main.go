package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/RidgeA/combus"
)

func main() {
	log.SetFlags(log.Lshortfile | log.LstdFlags)

	bus, err := combus.New(combus.SetName("test"))
	if err != nil {
		log.Fatal(err.Error())
	}
	defer bus.Shutdown()

	err = bus.ListenFunc("write", func(_ context.Context, e *combus.Envelope) (interface{}, error) {
		return combus.Defer(func(context.Context) (interface{}, error) {
			time.Sleep(500 * time.Millisecond)
			fmt.Printf("%s: server log: %v\n", time.Now().Format("15:04:05.999999"), e.Payload)
			return nil, nil
		}), nil
	}, combus.SetHandlerThroughput(2))
	if err != nil {
		log.Fatal(err.Error())
	}

	pending := make([]*combus.Pending, 0, 10)
	for i := 0; i < 10; i++ {
		p, err := bus.Dispatch(context.Background(), "write", strconv.Itoa(i)+":hello!")
		if err != nil {
			log.Fatal(err.Error())
		}
		pending = append(pending, p)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, p := range pending {
		if _, err := p.Wait(ctx); err != nil {
			log.Fatal(err.Error())
		}
	}
}
