// Command mqinspect is a small diagnostic tool for smoke-testing a
// running broker by hand: it subscribes to one topic, publishes one
// message to it, prints whatever comes back for a bounded window, and
// exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tfitzpatrick0/mqgo/pkg/mq"
)

func main() {
	var (
		port    = flag.String("p", "8080", "broker port")
		host    = flag.String("h", "localhost", "broker host")
		name    = flag.String("n", os.Getenv("USER"), "client name (defaults to $USER)")
		topic   = flag.String("t", "mqinspect", "topic to subscribe and publish to")
		body    = flag.String("m", "ping from mqinspect", "message body to publish")
		window  = flag.Duration("window", 3*time.Second, "how long to wait for a reply before exiting")
		verbose = flag.Bool("v", false, "log at debug level")
	)
	flag.Parse()

	if *name == "" {
		log.Fatal("mqinspect: -n NAME required (or set $USER)")
	}

	level := mq.LogLevelInfo
	if *verbose {
		level = mq.LogLevelDebug
	}
	logger := mq.NewLogrusLogger(level, logrus.StandardLogger())

	cl := mq.NewClient(*name, *host, *port, mq.WithLogger(logger))
	cl.Subscribe(*topic)
	cl.Start()
	defer func() {
		cl.Stop()
		if err := cl.Close(); err != nil {
			log.Printf("mqinspect: close: %v", err)
		}
	}()

	cl.Publish(*topic, *body)

	ctx, cancel := context.WithTimeout(context.Background(), *window)
	defer cancel()

	for {
		got, ok := cl.Retrieve(ctx)
		if !ok {
			fmt.Println("mqinspect: no more messages, exiting")
			return
		}
		fmt.Printf("mqinspect: received %q\n", got)
	}
}
