// Command feedwatch subscribes to a running cubefield placement feed and
// logs every event it receives.
package main

import (
	"context"
	"flag"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"

	"cubefield/feed"
)

var addr = flag.String("addr", "localhost:8080", "feed service address")

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/feed"}
	log.Printf("connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		recv(conn, func(ev feed.Event) {
			log.Println(ev)
		})
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Println("interrupt")

		// Ask the server to close, then wait (with timeout) for it to do so.
		err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("write close:", err)
			return
		}
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func recv(conn *websocket.Conn, f func(feed.Event)) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Println("read:", err)
			return
		}
		events, err := feed.Decode(message)
		if err != nil {
			log.Println("decode:", err)
			continue
		}
		for _, ev := range events {
			f(ev)
		}
	}
}
