// cmd/sendtest/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/nubac/wasender-backend/internal/config"
	"github.com/nubac/wasender-backend/internal/gateway"
)

// One-off manual send for verifying Twilio credentials and the sender
// identity. Takes explicit parameters, nothing hard-coded.
func main() {
	to := flag.String("to", "", "recipient phone in E.164 format (required)")
	body := flag.String("body", "Prueba Nubac ✅", "message body")
	media := flag.String("media", "", "optional media URL")
	flag.Parse()

	if *to == "" {
		log.Fatal("missing -to")
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gw := gateway.NewTwilioGateway(cfg.SID, cfg.Token, cfg.From)

	res, err := gw.Send(context.Background(), gateway.Message{
		To:       *to,
		Body:     *body,
		MediaURL: *media,
	})
	if err != nil {
		log.Fatal("send failed: ", err)
	}

	fmt.Printf("sent: sid=%s status=%s\n", res.SID, res.Status)
}
