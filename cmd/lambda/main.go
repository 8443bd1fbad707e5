// Command lambda is the API function: every proxied route is dispatched
// from this single handler.
package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"expense-tracker-api/internal/auth"
	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/handlers"
	"expense-tracker-api/internal/logging"
	"expense-tracker-api/internal/service"
	"expense-tracker-api/internal/storage"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	// The handle connects on the first invocation and is reused by warm ones.
	db := storage.NewHandle(cfg.Database, logger)
	tokens := auth.NewTokenCodec(cfg.JWT.Secret, cfg.TokenTTL())
	h := handlers.NewHandlers(service.New(db, tokens, logger), tokens, cfg.AllowedOrigin(), logger)

	lambda.Start(h.Dispatch)
}
