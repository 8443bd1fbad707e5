// Command authorizer is the API Gateway token authorizer.
package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"expense-tracker-api/internal/auth"
	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/handlers"
	"expense-tracker-api/internal/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	tokens := auth.NewTokenCodec(cfg.JWT.Secret, cfg.TokenTTL())
	h := handlers.NewHandlers(nil, tokens, cfg.AllowedOrigin(), logger)

	lambda.Start(h.Authorize)
}
