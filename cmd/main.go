package main

import (
	"log"

	"github.com/menna-17/backend-craftora/cmd/server"
	"github.com/menna-17/backend-craftora/internal/auth"
	"github.com/menna-17/backend-craftora/internal/config"
	"github.com/menna-17/backend-craftora/internal/mailer"
	"github.com/menna-17/backend-craftora/internal/features/payment"
	"github.com/menna-17/backend-craftora/internal/storage"
)

var (
	srvPort           = config.Env.ServerPort
	postgresConnStr   = config.Env.PostgresConnStr
	jwtSecret         = config.Env.JWTSecret
	tokenExpiryInSecs = config.Env.TokenExpiryInSecs
)

func main() {
	log.SetFlags(log.Ldate | log.Llongfile)

	if postgresConnStr == "" {
		log.Fatal("POSTGRES_CONN_STR is not set")
	}
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, err := storage.NewPostgresDB(postgresConnStr)
	if err != nil {
		log.Fatal(err)
	}

	srv := server.NewServer(&server.ServerConfig{
		Addr: srvPort,
		DB:   db,
		TokenManager: auth.NewTokenService(
			jwtSecret,
			tokenExpiryInSecs,
		),
		Mailer: mailer.New(
			config.Env.MailHost,
			config.Env.MailPort,
			config.Env.MailUser,
			config.Env.MailPass,
		),
		AllowedOrigins:   config.Env.AllowedOrigins,
		ContactRecipient: config.Env.ContactRecipient,
		Payment: &payment.ServiceConfig{
			SecretKey:     config.Env.StripeSecretKey,
			WebhookSecret: config.Env.StripeWebhookSecret,
			SuccessURL:    config.Env.CheckoutSuccessURL,
			CancelURL:     config.Env.CheckoutCancelURL,
		},
	},
	)
	srv.Run()
}
