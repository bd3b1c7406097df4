package mail_fx

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"tripflow/internal/services"
)

var Module = fx.Provide(provideMailService)

func provideMailService() services.IMailService {

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	cfg := services.SMTPConfig{
		Host:       envOr("SMTP_HOST", "smtp.gmail.com"),
		Port:       port, // 587 for STARTTLS; use 465 with UseSSL=true for SMTPS
		Username:   os.Getenv("SMTP_USERNAME"),
		Password:   os.Getenv("SMTP_PASSWORD"), // use app password if 2FA is enabled
		From:       envOr("SMTP_FROM", "no-reply@tripflow.app"),
		FromName:   "Tripflow",
		UseSSL:     port == 465,
		RequireTLS: true,

		AppName:    "Tripflow",
		AppBaseURL: envOr("APP_BASE_URL", "https://tripflow.app"),
	}

	mailService, err := services.NewSMTPMailService(cfg)
	if err != nil {
		log.Printf("Failed to initialize SMTP mail service: %v", err)
	}

	return mailService
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
