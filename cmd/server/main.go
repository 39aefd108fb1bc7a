// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/nubac/wasender-backend/internal/config"
	"github.com/nubac/wasender-backend/internal/db"
	"github.com/nubac/wasender-backend/internal/gateway"
	"github.com/nubac/wasender-backend/internal/handler"
	"github.com/nubac/wasender-backend/internal/logger"
	"github.com/nubac/wasender-backend/internal/repository"
	"github.com/nubac/wasender-backend/internal/service"
)

func main() {
	// Load .env if present, otherwise rely on OS environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	log.Info().Str("db", cfg.MongoDB).Msg("connected to MongoDB")

	contactRepo := repository.NewContactRepository(database)
	campaignRepo := repository.NewCampaignRepository(database)
	scheduleRepo := repository.NewScheduleRepository(database)
	outboundRepo := repository.NewOutboundRecordRepository(database)
	stateRepo := repository.NewStateRepository(database)
	logRepo := repository.NewLogRepository(database)
	mediaRepo := repository.NewCachedMediaRepository(repository.NewMediaRepository(database))

	gw := gateway.NewTwilioGateway(cfg.SID, cfg.Token, cfg.From)
	if !gw.IsConfigured() {
		log.Warn().Msg("twilio credentials missing, sends are disabled")
	}

	audience := &service.AudienceService{Contacts: contactRepo}
	policy := &service.SendPolicy{Media: mediaRepo}

	worker := &service.ScheduleWorker{
		Schedules: scheduleRepo,
		Campaigns: campaignRepo,
		Audience:  audience,
		Policy:    policy,
		Gateway:   gw,
		Outbound:  outboundRepo,
		States:    stateRepo,
		Logs:      logRepo,
		Limiter:   rate.NewLimiter(rate.Limit(cfg.SendRatePerSecond), 1),
		BatchSize: cfg.BatchSize,
		Log:       log,
	}

	inbound := &service.InboundService{
		Contacts:  contactRepo,
		Campaigns: campaignRepo,
		States:    stateRepo,
		Media:     mediaRepo,
		Outbound:  outboundRepo,
		Logs:      logRepo,
		Gateway:   gw,
		Mode:      service.FallbackMode(cfg.FallbackMode),
		Log:       log,
	}

	jobsHandler := &handler.JobsHandler{
		Worker:              worker,
		CronSecret:          cfg.CronSecret,
		DefaultContactLimit: cfg.ContactLimit,
		Log:                 log,
	}
	webhookHandler := &handler.WebhookHandler{
		Inbound: inbound,
		Log:     log,
	}

	r := chi.NewRouter()

	r.Post("/jobs/processSchedules", jobsHandler.ProcessSchedules)
	r.Post("/twilio/inbound", webhookHandler.TwilioInbound)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	log.Info().Str("port", cfg.Port).Msg("server running")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
