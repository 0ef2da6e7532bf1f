package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/config"
	"github.com/welfarelink/pwd-records-api/internal/database"
	"github.com/welfarelink/pwd-records-api/internal/handler"
	"github.com/welfarelink/pwd-records-api/internal/queue"
	"github.com/welfarelink/pwd-records-api/internal/repository"
	"github.com/welfarelink/pwd-records-api/internal/router"
)

func main() {
	// .env is for local development; in production the variables come from
	// the process environment.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response caching and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	resets := repository.NewPasswordResetRepo(db)
	communities := repository.NewCommunityRepo(db)
	disabilities := repository.NewDisabilityRepo(db)
	assistTypes := repository.NewAssistanceTypeRepo(db)
	records := repository.NewPWDRepo(db)
	guardians := repository.NewGuardianRepo(db)
	educations := repository.NewEducationRepo(db)
	needs := repository.NewSupportNeedRepo(db)
	requests := repository.NewRequestRepo(db)
	stats := repository.NewStatsRepo(db)

	deps := router.Deps{
		Cfg:       cfg,
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),

		Auth:           handler.NewAuthHandler(cfg, users, tokens, resets),
		Users:          handler.NewUserHandler(cfg, users),
		Communities:    handler.NewCommunityHandler(communities),
		Disabilities:   handler.NewDisabilityHandler(disabilities),
		AssistanceType: handler.NewAssistanceTypeHandler(assistTypes),
		Records:        handler.NewPWDHandler(records),
		Guardians:      handler.NewGuardianHandler(guardians),
		Educations:     handler.NewEducationHandler(educations),
		SupportNeeds:   handler.NewSupportNeedHandler(needs),
		Requests:       handler.NewRequestHandler(requests),
		Stats:          handler.NewStatsHandler(stats),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, deps)

	// The reset mailer consumes password-reset events from RabbitMQ and keeps
	// reconnecting for the lifetime of the process.
	go func() {
		if err := queue.StartResetMailer(); err != nil {
			log.Printf("reset mailer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
