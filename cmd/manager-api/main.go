package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pointdigital/manager-api/internal/auth"
	"github.com/pointdigital/manager-api/internal/config"
	"github.com/pointdigital/manager-api/internal/db"
	"github.com/pointdigital/manager-api/internal/excel"
	httphandler "github.com/pointdigital/manager-api/internal/http"
	"github.com/pointdigital/manager-api/internal/http/middleware"
	"github.com/pointdigital/manager-api/internal/logger"
	"github.com/pointdigital/manager-api/internal/pdf"
	"github.com/pointdigital/manager-api/internal/repository"
	"github.com/pointdigital/manager-api/internal/service"
	"github.com/pointdigital/manager-api/internal/sms"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	settingsRepo := repository.NewSettingsRepository(database)
	quotationRepo := repository.NewQuotationRepository(database)
	voucherRepo := repository.NewVoucherRepository(database)
	contractRepo := repository.NewContractRepository(database)
	freelancerRepo := repository.NewFreelancerRepository(database)
	workRepo := repository.NewFreelanceWorkRepository(database)
	smsLogRepo := repository.NewSMSLogRepository(database)

	pdfGenerator, err := pdf.NewGenerator(cfg.PDFFontPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}

	tokens := auth.NewManager(cfg.Auth)
	authService := service.NewAuthService(userRepo, tokenRepo, tokens, log)
	userService := service.NewUserService(userRepo, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := userService.Bootstrap(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin")
	}
	if purged, err := tokenRepo.PurgeExpired(ctx, time.Now()); err != nil {
		log.Warn().Err(err).Msg("failed to purge expired token revocations")
	} else if purged > 0 {
		log.Info().Int64("purged", purged).Msg("expired token revocations purged")
	}
	cancel()

	services := httphandler.Services{
		Auth:           authService,
		Users:          userService,
		Settings:       service.NewSettingsService(settingsRepo),
		Quotations:     service.NewQuotationService(quotationRepo, settingsRepo, pdfGenerator),
		Vouchers:       service.NewVoucherService(voucherRepo, excel.NewGenerator()),
		Contracts:      service.NewContractService(contractRepo),
		Freelancers:    service.NewFreelancerService(freelancerRepo),
		FreelanceWorks: service.NewFreelanceWorkService(workRepo, freelancerRepo),
		SMSLogs:        service.NewSMSLogService(smsLogRepo),
		Notifications:  service.NewNotificationService(settingsRepo, smsLogRepo, sms.NewTwilioSender(cfg.SMS.Timeout), cfg.SMS.CountryCode, log),
	}

	handler := httphandler.NewHandler(services, cfg.PageSize, log)
	router := httphandler.NewRouter(handler, middleware.APIKey(cfg.Auth.APIKeys), middleware.Auth(authService), cfg, log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting manager api")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
