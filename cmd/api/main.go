package main

import (
	"io"
	"log"
	"os"

	"github.com/accounthub/Account_Hub_BackEnd/internal/config"
	"github.com/accounthub/Account_Hub_BackEnd/internal/logging"
	"github.com/accounthub/Account_Hub_BackEnd/internal/media"
	miniorepo "github.com/accounthub/Account_Hub_BackEnd/internal/repository/minio"
	"github.com/accounthub/Account_Hub_BackEnd/internal/repository/ports"
	"github.com/accounthub/Account_Hub_BackEnd/internal/repository/postgres"
	"github.com/accounthub/Account_Hub_BackEnd/internal/service"
	transport "github.com/accounthub/Account_Hub_BackEnd/internal/transport/http"
	"github.com/accounthub/Account_Hub_BackEnd/internal/transport/mail"
	"github.com/accounthub/Account_Hub_BackEnd/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash writer disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	tokens, err := util.NewJWTManager(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatalf("configure token manager: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	roleRepo := postgres.NewRoleRepo(db)
	companyRepo := postgres.NewCompanyRepo(db)

	var storage ports.ObjectStorage
	if cfg.MinIOEndpoint != "" {
		client, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatalf("connect object storage: %v", err)
		}
		storage = miniorepo.NewStorage(client, cfg.MinIOPublicURL)
	}

	var resetMailer service.PasswordResetSender
	var registrationMailer service.RegistrationSender
	if cfg.SMTPHost != "" {
		mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
		resetMailer = mailer
		registrationMailer = mailer
	} else {
		log.Printf("Warning: SMTP not configured, account mails are disabled")
	}

	processor := media.NewFFMPEGProcessor(cfg.FFMPEGPath, media.DefaultMaxDimension)
	otpStore := service.NewMemoryOTPStore()

	authService := service.NewAuthService(userRepo, roleRepo, tokens)
	resetService := service.NewPasswordResetService(userRepo, otpStore, resetMailer, cfg.PasswordResetTTL, cfg.OTPEchoInResponse)
	userService := service.NewUserService(userRepo, storage, processor, registrationMailer, cfg.MinIOBucketProfile, cfg.ImageMaxBytes)
	companyService := service.NewCompanyService(companyRepo, userRepo, storage, processor, cfg.MinIOBucketCompany, cfg.ImageMaxBytes)

	e := transport.NewRouter(cfg.AllowOrigins)
	transport.RegisterAuth(e, authService)
	transport.RegisterPasswordReset(e, resetService)
	transport.RegisterUsers(e, authService, userService)
	transport.RegisterCompanies(e, authService, companyService)
	transport.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
