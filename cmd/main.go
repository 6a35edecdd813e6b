package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/maxarisa/family-health-app/config"
	"github.com/maxarisa/family-health-app/routes"
	"github.com/maxarisa/family-health-app/utils"
)

func main() {
	config.LoadEnv()
	config.InitLogger()
	config.InitDB()

	var mailer utils.Mailer
	if m, err := utils.NewSESMailer(); err != nil {
		logrus.Warnf("SES unavailable, emails disabled: %v", err)
	} else {
		mailer = m
	}

	var uploader utils.Uploader
	if u, err := utils.NewS3Uploader(); err != nil {
		logrus.Warnf("S3 unavailable, exports disabled: %v", err)
	} else {
		uploader = u
	}

	r := routes.SetupRouter(config.DB, mailer, uploader)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
