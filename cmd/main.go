package main

import (
	"coindesk/internal/app"

	"github.com/sirupsen/logrus"
)

// @title CoinDesk Price API
// @version 1.0
// @description Stores CoinDesk bitcoin price index snapshots per currency and serves them over HTTP.
// @BasePath /api/coindesk
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Application stopped")
	}
}
