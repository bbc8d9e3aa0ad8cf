package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/app"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var log = logrus.New()

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	logging, err := config.NewLogging()
	if err != nil {
		log.Fatal("unable to read logging config: ", err)
	}
	if err := logging.Apply(os.Stderr, log, mines.Log, session.Log); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}

	jwt, err := config.NewJWT()
	if err != nil {
		log.Fatal("unable to read jwt config: ", err)
	}

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		log.Fatal("unable to read cookies config: ", err)
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		log.Fatal("unable to read ws config: ", err)
	}

	log.WithFields(logrus.Fields{
		"development": logging.Development,
		"sessionTTL":  jwt.Lifetime().String(),
		"logFile":     logging.File,
	}).Info("starting up")

	a := app.New(log, jwt, cookies, ws)
	if err := a.Start(mainCtx); err != nil {
		log.Errorf("exit reason: %s", err)
		os.Exit(1)
	}
	log.Info("bye")
}
