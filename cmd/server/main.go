package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	fakedisputerepo "github.com/jrsteele09/campusmate/disputes/repofake"
	"github.com/jrsteele09/campusmate/internal/config"
	fakementorrepo "github.com/jrsteele09/campusmate/mentors/repofake"
	"github.com/jrsteele09/campusmate/server"
	faketaskrepo "github.com/jrsteele09/campusmate/tasks/repofake"
	fakeuserrepo "github.com/jrsteele09/campusmate/users/repofake"
	"github.com/jrsteele09/campusmate/verification"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	verifier, err := newVerifier(c)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handler, err := server.New(c, verifier, server.Repos{
		Users:    fakeuserrepo.NewSeededUserRepo(),
		Tasks:    faketaskrepo.NewSeededTaskRepo(),
		Mentors:  fakementorrepo.NewSeededMentorRepo(),
		Disputes: fakedisputerepo.NewSeededDisputeRepo(),
	}, registry)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() { errs <- listenAndServe(httpServer) }()

	select {
	case err := <-errs:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// newVerifier picks the identity provider named by VERIFIER
func newVerifier(c config.Config) (verification.Verifier, error) {
	switch c.GetVerifier() {
	case config.VerifierStub:
		log.Info().Dur("latency", c.GetVerifyLatency()).Msg("Using stub identity verifier")
		return verification.NewStubVerifier(
			verification.WithLatency(c.GetVerifyLatency()),
			verification.WithTimeout(c.GetVerifyTimeout()),
		), nil
	case config.VerifierRemote:
		log.Info().Str("url", c.GetVerifyServiceURL()).Msg("Using remote identity verifier")
		return verification.NewRemoteVerifier(c.GetVerifyServiceURL(), c.GetVerifyServiceToken(), c.GetVerifyTimeout()), nil
	}
	return nil, fmt.Errorf("unknown VERIFIER %q (want %q or %q)", c.GetVerifier(), config.VerifierStub, config.VerifierRemote)
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
