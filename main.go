package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dialogs/dialog-push-fcm/service"
	"github.com/jessevdk/go-flags"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var opts struct {
	ConfigLocation string `short:"c" long:"config" description:"Config file location" required:"true"`
	Debug          bool   `short:"d" long:"debug" description:"Log payloads at debug level"`
}

func main() {

	if _, err := flags.ParseArgs(&opts, os.Args); err != nil {
		log.Fatal("failed to parse arguments:", err)
	}

	logger, err := newLogger(opts.Debug)
	if err != nil {
		log.Fatal("failed to create logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	v := viper.New()
	v.SetConfigFile(opts.ConfigLocation)
	if err := v.ReadInConfig(); err != nil {
		logger.Fatal("failed to parse config", zap.Error(err))
	}

	svc, err := service.New(v, logger)
	if err != nil {
		logger.Fatal("failed to create service", zap.Error(err))
	}

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		s := <-stop
		logger.Info("stop", zap.String("signal", s.String()))
		if err := svc.Close(); err != nil {
			logger.Error("close service", zap.Error(err))
		}
	}()

	if err := svc.Run(); err != nil {
		logger.Info("close service", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return cfg.Build()
}
