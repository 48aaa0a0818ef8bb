package main

import (
	"os"

	"github.com/go-darkroom/darkroom/cmd/darkroom/cmd"
	"github.com/go-darkroom/darkroom/internal/config"
	"github.com/go-darkroom/darkroom/internal/logging"
	"github.com/go-darkroom/darkroom/pkg/errors"
)

func main() {
	cfg := config.New()
	log, err := logging.New(cfg.Log.Mode)
	if err == nil {
		errors.SetHandler(&errors.ZapHandler{Log: log})
		defer logging.Sync(log)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
