package main

import (
	"fmt"
	"log"
	"os"

	"jsonq/config"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

// Version is set via ldflags during build
var Version = "dev"

var CLI struct {
	Query     QueryCmd     `cmd:"" help:"Print the query string for a list request"`
	Fetch     FetchCmd     `cmd:"" help:"Fetch a list resource and print the normalized result"`
	Normalize NormalizeCmd `cmd:"" help:"Normalize a saved list response"`
	Version   VersionCmd   `cmd:"" help:"Show version information"`
}

type VersionCmd struct{}

func (v *VersionCmd) Run(ctx *kong.Context) error {
	fmt.Fprintf(ctx.Stdout, "jsonq %s\n", Version)
	return nil
}

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		zapLogger *zap.Logger
		err       error
	)
	if cfg.IsDebug() {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	return zapLogger
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("jsonq"),
		kong.Description("Build json-server list queries and normalize their responses"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
