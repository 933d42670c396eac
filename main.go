package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/turbekoff/apcalc/pkg/apc"
	"github.com/turbekoff/apcalc/pkg/env"
)

type Config struct {
	BotToken        string        `env:"APCALC_TELEGRAM_TOKEN,required"`
	BotOffset       int           `env:"APCALC_TELEGRAM_OFFSET" env-default:"0"`
	BotTimeout      int           `env:"APCALC_TELEGRAM_TIMEOUT" env-default:"60"`
	SessionTTL      time.Duration `env:"APCALC_SESSION_TTL" env-default:"20m"`
	SessionCleanup  time.Duration `env:"APCALC_SESSION_CLEANUP" env-default:"1m"`
	ShutdownTimeout time.Duration `env:"APCALC_SHUTDOWN_TIMEOUT" env-default:"2m"`
	MetricsAddr     string        `env:"APCALC_METRICS_ADDR"`
}

func LoadConfig(files ...string) (*Config, error) {
	var cfg Config
	if err := env.Load(&cfg, files...); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("failed to run %s, error: %v\n", app.Name, err)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "apcalc",
		Usage:     "arbitrary precision integer calculator",
		UsageText: "apcalc [--verbose] [--] <operand1> <operator> <operand2>",
		Version:   "0.1.0",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "print operands and operator along with the result",
			},
		},
		Commands: []*cli.Command{
			{
				Name:            "eval",
				Usage:           "evaluate one operation: + - * (or x) / % ^",
				ArgsUsage:       "<operand1> <operator> <operand2>",
				SkipFlagParsing: true,
				Action:          evalAction,
			},
			{
				Name:   "bot",
				Usage:  "run the Telegram calculator bot",
				Action: botAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env-file",
						Value: ".env",
						Usage: "dotenv file loaded before reading the environment",
					},
				},
			},
		},
		Action: func(cctx *cli.Context) error {
			if cctx.Args().Len() == 0 {
				return cli.ShowAppHelp(cctx)
			}
			return evalAction(cctx)
		},
	}
}

func evalAction(cctx *cli.Context) error {
	args := cctx.Args()
	if args.Len() != 3 {
		return xerrors.Errorf("usage: %s: %w", "<operand1> <operator> <operand2>", apc.ErrInvalidSyntax)
	}

	result, err := apc.EvalArgs(args.Get(0), args.Get(1), args.Get(2))
	if err != nil {
		return err
	}

	w := cctx.App.Writer
	if !cctx.Bool("verbose") {
		_, err = fmt.Fprintln(w, result)
		return err
	}

	const line = "------------------------------"
	_, err = fmt.Fprintf(w, "%s\nInput:    %s\nOperator: %s\nInput:    %s\n%s\nResult:   %s\n%s\n",
		line, args.Get(0), args.Get(1), args.Get(2), line, result, line)
	return err
}

func botAction(cctx *cli.Context) error {
	config, err := LoadConfig(cctx.String("env-file"))
	if err != nil {
		return xerrors.Errorf("failed to load config: %w", err)
	}

	logger := log.Default()
	metrics := NewMetrics()
	bot, err := LoadBot(config, metrics, logger)
	if err != nil {
		return xerrors.Errorf("failed to connect telegram: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var metricsServer *http.Server
	if config.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{Addr: config.MetricsAddr, Handler: mux}

		go func() {
			logger.Printf("serving metrics on %s\n", config.MetricsAddr)
			if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("failed to serve metrics, error: %s\n", err)
			}
		}()
	}

	go func() {
		logger.Println("starting telegram bot")
		if err := bot.Run(); !errors.Is(err, ErrClosed) {
			logger.Printf("failed to start telegram bot, error: %s\n", err)
		}
		quit <- os.Interrupt
	}()

	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	logger.Println("stopping telegram bot")
	if err := bot.Shutdown(ctx); err != nil {
		logger.Printf("failed to graceful shutdown telegram bot, error: %s\n", err)
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			logger.Printf("failed to stop metrics server, error: %s\n", err)
		}
	}
	logger.Println("telegram bot stopped")
	return nil
}
