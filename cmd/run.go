// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	goakt "github.com/tochemey/goakt/v4/actor"
	"github.com/tochemey/goakt/v4/log"
	"github.com/tochemey/goakt/v4/remote"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/tochemey/goakt-bankaccount/messages"
	"github.com/tochemey/goakt-bankaccount/persistence"
	"github.com/tochemey/goakt-bankaccount/service"
)

const serviceName = "bankaccount"

var envFiles []string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bank account service",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := log.NewSlog(log.InfoLevel, os.Stdout)

		config, err := service.GetConfig(envFiles...)
		if err != nil {
			logger.Fatal(err)
			os.Exit(1)
		}

		level, _ := config.Level()
		logger = log.NewSlog(level, os.Stdout)

		res, err := resource.New(ctx,
			resource.WithHost(),
			resource.WithProcess(),
			resource.WithTelemetrySDK(),
			resource.WithAttributes(
				semconv.ServiceNameKey.String(serviceName),
			),
		)
		if err != nil {
			logger.Fatal(err)
			os.Exit(1)
		}

		var shutdowns []func(context.Context) error
		if config.TracingEnabled {
			tp, err := initTracer(ctx, res, config)
			if err != nil {
				logger.Fatal(err)
				os.Exit(1)
			}
			shutdowns = append(shutdowns, tp.Shutdown)
		}

		mp, metricsServer, err := initMeter(res, config.MetricsPort, logger)
		if err != nil {
			logger.Fatal(err)
			os.Exit(1)
		}
		shutdowns = append(shutdowns, metricsServer.Shutdown, mp.Shutdown)

		metrics, err := service.NewMetrics(otel.Meter(serviceName))
		if err != nil {
			logger.Fatal(err)
			os.Exit(1)
		}

		store := persistence.NewMemoryStore()
		if err := store.Connect(ctx); err != nil {
			logger.Fatal(err)
			os.Exit(1)
		}

		opts := []goakt.Option{
			goakt.WithLogger(logger),
			goakt.WithExtensions(store),
			goakt.WithActorInitMaxRetries(3),
		}
		if config.RemotingPort > 0 {
			cbor := remote.NewCBORSerializer()
			opts = append(opts, goakt.WithRemote(remote.NewConfig(config.RemotingHost, config.RemotingPort,
				remote.WithSerializers((*messages.CreateAccount)(nil), cbor),
				remote.WithSerializers((*messages.Deposit)(nil), cbor),
				remote.WithSerializers((*messages.Withdraw)(nil), cbor),
				remote.WithSerializers((*messages.Reverse)(nil), cbor),
				remote.WithSerializers((*messages.GetAccount)(nil), cbor),
				remote.WithSerializers((*messages.Account)(nil), cbor),
				remote.WithSerializers((*messages.Rejected)(nil), cbor),
			)))
		}

		actorSystem, err := goakt.NewActorSystem(config.ActorSystemName, opts...)
		if err != nil {
			logger.Fatal(err)
			os.Exit(1)
		}

		if err := actorSystem.Start(ctx); err != nil {
			logger.Fatal(err)
			os.Exit(1)
		}
		logger.Infof("Actor system %s started", config.ActorSystemName)

		accountService := service.NewAccountService(actorSystem, config, logger, metrics)
		accountService.Start()

		sigs := make(chan os.Signal, 1)
		done := make(chan struct{}, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigs

			logger.Info("Shutting down...")
			newCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := accountService.Stop(newCtx); err != nil {
				logger.Errorf("error stopping account service: %v", err)
			}

			if err := actorSystem.Stop(newCtx); err != nil {
				logger.Errorf("error stopping actor system: %v", err)
			}

			if err := store.Disconnect(newCtx); err != nil {
				logger.Errorf("error stopping persistence: %v", err)
			}

			for _, shutdown := range shutdowns {
				if err := shutdown(newCtx); err != nil {
					logger.Errorf("error stopping telemetry: %v", err)
				}
			}

			done <- struct{}{}
		}()
		<-done
		logger.Info("Shutdown complete")
	},
}

func init() {
	runCmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load before reading the environment")
	rootCmd.AddCommand(runCmd)
}
