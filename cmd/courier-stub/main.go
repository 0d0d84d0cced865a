/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	goflag "flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/qa-scooter/courier-tests/test/stub"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	var (
		listenAddress string
		options       stub.Options
		zapOptions    zap.Options
	)

	pflag.StringVar(&listenAddress, "listen-address", ":8080", "Address the courier stub listens on.")
	pflag.StringVar(&options.LoginTakenMessage, "login-taken-message", stub.MessageLoginTaken, "Message returned when a login is already registered.")
	pflag.StringVar(&options.NotEnoughDataMessage, "not-enough-data-message", stub.MessageNotEnoughData, "Message returned when login or password is missing.")
	pflag.BoolVar(&options.EchoID, "echo-id", false, "Include the new courier identifier in creation responses.")

	goflags := goflag.NewFlagSet("logging", goflag.ExitOnError)
	zapOptions.BindFlags(goflags)
	pflag.CommandLine.AddGoFlagSet(goflags)

	pflag.Parse()

	log.SetLogger(zap.New(zap.UseFlagOptions(&zapOptions)))

	logger := log.Log.WithName("init")
	logger.Info("service starting", "application", "courier-stub", "listenAddress", listenAddress, "echoID", options.EchoID)

	ctx := cr.SetupSignalHandler()

	server := &http.Server{
		Addr:              listenAddress,
		Handler:           stub.New(log.Log.WithName("courier"), stub.NewMemoryStore(), options).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "graceful shutdown failed")
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Println(err)
		os.Exit(1)
	}

	logger.Info("service stopped")
}
