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

package api

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid test configuration")

type TestConfig struct {
	BaseURL              string
	AuthToken            string
	RequestTimeout       time.Duration
	ExistingLogin        string
	ExistingPassword     string
	LoginTakenMessage    string
	NotEnoughDataMessage string
	UseStub              bool
	SkipIntegration      bool
	ValidateContract     bool
	LogRequests          bool
	LogResponses         bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// When no API_BASE_URL is given the suites run against the in-process courier stub.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	var invalid []string

	requestTimeout, err := getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		invalid = append(invalid, err.Error())
	}

	baseURL := os.Getenv("API_BASE_URL")

	useStub, err := getBoolWithDefault("USE_STUB", baseURL == "")
	if err != nil {
		invalid = append(invalid, err.Error())
	}

	skipIntegration, err := getBoolWithDefault("SKIP_INTEGRATION", false)
	if err != nil {
		invalid = append(invalid, err.Error())
	}

	validateContract, err := getBoolWithDefault("VALIDATE_CONTRACT", true)
	if err != nil {
		invalid = append(invalid, err.Error())
	}

	logRequests, err := getBoolWithDefault("LOG_REQUESTS", false)
	if err != nil {
		invalid = append(invalid, err.Error())
	}

	logResponses, err := getBoolWithDefault("LOG_RESPONSES", false)
	if err != nil {
		invalid = append(invalid, err.Error())
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(invalid, "; "))
	}

	config := &TestConfig{
		BaseURL:              baseURL,
		AuthToken:            os.Getenv("API_AUTH_TOKEN"),
		RequestTimeout:       requestTimeout,
		ExistingLogin:        getStringWithDefault("TEST_EXISTING_LOGIN", ExistingLogin),
		ExistingPassword:     getStringWithDefault("TEST_EXISTING_PASSWORD", ExistingPassword),
		LoginTakenMessage:    getStringWithDefault("MESSAGE_LOGIN_TAKEN", LoginTakenMessage),
		NotEnoughDataMessage: getStringWithDefault("MESSAGE_NOT_ENOUGH_DATA", NotEnoughDataMessage),
		UseStub:              useStub,
		SkipIntegration:      skipIntegration,
		ValidateContract:     validateContract,
		LogRequests:          logRequests,
		LogResponses:         logResponses,
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a duration", key, value)
	}

	return duration, nil
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s=%q is not a boolean", key, value)
	}

	return boolValue, nil
}

func loadEnvFile() {
	envPaths := []string{
		os.Getenv("ENV_FILE"),
		"../.env",       // From test/api directory
		"../../.env",    // From test/api/suites directory
		"../../../.env", // From test/contracts/consumer/courier directory
	}

	var envPath string

	for _, path := range envPaths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateConfig checks the loaded values are usable.
func validateConfig(config *TestConfig) error {
	var problems []string

	if !config.UseStub {
		u, err := url.Parse(config.BaseURL)

		switch {
		case config.BaseURL == "":
			problems = append(problems, "API_BASE_URL is required when USE_STUB is false")
		case err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "":
			problems = append(problems, fmt.Sprintf("API_BASE_URL=%q is not an absolute http(s) URL", config.BaseURL))
		}
	}

	if config.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be positive")
	}

	if config.ExistingLogin == "" || config.ExistingPassword == "" {
		problems = append(problems, "TEST_EXISTING_LOGIN and TEST_EXISTING_PASSWORD must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}
