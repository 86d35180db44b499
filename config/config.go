/*
Copyright 2025 ExpenseHQ Authors.

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

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	DEFAULT_FUZZY_MATCH_THRESHOLD = 0.85
	DEFAULT_LOG_LEVEL             = "info"
)

var ConfigStore atomic.Value

type MatcherConfig struct {
	FuzzyMatchThreshold float64 `json:"fuzzy_match_threshold" envconfig:"DEDUPE_MATCHER_FUZZY_MATCH_THRESHOLD"`
	DateTolerance       int     `json:"date_tolerance" envconfig:"DEDUPE_MATCHER_DATE_TOLERANCE"`
}

type Configuration struct {
	ProjectName string        `json:"project_name" envconfig:"DEDUPE_PROJECT_NAME"`
	LogLevel    string        `json:"log_level" envconfig:"DEDUPE_LOG_LEVEL"`
	Matcher     MatcherConfig `json:"matcher"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return err
		}
	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("dedupe", &cnf)
	if err != nil {
		return err
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return err
}

func InitConfig(configFile string) error {
	logger()
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded from file. Create a json file called dedupe.json with your config ❌")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	if cnf.ProjectName == "" {
		log.Println("Warning: Project name is empty. Setting a default name.")
		cnf.ProjectName = "Dedupe"
	}
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)

	if cnf.LogLevel == "" {
		cnf.LogLevel = DEFAULT_LOG_LEVEL
	}
	if _, err := logrus.ParseLevel(cnf.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", cnf.LogLevel)
	}

	if cnf.Matcher.FuzzyMatchThreshold == 0 {
		cnf.Matcher.FuzzyMatchThreshold = DEFAULT_FUZZY_MATCH_THRESHOLD
	}
	if cnf.Matcher.FuzzyMatchThreshold < 0 || cnf.Matcher.FuzzyMatchThreshold > 1 {
		return fmt.Errorf("fuzzy match threshold must be between 0 and 1, got %v", cnf.Matcher.FuzzyMatchThreshold)
	}
	if cnf.Matcher.DateTolerance < 0 {
		return fmt.Errorf("date tolerance must be non-negative, got %d", cnf.Matcher.DateTolerance)
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}

func logger() {
	logger := logrus.New()
	log.SetOutput(logger.Writer())
}
