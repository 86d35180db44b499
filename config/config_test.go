package config

import (
	"encoding/json"
	"os"
	"testing"
)

func TestValidateAndAddDefaults(t *testing.T) {
	cnf := Configuration{}
	err := cnf.validateAndAddDefaults()
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if cnf.ProjectName == "" {
		t.Error("Expected a default project name")
	}
	if cnf.LogLevel != DEFAULT_LOG_LEVEL {
		t.Errorf("Expected default log level %s, got %s", DEFAULT_LOG_LEVEL, cnf.LogLevel)
	}
	if cnf.Matcher.FuzzyMatchThreshold != DEFAULT_FUZZY_MATCH_THRESHOLD {
		t.Errorf("Expected default threshold %v, got %v", DEFAULT_FUZZY_MATCH_THRESHOLD, cnf.Matcher.FuzzyMatchThreshold)
	}

	cnf = Configuration{Matcher: MatcherConfig{FuzzyMatchThreshold: 1.5}}
	if err := cnf.validateAndAddDefaults(); err == nil {
		t.Error("Expected an out-of-range threshold error")
	}

	cnf = Configuration{Matcher: MatcherConfig{DateTolerance: -2}}
	if err := cnf.validateAndAddDefaults(); err == nil {
		t.Error("Expected a negative tolerance error")
	}

	cnf = Configuration{LogLevel: "verbose-ish"}
	if err := cnf.validateAndAddDefaults(); err == nil {
		t.Error("Expected an invalid log level error")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "dedupe.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	cnf := Configuration{
		ProjectName: "Test Project",
		Matcher:     MatcherConfig{FuzzyMatchThreshold: 0.8, DateTolerance: 1},
	}
	if err := json.NewEncoder(tmpFile).Encode(cnf); err != nil {
		t.Fatalf("Unable to write config: %v", err)
	}
	_ = tmpFile.Close()

	if err := loadConfigFromFile(tmpFile.Name()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	loaded, err := Fetch()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loaded.Matcher.FuzzyMatchThreshold != 0.8 {
		t.Errorf("Expected threshold 0.8, got %v", loaded.Matcher.FuzzyMatchThreshold)
	}
	if loaded.Matcher.DateTolerance != 1 {
		t.Errorf("Expected date tolerance 1, got %v", loaded.Matcher.DateTolerance)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "dedupe.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer func() { _ = os.Remove(tmpFile.Name()) }()

	cnf := Configuration{Matcher: MatcherConfig{FuzzyMatchThreshold: 0.8}}
	if err := json.NewEncoder(tmpFile).Encode(cnf); err != nil {
		t.Fatalf("Unable to write config: %v", err)
	}
	_ = tmpFile.Close()

	t.Setenv("DEDUPE_MATCHER_FUZZY_MATCH_THRESHOLD", "0.9")

	if err := loadConfigFromFile(tmpFile.Name()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	loaded, err := Fetch()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if loaded.Matcher.FuzzyMatchThreshold != 0.9 {
		t.Errorf("Expected env override 0.9, got %v", loaded.Matcher.FuzzyMatchThreshold)
	}
}
