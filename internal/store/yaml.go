// Package store loads the ledger master, mapping rules and category
// tables from YAML files, and persists learned narration-to-ledger
// mappings in SQLite.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"vkrishnan/ledger-match/internal/logging"
	"vkrishnan/ledger-match/internal/models"
)

// MappingStore reads the YAML configuration files that drive matching:
// the ledger master, the user rules and the optional category table.
type MappingStore struct {
	LedgersFile    string
	RulesFile      string
	CategoriesFile string

	log logging.Logger
}

// NewMappingStore creates a store over the given file paths. Paths may
// name files directly or be bare filenames resolved against the
// executable directory and the working directory.
func NewMappingStore(ledgersFile, rulesFile, categoriesFile string, logger logging.Logger) *MappingStore {
	return &MappingStore{
		LedgersFile:    ledgersFile,
		RulesFile:      rulesFile,
		CategoriesFile: categoriesFile,
		log:            logger,
	}
}

// findConfigFile attempts to locate a configuration file in various paths.
func findConfigFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	execPath, err := os.Executable()
	if err == nil {
		candidate := filepath.Join(filepath.Dir(execPath), "database", filepath.Base(name))
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	candidate := filepath.Join("database", filepath.Base(name))
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}

	return "", fmt.Errorf("%s not found", name)
}

// LoadLedgerMaster reads the ledger master. A missing file yields an
// empty master, not an error: resolution still terminates at suspense.
func (s *MappingStore) LoadLedgerMaster() ([]string, error) {
	path, err := findConfigFile(s.LedgersFile)
	if err != nil {
		s.log.Warn("ledger master file not found, using empty master",
			logging.Field{Key: "file", Value: s.LedgersFile})
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read ledgers file: %w", err)
	}

	var config models.LedgersConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("could not parse ledgers file: %w", err)
	}
	if len(config.Ledgers) == 0 {
		// Also accept a bare YAML list of names.
		var bare []string
		if err := yaml.Unmarshal(data, &bare); err == nil {
			config.Ledgers = bare
		}
	}

	s.log.Info("loaded ledger master",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "ledgers", Value: len(config.Ledgers)})
	return config.Ledgers, nil
}

// LoadRules reads the user-defined keyword-to-ledger rules, preserving
// file order. Rules earlier in the file win ties.
func (s *MappingStore) LoadRules() ([]models.Rule, error) {
	path, err := findConfigFile(s.RulesFile)
	if err != nil {
		s.log.Warn("rules file not found, continuing without rules",
			logging.Field{Key: "file", Value: s.RulesFile})
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read rules file: %w", err)
	}

	var config models.RulesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("could not parse rules file: %w", err)
	}

	s.log.Info("loaded mapping rules",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "rules", Value: len(config.Rules)})
	return config.Rules, nil
}

// LoadCategories reads the category keyword table. A missing or empty
// file means the built-in table applies.
func (s *MappingStore) LoadCategories() ([]models.CategoryConfig, error) {
	path, err := findConfigFile(s.CategoriesFile)
	if err != nil {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read categories file: %w", err)
	}

	var config models.CategoriesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("could not parse categories file: %w", err)
	}

	s.log.Info("loaded categories",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "categories", Value: len(config.Categories)})
	return config.Categories, nil
}

// SaveRules writes the rules back to disk, keeping slice order.
func (s *MappingStore) SaveRules(rules []models.Rule) error {
	path := s.RulesFile
	if found, err := findConfigFile(s.RulesFile); err == nil {
		path = found
	}

	header := `# Keyword to ledger mapping rules
# Rules are evaluated top to bottom; the first keyword contained in the
# narration wins.

`
	data, err := yaml.Marshal(&models.RulesConfig{Rules: rules})
	if err != nil {
		return fmt.Errorf("could not marshal rules to YAML: %w", err)
	}

	if err := os.WriteFile(path, []byte(header+string(data)), 0644); err != nil {
		return fmt.Errorf("could not write rules file: %w", err)
	}

	s.log.Info("saved mapping rules",
		logging.Field{Key: "file", Value: path},
		logging.Field{Key: "rules", Value: len(rules)})
	return nil
}
