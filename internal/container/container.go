// Package container provides dependency injection for the ledger-match
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"
	"time"

	"vkrishnan/ledger-match/internal/config"
	"vkrishnan/ledger-match/internal/logging"
	"vkrishnan/ledger-match/internal/matcher"
	"vkrishnan/ledger-match/internal/semantic"
	"vkrishnan/ledger-match/internal/store"
)

// Container holds all application dependencies and provides methods to
// access them. It is immutable after creation: all fields are private
// and only reachable through getter methods.
type Container struct {
	logger       logging.Logger
	config       *config.Config
	mappingStore *store.MappingStore
	learnedStore *store.SQLiteLearnedStore
	embedClient  *semantic.GeminiClient
	matcher      *matcher.Matcher
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	mappingStore := store.NewMappingStore(
		cfg.Data.LedgersFile,
		cfg.Data.RulesFile,
		cfg.Data.CategoriesFile,
		logger,
	)

	learnedStore, err := store.OpenLearnedStore(cfg.Data.LearnedDB)
	if err != nil {
		return nil, fmt.Errorf("opening learned-mapping store: %w", err)
	}

	var embedClient *semantic.GeminiClient
	if cfg.Semantic.Enabled && cfg.Semantic.APIKey != "" {
		embedClient = semantic.NewGeminiClient(
			cfg.Semantic.APIKey,
			cfg.Semantic.Model,
			time.Duration(cfg.Semantic.TimeoutSeconds)*time.Second,
			logger,
		)
		logger.Info("semantic matching enabled",
			logging.Field{Key: "model", Value: cfg.Semantic.Model})
	} else {
		logger.Info("semantic matching disabled")
	}

	opts := matcher.DefaultOptions()
	opts.MinKeywordScore = cfg.Matcher.MinKeywordScore
	opts.MinFocusScore = cfg.Matcher.MinFocusScore
	opts.MinLearnedBoost = cfg.Matcher.MinLearnedBoost
	opts.MinSemanticScore = cfg.Matcher.MinSemanticScore
	opts.SemanticThreshold = cfg.Semantic.Threshold
	opts.AutoMapSimilarity = cfg.Matcher.AutoMapSimilarity
	opts.EnableSemantic = embedClient != nil

	categories, err := mappingStore.LoadCategories()
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	var embed matcher.EmbeddingClient
	if embedClient != nil {
		embed = embedClient
	}
	m := matcher.NewMatcher(embed, categories, logger, opts)

	logger.Info("container initialized",
		logging.Field{Key: "semantic_enabled", Value: embedClient != nil},
		logging.Field{Key: "learned_db", Value: cfg.Data.LearnedDB})

	return &Container{
		logger:       logger,
		config:       cfg,
		mappingStore: mappingStore,
		learnedStore: learnedStore,
		embedClient:  embedClient,
		matcher:      m,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetMatcher returns the container's matcher instance.
func (c *Container) GetMatcher() *matcher.Matcher {
	return c.matcher
}

// GetMappingStore returns the YAML mapping store.
func (c *Container) GetMappingStore() *store.MappingStore {
	return c.mappingStore
}

// GetLearnedStore returns the learned-mapping store.
func (c *Container) GetLearnedStore() *store.SQLiteLearnedStore {
	return c.learnedStore
}

// BuildRequest loads the ledger master, rules and learned mappings into
// a resolution request ready for the matcher.
func (c *Container) BuildRequest() (matcher.Request, error) {
	ledgers, err := c.mappingStore.LoadLedgerMaster()
	if err != nil {
		return matcher.Request{}, fmt.Errorf("loading ledger master: %w", err)
	}

	rules, err := c.mappingStore.LoadRules()
	if err != nil {
		return matcher.Request{}, fmt.Errorf("loading rules: %w", err)
	}

	learned, err := c.learnedStore.All()
	if err != nil {
		return matcher.Request{}, fmt.Errorf("loading learned mappings: %w", err)
	}

	return matcher.Request{
		LedgerMaster:   ledgers,
		Rules:          rules,
		SuspenseLedger: c.config.Matcher.SuspenseLedger,
		Learned:        learned,
	}, nil
}

// Close releases container resources.
func (c *Container) Close() error {
	var firstErr error
	if c.embedClient != nil {
		if err := c.embedClient.Close(); err != nil {
			firstErr = err
		}
	}
	if err := c.learnedStore.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	c.logger.Info("container closed")
	return firstErr
}
