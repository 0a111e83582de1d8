package config

import (
	"fmt"
	"log"
	"strings"
	"sync"
)

// ProviderConfig manages gateway credential configurations with an
// in-memory cache backed by SQLite persistence. When the database cannot
// be opened it degrades to memory-only mode.
type ProviderConfig struct {
	configs map[string]map[string]string
	storage *SQLiteStorage
	mu      sync.RWMutex
}

// NewProviderConfig creates a new provider configuration store
func NewProviderConfig() *ProviderConfig {
	config := &ProviderConfig{
		configs: make(map[string]map[string]string),
	}

	dbPath := GetEnv("PAYGATE_DB_PATH", "data/paygate.db")
	storage, err := NewSQLiteStorage(dbPath)
	if err != nil {
		log.Printf("Warning: failed to initialize SQLite storage (%v), falling back to memory-only mode", err)
	} else {
		config.storage = storage
		if stored, err := storage.LoadAllGatewayConfigs(); err == nil {
			for name, cfg := range stored {
				config.configs[name] = cfg
			}
		}
	}

	return config
}

// LoadFromEnv loads gateway credentials from environment variables.
// PayPal keys follow the PAYPAL_ prefix convention.
func (c *ProviderConfig) LoadFromEnv() {
	clientID := GetEnv("PAYPAL_CLIENT_ID", "")
	clientSecret := GetEnv("PAYPAL_CLIENT_SECRET", "")
	if clientID == "" || clientSecret == "" {
		return
	}

	cfg := map[string]string{
		"clientId":     clientID,
		"clientSecret": clientSecret,
	}
	if env := GetEnv("PAYPAL_ENVIRONMENT", ""); env != "" {
		cfg["environment"] = env
	}

	c.mu.Lock()
	c.configs["paypal"] = cfg
	c.mu.Unlock()
}

// SetConfig stores the configuration for a gateway, persisting it when
// storage is available.
func (c *ProviderConfig) SetConfig(gatewayName string, config map[string]string) error {
	if gatewayName == "" {
		return fmt.Errorf("gateway name cannot be empty")
	}
	if len(config) == 0 {
		return fmt.Errorf("config cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.storage != nil {
		if err := c.storage.SaveGatewayConfig(gatewayName, config); err != nil {
			return fmt.Errorf("failed to persist config: %w", err)
		}
	}

	c.configs[strings.ToLower(gatewayName)] = config
	return nil
}

// GetConfig returns the configuration for a gateway
func (c *ProviderConfig) GetConfig(gatewayName string) (map[string]string, error) {
	c.mu.RLock()
	config, exists := c.configs[strings.ToLower(gatewayName)]
	c.mu.RUnlock()

	if !exists && c.storage != nil {
		stored, err := c.storage.LoadGatewayConfig(gatewayName)
		if err == nil {
			c.mu.Lock()
			c.configs[strings.ToLower(gatewayName)] = stored
			c.mu.Unlock()
			return stored, nil
		}
	}

	if !exists {
		return nil, fmt.Errorf("no configuration found for gateway: %s", gatewayName)
	}
	return config, nil
}

// DeleteConfig removes the configuration for a gateway
func (c *ProviderConfig) DeleteConfig(gatewayName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.storage != nil {
		if err := c.storage.DeleteGatewayConfig(gatewayName); err != nil {
			return err
		}
	}

	delete(c.configs, strings.ToLower(gatewayName))
	return nil
}

// GetAvailableProviders returns the names of all configured gateways
func (c *ProviderConfig) GetAvailableProviders() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.configs))
	for name := range c.configs {
		names = append(names, name)
	}
	return names
}
