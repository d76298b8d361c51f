package adapter

import (
	"fmt"
	"sort"

	"BarInventory/internal/config"
	"BarInventory/internal/interfaces"

	"github.com/sirupsen/logrus"
)

var factoryRegistry = make(map[string]interfaces.Factory)

// Register is called from provider init functions.
func Register(name string, factory interfaces.Factory) {
	if factory == nil {
		panic(fmt.Sprintf("catalog provider %s: nil factory", name))
	}
	if _, exists := factoryRegistry[name]; exists {
		logrus.Warnf("catalog provider %s registered twice, replacing", name)
	}
	factoryRegistry[name] = factory
}

// GetFactory returns the factory registered under name.
func GetFactory(name string) (interfaces.Factory, bool) {
	factory, ok := factoryRegistry[name]
	return factory, ok
}

// ListFactories returns the registered provider names, sorted.
func ListFactories() []string {
	names := make([]string, 0, len(factoryRegistry))
	for name := range factoryRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the provider named by cfg.Provider.
func New(cfg *config.CatalogConfig, logger *logrus.Logger) (interfaces.CatalogLookup, error) {
	factory, ok := GetFactory(cfg.Provider)
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownProvider, cfg.Provider, ListFactories())
	}
	lookup, err := factory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("catalog provider %s: %w", cfg.Provider, err)
	}
	logger.WithField("provider", lookup.GetName()).Info("catalog provider ready")
	return lookup, nil
}
