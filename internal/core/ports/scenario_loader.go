package ports

import "go.trai.ch/pathcache/internal/core/domain"

// ScenarioLoader reads scenario files.
//
//go:generate mockgen -source=scenario_loader.go -destination=mocks/mock_scenario_loader.go -package=mocks
type ScenarioLoader interface {
	// Load reads and validates the scenario at path.
	Load(path string) (*domain.Scenario, error)
}
