package salary

import "context"

// ConfigRepository persists the single active salary configuration.
type ConfigRepository interface {
	// GetActive returns the active configuration, or ErrConfigNotFound when
	// no admin has saved one yet.
	GetActive(ctx context.Context) (Config, error)

	// Upsert writes the singleton configuration row.
	Upsert(ctx context.Context, cfg Config) (Config, error)
}

type SalaryService interface {
	GetConfig(ctx context.Context) (ConfigResponse, error)
	UpdateConfig(ctx context.Context, req UpdateConfigRequest) (ConfigResponse, error)
	Calculate(ctx context.Context, req CalculateRequest) (CalculateResponse, error)
}
