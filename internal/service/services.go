package service

import (
	"github.com/xolan/hrs/internal/config"
	"github.com/xolan/hrs/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Calc   *CalcService
	Sheet  *SheetService
	Config *ConfigService
}

// NewServices creates a new Services instance with default paths
func NewServices() (*Services, error) {
	storagePath, err := storage.GetStoragePath()
	if err != nil {
		return nil, err
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	return NewServicesWithPaths(storagePath, configPath, cfg), nil
}

// NewServicesWithPaths creates a new Services instance with custom paths (useful for testing)
func NewServicesWithPaths(storagePath, configPath string, cfg config.Config) *Services {
	configService := NewConfigService(configPath, cfg)
	// Calculations follow config updates made through configService.
	calcService := &CalcService{config: configService.Get}

	return &Services{
		Calc:   calcService,
		Sheet:  NewSheetService(storagePath, calcService),
		Config: configService,
	}
}
