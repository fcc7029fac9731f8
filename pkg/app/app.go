// Package app wires the services behind the glowctl command line:
// config watching, the HID transport and its Linux backend.
package app

import (
	"context"
	"fmt"

	"github.com/glowctl/glowctl/internal/configsvc"
	"github.com/glowctl/glowctl/internal/hidsvc"
	"github.com/glowctl/glowctl/internal/hidsvc/linux"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	PresetPath string
}

type App struct {
	config Config
	log    *zap.Logger

	configSvc *configsvc.Service
	hidSvc    *hidsvc.Service
}

func NewApp(config Config) (*App, error) {
	loggerConfig := zap.NewDevelopmentConfig()
	loggerConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000000")
	loggerConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	configSvc := configsvc.New(logger.Named("config"))
	linuxHid := linux.NewBackend(logger.Named("hid.linux"))
	hidSvc := hidsvc.New(logger.Named("hid"), hidsvc.WithBackend("linux", linuxHid))

	return &App{
		config:    config,
		log:       logger,
		configSvc: configSvc,
		hidSvc:    hidSvc,
	}, nil
}

// Run starts all services and blocks until the context is cancelled.
// One-shot commands skip Run and talk to the services directly.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return a.configSvc.Start(groupCtx)
	})
	group.Go(func() error {
		return a.hidSvc.Start(groupCtx)
	})

	if err := group.Wait(); err != nil {
		return fmt.Errorf("glowctl failed: %w", err)
	}
	return nil
}

func (a *App) HID() *hidsvc.Service {
	return a.hidSvc
}

func (a *App) ConfigSvc() *configsvc.Service {
	return a.configSvc
}

func (a *App) Logger() *zap.Logger {
	return a.log
}

func (a *App) PresetPath() string {
	return a.config.PresetPath
}
