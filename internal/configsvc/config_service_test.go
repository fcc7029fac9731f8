package configsvc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testPreset struct {
	Device   string             `json:"device"`
	Controls map[string]float32 `json:"controls"`
}

func TestRegisterReadsInitialConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device: 046d:c52b:1\ncontrols:\n  caps-lock: 1\n"), 0644))

	svc := New(zap.NewNop())
	go svc.Start(ctx)
	<-svc.Ready()

	cfg, err := Register(svc, path, testPreset{}, func(testPreset, error) {})
	require.NoError(t, err)
	assert.Equal(t, "046d:c52b:1", cfg.Device)
	assert.Equal(t, float32(1), cfg.Controls["caps-lock"])
}

func TestRegisterNotifiesOnWrite(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device: a\n"), 0644))

	svc := New(zap.NewNop())
	go svc.Start(ctx)
	<-svc.Ready()

	updates := make(chan testPreset, 1)
	_, err := Register(svc, path, testPreset{}, func(cfg testPreset, err error) {
		if err == nil {
			select {
			case updates <- cfg:
			default:
			}
		}
	})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("device: b\n"), 0644))
	select {
	case cfg := <-updates:
		assert.Equal(t, "b", cfg.Device)
	case <-ctx.Done():
		t.Fatal("timed out waiting for config update")
	}
}

func TestRegisterMissingFile(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	svc := New(zap.NewNop())
	go svc.Start(ctx)
	<-svc.Ready()

	_, err := Register(svc, filepath.Join(t.TempDir(), "missing.yaml"), testPreset{}, func(testPreset, error) {})
	require.Error(t, err)
}
