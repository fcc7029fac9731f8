package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	"github.com/glowctl/glowctl/internal/hidsvc"
	"github.com/glowctl/glowctl/lights"
	"go.uber.org/zap"
)

// Preset is a YAML document assigning values to named controls across
// one or more devices. Control keys are the kebab-case slugs printed
// by the controls command; values are normalized to the 0.0 to 1.0
// range.
type Preset struct {
	Devices []DevicePreset `json:"devices"`
}

type DevicePreset struct {
	Address  string             `json:"address"`
	Controls map[string]float32 `json:"controls"`
}

func LoadPreset(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("failed to read preset file: %w", err)
	}
	var preset Preset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return Preset{}, fmt.Errorf("failed to parse preset file: %w", err)
	}
	return preset, nil
}

// ApplyPreset writes every device section of the preset. Devices are
// applied independently; a failing device does not block the others.
func (a *App) ApplyPreset(preset Preset) error {
	var errs []error
	for _, dev := range preset.Devices {
		if err := a.applyDevice(dev); err != nil {
			a.log.Error("failed to apply preset", zap.String("device", dev.Address), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", dev.Address, err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) applyDevice(preset DevicePreset) error {
	return a.applyControls(preset.Address, preset.Controls, false)
}

// SetControls writes the given slug assignments to one device. Unlike
// ApplyPreset it fails when a slug does not exist on the device.
func (a *App) SetControls(address string, values map[string]float32) error {
	return a.applyControls(address, values, true)
}

func (a *App) applyControls(address string, values map[string]float32, strict bool) error {
	addr, err := hidsvc.ParseAddress(address)
	if err != nil {
		return err
	}
	dev, err := a.hidSvc.Open(addr)
	if err != nil {
		return err
	}
	defer dev.Close()

	sess, err := lights.NewSession(dev)
	if err != nil {
		return err
	}

	remaining := make(map[string]struct{}, len(values))
	for slug := range values {
		remaining[slug] = struct{}{}
	}
	for _, rep := range sess.Reports() {
		touched := false
		for i, slug := range lights.Slugs(rep) {
			value, ok := values[slug]
			if !ok {
				continue
			}
			rep.Control(i).Value = value
			touched = true
			delete(remaining, slug)
		}
		if !touched {
			continue
		}
		if err := sess.Write(rep); err != nil {
			return err
		}
	}
	for slug := range remaining {
		if strict {
			return fmt.Errorf("control not found: %s", slug)
		}
		a.log.Warn("control not present on device",
			zap.String("device", address),
			zap.String("control", slug))
	}
	return nil
}
