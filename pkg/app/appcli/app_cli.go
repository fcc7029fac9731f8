// Package appcli defines the glowctl command line interface.
package appcli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/glowctl/glowctl/hiddesc"
	"github.com/glowctl/glowctl/internal/configsvc"
	"github.com/glowctl/glowctl/internal/hidsvc"
	"github.com/glowctl/glowctl/internal/uhidsim"
	"github.com/glowctl/glowctl/lights"
	"github.com/glowctl/glowctl/pkg/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Main(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	dir, err := os.UserConfigDir()
	if err != nil {
		return err
	}
	cmd := NewRootCmd(filepath.Join(dir, "glowctl"))
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd.ExecuteContext(ctx)
}

type appProvider func() *app.App

func NewRootCmd(configDir string) *cobra.Command {
	cfg := app.Config{
		PresetPath: filepath.Join(configDir, "preset.yaml"),
	}
	rootCmd := &cobra.Command{
		Use:   "glowctl",
		Short: "Control LEDs and indicators on HID devices",
		Long:  `glowctl discovers output controls (LEDs, backlights, indicators) on HID devices and sets their values through bit-packed output reports.`,
	}
	var a *app.App
	appProvider := func() *app.App {
		return a
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		a, err = app.NewApp(cfg)
		return err
	}
	rootCmd.AddCommand(NewList(appProvider))
	rootCmd.AddCommand(NewControls(appProvider))
	rootCmd.AddCommand(NewSet(appProvider))
	rootCmd.AddCommand(NewApply(appProvider, cfg.PresetPath))
	rootCmd.AddCommand(NewDescriptor(appProvider))
	rootCmd.AddCommand(NewWatch(appProvider))
	rootCmd.AddCommand(NewSimulate(appProvider))
	return rootCmd
}

func NewList(app appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List HID devices",
		Long:  `List HID devices connected to the system.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			devices, err := app().HID().List()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), devices)
		},
	}
}

type controlInfo struct {
	Report uint8  `json:"report"`
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Min    int32  `json:"min"`
	Max    int32  `json:"max"`
}

func NewControls(app appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "controls <address>",
		Short: "List output controls of a device",
		Long:  `List the writable output controls a device exposes, with the slugs accepted by set and apply.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, closeDev, err := openSession(app(), args[0])
			if err != nil {
				return err
			}
			defer closeDev()

			var infos []controlInfo
			for _, rep := range sess.Reports() {
				slugs := lights.Slugs(rep)
				for i, c := range rep.Controls {
					infos = append(infos, controlInfo{
						Report: rep.ID,
						Slug:   slugs[i],
						Name:   c.Name,
						Kind:   c.Kind.String(),
						Min:    c.Min,
						Max:    c.Max,
					})
				}
			}
			return printJSON(cmd.OutOrStdout(), infos)
		},
	}
}

func NewSet(app appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "set <address> <slug>=<value>...",
		Short: "Set control values on a device",
		Long:  `Set one or more controls to normalized values between 0.0 and 1.0, for example: set 046d:c52b:1 caps-lock=1 scroll-lock=0.`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make(map[string]float32, len(args)-1)
			for _, arg := range args[1:] {
				slug, raw, ok := strings.Cut(arg, "=")
				if !ok || slug == "" {
					return fmt.Errorf("invalid assignment %q, expected <slug>=<value>", arg)
				}
				value, err := strconv.ParseFloat(raw, 32)
				if err != nil {
					return fmt.Errorf("invalid value in %q: %w", arg, err)
				}
				values[slug] = float32(value)
			}
			return app().SetControls(args[0], values)
		},
	}
}

func NewApply(appFn appProvider, defaultPath string) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "apply [preset-file]",
		Short: "Apply a preset file",
		Long:  `Apply a YAML preset assigning control values across devices. With --watch the preset is re-applied whenever the file changes.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			path := defaultPath
			if len(args) == 1 {
				path = args[0]
			}
			if !watch {
				preset, err := app.LoadPreset(path)
				if err != nil {
					return err
				}
				return a.ApplyPreset(preset)
			}
			return runWatchedPreset(cmd.Context(), a, path)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and re-apply on file changes")
	return cmd
}

func runWatchedPreset(ctx context.Context, a *app.App, path string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return a.Run(groupCtx)
	})
	group.Go(func() error {
		select {
		case <-groupCtx.Done():
			return nil
		case <-a.ConfigSvc().Ready():
		}
		preset, err := configsvc.Register(a.ConfigSvc(), path, app.Preset{}, func(preset app.Preset, err error) {
			if err != nil {
				a.Logger().Error("failed to reload preset", zap.Error(err))
				return
			}
			if err := a.ApplyPreset(preset); err != nil {
				a.Logger().Error("failed to apply preset", zap.Error(err))
			}
		})
		if err != nil {
			return err
		}
		if err := a.ApplyPreset(preset); err != nil {
			a.Logger().Error("failed to apply preset", zap.Error(err))
		}
		<-groupCtx.Done()
		return nil
	})
	return group.Wait()
}

func NewDescriptor(app appProvider) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "descriptor <address>",
		Short: "Print the report descriptor of a device",
		Long:  `Print the parsed report descriptor of a device, or the raw bytes with --raw.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := hidsvc.ParseAddress(args[0])
			if err != nil {
				return err
			}
			dev, err := app().HID().Open(addr)
			if err != nil {
				return err
			}
			defer dev.Close()

			data, err := dev.ReportDescriptor()
			if err != nil {
				return err
			}
			if raw {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			desc, err := hiddesc.Parse(data)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), desc)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print raw report descriptor bytes")
	return cmd
}

func NewWatch(app appProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch device hotplug events",
		Long:  `Stream connect and disconnect events as JSON lines until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			group, groupCtx := errgroup.WithContext(ctx)
			group.Go(func() error {
				return a.Run(groupCtx)
			})
			group.Go(func() error {
				select {
				case <-groupCtx.Done():
					return nil
				case <-a.HID().Ready():
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				for msg := range a.HID().Watch(groupCtx) {
					if err := enc.Encode(msg.Message); err != nil {
						return err
					}
				}
				return nil
			})
			return group.Wait()
		},
	}
}

func NewSimulate(app appProvider) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a virtual test keyboard",
		Long:  `Create a virtual HID keyboard with five LEDs through the uhid kernel module and log every report written to it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dev := uhidsim.New(app().Logger().Named("sim"), name)
			return dev.Start(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&name, "name", "glowctl-sim", "device name")
	return cmd
}

func openSession(a *app.App, address string) (*lights.Session, func() error, error) {
	addr, err := hidsvc.ParseAddress(address)
	if err != nil {
		return nil, nil, err
	}
	dev, err := a.HID().Open(addr)
	if err != nil {
		return nil, nil, err
	}
	sess, err := lights.NewSession(dev)
	if err != nil {
		dev.Close()
		return nil, nil, err
	}
	return sess, dev.Close, nil
}

func printJSON(w io.Writer, v any) error {
	jsonB, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(jsonB))
	return err
}
