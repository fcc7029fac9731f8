// Package linux implements the hidsvc.Backend interface on top of the
// hidraw and udev kernel interfaces.
package linux

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/glowctl/glowctl/hidusage"
	"github.com/glowctl/glowctl/internal/hidsvc"
	"github.com/glowctl/glowctl/pkg/bus"
	"github.com/jochenvg/go-udev"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sstallion/go-hid"
	"go.uber.org/zap"
)

var defaultBackendOptions = backendOptions{
	pollInterval: 1 * time.Second,
}

type backendOptions struct {
	pollInterval time.Duration
}

type Option func(*backendOptions)

func WithPollInterval(d time.Duration) Option {
	return func(o *backendOptions) {
		o.pollInterval = d
	}
}

// HidAddress identifies a device by vendor, product and USB interface
// number. It survives replugging, unlike hidraw node paths.
type HidAddress struct {
	VendorID  uint16
	ProductID uint16
	Interface int
}

func (a HidAddress) String() string {
	return fmt.Sprintf("%04x:%04x:%d", a.VendorID, a.ProductID, a.Interface)
}

func ParseHidAddress(s string) (HidAddress, error) {
	var addr HidAddress
	_, err := fmt.Sscanf(s, "%04x:%04x:%d", &addr.VendorID, &addr.ProductID, &addr.Interface)
	if err != nil {
		return HidAddress{}, fmt.Errorf("invalid hid address %q: %w", s, err)
	}
	return addr, nil
}

type Backend struct {
	log     *zap.Logger
	options backendOptions

	devices *xsync.MapOf[HidAddress, hid.DeviceInfo]
	udev    *udev.Udev
	ready   chan struct{}
}

func NewBackend(log *zap.Logger, opts ...Option) *Backend {
	options := defaultBackendOptions
	for _, opt := range opts {
		opt(&options)
	}
	return &Backend{
		log:     log,
		options: options,
		devices: xsync.NewMapOf[HidAddress, hid.DeviceInfo](),
		ready:   make(chan struct{}),
		udev:    &udev.Udev{},
	}
}

func (b *Backend) Ready() <-chan struct{} {
	return b.ready
}

func (b *Backend) Start(ctx context.Context, pub bus.Publisher[hidsvc.Event]) error {
	hid.Init()

	b.log.Info("Starting Linux HID backend")
	if err := b.refresh(ctx, pub); err != nil {
		return fmt.Errorf("failed to enumerate HID devices: %w", err)
	}
	close(b.ready)
	b.log.Info("Linux HID backend started")

	pollTicker := time.NewTicker(b.options.pollInterval)
	defer pollTicker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pollTicker.C:
			if err := b.refresh(ctx, pub); err != nil {
				b.log.Error("failed to refresh HID devices", zap.Error(err))
			}
		}
	}
}

func (b *Backend) refresh(ctx context.Context, pub bus.Publisher[hidsvc.Event]) error {
	current, err := enumerate()
	if err != nil {
		return err
	}
	var disconnected []hidsvc.Address
	var connected []hidsvc.DeviceInfo
	b.devices.Range(func(addr HidAddress, _ hid.DeviceInfo) bool {
		if _, ok := current[addr]; !ok {
			disconnected = append(disconnected, hidsvc.Address{Backend: hidsvc.DefaultBackend, ID: addr.String()})
			b.devices.Delete(addr)
			return true
		}
		delete(current, addr)
		return true
	})
	for addr, device := range current {
		b.devices.Store(addr, device)
		connected = append(connected, b.deviceInfo(addr, device))
	}
	if len(connected) > 0 || len(disconnected) > 0 {
		pub(ctx, hidsvc.Event{Connected: connected, Disconnected: disconnected})
	}
	return nil
}

func (b *Backend) List() ([]hidsvc.DeviceInfo, error) {
	hid.Init()
	current, err := enumerate()
	if err != nil {
		return nil, &hidsvc.TransportError{Op: "enumerate", Err: err}
	}
	infos := make([]hidsvc.DeviceInfo, 0, len(current))
	for addr, device := range current {
		b.devices.Store(addr, device)
		infos = append(infos, b.deviceInfo(addr, device))
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Address.ID < infos[j].Address.ID
	})
	return infos, nil
}

func (b *Backend) deviceInfo(addr HidAddress, device hid.DeviceInfo) hidsvc.DeviceInfo {
	return hidsvc.DeviceInfo{
		Address:      hidsvc.Address{Backend: hidsvc.DefaultBackend, ID: addr.String()},
		Name:         b.generateName(device),
		Manufacturer: device.MfrStr,
		Serial:       device.SerialNbr,
		VendorID:     device.VendorID,
		ProductID:    device.ProductID,
		Usage:        hidusage.Format(device.UsagePage, device.Usage),
	}
}

// generateName prefers the hidapi strings, then the kernel HID_NAME
// udev property, then the bare vendor:product pair.
func (b *Backend) generateName(device hid.DeviceInfo) string {
	var parts []string
	if device.MfrStr != "" {
		parts = append(parts, device.MfrStr)
	}
	if device.ProductStr != "" {
		parts = append(parts, device.ProductStr)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if name := b.udevName(device.Path); name != "" {
		return name
	}
	return fmt.Sprintf("%04x:%04x", device.VendorID, device.ProductID)
}

func (b *Backend) udevName(path string) string {
	hidrawDev := b.udev.NewDeviceFromSubsystemSysname("hidraw", filepath.Base(path))
	if hidrawDev == nil {
		return ""
	}
	hidDev := hidrawDev.Parent()
	if hidDev == nil {
		return ""
	}
	return hidDev.PropertyValue("HID_NAME")
}

func enumerate() (map[HidAddress]hid.DeviceInfo, error) {
	devices := make(map[HidAddress]hid.DeviceInfo)
	err := hid.Enumerate(hid.VendorIDAny, hid.ProductIDAny, func(device *hid.DeviceInfo) error {
		addr := HidAddress{
			VendorID:  device.VendorID,
			ProductID: device.ProductID,
			Interface: device.InterfaceNbr,
		}
		devices[addr] = *device
		return nil
	})
	if err != nil {
		return nil, err
	}
	return devices, nil
}

func (b *Backend) Open(id string) (hidsvc.Device, error) {
	addr, err := ParseHidAddress(id)
	if err != nil {
		return nil, err
	}
	info, ok := b.devices.Load(addr)
	if !ok {
		// enumeration may not have run yet
		current, err := enumerate()
		if err != nil {
			return nil, &hidsvc.TransportError{Op: "enumerate", Err: err}
		}
		info, ok = current[addr]
		if !ok {
			return nil, fmt.Errorf("%w: %s", hidsvc.ErrDeviceNotFound, id)
		}
		b.devices.Store(addr, info)
	}
	handle, err := hid.OpenPath(info.Path)
	if err != nil {
		return nil, &hidsvc.TransportError{Op: "open", Err: err}
	}
	return &device{hid: handle}, nil
}

type device struct {
	hid *hid.Device
}

func (d *device) ReportDescriptor() ([]byte, error) {
	buf := make([]byte, 4096)
	n, err := d.hid.GetReportDescriptor(buf)
	if err != nil {
		return nil, &hidsvc.TransportError{Op: "get report descriptor", Err: err}
	}
	return buf[:n], nil
}

func (d *device) IndexedString(index int) (string, bool) {
	s, err := d.hid.GetIndexedStr(index)
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

func (d *device) Write(data []byte) (int, error) {
	n, err := d.hid.Write(data)
	if err != nil {
		return n, &hidsvc.TransportError{Op: "write", Err: err}
	}
	return n, nil
}

func (d *device) Close() error {
	return d.hid.Close()
}
