// Package hidsvc is the HID transport layer: it enumerates devices
// through pluggable backends, opens them for report I/O and publishes
// hotplug events. It knows nothing about report contents.
package hidsvc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/glowctl/glowctl/pkg/bus"
	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
)

var (
	ErrDeviceNotFound = errors.New("device not found")
	ErrUnknownBackend = errors.New("unknown backend")
)

// TransportError marks a failure at the OS/device layer: enumeration,
// open, descriptor read or write. It is never retried internally.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("hid transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Address identifies a device as seen by one backend.
type Address struct {
	Backend string `json:"backend"`
	ID      string `json:"id"`
}

func (a Address) String() string {
	return fmt.Sprintf("%s/%s", a.Backend, a.ID)
}

// DefaultBackend is assumed when an address string has no backend
// prefix.
const DefaultBackend = "linux"

func ParseAddress(s string) (Address, error) {
	parts := strings.SplitN(s, "/", 2)
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return Address{}, fmt.Errorf("invalid address: %q", s)
		}
		return Address{Backend: DefaultBackend, ID: parts[0]}, nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return Address{}, fmt.Errorf("invalid address: %q", s)
		}
		return Address{Backend: parts[0], ID: parts[1]}, nil
	}
	return Address{}, fmt.Errorf("invalid address: %q", s)
}

type DeviceInfo struct {
	Address      Address `json:"address"`
	Name         string  `json:"name"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	Serial       string  `json:"serial,omitempty"`
	VendorID     uint16  `json:"vendorId"`
	ProductID    uint16  `json:"productId"`
	Usage        string  `json:"usage,omitempty"`
}

// Event is published on the hotplug bus, keyed by backend name.
type Event struct {
	Connected    []DeviceInfo
	Disconnected []Address
}

// Device is one open HID device. Writes are single, non-retried
// operations; cancellation is not supported.
type Device interface {
	ReportDescriptor() ([]byte, error)
	IndexedString(index int) (string, bool)
	Write(data []byte) (int, error)
	Close() error
}

// Backend enumerates and opens devices for one underlying mechanism.
// List and Open work without Start; Start adds hotplug publishing.
type Backend interface {
	Start(ctx context.Context, pub bus.Publisher[Event]) error
	Ready() <-chan struct{}
	List() ([]DeviceInfo, error)
	Open(id string) (Device, error)
}

var defaultOptions = serviceOptions{
	backends:       make(map[string]Backend),
	backoffTimeout: 5 * time.Second,
}

type serviceOptions struct {
	backends       map[string]Backend
	backoffTimeout time.Duration
}

type Option func(*serviceOptions)

func WithBackend(name string, backend Backend) Option {
	return func(o *serviceOptions) {
		o.backends[name] = backend
	}
}

func WithBackoffTimeout(d time.Duration) Option {
	return func(o *serviceOptions) {
		o.backoffTimeout = d
	}
}

type Service struct {
	log     *zap.Logger
	options serviceOptions
	ready   chan struct{}

	events    *bus.Bus[string, Event]
	connected *xsync.MapOf[Address, DeviceInfo]
}

func New(log *zap.Logger, opts ...Option) *Service {
	options := defaultOptions
	for _, opt := range opts {
		opt(&options)
	}
	return &Service{
		log:       log,
		options:   options,
		ready:     make(chan struct{}),
		events:    bus.NewBus[string, Event](log),
		connected: xsync.NewMapOf[Address, DeviceInfo](),
	}
}

// Start runs the hotplug machinery and blocks until ctx is cancelled.
// One-shot callers can use List and Open without starting the service.
func (s *Service) Start(ctx context.Context) error {
	if err := s.events.Start(ctx); err != nil {
		return fmt.Errorf("failed to start event bus: %w", err)
	}
	select {
	case <-ctx.Done():
		return nil
	case <-s.events.Ready():
	}

	s.consumeEvents(ctx)

	for name := range s.options.backends {
		go s.runBackend(ctx, name)
	}
	for _, backend := range s.options.backends {
		select {
		case <-ctx.Done():
			return nil
		case <-backend.Ready():
		}
	}
	close(s.ready)
	s.log.Info("HID service started")
	<-ctx.Done()
	return nil
}

func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

func (s *Service) consumeEvents(ctx context.Context) {
	go func() {
		ch := s.events.Subscribe(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				for _, addr := range msg.Message.Disconnected {
					s.connected.Delete(addr)
					s.log.Debug("device disconnected", zap.Stringer("address", addr))
				}
				for _, dev := range msg.Message.Connected {
					s.connected.Store(dev.Address, dev)
					s.log.Debug("device connected", zap.Stringer("address", dev.Address), zap.String("name", dev.Name))
				}
			}
		}
	}()
}

func (s *Service) runBackend(ctx context.Context, name string) {
	backend := s.options.backends[name]
	for {
		err := backend.Start(ctx, s.events.CreatePublisher(name))
		if err != nil {
			s.log.Error("backend failed", zap.String("backend", name), zap.Error(err))
		}
		t := time.NewTimer(s.options.backoffTimeout)
		// retry after backoff
		select {
		case <-ctx.Done():
			if !t.Stop() {
				<-t.C
			}
			return
		case <-t.C:
		}
	}
}

// Watch streams hotplug events until ctx is cancelled. The service
// must be started.
func (s *Service) Watch(ctx context.Context) <-chan bus.Message[string, Event] {
	return s.events.Subscribe(ctx)
}

// List enumerates devices across all backends, sorted by address.
func (s *Service) List() ([]DeviceInfo, error) {
	var devices []DeviceInfo
	for name, backend := range s.options.backends {
		devs, err := backend.List()
		if err != nil {
			return nil, fmt.Errorf("backend %s: %w", name, err)
		}
		devices = append(devices, devs...)
	}
	sort.Slice(devices, func(i, j int) bool {
		return devices[i].Address.String() < devices[j].Address.String()
	})
	return devices, nil
}

func (s *Service) Open(addr Address) (Device, error) {
	backend, ok := s.options.backends[addr.Backend]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, addr.Backend)
	}
	dev, err := backend.Open(addr.ID)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", addr, err)
	}
	return dev, nil
}

func (s *Service) IsConnected(addr Address) bool {
	_, ok := s.connected.Load(addr)
	return ok
}
