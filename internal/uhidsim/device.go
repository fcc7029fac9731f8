// Package uhidsim creates a virtual HID keyboard through the uhid
// kernel module. It exposes a five-LED output report and logs every
// report the host writes, which makes it a test target for the CLI
// without real hardware.
package uhidsim

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/glowctl/glowctl/pkg/bits"
	"github.com/psanford/uhid"
	"go.uber.org/zap"
)

// Descriptor is a boot-style keyboard report descriptor: an 8-key
// input report and an output report with the five standard LEDs plus
// three bits of padding.
var Descriptor = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x06, // Usage (Keyboard)
	0xA1, 0x01, // Collection (Application)
	0x05, 0x07, //   Usage Page (Keyboard)
	0x19, 0x00, //   Usage Minimum (0)
	0x29, 0x65, //   Usage Maximum (101)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x65, //   Logical Maximum (101)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x08, //   Report Count (8)
	0x81, 0x00, //   Input (Data,Array)
	0x05, 0x08, //   Usage Page (LED)
	0x19, 0x01, //   Usage Minimum (Num Lock)
	0x29, 0x05, //   Usage Maximum (Kana)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x05, //   Report Count (5)
	0x91, 0x02, //   Output (Data,Var,Abs)
	0x75, 0x03, //   Report Size (3)
	0x95, 0x01, //   Report Count (1)
	0x91, 0x01, //   Output (Const)
	0xC0, // End Collection
}

const (
	defaultVendorID  = 0x1209
	defaultProductID = 0x0001
)

type reportType uint8

const (
	reportTypeFeature reportType = 0
	reportTypeOutput  reportType = 1
	reportTypeInput   reportType = 2
)

const uhidReportSize = 4096

type getReportRequest struct {
	RequestID  uint32
	ReportID   uint8
	ReportType reportType
}

type getReportReply struct {
	EventType uhid.EventType
	RequestID uint32
	Error     uint16
	Size      uint16
	Data      [uhidReportSize]byte
}

type setReportRequest struct {
	RequestID  uint32
	ReportID   uint8
	ReportType reportType
	Size       uint16
	Data       [uhidReportSize]byte
}

type setReportReply struct {
	EventType uhid.EventType
	RequestID uint32
	Error     uint16
}

type Device struct {
	log  *zap.Logger
	name string

	mu    sync.Mutex
	state map[uint8][]byte
}

func New(log *zap.Logger, name string) *Device {
	return &Device{
		log:   log,
		name:  name,
		state: make(map[uint8][]byte),
	}
}

// Start creates the virtual device and serves uhid events until ctx is
// cancelled.
func (d *Device) Start(ctx context.Context) error {
	dev, err := uhid.NewDevice(d.name, Descriptor)
	if err != nil {
		return fmt.Errorf("failed to create uhid device: %w", err)
	}
	dev.Data.Bus = 0x03
	dev.Data.VendorID = defaultVendorID
	dev.Data.ProductID = defaultProductID

	events, err := dev.Open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open uhid device: %w", err)
	}
	defer dev.Close()

	d.log.Info("Virtual device created", zap.String("name", d.name))
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			d.handleEvent(dev, event)
		}
	}
}

func (d *Device) handleEvent(dev *uhid.Device, event uhid.Event) {
	switch event.Type {
	case uhid.Output:
		data := make([]byte, len(event.Data))
		copy(data, event.Data)
		d.storeReport(data)
		d.log.Info("Output report received",
			zap.String("data", bits.View(data).String()))
	case uhid.GetReport:
		reader := bytes.NewReader(event.Data)
		var req getReportRequest
		if err := binary.Read(reader, binary.LittleEndian, &req); err != nil {
			d.log.Error("failed to read GetReport request", zap.Error(err))
			return
		}
		reply := getReportReply{
			EventType: uhid.GetReportReply,
			RequestID: req.RequestID,
		}
		if req.ReportType != reportTypeOutput {
			reply.Error = 1
		} else {
			data := d.loadReport(req.ReportID)
			reply.Size = uint16(len(data))
			copy(reply.Data[:], data)
		}
		if err := dev.WriteEvent(reply); err != nil {
			d.log.Error("failed to write GetReport reply", zap.Error(err))
		}
	case uhid.SetReport:
		reader := bytes.NewReader(event.Data)
		var req setReportRequest
		if err := binary.Read(reader, binary.LittleEndian, &req); err != nil {
			d.log.Error("failed to read SetReport request", zap.Error(err))
			return
		}
		data := make([]byte, req.Size)
		copy(data, req.Data[:req.Size])
		d.storeReport(data)
		d.log.Info("SetReport received",
			zap.Uint8("reportId", req.ReportID),
			zap.String("data", bits.View(data).String()))
		reply := setReportReply{
			EventType: uhid.SetReportReply,
			RequestID: req.RequestID,
		}
		if err := dev.WriteEvent(reply); err != nil {
			d.log.Error("failed to write SetReport reply", zap.Error(err))
		}
	}
}

// storeReport keeps the last report per report id. Reports without an
// id prefix land under id 0.
func (d *Device) storeReport(data []byte) {
	var id uint8
	if len(data) > 0 {
		id = data[0]
	}
	d.mu.Lock()
	d.state[id] = data
	d.mu.Unlock()
}

func (d *Device) loadReport(id uint8) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state[id]
}
