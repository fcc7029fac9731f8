package lights

import (
	"fmt"

	"github.com/glowctl/glowctl/hiddesc"
)

// DescriptorError marks a device whose report descriptor could not be
// parsed. It is fatal for the session: no partial control model is
// produced. Callers can distinguish it from transport failures to
// decide whether reopening the device is worth a retry.
type DescriptorError struct {
	Err error
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("report descriptor parse failed: %v", e.Err)
}

func (e *DescriptorError) Unwrap() error {
	return e.Err
}

// Device is the transport surface a session needs: descriptor read,
// string-table lookup and report write. internal/hidsvc satisfies it.
type Device interface {
	ReportDescriptor() ([]byte, error)
	IndexedString(index int) (string, bool)
	Write(data []byte) (int, error)
}

// Session holds the control model of one open device. The model is
// built fresh from the current descriptor and discarded with the
// session; no control value survives it.
type Session struct {
	dev     Device
	reports []Report
}

// NewSession reads and parses the device's report descriptor and
// builds the control model. Transport failures propagate unchanged;
// unparseable descriptors yield a *DescriptorError.
func NewSession(dev Device) (*Session, error) {
	raw, err := dev.ReportDescriptor()
	if err != nil {
		return nil, err
	}
	desc, err := hiddesc.Parse(raw)
	if err != nil {
		return nil, &DescriptorError{Err: err}
	}
	return &Session{
		dev:     dev,
		reports: Build(desc, dev),
	}, nil
}

// Reports returns the session's control model. Callers mutate control
// values in place and hand the report back to Write.
func (s *Session) Reports() []Report {
	return s.reports
}

// Write encodes the report and performs a single, non-retried write.
// Transport failures are returned unmodified.
func (s *Session) Write(r Report) error {
	buf := Encode(r)
	if _, err := s.dev.Write(buf); err != nil {
		return err
	}
	return nil
}
