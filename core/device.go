// Driver core for the ADXL362 MEMS accelerometer.
//
// A Device wraps a Transport and exposes blocking register access, the
// configuration accessors for the named registers, and the asynchronous FIFO
// acquisition path (see fifo.go). One Device corresponds to one chip select
// line; independent devices are fully independent.
package core

import (
	"errors"
	"sync"
)

var (
	// ErrBusy is returned when a register access or FIFO read is requested
	// while another transaction is still in flight on the same device.
	ErrBusy = errors.New("adxl362: transaction in progress")

	// ErrBatchNotFree is returned by ReadFIFOAsync when the supplied batch
	// has not been reset to the free state.
	ErrBatchNotFree = errors.New("adxl362: sample batch not free")
)

// Device is the driver instance for a single ADXL362 chip.
//
// The blocking register path and the asynchronous FIFO path share the
// underlying transport. A single mutex serializes them: the busy flag is set
// exactly while a transaction (sync or async) is in flight, and either path
// rejects with ErrBusy instead of interleaving.
type Device struct {
	tr Transport

	mu   sync.Mutex
	busy bool

	// Mirrors the FIFO_TEMP bit written by ConfigureFIFO. Decides whether a
	// FIFO sample is 6 bytes (XYZ) or 8 bytes (XYZT).
	storeTemp bool

	// Measurement range in g, tracked by SetFilter for roll/pitch math.
	rangeG int

	// Trailing bytes of the previous FIFO drain that did not complete a full
	// sample. Prepended to the next drain so no byte is lost.
	partial      [sampleSizeXYZT]byte
	partialCount int
}

// New creates a driver instance on the given transport. It does not touch
// the chip; call SoftReset and the configuration setters to bring it up.
func New(tr Transport) *Device {
	return &Device{tr: tr, rangeG: 2}
}

// Busy reports whether a transaction is currently in flight.
func (d *Device) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// SampleSize returns the wire size of one FIFO sample: 6 bytes for XYZ or 8
// bytes for XYZT, depending on how ConfigureFIFO was called.
func (d *Device) SampleSize() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return sampleSize(d.storeTemp)
}

// transact runs one blocking full-duplex exchange. It refuses to start while
// an asynchronous FIFO read is outstanding so the two paths never interleave
// on the bus.
func (d *Device) transact(req, resp []byte) error {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return ErrBusy
	}
	d.busy = true
	d.mu.Unlock()

	err := d.tr.TransferSync(req, resp)

	d.mu.Lock()
	d.busy = false
	d.mu.Unlock()
	return err
}

// ReadRegister8 reads a single 8-bit register.
func (d *Device) ReadRegister8(addr uint8) (uint8, error) {
	req := []byte{CmdReadRegister, addr, 0}
	resp := make([]byte, len(req))
	if err := d.transact(req, resp); err != nil {
		return 0, err
	}
	return resp[2], nil
}

// ReadRegister16 reads a pair of registers as a little-endian 16-bit value.
// addr must be the first of an _L/_H register pair.
func (d *Device) ReadRegister16(addr uint8) (uint16, error) {
	req := []byte{CmdReadRegister, addr, 0, 0}
	resp := make([]byte, len(req))
	if err := d.transact(req, resp); err != nil {
		return 0, err
	}
	return uint16(resp[2]) | uint16(resp[3])<<8, nil
}

// WriteRegister8 writes a single 8-bit register.
func (d *Device) WriteRegister8(addr uint8, value uint8) error {
	req := []byte{CmdWriteRegister, addr, value}
	resp := make([]byte, len(req))
	return d.transact(req, resp)
}

// WriteRegister16 writes a pair of registers as a little-endian 16-bit value.
// addr must be the first of an _L/_H register pair.
func (d *Device) WriteRegister16(addr uint8, value uint16) error {
	req := []byte{CmdWriteRegister, addr, byte(value), byte(value >> 8)}
	resp := make([]byte, len(req))
	return d.transact(req, resp)
}

// SoftReset issues a soft reset. The chip takes a little while to come back;
// poll ReadStatus until it returns non-zero.
func (d *Device) SoftReset() error {
	return d.WriteRegister8(RegSoftReset, 'R')
}

// ChipDetect reads the fixed ID registers and reports whether an ADXL362
// responds on the bus.
func (d *Device) ChipDetect() (bool, error) {
	ad, err := d.ReadRegister8(RegDevIDAD)
	if err != nil {
		return false, err
	}
	mst, err := d.ReadRegister8(RegDevIDMST)
	if err != nil {
		return false, err
	}
	return ad == 0xad && mst == 0x1d, nil
}

// ReadStatus reads the STATUS register. A freshly reset chip returns
// StatusAwake (0x40) once it is ready.
func (d *Device) ReadStatus() (uint8, error) {
	return d.ReadRegister8(RegStatus)
}

// ReadNumFIFOEntries reads the FIFO entry counter. The count is in 2-byte
// words, not samples: 3 entries make one XYZ sample, 4 one XYZT sample.
func (d *Device) ReadNumFIFOEntries() (uint16, error) {
	return d.ReadRegister16(RegFIFOEntriesL)
}

// ReadXYZ reads one acceleration sample from the data registers. When
// draining continuously, the FIFO path is more efficient.
func (d *Device) ReadXYZ() (x, y, z int16, err error) {
	req := make([]byte, 8)
	resp := make([]byte, len(req))
	req[0] = CmdReadRegister
	req[1] = RegXDataL
	if err = d.transact(req, resp); err != nil {
		return 0, 0, 0, err
	}
	x = int16(uint16(resp[2]) | uint16(resp[3])<<8)
	y = int16(uint16(resp[4]) | uint16(resp[5])<<8)
	z = int16(uint16(resp[6]) | uint16(resp[7])<<8)
	return x, y, z, nil
}

// ReadXYZT reads one acceleration sample plus the temperature registers.
func (d *Device) ReadXYZT() (x, y, z, t int16, err error) {
	req := make([]byte, 10)
	resp := make([]byte, len(req))
	req[0] = CmdReadRegister
	req[1] = RegXDataL
	if err = d.transact(req, resp); err != nil {
		return 0, 0, 0, 0, err
	}
	x = int16(uint16(resp[2]) | uint16(resp[3])<<8)
	y = int16(uint16(resp[4]) | uint16(resp[5])<<8)
	z = int16(uint16(resp[6]) | uint16(resp[7])<<8)
	t = int16(uint16(resp[8]) | uint16(resp[9])<<8)
	return x, y, z, t, nil
}
