// Package stream implements the byte framing used to move accelerometer
// sample batches off the device over a serial or TCP link.
//
// Frame layout:
//
//	sync (0x7e) | length | flags | sequence | payload... | crc16 hi | crc16 lo
//
// length counts payload bytes only. flags bit 0 marks 8-byte XYZT samples;
// a clear bit means 6-byte XYZ samples. The checksum covers length through
// the last payload byte, so a receiver can resynchronize on garbage by
// skipping to the next sync byte that yields a valid checksum.
package stream

import (
	"errors"
	"io"

	"adxl362/core"
)

const (
	// SyncByte introduces every frame.
	SyncByte = 0x7e

	headerSize  = 4
	trailerSize = 2

	// FlagStoreTemp marks frames carrying 8-byte XYZT samples.
	FlagStoreTemp = 0x01

	// MaxPayload is the largest payload a single frame can carry.
	MaxPayload = 255
)

// ErrPayloadTooLarge is returned for payloads beyond MaxPayload bytes.
var ErrPayloadTooLarge = errors.New("stream: payload too large for one frame")

// Sample is one decoded accelerometer measurement. T is zero for XYZ-only
// frames.
type Sample struct {
	X, Y, Z, T int16
}

// Frame is one decoded frame.
type Frame struct {
	Seq       uint8
	StoreTemp bool
	Payload   []byte
}

// SampleSize returns the wire size of one sample in this frame.
func (f *Frame) SampleSize() int {
	if f.StoreTemp {
		return 8
	}
	return 6
}

// Samples decodes the payload into measurements. Trailing bytes that do not
// complete a sample are ignored.
func (f *Frame) Samples() []Sample {
	size := f.SampleSize()
	n := len(f.Payload) / size
	samples := make([]Sample, n)
	for i := 0; i < n; i++ {
		p := f.Payload[i*size:]
		samples[i].X = core.DecodeSigned14(p[0], p[1])
		samples[i].Y = core.DecodeSigned14(p[2], p[3])
		samples[i].Z = core.DecodeSigned14(p[4], p[5])
		if size == 8 {
			samples[i].T = core.DecodeSigned14(p[6], p[7])
		}
	}
	return samples
}

// Encoder writes frames to an underlying byte pipe, stamping each with an
// incrementing sequence number.
type Encoder struct {
	w   io.Writer
	seq uint8
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// WriteFrame emits one frame carrying payload.
func (e *Encoder) WriteFrame(payload []byte, storeTemp bool) error {
	if len(payload) > MaxPayload {
		return ErrPayloadTooLarge
	}

	flags := uint8(0)
	if storeTemp {
		flags |= FlagStoreTemp
	}

	frame := make([]byte, 0, headerSize+len(payload)+trailerSize)
	frame = append(frame, SyncByte, uint8(len(payload)), flags, e.seq)
	frame = append(frame, payload...)
	crc := crc16(frame[1:])
	frame = append(frame, uint8(crc>>8), uint8(crc))
	e.seq++

	_, err := e.w.Write(frame)
	return err
}

// WriteBatch emits a completed sample batch, split into as many frames as
// needed so every frame carries whole samples.
func (e *Encoder) WriteBatch(b *core.SampleBatch) error {
	size := b.SampleSize()
	storeTemp := size == 8
	chunk := (MaxPayload / size) * size

	payload := b.Bytes()
	for len(payload) > 0 {
		n := len(payload)
		if n > chunk {
			n = chunk
		}
		if err := e.WriteFrame(payload[:n], storeTemp); err != nil {
			return err
		}
		payload = payload[n:]
	}
	return nil
}

// Decoder reads frames back out of a byte pipe, skipping garbage and frames
// with bad checksums.
type Decoder struct {
	r   io.Reader
	buf []byte
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Next returns the next well-formed frame. Bytes that do not parse as a
// frame with a valid checksum are discarded one at a time until a frame
// fits. Any error from the underlying reader is returned as-is, so a clean
// end of stream surfaces as io.EOF.
func (d *Decoder) Next() (*Frame, error) {
	var readErr error
	for {
		// Drop leading garbage up to the next sync byte.
		for len(d.buf) > 0 && d.buf[0] != SyncByte {
			d.buf = d.buf[1:]
		}

		if len(d.buf) >= headerSize {
			total := headerSize + int(d.buf[1]) + trailerSize
			if len(d.buf) >= total {
				body := d.buf[1 : total-trailerSize]
				want := uint16(d.buf[total-2])<<8 | uint16(d.buf[total-1])
				if crc16(body) != want {
					// Corrupt frame: skip the sync byte and rescan.
					d.buf = d.buf[1:]
					continue
				}

				frame := &Frame{
					Seq:       d.buf[3],
					StoreTemp: d.buf[2]&FlagStoreTemp != 0,
					Payload:   append([]byte(nil), d.buf[headerSize:total-trailerSize]...),
				}
				d.buf = d.buf[total:]
				return frame, nil
			}
		}

		if readErr != nil {
			// No more input coming. Whatever is buffered could still hide
			// a frame behind a stray sync byte, so shed a byte at a time
			// before giving up.
			if len(d.buf) > 0 {
				d.buf = d.buf[1:]
				continue
			}
			return nil, readErr
		}
		if err := d.fill(); err != nil {
			readErr = err
		}
	}
}

func (d *Decoder) fill() error {
	chunk := make([]byte, 256)
	n, err := d.r.Read(chunk)
	if n > 0 {
		d.buf = append(d.buf, chunk[:n]...)
		return nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return err
}
