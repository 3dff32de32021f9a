//go:build rp2040 || rp2350

package spibus

import (
	"machine"

	pio "github.com/tinygo-org/pio/rp2-pio"
	"github.com/tinygo-org/pio/rp2-pio/piolib"
	"tinygo.org/x/drivers"
)

// NewPIOSPI builds a drivers.SPI backed by a PIO state machine, for boards
// where both hardware SPI controllers are spoken for. The state machine must
// be claimed by the caller.
func NewPIOSPI(sm pio.StateMachine, cfg machine.SPIConfig) (drivers.SPI, error) {
	spi, err := piolib.NewSPI(sm, cfg)
	if err != nil {
		return nil, err
	}
	return &pioSPI{spi: spi}, nil
}

// pioSPI pads transfers: the PIO implementation requires equal-length
// buffers, while Bus issues write-only and read-only exchanges.
type pioSPI struct {
	spi     *piolib.SPI
	scratch [64]byte
}

func (p *pioSPI) Tx(w, r []byte) error {
	switch {
	case len(w) == len(r):
		return p.spi.Tx(w, r)
	case r == nil:
		// Write-only: clock the request out, discard the returned bytes.
		for len(w) > 0 {
			n := len(w)
			if n > len(p.scratch) {
				n = len(p.scratch)
			}
			if err := p.spi.Tx(w[:n], p.scratch[:n]); err != nil {
				return err
			}
			w = w[n:]
		}
		return nil
	case w == nil:
		// Read-only: clock zeros out while filling r.
		zeros := p.scratch[:]
		for i := range zeros {
			zeros[i] = 0
		}
		for len(r) > 0 {
			n := len(r)
			if n > len(zeros) {
				n = len(zeros)
			}
			if err := p.spi.Tx(zeros[:n], r[:n]); err != nil {
				return err
			}
			r = r[n:]
		}
		return nil
	default:
		return machine.ErrTxInvalidSliceSize
	}
}

func (p *pioSPI) Transfer(b byte) (byte, error) {
	w := [1]byte{b}
	var r [1]byte
	if err := p.spi.Tx(w[:], r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}
