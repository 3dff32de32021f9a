// Package spibus adapts a plain SPI bus plus a chip select line to the
// core.Transport contract. Any tinygo.org/x/drivers SPI implementation works
// as the bus: a hardware machine.SPI, the PIO state-machine SPI from
// NewPIOSPI, or a test fake.
package spibus

import (
	"sync"

	"tinygo.org/x/drivers"
)

// Pin is the chip select line, active low. machine.Pin satisfies it.
type Pin interface {
	Set(high bool)
}

// Bus brackets every transaction with chip select and serializes access so
// that several devices (each with its own Bus and CS pin) can share one
// underlying SPI bus.
type Bus struct {
	mu  sync.Mutex
	spi drivers.SPI
	cs  Pin
}

// New wraps an SPI bus and chip select pin. The pin must already be
// configured as an output; it is driven to the deasserted state here.
func New(spi drivers.SPI, cs Pin) *Bus {
	cs.Set(true)
	return &Bus{spi: spi, cs: cs}
}

// TransferSync performs one blocking full-duplex exchange under chip select.
func (b *Bus) TransferSync(req, resp []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cs.Set(false)
	err := b.spi.Tx(req, resp)
	b.cs.Set(true)
	return err
}

// TransferAsync runs the exchange on its own goroutine: the req bytes are
// clocked out first, then len(buf) bytes are clocked in, all under a single
// chip select assertion. done is invoked exactly once after the chip select
// is released.
func (b *Bus) TransferAsync(req, buf []byte, done func(error)) {
	go func() {
		b.mu.Lock()
		b.cs.Set(false)

		var err error
		if len(req) > 0 {
			err = b.spi.Tx(req, nil)
		}
		if err == nil {
			err = b.spi.Tx(nil, buf)
		}

		b.cs.Set(true)
		b.mu.Unlock()
		done(err)
	}()
}
