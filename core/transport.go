package core

// Transport is the SPI link a Device runs on. Implementations own the chip
// select line and assert it for the duration of each call: assert before the
// first byte is clocked, deassert after TransferSync returns or after the
// done callback of TransferAsync has been scheduled.
//
// A Device never issues overlapping calls on its Transport, but separate
// Device instances may share one bus if the implementation serializes calls.
type Transport interface {
	// TransferSync performs one blocking full-duplex exchange. req and resp
	// must have the same length; resp is filled with the bytes clocked in
	// while req was clocked out.
	TransferSync(req, resp []byte) error

	// TransferAsync starts a non-blocking transfer. The req bytes (may be
	// empty) are clocked out first, then len(buf) bytes are clocked into buf.
	// done is invoked exactly once when the transfer finishes, possibly on a
	// different goroutine than the caller's. The transport must not touch
	// buf after done fires.
	TransferAsync(req, buf []byte, done func(error))
}
