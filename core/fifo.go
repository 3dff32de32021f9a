// Asynchronous FIFO acquisition. The chip buffers up to 511 samples
// internally; ReadFIFOAsync drains them with a single non-blocking bulk
// transfer into a caller-owned SampleBatch and realigns the byte stream on
// completion.
package core

import "sync/atomic"

const (
	sampleSizeXYZ  = 6 // X, Y, Z slots
	sampleSizeXYZT = 8 // X, Y, Z, T slots

	// MaxBatchSize is the largest useful batch capacity: the FIFO holds at
	// most 511 samples of 8 bytes.
	MaxBatchSize = 512 * sampleSizeXYZT
)

func sampleSize(storeTemp bool) int {
	if storeTemp {
		return sampleSizeXYZT
	}
	return sampleSizeXYZ
}

// BatchState is the lifecycle state of a SampleBatch.
type BatchState uint32

const (
	// BatchFree means the batch may be submitted to ReadFIFOAsync.
	BatchFree BatchState = iota
	// BatchReading means a FIFO read into the batch is in flight. The driver
	// owns the buffer; the caller must not touch it.
	BatchReading
	// BatchComplete means the read finished and the samples are ready.
	// Ownership is back with the caller, who must call Reset before reuse.
	BatchComplete
)

// SampleBatch is a caller-owned buffer that one FIFO drain fills with
// samples. The caller allocates it once and keeps reusing it:
//
//	batch := core.NewSampleBatch(1024)
//	for {
//		switch batch.State() {
//		case core.BatchFree:
//			dev.ReadFIFOAsync(batch)
//		case core.BatchComplete:
//			consume(batch)
//			batch.Reset()
//		}
//	}
//
// The driver never resets a completed batch on its own; new data would
// otherwise overwrite samples the caller has not consumed yet.
type SampleBatch struct {
	state atomic.Uint32

	buf []byte
	err error

	// Set on acceptance and after completion.
	sampleSize  int
	bytesRead   int
	startOffset int
	numSamples  int
}

// NewSampleBatch allocates a batch with the given buffer capacity. The
// capacity should be a multiple of the sample size (6 or 8 bytes); anything
// beyond MaxBatchSize is wasted.
func NewSampleBatch(capacity int) *SampleBatch {
	return &SampleBatch{buf: make([]byte, capacity)}
}

// State returns the current lifecycle state. Safe to poll from a different
// goroutine than the one the completion runs on.
func (b *SampleBatch) State() BatchState {
	return BatchState(b.state.Load())
}

// Reset returns a completed (or failed) batch to the free state so it can be
// submitted again. It is a no-op while a read is in flight.
func (b *SampleBatch) Reset() {
	if b.State() == BatchReading {
		return
	}
	b.err = nil
	b.state.Store(uint32(BatchFree))
}

// Err returns the transport error of the last failed read, if any. A failed
// batch is returned to the free state with its error set.
func (b *SampleBatch) Err() error { return b.err }

// NumSamples returns the number of whole samples the last drain produced.
func (b *SampleBatch) NumSamples() int { return b.numSamples }

// BytesRead returns the number of valid bytes in the buffer, carried-over
// partial bytes included.
func (b *SampleBatch) BytesRead() int { return b.bytesRead }

// StartOffset returns the byte offset of the first aligned sample.
func (b *SampleBatch) StartOffset() int { return b.startOffset }

// SampleSize returns the wire size of one sample in this batch, 6 or 8.
func (b *SampleBatch) SampleSize() int { return b.sampleSize }

// Bytes returns the aligned whole-sample window of the raw buffer. Useful
// for forwarding sample data verbatim. Only valid while the batch is
// complete.
func (b *SampleBatch) Bytes() []byte {
	return b.buf[b.startOffset : b.startOffset+b.numSamples*b.sampleSize]
}

// Capacity returns the size of the underlying buffer.
func (b *SampleBatch) Capacity() int { return len(b.buf) }

// ReadFIFOAsync drains the chip's FIFO into batch without blocking. It reads
// the FIFO entry counter, clamps the transfer to the whole samples that fit
// in the batch after the carried-over partial bytes of the previous drain,
// and issues a single non-blocking bulk transfer. It returns as soon as the
// transfer is started; the batch transitions to BatchComplete (or back to
// BatchFree with Err set) when the transport signals completion.
//
// When the FIFO holds no complete sample, or none fits, the batch stays free
// and no transfer is issued. ErrBusy is returned while another transaction
// is in flight, ErrBatchNotFree when the batch has not been Reset.
func (d *Device) ReadFIFOAsync(batch *SampleBatch) error {
	if batch.State() != BatchFree {
		return ErrBatchNotFree
	}

	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return ErrBusy
	}

	// Query the FIFO entry counter. The lock stays held: this blocking read
	// and the async transfer below form one submission.
	req := []byte{CmdReadRegister, RegFIFOEntriesL, 0, 0}
	var resp [4]byte
	if err := d.tr.TransferSync(req, resp[:]); err != nil {
		d.mu.Unlock()
		return err
	}
	entries := int(resp[2]) | int(resp[3])<<8

	size := sampleSize(d.storeTemp)
	available := entries * 2 / size
	maxFit := (len(batch.buf) - d.partialCount) / size
	toRead := available
	if toRead > maxFit {
		toRead = maxFit
	}
	if toRead < 1 {
		d.mu.Unlock()
		return nil
	}

	// Prepend the partial sample left over from the previous drain.
	carried := d.partialCount
	copy(batch.buf, d.partial[:carried])

	batch.sampleSize = size
	batch.bytesRead = toRead * size // new bytes only; completion adds carried
	batch.startOffset = 0
	batch.numSamples = 0
	batch.err = nil
	batch.state.Store(uint32(BatchReading))
	d.busy = true
	d.mu.Unlock()

	cmd := []byte{CmdReadFIFO}
	dst := batch.buf[carried : carried+batch.bytesRead]
	d.tr.TransferAsync(cmd, dst, func(err error) {
		d.finishFIFORead(batch, carried, err)
	})
	return nil
}

// finishFIFORead is the transfer completion handler. It runs on whatever
// goroutine the transport invokes the callback from.
func (d *Device) finishFIFORead(batch *SampleBatch, carried int, err error) {
	d.mu.Lock()
	d.busy = false

	if err != nil {
		// Leave the carry-over untouched; the copied-in prefix is simply
		// copied again on the next submission. The batch goes back to free
		// with the error recorded so the caller can detect the failure.
		d.mu.Unlock()
		batch.err = err
		batch.bytesRead = 0
		batch.state.Store(uint32(BatchFree))
		return
	}

	n := carried + batch.bytesRead
	d.partialCount = 0

	// Realign: the stream may start mid-sample. Each 2-byte slot carries an
	// axis tag in its top two bits and the X slot is tagged 0, so the first
	// 0-tagged even offset is the first sample boundary.
	start := 0
	for ; start < n; start += 2 {
		if (batch.buf[start]>>6)&0x3 == 0x0 {
			break
		}
	}

	num, leftover := 0, 0
	if start < n {
		num = (n - start) / batch.sampleSize
		leftover = n - start - num*batch.sampleSize
		if leftover > 0 {
			copy(d.partial[:], batch.buf[n-leftover:n])
			d.partialCount = leftover
		}
	} else {
		// No sample boundary anywhere in the buffer. Discard everything
		// rather than risk decoding at a bogus offset.
		start = n
	}

	batch.bytesRead = n
	batch.startOffset = start
	batch.numSamples = num
	d.mu.Unlock()

	batch.state.Store(uint32(BatchComplete))
}
