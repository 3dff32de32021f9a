package core

import (
	"errors"
	"testing"
)

// fakeTransport scripts the chip side of the SPI link. Register reads and
// writes operate on a sparse register file; FIFO reads consume a canned byte
// stream. Completions run synchronously unless hold is set.
type fakeTransport struct {
	regs map[uint8]uint8
	fifo []byte

	syncErr  error
	asyncErr error

	hold bool // park the completion until release is called
	done func(error)

	frames       [][]byte // log of sync request frames
	lastAsyncLen int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{regs: make(map[uint8]uint8)}
}

func (t *fakeTransport) setEntries(n uint16) {
	t.regs[RegFIFOEntriesL] = uint8(n)
	t.regs[RegFIFOEntriesH] = uint8(n >> 8)
}

func (t *fakeTransport) TransferSync(req, resp []byte) error {
	if t.syncErr != nil {
		return t.syncErr
	}
	frame := make([]byte, len(req))
	copy(frame, req)
	t.frames = append(t.frames, frame)

	switch req[0] {
	case CmdReadRegister:
		for i := 2; i < len(resp); i++ {
			resp[i] = t.regs[req[1]+uint8(i-2)]
		}
	case CmdWriteRegister:
		for i := 2; i < len(req); i++ {
			t.regs[req[1]+uint8(i-2)] = req[i]
		}
	}
	return nil
}

func (t *fakeTransport) TransferAsync(req, buf []byte, done func(error)) {
	t.lastAsyncLen = len(buf)
	if t.asyncErr != nil {
		done(t.asyncErr)
		return
	}
	n := copy(buf, t.fifo)
	t.fifo = t.fifo[n:]
	if t.hold {
		t.done = done
		return
	}
	done(nil)
}

func (t *fakeTransport) release() {
	done := t.done
	t.done = nil
	done(nil)
}

func TestRegisterFraming(t *testing.T) {
	tr := newFakeTransport()
	dev := New(tr)

	if err := dev.WriteRegister8(RegTimeAct, 0x42); err != nil {
		t.Fatalf("WriteRegister8: %v", err)
	}
	if err := dev.WriteRegister16(RegThreshActL, 0x0123); err != nil {
		t.Fatalf("WriteRegister16: %v", err)
	}

	v8, err := dev.ReadRegister8(RegTimeAct)
	if err != nil {
		t.Fatalf("ReadRegister8: %v", err)
	}
	if v8 != 0x42 {
		t.Errorf("ReadRegister8 = 0x%02x, want 0x42", v8)
	}

	v16, err := dev.ReadRegister16(RegThreshActL)
	if err != nil {
		t.Fatalf("ReadRegister16: %v", err)
	}
	if v16 != 0x0123 {
		t.Errorf("ReadRegister16 = 0x%04x, want 0x0123", v16)
	}

	wantFrames := [][]byte{
		{CmdWriteRegister, RegTimeAct, 0x42},
		{CmdWriteRegister, RegThreshActL, 0x23, 0x01},
		{CmdReadRegister, RegTimeAct, 0},
		{CmdReadRegister, RegThreshActL, 0, 0},
	}
	if len(tr.frames) != len(wantFrames) {
		t.Fatalf("got %d frames, want %d", len(tr.frames), len(wantFrames))
	}
	for i, want := range wantFrames {
		got := tr.frames[i]
		if len(got) != len(want) {
			t.Errorf("frame %d length = %d, want %d", i, len(got), len(want))
			continue
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("frame %d = %v, want %v", i, got, want)
				break
			}
		}
	}
}

func TestChipDetect(t *testing.T) {
	tr := newFakeTransport()
	dev := New(tr)

	ok, err := dev.ChipDetect()
	if err != nil {
		t.Fatalf("ChipDetect: %v", err)
	}
	if ok {
		t.Error("ChipDetect = true on empty bus")
	}

	tr.regs[RegDevIDAD] = 0xad
	tr.regs[RegDevIDMST] = 0x1d
	ok, err = dev.ChipDetect()
	if err != nil {
		t.Fatalf("ChipDetect: %v", err)
	}
	if !ok {
		t.Error("ChipDetect = false, want true")
	}
}

func TestSoftReset(t *testing.T) {
	tr := newFakeTransport()
	dev := New(tr)

	if err := dev.SoftReset(); err != nil {
		t.Fatalf("SoftReset: %v", err)
	}
	if tr.regs[RegSoftReset] != 'R' {
		t.Errorf("soft reset register = 0x%02x, want 'R'", tr.regs[RegSoftReset])
	}
}

func TestSetSampleRate(t *testing.T) {
	testCases := []struct {
		rate SampleRate
		want uint8 // starting from the reset value 0x13
	}{
		{Rate3_125Hz, 0x10 | Odr12_5},
		{Rate25Hz, 0x10 | Odr100},
		{Rate100Hz, 0x10 | Odr400},
		{Rate200Hz, Odr400}, // half oversampling clears the bandwidth bit
	}

	for _, tc := range testCases {
		tr := newFakeTransport()
		tr.regs[RegFilterCtl] = 0x13 // reset value: 100 Hz, halved bandwidth
		dev := New(tr)

		if err := dev.SetSampleRate(tc.rate); err != nil {
			t.Fatalf("SetSampleRate(%d): %v", tc.rate, err)
		}
		if got := tr.regs[RegFilterCtl]; got != tc.want {
			t.Errorf("SetSampleRate(%d): FILTER_CTL = 0x%02x, want 0x%02x", tc.rate, got, tc.want)
		}
	}
}

func TestSetFilter(t *testing.T) {
	tr := newFakeTransport()
	dev := New(tr)

	if err := dev.SetFilter(Range8G, true, false, Odr200); err != nil {
		t.Fatalf("SetFilter: %v", err)
	}
	want := uint8(Range8G<<6 | HalfBWMask | Odr200)
	if got := tr.regs[RegFilterCtl]; got != want {
		t.Errorf("FILTER_CTL = 0x%02x, want 0x%02x", got, want)
	}
	if dev.RangeG() != 8 {
		t.Errorf("RangeG = %d, want 8", dev.RangeG())
	}
}

func TestSetMeasureMode(t *testing.T) {
	tr := newFakeTransport()
	tr.regs[RegPowerCtl] = PowerCtlExtClk // unrelated bit must survive
	dev := New(tr)

	if err := dev.SetMeasureMode(true); err != nil {
		t.Fatalf("SetMeasureMode: %v", err)
	}
	if got := tr.regs[RegPowerCtl]; got != PowerCtlExtClk|MeasureOn {
		t.Errorf("POWER_CTL = 0x%02x, want 0x%02x", got, PowerCtlExtClk|MeasureOn)
	}

	if err := dev.SetMeasureMode(false); err != nil {
		t.Fatalf("SetMeasureMode: %v", err)
	}
	if got := tr.regs[RegPowerCtl]; got != PowerCtlExtClk {
		t.Errorf("POWER_CTL = 0x%02x, want 0x%02x", got, PowerCtlExtClk)
	}
}

func TestSetActivityControl(t *testing.T) {
	tr := newFakeTransport()
	dev := New(tr)

	if err := dev.SetActivityControl(LinkLoopLinked, true, true, false, true); err != nil {
		t.Fatalf("SetActivityControl: %v", err)
	}
	want := uint8(LinkLoopLinked<<4 | ActivityInactRef | ActivityInactEn | ActivityActEn)
	if got := tr.regs[RegActInactCtl]; got != want {
		t.Errorf("ACT_INACT_CTL = 0x%02x, want 0x%02x", got, want)
	}
}

func TestConfigureFIFO(t *testing.T) {
	testCases := []struct {
		samples    uint16
		storeTemp  bool
		mode       uint8
		wantCtl    uint8
		sampleSize int
	}{
		{511, false, FIFOStream, FIFOAHBit | FIFOStream, 6},
		{128, true, FIFOOldestSaved, FIFOTempBit | FIFOOldestSaved, 8},
		{256, true, FIFOStream, FIFOAHBit | FIFOTempBit | FIFOStream, 8},
	}

	for i, tc := range testCases {
		tr := newFakeTransport()
		dev := New(tr)

		if err := dev.ConfigureFIFO(tc.samples, tc.storeTemp, tc.mode); err != nil {
			t.Fatalf("case %d: ConfigureFIFO: %v", i, err)
		}
		if got := tr.regs[RegFIFOSamples]; got != uint8(tc.samples) {
			t.Errorf("case %d: FIFO_SAMPLES = 0x%02x, want 0x%02x", i, got, uint8(tc.samples))
		}
		if got := tr.regs[RegFIFOControl]; got != tc.wantCtl {
			t.Errorf("case %d: FIFO_CONTROL = 0x%02x, want 0x%02x", i, got, tc.wantCtl)
		}
		if got := dev.SampleSize(); got != tc.sampleSize {
			t.Errorf("case %d: SampleSize = %d, want %d", i, got, tc.sampleSize)
		}
	}
}

func TestReadXYZT(t *testing.T) {
	tr := newFakeTransport()
	dev := New(tr)

	// -100, 200, 1000, -16 little-endian in the data registers
	put16 := func(addr uint8, v int16) {
		tr.regs[addr] = uint8(v)
		tr.regs[addr+1] = uint8(uint16(v) >> 8)
	}
	put16(RegXDataL, -100)
	put16(RegYDataL, 200)
	put16(RegZDataL, 1000)
	put16(RegTDataL, -16)

	x, y, z, temp, err := dev.ReadXYZT()
	if err != nil {
		t.Fatalf("ReadXYZT: %v", err)
	}
	if x != -100 || y != 200 || z != 1000 || temp != -16 {
		t.Errorf("ReadXYZT = (%d, %d, %d, %d), want (-100, 200, 1000, -16)", x, y, z, temp)
	}
}

func TestReadTemperature(t *testing.T) {
	tr := newFakeTransport()
	tr.regs[RegTDataL] = 0xf0 // -16 codes = -1.0 C
	tr.regs[RegTDataH] = 0xff
	dev := New(tr)

	c, err := dev.ReadTemperatureC()
	if err != nil {
		t.Fatalf("ReadTemperatureC: %v", err)
	}
	if c != -1.0 {
		t.Errorf("ReadTemperatureC = %v, want -1.0", c)
	}

	f, err := dev.ReadTemperatureF()
	if err != nil {
		t.Fatalf("ReadTemperatureF: %v", err)
	}
	if f < 30.199 || f > 30.201 {
		t.Errorf("ReadTemperatureF = %v, want 30.2", f)
	}
}

func TestSyncTransportErrorPropagates(t *testing.T) {
	tr := newFakeTransport()
	tr.syncErr = errors.New("bus fault")
	dev := New(tr)

	if _, err := dev.ReadStatus(); err == nil {
		t.Fatal("ReadStatus did not propagate the transport error")
	}
	if dev.Busy() {
		t.Error("device left busy after a failed sync transfer")
	}
}
