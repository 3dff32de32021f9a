// Configuration accessors for the named ADXL362 registers. These are pure
// bitfield encode/decode over the register primitives in device.go.
package core

// SampleRate selects the output data rate programmed by SetSampleRate.
// Rates up to 100 Hz use quarter-oversampling (halved bandwidth); 200 Hz
// uses half-oversampling.
type SampleRate uint8

const (
	Rate3_125Hz SampleRate = iota // 3.125 samples per second
	Rate6_25Hz                    // 6.25 samples per second
	Rate12_5Hz                    // 12.5 samples per second
	Rate25Hz                      // 25 samples per second
	Rate50Hz                      // 50 samples per second
	Rate100Hz                     // 100 samples per second
	Rate200Hz                     // 200 samples per second
)

// SetSampleRate programs the output data rate field of the filter control
// register, leaving the range and external-sample bits alone.
func (d *Device) SetSampleRate(rate SampleRate) error {
	filterCtl, err := d.ReadFilterControl()
	if err != nil {
		return err
	}

	filterCtl &^= OdrMask
	filterCtl |= HalfBWMask // quarter oversampling, the default

	switch rate {
	case Rate3_125Hz:
		filterCtl |= Odr12_5
	case Rate6_25Hz:
		filterCtl |= Odr25
	case Rate12_5Hz:
		filterCtl |= Odr50
	case Rate25Hz:
		filterCtl |= Odr100
	case Rate50Hz:
		filterCtl |= Odr200
	case Rate200Hz:
		filterCtl |= Odr400
		filterCtl &^= HalfBWMask // half oversampling
	default:
		filterCtl |= Odr400
	}

	return d.WriteFilterControl(filterCtl)
}

// ReadFilterControl reads the FILTER_CTL register (reset value 0x13).
func (d *Device) ReadFilterControl() (uint8, error) {
	return d.ReadRegister8(RegFilterCtl)
}

// WriteFilterControl writes the FILTER_CTL register as a raw value. SetFilter
// is easier to use and also tracks the measurement range for roll/pitch math.
func (d *Device) WriteFilterControl(value uint8) error {
	return d.WriteRegister8(RegFilterCtl, value)
}

// SetFilter writes the FILTER_CTL register from its broken-out fields:
// measurement range (Range2G/Range4G/Range8G), halved bandwidth, external
// sampling trigger, and output data rate (Odr12_5..Odr400).
func (d *Device) SetFilter(rangeSel uint8, halfBW, extSample bool, odr uint8) error {
	value := (rangeSel & 0x3) << 6
	if halfBW {
		value |= HalfBWMask
	}
	if extSample {
		value |= ExtSampleMask
	}
	value |= odr & OdrMask

	if err := d.WriteRegister8(RegFilterCtl, value); err != nil {
		return err
	}

	g := 2
	switch rangeSel {
	case Range4G:
		g = 4
	case Range8G:
		g = 8
	}
	d.mu.Lock()
	d.rangeG = g
	d.mu.Unlock()
	return nil
}

// RangeG returns the measurement range in g as last programmed by SetFilter.
func (d *Device) RangeG() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rangeG
}

// ReadPowerCtl reads the POWER_CTL register.
func (d *Device) ReadPowerCtl() (uint8, error) {
	return d.ReadRegister8(RegPowerCtl)
}

// WritePowerCtl writes the POWER_CTL register as a raw value.
func (d *Device) WritePowerCtl(value uint8) error {
	return d.WriteRegister8(RegPowerCtl, value)
}

// SetPower writes the POWER_CTL register from its broken-out fields.
// lowNoise is one of LowNoiseNormal/LowNoiseLow/LowNoiseUltraLow and
// measureMode one of MeasureStandby/MeasureOn.
func (d *Device) SetPower(extClock bool, lowNoise uint8, wakeup, autosleep bool, measureMode uint8) error {
	value := uint8(0)
	if extClock {
		value |= PowerCtlExtClk
	}
	value |= (lowNoise & 0x3) << 4
	if wakeup {
		value |= PowerCtlWakeup
	}
	if autosleep {
		value |= PowerCtlAutosleep
	}
	value |= measureMode & 0x3
	return d.WritePowerCtl(value)
}

// SetLowNoise updates only the noise mode field of the power control
// register.
func (d *Device) SetLowNoise(value uint8) error {
	ctl, err := d.ReadPowerCtl()
	if err != nil {
		return err
	}
	ctl &^= 0x30
	ctl |= (value & 0x3) << 4
	return d.WritePowerCtl(ctl)
}

// WriteMeasureMode updates only the measurement mode field of the power
// control register.
func (d *Device) WriteMeasureMode(value uint8) error {
	ctl, err := d.ReadPowerCtl()
	if err != nil {
		return err
	}
	ctl &^= 0x3
	ctl |= value & 0x3
	return d.WritePowerCtl(ctl)
}

// SetMeasureMode enables or disables measurement mode. The chip resets into
// standby, so this must be called before any data is produced.
func (d *Device) SetMeasureMode(enabled bool) error {
	mode := uint8(MeasureStandby)
	if enabled {
		mode = MeasureOn
	}
	return d.WriteMeasureMode(mode)
}

// SetActivityThreshold writes the 11-bit activity threshold (0-2047 codes).
// The threshold in g depends on the range: codes / sensitivity (codes per g).
// Detection must still be enabled with SetActivityControl.
func (d *Device) SetActivityThreshold(value uint16) error {
	return d.WriteRegister16(RegThreshActL, value)
}

// SetActivityTime writes the number of consecutive over-threshold samples
// required before an activity event fires. Time in seconds is value/ODR.
func (d *Device) SetActivityTime(value uint8) error {
	return d.WriteRegister8(RegTimeAct, value)
}

// SetInactivityThreshold writes the 11-bit inactivity threshold (0-2047
// codes).
func (d *Device) SetInactivityThreshold(value uint16) error {
	return d.WriteRegister16(RegThreshInactL, value)
}

// SetInactivityTime writes the 16-bit count of consecutive under-threshold
// samples required before an inactivity event fires. At 12.5 Hz the maximum
// of 65535 samples is almost 90 minutes.
func (d *Device) SetInactivityTime(value uint16) error {
	return d.WriteRegister16(RegTimeInactL, value)
}

// ReadActivityControl reads the ACT_INACT_CTL register.
func (d *Device) ReadActivityControl() (uint8, error) {
	return d.ReadRegister8(RegActInactCtl)
}

// WriteActivityControl writes the ACT_INACT_CTL register as a raw value.
func (d *Device) WriteActivityControl(value uint8) error {
	return d.WriteRegister8(RegActInactCtl, value)
}

// SetActivityControl writes the ACT_INACT_CTL register from its broken-out
// fields. linkLoop is one of LinkLoopDefault/LinkLoopLinked/LinkLoopLoop;
// the ref flags select referenced mode, which compensates for gravity.
func (d *Device) SetActivityControl(linkLoop uint8, inactRef, inactEn, actRef, actEn bool) error {
	value := (linkLoop & 0x3) << 4
	if inactRef {
		value |= ActivityInactRef
	}
	if inactEn {
		value |= ActivityInactEn
	}
	if actRef {
		value |= ActivityActRef
	}
	if actEn {
		value |= ActivityActEn
	}
	return d.WriteActivityControl(value)
}

// ReadFIFOControl reads the FIFO_CONTROL register.
func (d *Device) ReadFIFOControl() (uint8, error) {
	return d.ReadRegister8(RegFIFOControl)
}

// WriteFIFOControl writes the FIFO_CONTROL register as a raw value. Note
// that ConfigureFIFO also mirrors the temperature bit into the driver, which
// this raw call does not.
func (d *Device) WriteFIFOControl(value uint8) error {
	return d.WriteRegister8(RegFIFOControl, value)
}

// WriteFIFOSamples writes the low byte of the FIFO sample count. Bit 8 lives
// in the FIFO control register; ConfigureFIFO sets both at once.
func (d *Device) WriteFIFOSamples(value uint8) error {
	return d.WriteRegister8(RegFIFOSamples, value)
}

// ConfigureFIFO programs the FIFO capture mode: number of samples to retain
// (0-511), whether each sample includes temperature (XYZT, 8 bytes) or not
// (XYZ, 6 bytes), and the FIFO mode (FIFODisabled/FIFOOldestSaved/
// FIFOStream/FIFOTriggered).
//
// The storeTemp flag is mirrored into the driver; the FIFO acquisition path
// uses it to size samples, so always configure the FIFO through this call
// before draining it.
func (d *Device) ConfigureFIFO(samples uint16, storeTemp bool, fifoMode uint8) error {
	value := uint8(0)
	if samples >= 0x100 {
		value |= FIFOAHBit
	}
	if storeTemp {
		value |= FIFOTempBit
	}
	value |= fifoMode & 0x3

	if err := d.WriteRegister8(RegFIFOSamples, uint8(samples)); err != nil {
		return err
	}
	if err := d.WriteRegister8(RegFIFOControl, value); err != nil {
		return err
	}

	d.mu.Lock()
	d.storeTemp = storeTemp
	d.mu.Unlock()
	return nil
}

// ReadIntmap1 reads the INTMAP1 register.
func (d *Device) ReadIntmap1() (uint8, error) {
	return d.ReadRegister8(RegIntmap1)
}

// WriteIntmap1 configures the INT1 pin. Bits 6:0 select which status
// conditions drive the pin (OR'ed together); IntmapIntLow selects active-low
// operation.
func (d *Device) WriteIntmap1(value uint8) error {
	return d.WriteRegister8(RegIntmap1, value)
}

// ReadIntmap2 reads the INTMAP2 register.
func (d *Device) ReadIntmap2() (uint8, error) {
	return d.ReadRegister8(RegIntmap2)
}

// WriteIntmap2 configures the INT2 pin, same layout as INTMAP1.
func (d *Device) WriteIntmap2(value uint8) error {
	return d.WriteRegister8(RegIntmap2, value)
}
