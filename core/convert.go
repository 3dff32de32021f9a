// Convenience math derived from register reads: temperature conversion and
// the gravity-vector roll/pitch estimate.
package core

import "math"

// ReadTemperatureC reads the temperature registers and converts to degrees
// Celsius.
func (d *Device) ReadTemperatureC() (float32, error) {
	raw, err := d.ReadRegister16(RegTDataL)
	if err != nil {
		return 0, err
	}
	return float32(int16(raw)) / 16.0, nil
}

// ReadTemperatureF reads the temperature registers and converts to degrees
// Fahrenheit.
func (d *Device) ReadTemperatureF() (float32, error) {
	c, err := d.ReadTemperatureC()
	if err != nil {
		return 0, err
	}
	return c*9.0/5.0 + 32.0, nil
}

// ReadRollPitchRadians estimates roll and pitch from the gravity vector of a
// single XYZ sample. The conversion to g uses the range programmed with
// SetFilter. Only meaningful while the device is stationary.
func (d *Device) ReadRollPitchRadians() (roll, pitch float64, err error) {
	x, y, z, err := d.ReadXYZ()
	if err != nil {
		return 0, 0, err
	}

	rangeG := float64(d.RangeG())
	xg := float64(x) * rangeG / 2048.0
	yg := float64(y) * rangeG / 2048.0
	zg := float64(z) * rangeG / 2048.0

	pitch = math.Atan(xg / math.Sqrt(yg*yg+zg*zg))
	roll = math.Atan(yg / math.Sqrt(xg*xg+zg*zg))
	return roll, pitch, nil
}

// ReadRollPitchDegrees is ReadRollPitchRadians converted to degrees.
func (d *Device) ReadRollPitchDegrees() (roll, pitch float64, err error) {
	roll, pitch, err = d.ReadRollPitchRadians()
	if err != nil {
		return 0, 0, err
	}
	conv := 180.0 / math.Pi
	return roll * conv, pitch * conv, nil
}
