// ADXL362 register map and bitfield constants.
// Data sheet: http://www.analog.com/media/en/technical-documentation/data-sheets/ADXL362.pdf
package core

// SPI command bytes. Every exchange with the chip starts with one of these.
const (
	CmdWriteRegister = 0x0a // Write register command
	CmdReadRegister  = 0x0b // Read register command
	CmdReadFIFO      = 0x0d // Read FIFO command
)

// Register addresses
const (
	RegDevIDAD      = 0x00 // Device ID register (reads 0xAD)
	RegDevIDMST     = 0x01 // MEMS device ID (reads 0x1D)
	RegPartID       = 0x02 // Part ID (reads 0xF2)
	RegSiliconID    = 0x03 // Silicon revision ID
	RegXData8       = 0x08 // X axis data, 8 MSB only
	RegYData8       = 0x09 // Y axis data, 8 MSB only
	RegZData8       = 0x0a // Z axis data, 8 MSB only
	RegStatus       = 0x0b // Status register
	RegFIFOEntriesL = 0x0c // Number of FIFO entries (LSB)
	RegFIFOEntriesH = 0x0d // Number of FIFO entries (MSB)
	RegXDataL       = 0x0e // X axis data (LSB)
	RegXDataH       = 0x0f // X axis data (MSB)
	RegYDataL       = 0x10 // Y axis data (LSB)
	RegYDataH       = 0x11 // Y axis data (MSB)
	RegZDataL       = 0x12 // Z axis data (LSB)
	RegZDataH       = 0x13 // Z axis data (MSB)
	RegTDataL       = 0x14 // Temperature data (LSB)
	RegTDataH       = 0x15 // Temperature data (MSB)
	RegSoftReset    = 0x1f // Soft reset register (write 'R' to reset)
	RegThreshActL   = 0x20 // Activity threshold (LSB)
	RegThreshActH   = 0x21 // Activity threshold (MSB)
	RegTimeAct      = 0x22 // Activity time register
	RegThreshInactL = 0x23 // Inactivity threshold (LSB)
	RegThreshInactH = 0x24 // Inactivity threshold (MSB)
	RegTimeInactL   = 0x25 // Inactivity time register (LSB)
	RegTimeInactH   = 0x26 // Inactivity time register (MSB)
	RegActInactCtl  = 0x27 // Activity/inactivity control register
	RegFIFOControl  = 0x28 // FIFO control register
	RegFIFOSamples  = 0x29 // Number of samples to store in FIFO
	RegIntmap1      = 0x2a // Interrupt mapping register 1
	RegIntmap2      = 0x2b // Interrupt mapping register 2
	RegFilterCtl    = 0x2c // Filter control register
	RegPowerCtl     = 0x2d // Power control register
	RegSelfTest     = 0x2e // Self test register
)

// Status register bits
const (
	StatusErrUserRegs   = 0x80 // SEU error detect
	StatusAwake         = 0x40 // Awake (1) or inactive (0) state
	StatusInact         = 0x20 // Inactivity or free fall condition
	StatusAct           = 0x10 // Activity detected
	StatusFIFOOverrun   = 0x08 // FIFO overflowed
	StatusFIFOWatermark = 0x04 // FIFO reached watermark
	StatusFIFOReady     = 0x02 // FIFO has at least one sample available
	StatusDataReady     = 0x01 // New sample available to read
)

// Link/loop field of the activity/inactivity control register
const (
	LinkLoopDefault = 0x0 // Activity and inactivity detection both enabled
	LinkLoopLinked  = 0x1 // Activity and inactivity sequentially linked
	LinkLoopLoop    = 0x3 // Linked, interrupts do not need to be serviced
)

// Activity/inactivity control register bits
const (
	ActivityInactRef = 0x08 // Inactivity in referenced (1) or absolute (0) mode
	ActivityInactEn  = 0x04 // Inactivity detection enable
	ActivityActRef   = 0x02 // Activity in referenced (1) or absolute (0) mode
	ActivityActEn    = 0x01 // Activity detection enable
)

// Measurement range field of the filter control register
const (
	Range2G = 0x0 // +/- 2g (default)
	Range4G = 0x1 // +/- 4g
	Range8G = 0x2 // +/- 8g
)

// Filter control register masks
const (
	RangeMask     = 0xc0 // Measurement range field
	HalfBWMask    = 0x10 // Halved filter bandwidth bit
	ExtSampleMask = 0x08 // External sampling trigger bit
	OdrMask       = 0x07 // Output data rate field
)

// Output data rate field of the filter control register
const (
	Odr12_5 = 0x0 // 12.5 Hz
	Odr25   = 0x1 // 25 Hz
	Odr50   = 0x2 // 50 Hz
	Odr100  = 0x3 // 100 Hz (default)
	Odr200  = 0x4 // 200 Hz
	Odr400  = 0x5 // 400 Hz
)

// FIFO mode field of the FIFO control register
const (
	FIFODisabled    = 0x0 // FIFO disabled (default)
	FIFOOldestSaved = 0x1 // Oldest saved mode
	FIFOStream      = 0x2 // Stream mode
	FIFOTriggered   = 0x3 // Triggered mode
)

// FIFO control register bits outside the mode field
const (
	FIFOTempBit = 0x04 // Store temperature data in FIFO
	FIFOAHBit   = 0x08 // Bit 8 of the sample count (above half)
)

// INTMAP1 and INTMAP2 register bits
const (
	IntmapIntLow        = 0x80 // INT pin is active low
	IntmapAwake         = 0x40 // Map awake status to INT
	IntmapInact         = 0x20 // Map inactivity status to INT
	IntmapAct           = 0x10 // Map activity status to INT
	IntmapFIFOOverrun   = 0x08 // Map FIFO overrun to INT
	IntmapFIFOWatermark = 0x04 // Map FIFO watermark to INT
	IntmapFIFOReady     = 0x02 // Map FIFO ready to INT
	IntmapDataReady     = 0x01 // Map data ready to INT
)

// Power control register bits
const (
	PowerCtlExtClk    = 0x40 // Use external clock
	PowerCtlWakeup    = 0x08 // Wakeup mode
	PowerCtlAutosleep = 0x04 // Autosleep
)

// Noise mode field of the power control register
const (
	LowNoiseNormal   = 0x0 // Normal operation (default)
	LowNoiseLow      = 0x1 // Low noise mode
	LowNoiseUltraLow = 0x2 // Ultra low noise mode
)

// Measurement mode field of the power control register
const (
	MeasureStandby = 0x0 // Standby
	MeasureOn      = 0x2 // Measurement mode
)
