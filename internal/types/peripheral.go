package types

// Peripheral is a hardware component that is clocked alongside the
// CPU, such as the PPU, the timer or the APU. After every instruction
// the system advances each peripheral by the number of cycles the
// instruction took.
type Peripheral interface {
	// Tick advances the peripheral by the given number of cycles.
	Tick(cycles int)
}
