package types

// TargetID names an operand of a register indexed instruction. It is
// used by the register accessors, and for diagnostics.
type TargetID uint8

const (
	NoTarget TargetID = iota
	A
	F
	B
	C
	D
	E
	H
	L
	AF
	BC
	DE
	HL
	SP
	PC
)

var targetNames = [...]string{
	NoTarget: "NOTARGET",
	A:        "A",
	F:        "F",
	B:        "B",
	C:        "C",
	D:        "D",
	E:        "E",
	H:        "H",
	L:        "L",
	AF:       "AF",
	BC:       "BC",
	DE:       "DE",
	HL:       "HL",
	SP:       "SP",
	PC:       "PC",
}

func (t TargetID) String() string {
	if int(t) < len(targetNames) {
		return targetNames[t]
	}
	return "ERROR"
}

// Is8Bit returns true for the single byte registers A, F, B, C, D, E, H and L.
func (t TargetID) Is8Bit() bool {
	return t >= A && t <= L
}

// Is16Bit returns true for the register pairs, SP and PC.
func (t TargetID) Is16Bit() bool {
	return t >= AF && t <= PC
}
