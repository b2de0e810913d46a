package types

import "testing"

func TestBootStates(t *testing.T) {
	for m, s := range ModelBootStates {
		if s.PC != 0x0100 {
			t.Errorf("%s: expected PC 0x0100, got 0x%04X", m, s.PC)
		}
		if s.SP != 0xFFFE {
			t.Errorf("%s: expected SP 0xFFFE, got 0x%04X", m, s.SP)
		}
	}

	s := BootStateFor(DMG0)
	if s.A != 0x01 || s.F != 0x00 || s.B != 0xFF || s.C != 0x13 || s.D != 0x00 || s.E != 0xC1 || s.H != 0x84 || s.L != 0x93 {
		t.Errorf("unexpected DMG0 boot state %+v", s)
	}
	if BootStateFor(StringToModel("dmg0")) != DMGBootState {
		t.Error("expected dmg0 to start from the default boot state")
	}
}

func TestStringToModel(t *testing.T) {
	for _, tt := range []struct {
		name     string
		expected Model
	}{
		{"dmg0", DMG0},
		{"DMG", DMGABC},
		{"mgb", MGB},
		{"cgb", Unset},
	} {
		if got := StringToModel(tt.name); got != tt.expected {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.expected, got)
		}
	}
}

func TestTargetID(t *testing.T) {
	for target := A; target <= L; target++ {
		if !target.Is8Bit() || target.Is16Bit() {
			t.Errorf("expected %s to be an 8-bit target", target)
		}
	}
	for target := AF; target <= PC; target++ {
		if target.Is8Bit() || !target.Is16Bit() {
			t.Errorf("expected %s to be a 16-bit target", target)
		}
	}
	if NoTarget.String() != "NOTARGET" || HL.String() != "HL" {
		t.Errorf("unexpected target names %s %s", NoTarget, HL)
	}
}
