package protocol

import "testing"

func TestIsKnownCode(t *testing.T) {
	for _, code := range []string{ErrBadRequest, ErrInvalidTarget, ErrInsufficient, ErrSuperseded} {
		if !IsKnownCode(code) {
			t.Errorf("%s not recognized", code)
		}
	}
	if IsKnownCode("E_KRAKEN") {
		t.Errorf("unknown code accepted")
	}
}
