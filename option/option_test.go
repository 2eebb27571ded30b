package option

import (
	"errors"
	"math"
	"testing"
)

func TestParseKind(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Kind
	}{
		{"call", Call},
		{"put", Put},
		{"Call", Call},
		{"PUT", Put},
	} {
		got, err := ParseKind(tc.in)
		if err != nil {
			t.Fatalf("ParseKind(%q): unexpected error %s", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseKindRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "straddle", "c", "p"} {
		if _, err := ParseKind(in); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseKind(%q): got %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := Contract{Kind: Call, S: 100, K: 100, R: 0.05, Sigma: 0.2, T: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid contract rejected: %s", err)
	}

	// Negative rates are allowed.
	negRate := valid
	negRate.R = -0.01
	if err := negRate.Validate(); err != nil {
		t.Errorf("negative rate rejected: %s", err)
	}

	// T=0 is allowed; sigma must still be positive there.
	expiry := valid
	expiry.T = 0
	if err := expiry.Validate(); err != nil {
		t.Errorf("T=0 rejected: %s", err)
	}

	for name, bad := range map[string]Contract{
		"zero spot":       {Kind: Call, S: 0, K: 100, Sigma: 0.2, T: 1},
		"negative spot":   {Kind: Call, S: -5, K: 100, Sigma: 0.2, T: 1},
		"zero strike":     {Kind: Put, S: 100, K: 0, Sigma: 0.2, T: 1},
		"zero volatility": {Kind: Call, S: 100, K: 100, Sigma: 0, T: 1},
		"negative expiry": {Kind: Put, S: 100, K: 100, Sigma: 0.2, T: -0.1},
	} {
		if err := bad.Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: got %v, want ErrInvalidInput", name, err)
		}
	}
}

func TestIntrinsic(t *testing.T) {
	for _, tc := range []struct {
		s, k float64
		kind Kind
		want float64
	}{
		{110, 100, Call, 10},
		{90, 100, Call, 0},
		{90, 100, Put, 10},
		{110, 100, Put, 0},
		{100, 100, Call, 0},
		{100, 100, Put, 0},
	} {
		if got := Intrinsic(tc.s, tc.k, tc.kind); got != tc.want {
			t.Errorf("Intrinsic(%v, %v, %v) = %v, want %v", tc.s, tc.k, tc.kind, got, tc.want)
		}
		c := Contract{Kind: tc.kind, S: tc.s, K: tc.k, Sigma: 0.2, T: 1}
		if got := c.Intrinsic(); got != tc.want {
			t.Errorf("Contract.Intrinsic() = %v, want %v", got, tc.want)
		}
	}
}

func TestNormCDF(t *testing.T) {
	for _, tc := range []struct {
		x, want float64
	}{
		{0, 0.5},
		{1.96, 0.9750021048517795},
		{-1.96, 0.0249978951482205},
	} {
		if got := NormCDF(tc.x); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("NormCDF(%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
	if got, want := NormPDF(0), 1/math.Sqrt(2*math.Pi); math.Abs(got-want) > 1e-12 {
		t.Errorf("NormPDF(0) = %v, want %v", got, want)
	}
}

func TestNormCDFsElementwise(t *testing.T) {
	x := []float64{-2, -0.5, 0, 0.5, 2}

	got := NormCDFs(nil, x)
	if len(got) != len(x) {
		t.Fatalf("NormCDFs allocated %d values, want %d", len(got), len(x))
	}
	for i, v := range x {
		if got[i] != NormCDF(v) {
			t.Errorf("NormCDFs[%d] = %v, want %v", i, got[i], NormCDF(v))
		}
	}

	dst := make([]float64, len(x))
	if &NormPDFs(dst, x)[0] != &dst[0] {
		t.Error("NormPDFs did not reuse dst")
	}
	for i, v := range x {
		if dst[i] != NormPDF(v) {
			t.Errorf("NormPDFs[%d] = %v, want %v", i, dst[i], NormPDF(v))
		}
	}
}
