package memberid_test

import (
	"testing"

	"github.com/auraclub/aurahub/internal/app/system/memberid"
)

func TestDerive_KnownDepartment(t *testing.T) {
	got := memberid.Derive("2028", "AI&DS", "21CS123")
	want := "28AURAAI123"
	if got != want {
		t.Errorf("Derive: got %q, want %q", got, want)
	}
}

func TestDerive_UnknownDepartmentFallback(t *testing.T) {
	got := memberid.Derive("2026", "UNKNOWN", "45")
	want := "26AURAUNKNOWN45"
	if got != want {
		t.Errorf("Derive: got %q, want %q", got, want)
	}
}

func TestDerive_UnknownDepartmentStripsNonAlnum(t *testing.T) {
	got := memberid.Derive("2027", "bio-tech!", "7")
	want := "27AURABIOTECH7"
	if got != want {
		t.Errorf("Derive: got %q, want %q", got, want)
	}
}

func TestDerive_NoTrailingRollDigits(t *testing.T) {
	got := memberid.Derive("2027", "CSE", "ABC")
	want := "27AURACS"
	if got != want {
		t.Errorf("Derive: got %q, want %q", got, want)
	}
}

func TestDerive_RollDigitsOnlyTrailingRun(t *testing.T) {
	// Digits embedded mid-string don't count; only the trailing run does.
	got := memberid.Derive("2028", "IT", "21IT045")
	want := "28AURAIT045"
	if got != want {
		t.Errorf("Derive: got %q, want %q", got, want)
	}
}

func TestDerive_ShortYear(t *testing.T) {
	if got := memberid.Derive("8", "MBA", "12"); got != "8AURAMBA12" {
		t.Errorf("Derive: got %q, want %q", got, "8AURAMBA12")
	}
	if got := memberid.Derive("", "MBA", "12"); got != "AURAMBA12" {
		t.Errorf("Derive: got %q, want %q", got, "AURAMBA12")
	}
}

func TestDerive_LowercaseAndWhitespace(t *testing.T) {
	got := memberid.Derive(" 2028 ", " ai&ds ", " 21cs123 ")
	want := "28AURAAI123"
	if got != want {
		t.Errorf("Derive: got %q, want %q", got, want)
	}
}

func TestDerive_Deterministic(t *testing.T) {
	a := memberid.Derive("2029", "ECE", "33EC007")
	b := memberid.Derive("2029", "ECE", "33EC007")
	if a != b {
		t.Errorf("Derive not deterministic: %q vs %q", a, b)
	}
}

func TestDerive_EmptyInputs(t *testing.T) {
	if got := memberid.Derive("", "", ""); got != "AURA" {
		t.Errorf("Derive: got %q, want %q", got, "AURA")
	}
}
