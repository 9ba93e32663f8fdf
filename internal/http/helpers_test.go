package http

import (
	"testing"

	"comparador/internal/core"
)

func TestParseYears(t *testing.T) {
	available := []int{2021, 2022, 2023}

	t.Run("empty means all years", func(t *testing.T) {
		got, err := parseYears("", available)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 || got[0] != 2021 || got[2] != 2023 {
			t.Errorf("got %v, want all available years", got)
		}
	})

	t.Run("subset sorted and deduplicated", func(t *testing.T) {
		got, err := parseYears("2023, 2021,2023", available)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 || got[0] != 2021 || got[1] != 2023 {
			t.Errorf("got %v, want [2021 2023]", got)
		}
	})

	t.Run("rejects non-numeric", func(t *testing.T) {
		if _, err := parseYears("twenty", available); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("rejects year outside dataset", func(t *testing.T) {
		if _, err := parseYears("2019", available); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   core.Value
		want string
	}{
		{core.Defined(1234567.8), "R$ 1.234.568"},
		{core.Defined(950), "R$ 950"},
		{core.Defined(0), "R$ 0"},
		{core.Defined(-12000), "-R$ 12.000"},
		{core.Undefined(), "—"},
	}
	for _, tt := range tests {
		if got := formatBRL(tt.in); got != tt.want {
			t.Errorf("formatBRL(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPct(t *testing.T) {
	if got := formatPct(core.Defined(0.123), 1); got != "12,3%" {
		t.Errorf("got %q, want 12,3%%", got)
	}
	if got := formatPct(core.Undefined(), 1); got != "—" {
		t.Errorf("got %q, want placeholder", got)
	}
}

func TestFormatTimes(t *testing.T) {
	if got := formatTimes(core.Defined(5.04), 1); got != "5,0x" {
		t.Errorf("got %q, want 5,0x", got)
	}
	if got := formatTimes(core.Undefined(), 1); got != "—" {
		t.Errorf("got %q, want placeholder", got)
	}
}

func TestFormatPoints(t *testing.T) {
	if got := formatPoints(core.Defined(2.34), 1); got != "+2,3 p.p." {
		t.Errorf("got %q, want +2,3 p.p.", got)
	}
	if got := formatPoints(core.Defined(-1.2), 1); got != "-1,2 p.p." {
		t.Errorf("got %q, want -1,2 p.p.", got)
	}
	if got := formatPoints(core.Undefined(), 1); got != "—" {
		t.Errorf("got %q, want placeholder", got)
	}
}
