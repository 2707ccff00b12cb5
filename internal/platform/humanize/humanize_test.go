package humanize

import "testing"

func TestMinutes(t *testing.T) {
	t.Parallel()
	cases := map[int]string{0: "0min", 45: "45min", 60: "1h", 120: "2h", 125: "2h 5min"}
	for in, want := range cases {
		if got := Minutes(in); got != want {
			t.Fatalf("Minutes(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestHours(t *testing.T) {
	t.Parallel()
	cases := map[float64]string{0: "0 min", 0.75: "45 min", 2: "2h", 2.5: "2h 30min", 27: "1d 3h", 48.2: "2d 0h"}
	for in, want := range cases {
		if got := Hours(in); got != want {
			t.Fatalf("Hours(%v) = %q, want %q", in, got, want)
		}
	}
}
