package generator

import "testing"

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Great chai, friendly staff.", "Great chai, friendly staff."},
		{"markup stripped", "<b>Nice</b> chai", "bNiceb chai"},
		{"whitespace collapsed", "Too   many\n\nspaces\there", "Too many spaces here"},
		{"leading space dropped", "  padded", "padded"},
		{"control characters", "ok\x00\x1btext", "oktext"},
		{"unicode stripped", "chai ☕ время", "chai"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.in); got != tc.want {
				t.Fatalf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFallbackText(t *testing.T) {
	req := Request{
		Name:     "Chai Point",
		Category: "cafe",
		City:     "Bengaluru",
		Service:  "masala chai",
	}

	got := FallbackText("Loved the {service} at {name}, best {category} in {city}.", req)
	want := "Loved the masala chai at Chai Point, best cafe in Bengaluru."
	if got != want {
		t.Fatalf("FallbackText = %q, want %q", got, want)
	}

	// Unknown placeholders pass through untouched.
	if got := FallbackText("{name} {unknown}", req); got != "Chai Point {unknown}" {
		t.Fatalf("FallbackText = %q", got)
	}
}
