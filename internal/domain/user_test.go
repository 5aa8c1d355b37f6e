package domain

import (
	"encoding/json"
	"testing"
)

func TestParseGender(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"M", "f", " o "} {
		if _, err := ParseGender(code); err != nil {
			t.Fatalf("ParseGender(%q) error: %v", code, err)
		}
	}

	if _, err := ParseGender("X"); err == nil {
		t.Fatalf("expected error for unknown code")
	}
	if _, err := ParseGender(""); err == nil {
		t.Fatalf("expected error for empty code")
	}
}

func TestGenderJSONRoundTrip(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(GenderOther)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"O"` {
		t.Fatalf("unexpected encoding %s", raw)
	}

	var g Gender
	if err := json.Unmarshal([]byte(`"m"`), &g); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if g != GenderMale {
		t.Fatalf("got %q want %q", g, GenderMale)
	}

	if err := json.Unmarshal([]byte(`"Z"`), &g); err == nil {
		t.Fatalf("expected error for invalid code")
	}
}
