package trace

import "testing"

func TestRecorderFiltersByLevel(t *testing.T) {
	r := NewRecorder(LevelPhase)
	end := Begin(r, LevelDetail, "narrow-member", "a.ts")
	end("")
	if len(r.Events()) != 0 {
		t.Fatalf("LevelDetail event should be filtered out at LevelPhase, got %v", r.Events())
	}

	end = Begin(r, LevelPhase, "check-file", "a.ts")
	end("3 diagnostics")
	got := r.Events()
	if len(got) != 1 || got[0].Name != "check-file" || got[0].Note != "3 diagnostics" {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestNopTracerDiscardsEverything(t *testing.T) {
	end := Begin(Nop, LevelPhase, "x", "f")
	end("note")
	// Nop has no Events() accessor; the assertion is simply that this does
	// not panic and Enabled always reports false.
	if Nop.Enabled(LevelOff) {
		t.Fatal("nop tracer must report disabled for every level")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"": LevelOff, "off": LevelOff, "phase": LevelPhase, "detail": LevelDetail}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("bogus"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
