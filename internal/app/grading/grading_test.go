package grading

import "testing"

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  O(Log N) ", "3,5", "пузырьковая сортировка", "", " 2 , 3 "}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  O(Log N) ", "o(logn)"},
		{"o(logn)", "o(logn)"},
		{"3,5", "3.5"},
		{"Bubble Sort", "bubblesort"},
		{"  ", ""},
		{"", ""},
		{"\tA  B\nC", "abc"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAlternativeSet(t *testing.T) {
	set := AlternativeSet("2; 3,  2")
	if len(set) != 2 {
		t.Fatalf("expected 2 distinct alternatives, got %d: %v", len(set), set)
	}
	for _, want := range []string{"2", "3"} {
		if _, ok := set[want]; !ok {
			t.Errorf("missing alternative %q in %v", want, set)
		}
	}

	if got := AlternativeSet(";;,"); len(got) != 0 {
		t.Errorf("expected empty set for delimiter-only input, got %v", got)
	}
}

func TestGradeSetMode(t *testing.T) {
	tests := []struct {
		stored    string
		submitted string
		want      bool
	}{
		{"2;3", "3, 2", true},
		{"2;3", "3; 2", true},
		{"2;3", " 2 , 3 ", true},
		{"2;3", "2", false},
		{"2;3", "2;3;4", false},
		{"2;3", "2;2;3", true}, // duplicates collapse
		{"2;3", "", false},
	}
	for _, tt := range tests {
		if got := Grade(tt.stored, tt.submitted); got != tt.want {
			t.Errorf("Grade(%q, %q) = %v, want %v", tt.stored, tt.submitted, got, tt.want)
		}
	}
}

func TestGradeSingleMode(t *testing.T) {
	tests := []struct {
		stored    string
		submitted string
		want      bool
	}{
		{"O(log n)", "o(logn)", true},
		{"O(log n)", "O(LOG N)", true},
		{"30", "3.0", false},
		{"3,5", "3.5", true}, // decimal comma unification, not alternatives
		{"3,5", "3", false},
		{"bubble sort", "Bubble  Sort", true},
		{"bubble sort", "quick sort", false},
	}
	for _, tt := range tests {
		if got := Grade(tt.stored, tt.submitted); got != tt.want {
			t.Errorf("Grade(%q, %q) = %v, want %v", tt.stored, tt.submitted, got, tt.want)
		}
	}
}

func TestGradeEmptyStoredAnswer(t *testing.T) {
	if Grade("", "anything") {
		t.Error("empty stored answer must not match a non-empty submission")
	}
	if !Grade("", "   ") {
		t.Error("whitespace-only submission normalizes to empty and matches empty stored answer")
	}
}

func TestHasAlternatives(t *testing.T) {
	tests := []struct {
		stored string
		want   bool
	}{
		{"2;3", true},
		{"red, blue", true},
		{"3,5", false}, // one decimal number
		{"30", false},
		{"O(log n)", false},
	}
	for _, tt := range tests {
		if got := HasAlternatives(tt.stored); got != tt.want {
			t.Errorf("HasAlternatives(%q) = %v, want %v", tt.stored, got, tt.want)
		}
	}
}
