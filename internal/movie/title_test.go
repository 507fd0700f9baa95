package movie

import "testing"

func TestFold(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Amélie", "amelie"},
		{"  The   Matrix ", "the matrix"},
		{"LÉON", "leon"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Fold(tt.input); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatchKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"The Matrix", "matrix"},
		{"A Beautiful Mind", "beautiful mind"},
		{"Léon: The Professional", "leon the professional"},
		{"Spider-Man", "spider man"},
		{"spiderman", "spiderman"},
		{"I, Robot", "i robot"},
		{"The", "the"},
		{"  Extra   Spaces!  ", "extra spaces"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MatchKey(tt.input); got != tt.want {
				t.Errorf("MatchKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
