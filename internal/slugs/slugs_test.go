package slugs

import "testing"

func TestProjectSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Work", "work"},
		{"Side Quests", "side-quests"},
		{"  Side  Quests! ", "side-quests"},
		{"Café Crème", "cafe-creme"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ProjectSlug(tt.in); got != tt.want {
				t.Fatalf("ProjectSlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatchProject(t *testing.T) {
	projects := []string{"Work", "Side Quests", "side-quests"}

	tests := []struct {
		name  string
		want  string
		found bool
	}{
		{"Work", "Work", true},
		{"  Work ", "Work", true},
		{"work", "Work", true},
		{"side-quests", "side-quests", true},
		{"Side  Quests!", "Side Quests", true},
		{"Garden", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := MatchProject(tt.name, projects)
			if got != tt.want || found != tt.found {
				t.Fatalf("MatchProject(%q) = %q, %v; want %q, %v", tt.name, got, found, tt.want, tt.found)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve("work", []string{"Work"}); got != "Work" {
		t.Fatalf("Resolve(work) = %q", got)
	}
	if got := Resolve(" Garden ", []string{"Work"}); got != "Garden" {
		t.Fatalf("Resolve(Garden) = %q", got)
	}
}
