package core

import "testing"

func TestGameLog_Recent(t *testing.T) {
	l := NewGameLog()
	if l.Last() != WelcomeMessage {
		t.Fatalf("new log must start with the welcome line, got %q", l.Last())
	}

	l.Add("a")
	l.Addf("b %d", 2)

	tests := []struct {
		n    int
		want []string
	}{
		{2, []string{"a", "b 2"}},
		{0, []string{WelcomeMessage, "a", "b 2"}},
		{10, []string{WelcomeMessage, "a", "b 2"}},
	}
	for _, tt := range tests {
		got := l.Recent(tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("Recent(%d) = %v, want %v", tt.n, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Recent(%d)[%d] = %q, want %q", tt.n, i, got[i], tt.want[i])
			}
		}
	}
}

func TestRunState_String(t *testing.T) {
	tests := []struct {
		s    RunState
		want string
	}{
		{MainMenu(MenuLoadGame), "MAIN_MENU{Load Game}"},
		{Is(StateMonsterTurn), "MONSTER_TURN"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
