package models

import "testing"

func TestCompletionMet(t *testing.T) {
	cases := []struct {
		name     string
		habit    Habit
		progress Progress
		want     bool
	}{
		{"counter below target", Habit{Type: HabitTypeCounter, TargetCount: 3}, Progress{Count: 2}, false},
		{"counter at target", Habit{Type: HabitTypeCounter, TargetCount: 3}, Progress{Count: 3}, true},
		{"counter over target", Habit{Type: HabitTypeCounter, TargetCount: 3}, Progress{Count: 5}, true},
		{"timer below target", Habit{Type: HabitTypeTimer, TargetMinutes: 30}, Progress{MinutesSpent: 29}, false},
		{"timer at target", Habit{Type: HabitTypeTimer, TargetMinutes: 30}, Progress{MinutesSpent: 30}, true},
		{"timer ignores count", Habit{Type: HabitTypeTimer, TargetMinutes: 30}, Progress{Count: 99}, false},
		{"pomodoro below target", Habit{Type: HabitTypePomodoro, TargetCount: 4}, Progress{PomodoroSessions: 3}, false},
		{"pomodoro at target", Habit{Type: HabitTypePomodoro, TargetCount: 4}, Progress{PomodoroSessions: 4}, true},
	}

	for _, tc := range cases {
		if got := CompletionMet(tc.habit, tc.progress); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestProgressEmpty(t *testing.T) {
	if !(Progress{}).Empty() {
		t.Fatal("zero record should be empty")
	}
	if (Progress{Count: 1}).Empty() {
		t.Fatal("record with count should not be empty")
	}
	if (Progress{MinutesSpent: 5}).Empty() {
		t.Fatal("record with minutes should not be empty")
	}
	if (Progress{PomodoroSessions: 1}).Empty() {
		t.Fatal("record with sessions should not be empty")
	}
}

func TestValidCategory(t *testing.T) {
	if !ValidCategory(CategoryHealth) {
		t.Fatal("health should be valid")
	}
	if ValidCategory(Category("gardening")) {
		t.Fatal("unknown category should be invalid")
	}
}
