package domain

import (
	"testing"
	"time"
)

func TestCardStatApply(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   CardStat
		correct bool
		want    CardStat
	}{
		{
			name:    "first correct answer",
			start:   CardStat{},
			correct: true,
			want:    CardStat{Seen: 1, Correct: 1, Streak: 1, LastSeen: now},
		},
		{
			name:    "first incorrect answer",
			start:   CardStat{},
			correct: false,
			want:    CardStat{Seen: 1, Incorrect: 1, LastSeen: now},
		},
		{
			name:    "correct extends streak",
			start:   CardStat{Seen: 4, Correct: 3, Incorrect: 1, Streak: 2},
			correct: true,
			want:    CardStat{Seen: 5, Correct: 4, Incorrect: 1, Streak: 3, LastSeen: now},
		},
		{
			name:    "incorrect resets streak",
			start:   CardStat{Seen: 4, Correct: 3, Incorrect: 1, Streak: 3},
			correct: false,
			want:    CardStat{Seen: 5, Correct: 3, Incorrect: 2, Streak: 0, LastSeen: now},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Apply(tt.correct, now)
			if got != tt.want {
				t.Errorf("Apply(%v) = %+v, want %+v", tt.correct, got, tt.want)
			}
		})
	}
}

func TestCardStatLearned(t *testing.T) {
	tests := []struct {
		name string
		stat CardStat
		want bool
	}{
		{"zero value", CardStat{}, false},
		{"enough correct, streak too short", CardStat{Correct: 3, Streak: 1}, false},
		{"streak long enough, too few correct", CardStat{Correct: 2, Streak: 2}, false},
		{"exactly at thresholds", CardStat{Correct: 3, Streak: 2}, true},
		{"well past thresholds", CardStat{Correct: 10, Streak: 7}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stat.Learned(); got != tt.want {
				t.Errorf("Learned() = %v, want %v for %+v", got, tt.want, tt.stat)
			}
		})
	}
}

func TestCardStatLearnedAfterOneMoreCorrect(t *testing.T) {
	now := time.Now()

	stat := CardStat{Seen: 4, Correct: 3, Incorrect: 1, Streak: 1}
	if stat.Learned() {
		t.Fatalf("stat %+v should not be learned yet", stat)
	}

	stat = stat.Apply(true, now)
	if !stat.Learned() {
		t.Errorf("stat %+v should be learned after one more correct answer", stat)
	}
}

func TestVerbStatApply(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	stat := VerbStat{}

	stat = stat.Apply(false, now)
	if stat.Seen != 1 || stat.Mastered != 0 {
		t.Errorf("after failed attempt: %+v", stat)
	}
	if stat.IsMastered() {
		t.Error("verb should not be mastered after a failed attempt")
	}

	stat = stat.Apply(true, now)
	if stat.Seen != 2 || stat.Mastered != 1 {
		t.Errorf("after successful attempt: %+v", stat)
	}
	if !stat.IsMastered() {
		t.Error("verb should be mastered after a fully-correct attempt")
	}
}
