package progress

import "testing"

func summary(correct, total int) Summary {
	return Summary{Mode: "mock", AxisKey: "ALL", Correct: correct, Total: total}
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name    string
		history []Summary
		want    int
	}{
		{name: "empty history", history: nil, want: 0},
		{
			name:    "single passing",
			history: []Summary{summary(7, 10)},
			want:    1,
		},
		{
			name:    "single failing",
			history: []Summary{summary(6, 10)},
			want:    0,
		},
		{
			name:    "boundary is inclusive",
			history: []Summary{summary(70, 100)},
			want:    1,
		},
		{
			name:    "run broken by earlier failure",
			history: []Summary{summary(9, 10), summary(2, 10), summary(8, 10), summary(10, 10)},
			want:    2,
		},
		{
			name:    "zero total breaks the streak",
			history: []Summary{summary(8, 10), summary(0, 0), summary(9, 10)},
			want:    1,
		},
		{
			name:    "all passing",
			history: []Summary{summary(7, 10), summary(8, 10), summary(9, 10)},
			want:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Progress{History: tt.history}
			if got := p.Streak(); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecordAppendsAndSetsLast(t *testing.T) {
	var p Progress
	a := &Attempt{ID: "a1", FinishedAt: 100, Mode: "practice", AxisKey: "ALL", Correct: 3, Total: 4}
	p.Record(a)
	b := &Attempt{ID: "a2", FinishedAt: 200, Mode: "mock", AxisKey: "M::A", Correct: 1, Total: 4}
	p.Record(b)

	if len(p.History) != 2 {
		t.Fatalf("history len = %d, want 2", len(p.History))
	}
	if p.History[0].FinishedAt != 100 || p.History[1].FinishedAt != 200 {
		t.Error("history order lost")
	}
	if p.Last != b {
		t.Error("last must be the most recently recorded attempt")
	}
	if p.History[1].Correct != 1 || p.History[1].Total != 4 {
		t.Errorf("summary = %+v, want correct=1 total=4", p.History[1])
	}
}

func TestAttemptPercent(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{7, 10, 70},
	}
	for _, tt := range tests {
		a := Attempt{Correct: tt.correct, Total: tt.total}
		if got := a.Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}
