package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExportRoundTrip(t *testing.T) {
	p := Progress{
		History: []Summary{
			{FinishedAt: 1700000000000, Mode: "mock", AxisKey: "ALL", Correct: 8, Total: 10},
			{FinishedAt: 1700000100000, Mode: "practice", AxisKey: "M::A", Correct: 2, Total: 2},
		},
		Last: &Attempt{
			ID:         "att-1",
			StartedAt:  1700000050000,
			FinishedAt: 1700000100000,
			Mode:       "practice",
			AxisKey:    "M::A",
			Order:      []string{"q1", "q2"},
			Answers: map[string]AnswerMark{
				"q1": {ChoiceID: "A", At: 1700000060000},
				"q2": {ChoiceID: "C", At: 1700000070000},
			},
			Flags:   map[string]FlagMark{"q2": {At: 1700000065000}},
			Correct: 2,
			Total:   2,
			ByAxis: map[string]AxisScore{
				"M::A": {Module: "M", Axis: "A", Total: 2, Correct: 2},
			},
		},
	}

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	doc := BuildExport(now, map[string]any{"version": "1"}, p)
	require.Equal(t, "2026-08-29T12:00:00Z", doc.ExportedAt)

	raw, err := doc.MarshalIndent()
	require.NoError(t, err)

	back, err := ParseExport(raw)
	require.NoError(t, err)
	require.Equal(t, doc.ExportedAt, back.ExportedAt)
	require.Equal(t, p, back.Progress, "export-then-reimport must yield equal progress")
}

func TestBuildExportDefaultsMeta(t *testing.T) {
	doc := BuildExport(time.Unix(0, 0), nil, Progress{})
	require.NotNil(t, doc.BankMeta)
}
