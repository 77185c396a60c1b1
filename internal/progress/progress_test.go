package progress

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"45", 45},
		{"  12", 12},
		{"+7", 7},
		{"-5", -5},
		{"3.7", 3},
		{"80%", 80},
		{"", 0},
		{"abc", 0},
		{"-", 0},
		{"99999999999999999999999", int(^uint(0) >> 1)},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.want, Parse(tt.raw))
		})
	}
}

func TestReflect_MatchesClampForAllIntegers(t *testing.T) {
	for n := -250; n <= 250; n++ {
		got, _ := Reflect(strconv.Itoa(n))
		require.Equal(t, max(0, min(100, n)), got, "n=%d", n)
	}
}

func TestReflect_CorrectsOutOfRange(t *testing.T) {
	for _, n := range []int{-1000, -5, -1, 101, 150, 9999} {
		_, corrected := Reflect(strconv.Itoa(n))
		require.True(t, corrected, "n=%d should be corrected", n)
	}
	for _, n := range []int{0, 1, 50, 100} {
		_, corrected := Reflect(strconv.Itoa(n))
		require.False(t, corrected, "n=%d should not be corrected", n)
	}
}

func TestTierFor_Boundaries(t *testing.T) {
	tests := []struct {
		n    int
		want Tier
	}{
		{0, Neutral},
		{1, Danger},
		{29, Danger},
		{30, Warning},
		{69, Warning},
		{70, Success},
		{100, Success},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, TierFor(tt.n), "n=%d", tt.n)
	}
}

func TestApply_Examples(t *testing.T) {
	tests := []struct {
		raw       string
		wantValue string
		wantTier  Tier
	}{
		{"150", "100", Success},
		{"-5", "0", Neutral},
		{"45", "45", Warning},
		{"", "0", Neutral},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			field, bars := Apply(Field{Group: "task-1", Value: tt.raw}, []Bar{{Group: "task-1"}})
			require.Equal(t, tt.wantValue, field.Value)
			require.Len(t, bars, 1)
			require.Equal(t, tt.wantTier, bars[0].Tier)
			require.Equal(t, tt.wantValue+"%", bars[0].Label)
			require.Equal(t, Parse(tt.wantValue), bars[0].Percent)
		})
	}
}

func TestApply_OnlyTouchesGroupAndPreview(t *testing.T) {
	bars := []Bar{
		{Group: "task-1"},
		{Group: "task-2", Percent: 10, Label: "10%", Tier: Danger},
		{Group: PreviewGroup},
	}

	_, next := Apply(Field{Group: "task-1", Value: "75"}, bars)

	require.Equal(t, 75, next[0].Percent)
	require.Equal(t, Bar{Group: "task-2", Percent: 10, Label: "10%", Tier: Danger}, next[1])
	require.Equal(t, 75, next[2].Percent)
	require.Equal(t, Success, next[2].Tier)
	// input slice untouched
	require.Equal(t, 0, bars[0].Percent)
}

func TestApply_IsFixedPoint(t *testing.T) {
	field, bars := Apply(Field{Group: "g", Value: "250"}, []Bar{{Group: "g"}})
	again, barsAgain := Apply(field, bars)
	require.Equal(t, field, again)
	require.Equal(t, bars, barsAgain)
}

func TestStep(t *testing.T) {
	require.Equal(t, "15", Step("10", 5))
	require.Equal(t, "100", Step("98", 5))
	require.Equal(t, "0", Step("3", -5))
	require.Equal(t, "100", Step("400", 1))
	require.Equal(t, "1", Step("oops", 1))
}

func TestTierString(t *testing.T) {
	require.Equal(t, "neutral", Neutral.String())
	require.Equal(t, "danger", Danger.String())
	require.Equal(t, "warning", Warning.String())
	require.Equal(t, "success", Success.String())
}
