package luck

import (
	"errors"
	"math"
	"testing"

	"luck-mcp/internal/config"
	"luck-mcp/internal/season"
)

type stubSource struct {
	weeks  int
	scores map[int]map[string]float64
	rows   map[int][]season.MatchupRow
}

func (s *stubSource) CompletedWeeks() (int, error) { return s.weeks, nil }

func (s *stubSource) WeeklyScores(week int) (map[string]float64, error) {
	return s.scores[week], nil
}

func (s *stubSource) WeeklyMatchups(week int) ([]season.MatchupRow, error) {
	return s.rows[week], nil
}

func pair(a string, b string, sa float64, sb float64) []season.MatchupRow {
	return []season.MatchupRow{
		{TeamID: a, OpponentID: b, TeamScore: sa, OpponentScore: sb},
		{TeamID: b, OpponentID: a, TeamScore: sb, OpponentScore: sa},
	}
}

func buildMatrix(t *testing.T, src *stubSource) *season.Matrix {
	t.Helper()
	teams := []season.Team{
		{ID: "1", Name: "Alpha"},
		{ID: "2", Name: "Bravo"},
		{ID: "3", Name: "Charlie"},
		{ID: "4", Name: "Delta"},
	}
	m, err := season.Build(teams, src)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return m
}

func approx(got float64, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

// Week of 100/90/80/70 with 1v4 and 2v3: every delta is checkable by hand.
func fourTeamWeek() *stubSource {
	return &stubSource{
		weeks: 1,
		scores: map[int]map[string]float64{
			1: {"1": 100, "2": 90, "3": 80, "4": 70},
		},
		rows: map[int][]season.MatchupRow{
			1: append(pair("1", "4", 100, 70), pair("2", "3", 90, 80)...),
		},
	}
}

func TestComputeWeekLuck_FourTeamWeek(t *testing.T) {
	m := buildMatrix(t, fourTeamWeek())

	entries, err := ComputeWeekLuck(m, config.DefaultEngine())
	if err != nil {
		t.Fatalf("ComputeWeekLuck error: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("entries len = %d, want 4", len(entries))
	}

	byTeam := make(map[string]WeekLuck, 4)
	for _, e := range entries {
		byTeam[e.TeamID] = e
	}

	// Top scorer beat the weakest opponent: base luck 0, opponent
	// adjustment −10, so the win reads +10 lucky.
	if e := byTeam["1"]; e.FairWins != 3 || !approx(e.Delta, 10) {
		t.Errorf("team 1 fairWins/delta = %d/%.4f, want 3/10", e.FairWins, e.Delta)
	}
	// Bottom scorer lost to the strongest: the mirror image.
	if e := byTeam["4"]; e.FairWins != 0 || !approx(e.Delta, -10) {
		t.Errorf("team 4 fairWins/delta = %d/%.4f, want 0/-10", e.FairWins, e.Delta)
	}
	// 90 beat 80: a real win but one that two of three opponents would
	// also have produced, so luck is well above the top scorer's.
	if e := byTeam["2"]; e.FairWins != 2 || !approx(e.Delta, 110.0/3) {
		t.Errorf("team 2 fairWins/delta = %d/%.4f, want 2/36.6667", e.FairWins, e.Delta)
	}
	if e := byTeam["3"]; e.FairWins != 1 || !approx(e.Delta, -110.0/3) {
		t.Errorf("team 3 fairWins/delta = %d/%.4f, want 1/-36.6667", e.FairWins, e.Delta)
	}
}

func TestComputeWeekLuck_DeltasSumToZero(t *testing.T) {
	m := buildMatrix(t, fourTeamWeek())

	entries, err := ComputeWeekLuck(m, config.DefaultEngine())
	if err != nil {
		t.Fatalf("ComputeWeekLuck error: %v", err)
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.Delta
	}
	if !approx(sum, 0) {
		t.Errorf("delta sum = %.6f, want 0", sum)
	}
}

func TestComputeWeekLuck_Ordering(t *testing.T) {
	src := fourTeamWeek()
	src.weeks = 2
	src.scores[2] = map[string]float64{"1": 70, "2": 90, "3": 100, "4": 80}
	src.rows[2] = append(pair("2", "1", 90, 70), pair("3", "4", 100, 80)...)
	m := buildMatrix(t, src)

	entries, err := ComputeWeekLuck(m, config.DefaultEngine())
	if err != nil {
		t.Fatalf("ComputeWeekLuck error: %v", err)
	}
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.Week < prev.Week || (cur.Week == prev.Week && cur.TeamID < prev.TeamID) {
			t.Fatalf("entries out of order at %d: %v then %v", i, prev, cur)
		}
	}
}

func TestComputeWeekLuck_TieCountsAsHalfWin(t *testing.T) {
	src := &stubSource{
		weeks: 1,
		scores: map[int]map[string]float64{
			1: {"1": 100, "2": 100, "3": 90, "4": 80},
		},
		rows: map[int][]season.MatchupRow{
			1: append(pair("1", "2", 100, 100), pair("3", "4", 90, 80)...),
		},
	}
	m := buildMatrix(t, src)

	entries, err := ComputeWeekLuck(m, config.DefaultEngine())
	if err != nil {
		t.Fatalf("ComputeWeekLuck error: %v", err)
	}
	byTeam := make(map[string]WeekLuck, 4)
	for _, e := range entries {
		byTeam[e.TeamID] = e
	}

	// Tied teams: 2 fair wins (the tied opponent counts neither way),
	// actual credit 0.5, opponent percentile 2/3.
	// (0.5 − 2/3)·100 − (2/3 − 0.5)·20 = −20.
	for _, id := range []string{"1", "2"} {
		e := byTeam[id]
		if e.Result != season.Tie {
			t.Errorf("team %s result = %s, want T", id, e.Result)
		}
		if e.FairWins != 2 || !approx(e.Delta, -20) {
			t.Errorf("team %s fairWins/delta = %d/%.4f, want 2/-20", id, e.FairWins, e.Delta)
		}
	}
}

func TestComputeRecords_Aggregation(t *testing.T) {
	src := fourTeamWeek()
	src.weeks = 2
	src.scores[2] = map[string]float64{"1": 70, "2": 90, "3": 100, "4": 80}
	src.rows[2] = append(pair("1", "2", 70, 90), pair("3", "4", 100, 80)...)
	m := buildMatrix(t, src)

	records, err := ComputeRecords(m, config.DefaultEngine())
	if err != nil {
		t.Fatalf("ComputeRecords error: %v", err)
	}

	r1 := records["1"]
	if r1.ActualWins != 1 || r1.ActualLosses != 1 || r1.ActualTies != 0 {
		t.Errorf("team 1 record = %d-%d-%d, want 1-1-0", r1.ActualWins, r1.ActualLosses, r1.ActualTies)
	}
	// Week 1 fair rate 3/3, week 2 fair rate 0/3.
	if !approx(r1.ExpectedWins, 1) {
		t.Errorf("team 1 expected wins = %.4f, want 1", r1.ExpectedWins)
	}
	if r1.WinDifferential != 0 {
		t.Errorf("team 1 win differential = %d, want 0", r1.WinDifferential)
	}

	r3 := records["3"]
	// Week 1 fair rate 1/3, week 2 fair rate 3/3.
	if !approx(r3.ExpectedWins, 4.0/3) {
		t.Errorf("team 3 expected wins = %.4f, want 1.3333", r3.ExpectedWins)
	}
	if r3.WinDifferential != 1-int(math.Round(4.0/3)) {
		t.Errorf("team 3 win differential = %d, want 0", r3.WinDifferential)
	}

	for id, r := range records {
		if r.ActualWins+r.ActualLosses+r.ActualTies != r.WeeksPlayed {
			t.Errorf("team %s W+L+T = %d, want %d", id, r.ActualWins+r.ActualLosses+r.ActualTies, r.WeeksPlayed)
		}
		if !approx(r.ExpectedWins+r.ExpectedLosses, float64(r.WeeksPlayed)) {
			t.Errorf("team %s expected W+L = %.4f, want %d", id, r.ExpectedWins+r.ExpectedLosses, r.WeeksPlayed)
		}
		if r.ExpectedWins < 0 || r.ExpectedWins > float64(r.WeeksPlayed) {
			t.Errorf("team %s expected wins %.4f out of [0, %d]", id, r.ExpectedWins, r.WeeksPlayed)
		}
		if r.WinDifferential > 0 && r.LuckScore < 0 {
			t.Errorf("team %s overperformed by %d wins but luck = %.4f", id, r.WinDifferential, r.LuckScore)
		}
	}
}

func TestComputeRecords_FullSeasonBye(t *testing.T) {
	// Teams 3 and 4 never play: they keep zero records, and the per-week
	// denominator shrinks to the two teams that did.
	src := &stubSource{
		weeks: 2,
		scores: map[int]map[string]float64{
			1: {"1": 100, "2": 90},
			2: {"1": 80, "2": 95},
		},
		rows: map[int][]season.MatchupRow{
			1: pair("1", "2", 100, 90),
			2: pair("1", "2", 80, 95),
		},
	}
	m := buildMatrix(t, src)

	records, err := ComputeRecords(m, config.DefaultEngine())
	if err != nil {
		t.Fatalf("ComputeRecords error: %v", err)
	}

	r3 := records["3"]
	if r3.WeeksPlayed != 0 || r3.ExpectedWins != 0 || r3.LuckScore != 0 {
		t.Errorf("bye team record = %+v, want zeroes", r3)
	}

	// Two participants: fair rate is 0 or 1, never fractional.
	r1 := records["1"]
	if !approx(r1.ExpectedWins, 1) {
		t.Errorf("team 1 expected wins = %.4f, want 1", r1.ExpectedWins)
	}
}

func TestFindExtremes_LeagueWide(t *testing.T) {
	m := buildMatrix(t, fourTeamWeek())
	entries, err := ComputeWeekLuck(m, config.DefaultEngine())
	if err != nil {
		t.Fatalf("ComputeWeekLuck error: %v", err)
	}

	ext, err := FindExtremes(entries, "")
	if err != nil {
		t.Fatalf("FindExtremes error: %v", err)
	}
	if ext.Luckiest.TeamID != "2" {
		t.Errorf("luckiest = team %s, want 2", ext.Luckiest.TeamID)
	}
	if ext.Unluckiest.TeamID != "3" {
		t.Errorf("unluckiest = team %s, want 3", ext.Unluckiest.TeamID)
	}
}

func TestFindExtremes_TeamScope(t *testing.T) {
	entries := []WeekLuck{
		{TeamID: "1", Week: 1, Delta: 5},
		{TeamID: "2", Week: 1, Delta: 50},
		{TeamID: "1", Week: 2, Delta: -12},
		{TeamID: "2", Week: 2, Delta: -80},
	}

	ext, err := FindExtremes(entries, "1")
	if err != nil {
		t.Fatalf("FindExtremes error: %v", err)
	}
	if ext.Luckiest.Week != 1 || !approx(ext.Luckiest.Delta, 5) {
		t.Errorf("luckiest = week %d delta %.1f, want week 1 delta 5", ext.Luckiest.Week, ext.Luckiest.Delta)
	}
	if ext.Unluckiest.Week != 2 || !approx(ext.Unluckiest.Delta, -12) {
		t.Errorf("unluckiest = week %d delta %.1f, want week 2 delta -12", ext.Unluckiest.Week, ext.Unluckiest.Delta)
	}
}

func TestFindExtremes_TieBreaksToEarliestWeek(t *testing.T) {
	entries := []WeekLuck{
		{TeamID: "1", Week: 1, Delta: 25},
		{TeamID: "1", Week: 2, Delta: -25},
		{TeamID: "1", Week: 3, Delta: 25},
		{TeamID: "1", Week: 4, Delta: -25},
	}

	ext, err := FindExtremes(entries, "")
	if err != nil {
		t.Fatalf("FindExtremes error: %v", err)
	}
	if ext.Luckiest.Week != 1 {
		t.Errorf("luckiest week = %d, want 1", ext.Luckiest.Week)
	}
	if ext.Unluckiest.Week != 2 {
		t.Errorf("unluckiest week = %d, want 2", ext.Unluckiest.Week)
	}
}

func TestFindExtremes_NeverSurfacesByeWeeks(t *testing.T) {
	src := &stubSource{
		weeks: 2,
		scores: map[int]map[string]float64{
			1: {"1": 100, "2": 90, "3": 80, "4": 70},
			2: {"1": 110, "2": 95},
		},
		rows: map[int][]season.MatchupRow{
			1: append(pair("1", "4", 100, 70), pair("2", "3", 90, 80)...),
			2: pair("1", "2", 110, 95),
		},
	}
	m := buildMatrix(t, src)

	entries, err := ComputeWeekLuck(m, config.DefaultEngine())
	if err != nil {
		t.Fatalf("ComputeWeekLuck error: %v", err)
	}
	for _, e := range entries {
		if e.Week == 2 && (e.TeamID == "3" || e.TeamID == "4") {
			t.Errorf("ledger has entry for team %s in its bye week", e.TeamID)
		}
	}

	ext, err := FindExtremes(entries, "3")
	if err != nil {
		t.Fatalf("FindExtremes error: %v", err)
	}
	if ext.Luckiest.Week != 1 || ext.Unluckiest.Week != 1 {
		t.Errorf("extremes for team 3 = weeks %d/%d, want both 1 (week 2 is a bye)",
			ext.Luckiest.Week, ext.Unluckiest.Week)
	}
}

func TestFindExtremes_EmptyScope(t *testing.T) {
	_, err := FindExtremes(nil, "")
	var insufficient *season.InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("FindExtremes error = %v, want InsufficientDataError", err)
	}

	_, err = FindExtremes([]WeekLuck{{TeamID: "1", Week: 1}}, "9")
	if !errors.As(err, &insufficient) {
		t.Fatalf("FindExtremes scoped error = %v, want InsufficientDataError", err)
	}
}

func TestComputeWeekLuck_ScaleConstants(t *testing.T) {
	m := buildMatrix(t, fourTeamWeek())

	cfg := config.Engine{
		WeeklyLuckScale:        10,
		OpponentStrengthWeight: 0,
		RecentFormWindow:       3,
		StabilityThreshold:     2,
	}
	entries, err := ComputeWeekLuck(m, cfg)
	if err != nil {
		t.Fatalf("ComputeWeekLuck error: %v", err)
	}
	for _, e := range entries {
		if e.TeamID == "2" && !approx(e.Delta, 10.0/3) {
			t.Errorf("team 2 delta = %.4f, want 3.3333 under reduced scale", e.Delta)
		}
	}
}
