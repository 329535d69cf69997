// Command seed generates a synthetic season snapshot for local development:
// a round-robin schedule with randomized scores, written to the same
// data-root layout the server reads. With an odd team count one team sits
// out each week, which is handy for exercising bye handling end to end.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"luck-mcp/internal/config"
	"luck-mcp/internal/luck"
	"luck-mcp/internal/rank"
	"luck-mcp/internal/season"
	"luck-mcp/internal/store"
)

func main() {
	var (
		leagueID = flag.String("league", "12345", "league id to write under the data root")
		name     = flag.String("name", "Dev League", "league name")
		teams    = flag.Int("teams", 10, "number of teams")
		weeks    = flag.Int("weeks", 8, "number of completed weeks")
		dataRoot = flag.String("data-root", "data/raw", "root directory for season snapshots")
		seed     = flag.Int64("seed", 1, "RNG seed (same seed, same season)")
		preview  = flag.Bool("preview", true, "print the luck table after writing")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *teams < 2 {
		log.Fatal().Int("teams", *teams).Msg("need at least two teams")
	}

	f := generate(*leagueID, *name, *teams, *weeks, rand.New(rand.NewSource(*seed)))
	st := store.NewSeasonStore(*dataRoot)
	if err := st.WriteSeason(*leagueID, f); err != nil {
		log.Fatal().Err(err).Msg("write season")
	}
	log.Info().Str("path", st.Path(*leagueID)).Int("teams", *teams).Int("weeks", *weeks).Msg("season written")

	if !*preview {
		return
	}

	m, err := season.Build(f.Teams, f.Source())
	if err != nil {
		log.Fatal().Err(err).Msg("validate season")
	}
	records, err := luck.ComputeRecords(m, config.DefaultEngine())
	if err != nil {
		log.Fatal().Err(err).Msg("compute records")
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tTEAM\tW-L-T\tEXP W\tLUCK")
	for i, id := range rank.ByLuck(records) {
		r := records[id]
		fmt.Fprintf(w, "%d\t%s\t%d-%d-%d\t%.2f\t%+.1f\n",
			i+1, r.TeamName, r.ActualWins, r.ActualLosses, r.ActualTies, r.ExpectedWins, r.LuckScore)
	}
	w.Flush()
}

// generate builds a circle-method round robin. Team strength is a fixed
// per-team base so the standings are not pure noise and luck deltas have
// something to diverge from.
func generate(leagueID string, name string, n int, weeks int, rng *rand.Rand) *store.SeasonFile {
	f := &store.SeasonFile{LeagueID: leagueID, LeagueName: name}

	base := make(map[string]float64, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("%d", i)
		f.Teams = append(f.Teams, season.Team{ID: id, Name: fmt.Sprintf("Team %d", i)})
		base[id] = 85 + rng.Float64()*30
	}

	// Circle method: fix slot 0, rotate the rest. The pad slot for odd
	// team counts marks that round's bye.
	slots := make([]int, 0, n+1)
	for i := 1; i <= n; i++ {
		slots = append(slots, i)
	}
	if n%2 == 1 {
		slots = append(slots, 0)
	}

	score := func(id string) float64 {
		pts := base[id] + rng.NormFloat64()*12
		if pts < 40 {
			pts = 40
		}
		return float64(int(pts*100)) / 100
	}

	for week := 1; week <= weeks; week++ {
		sw := store.SeasonWeek{Week: week, Complete: true}
		half := len(slots) / 2
		for i := 0; i < half; i++ {
			a, b := slots[i], slots[len(slots)-1-i]
			if a == 0 || b == 0 {
				continue
			}
			idA, idB := fmt.Sprintf("%d", a), fmt.Sprintf("%d", b)
			sw.Matchups = append(sw.Matchups, store.SeasonMatchup{
				TeamA: idA, TeamB: idB, ScoreA: score(idA), ScoreB: score(idB),
			})
		}
		f.Weeks = append(f.Weeks, sw)

		rest := slots[1:]
		last := rest[len(rest)-1]
		copy(rest[1:], rest[:len(rest)-1])
		rest[0] = last
	}

	return f
}
