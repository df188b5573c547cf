/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import "sort"

// Award is the icon shown next to a ranked player.
type Award string

const (
	AwardTrophy   Award = "trophy"
	AwardMedal    Award = "medal"
	AwardRibbon   Award = "award"
	AwardThumbsUp Award = "thumbs-up"
)

// AwardFor maps a zero-based rank to its icon.
func AwardFor(rank int) Award {
	switch rank {
	case 0:
		return AwardTrophy
	case 1:
		return AwardMedal
	case 2:
		return AwardRibbon
	default:
		return AwardThumbsUp
	}
}

// Standing is one row of the results board.
type Standing struct {
	Player
	Rank     int
	Award    Award
	IsWinner bool
}

// Rank orders players by descending score. Ties keep their input order.
// winner names the player flagged as the round winner, if any.
func Rank(players []Player, winner string) []Standing {
	sorted := append([]Player(nil), players...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	out := make([]Standing, 0, len(sorted))
	for i, p := range sorted {
		out = append(out, Standing{
			Player:   p,
			Rank:     i,
			Award:    AwardFor(i),
			IsWinner: winner != "" && p.ID == winner,
		})
	}

	return out
}
