package merge

import "math/rand"

// LeagueFromProduct maps the derived product score onto the rank ladder.
func LeagueFromProduct(product int) League {
	switch product / 50 {
	case 0:
		return LeagueBronze
	case 1:
		return LeagueSilver
	case 2:
		return LeagueGold
	case 3:
		return LeaguePlatinum
	case 4:
		return LeagueDiamond
	case 5:
		return LeagueMaster
	case 6:
		return LeagueGrandMaster
	default:
		return LeagueChallenger
	}
}

// RecalcProduct re-derives the product score and the league from it. Called
// after any mutation of IQ, social score, or king level.
func (s *PlayerState) RecalcProduct() {
	s.Progress.Product = s.Progress.IQ + s.Progress.SocialScore*s.Game.KingLevel
	s.League = LeagueFromProduct(s.Progress.Product)
}

const (
	kingLevelDivisor = 50
	levelUpBalance   = 50
	levelUpCreatures = 5
)

// RecalcKingLevel re-derives the king level from the grid sum. The level never
// decreases. When it increases the level-up reward fires exactly once: +50
// balance, five creatures placed into empty (else lowest) slots, one random
// power-up. Callers invoke this at most once per command so the reward cannot
// double-fire from multiple mutation sites.
func (s *PlayerState) RecalcKingLevel(rng *rand.Rand) bool {
	newLevel := s.Game.GridSum()/kingLevelDivisor + 1
	if newLevel <= s.Game.KingLevel {
		return false
	}
	s.Game.KingLevel = newLevel
	s.Progress.Balance += levelUpBalance
	for i := 0; i < levelUpCreatures; i++ {
		s.Game.PlaceCreature(SpawnValue(newLevel))
	}
	s.Game.RandomPowerUp(rng)
	s.RecalcProduct()
	return true
}
