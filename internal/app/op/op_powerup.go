package op

import (
	"context"

	"mergeverse/internal/domain/merge"
)

func validateUsePowerUp(s *merge.PlayerState, cmd Command) error {
	if cmd.PowerUpIndex < 0 || cmd.PowerUpIndex >= len(s.Game.PowerUps) {
		return ErrInvalidPowerUp
	}
	if !slotInRange(cmd.TargetSlot) {
		return ErrInvalidSlot
	}
	return nil
}

func applyUsePowerUp(_ context.Context, _ *Resolver, oc *opContext) error {
	s := oc.State
	kind := s.Game.PowerUps[oc.Cmd.PowerUpIndex]
	boostArea(&s.Game, kind, oc.Cmd.TargetSlot)

	// Swap-remove keeps consumption O(1); callers never rely on power-up order.
	last := len(s.Game.PowerUps) - 1
	s.Game.PowerUps[oc.Cmd.PowerUpIndex] = s.Game.PowerUps[last]
	s.Game.PowerUps = s.Game.PowerUps[:last]

	s.Daily.PowerUps.Current++
	s.RecalcKingLevel(oc.Rng)
	oc.Payload = powerUpResponse{
		Grid:          s.Game.Grid,
		PowerUps:      s.Game.PowerUps,
		KingLevel:     s.Game.KingLevel,
		Product:       s.Progress.Product,
		DailyPowerUps: s.Daily.PowerUps,
	}
	return nil
}

// boostArea increments every non-empty slot in the power-up's area of effect:
// the target's full column, its full row, or the 2x2 block anchored at the
// target. The block keeps its anchor at the grid edge; cells past the edge
// are skipped rather than shifted onto neighbours.
func boostArea(g *merge.GameState, kind merge.PowerUpKind, target int) {
	row := target / merge.GridWidth
	col := target % merge.GridWidth

	bump := func(i int) {
		if g.Grid[i] > 0 {
			g.Grid[i]++
		}
	}

	switch kind {
	case merge.PowerUpColumn:
		for r := 0; r < merge.GridSlots/merge.GridWidth; r++ {
			bump(r*merge.GridWidth + col)
		}
	case merge.PowerUpRow:
		for c := 0; c < merge.GridWidth; c++ {
			bump(row*merge.GridWidth + c)
		}
	case merge.PowerUpSquare:
		for dr := 0; dr < 2; dr++ {
			for dc := 0; dc < 2; dc++ {
				r, c := row+dr, col+dc
				if r >= merge.GridSlots/merge.GridWidth || c >= merge.GridWidth {
					continue
				}
				bump(r*merge.GridWidth + c)
			}
		}
	}
}
