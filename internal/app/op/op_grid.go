package op

import (
	"context"

	"mergeverse/internal/domain/merge"
)

func slotInRange(i int) bool {
	return i >= 0 && i < merge.GridSlots
}

func validateMerge(s *merge.PlayerState, cmd Command) error {
	if !slotInRange(cmd.SlotA) || !slotInRange(cmd.SlotB) {
		return ErrInvalidSlot
	}
	if cmd.SlotA == cmd.SlotB {
		return ErrSelfMerge
	}
	return nil
}

func applyMerge(_ context.Context, _ *Resolver, oc *opContext) error {
	s := oc.State
	s.Game.Grid[oc.Cmd.SlotA]++
	if s.Game.Inventory > 0 {
		s.Game.Inventory--
		s.Game.Grid[oc.Cmd.SlotB] = merge.SpawnValue(s.Game.KingLevel)
	} else {
		s.Game.Grid[oc.Cmd.SlotB] = 0
	}
	s.Game.TotalMerged++
	s.Daily.Merges.Current++
	s.RecalcKingLevel(oc.Rng)

	daily := s.Daily.Merges
	oc.Payload = gridResponse{
		Grid:        s.Game.Grid,
		Inventory:   s.Game.Inventory,
		TotalMerged: s.Game.TotalMerged,
		KingLevel:   s.Game.KingLevel,
		Product:     s.Progress.Product,
		DailyMerges: &daily,
	}
	return nil
}

func applySpawnInventory(_ context.Context, _ *Resolver, oc *opContext) error {
	oc.State.Game.Inventory++
	oc.Payload = gridResponse{
		Grid:      oc.State.Game.Grid,
		Inventory: oc.State.Game.Inventory,
		KingLevel: oc.State.Game.KingLevel,
		Product:   oc.State.Progress.Product,
	}
	return nil
}

func validatePlaceFromInventory(s *merge.PlayerState, _ Command) error {
	if s.Game.Inventory == 0 {
		return ErrEmptyInventory
	}
	if s.Game.FirstEmptySlot() < 0 {
		return ErrGridFull
	}
	return nil
}

func applyPlaceFromInventory(_ context.Context, _ *Resolver, oc *opContext) error {
	s := oc.State
	s.Game.Inventory--
	s.Game.Grid[s.Game.FirstEmptySlot()] = merge.SpawnValue(s.Game.KingLevel)
	s.RecalcKingLevel(oc.Rng)
	oc.Payload = gridResponse{
		Grid:      s.Game.Grid,
		Inventory: s.Game.Inventory,
		KingLevel: s.Game.KingLevel,
		Product:   s.Progress.Product,
	}
	return nil
}

func validateDeleteSlot(s *merge.PlayerState, cmd Command) error {
	if !slotInRange(cmd.Slot) {
		return ErrInvalidSlot
	}
	// The highest creature on the grid is the king; it cannot be deleted.
	if s.Game.Grid[cmd.Slot] != 0 && s.Game.Grid[cmd.Slot] == s.Game.MaxSlotValue() {
		return ErrKingProtected
	}
	return nil
}

func applyDeleteSlot(_ context.Context, _ *Resolver, oc *opContext) error {
	s := oc.State
	s.Game.Grid[oc.Cmd.Slot] = 0
	oc.Payload = gridResponse{
		Grid:      s.Game.Grid,
		Inventory: s.Game.Inventory,
		KingLevel: s.Game.KingLevel,
		Product:   s.Progress.Product,
	}
	return nil
}

func validateSwapSlots(_ *merge.PlayerState, cmd Command) error {
	if !slotInRange(cmd.From) || !slotInRange(cmd.To) {
		return ErrInvalidSlot
	}
	return nil
}

func applySwapSlots(_ context.Context, _ *Resolver, oc *opContext) error {
	s := oc.State
	s.Game.Grid[oc.Cmd.From], s.Game.Grid[oc.Cmd.To] = s.Game.Grid[oc.Cmd.To], s.Game.Grid[oc.Cmd.From]
	oc.Payload = gridResponse{
		Grid:      s.Game.Grid,
		Inventory: s.Game.Inventory,
		KingLevel: s.Game.KingLevel,
		Product:   s.Progress.Product,
	}
	return nil
}
