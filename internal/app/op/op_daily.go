package op

import (
	"context"
	"fmt"
	"time"

	"mergeverse/internal/domain/merge"
)

const (
	generationGap = 24 * time.Hour

	dailyLinkCount = 2

	creatureTier = 3
	powerUpTier  = 5
)

func applyGenerateDaily(ctx context.Context, r *Resolver, oc *opContext) error {
	s := oc.State
	if len(s.Daily.Links) > 0 && oc.Now.Unix()-s.Daily.LastGeneration < int64(generationGap.Seconds()) {
		return ErrDailyTooSoon
	}

	// Annotation load scales with skill so stronger players get more tasks.
	taskCount := 2 + s.Progress.IQ/50
	mcq, err := r.Tasks.FetchMcqTasks(ctx, taskCount)
	if err != nil {
		return fmt.Errorf("fetch mcq tasks: %w", err)
	}
	text, err := r.Tasks.FetchTextTasks(ctx, taskCount)
	if err != nil {
		return fmt.Errorf("fetch text tasks: %w", err)
	}

	s.Daily = merge.DailyProgress{
		Links:          r.Links.RandomLinks(dailyLinkCount),
		McqTasks:       mcq,
		TextTasks:      text,
		Merges:         merge.DailyCounter{Target: 15 + oc.Rng.Intn(12)},
		Annotations:    merge.DailyCounter{Target: 3 + oc.Rng.Intn(5)},
		PowerUps:       merge.DailyCounter{Target: 2 + oc.Rng.Intn(5)},
		LastGeneration: oc.Now.Unix(),
	}

	oc.Payload = dailyResponse{Daily: s.Daily}
	return nil
}

func applyCheckDaily(_ context.Context, _ *Resolver, oc *opContext) error {
	s := oc.State
	if oc.Cmd.URL != "" {
		for i := range s.Daily.Links {
			if s.Daily.Links[i].URL == oc.Cmd.URL {
				s.Daily.Links[i].Visited = true
			}
		}
	}

	settle := func(c *merge.DailyCounter) {
		if !c.Completed && c.Current >= c.Target {
			c.Completed = true
			s.Daily.TotalCompleted++
		}
	}
	settle(&s.Daily.Merges)
	settle(&s.Daily.Annotations)
	settle(&s.Daily.PowerUps)

	oc.Payload = dailyResponse{Daily: s.Daily}
	return nil
}

func validateClaimDailyReward(s *merge.PlayerState, cmd Command) error {
	switch cmd.Tier {
	case creatureTier:
		if s.Daily.TotalCompleted < creatureTier {
			return ErrRewardLocked
		}
	case powerUpTier:
		if s.Daily.TotalCompleted < powerUpTier {
			return ErrRewardLocked
		}
	default:
		return ErrRewardLocked
	}
	return nil
}

func applyClaimDailyReward(_ context.Context, _ *Resolver, oc *opContext) error {
	s := oc.State
	resp := claimResponse{Tier: oc.Cmd.Tier}

	switch oc.Cmd.Tier {
	case creatureTier:
		if s.Daily.CreatureEarned == nil {
			value := merge.SpawnValue(s.Game.KingLevel)
			s.Game.PlaceCreature(value)
			s.Daily.CreatureEarned = &value
			s.RecalcKingLevel(oc.Rng)
			resp.Claimed = true
		}
		resp.CreatureEarned = s.Daily.CreatureEarned
	case powerUpTier:
		if s.Daily.PowerUpEarned == nil {
			kind := s.Game.RandomPowerUp(oc.Rng)
			s.Daily.PowerUpEarned = &kind
			resp.Claimed = true
		}
		resp.PowerUpEarned = s.Daily.PowerUpEarned
	}

	oc.Payload = resp
	return nil
}
