package systems

import (
	"log/slog"
	"time"

	"github.com/1siamBot/creature-waves/engine/core"
	"github.com/1siamBot/creature-waves/engine/level"
)

// SpawnRequest describes a creature to create. Level loading and the dev
// tools both go through it.
type SpawnRequest struct {
	Species        core.Species
	MaxSpeed       float64
	Pos            core.Vec2
	Boundary       core.Boundary
	Pattern        core.MotionPattern
	ShrinkDuration time.Duration
	Wave           int
}

// SpawnCreature inserts a new alive creature
func SpawnCreature(w *core.World, req SpawnRequest) core.EntityID {
	pattern := req.Pattern
	if pattern == nil {
		pattern = &core.Constant{}
	}
	c := core.Creature{
		Species:  req.Species,
		Pos:      req.Pos,
		Movement: core.NewMovementController(req.MaxSpeed),
		Pattern:  pattern,
		Boundary: req.Boundary,
		Shrink:   core.NewTimer(req.ShrinkDuration, core.Once),
		Scale:    1,
		Wave:     req.Wave,
	}
	c.Movement.Intent = Intent(pattern)
	id := w.Creatures.Insert(c)
	if w.Session != nil {
		w.Session.Emit(core.EvtCreatureSpawned, w.TickCount, id)
	}
	return id
}

// RandomSpawnPos picks a uniform point inside the play area shrunk by the
// spawn margin. A margin larger than the area collapses to the center.
func RandomSpawnPos(s *core.Session) core.Vec2 {
	half := s.Area.Sub(core.Splat(s.Tuning.SpawnMargin)).Scale(0.5)
	half = core.Vec2{X: max(half.X, 0), Y: max(half.Y, 0)}
	return core.Vec2{
		X: s.Uniform(-half.X, half.X),
		Y: s.Uniform(-half.Y, half.Y),
	}
}

// SpawnLevel spawns every creature of def tagged with wave and returns how
// many were created. Creatures the level cannot describe are logged and
// skipped.
func SpawnLevel(w *core.World, def *level.Definition, wave int) int {
	n := 0
	for i := range def.Creatures {
		cd := &def.Creatures[i]
		sp, err := cd.Species()
		if err != nil {
			slog.Error("creature skipped", "level", def.Name, "index", i, "err", err)
			continue
		}
		pos, fixed := cd.Position()
		if !fixed && w.Session != nil {
			pos = RandomSpawnPos(w.Session)
		}
		SpawnCreature(w, SpawnRequest{
			Species:        sp,
			MaxSpeed:       cd.MaxSpeed,
			Pos:            pos,
			Boundary:       cd.Boundary(),
			Pattern:        cd.Movement.Build(),
			ShrinkDuration: cd.ShrinkDuration(),
			Wave:           wave,
		})
		n++
	}
	return n
}
