package systems

import "github.com/1siamBot/creature-waves/engine/core"

// Stage priorities. Each tick runs them in this order.
const (
	PrioTimers    = 10
	PrioMotion    = 20
	PrioAttack    = 30
	PrioMovement  = 40
	PrioHit       = 50
	PrioLifecycle = 60
	PrioWave      = 70
)

// Pipeline exposes the stages frontends talk to after Install
type Pipeline struct {
	Attack    *AttackSystem
	Lifecycle *LifecycleSystem
	Wave      *WaveSystem
}

// Install registers the full simulation on w. levels may be nil for dev
// sessions that spawn levels by hand.
func Install(w *core.World, levels LevelSource) *Pipeline {
	p := &Pipeline{
		Attack:    &AttackSystem{},
		Lifecycle: &LifecycleSystem{},
		Wave:      &WaveSystem{Levels: levels},
	}
	w.AddSystem(&TimerSystem{})
	w.AddSystem(&MotionSystem{})
	w.AddSystem(p.Attack)
	w.AddSystem(&MovementSystem{})
	w.AddSystem(&HitSystem{})
	w.AddSystem(p.Lifecycle)
	w.AddSystem(p.Wave)
	return p
}
