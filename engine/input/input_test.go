package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/creature-waves/engine/core"
)

func TestDevPortal_ThreeInARow(t *testing.T) {
	var p DevPortal
	if p.Key(ebiten.KeyD) || p.Key(ebiten.KeyD) {
		t.Fatal("opened before the third press")
	}
	if !p.Key(ebiten.KeyD) {
		t.Fatal("third press did not open the portal")
	}
	// the count restarts after opening
	if p.Key(ebiten.KeyD) {
		t.Error("fourth press reopened immediately")
	}
}

func TestDevPortal_OtherKeyResets(t *testing.T) {
	var p DevPortal
	p.Key(ebiten.KeyD)
	p.Key(ebiten.KeyD)
	p.Key(ebiten.KeyA)
	if p.Key(ebiten.KeyD) || p.Key(ebiten.KeyD) {
		t.Error("sequence survived an interrupting key")
	}
	if !p.Key(ebiten.KeyD) {
		t.Error("fresh sequence did not open")
	}
}

type offset struct{ dx, dy float64 }

func (o offset) ScreenToWorld(sx, sy int) core.Vec2 {
	return core.Vec2{X: float64(sx) - o.dx, Y: o.dy - float64(sy)}
}

func TestInputState_Attack(t *testing.T) {
	s := &InputState{MouseX: 110, MouseY: 40}
	if _, ok := s.Attack(offset{100, 50}, core.AttackClick); ok {
		t.Fatal("attack without a click")
	}
	s.LeftJustPressed = true
	in, ok := s.Attack(offset{100, 50}, core.AttackThrow)
	if !ok || in.Kind != core.AttackThrow || in.Pos != (core.Vec2{X: 10, Y: 10}) {
		t.Errorf("Attack = %+v, %v", in, ok)
	}
}
