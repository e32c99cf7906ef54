package network

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/1siamBot/creature-waves/engine/core"
)

// CmdType identifies a recorded command
type CmdType uint8

const (
	CmdAttack CmdType = iota + 1
)

// GameCommand is a deterministic player action applied at a tick
type GameCommand struct {
	Tick uint64
	Type CmdType
	Kind core.AttackKind
	X, Y float64
}

// commandSize is the encoded length of a GameCommand
const commandSize = 8 + 1 + 1 + 8 + 8

// AttackCommand wraps an attack input for recording
func AttackCommand(tick uint64, in core.AttackInput) GameCommand {
	return GameCommand{Tick: tick, Type: CmdAttack, Kind: in.Kind, X: in.Pos.X, Y: in.Pos.Y}
}

// Input returns the attack input a command carries
func (c *GameCommand) Input() core.AttackInput {
	return core.AttackInput{Kind: c.Kind, Pos: core.Vec2{X: c.X, Y: c.Y}}
}

// Encode writes a command to binary
func (c *GameCommand) Encode(w io.Writer) error {
	var buf [commandSize]byte
	binary.LittleEndian.PutUint64(buf[0:], c.Tick)
	buf[8] = byte(c.Type)
	buf[9] = byte(c.Kind)
	binary.LittleEndian.PutUint64(buf[10:], math.Float64bits(c.X))
	binary.LittleEndian.PutUint64(buf[18:], math.Float64bits(c.Y))
	_, err := w.Write(buf[:])
	return err
}

// Decode reads a command from binary. A clean end of input returns io.EOF;
// a partial command returns io.ErrUnexpectedEOF.
func (c *GameCommand) Decode(r io.Reader) error {
	var buf [commandSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	c.Tick = binary.LittleEndian.Uint64(buf[0:])
	c.Type = CmdType(buf[8])
	c.Kind = core.AttackKind(buf[9])
	c.X = math.Float64frombits(binary.LittleEndian.Uint64(buf[10:]))
	c.Y = math.Float64frombits(binary.LittleEndian.Uint64(buf[18:]))
	if c.Type != CmdAttack {
		return fmt.Errorf("%w: unknown command type %d", ErrBadReplay, c.Type)
	}
	if c.Kind > core.AttackThrow {
		return fmt.Errorf("%w: unknown attack kind %d", ErrBadReplay, c.Kind)
	}
	return nil
}
