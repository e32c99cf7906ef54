package network

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/1siamBot/creature-waves/engine/core"
)

// ErrBadReplay is wrapped by every replay decoding failure
var ErrBadReplay = errors.New("bad replay")

// ReplayVersion is the current file format version
const ReplayVersion uint16 = 2

var replayMagic = [4]byte{'C', 'W', 'R', 'P'}

// Header identifies the session a replay belongs to. Playing the commands
// against a session with the same seed, tick rate and play area reproduces
// it.
type Header struct {
	Version   uint16
	SessionID uuid.UUID
	Seed      uint64
	TickRate  float64
	Area      core.Vec2
}

const headerSize = 4 + 2 + 16 + 8 + 8 + 8 + 8

func (h *Header) encode(w io.Writer) error {
	var buf [headerSize]byte
	copy(buf[0:], replayMagic[:])
	binary.LittleEndian.PutUint16(buf[4:], h.Version)
	copy(buf[6:], h.SessionID[:])
	binary.LittleEndian.PutUint64(buf[22:], h.Seed)
	binary.LittleEndian.PutUint64(buf[30:], math.Float64bits(h.TickRate))
	binary.LittleEndian.PutUint64(buf[38:], math.Float64bits(h.Area.X))
	binary.LittleEndian.PutUint64(buf[46:], math.Float64bits(h.Area.Y))
	_, err := w.Write(buf[:])
	return err
}

func (h *Header) decode(r io.Reader) error {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return fmt.Errorf("%w: header: %v", ErrBadReplay, err)
	}
	if [4]byte(buf[0:4]) != replayMagic {
		return fmt.Errorf("%w: not a replay file", ErrBadReplay)
	}
	h.Version = binary.LittleEndian.Uint16(buf[4:])
	if h.Version != ReplayVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrBadReplay, h.Version)
	}
	copy(h.SessionID[:], buf[6:22])
	h.Seed = binary.LittleEndian.Uint64(buf[22:])
	h.TickRate = math.Float64frombits(binary.LittleEndian.Uint64(buf[30:]))
	if !(h.TickRate > 0) {
		return fmt.Errorf("%w: tick rate %v", ErrBadReplay, h.TickRate)
	}
	h.Area.X = math.Float64frombits(binary.LittleEndian.Uint64(buf[38:]))
	h.Area.Y = math.Float64frombits(binary.LittleEndian.Uint64(buf[46:]))
	if !h.Area.IsFinite() || !(h.Area.X > 0 && h.Area.Y > 0) {
		return fmt.Errorf("%w: play area %v", ErrBadReplay, h.Area)
	}
	return nil
}

// Replay records and plays back game commands
type Replay struct {
	Header   Header
	Commands []GameCommand

	cursor int
	closer io.Closer
	writer *bufio.Writer
}

// NewReplayRecorder creates a replay file and writes its header
func NewReplayRecorder(path string, h Header) (*Replay, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create replay: %w", err)
	}
	r, err := NewReplayWriter(f, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReplayWriter records to w
func NewReplayWriter(w io.Writer, h Header) (*Replay, error) {
	h.Version = ReplayVersion
	r := &Replay{Header: h, writer: bufio.NewWriter(w)}
	if err := h.encode(r.writer); err != nil {
		return nil, fmt.Errorf("write replay header: %w", err)
	}
	return r, nil
}

// Record writes a command to the replay
func (r *Replay) Record(cmd GameCommand) error {
	r.Commands = append(r.Commands, cmd)
	return cmd.Encode(r.writer)
}

// Close flushes and closes the replay file
func (r *Replay) Close() error {
	var err error
	if r.writer != nil {
		err = r.writer.Flush()
	}
	if r.closer != nil {
		err = errors.Join(err, r.closer.Close())
	}
	return err
}

// LoadReplay loads a replay file
func LoadReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()
	return ReadReplay(bufio.NewReader(f))
}

// ReadReplay decodes a header and every command that follows it
func ReadReplay(rd io.Reader) (*Replay, error) {
	replay := &Replay{}
	if err := replay.Header.decode(rd); err != nil {
		return nil, err
	}
	for {
		var cmd GameCommand
		err := cmd.Decode(rd)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if !errors.Is(err, ErrBadReplay) {
				err = fmt.Errorf("%w: command %d: %v", ErrBadReplay, len(replay.Commands), err)
			}
			return nil, err
		}
		replay.Commands = append(replay.Commands, cmd)
	}
	sort.SliceStable(replay.Commands, func(i, j int) bool {
		return replay.Commands[i].Tick < replay.Commands[j].Tick
	})
	return replay, nil
}

// CommandsForTick returns the commands recorded at tick. Playback asks for
// ticks in increasing order; earlier commands that were skipped are dropped.
func (r *Replay) CommandsForTick(tick uint64) []GameCommand {
	for r.cursor < len(r.Commands) && r.Commands[r.cursor].Tick < tick {
		r.cursor++
	}
	start := r.cursor
	for r.cursor < len(r.Commands) && r.Commands[r.cursor].Tick == tick {
		r.cursor++
	}
	return r.Commands[start:r.cursor]
}

// Done reports whether playback has consumed every command
func (r *Replay) Done() bool { return r.cursor >= len(r.Commands) }

// Rewind restarts playback from the first command
func (r *Replay) Rewind() { r.cursor = 0 }
