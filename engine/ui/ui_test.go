package ui

import (
	"slices"
	"testing"
	"time"

	"github.com/1siamBot/creature-waves/engine/core"
)

func center(b MenuButton) (int, int) { return b.X + b.W/2, b.Y + b.H/2 }

func TestScoreMessage(t *testing.T) {
	if got := ScoreMessage(core.Outcome{Win: true, Wave: 5}); got != "You've cleared all waves. Congratulations!" {
		t.Errorf("win message = %q", got)
	}
	if got := ScoreMessage(core.Outcome{Wave: 3}); got != "You've reached wave 3. Try again!" {
		t.Errorf("lose message = %q", got)
	}
}

func TestMenu_TitleButtons(t *testing.T) {
	m := NewMenuSystem(800, 600)
	var played, exited bool
	m.OnPlay = func() { played = true }
	m.OnExit = func() { exited = true }

	b := m.Buttons()
	if len(b) != 3 || b[0].Text != "PLAY" || b[1].Text != "DEV" || b[2].Text != "EXIT" {
		t.Fatalf("title buttons = %+v", b)
	}
	if m.Click(0, 0) {
		t.Error("click outside every button was handled")
	}

	m.Click(center(b[2]))
	if !exited || m.Screen != ScreenTitle {
		t.Errorf("exit: exited=%v screen=%v", exited, m.Screen)
	}
	m.Click(center(b[0]))
	if !played || m.Screen != ScreenGameplay {
		t.Errorf("play: played=%v screen=%v", played, m.Screen)
	}
}

func TestMenu_DevPicksLevel(t *testing.T) {
	m := NewMenuSystem(800, 600)
	m.LevelNames = []string{"Easy start", "Ducks", "Snakes"}
	picked := -1
	m.OnDevLevel = func(i int) { picked = i }

	m.Click(center(m.Buttons()[1]))
	if m.Screen != ScreenDev {
		t.Fatalf("screen = %v, want dev", m.Screen)
	}
	b := m.Buttons()
	if len(b) != 4 || b[3].Text != "BACK" {
		t.Fatalf("dev buttons = %+v", b)
	}
	m.Click(center(b[2]))
	if picked != 2 || m.Screen != ScreenGameplay {
		t.Errorf("picked %d on screen %v", picked, m.Screen)
	}
}

func TestMenu_ScoreScreen(t *testing.T) {
	m := NewMenuSystem(800, 600)
	var restarted, menu int
	m.OnRestart = func() { restarted++ }
	m.OnMenu = func() { menu++ }

	m.ShowScore(core.Outcome{Wave: 2, Score: 7})
	if m.Screen != ScreenScore || m.Outcome.Score != 7 {
		t.Fatalf("ShowScore left %v %+v", m.Screen, m.Outcome)
	}
	names := make([]string, 0, 3)
	for _, b := range m.Buttons() {
		names = append(names, b.Text)
	}
	if !slices.Equal(names, []string{"RESTART", "MENU", "EXIT"}) {
		t.Fatalf("score buttons = %v", names)
	}

	m.Click(center(m.Buttons()[0]))
	if restarted != 1 || m.Screen != ScreenGameplay {
		t.Errorf("restart: %d %v", restarted, m.Screen)
	}
	m.ShowScore(core.Outcome{})
	m.Click(center(m.Buttons()[1]))
	if menu != 1 || m.Screen != ScreenTitle {
		t.Errorf("menu: %d %v", menu, m.Screen)
	}
}

func TestMenu_GameplayHasNoButtons(t *testing.T) {
	m := NewMenuSystem(800, 600)
	m.Screen = ScreenGameplay
	if len(m.Buttons()) != 0 || m.Click(400, 300) {
		t.Error("gameplay screen handled a menu click")
	}
}

func TestHUD_Lines(t *testing.T) {
	h := NewHUD(800, 600, 20*time.Second)
	o := core.Outcome{Score: 4, Wave: 2, WaveRemaining: 1500 * time.Millisecond, Alive: 3, Kills: 4}
	want := []string{"Score: 4", "Wave: 2", "Time: 2s", "Alive: 3", "Kills: 4"}
	if got := h.Lines(o); !slices.Equal(got, want) {
		t.Errorf("Lines = %v, want %v", got, want)
	}

	h.Dev = true
	if got := h.Lines(o); got[0] != "DEV" || len(got) != 3 {
		t.Errorf("dev Lines = %v", got)
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := map[time.Duration]string{
		0:                    "0s",
		-time.Second:         "0s",
		time.Millisecond:     "1s",
		20 * time.Second:     "20s",
		19*time.Second + 1e6: "20s",
	}
	for d, want := range cases {
		if got := formatRemaining(d); got != want {
			t.Errorf("formatRemaining(%v) = %q, want %q", d, got, want)
		}
	}
}
