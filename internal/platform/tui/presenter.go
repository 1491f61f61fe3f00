package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/subterra/internal/core"
	"github.com/vovakirdan/subterra/internal/session"
)

// HUD styles.
var (
	hudLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hudValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	hudLivesStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	hudShieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	hudDamageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hudPausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

var _ session.PresentationSink = (*Presenter)(nil)

// Presenter draws everything the session shows on top of the cave: the HUD,
// timed messages, the bonus tally, option popups and the fade.
type Presenter struct {
	fader *Fader

	msgSlot core.Slot
	message string

	score     int
	highScore int
	lives     int
	timeText  string
	caveLabel string

	shield session.Shield

	tallyShown  bool
	tallyTime   float64
	tallyPoints int

	panel session.OptionPanel
}

// NewPresenter creates a presenter whose fades run at fadeSpeed alpha per
// second. The screen starts black.
func NewPresenter(fadeSpeed float64) *Presenter {
	return &Presenter{
		fader:    NewFader(fadeSpeed),
		timeText: session.ZeroTime,
		shield:   session.NewShield(session.MaxShieldDamage),
	}
}

// ShowMessage displays text for the given number of seconds. A new message
// replaces the current one. Non-positive durations keep the message until
// it is replaced.
func (p *Presenter) ShowMessage(text string, seconds float64) {
	p.msgSlot.Cancel()
	p.message = text
	if seconds <= 0 {
		return
	}
	seq := core.NewSequence("message",
		core.Wait(seconds),
		core.Do(func() { p.message = "" }),
	).OnCancel(func() { p.message = "" })
	p.msgSlot.Start(seq)
}

func (p *Presenter) UpdateScore(score int)     { p.score = score }
func (p *Presenter) UpdateHighScore(score int) { p.highScore = score }
func (p *Presenter) UpdateTime(text string)    { p.timeText = text }
func (p *Presenter) UpdateLives(lives int)     { p.lives = lives }
func (p *Presenter) UpdateCave(label string)   { p.caveLabel = label }

// UpdateShield sets the shield shown in the HUD.
func (p *Presenter) UpdateShield(s session.Shield) { p.shield = s }

func (p *Presenter) StraightToBlack()          { p.fader.StraightToBlack() }
func (p *Presenter) FadeToBlack() core.Signal   { return p.fader.FadeToBlack() }
func (p *Presenter) FadeToVisible() core.Signal { return p.fader.FadeToVisible() }

// ShowBonusTally shows or refreshes the time bonus popup.
func (p *Presenter) ShowBonusTally(timeRemaining float64, points int) {
	p.tallyShown = true
	p.tallyTime = timeRemaining
	p.tallyPoints = points
}

func (p *Presenter) HideBonusTally() { p.tallyShown = false }

func (p *Presenter) ShowOptions(panel session.OptionPanel) { p.panel = panel }
func (p *Presenter) HideOptions()                          { p.panel = session.PanelNone }

// Message returns the message on screen, or "".
func (p *Presenter) Message() string { return p.message }

// Score returns the displayed score.
func (p *Presenter) Score() int { return p.score }

// HighScore returns the displayed high score.
func (p *Presenter) HighScore() int { return p.highScore }

// Lives returns the displayed lives.
func (p *Presenter) Lives() int { return p.lives }

// Time returns the displayed time text.
func (p *Presenter) Time() string { return p.timeText }

// CaveLabel returns the displayed cave label.
func (p *Presenter) CaveLabel() string { return p.caveLabel }

// Tally returns the bonus popup contents and whether it is visible.
func (p *Presenter) Tally() (timeRemaining float64, points int, shown bool) {
	return p.tallyTime, p.tallyPoints, p.tallyShown
}

// Panel returns the popup on screen.
func (p *Presenter) Panel() session.OptionPanel { return p.panel }

// Fader returns the fader.
func (p *Presenter) Fader() *Fader { return p.fader }

// Tick advances the fade and message timers.
func (p *Presenter) Tick(dt float64) {
	p.fader.Tick(dt)
	p.msgSlot.Tick(dt)
}

// HUD renders the status line.
func (p *Presenter) HUD(width int, paused bool) string {
	lives := strings.Repeat("♥", p.lives)
	if p.lives > 5 {
		lives = fmt.Sprintf("♥x%d", p.lives)
	}
	remaining := p.shield.Max - p.shield.Damage
	if remaining < 0 {
		remaining = 0
	}

	var parts []string
	if paused {
		parts = append(parts, hudPausedStyle.Render("PAUSED"))
	}
	parts = append(parts,
		hudLabelStyle.Render("SCORE ") + hudValueStyle.Render(fmt.Sprintf("%06d", p.score)),
		hudLabelStyle.Render("HI ") + hudValueStyle.Render(fmt.Sprintf("%06d", p.highScore)),
		hudLabelStyle.Render("CAVE ") + hudValueStyle.Render(p.caveLabel),
		hudLabelStyle.Render("TIME ") + hudValueStyle.Render(p.timeText),
		hudLabelStyle.Render("LIVES ") + hudLivesStyle.Render(lives),
		hudLabelStyle.Render("SHIELD ") +
			hudShieldStyle.Render(strings.Repeat("■", remaining)) +
			hudDamageStyle.Render(strings.Repeat("□", p.shield.Max-remaining)),
	)

	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(parts, "  "))
}

// Draw overlays the fade, message and popups on area.
func (p *Presenter) Draw(screen *core.Screen, area core.Rect, paused bool) {
	p.fader.Apply(screen, area)

	pausePopup := paused && p.panel == session.PanelNone
	if p.message != "" && !pausePopup {
		lines := strings.Count(p.message, "\n") + 1
		msgArea := core.NewRect(area.X, area.Y+area.H/4-lines/2, area.W, lines)
		screen.DrawLinesCentered(msgArea, p.message, core.ColorMessage)
	}

	if p.tallyShown {
		p.drawPopup(screen, area, []string{
			"TIME BONUS",
			"",
			fmt.Sprintf("Time left  %s", session.FormatTime(p.tallyTime)),
			fmt.Sprintf("Points     %+d", p.tallyPoints),
		}, core.ColorShields)
	}

	switch {
	case p.panel != session.PanelNone:
		lines := strings.Split(p.panel.Prompt(), "\n")
		lines = append(lines, "")
		if p.panel.SingleChoice() {
			lines = append(lines, "[Enter] OK")
		} else {
			lines = append(lines, "[Y]es   [N]o")
		}
		p.drawPopup(screen, area, lines, core.ColorHighlight)
	case pausePopup:
		p.drawPopup(screen, area, []string{"PAUSED", "", "P to resume"}, core.ColorMessage)
	}
}

// drawPopup draws a bordered box with centered lines in the middle of area.
func (p *Presenter) drawPopup(screen *core.Screen, area core.Rect, lines []string, c core.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := area.Centered(w+6, len(lines)+2)
	screen.FillRect(box, ' ', core.ColorDefault)
	screen.DrawBox(box, c)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		screen.DrawText(x, box.Y+1+i, l, c)
	}
}
