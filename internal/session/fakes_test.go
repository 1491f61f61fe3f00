package session

import (
	"github.com/vovakirdan/subterra/internal/catalog"
	"github.com/vovakirdan/subterra/internal/core"
)

type memStore map[string]int

func (m memStore) GetInt(key string, def int) int {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

func (m memStore) SetInt(key string, value int) { m[key] = value }

type fakeHandle struct {
	id          string
	destroyed   int
	reactivated int
}

func (h *fakeHandle) Destroy()           { h.destroyed++ }
func (h *fakeHandle) ReactivateBonuses() { h.reactivated++ }

type fakeContent struct {
	loaded  []string
	handles []*fakeHandle
	err     error
}

func (f *fakeContent) LoadCaveContent(c catalog.Cave) (CaveHandle, error) {
	if f.err != nil {
		return nil, f.err
	}
	h := &fakeHandle{id: c.ID}
	f.loaded = append(f.loaded, c.ID)
	f.handles = append(f.handles, h)
	return h, nil
}

func (f *fakeContent) StartPosition(CaveHandle) core.Vec { return core.Vec{X: 4, Y: 4} }

type fakePlayer struct {
	resets       int
	repairs      int
	active       bool
	suspended    bool
	suspendCalls int
	invulnerable bool
}

func (p *fakePlayer) ResetState(core.Vec)     { p.resets++ }
func (p *fakePlayer) SetActive(active bool)   { p.active = active }
func (p *fakePlayer) RemoveAllDamage()        { p.repairs++ }
func (p *fakePlayer) SetInvulnerable(on bool) { p.invulnerable = on }

func (p *fakePlayer) SetSuspended(suspended bool) {
	p.suspended = suspended
	p.suspendCalls++
}

type fakePresenter struct {
	messages    []string
	score       int
	highScore   int
	time        string
	lives       int
	cave        string
	blackouts   int
	tallyShown  bool
	tallyPoints int
	panel       OptionPanel
}

func (p *fakePresenter) ShowMessage(text string, _ float64) { p.messages = append(p.messages, text) }
func (p *fakePresenter) UpdateScore(score int)              { p.score = score }
func (p *fakePresenter) UpdateHighScore(score int)          { p.highScore = score }
func (p *fakePresenter) UpdateTime(text string)             { p.time = text }
func (p *fakePresenter) UpdateLives(lives int)              { p.lives = lives }
func (p *fakePresenter) UpdateCave(label string)            { p.cave = label }
func (p *fakePresenter) StraightToBlack()                   { p.blackouts++ }
func (p *fakePresenter) FadeToBlack() core.Signal           { return core.Completed }
func (p *fakePresenter) FadeToVisible() core.Signal         { return core.Completed }
func (p *fakePresenter) HideBonusTally()                    { p.tallyShown = false }
func (p *fakePresenter) ShowOptions(panel OptionPanel)      { p.panel = panel }
func (p *fakePresenter) HideOptions()                       { p.panel = PanelNone }

func (p *fakePresenter) ShowBonusTally(_ float64, points int) {
	p.tallyShown = true
	p.tallyPoints = points
}

func (p *fakePresenter) lastMessage() string {
	if len(p.messages) == 0 {
		return ""
	}
	return p.messages[len(p.messages)-1]
}

func testCave(id string, limit catalog.TimeLimit) catalog.Cave {
	return catalog.Cave{ID: id, Name: id, TimeLimit: limit, Map: []string{"#S E#"}}
}
