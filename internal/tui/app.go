package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jask/quickstart/internal/appstate"
	"github.com/jask/quickstart/internal/prefs"
	"github.com/jask/quickstart/internal/screen"
	"github.com/jask/quickstart/internal/sdk"
	"github.com/jask/quickstart/internal/service"
)

// App renders the current AppState and turns key presses into transitions.
type App struct {
	ctx      context.Context
	store    *appstate.Store
	services Services
	prefs    PrefsStore
	opts     Options
	log      zerolog.Logger

	settings prefs.Preferences
	device   sdk.DeviceStatus
	version  sdk.VersionStatus

	// loadSeq numbers each loadSupport call; deviceSeq and versionSeq hold
	// the load that produced the status on screen.
	loadSeq    uint64
	deviceSeq  uint64
	versionSeq uint64

	spinner   spinner.Model
	recording bool
	cancelRun context.CancelFunc
	status    string
	width     int
}

type Services struct {
	Support *service.SupportService
	Session *service.SessionService
}

// PrefsStore loads and saves the start-screen toggles.
type PrefsStore interface {
	Load() (prefs.Preferences, error)
	Save(prefs.Preferences) error
}

// Options are display values fixed for the life of the app.
type Options struct {
	AppName    string
	SDKVersion string
	APIKey     string
	APIKeyHint string
	Log        zerolog.Logger
}

func New(ctx context.Context, store *appstate.Store, services Services, p PrefsStore, opts Options) *App {
	settings, err := p.Load()
	if err != nil {
		opts.Log.Warn().Err(err).Msg("load preferences, using defaults")
	}
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(colorBrand)),
	)
	return &App{
		ctx:      ctx,
		store:    store,
		services: services,
		prefs:    p,
		opts:     opts,
		log:      opts.Log,
		settings: settings,
		device:   sdk.DeviceStatus{State: sdk.StatePending},
		version:  sdk.VersionStatus{State: sdk.StatePending},
		spinner:  sp,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadSupport(), a.spinner.Tick)
}

// loadSupport starts both status queries. Results only update display
// fields; an answer from an older load never replaces a newer one.
func (a *App) loadSupport() tea.Cmd {
	a.loadSeq++
	seq := a.loadSeq
	support := a.services.Support
	ctx, apiKey := a.ctx, a.opts.APIKey
	return tea.Batch(
		func() tea.Msg {
			return deviceStatusMsg{seq: seq, status: support.Device(ctx)}
		},
		func() tea.Msg {
			return versionStatusMsg{seq: seq, status: support.SDKVersion(ctx, apiKey)}
		},
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)
	case tea.WindowSizeMsg:
		a.width = m.Width
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case deviceStatusMsg:
		if m.seq >= a.deviceSeq {
			a.deviceSeq, a.device = m.seq, m.status
		}
	case versionStatusMsg:
		if m.seq >= a.versionSeq {
			a.versionSeq, a.version = m.seq, m.status
		}
	case transitionMsg:
		return a, a.applyTransition(m)
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := m.String()
	if key == "ctrl+c" {
		return a, a.quit()
	}
	action, ok := a.descriptor().ActionFor(key)
	if !ok {
		return a, nil
	}
	a.status = ""
	return a, a.handleIntent(action.Intent)
}

func (a *App) handleIntent(in screen.Intent) tea.Cmd {
	switch in {
	case screen.IntentStartTest:
		a.store.Set(a.services.Session.Begin(a.settings))
	case screen.IntentToggleInstructions:
		a.settings.ShowInstructions = !a.settings.ShowInstructions
		return a.savePrefsCmd(a.settings)
	case screen.IntentToggleAllowToSave:
		a.settings.AllowToSave = !a.settings.AllowToSave
		return a.savePrefsCmd(a.settings)
	case screen.IntentRecord:
		st, ok := a.store.Get().(appstate.Test)
		if !ok || a.recording {
			return nil
		}
		return a.recordCmd(st.Config)
	case screen.IntentGoToStart:
		return a.goToStart()
	case screen.IntentGiveFeedback:
		if r, ok := a.store.Get().(appstate.Result); ok {
			a.store.Set(a.services.Session.Feedback(r))
		}
	case screen.IntentFeedbackYes, screen.IntentFeedbackNo:
		fb, ok := a.store.Get().(appstate.Feedback)
		if !ok {
			return nil
		}
		return tea.Batch(a.submitFeedbackCmd(fb, in == screen.IntentFeedbackYes), a.goToStart())
	case screen.IntentQuit:
		return a.quit()
	}
	return nil
}

func (a *App) goToStart() tea.Cmd {
	a.stopRun()
	a.store.Set(appstate.Start{})
	return a.loadSupport()
}

func (a *App) quit() tea.Cmd {
	a.stopRun()
	return tea.Quit
}

func (a *App) stopRun() {
	if a.cancelRun != nil {
		a.cancelRun()
		a.cancelRun = nil
	}
	a.recording = false
}

// applyTransition sets the state an SDK call produced, unless the store moved
// on while the call was running.
func (a *App) applyTransition(m transitionMsg) tea.Cmd {
	if m.gen != a.store.Generation() {
		a.log.Debug().
			Str("state", string(m.next.Kind())).
			Uint64("gen", m.gen).
			Msg("dropping stale transition")
		return nil
	}
	a.stopRun()
	a.status = ""
	a.store.Set(m.next)
	if w, ok := m.next.(appstate.WaitingForAnalysis); ok {
		return a.analyzeCmd(w)
	}
	return nil
}

func (a *App) recordCmd(cfg sdk.TestConfiguration) tea.Cmd {
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancelRun = cancel
	a.recording = true
	a.status = "Recording..."
	gen := a.store.Generation()
	session := a.services.Session
	return func() tea.Msg {
		return transitionMsg{gen: gen, next: session.Record(ctx, cfg)}
	}
}

func (a *App) analyzeCmd(w appstate.WaitingForAnalysis) tea.Cmd {
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancelRun = cancel
	gen := a.store.Generation()
	session := a.services.Session
	return func() tea.Msg {
		return transitionMsg{gen: gen, next: session.Analyze(ctx, w)}
	}
}

func (a *App) savePrefsCmd(p prefs.Preferences) tea.Cmd {
	store := a.prefs
	return func() tea.Msg {
		if err := store.Save(p); err != nil {
			return errMsg{err}
		}
		return statusMsg("preferences saved")
	}
}

func (a *App) submitFeedbackCmd(fb appstate.Feedback, matched bool) tea.Cmd {
	session := a.services.Session
	ctx := a.ctx
	return func() tea.Msg {
		if err := session.SubmitFeedback(ctx, fb, matched); err != nil {
			return errMsg{err}
		}
		return statusMsg("thanks for the feedback")
	}
}

func (a *App) env() screen.Env {
	return screen.Env{
		AppName:       a.opts.AppName,
		SDKVersion:    a.opts.SDKVersion,
		APIKeyMissing: a.opts.APIKey == "",
		APIKeyHint:    a.opts.APIKeyHint,
		Device:        a.device,
		Version:       a.version,
		Settings:      a.settings.TestConfiguration(),
	}
}

func (a *App) descriptor() screen.Descriptor {
	return screen.Resolve(a.store.Get(), a.env())
}

type deviceStatusMsg struct {
	seq    uint64
	status sdk.DeviceStatus
}

type versionStatusMsg struct {
	seq    uint64
	status sdk.VersionStatus
}

// transitionMsg carries the state an SDK call led to, stamped with the store
// generation the call started from.
type transitionMsg struct {
	gen  uint64
	next appstate.State
}

type statusMsg string

type errMsg struct{ error }

func (a *App) View() string {
	d := a.descriptor()
	if d.Kind == screen.KindBlank {
		return ""
	}

	var b strings.Builder
	b.WriteString(frameStyle.Render(titleStyle.Render(d.Title) + "\n" + subtitleStyle.Render(d.Subtitle)))
	b.WriteString("\n")
	for _, n := range d.Notices {
		b.WriteString(noticeStyle.Render(noticeTitleStyle.Render(n.Title) + "\n" + n.Text))
		b.WriteString("\n")
	}
	for _, l := range d.Lines {
		b.WriteString(toneStyle(l.Tone).Render(l.Text))
		b.WriteString("\n")
	}
	if d.Busy || a.recording {
		b.WriteString(a.spinner.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderActions(d.Actions))
	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(a.status))
	}

	out := b.String()
	if a.width > 0 {
		out = lipgloss.NewStyle().MaxWidth(a.width).Render(out)
	}
	return out
}

func renderActions(actions []screen.Action) string {
	parts := make([]string, 0, len(actions))
	for _, act := range actions {
		parts = append(parts, keyStyle.Render("["+act.Key+"]")+" "+footerStyle.Render(act.Label))
	}
	return strings.Join(parts, "  ")
}
