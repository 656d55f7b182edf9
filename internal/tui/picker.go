package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rnwolfe/fuhl/internal/candidate"
	"github.com/rnwolfe/fuhl/internal/session"
	"github.com/rnwolfe/fuhl/internal/ui"
	"golang.org/x/term"
)

// DefaultPollInterval bounds how long the picker waits for input before it
// re-ranks and redraws.
const DefaultPollInterval = 200 * time.Millisecond

// PickerOption configures a Picker.
type PickerOption func(*Picker)

// WithPrompt sets the search prompt character(s).
func WithPrompt(prompt string) PickerOption {
	return func(p *Picker) { p.prompt = prompt }
}

// WithHeight sets the maximum visible rows (0 = fit the terminal).
func WithHeight(h int) PickerOption {
	return func(p *Picker) { p.height = h }
}

// WithPollInterval sets the idle redraw interval.
func WithPollInterval(d time.Duration) PickerOption {
	return func(p *Picker) {
		if d > 0 {
			p.poll = d
		}
	}
}

// WithProgramOptions passes extra options to the bubbletea program.
func WithProgramOptions(opts ...tea.ProgramOption) PickerOption {
	return func(p *Picker) { p.programOpts = append(p.programOpts, opts...) }
}

// Picker is the interactive history selector. All state transitions go
// through session.Dispatch; the Picker only owns the terminal side.
type Picker struct {
	prompt      string
	height      int
	poll        time.Duration
	programOpts []tea.ProgramOption

	store   *candidate.Store
	state   session.State
	outcome session.Outcome
	offset  int // viewport scroll offset

	keys keyMap
	help help.Model

	width      int
	termHeight int
}

// Result is what the user picked.
type Result struct {
	Selected bool
	Index    int // into the candidate store
	Display  string
}

// NewPicker creates a Picker over store with the given options.
func NewPicker(store *candidate.Store, opts ...PickerOption) *Picker {
	p := &Picker{
		prompt:     "> ",
		poll:       DefaultPollInterval,
		store:      store,
		keys:       newKeyMap(),
		help:       help.New(),
		width:      80,
		termHeight: 24,
	}
	p.help.Styles.ShortKey = ui.Muted
	p.help.Styles.ShortDesc = ui.Muted
	p.help.Styles.ShortSeparator = ui.Muted
	for _, opt := range opts {
		opt(p)
	}
	p.state = session.New(store)
	return p
}

// Run shows the picker on the alternate screen and returns the selection.
// The terminal is restored on every exit path, including errors.
func Run(store *candidate.Store, opts ...PickerOption) (Result, error) {
	if err := store.Check(); err != nil {
		return Result{}, err
	}

	p := NewPicker(store, opts...)
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		p.width, p.termHeight = w, h
	}

	prog := tea.NewProgram(p, append([]tea.ProgramOption{tea.WithAltScreen()}, p.programOpts...)...)
	m, err := prog.Run()
	if err != nil {
		return Result{}, fmt.Errorf("picker: %w", err)
	}
	return m.(*Picker).Result(), nil
}

// Result reports the selection once the picker has finished.
func (p *Picker) Result() Result {
	if p.outcome != session.Selected {
		return Result{}
	}
	idx, ok := p.state.Chosen()
	if !ok {
		return Result{}
	}
	return Result{Selected: true, Index: idx, Display: p.store.Display(idx)}
}

// IsTTY returns true when stdin is connected to a terminal.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// --- Bubbletea model implementation ---

type pollMsg time.Time

func (p *Picker) tick() tea.Cmd {
	return tea.Tick(p.poll, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func (p *Picker) Init() tea.Cmd {
	return p.tick()
}

func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.termHeight = msg.Height
		p.help.Width = msg.Width
		p.scroll()
		return p, nil

	case pollMsg:
		// No input arrived: re-rank and redraw the same state.
		p.state = p.state.Refresh(p.store)
		p.scroll()
		return p, p.tick()

	case tea.KeyMsg:
		for _, ev := range p.keys.events(msg) {
			var out session.Outcome
			p.state, out = session.Dispatch(p.state, ev, p.store)
			if out != session.Continue {
				p.outcome = out
				return p, tea.Quit
			}
		}
		p.scroll()
		return p, nil
	}
	return p, nil
}

// --- internal helpers ---

func (p *Picker) visibleHeight() int {
	h := p.height
	if h <= 0 || h > p.termHeight-6 {
		h = p.termHeight - 6
	}
	if h < 3 {
		h = 3
	}
	return h
}

// scroll keeps the selected row inside the viewport.
func (p *Picker) scroll() {
	vis := p.visibleHeight()
	sel := p.state.Selection
	if sel < p.offset {
		p.offset = sel
	}
	if sel >= p.offset+vis {
		p.offset = sel - vis + 1
	}
	p.offset = max(0, min(p.offset, len(p.state.View)-vis))
}
