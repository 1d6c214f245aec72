// Package debugger implements the interactive TUI that sits outside the
// 8080 core: a bubbletea program that steps a cpu.Cpu one instruction at a
// time, renders its registers and a page of memory, and accepts a small
// command language (step, examine memory, quit) with prefix matching so the
// user doesn't have to type a command's full name.
package debugger

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/beevik/prefixtree/v2"

	"driven/cpu"
	"driven/mem"
)

// commandFunc executes one debugger command against the model, returning an
// updated model and an optional bubbletea command (e.g. tea.Quit).
type commandFunc func(m model, arg string) (model, tea.Cmd)

var commands *prefixtree.Tree[commandFunc]

func init() {
	commands = prefixtree.New[commandFunc]()
	must := func(name string, fn commandFunc) {
		if err := commands.Add(name, fn); err != nil {
			panic(fmt.Sprintf("debugger: registering command %q: %v", name, err))
		}
	}
	must("step", cmdStep)
	must("quit", cmdQuit)
	must("examine", cmdExamine)
}

// model is the bubbletea model: the Cpu under inspection, the bus it runs
// against, an input line, and the last command's outcome.
type model struct {
	cpu   *cpu.Cpu
	bus   *mem.Bus
	input string
	last  cpu.StepResult
	dump  string
	err   error
}

// New constructs a debugger model bound to an already-initialized Cpu and
// the Bus it shares with it. Loading the program is the caller's job (see
// the loader package); the debugger only steps and inspects.
func New(c *cpu.Cpu, bus *mem.Bus) tea.Model {
	return model{cpu: c, bus: bus}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		return m.runLine()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeySpace:
		m.input += " "
		return m, nil
	case tea.KeyRunes:
		m.input += string(keyMsg.Runes)
		return m, nil
	default:
		return m, nil
	}
}

// runLine parses m.input as "command arg" (arg optional), resolves command
// by unambiguous prefix, runs it, and clears the input line.
func (m model) runLine() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input)
	m.input = ""
	m.err = nil

	if line == "" {
		return m, nil
	}

	name, arg, _ := strings.Cut(line, " ")
	if f, ok := strings.CutPrefix(name, "x/"); ok {
		return cmdExamine(m, "/"+f+" "+strings.TrimSpace(arg))
	}
	fn, err := commands.Find(name)
	if err != nil {
		m.err = fmt.Errorf("unknown command %q: %w", name, err)
		return m, nil
	}
	return fn(m, strings.TrimSpace(arg))
}

func cmdStep(m model, arg string) (model, tea.Cmd) {
	m.last = m.cpu.Step()
	m.dump = ""
	return m, nil
}

func cmdQuit(m model, arg string) (model, tea.Cmd) {
	return m, tea.Quit
}

// cmdExamine implements "x/FMT ADDR": FMT is a count followed by one of x
// (hex byte), d (decimal byte), or i (decode as an instruction descriptor).
// ADDR is a hex address, with or without a leading "0x".
func cmdExamine(m model, arg string) (model, tea.Cmd) {
	fields := strings.Fields(arg)
	if len(fields) != 2 {
		m.err = fmt.Errorf("usage: x/FMT ADDR")
		return m, nil
	}

	count, kind, err := parseExamineFormat(fields[0])
	if err != nil {
		m.err = err
		return m, nil
	}

	addr, err := strconv.ParseUint(strings.TrimPrefix(fields[1], "0x"), 16, 16)
	if err != nil {
		m.err = fmt.Errorf("bad address %q: %w", fields[1], err)
		return m, nil
	}

	var b strings.Builder
	a := uint16(addr)
	for i := 0; i < count; i++ {
		v := m.bus.ReadByte(a)
		switch kind {
		case 'x':
			fmt.Fprintf(&b, "%04x: %02x\n", a, v)
		case 'd':
			fmt.Fprintf(&b, "%04x: %d\n", a, v)
		case 'i':
			fmt.Fprintf(&b, "%04x: %s\n", a, spew.Sdump(cpu.Table[v]))
		}
		a++
	}
	m.dump = b.String()
	return m, nil
}

func parseExamineFormat(f string) (count int, kind byte, err error) {
	f = strings.TrimPrefix(f, "/")
	if f == "" {
		return 1, 'x', nil
	}
	n := 0
	for n < len(f) && f[n] >= '0' && f[n] <= '9' {
		n++
	}
	count = 1
	if n > 0 {
		count, err = strconv.Atoi(f[:n])
		if err != nil {
			return 0, 0, err
		}
	}
	kind = 'x'
	if n < len(f) {
		kind = f[n]
	}
	if kind != 'x' && kind != 'd' && kind != 'i' {
		return 0, 0, fmt.Errorf("unknown examine format %q", string(kind))
	}
	return count, kind, nil
}

func (m model) View() string {
	status := fmt.Sprintf(
		"%s\nlast: opcode=%02x kind=%v status=%v\n",
		m.cpu.String(), m.last.Opcode, m.last.Kind, m.last.Status,
	)
	if m.err != nil {
		status += "error: " + m.err.Error() + "\n"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		status,
		m.dump,
		"> "+m.input,
	)
}

// Run starts the interactive TUI and blocks until the user quits.
func Run(c *cpu.Cpu, bus *mem.Bus) error {
	_, err := tea.NewProgram(New(c, bus)).Run()
	return err
}
