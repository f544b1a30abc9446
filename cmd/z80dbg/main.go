// Command z80dbg is an interactive terminal debugger for a loaded Z80
// program: step or free-run it, toggle breakpoints, watch registers and
// memory change in place.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/retrocore/z80vm"
	"github.com/retrocore/z80vm/internal/cpu"
	"github.com/retrocore/z80vm/internal/opcode"
)

// regSnapshot is a point-in-time copy of the bits the debugger displays,
// used only to detect what changed since the last redraw.
type regSnapshot struct {
	A, F       uint8
	BC, DE, HL uint16
	SP, PC     uint16
}

func snapshot(m *z80.Machine) regSnapshot {
	return regSnapshot{
		A:  m.Read8(cpu.RegA),
		F:  m.Read8(cpu.RegF),
		BC: m.Read16(cpu.PairBC),
		DE: m.Read16(cpu.PairDE),
		HL: m.Read16(cpu.PairHL),
		SP: m.SP(),
		PC: m.PC(),
	}
}

// location is one disassembled line anchored at an address.
type location struct {
	addr uint16
	text string
}

// stepTick drives free-run mode at a fixed cadence rather than spinning the
// CPU as fast as the host can go — slow enough a human can watch registers
// change.
type stepTick struct{}

func doStep() tea.Cmd {
	return tea.Tick(30*time.Millisecond, func(time.Time) tea.Msg { return stepTick{} })
}

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	changed   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}

	titleStyle = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)

	regStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1).
			Width(28)

	disasmStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(special).
			Padding(1).
			Width(40)

	changedStyle = lipgloss.NewStyle().Foreground(changed).Bold(true)

	currentLineStyle = lipgloss.NewStyle().Background(highlight).Foreground(lipgloss.Color("#ffffff"))

	breakpointStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
)

type model struct {
	machine *z80.Machine

	locations []location
	cursor    int

	paused      bool
	breakpoints map[uint16]bool

	last regSnapshot

	gotoInput   textinput.Model
	showingGoto bool
}

func newModel(m *z80.Machine, program []byte, org uint16) model {
	ti := textinput.New()
	ti.Placeholder = "hex address, e.g. C000"
	ti.CharLimit = 4
	ti.Width = 8

	mm := model{
		machine:     m,
		locations:   disassembleRange(m, org, uint16(len(program))),
		paused:      true,
		breakpoints: make(map[uint16]bool),
		last:        snapshot(m),
		gotoInput:   ti,
	}
	mm.relocate()
	return mm
}

// disassembleRange walks [org, org+size) one instruction at a time,
// re-decoding at each address the way cmd/z80run's disasm subcommand does.
func disassembleRange(m *z80.Machine, org, size uint16) []location {
	var locs []location
	addr := org
	end := org + size
	for addr < end {
		text := m.Disassemble(addr)
		op := decodeAt(m, addr)
		n := opcode.ByteSize(op)
		if n == 0 {
			n = 1
		}
		locs = append(locs, location{addr: addr, text: fmt.Sprintf("%04X: %s", addr, text)})
		addr += uint16(n)
	}
	return locs
}

func (m *model) relocate() {
	for i, l := range m.locations {
		if l.addr == m.machine.PC() {
			m.cursor = i
			return
		}
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepTick:
		if m.paused || m.breakpoints[m.machine.PC()] {
			m.paused = true
			return m, nil
		}
		m.last = snapshot(m.machine)
		m.machine.Execute()
		m.relocate()
		if m.machine.Halted() {
			m.paused = true
			return m, nil
		}
		return m, doStep()

	case tea.KeyMsg:
		if m.showingGoto {
			switch msg.Type {
			case tea.KeyEnter:
				if addr, err := strconv.ParseUint(m.gotoInput.Value(), 16, 16); err == nil {
					m.gotoToAddress(uint16(addr))
				}
				m.showingGoto = false
				return m, nil
			case tea.KeyEsc:
				m.showingGoto = false
				return m, nil
			}
			var cmd tea.Cmd
			m.gotoInput, cmd = m.gotoInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "g":
			m.showingGoto = true
			m.gotoInput.Focus()
			return m, textinput.Blink
		case "s":
			if m.paused && !m.machine.Halted() {
				m.last = snapshot(m.machine)
				m.machine.Execute()
				m.relocate()
			}
		case "b":
			if m.cursor < len(m.locations) {
				addr := m.locations[m.cursor].addr
				if m.breakpoints[addr] {
					delete(m.breakpoints, addr)
				} else {
					m.breakpoints[addr] = true
				}
			}
		case "r":
			if m.paused && !m.machine.Halted() {
				m.paused = false
				return m, doStep()
			}
		case "p":
			m.paused = !m.paused
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.locations)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *model) gotoToAddress(addr uint16) {
	for i, l := range m.locations {
		if l.addr >= addr {
			m.cursor = i
			return
		}
	}
}

func (m model) formatReg8(name string, current, last uint8) string {
	s := fmt.Sprintf("%s: %02X", name, current)
	if current != last {
		return changedStyle.Render(s)
	}
	return s
}

func (m model) formatReg16(name string, current, last uint16) string {
	s := fmt.Sprintf("%s: %04X", name, current)
	if current != last {
		return changedStyle.Render(s)
	}
	return s
}

func (m model) formatFlags() string {
	names := []struct {
		name string
		bit  uint8
	}{
		{"S", cpu.FlagS}, {"Z", cpu.FlagZ}, {"H", cpu.FlagH},
		{"P", cpu.FlagP}, {"N", cpu.FlagN}, {"C", cpu.FlagC},
	}
	f := m.machine.Read8(cpu.RegF)
	lastF := m.last.F
	var b strings.Builder
	for _, n := range names {
		on := f&n.bit != 0
		changedNow := (f & n.bit) != (lastF & n.bit)
		label := "-"
		if on {
			label = n.name
		}
		if changedNow {
			b.WriteString(changedStyle.Render(label + " "))
		} else {
			b.WriteString(label + " ")
		}
	}
	return b.String()
}

func (m model) disasmView() string {
	var b strings.Builder
	start := m.cursor - 8
	if start < 0 {
		start = 0
	}
	end := start + 20
	if end > len(m.locations) {
		end = len(m.locations)
	}
	for i := start; i < end; i++ {
		l := m.locations[i]
		line := l.text
		switch {
		case m.breakpoints[l.addr] && l.addr == m.machine.PC():
			line = currentLineStyle.Render("* " + line)
		case m.breakpoints[l.addr]:
			line = breakpointStyle.Render("* " + line)
		case l.addr == m.machine.PC():
			line = currentLineStyle.Render(line)
		case i == m.cursor:
			line = lipgloss.NewStyle().Foreground(highlight).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) View() string {
	disasm := disasmStyle.Render("Disassembly\n\n" + m.disasmView())

	regs := regStyle.Render(fmt.Sprintf(
		"Registers\n\n%s  %s\n%s  %s  %s\n%s  %s\n\nFlags: %s\n\nstatus: %s",
		m.formatReg8("A", m.machine.Read8(cpu.RegA), m.last.A),
		m.formatReg8("F", m.machine.Read8(cpu.RegF), m.last.F),
		m.formatReg16("BC", m.machine.Read16(cpu.PairBC), m.last.BC),
		m.formatReg16("DE", m.machine.Read16(cpu.PairDE), m.last.DE),
		m.formatReg16("HL", m.machine.Read16(cpu.PairHL), m.last.HL),
		m.formatReg16("SP", m.machine.SP(), m.last.SP),
		m.formatReg16("PC", m.machine.PC(), m.last.PC),
		m.formatFlags(),
		statusText(m),
	))

	var help string
	if m.paused {
		help = titleStyle.Render("s: step  r: run  b: breakpoint  g: goto  up/down: move  q: quit")
	} else {
		help = titleStyle.Render("p: pause  q: quit")
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, disasm, regs)

	if m.showingGoto {
		dialog := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1).Width(30).
			Render("Go to address:\n\n" + m.gotoInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, content, help, dialog)
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, help)
}

func statusText(m model) string {
	if m.machine.Halted() {
		return "halted"
	}
	if m.paused {
		return "paused"
	}
	return "running"
}

func decodeAt(m *z80.Machine, addr uint16) opcode.OpCode {
	saved := m.PC()
	m.Write16(cpu.PairPC, addr)
	op := cpu.Decode(&m.CPU, &m.RAM)
	m.Write16(cpu.PairPC, saved)
	return op
}

func main() {
	inputFile := flag.String("i", "", "input binary file")
	addrFlag := flag.String("a", "0", "load/start address (hex, e.g. C000 or 0xC000)")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("usage: z80dbg -i program.bin [-a C000]")
		return
	}

	addrStr := strings.TrimPrefix(strings.ToUpper(*addrFlag), "0X")
	org, err := strconv.ParseUint(addrStr, 16, 16)
	if err != nil {
		fmt.Printf("bad address %q: %v\n", *addrFlag, err)
		return
	}

	program, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	m := z80.New()
	if !m.LoadAt(program, uint16(org)) {
		fmt.Println("error: program does not fit in 64KiB at that address")
		return
	}
	m.Write16(cpu.PairPC, uint16(org))

	p := tea.NewProgram(newModel(m, program, uint16(org)))
	if _, err := p.Run(); err != nil {
		fmt.Printf("error running debugger: %v\n", err)
	}
}
