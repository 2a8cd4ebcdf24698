package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/herpiko/masuk/internal/model"
	"github.com/herpiko/masuk/internal/util"
)

// Field indices for the add-profile form.
const (
	fieldName = iota
	fieldHost
	fieldUser
	fieldPort
	fieldCount
)

// formResult is returned when the user completes the form.
type formResult struct {
	name string
	host model.HostConfig
}

// profileForm holds all state for the add-profile screen.
type profileForm struct {
	fields   []textinput.Model
	focusIdx int
	errMsg   string
}

func newProfileForm() *profileForm {
	placeholders := []string{
		"web (required)",
		"10.0.0.5 or example.com (required)",
		"admin (optional)",
		"22 (optional, ssh default)",
	}
	limits := []int{64, 256, 64, 6}

	f := &profileForm{fields: make([]textinput.Model, fieldCount)}
	for i := range f.fields {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 40
		f.fields[i] = ti
	}
	f.fields[0].Focus()
	return f
}

func (f *profileForm) focusCmd() tea.Cmd {
	return f.fields[f.focusIdx].Cursor.BlinkCmd()
}

// update processes a key message and returns a formResult once complete.
func (f *profileForm) update(msg tea.KeyMsg) (*formResult, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		f.fields[f.focusIdx].Blur()
		if msg.String() == "tab" {
			f.focusIdx = (f.focusIdx + 1) % fieldCount
		} else {
			f.focusIdx = (f.focusIdx - 1 + fieldCount) % fieldCount
		}
		f.fields[f.focusIdx].Focus()
		return nil, f.focusCmd()
	case "enter":
		result, err := f.buildProfile()
		if err != nil {
			f.errMsg = err.Error()
			return nil, nil
		}
		return result, nil
	default:
		var cmd tea.Cmd
		f.fields[f.focusIdx], cmd = f.fields[f.focusIdx].Update(msg)
		f.errMsg = ""
		return nil, cmd
	}
}

func (f *profileForm) buildProfile() (*formResult, error) {
	name := strings.TrimSpace(f.fields[fieldName].Value())
	host := strings.TrimSpace(f.fields[fieldHost].Value())
	user := strings.TrimSpace(f.fields[fieldUser].Value())
	portStr := strings.TrimSpace(f.fields[fieldPort].Value())

	if name == "" {
		return nil, fmt.Errorf("profile name is required")
	}
	if host == "" {
		return nil, fmt.Errorf("host is required")
	}

	var port uint16
	if portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("port must be a number")
		}
		if err := util.ValidatePort(p); err != nil {
			return nil, err
		}
		port = uint16(p)
	}

	return &formResult{name: name, host: model.HostConfig{Host: host, User: user, Port: port}}, nil
}

// view renders the form panel.
func (f *profileForm) view(renderPanel func(string, string, int, lipgloss.Color) string, width int) string {
	labels := []string{"Profile:", "Host:", "User:", "Port:"}

	var b strings.Builder
	for i, label := range labels {
		cursor := "  "
		if i == f.focusIdx {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-10s %s\n", cursor, label, f.fields[i].View()))
	}

	if f.errMsg != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		b.WriteString("\n" + errStyle.Render("Error: "+f.errMsg) + "\n")
	}
	b.WriteString("\nTab/Shift-Tab navigate | Enter save | Esc cancel")

	return renderPanel("New Profile", b.String(), width, lipgloss.Color("214"))
}
