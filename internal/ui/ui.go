// Package ui implements the interactive profile picker shown when masuk is
// invoked with no arguments.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/herpiko/masuk/internal/appconfig"
	"github.com/herpiko/masuk/internal/history"
	"github.com/herpiko/masuk/internal/model"
	"github.com/herpiko/masuk/internal/sshclient"
	"github.com/herpiko/masuk/internal/store"
)

type statusMsg string

type modelUI struct {
	st            *store.Store
	client        *sshclient.Client
	cfg           *model.Config
	names         []string
	filtered      []string
	sel           int
	filter        string
	filterMode    bool
	form          *profileForm
	lastConnected map[string]int64
	status        string
	width         int
	height        int
}

func initialModel(st *store.Store, client *sshclient.Client) (modelUI, error) {
	m := modelUI{st: st, client: client}
	if err := m.reload(); err != nil {
		return modelUI{}, err
	}
	m.status = "Ready. Select a profile, then Enter to connect."
	return m, nil
}

func (m *modelUI) reload() error {
	cfg, err := m.st.Load()
	if err != nil {
		return err
	}
	m.cfg = cfg
	m.names = cfg.Names()
	if lc, err := history.LastConnected(); err == nil {
		m.lastConnected = lc
	}
	m.applyFilter()
	return nil
}

func (m *modelUI) applyFilter() {
	if strings.TrimSpace(m.filter) == "" {
		m.filtered = append([]string(nil), m.names...)
	} else {
		f := strings.ToLower(strings.TrimSpace(m.filter))
		m.filtered = nil
		for _, name := range m.names {
			hc := m.cfg.Profiles[name]
			if strings.Contains(strings.ToLower(name), f) || strings.Contains(strings.ToLower(hc.Display()), f) {
				m.filtered = append(m.filtered, name)
			}
		}
	}
	if m.sel >= len(m.filtered) {
		m.sel = len(m.filtered) - 1
	}
	if m.sel < 0 {
		m.sel = 0
	}
}

func (m modelUI) Init() tea.Cmd { return nil }

func (m modelUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		return m.updateList(msg)
	case statusMsg:
		m.status = string(msg)
		return m, nil
	}
	return m, nil
}

func (m modelUI) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.form = nil
		m.status = "Add cancelled."
		return m, nil
	}
	result, cmd := m.form.update(msg)
	if result == nil {
		return m, cmd
	}
	m.cfg.Profiles[result.name] = result.host
	if err := m.st.Save(m.cfg); err != nil {
		m.status = "Save failed: " + err.Error()
		return m, nil
	}
	m.form = nil
	if err := m.reload(); err != nil {
		m.status = "Reload failed: " + err.Error()
		return m, nil
	}
	m.status = fmt.Sprintf("Added profile '%s' → %s", result.name, result.host.Display())
	return m, nil
}

func (m modelUI) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filterMode = false
		m.applyFilter()
	case "backspace":
		if len(m.filter) > 0 {
			m.filter = m.filter[:len(m.filter)-1]
		}
		m.applyFilter()
	default:
		if len(msg.String()) == 1 {
			m.filter += msg.String()
			m.applyFilter()
		}
	}
	return m, nil
}

func (m modelUI) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "j", "down":
		if m.sel < len(m.filtered)-1 {
			m.sel++
		}
	case "k", "up":
		if m.sel > 0 {
			m.sel--
		}
	case "/":
		m.filterMode = true
		m.status = "Filter mode: type and press Enter"
	case "a":
		m.form = newProfileForm()
		return m, m.form.focusCmd()
	case "d":
		if len(m.filtered) == 0 {
			break
		}
		name := m.filtered[m.sel]
		delete(m.cfg.Profiles, name)
		if err := m.st.Save(m.cfg); err != nil {
			m.status = "Remove failed: " + err.Error()
			break
		}
		if err := m.reload(); err != nil {
			m.status = "Reload failed: " + err.Error()
			break
		}
		m.status = fmt.Sprintf("Removed profile '%s'", name)
	case "r":
		if err := m.reload(); err != nil {
			m.status = "Reload failed: " + err.Error()
			break
		}
		m.status = "Reloaded profiles."
	case "enter":
		if len(m.filtered) == 0 {
			break
		}
		name := m.filtered[m.sel]
		cmd := m.client.ConnectCommand(m.cfg.Profiles[name])
		return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
			if err != nil {
				return statusMsg("session ended: " + err.Error())
			}
			_ = history.Touch(name)
			return statusMsg("session closed")
		})
	}
	return m, nil
}

func (m modelUI) View() string {
	head := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Render("masuk")
	subhead := fmt.Sprintf("profiles=%d shown=%d", len(m.names), len(m.filtered))

	list := strings.Builder{}
	for i, name := range m.filtered {
		cursor := " "
		if i == m.sel {
			cursor = ">"
		}
		list.WriteString(fmt.Sprintf("%s %-20s %s\n", cursor, name, m.cfg.Profiles[name].Display()))
	}
	if len(m.filtered) == 0 {
		list.WriteString("  (no profiles matched)\n")
	}

	detail := strings.Builder{}
	if len(m.filtered) > 0 {
		name := m.filtered[m.sel]
		hc := m.cfg.Profiles[name]
		detail.WriteString(fmt.Sprintf("Profile: %s\nHost: %s\nUser: %s\nPort: %s\n",
			name, hc.Host, emptyDash(hc.User), portString(hc.Port)))
		detail.WriteString("Last connected: " + m.lastConnectedString(name) + "\n")
	} else {
		detail.WriteString("Press a to add a profile.\n")
	}

	filterLine := "Filter: " + m.filter
	if m.filterMode {
		filterLine += " (typing...)"
	}
	quickHelp := "Keys: Enter connect | a add | d remove | / filter | r reload | q quit"

	width := m.effectiveWidth()
	panels := []string{
		head,
		subhead,
		filterLine,
		quickHelp,
		m.renderPanel("Profiles", list.String(), width, lipgloss.Color("39")),
		m.renderPanel("Details", detail.String(), width, lipgloss.Color("69")),
	}
	if m.form != nil {
		panels = append(panels, m.form.view(m.renderPanel, width))
	}
	panels = append(panels, m.renderPanel("Status", m.status, width, lipgloss.Color("205")))
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

// Run loads settings and the profile store, then starts the picker program.
func Run() error {
	settings, err := appconfig.Load()
	if err != nil {
		return err
	}
	client := &sshclient.Client{Bin: settings.SSHCommand}
	if err := client.EnsureBinary(); err != nil {
		return err
	}
	st, err := store.Open()
	if err != nil {
		return err
	}
	m, err := initialModel(st, client)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m modelUI) lastConnectedString(name string) string {
	ts, ok := m.lastConnected[name]
	if !ok || ts <= 0 {
		return "never"
	}
	return time.Unix(ts, 0).Format("2006-01-02 15:04")
}

func emptyDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func portString(port uint16) string {
	if port == 0 {
		return "- (ssh default)"
	}
	return fmt.Sprintf("%d", port)
}

func (m modelUI) effectiveWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m modelUI) renderPanel(title, body string, width int, accent lipgloss.Color) string {
	if width < 24 {
		width = 24
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(title)
	content := strings.TrimSuffix(body, "\n")
	panel := strings.TrimSpace(header + "\n" + content)
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Render(panel)
}
