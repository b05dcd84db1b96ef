package cmd

import (
	"fmt"

	"repack-catalog/db"
	"repack-catalog/logger"
	"repack-catalog/service"
	"repack-catalog/ui"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the catalog interactively",
	Long:  `Launch an interactive TUI to search and inspect cataloged repacks.`,
	Run: func(_ *cobra.Command, _ []string) {
		_, engine := bootstrap()
		runBrowse(engine)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

const browsePageSize = 100

// browseModel is the state of the browse TUI: a search box over the catalog
// and a cursor-driven result list with an expandable detail pane.
type browseModel struct {
	engine   *service.Engine
	search   textinput.Model
	repacks  []db.Repack
	cursor   int
	detail   *db.Repack
	errMsg   string
	quitting bool
	width    int
	height   int
}

type repacksLoadedMsg struct {
	repacks []db.Repack
	err     error
}

type detailLoadedMsg struct {
	repack *db.Repack
	err    error
}

func newBrowseModel(engine *service.Engine) browseModel {
	search := textinput.New()
	search.Placeholder = "type to search, enter for details, q to quit"
	search.Focus()
	search.CharLimit = 120

	return browseModel{engine: engine, search: search}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadRepacks(""))
}

func (m browseModel) loadRepacks(query string) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		var (
			repacks []db.Repack
			err     error
		)
		if query == "" {
			repacks, err = engine.AllRepacks(browsePageSize, 0)
		} else {
			repacks, err = engine.Search(query, browsePageSize)
		}
		return repacksLoadedMsg{repacks: repacks, err: err}
	}
}

func (m browseModel) loadDetail(id uint) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		repack, err := engine.GetRepack(id)
		return detailLoadedMsg{repack: repack, err: err}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case repacksLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.repacks = msg.repacks
		m.cursor = 0
		m.errMsg = ""
		return m, nil

	case detailLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.detail = msg.repack
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.detail != nil && msg.String() == "q" {
				m.detail = nil
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case "esc":
			if m.detail != nil {
				m.detail = nil
				return m, nil
			}
			m.search.SetValue("")
			return m, m.loadRepacks("")

		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down":
			if m.cursor < len(m.repacks)-1 {
				m.cursor++
			}
			return m, nil

		case "enter":
			if m.detail == nil && len(m.repacks) > 0 {
				return m, m.loadDetail(m.repacks[m.cursor].ID)
			}
			return m, nil
		}

		var cmd tea.Cmd
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			return m, tea.Batch(cmd, m.loadRepacks(m.search.Value()))
		}
		return m, cmd
	}

	return m, nil
}

func (m browseModel) View() string {
	if m.quitting {
		return ""
	}
	if m.detail != nil {
		return m.detailView()
	}

	s := ui.Title.Render("Repack Catalog") + "\n"
	s += m.search.View() + "\n\n"

	if m.errMsg != "" {
		s += ui.Failure.Render(m.errMsg) + "\n"
	}
	if len(m.repacks) == 0 {
		s += ui.Dim.Render("nothing here yet — run `repack-catalog crawl` first") + "\n"
		return s
	}

	visible := m.height - 6
	if visible < 5 {
		visible = 5
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	for i := start; i < len(m.repacks) && i < start+visible; i++ {
		r := m.repacks[i]
		line := r.CleanName
		if r.RepackSize != "" {
			line += "  " + ui.Dim.Render(r.RepackSize)
		}
		if i == m.cursor {
			line = ui.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		s += line + "\n"
	}

	s += "\n" + ui.Help.Render("↑/↓ move · enter details · esc clear · q quit")
	return s
}

func (m browseModel) detailView() string {
	r := m.detail
	s := ui.Title.Render(r.CleanName) + "\n"
	s += ui.Dim.Render(r.Title) + "\n\n"

	rows := [][2]string{
		{"URL", r.URL},
		{"Company", r.Company},
		{"Genres", r.GenresTags},
		{"Languages", r.Languages},
		{"Original size", r.OriginalSize},
		{"Repack size", r.RepackSize},
		{"Published", r.PublishedDate},
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		s += fmt.Sprintf("%-14s %s\n", row[0]+":", row[1])
	}

	if len(r.MagnetLinks) > 0 {
		s += "\n" + ui.Title.Render("Magnet Links") + "\n"
		for _, link := range r.MagnetLinks {
			s += "  " + link.Source + "\n"
		}
	}
	if len(r.Categories) > 0 {
		s += "\n" + ui.Title.Render("Categories") + "\n  "
		for i, c := range r.Categories {
			if i > 0 {
				s += ", "
			}
			s += c.Name
		}
		s += "\n"
	}

	s += "\n" + ui.Help.Render("esc/q back")
	return s
}

func runBrowse(engine *service.Engine) {
	p := tea.NewProgram(newBrowseModel(engine), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Log.Fatalw("TUI error", zap.Error(err))
	}
}
