package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/repogroom/repogroom/internal/core"
	"github.com/repogroom/repogroom/internal/llm"
	"github.com/repogroom/repogroom/internal/model"
)

// RepoService is the GitHub surface the browse screen needs.
// Implemented by core.GitHub.
type RepoService interface {
	ListRepos(ctx context.Context) ([]model.Repository, error)
	FetchDetail(ctx context.Context, owner, name string) (*model.Repository, error)
}

// SuggestionService produces cleanup suggestions.
// Implemented by core.Generator.
type SuggestionService interface {
	Generate(ctx context.Context, repo *model.Repository, facts model.RepoFacts) (*model.Suggestion, error)
}

type browseState int

const (
	stateLoadingRepos browseState = iota
	stateList
	stateLoadingDetail
	stateDetail
	stateGenerating
)

type reposLoadedMsg struct {
	repos []model.Repository
}

type detailLoadedMsg struct {
	repo *model.Repository
}

type suggestionReadyMsg struct {
	suggestion *model.Suggestion
}

type browseErrMsg struct {
	err error
}

// BrowseModel is the interactive repository browser: a repo list, a detail
// pane and on-demand suggestion generation. All network work runs in
// tea.Cmds so the interface stays responsive; every error lands in the
// inline status line and the screen remains usable.
type BrowseModel struct {
	repos RepoService
	gen   SuggestionService

	list     list.Model
	viewport viewport.Model
	spinner  spinner.Model

	state      browseState
	selected   *model.Repository
	facts      model.RepoFacts
	suggestion *model.Suggestion
	status     string

	width    int
	height   int
	quitting bool
}

// NewBrowse creates the browse screen.
func NewBrowse(repos RepoService, gen SuggestionService) BrowseModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Your Repositories"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	return BrowseModel{
		repos:   repos,
		gen:     gen,
		list:    l,
		spinner: s,
		state:   stateLoadingRepos,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadRepos)
}

func (m BrowseModel) loadRepos() tea.Msg {
	repos, err := m.repos.ListRepos(context.Background())
	if err != nil {
		return browseErrMsg{err: err}
	}

	return reposLoadedMsg{repos: repos}
}

func (m BrowseModel) loadDetail(owner, name string) tea.Cmd {
	return func() tea.Msg {
		repo, err := m.repos.FetchDetail(context.Background(), owner, name)
		if err != nil {
			return browseErrMsg{err: err}
		}

		return detailLoadedMsg{repo: repo}
	}
}

func (m BrowseModel) generate(repo *model.Repository, facts model.RepoFacts) tea.Cmd {
	return func() tea.Msg {
		suggestion, err := m.gen.Generate(context.Background(), repo, facts)
		if err != nil {
			return browseErrMsg{err: err}
		}

		return suggestionReadyMsg{suggestion: suggestion}
	}
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		m.viewport = viewport.New(msg.Width-h, msg.Height-v-6)

		if m.selected != nil {
			m.viewport.SetContent(m.detailContent())
		}

		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case reposLoadedMsg:
		items := make([]list.Item, len(msg.repos))
		for i, repo := range msg.repos {
			items[i] = repoItem{repo: repo}
		}

		m.list.SetItems(items)
		m.state = stateList
		m.status = fmt.Sprintf("%d repositories", len(msg.repos))

		return m, nil

	case detailLoadedMsg:
		// A result without a repository cannot open the detail pane
		if msg.repo == nil {
			return m, nil
		}

		m.selected = msg.repo
		m.facts = core.Analyze(msg.repo)
		m.suggestion = nil
		m.state = stateDetail
		m.status = ""
		m.viewport.SetContent(m.detailContent())

		return m, nil

	case suggestionReadyMsg:
		// esc may have dismissed the detail pane while the call was in
		// flight; a late result has nothing to attach to
		if m.selected == nil {
			return m, nil
		}

		m.suggestion = msg.suggestion
		m.state = stateDetail
		m.status = successStyle.Render("suggestion ready")
		m.viewport.SetContent(m.detailContent())

		return m, nil

	case browseErrMsg:
		// Every per-action error is rendered inline; the screen stays
		// usable for the next action.
		m.status = errorStyle.Render(errorText(msg.err))

		switch m.state {
		case stateLoadingRepos:
			m.state = stateList
		case stateLoadingDetail:
			m.state = stateList
		case stateGenerating:
			m.state = stateDetail
		}

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m.updateChildren(msg)
}

func (m BrowseModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Never steal keys from the list filter prompt
	if m.state == stateList && m.list.FilterState() == list.Filtering {
		return m.updateChildren(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "q":
		if m.state == stateList || m.state == stateLoadingRepos {
			m.quitting = true
			return m, tea.Quit
		}

	case "enter":
		if m.state == stateList {
			item, ok := m.list.SelectedItem().(repoItem)
			if !ok {
				return m, nil
			}

			m.state = stateLoadingDetail
			m.status = fmt.Sprintf("fetching %s...", item.repo.FullName)

			return m, tea.Batch(m.spinner.Tick, m.loadDetail(item.repo.Owner, item.repo.Name))
		}

	case "g":
		if m.state == stateDetail && m.selected != nil {
			m.state = stateGenerating
			m.status = "generating suggestion..."

			return m, tea.Batch(m.spinner.Tick, m.generate(m.selected, m.facts))
		}

	case "esc":
		if m.state == stateDetail || m.state == stateGenerating {
			// Selection state is discarded when leaving the detail pane
			m.selected = nil
			m.suggestion = nil
			m.facts = model.RepoFacts{}
			m.state = stateList
			m.status = ""

			return m, nil
		}
	}

	return m.updateChildren(msg)
}

func (m BrowseModel) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.state {
	case stateList, stateLoadingDetail:
		m.list, cmd = m.list.Update(msg)
	case stateDetail, stateGenerating:
		m.viewport, cmd = m.viewport.Update(msg)
	}

	return m, cmd
}

func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateLoadingRepos:
		return docStyle.Render(fmt.Sprintf("%s loading repositories...\n\n%s", m.spinner.View(), m.statusLine()))

	case stateList, stateLoadingDetail:
		view := docStyle.Render(m.list.View())
		if m.status != "" {
			view += "\n" + docStyle.Render(m.statusLine())
		}

		return view

	case stateDetail, stateGenerating:
		header := titleStyle.Render(m.selected.FullName)
		help := helpStyle.Render("g: generate suggestion • esc: back • ctrl+c: quit")

		body := m.viewport.View()
		if m.state == stateGenerating {
			body = fmt.Sprintf("%s %s\n\n%s", m.spinner.View(), m.status, body)
		}

		return docStyle.Render(fmt.Sprintf("%s\n\n%s\n%s\n%s", header, body, m.statusLine(), help))
	}

	return ""
}

func (m BrowseModel) statusLine() string {
	if m.status == "" {
		return ""
	}

	return statusStyle.Render(m.status)
}

func (m BrowseModel) detailContent() string {
	if m.selected == nil {
		return ""
	}

	repo := m.selected

	var sb strings.Builder

	if repo.Description != "" {
		sb.WriteString(repo.Description + "\n\n")
	}

	fmt.Fprintf(&sb, "Status: %s | Files: %d | TODO markers: %d\n",
		m.facts.Status, m.facts.FileCount, m.facts.TodoCount)

	if top := core.TopLanguages(m.facts.Languages, 8); len(top) > 0 {
		fmt.Fprintf(&sb, "File types: %s\n", strings.Join(top, ", "))
	}

	if m.suggestion != nil {
		sb.WriteString("\n" + titleStyle.Render("Suggestions") + "\n\n")
		sb.WriteString(m.suggestion.Text + "\n")
	}

	if len(repo.Files) > 0 {
		sb.WriteString("\n" + titleStyle.Render("Files") + "\n\n")

		files := repo.Files
		if len(files) > 50 {
			files = files[:50]
		}

		for _, file := range files {
			sb.WriteString("  " + file + "\n")
		}

		if len(repo.Files) > 50 {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(repo.Files)-50)
		}
	}

	if repo.Readme != "" {
		sb.WriteString("\n" + titleStyle.Render("README") + "\n\n")

		readme := repo.Readme
		if runes := []rune(readme); len(runes) > 2000 {
			readme = string(runes[:2000]) + "\n..."
		}

		sb.WriteString(readme + "\n")
	}

	return sb.String()
}

// Suggestion returns the currently shown suggestion, if any.
// Exposed for tests and for callers that want the final state.
func (m BrowseModel) Suggestion() *model.Suggestion {
	return m.suggestion
}

// errorText maps client errors onto the inline status message shown to
// the user.
func errorText(err error) string {
	switch {
	case errors.Is(err, core.ErrAuth):
		return "GitHub rejected the credential; check GITHUB_TOKEN"
	case errors.Is(err, core.ErrNotFound):
		return "repository not found; it may have been deleted or renamed"
	case errors.Is(err, core.ErrNetwork):
		return "network error talking to GitHub; retry the action"
	case errors.Is(err, llm.ErrQuota):
		return "completion API quota exhausted; try again later"
	case errors.Is(err, llm.ErrEmptyResponse):
		return "completion API returned no content; retry the action"
	case errors.Is(err, llm.ErrNetwork):
		return "network error talking to the completion API; retry the action"
	default:
		return err.Error()
	}
}
