package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/reportr/internal/query"
	"github.com/sadopc/reportr/internal/render"
	"github.com/sadopc/reportr/internal/report"
)

type queryModel struct {
	engine   *report.Engine
	renderer *render.Renderer
	editor   textarea.Model
	width    int
	height   int

	lastQuery query.Query
	results   *report.ProcessedData
	errText   string
}

func newQueryModel(engine *report.Engine, renderer *render.Renderer) queryModel {
	ta := textarea.New()
	ta.Placeholder = `WHERE project = "acme" VIEW table PERIOD last-6-months`
	ta.Prompt = "│ "
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	return queryModel{
		engine:   engine,
		renderer: renderer,
		editor:   ta,
	}
}

func (q queryModel) Init() tea.Cmd {
	// Run the empty query once so the default report is on screen
	// before the user types anything.
	return tea.Batch(textarea.Blink, q.runQuery())
}

func (q *queryModel) setSize(w, h int) {
	q.width = w
	q.height = h
	q.editor.SetWidth(w - 10)
	q.renderer.SetWidth(w - 8)
}

// editing reports whether the editor is capturing keystrokes.
func (q queryModel) editing() bool { return q.editor.Focused() }

func (q queryModel) runQuery() tea.Cmd {
	text := q.editor.Value()
	engine := q.engine
	return func() tea.Msg {
		compiled, err := query.Compile(text, nil)
		if err != nil {
			return queryErrMsg{err: err}
		}
		data, err := engine.Execute(context.Background(), compiled)
		if err != nil {
			return queryErrMsg{err: err}
		}
		return resultsMsg{query: compiled, data: data}
	}
}

func (q queryModel) update(msg tea.Msg) (queryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case resultsMsg:
		q.lastQuery = msg.query
		q.results = msg.data
		q.errText = ""
		return q, nil

	case queryErrMsg:
		// Keep the previous results visible under the error banner.
		q.errText = msg.err.Error()
		return q, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Run):
			return q, q.runQuery()
		case key.Matches(msg, keys.Back):
			if q.editor.Focused() {
				q.editor.Blur()
			}
			return q, nil
		}

		if q.editor.Focused() {
			var cmd tea.Cmd
			q.editor, cmd = q.editor.Update(msg)
			return q, cmd
		}

		if key.Matches(msg, keys.Edit) || key.Matches(msg, keys.Enter) {
			return q, q.editor.Focus()
		}
	}
	return q, nil
}

func (q queryModel) view() string {
	if q.width < 20 {
		return "Terminal too small"
	}

	contentWidth := q.width - 4

	editorPanel := q.renderEditorPanel(contentWidth)
	statusLine := q.renderStatusLine()
	resultsPanel := q.renderResultsPanel(contentWidth)

	return lipgloss.JoinVertical(lipgloss.Left, editorPanel, statusLine, resultsPanel)
}

func (q queryModel) renderEditorPanel(w int) string {
	title := titleStyle.Render("Query")

	var hint string
	if q.editor.Focused() {
		hint = mutedStyle.Render("ctrl+r: run  esc: done editing")
	} else {
		hint = mutedStyle.Render("i: edit  ctrl+r: run")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, q.editor.View(), hint)
	if q.editor.Focused() {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (q queryModel) renderStatusLine() string {
	if q.errText != "" {
		return errorStyle.Render("  ✗ " + q.errText)
	}
	return ""
}

func (q queryModel) renderResultsPanel(w int) string {
	if q.results == nil {
		return panelStyle.Width(w).Render(mutedStyle.Render("Press ctrl+r to run the query"))
	}
	return q.renderer.Render(q.lastQuery, q.results)
}
