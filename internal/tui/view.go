package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arcanaland/aura/internal/fan"
	"github.com/arcanaland/aura/internal/render"
	"github.com/arcanaland/aura/internal/session"
	"github.com/arcanaland/aura/internal/store"
)

// infoPages are the title and body keys of the info screen, in order
var infoPages = [][2]string{
	{"how_it_works_title", "how_it_works_body"},
	{"how_to_ask_title", "how_to_ask_body"},
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch m.screen {
	case screenSignIn:
		b.WriteString(m.viewSignIn())
	case screenSaved:
		b.WriteString(m.viewSaved())
	case screenInfo:
		b.WriteString(m.viewInfo())
	default:
		b.WriteString(m.viewDraw())
	}

	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(NoticeStyle.Render(m.notice))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) header() string {
	title := TitleStyle.Render(m.msgs.T("app_title")) + " " + MutedStyle.Render("· "+m.msgs.T("app_tagline"))
	user := m.msgs.T("signed_out")
	if m.user != nil {
		user = m.msgs.F("signed_in_as", m.user.Email)
	}
	return title + "  " + MutedStyle.Render(user)
}

func (m Model) viewDraw() string {
	switch m.session.Phase() {
	case session.Intro:
		return m.viewIntro()
	case session.Countdown:
		return m.viewCountdown()
	case session.ChoosingCard:
		return m.viewFan()
	case session.Revealed:
		return m.viewReveal()
	}
	return ""
}

func (m Model) viewIntro() string {
	var b strings.Builder
	b.WriteString(SubtitleStyle.Render(m.msgs.T("intro_subtitle")))
	b.WriteString("\n\n")
	b.WriteString(m.msgs.T("intro_start"))
	b.WriteString(m.footer(m.msgs.T("locale_action"), m.msgs.T("saved_list_action"), m.msgs.T("info_action"), m.msgs.T("quit_action")))
	return b.String()
}

func (m Model) viewCountdown() string {
	var b strings.Builder
	if m.session.ShowSubtitle() {
		b.WriteString(SubtitleStyle.Render(m.msgs.T("intro_subtitle")))
		b.WriteString("\n\n")
	}
	b.WriteString(CountdownStyle.Render(strconv.Itoa(m.session.Remaining())))
	b.WriteString(m.footer(m.msgs.T("restart_action"), m.msgs.T("locale_action"), m.msgs.T("quit_action")))
	return b.String()
}

func (m Model) viewFan() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.msgs.T("choose_card")))
	b.WriteString("\n\n")
	b.WriteString(m.plotFan())
	b.WriteString("\n")

	switch {
	case m.session.Flipped() >= 0:
		if c, ok := m.session.Selected(); ok {
			b.WriteString(FlippedStyle.Render(c.Heading()))
		}
	case m.session.ImageError() != nil:
		b.WriteString(ErrorStyle.Render(m.msgs.T("image_failed")))
	case m.session.Preloading() >= 0:
		b.WriteString(MutedStyle.Render(m.msgs.T("preloading")))
	case m.session.Tapped() >= 0:
		b.WriteString(MutedStyle.Render(m.msgs.T("tap_again")))
	}

	b.WriteString(m.footer(m.msgs.T("choose_hint"), m.msgs.T("restart_action"), m.msgs.T("quit_action")))
	return b.String()
}

// plotFan draws the face-down cards on their arc, marking the cursor and the
// tapped and flipped slots
func (m Model) plotFan() string {
	f := m.session.Fan()
	width, height := 64, 17
	if m.width > 0 {
		width = min(max(m.width-4, 20), 72)
	}
	if m.height > 0 {
		height = min(max(m.height-12, 7), 21)
	}

	grid := make([][]string, height)
	for r := range grid {
		grid[r] = make([]string, width)
		for c := range grid[r] {
			grid[r][c] = " "
		}
	}

	points := fan.Plot(f, width, height)
	var marked []fan.Point
	for _, p := range points {
		if p.Position == m.cursor || p.Position == m.session.Tapped() || p.Position == m.session.Flipped() {
			marked = append(marked, p)
			continue
		}
		grid[p.Row][p.Col] = CardBackStyle.Render("▮")
	}
	// marked slots are drawn last so neighbours never hide them
	for _, p := range marked {
		var glyph string
		switch {
		case p.Position == m.session.Flipped():
			glyph = FlippedStyle.Render("◆")
		case p.Position == m.session.Tapped():
			glyph = TappedStyle.Render("▮")
		default:
			glyph = CursorStyle.Render("▮")
		}
		grid[p.Row][p.Col] = glyph
	}

	lines := make([]string, height)
	for r, row := range grid {
		lines[r] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewReveal() string {
	c, ok := m.session.Selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	panelWidth := min(m.contentWidth(), 60)
	text := TitleStyle.Render(c.Heading()) + "\n\n" +
		QuoteStyle.Render(strings.Join(render.WrapText(c.Quote, panelWidth-6), "\n"))
	panel := CardStyle.Width(panelWidth).Render(text)
	if art, ok := m.images.Art(c.Index); ok && art != "" {
		panel = lipgloss.JoinHorizontal(lipgloss.Top, art, "  ", panel)
	}
	b.WriteString(panel)
	b.WriteString("\n\n")

	switch {
	case m.question.Focused():
		b.WriteString(m.msgs.T("question_prompt"))
		b.WriteString("\n")
		b.WriteString(m.question.View())
	case m.session.Question() != "":
		b.WriteString(MutedStyle.Render(m.msgs.T("saved_question") + ": " + m.session.Question()))
	}

	if m.session.Loading() {
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View() + " " + m.msgs.T("loading"))
	} else if m.reply != "" {
		b.WriteString("\n\n")
		b.WriteString(TitleStyle.Render(m.msgs.T("insight_title")))
		b.WriteString("\n")
		b.WriteString(m.reply)
	}

	save := m.msgs.T("save_action")
	if m.session.Saved() {
		save = m.msgs.T("saved_action")
	}
	b.WriteString(m.footer(m.msgs.T("explain_action"), save, m.msgs.T("restart_action"),
		m.msgs.T("locale_action"), m.msgs.T("saved_list_action"), m.msgs.T("info_action"), m.msgs.T("quit_action")))
	return b.String()
}

func (m Model) viewSignIn() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.msgs.T("sign_in_title")))
	b.WriteString("\n\n")
	b.WriteString(m.msgs.T("sign_in_prompt"))
	b.WriteString("\n")
	b.WriteString(m.email.View())
	if m.signInErr != "" {
		b.WriteString("\n\n")
		b.WriteString(ErrorStyle.Render(m.signInErr))
	}
	b.WriteString("\n\n")
	b.WriteString(MutedStyle.Render(m.msgs.T("sign_in_hint")))
	return ModalStyle.Render(b.String())
}

func (m Model) viewSaved() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.msgs.T("saved_title")))
	b.WriteString("\n")

	switch {
	case m.user == nil:
		b.WriteString("\n" + m.msgs.T("saved_login_required"))
	case m.store == nil:
		b.WriteString("\n" + m.msgs.T("store_unavailable"))
	case !m.savedLoaded:
		b.WriteString("\n" + MutedStyle.Render("..."))
	case len(m.savedCards) == 0:
		b.WriteString("\n" + m.msgs.T("saved_empty"))
	default:
		b.WriteString(m.savedList())
	}

	if m.confirm != nil {
		b.WriteString("\n\n")
		b.WriteString(NoticeStyle.Render(m.msgs.F("delete_confirm", m.confirm.Title)))
	}
	b.WriteString(m.footer(m.msgs.T("saved_hint")))
	return b.String()
}

func (m Model) savedList() string {
	var b strings.Builder
	width := m.contentWidth() - 4
	i := 0
	for _, g := range store.Group(m.savedCards, m.msgs.DateLayout(), m.loc) {
		b.WriteString(DateStyle.Render(g.Key))
		b.WriteString("\n")
		for _, c := range g.Cards {
			marker := "  "
			title := c.Title
			if i == m.savedCursor {
				marker = SelectedStyle.Render("› ")
				title = SelectedStyle.Render(title)
			}
			b.WriteString(marker + title + "  " + MutedStyle.Render(c.Time.In(m.loc).Format("15:04")) + "\n")
			if i == m.savedCursor {
				b.WriteString(indent(QuoteStyle.Render(strings.Join(render.WrapText(c.Quote, width), "\n")), 4))
				if c.UserQuestion != "" {
					b.WriteString(indent(MutedStyle.Render(fmt.Sprintf("%s: %s", m.msgs.T("saved_question"), c.UserQuestion)), 4))
				}
				if c.AIReply != "" {
					reply := strings.Join(render.WrapText(c.AIReply, width), "\n")
					b.WriteString(indent(MutedStyle.Render(m.msgs.T("saved_reply")+":")+"\n"+reply, 4))
				}
			}
			i++
		}
	}
	return b.String()
}

func (m Model) viewInfo() string {
	page := infoPages[m.infoPage]
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.msgs.T(page[0])))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(render.WrapText(m.msgs.T(page[1]), m.contentWidth()), "\n"))
	b.WriteString(m.footer(m.msgs.T("info_hint")))
	return b.String()
}

func (m Model) footer(actions ...string) string {
	return "\n" + FooterStyle.Render(strings.Join(actions, " · "))
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n") + "\n"
}
