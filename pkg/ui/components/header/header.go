// Package header renders the static portfolio page shown behind the chat widget.
package header

import (
	"strings"

	"folio_chat/pkg/profile"
	"folio_chat/pkg/ui/components/utils"
	"folio_chat/pkg/ui/styles"
	"folio_chat/pkg/version"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const minWrapWidth = 20

// Render returns the page body for p as lines no wider than width.
func Render(p *profile.Profile, width int) []string {
	if p == nil {
		return nil
	}
	if width < minWrapWidth {
		width = minWrapWidth
	}

	var lines []string
	add := func(block string) {
		lines = append(lines, strings.Split(block, "\n")...)
	}

	lines = append(lines, "", nameLine(p.Owner, width))
	if p.Headline != "" {
		add(wrap(styles.HeadlineStyle, p.Headline, width))
	}
	if p.Summary != "" {
		lines = append(lines, "")
		add(wrap(styles.TextStyle, p.Summary, width))
	}

	if featured := p.Featured(); len(featured) > 0 {
		add(styles.SectionStyle.Render(sectionTitle(p)))
		for _, pr := range featured {
			lines = append(lines, projectLines(pr, width)...)
		}
	}

	if contact := contactLines(p.Contact, width); len(contact) > 0 {
		add(styles.SectionStyle.Render("Contact"))
		lines = append(lines, contact...)
	}

	lines = append(lines, "", styles.TextMutedStyle.Render(utils.TruncateToWidth("folio_chat "+version.Summary(), width)))
	return lines
}

func sectionTitle(p *profile.Profile) string {
	if len(p.Featured()) < len(p.Projects) {
		return "Featured Projects"
	}
	return "Projects"
}

// nameLine renders "FIRST" plain and the rest of the name in the accent color.
func nameLine(owner string, width int) string {
	fields := strings.Fields(strings.ToUpper(owner))
	if len(fields) == 0 {
		return ""
	}
	first := utils.TrimToWidth(fields[0], width)
	rest := strings.Join(fields[1:], "")
	restWidth := width - runewidth.StringWidth(first)
	return styles.NameStyle.Render(first) + styles.NameAccentStyle.Render(utils.TrimToWidth(rest, restWidth))
}

func projectLines(pr profile.Project, width int) []string {
	title := "▸ " + pr.Title
	line := styles.TextBoldStyle.Render(utils.TruncateToWidth(title, width))
	if len(pr.Tags) > 0 {
		room := width - runewidth.StringWidth(title) - 2
		if room > 3 {
			line += "  " + styles.TagStyle.Render(utils.TruncateToWidth(strings.Join(pr.Tags, " · "), room))
		}
	}

	lines := []string{"", line}
	if desc := strings.TrimSpace(pr.Description); desc != "" {
		lines = append(lines, strings.Split(wrap(styles.TextStyle.PaddingLeft(2), desc, width), "\n")...)
	}
	if pr.Link != "" {
		lines = append(lines, "  "+styles.LinkStyle.Render(utils.TruncateToWidth(pr.Link, width-2)))
	}
	return lines
}

func contactLines(c profile.Contact, width int) []string {
	entries := []struct{ label, value string }{
		{"Email", c.Email},
		{"GitHub", c.GitHub},
		{"LinkedIn", c.LinkedIn},
	}

	var lines []string
	for _, e := range entries {
		if e.value == "" {
			continue
		}
		label := runewidth.FillRight(e.label, 10)
		value := utils.TruncateToWidth(e.value, width-runewidth.StringWidth(label))
		lines = append(lines, styles.TagStyle.Render(label)+styles.LinkStyle.Render(value))
	}
	return lines
}

func wrap(style lipgloss.Style, text string, width int) string {
	return style.Width(width).Render(strings.Join(strings.Fields(text), " "))
}
