package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/holocron/internal/loader"
	"github.com/rshade/holocron/internal/swapi"
)

// Layout constants.
const (
	cardWidth     = 32
	cardGap       = 1
	borderPadding = 2
	maxCardField  = cardWidth - 4
)

// attribute is one labelled badge on the character page.
type attribute struct {
	label string
	value string
	color lipgloss.Color
}

func attributes(c *swapi.Character) []attribute {
	return []attribute{
		{"Height", c.Height, ColorGreen},
		{"Mass", c.Mass, ColorPurple},
		{"Hair Color", c.HairColor, ColorBlue},
		{"Skin Color", c.SkinColor, ColorYellow},
		{"Eye Color", c.EyeColor, ColorRed},
		{"Birth Year", c.BirthYear, ColorOrange},
		{"Gender", c.Gender, ColorTeal},
	}
}

// RenderCharacterPage renders the styled character page for state within width columns.
// A failed cycle renders the error; a cycle that never resolved the character renders
// a short notice instead of an empty page.
func RenderCharacterPage(state loader.ViewState, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	inner := width - borderPadding*2

	var content strings.Builder
	switch {
	case state.Loading && !state.HasCharacter():
		content.WriteString(InfoStyle.Render(fmt.Sprintf("Loading character #%s...", state.ID)))
	case !state.HasCharacter():
		content.WriteString(renderFailure(state))
	default:
		renderCharacter(&content, state, inner)
		if state.Error != "" {
			content.WriteString("\n\n")
			content.WriteString(renderFailure(state))
		}
	}

	return BoxStyle.Width(width - borderPadding).Render(content.String())
}

func renderFailure(state loader.ViewState) string {
	if state.Error == "" {
		return InfoStyle.Render("No character loaded.")
	}
	return ErrorStyle.Render(fmt.Sprintf("Failed to load character #%s", state.ID)) +
		"\n" + ValueStyle.Render(state.Error)
}

func renderCharacter(b *strings.Builder, state loader.ViewState, width int) {
	c := state.Character

	b.WriteString(HeaderStyle.Render(strings.ToUpper(c.Name)))
	b.WriteString("\n\n")
	b.WriteString(renderBadges(c, width))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("Image: "))
	b.WriteString(SubtleStyle.Render(state.ImageURL))

	if len(state.Starships) > 0 {
		cards := make([]string, 0, len(state.Starships))
		for _, s := range state.Starships {
			cards = append(cards, renderCraftCard(s.Craft))
		}
		b.WriteString("\n")
		b.WriteString(SectionStyle.Render("Starships"))
		b.WriteString("\n")
		b.WriteString(gridRows(cards, width))
	}

	if len(state.Vehicles) > 0 {
		cards := make([]string, 0, len(state.Vehicles))
		for _, v := range state.Vehicles {
			cards = append(cards, renderCraftCard(v.Craft))
		}
		b.WriteString("\n")
		b.WriteString(SectionStyle.Render("Vehicles"))
		b.WriteString("\n")
		b.WriteString(gridRows(cards, width))
	}

	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("Films"))
	b.WriteString("\n")
	if len(state.Films) == 0 {
		b.WriteString(SubtleStyle.Render("none"))
		return
	}
	for i, f := range state.Films {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(SubtleStyle.Render("• "))
		b.WriteString(ValueStyle.Render(f.Title))
		b.WriteString(LabelStyle.Render(fmt.Sprintf("  (%s)", EpisodeLabel(f.EpisodeID))))
	}
}

// renderBadges lays the attribute badges out two per line, as on the web page.
func renderBadges(c *swapi.Character, width int) string {
	attrs := attributes(c)
	perRow := 2
	if width < 2*cardWidth {
		perRow = 1
	}

	rows := make([]string, 0, (len(attrs)+1)/perRow)
	for i := 0; i < len(attrs); i += perRow {
		end := min(i+perRow, len(attrs))
		badges := make([]string, 0, perRow)
		for _, a := range attrs[i:end] {
			badge := BadgeStyle.Background(a.color).
				Width(cardWidth - cardGap).
				Render(fmt.Sprintf("%s: %s", a.label, a.value))
			badges = append(badges, badge, " ")
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, badges...))
	}
	return strings.Join(rows, "\n")
}

func renderCraftCard(c swapi.Craft) string {
	var b strings.Builder
	b.WriteString(CardTitleStyle.Render(truncate(c.Name, maxCardField)))
	b.WriteString("\n")
	b.WriteString(cardField("Model", c.Model))
	b.WriteString("\n")
	b.WriteString(cardField("Manufacturer", c.Manufacturer))
	b.WriteString("\n")
	b.WriteString(cardField("Cost", FormatCredits(c.CostInCredits)))
	return CardStyle.Width(cardWidth).Render(b.String())
}

func cardField(label, value string) string {
	text := truncate(label+": "+value, maxCardField)
	return LabelStyle.Render(label+": ") + ValueStyle.Render(strings.TrimPrefix(text, label+": "))
}

// gridRows joins cards left to right, wrapping when the next card would overflow width.
func gridRows(cards []string, width int) string {
	perRow := max(1, width/(cardWidth+borderPadding+cardGap))

	rows := make([]string, 0, len(cards)/perRow+1)
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		cells := make([]string, 0, 2*(end-i))
		for j, card := range cards[i:end] {
			if j > 0 {
				cells = append(cells, strings.Repeat(" ", cardGap))
			}
			cells = append(cells, card)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

// RenderCharacterPlain renders state as unstyled text for pipes and NO_COLOR terminals.
func RenderCharacterPlain(state loader.ViewState) string {
	var b strings.Builder

	if !state.HasCharacter() {
		if state.Error != "" {
			fmt.Fprintf(&b, "Failed to load character #%s: %s\n", state.ID, state.Error)
		} else {
			fmt.Fprintf(&b, "No character loaded for #%s\n", state.ID)
		}
		return b.String()
	}

	c := state.Character
	fmt.Fprintf(&b, "%s\n", c.Name)
	for _, a := range attributes(c) {
		fmt.Fprintf(&b, "%s: %s\n", a.label, a.value)
	}
	fmt.Fprintf(&b, "Image: %s\n", state.ImageURL)

	writeCrafts := func(title string, crafts []swapi.Craft) {
		if len(crafts) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n%s:\n", title)
		for _, cr := range crafts {
			fmt.Fprintf(&b, "  - %s\n", cr.Name)
			fmt.Fprintf(&b, "    Model: %s\n", cr.Model)
			fmt.Fprintf(&b, "    Manufacturer: %s\n", cr.Manufacturer)
			fmt.Fprintf(&b, "    Cost: %s\n", FormatCredits(cr.CostInCredits))
		}
	}
	starships := make([]swapi.Craft, 0, len(state.Starships))
	for _, s := range state.Starships {
		starships = append(starships, s.Craft)
	}
	vehicles := make([]swapi.Craft, 0, len(state.Vehicles))
	for _, v := range state.Vehicles {
		vehicles = append(vehicles, v.Craft)
	}
	writeCrafts("Starships", starships)
	writeCrafts("Vehicles", vehicles)

	b.WriteString("\nFilms:\n")
	if len(state.Films) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, f := range state.Films {
		fmt.Fprintf(&b, "  - %s: %s\n", EpisodeLabel(f.EpisodeID), f.Title)
	}

	if state.Error != "" {
		fmt.Fprintf(&b, "\nError: %s\n", state.Error)
	}
	return b.String()
}
