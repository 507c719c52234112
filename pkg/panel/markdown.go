package panel

import (
	"regexp"
	"strings"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	`&`, `\&`,
	`~`, `\~`,
	`|`, `\|`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
)

// orderedMarker matches a line that would open an ordered list ("1986. ").
var orderedMarker = regexp.MustCompile(`^(\d+)([.)])`)

// escape makes s render as the literal text it is. Inline markup and
// entities are backslash-escaped. Each line loses its indentation and has a
// leading block marker escaped, so it cannot open a list, rule, heading or
// code block.
func escape(s string) string {
	lines := strings.Split(mdEscaper.Replace(s), "\n")
	for i, line := range lines {
		line = strings.TrimLeft(line, " \t")
		switch {
		case line == "":
		case strings.ContainsRune("-+=", rune(line[0])):
			line = `\` + line
		default:
			line = orderedMarker.ReplaceAllString(line, `$1\$2`)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Markdown renders c as CommonMark. Text is escaped, so feature data never
// turns into markup.
func Markdown(c Content) string {
	var b strings.Builder
	if c.Title != "" {
		b.WriteString("## ")
		b.WriteString(escape(c.Title))
		b.WriteString("\n\n")
	}
	for _, s := range c.Sections {
		writeSection(&b, s)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeSection(b *strings.Builder, s Section) {
	switch {
	case s.Inline:
		b.WriteString("**")
		b.WriteString(escape(s.Heading))
		b.WriteString(":** ")
		b.WriteString(escape(s.Text))
		b.WriteString("\n\n")
		return
	case s.Heading != "":
		b.WriteString("### ")
		b.WriteString(escape(s.Heading))
		b.WriteString("\n\n")
	}
	if s.Text != "" {
		b.WriteString(escape(s.Text))
		b.WriteString("\n\n")
	}
	if len(s.Items) > 0 {
		for _, item := range s.Items {
			b.WriteString("- ")
			b.WriteString(escape(item))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

// PlainText renders c without markup, for logs and narrow terminals.
func PlainText(c Content) string {
	var b strings.Builder
	if c.Title != "" {
		b.WriteString(c.Title)
		b.WriteString("\n\n")
	}
	for _, s := range c.Sections {
		switch {
		case s.Inline:
			b.WriteString(s.Heading + ": " + s.Text + "\n\n")
			continue
		case s.Heading != "":
			b.WriteString(s.Heading + ":\n")
		}
		if s.Text != "" {
			b.WriteString(s.Text + "\n\n")
		}
		for _, item := range s.Items {
			b.WriteString("  • " + item + "\n")
		}
		if len(s.Items) > 0 {
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
