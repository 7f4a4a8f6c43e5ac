package render

import (
	"bytes"
	"strings"

	xhtml "golang.org/x/net/html"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
)

// HNToMarkdown converts HN's limited HTML to markdown source.
// HN uses: <p> (paragraph), <a> (links), <i> (italic), <code> (inline code),
// <pre><code> (code blocks), and HTML entities.
func HNToMarkdown(raw string) string {
	if raw == "" {
		return ""
	}

	tokenizer := xhtml.NewTokenizer(strings.NewReader(raw))
	var buf bytes.Buffer
	var inPre, inCode bool
	var anchorURL string
	anchorStart := -1

	for {
		tt := tokenizer.Next()
		switch tt {
		case xhtml.ErrorToken:
			return strings.TrimSpace(buf.String())

		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			t := tokenizer.Token()
			switch t.Data {
			case "p":
				paragraphBreak(&buf)
			case "br":
				buf.WriteString("  \n")
			case "i", "em":
				buf.WriteString("*")
			case "b", "strong":
				buf.WriteString("**")
			case "code":
				if !inPre {
					buf.WriteString("`")
				}
				inCode = true
			case "pre":
				inPre = true
				paragraphBreak(&buf)
				buf.WriteString("```\n")
			case "a":
				anchorURL = ""
				for _, attr := range t.Attr {
					if attr.Key == "href" {
						anchorURL = attr.Val
					}
				}
				anchorStart = buf.Len()
			}

		case xhtml.EndTagToken:
			t := tokenizer.Token()
			switch t.Data {
			case "i", "em":
				buf.WriteString("*")
			case "b", "strong":
				buf.WriteString("**")
			case "code":
				if !inPre {
					buf.WriteString("`")
				}
				inCode = false
			case "pre":
				inPre = false
				buf.WriteString("\n```\n\n")
			case "a":
				closeLink(&buf, anchorStart, anchorURL)
				anchorURL = ""
				anchorStart = -1
			}

		case xhtml.TextToken:
			text := tokenizer.Token().Data
			switch {
			case inPre:
				buf.WriteString(strings.TrimRight(text, "\n"))
			case inCode:
				buf.WriteString(text)
			default:
				buf.WriteString(mdEscaper.Replace(text))
			}
		}
	}
}

// paragraphBreak ends the current paragraph unless one was just ended.
func paragraphBreak(buf *bytes.Buffer) {
	b := buf.Bytes()
	switch {
	case len(b) == 0, bytes.HasSuffix(b, []byte("\n\n")):
	case b[len(b)-1] == '\n':
		buf.WriteByte('\n')
	default:
		buf.WriteString("\n\n")
	}
}

// closeLink turns the text written since start into a markdown link. HN
// shortens long link labels with "...", so those become bare autolinks.
func closeLink(buf *bytes.Buffer, start int, href string) {
	if start < 0 || href == "" {
		return
	}
	label := buf.String()[start:]
	plain := strings.ReplaceAll(label, `\`, "")
	if plain == "" || plain == href || strings.HasSuffix(plain, "...") {
		buf.Truncate(start)
		buf.WriteString("<" + href + ">")
		return
	}
	buf.Truncate(start)
	buf.WriteString("[" + label + "](" + href + ")")
}
