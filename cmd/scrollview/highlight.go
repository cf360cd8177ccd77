// Copyright © 2025 Scrollkit contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/scrollview/highlight.go
// Summary: File colorizer: enry picks the language, chroma tokenizes, and
// the tokens become styled list-view lines.

package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
	"github.com/go-enry/go-enry/v2"

	"github.com/framegrace/scrollkit/tui"
)

const tabWidth = 4

// colorize turns source text into styled lines. Tokenizing the whole file
// at once gives the lexer full context; a lexer failure degrades to plain
// text rather than an error, since highlighting is cosmetic here.
func colorize(path, src, styleName string) []tui.Line {
	name := filepath.Base(path)

	var lexer chroma.Lexer
	if lang := enry.GetLanguage(name, []byte(src)); lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Match(name)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return plainLines(src)
	}

	var lines []tui.Line
	var cur tui.Line
	for tok := it(); tok != chroma.EOF; tok = it() {
		st := tokenStyle(style, tok.Type)
		for _, r := range tok.Value {
			switch r {
			case '\n':
				lines = append(lines, cur)
				cur = nil
			case '\r':
				// swallowed; \r\n endings render as one line break
			case '\t':
				for i := 0; i < tabWidth; i++ {
					cur = append(cur, tui.Cell{Ch: ' ', Style: st})
				}
			default:
				cur = append(cur, tui.Cell{Ch: r, Style: st})
			}
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	if len(lines) == 0 {
		lines = []tui.Line{nil}
	}
	return lines
}

// tokenStyle maps a chroma style entry onto a tcell style.
func tokenStyle(style *chroma.Style, t chroma.TokenType) tcell.Style {
	entry := style.Get(t)
	st := tcell.StyleDefault
	if entry.Colour.IsSet() {
		st = st.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue())))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

func plainLines(src string) []tui.Line {
	raw := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	lines := make([]tui.Line, len(raw))
	for i, text := range raw {
		var line tui.Line
		for _, r := range text {
			if r == '\t' {
				for j := 0; j < tabWidth; j++ {
					line = append(line, tui.Cell{Ch: ' ', Style: tcell.StyleDefault})
				}
				continue
			}
			line = append(line, tui.Cell{Ch: r, Style: tcell.StyleDefault})
		}
		lines[i] = line
	}
	return lines
}
