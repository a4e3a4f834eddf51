package topics

import "strings"

// Renderer turns a topic file into terminal text. ext is the file
// extension, dot included.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer prints topics as written, ending in exactly one newline.
type PlainRenderer struct{}

// Render trims trailing blank space and terminates the text.
func (r *PlainRenderer) Render(content string, ext string) string {
	content = strings.TrimRight(content, " \t\r\n")
	if content == "" {
		return ""
	}
	return content + "\n"
}
