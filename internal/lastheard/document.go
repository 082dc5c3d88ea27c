package lastheard

import (
	"strings"

	"github.com/natefinch/atomic"
)

const (
	documentHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Wires-X Last Heard</title>
</head>
<body>
<pre>
`
	documentFooter = `</pre>
</body>
</html>
`
)

// Document wraps HTML projection lines in the static page shell.
func Document(lines []string) string {
	var b strings.Builder
	b.WriteString(documentHeader)
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(documentFooter)
	return b.String()
}

// writeDocument replaces path so readers never observe a partial page.
func writeDocument(path string, lines []string) error {
	return atomic.WriteFile(path, strings.NewReader(Document(lines)))
}
