package lastheard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	rfLine    = `W9LBR-BILL%E5cN9%W9LBR-BILL%2019/09/25 19:44:39%V-CH%5431555037%N:41 50' 42" / W:088 07' 58"%0%%%%%`
	netLine   = `AMERICA-LINK%12345%KD9ABC%2019/09/25 18:00:00%Net%xx%S:33 52' 00" / E:151 12' 00"%0`
	shortLine = `garbage%line`
	oddRadio  = `K1ABC%ZZ999%K1ABC%2019/09/25 20:10:00%Room%xx%unknown%0`
)

func writeLog(t *testing.T, path string, lines ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

// bumpModTime moves the file's mtime so the next Refresh looks at it even
// when the filesystem timestamp resolution is coarse.
func bumpModTime(t *testing.T, path string, offset time.Duration) {
	t.Helper()
	stamp := time.Now().Add(offset)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
}

func TestRefresh_RendersProjections(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "WiresAccess.log")
	target := filepath.Join(dir, "WX_last_heard.html")
	writeLog(t, logPath, rfLine, netLine, shortLine, oddRadio)

	d := NewDiffer(target)
	res, err := d.Refresh(logPath)
	require.NoError(t, err)
	require.NoError(t, res.WriteErr)
	assert.True(t, res.Changed)

	assert.Equal(t, []string{
		"2019/09/25 18:00:00 Internet [12345] Node      KD9ABC {AMERICA-LINK} QF56od",
		"2019/09/25 19:44:39 Local/RF [E5cN9] FT2D      W9LBR-BILL EN51wu",
		"2019/09/25 20:10:00 Room     [ZZ999] ?ZZ999?   K1ABC xxxxxx",
	}, res.Plain)
	assert.Len(t, res.Records, 3)
	require.Len(t, res.Diagnostics, 2)
	assert.Contains(t, res.Diagnostics[0], "garbage%line")
	assert.Contains(t, res.Diagnostics[1], "ZZ999")

	require.Len(t, res.HTML, 3)
	assert.True(t, strings.HasPrefix(res.HTML[0], "2019/09/25 18:00:00 Internet [12345] Node      "))
	assert.Contains(t, res.HTML[0], "{AMERICA-LINK}")
	assert.Equal(t, res.Plain, d.Plain())
	assert.Equal(t, res.HTML, d.HTML())

	f, err := os.Open(target)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)

	assert.Equal(t, "Wires-X Last Heard", doc.Find("title").Text())
	var hrefs, texts []string
	doc.Find("pre a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, href)
		texts = append(texts, s.Text())
	})
	assert.Equal(t, []string{
		"https://www.qrz.com/db/KD9ABC",
		"https://www.qrz.com/db/W9LBR/BILL",
		"https://www.qrz.com/db/K1ABC",
	}, hrefs)
	assert.Equal(t, []string{"KD9ABC", "W9LBR-BILL", "K1ABC"}, texts)
	assert.Contains(t, doc.Find("pre").Text(), "2019/09/25 19:44:39 Local/RF [E5cN9] FT2D      W9LBR-BILL EN51wu")
}

func TestRefresh_Idempotent(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "WiresAccess.log")
	target := filepath.Join(dir, "out.html")
	writeLog(t, logPath, rfLine)

	d := NewDiffer(target)
	res, err := d.Refresh(logPath)
	require.NoError(t, err)
	require.True(t, res.Changed)

	res, err = d.Refresh(logPath)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Nil(t, res.Plain)

	// A touched file with the same content is not a change and is not
	// rewritten.
	require.NoError(t, os.Remove(target))
	bumpModTime(t, logPath, time.Hour)
	res, err = d.Refresh(logPath)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err))

	writeLog(t, logPath, rfLine, netLine)
	bumpModTime(t, logPath, 2*time.Hour)
	res, err = d.Refresh(logPath)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Len(t, res.Plain, 2)
	_, err = os.Stat(target)
	assert.NoError(t, err)
}

func TestRefresh_MissingFile(t *testing.T) {
	d := NewDiffer("")
	res, err := d.Refresh(filepath.Join(t.TempDir(), "absent.log"))
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestRefresh_ReadFailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "WiresAccess.log")
	writeLog(t, logPath, rfLine)

	d := NewDiffer("")
	_, err := d.Refresh(logPath)
	require.NoError(t, err)
	prev := d.Plain()

	// A directory stats fine but cannot be read as a file.
	require.NoError(t, os.Remove(logPath))
	require.NoError(t, os.Mkdir(logPath, 0o755))
	bumpModTime(t, logPath, time.Hour)
	res, err := d.Refresh(logPath)
	assert.Error(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, prev, d.Plain())
}

func TestRefresh_WriteFailureStillChanged(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "WiresAccess.log")
	writeLog(t, logPath, rfLine)

	d := NewDiffer(filepath.Join(dir, "missing", "dir", "out.html"))
	res, err := d.Refresh(logPath)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Error(t, res.WriteErr)
	assert.Len(t, res.Plain, 1)
}

func TestRefresh_RetriesFailedWrite(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "WiresAccess.log")
	writeLog(t, logPath, rfLine)
	site := filepath.Join(dir, "site")
	target := filepath.Join(site, "lastheard.html")

	d := NewDiffer(target)
	res, err := d.Refresh(logPath)
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.Error(t, res.WriteErr)

	// Still failing: reported again, the log is not re-rendered.
	res, err = d.Refresh(logPath)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Error(t, res.WriteErr)

	require.NoError(t, os.MkdirAll(site, 0o755))
	res, err = d.Refresh(logPath)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.NoError(t, res.WriteErr)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "W9LBR")

	res, err = d.Refresh(logPath)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestRefresh_IllFormedBytes(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "WiresAccess.log")
	raw := "NODE\xff%12345%KD9ABC%2019/09/25 18:00:00%Net%xx%%0\n"
	require.NoError(t, os.WriteFile(logPath, []byte(raw), 0o644))

	res, err := NewDiffer("").Refresh(logPath)
	require.NoError(t, err)
	require.Len(t, res.Plain, 1)
	assert.Contains(t, res.Plain[0], "{NODE�}")
}

func TestHTMLLine_EscapesFields(t *testing.T) {
	d := NewDiffer("")
	res := d.render("<b>NODE%12345%<script>%2019/09/25 18:00:00%Net%xx%%0")
	require.Len(t, res.HTML, 1)
	assert.NotContains(t, res.HTML[0], "<script>")
	assert.NotContains(t, res.HTML[0], "<b>")
}

func TestDocument(t *testing.T) {
	doc := Document([]string{"a", "b"})
	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<pre>\na\nb\n</pre>")
}
