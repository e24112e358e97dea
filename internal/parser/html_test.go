package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const netscapeExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://news.example.com">News</A>
    <DT><H3>Work</H3>
    <DL><p>
        <DT><A HREF="https://mail.example.com">Mail</A>
        <DT><H3>Docs</H3>
        <DL><p>
            <DT><A HREF="https://docs.example.com/guide">Guide</A>
        </DL><p>
        <DT><A HREF="place:sort=8">Recent</A>
    </DL><p>
    <DT><H3></H3>
    <DL><p>
        <DT><A HREF="https://hidden.example.com">Hidden</A>
        <DT><H3>Nested</H3>
        <DL><p>
            <DT><A HREF="https://hidden2.example.com">Hidden 2</A>
        </DL><p>
    </DL><p>
    <DT><A HREF="relative">Relative</A>
    <DT><A HREF="https://last.example.com">Last</A>
</DL><p>
`

func TestHTMLParser_Tree(t *testing.T) {
	root, err := NewHTMLParser().ParseReader(strings.NewReader(netscapeExport))
	require.NoError(t, err)

	children := root.Children()
	require.Len(t, children, 3)
	assert.Equal(t, "News", children[0].Name())
	assert.Equal(t, "", children[0].Path())
	assert.Equal(t, "Work", children[1].Name())
	assert.Equal(t, "Last", children[2].Name())

	work := children[1].Children()
	require.Len(t, work, 3)
	assert.Equal(t, "Mail", work[0].Name())
	assert.Equal(t, "Work", work[0].Path())
	assert.Equal(t, "Docs", work[1].Name())
	assert.Equal(t, "Work", work[1].Path())
	assert.Equal(t, "Recent", work[2].Name())
	assert.Equal(t, "place:sort=8", work[2].Target())

	guide := work[1].Children()[0]
	assert.Equal(t, "Work/Docs", guide.Path())
	assert.Equal(t, "https://docs.example.com/guide", guide.Target())
}

func TestHTMLParser_ParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.html")
	require.NoError(t, os.WriteFile(path, []byte(netscapeExport), 0644))

	root, err := NewHTMLParser().Parse(path)
	require.NoError(t, err)
	folders, bookmarks := root.Count()
	assert.Equal(t, 2, folders)
	assert.Equal(t, 5, bookmarks)
}
