package ui

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/dastanaron/browser-bookmarks/internal/models"
	"github.com/dastanaron/browser-bookmarks/internal/service"
	"github.com/dastanaron/browser-bookmarks/internal/source"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	ModeNormal = 1
	ModeSearch = 2
)

// folderRef identifies a folder across reloads, since every reload builds
// new nodes.
type folderRef struct {
	source string
	path   string // full path of the folder, "" for the source root
}

// listEntry is a row of the item list
type listEntry struct {
	source *source.Source
	node   *models.Node
}

// App represents the TUI application
type App struct {
	app         *tview.Application
	folderTree  *tview.TreeView
	list        *tview.List
	detail      *tview.TextView
	search      *tview.InputField
	status      *tview.TextView
	pages       *tview.Pages
	mode        uint8
	registry    *source.Registry
	bookmarkSvc *service.BookmarkService
	selected    *folderRef // nil = all bookmarks
	items       []listEntry
	current     *listEntry
	running     atomic.Bool
	focusOnTree bool
}

// NewApp creates a new application instance
func NewApp() *App {
	return &App{
		app:        tview.NewApplication(),
		folderTree: tview.NewTreeView(),
		list:       tview.NewList(),
		detail:     tview.NewTextView().SetDynamicColors(true).SetWrap(true),
		search:     tview.NewInputField().SetLabel("Search: "),
		status:     tview.NewTextView().SetDynamicColors(true),
		pages:      tview.NewPages(),
		mode:       ModeNormal,
	}
}

// OnReload redraws the app after a source published a new tree. It is safe
// to call from any goroutine, before or after Run.
func (a *App) OnReload(name string, root *models.Node) {
	if !a.running.Load() {
		return
	}
	a.app.QueueUpdateDraw(func() {
		a.fillFolderTree()
		a.loadItems()
		a.setStatus(fmt.Sprintf("[::b]%s[::-] reloaded", name))
	})
}

// Run starts the application
func (a *App) Run(registry *source.Registry, bookmarkSvc *service.BookmarkService) error {
	a.registry = registry
	a.bookmarkSvc = bookmarkSvc

	a.folderTree.SetBorder(true).SetTitle("Browsers")
	a.list.SetBorder(true).SetTitle("Items")
	a.detail.SetBorder(true).SetTitle("Details")

	cols := tview.NewFlex().
		AddItem(a.folderTree, 0, 1, false).
		AddItem(a.list, 0, 3, true).
		AddItem(a.detail, 0, 1, false)

	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.search, 1, 0, false).
		AddItem(cols, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.pages.AddPage("main", main, true, true)

	a.fillFolderTree()
	a.loadItems()

	a.search.SetChangedFunc(func(string) { a.loadItems() })
	a.search.SetDoneFunc(a.onSearchDone)
	a.list.SetChangedFunc(a.onSelect)
	a.folderTree.SetSelectedFunc(a.onFolderSelect)

	a.app.SetRoot(a.pages, true)
	a.app.SetInputCapture(a.globalInput)
	a.updateStatus()
	a.app.SetFocus(a.list)

	a.running.Store(true)
	defer a.running.Store(false)
	return a.app.Run()
}

func (a *App) fillFolderTree() {
	root := tview.NewTreeNode("All bookmarks").SetReference((*folderRef)(nil))
	for _, src := range a.registry.Sources() {
		ref := &folderRef{source: src.Name()}
		node := tview.NewTreeNode(src.Name()).SetReference(ref).SetColor(tcell.ColorYellow)
		addFolders(node, src.Name(), src.Root())
		root.AddChild(node)
	}
	a.folderTree.SetRoot(root).SetCurrentNode(root)
}

func addFolders(parent *tview.TreeNode, sourceName string, folder *models.Node) {
	for _, child := range folder.Children() {
		if !child.IsFolder() {
			continue
		}
		ref := &folderRef{source: sourceName, path: child.ChildPath()}
		node := tview.NewTreeNode("📁 " + child.Name()).SetReference(ref).SetExpanded(false)
		addFolders(node, sourceName, child)
		parent.AddChild(node)
	}
}

func (a *App) onFolderSelect(node *tview.TreeNode) {
	ref, _ := node.GetReference().(*folderRef)
	a.selected = ref
	node.SetExpanded(!node.IsExpanded())

	if ref == nil {
		a.list.SetTitle("Items (All)")
	} else {
		a.list.SetTitle(fmt.Sprintf("Items (%s)", models.JoinPath(ref.source, ref.path)))
	}
	a.loadItems()
	a.updateStatus()

	a.focusOnTree = false
	a.app.SetFocus(a.list)
}

// loadItems fills the list with the selected folder's content, or with
// search results when the search field is not empty.
func (a *App) loadItems() {
	a.items = a.items[:0]

	if query := a.search.GetText(); query != "" || a.selected == nil {
		for _, m := range a.bookmarkSvc.Search(query) {
			src, ok := a.registry.Source(m.Source)
			if !ok {
				continue
			}
			a.items = append(a.items, listEntry{source: src, node: m.Node})
		}
		a.fillList()
		return
	}

	src, ok := a.registry.Source(a.selected.source)
	if !ok {
		a.fillList()
		return
	}
	folder := findFolder(src.Root(), a.selected.path)
	if folder == nil {
		// the folder disappeared in a reload, fall back to the source root
		a.selected.path = ""
		folder = src.Root()
	}
	for _, n := range folder.Children() {
		a.items = append(a.items, listEntry{source: src, node: n})
	}
	a.fillList()
}

// findFolder returns the folder whose children carry path
func findFolder(root *models.Node, path string) *models.Node {
	if path == "" {
		return root
	}
	var found *models.Node
	root.Walk(func(n *models.Node) bool {
		if found != nil {
			return false
		}
		if n.IsFolder() && n.ChildPath() == path {
			found = n
			return false
		}
		return n.IsFolder() && strings.HasPrefix(path, n.ChildPath()+models.PathSeparator)
	})
	return found
}

func (a *App) fillList() {
	a.list.Clear()
	for _, item := range a.items {
		var mainText, secondaryText string
		if item.node.IsFolder() {
			mainText = fmt.Sprintf("📁 %s", item.node.Name())
			secondaryText = "Folder"
		} else {
			mainText = item.node.Name()
			secondaryText = item.node.Target()
		}
		a.list.AddItem(mainText, secondaryText, 0, nil)
	}

	if len(a.items) > 0 {
		a.current = &a.items[0]
	} else {
		a.current = nil
	}
	a.showDetails()
	a.updateStatus()
}

func (a *App) onSelect(index int, mainText, secondaryText string, shortcut rune) {
	if index >= 0 && index < len(a.items) {
		a.current = &a.items[index]
		a.showDetails()
	}
}

func (a *App) showDetails() {
	if a.current == nil {
		a.detail.SetText("")
		return
	}

	n := a.current.node
	folder := n.Path()
	if folder == "" {
		folder = "/"
	}
	if n.IsFolder() {
		a.detail.SetText(fmt.Sprintf(
			"[::b]Type:[::-]\nFolder\n\n[::b]Name:[::-]\n%s\n\n[::b]Browser:[::-]\n%s\n\n[::b]Parent:[::-]\n%s",
			n.Name(), a.current.source.Name(), folder))
		return
	}
	a.detail.SetText(fmt.Sprintf(
		"[::b]Type:[::-]\nBookmark\n\n[::b]Title:[::-]\n%s\n\n[::b]URL:[::-]\n%s\n\n[::b]Browser:[::-]\n%s\n\n[::b]Folder:[::-]\n%s",
		n.Name(), n.Target(), a.current.source.Name(), folder))
}

func (a *App) updateStatus() {
	var bookmarkCount, folderCount int
	for _, item := range a.items {
		if item.node.IsFolder() {
			folderCount++
		} else {
			bookmarkCount++
		}
	}
	countText := fmt.Sprintf(" [::b]%d[::-] items (%d bookmarks, %d folders)", len(a.items), bookmarkCount, folderCount)

	statusText := "[::b]Tab[::-] switch  [::b]/[::-] search  [::b]Enter[::-] open  [::b]p[::-] private  [::b]r[::-] reload  [::b]q[::-] quit"
	if a.focusOnTree {
		statusText = "[::b]Tab[::-] switch  [::b]Enter[::-] select  [::b]q[::-] quit"
	}
	a.setStatus(statusText + countText)
}

func (a *App) setStatus(text string) {
	a.status.SetText(text)
}

func (a *App) setMode(m uint8) {
	a.mode = m
	switch m {
	case ModeSearch:
		a.app.SetFocus(a.search)
	default:
		if a.focusOnTree {
			a.app.SetFocus(a.folderTree)
		} else {
			a.app.SetFocus(a.list)
		}
	}
}

func (a *App) toggleFocus() {
	a.focusOnTree = !a.focusOnTree
	if a.focusOnTree {
		a.app.SetFocus(a.folderTree)
	} else {
		a.app.SetFocus(a.list)
	}
	a.updateStatus()
}

func (a *App) onSearchDone(key tcell.Key) {
	if key == tcell.KeyEscape {
		a.search.SetText("")
	}
	a.setMode(ModeNormal)
}

func (a *App) openCurrent(private bool) {
	if a.current == nil {
		return
	}
	if a.current.node.IsFolder() {
		a.selected = &folderRef{source: a.current.source.Name(), path: a.current.node.ChildPath()}
		a.list.SetTitle(fmt.Sprintf("Items (%s)", models.JoinPath(a.selected.source, a.selected.path)))
		a.loadItems()
		return
	}
	if err := a.current.source.Open(a.current.node.Target(), private); err != nil {
		a.showError(err.Error())
	}
}

func (a *App) showError(message string) {
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			a.pages.RemovePage("error")
			a.setMode(ModeNormal)
		})
	a.pages.AddPage("error", modal, true, true)
}

func (a *App) globalInput(event *tcell.EventKey) *tcell.EventKey {
	if a.pages.HasPage("error") || a.mode == ModeSearch {
		return event
	}

	if event.Key() == tcell.KeyTab {
		a.toggleFocus()
		return nil
	}
	if event.Key() == tcell.KeyEnter && !a.focusOnTree {
		a.openCurrent(false)
		return nil
	}

	if event.Key() == tcell.KeyRune {
		switch event.Rune() {
		case 'q':
			a.app.Stop()
			return nil
		case '/':
			a.setMode(ModeSearch)
			return nil
		case 'r':
			go func() {
				if err := a.registry.Reload(); err != nil {
					a.app.QueueUpdateDraw(func() {
						a.setStatus(fmt.Sprintf("[red]%v", err))
					})
				}
			}()
			return nil
		case 'p':
			if !a.focusOnTree {
				a.openCurrent(true)
			}
			return nil
		}
	}
	return event
}
