package models

import "net/url"

// ItemType represents the type of item (bookmark or folder)
type ItemType string

const (
	ItemTypeBookmark ItemType = "bookmark"
	ItemTypeFolder   ItemType = "folder"
)

// PathSeparator joins folder names inside Node.Path.
const PathSeparator = "/"

// Node is a single folder or bookmark of a parsed bookmark tree.
//
// A tree is built once per parse and never modified after it has been
// published, so every accessor is safe for concurrent readers.
type Node struct {
	name     string
	kind     ItemType
	target   *url.URL
	path     string
	children []*Node
}

// NewRoot creates the unnamed top-level folder of a tree.
func NewRoot() *Node {
	return &Node{kind: ItemTypeFolder}
}

// NewFolder creates a folder node. path is the folder path of its parent.
func NewFolder(name, path string) *Node {
	return &Node{name: name, kind: ItemTypeFolder, path: path}
}

// NewBookmark creates a link node pointing at target.
func NewBookmark(name string, target *url.URL, path string) *Node {
	return &Node{name: name, kind: ItemTypeBookmark, target: target, path: path}
}

// Name returns the display text of the node
func (n *Node) Name() string { return n.name }

// Type returns whether the node is a folder or a bookmark
func (n *Node) Type() ItemType { return n.kind }

// IsFolder reports whether the node can hold children
func (n *Node) IsFolder() bool { return n.kind == ItemTypeFolder }

// Path returns the "/"-joined names of the folders above this node,
// excluding the root.
func (n *Node) Path() string { return n.path }

// Target returns the bookmark address, or "" for folders.
func (n *Node) Target() string {
	if n.target == nil {
		return ""
	}
	return n.target.String()
}

// URL returns a copy of the parsed bookmark address, nil for folders.
func (n *Node) URL() *url.URL {
	if n.target == nil {
		return nil
	}
	u := *n.target
	return &u
}

// ChildPath returns the path that children of this folder carry.
func (n *Node) ChildPath() string {
	return JoinPath(n.path, n.name)
}

// AddChild appends child, keeping insertion order. It is a no-op on bookmarks.
func (n *Node) AddChild(child *Node) {
	if n.kind != ItemTypeFolder || child == nil {
		return
	}
	n.children = append(n.children, child)
}

// Children returns the ordered children of a folder.
// The returned slice is a copy; the nodes themselves are shared.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of direct children
func (n *Node) Len() int { return len(n.children) }

// Walk visits every descendant depth-first in order. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	for _, c := range n.children {
		if fn(c) {
			c.Walk(fn)
		}
	}
}

// Count returns the number of folders and bookmarks below n.
func (n *Node) Count() (folders, bookmarks int) {
	n.Walk(func(c *Node) bool {
		if c.IsFolder() {
			folders++
		} else {
			bookmarks++
		}
		return true
	})
	return folders, bookmarks
}

// JoinPath appends name to a folder path. An empty parent yields name alone.
func JoinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + PathSeparator + name
}
