package main

import (
	"path/filepath"

	"github.com/disiqueira/gotree/v3"
)

// planTree renders target paths relative to the destination root as a tree,
// creating intermediate directory nodes on first use.
type planTree struct {
	tree gotree.Tree
	dirs map[string]gotree.Tree
}

func newPlanTree(rootLabel string) planTree {
	return planTree{tree: gotree.New(rootLabel), dirs: make(map[string]gotree.Tree)}
}

func (t planTree) dir(dirPath string) gotree.Tree {
	if dirPath == "." || dirPath == "" {
		return t.tree
	}
	node, ok := t.dirs[dirPath]
	if !ok {
		node = t.dir(filepath.Dir(dirPath)).Add(filepath.Base(dirPath))
		t.dirs[dirPath] = node
	}
	return node
}

// insert adds a leaf for relPath, labelled with its base name plus suffix.
func (t planTree) insert(relPath, suffix string) {
	t.dir(filepath.Dir(relPath)).Add(filepath.Base(relPath) + suffix)
}

func (t planTree) render() string {
	return t.tree.Print()
}
