/*
Package bstdbg implements helpers to inspect and debug persistent binary search trees.

Trees may be drawn as text (using treeprint) or as GraphViz (DOT) diagrams.
Drawing several versions of a map into a single diagram makes structural sharing
visible: nodes shared between versions are drawn once, with edges from each
version reaching them.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package bstdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/bstmap/persistent/bst"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pkg/errors"
	"github.com/xlab/treeprint"
)

// tracer traces with key 'fp.bstdbg'.
func tracer() tracing.Trace {
	return tracing.Select("fp.bstdbg")
}

// --- Text ------------------------------------------------------------------

// Sprint draws a tree as indented text. Missing children of nodes having a single
// child are drawn as ∅, keeping left and right apart.
func Sprint[K, V any](root *bst.Node[K, V]) string {
	if root == nil {
		return "∅\n"
	}
	tree := treeprint.NewWithRoot(label(root))
	branches(tree, root)
	return tree.String()
}

// Print writes the drawing of a tree to w.
func Print[K, V any](w io.Writer, root *bst.Node[K, V]) error {
	_, err := io.WriteString(w, Sprint(root))
	return err
}

func branches[K, V any](tree treeprint.Tree, node *bst.Node[K, V]) {
	if node.IsLeaf() {
		return
	}
	for _, ch := range []*bst.Node[K, V]{node.Left(), node.Right()} {
		switch {
		case ch == nil:
			tree.AddNode("∅")
		case ch.IsLeaf():
			tree.AddNode(label(ch))
		default:
			branches(tree.AddBranch(label(ch)), ch)
		}
	}
}

func label[K, V any](node *bst.Node[K, V]) string {
	return fmt.Sprintf("%v: %v", node.Key(), node.Value())
}

// --- GraphViz --------------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname    string
	NodeTmpl    *template.Template
	EdgeTmpl    *template.Template
	VersionTmpl *template.Template
}

type dotNode struct {
	Name  string
	Label string
}

type dotEdge struct {
	From, To string
	Side     string
}

// ToGraphViz outputs a diagram for a tree in GraphViz (DOT) format.
func ToGraphViz[K, V any](root *bst.Node[K, V], w io.Writer) error {
	return ToGraphVizVersions(w, root)
}

// ToGraphVizVersions outputs a single diagram for several versions of a tree,
// given by their roots. Every version gets an entry node labelled with its
// index; nodes shared between versions appear once.
func ToGraphVizVersions[K, V any](w io.Writer, roots ...*bst.Node[K, V]) error {
	head, err := template.New("bst").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("bstnode").Funcs(
		template.FuncMap{
			"quote": quote,
		}).Parse(bstNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("bstedge").Parse(bstEdgeTmpl))
	gparams.VersionTmpl = template.Must(template.New("version").Parse(versionTmpl))
	if err = head.Execute(w, gparams); err != nil {
		return errors.Wrap(err, "writing digraph header")
	}
	dict := make(map[*bst.Node[K, V]]string, 64)
	for i, root := range roots {
		v := dotNode{Name: fmt.Sprintf("version%d", i), Label: fmt.Sprintf("v%d", i)}
		if err = gparams.VersionTmpl.Execute(w, v); err != nil {
			return err
		}
		if root == nil {
			continue
		}
		if err = nodes(root, w, dict, &gparams); err != nil {
			return err
		}
		if err = gparams.EdgeTmpl.Execute(w, dotEdge{From: v.Name, To: dict[root]}); err != nil {
			return err
		}
	}
	tracer().Debugf("digraph with %d versions has %d distinct nodes", len(roots), len(dict))
	_, err = w.Write([]byte("}\n"))
	return err
}

// nodes writes node and its subtree, skipping subtrees already drawn.
func nodes[K, V any](node *bst.Node[K, V], w io.Writer, dict map[*bst.Node[K, V]]string,
	gparams *graphParamsType) error {
	//
	if _, seen := dict[node]; seen {
		return nil
	}
	name := fmt.Sprintf("node%05d", len(dict)+1)
	dict[node] = name
	if err := gparams.NodeTmpl.Execute(w, dotNode{Name: name, Label: label(node)}); err != nil {
		return err
	}
	for i, ch := range []*bst.Node[K, V]{node.Left(), node.Right()} {
		if ch == nil {
			continue
		}
		if err := nodes(ch, w, dict, gparams); err != nil {
			return err
		}
		e := dotEdge{From: name, To: dict[ch], Side: "LR"[i : i+1]}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

// Dotty is a helper for testing. Given the root of a tree and a testing.T, it will
// create a Graphviz image of the tree and write it to a file in the current folder,
// choosing a unique file name. The image is in SVG format.
//
// If GraphViz is not installed, the test is skipped. If an error occurs,
// t.Error(…) will be set, causing the test to fail.
func Dotty[K, V any](root *bst.Node[K, V], t *testing.T) {
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("GraphViz dot not installed")
	}
	tmpfile, err := os.CreateTemp(".", "bst.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing BST digraph to %s\n", tmpfile.Name())
	if err = ToGraphViz(root, tmpfile); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing BST image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

func quote(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	return fmt.Sprintf("%q", s)
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=11] ;
`

const bstNodeTmpl = `{{ .Name }}	[ label={{ quote .Label }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
`

const versionTmpl = `{{ .Name }}	[ label="{{ .Label }}" shape=box style=filled fillcolor=ivory3 ] ;
`

const bstEdgeTmpl = `{{ .From }} -> {{ .To }} [weight=1{{ if .Side }} label="{{ .Side }}"{{ end }}] ;
`
