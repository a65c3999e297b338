package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/e11jah/ntree"
	"github.com/e11jah/ntree/internal/config"
)

type evaluation struct {
	input []*int
	tree  ntree.Tree
	// non-fatal, set only in strict mode
	diagnostic error
}

func evaluate(input []*int, strict bool) *evaluation {
	ev := &evaluation{input: input}
	if strict {
		ev.tree, ev.diagnostic = ntree.BuildStrict(input)
	} else {
		ev.tree = ntree.Build(input)
	}

	if stats := ev.tree.Stats(); stats.Truncated() {
		pterm.Debug.Printfln("%s: %d elements ignored from index %d", ntree.Format(input), stats.Ignored, stats.StopIdx)
	}
	return ev
}

func evaluateLiteral(literal string, strict bool) (*evaluation, error) {
	input, err := ntree.Parse(literal)
	if err != nil {
		return nil, errors.WithMessagef(err, "parse %s", literal)
	}
	return evaluate(input, strict), nil
}

func (ev *evaluation) warn() {
	if ev.diagnostic != nil {
		pterm.Warning.Printfln("%s: %v", ntree.Format(ev.input), ev.diagnostic)
	}
}

func renderPostorder(w io.Writer, ev *evaluation) error {
	_, err := fmt.Fprintln(w, ntree.FormatValues(ev.tree.Postorder()))
	return err
}

func renderTree(w io.Writer, ev *evaluation) error {
	root := ev.tree.Root()
	if root == nil {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}

	out, err := pterm.DefaultTree.WithRoot(treeNode(root)).Srender()
	if err != nil {
		return errors.Wrap(err, "render tree")
	}
	_, err = fmt.Fprint(w, out)
	return err
}

func treeNode(n ntree.Node) pterm.TreeNode {
	children := n.Children()
	tn := pterm.TreeNode{
		Text:     strconv.Itoa(n.Value()),
		Children: make([]pterm.TreeNode, 0, len(children)),
	}
	for _, c := range children {
		tn.Children = append(tn.Children, treeNode(c))
	}
	return tn
}

func render(w io.Writer, ev *evaluation, format string) error {
	if format == config.FormatTree {
		return renderTree(w, ev)
	}
	return renderPostorder(w, ev)
}

// readBatch decodes a YAML list whose items are encodings, either inline
// sequences or quoted literals.
func readBatch(afs afero.Fs, path string) ([][]*int, error) {
	data, err := afero.ReadFile(afs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	list := doc.Content[0]
	if list.Kind != yaml.SequenceNode {
		return nil, errors.Wrapf(ntree.ErrNotSequence, "%s", path)
	}

	inputs := make([][]*int, 0, len(list.Content))
	for i, item := range list.Content {
		var input []*int
		if item.Kind == yaml.ScalarNode && item.ShortTag() == "!!str" {
			input, err = ntree.Parse(item.Value)
		} else {
			input, err = ntree.ParseNode(item)
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "%s: entry %d", path, i)
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

// runBatch evaluates every file concurrently and writes the results in
// argument order.
func runBatch(ctx context.Context, afs afero.Fs, files []string, c *config.Config, w io.Writer) error {
	results := make([][]*evaluation, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Concurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			// another file already failed
			if err := gctx.Err(); err != nil {
				return err
			}
			inputs, err := readBatch(afs, file)
			if err != nil {
				return err
			}
			pterm.Debug.Printfln("%s: %d encodings", file, len(inputs))

			evs := make([]*evaluation, 0, len(inputs))
			for _, input := range inputs {
				evs = append(evs, evaluate(input, c.Strict))
			}
			results[i] = evs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for i, file := range files {
		for j, ev := range results[i] {
			ev.warn()
			if _, err := fmt.Fprintf(w, "%s:%d ", file, j); err != nil {
				return err
			}
			if err := renderPostorder(w, ev); err != nil {
				return err
			}
		}
	}
	return nil
}
