package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/phanxgames/twisty"
)

// dumpConfig prints node payloads without pointer addresses.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	MaxDepth:                3,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func (c *CLI) treeCommand() *cobra.Command {
	var dump bool
	var depth int

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the scene graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			a, err := c.newApp(cfg)
			if err != nil {
				return err
			}
			s := a.Scene()
			printTree(cmd.OutOrStdout(), s.Graph(), s.Root(), depth, dump)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump every node's fields")
	cmd.Flags().IntVar(&depth, "depth", 0, "maximum depth to print (0 is unlimited)")
	return cmd
}

// printTree writes one line per node under root, indented by depth.
func printTree(w io.Writer, g *twisty.Graph, root twisty.NodeID, maxDepth int, dump bool) {
	var visit func(id twisty.NodeID, depth int)
	visit = func(id twisty.NodeID, depth int) {
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(w, "%s%s %s %s\n", indent, g.Name(id), kindStyle(g.Kind(id)).Render(g.Kind(id).String()), styleDim.Render(fmt.Sprintf("#%d", id)))
		if dump {
			for _, line := range strings.Split(strings.TrimRight(dumpNode(g, id), "\n"), "\n") {
				fmt.Fprintln(w, indent+"  "+styleDim.Render(line))
			}
		}
		if maxDepth > 0 && depth+1 >= maxDepth {
			if n := g.NumChildren(id); n > 0 {
				fmt.Fprintf(w, "%s  %s\n", indent, styleDim.Render(fmt.Sprintf("… %d children", n)))
			}
			return
		}
		for _, child := range g.Children(id) {
			visit(child, depth+1)
		}
	}
	visit(root, 0)
}

// dumpNode renders the node's transform and payload.
func dumpNode(g *twisty.Graph, id twisty.NodeID) string {
	n := g.Node(id)
	switch n.Kind {
	case twisty.NodeKindEntity:
		return dumpConfig.Sdump(n.Transform, n.Material)
	case twisty.NodeKindLight:
		return dumpConfig.Sdump(n.Transform, n.Light)
	default:
		return dumpConfig.Sdump(n.Transform)
	}
}

func kindStyle(k twisty.NodeKind) lipgloss.Style {
	switch k {
	case twisty.NodeKindEntity:
		return styleKindEntity
	case twisty.NodeKindLight:
		return styleKindLight
	default:
		return styleKindGroup
	}
}
