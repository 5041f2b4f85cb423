package scaffold

import (
	"fmt"
	"strings"

	"github.com/frourio/frourio-express/internal/routetree"
)

// ServerModule is the module name of the generated server file, imported by
// every relay.
const ServerModule = "$server"

// Ensure runs the scaffold pass over the whole tree, parents before children:
// default files first, then the directory's relay. It must complete before a
// compiler program is built over the tree, since relays are compiler inputs.
// The tree describes directory structure only; file contents are read from
// disk as the pass goes.
func Ensure(root *routetree.Node) error {
	return ensure(root, nil)
}

// ensure receives the depths of ancestor directories whose hooks file
// exports an AdditionalRequest type.
func ensure(n *routetree.Node, hookDepths []int) error {
	if err := EnsureDefaults(n.Dir, n.Param); err != nil {
		return fmt.Errorf("scaffolding %s: %w", n.Dir, err)
	}

	depth := n.Depth()
	additionals := make([]string, 0, len(hookDepths)+2)
	for _, d := range hookDepths {
		additionals = append(additionals, upPath(depth-d)+"hooks")
	}

	childDepths := hookDepths
	if ExportsAdditionalRequest(n.File(routetree.HooksFile)) {
		additionals = append(additionals, "./hooks")
		childDepths = append(append([]int(nil), hookDepths...), depth)
	}
	if ExportsAdditionalRequest(n.File(routetree.ControllerFile)) {
		additionals = append(additionals, "./controller")
	}

	relay := Relay{
		ServerPath:  upPath(depth+1) + ServerModule,
		Additionals: additionals,
		Params:      n.Params,
		Param:       n.Param,
	}
	if err := WriteRelay(n.Dir, relay); err != nil {
		return fmt.Errorf("writing relay for %s: %w", n.Dir, err)
	}

	for _, c := range n.Children {
		if err := ensure(c, childDepths); err != nil {
			return err
		}
	}
	return nil
}

// upPath returns a relative import prefix climbing n directories.
func upPath(n int) string {
	if n <= 0 {
		return "./"
	}
	return strings.Repeat("../", n)
}
