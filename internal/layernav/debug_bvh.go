package layernav

import (
	"fmt"
	"io"
	"strings"
)

// DumpBVH prints the BVH tree with indentation (one tab per level).
// It prints subtree counts (nodes, leaves, surfaces) and the box of each node.
func DumpBVH(w io.Writer, idx *BVHIndex) bool {
	if idx == nil || idx.root == nil {
		fmt.Fprintln(w, "[BVH] <empty>")
		return false
	}
	memo := make(map[*BVHNode]bvhCounts, 64)
	totals := bvhCount(idx.root, memo)
	fmt.Fprintf(w, "[BVH] root: nodes=%d leaves=%d surfaces=%d\n", totals.nodes, totals.leaves, totals.objs)
	bvhPrint(w, idx.root, 0, memo)
	return true
}

type bvhCounts struct {
	nodes  int
	leaves int
	objs   int
}

func bvhCount(n *BVHNode, memo map[*BVHNode]bvhCounts) bvhCounts {
	if n == nil {
		return bvhCounts{}
	}
	if c, ok := memo[n]; ok {
		return c
	}
	if n.leafObjs != nil {
		c := bvhCounts{nodes: 1, leaves: 1, objs: len(n.leafObjs)}
		memo[n] = c
		return c
	}
	lc := bvhCount(n.left, memo)
	rc := bvhCount(n.right, memo)
	c := bvhCounts{
		nodes:  1 + lc.nodes + rc.nodes,
		leaves: lc.leaves + rc.leaves,
		objs:   lc.objs + rc.objs,
	}
	memo[n] = c
	return c
}

func bvhPrint(w io.Writer, n *BVHNode, depth int, memo map[*BVHNode]bvhCounts) {
	if n == nil {
		return
	}
	ind := strings.Repeat("\t", depth)
	if n.leafObjs != nil {
		names := make([]string, 0, len(n.leafObjs))
		for _, l := range n.leafObjs {
			names = append(names, l.surface.Name())
		}
		fmt.Fprintf(w, "%sLEAF  surfaces=%s | min=%s max=%s\n", ind, strings.Join(names, ","), fmtVec(n.min), fmtVec(n.max))
		return
	}
	c := memo[n]
	fmt.Fprintf(w, "%sNODE  nodes=%d leaves=%d surfaces=%d | min=%s max=%s\n",
		ind, c.nodes, c.leaves, c.objs, fmtVec(n.min), fmtVec(n.max))
	bvhPrint(w, n.left, depth+1, memo)
	bvhPrint(w, n.right, depth+1, memo)
}
