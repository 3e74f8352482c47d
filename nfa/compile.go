package nfa

import (
	"github.com/coregx/lexgen/lexerr"
	"github.com/coregx/lexgen/pattern"
)

// MaxRepeatCount bounds the unrolled copy count for a bounded repetition
// {m,n}, guarding against pathological patterns like a{1000000} blowing up
// the NFA. Grounded in the teacher's CompilerConfig.MaxRecursionDepth guard
// in nfa/compile.go, adapted from a recursion-depth bound to a copy-count
// bound since this grammar has no recursive subpatterns to bound by depth.
const MaxRepeatCount = 1000

// fragment is a partially built sub-NFA: start is its entry state, end is
// always a dangling StateEpsilon state whose Next field is patched to
// thread the fragment into its surrounding context. Grounded in the
// teacher's (start, end StateID) fragment technique in nfa/compile.go,
// uniformly terminating every fragment in an epsilon state (rather than the
// teacher's practice of reusing whatever state kind happens to dangle) so
// every fragment boundary patches the same way regardless of what kind of
// node produced it.
type fragment struct {
	start StateID
	end   StateID
}

// Compile runs Thompson construction (C3) over a parsed pattern AST,
// producing a single-pattern NFA with one start and one accept state.
func Compile(ast *pattern.AST) (*NFA, error) {
	b := NewBuilder()
	frag, err := compileNode(b, ast.Root)
	if err != nil {
		return nil, err
	}
	accept := b.AddMatch()
	b.Patch(frag.end, accept)
	b.SetStart(frag.start)
	return b.Build(accept)
}

func compileNode(b *Builder, n pattern.Node) (fragment, error) {
	switch v := n.(type) {
	case pattern.Class:
		return compileClass(b, v), nil
	case pattern.Concat:
		return compileConcat(b, v)
	case pattern.Alt:
		return compileAlt(b, v)
	case pattern.Repeat:
		return compileRepeat(b, v)
	case pattern.Empty:
		return compileEmpty(b), nil
	default:
		return fragment{}, lexerr.New(lexerr.DfaBuild, "nfa: unknown AST node type")
	}
}

func compileEmpty(b *Builder) fragment {
	end := b.AddEpsilon(InvalidState)
	return fragment{start: end, end: end}
}

func compileClass(b *Builder, c pattern.Class) fragment {
	end := b.AddEpsilon(InvalidState)
	start := b.AddClassTransition(c.ID, end)
	return fragment{start: start, end: end}
}

func compileConcat(b *Builder, c pattern.Concat) (fragment, error) {
	if len(c.Nodes) == 0 {
		return compileEmpty(b), nil
	}
	first, err := compileNode(b, c.Nodes[0])
	if err != nil {
		return fragment{}, err
	}
	prevEnd := first.end
	for _, node := range c.Nodes[1:] {
		frag, err := compileNode(b, node)
		if err != nil {
			return fragment{}, err
		}
		b.Patch(prevEnd, frag.start)
		prevEnd = frag.end
	}
	return fragment{start: first.start, end: prevEnd}, nil
}

func compileAlt(b *Builder, a pattern.Alt) (fragment, error) {
	starts := make([]StateID, len(a.Nodes))
	ends := make([]StateID, len(a.Nodes))
	for i, node := range a.Nodes {
		frag, err := compileNode(b, node)
		if err != nil {
			return fragment{}, err
		}
		starts[i] = frag.start
		ends[i] = frag.end
	}
	join := b.AddEpsilon(InvalidState)
	for _, e := range ends {
		b.Patch(e, join)
	}
	return fragment{start: buildSplitChain(b, starts), end: join}, nil
}

// buildSplitChain builds a right-leaning chain of binary splits over more
// than two alternatives, grounded in the teacher's buildSplitChain in the
// now-removed nfa/compile.go.
func buildSplitChain(b *Builder, starts []StateID) StateID {
	if len(starts) == 1 {
		return starts[0]
	}
	rest := buildSplitChain(b, starts[1:])
	return b.AddSplit(starts[0], rest)
}

func compileRepeat(b *Builder, r pattern.Repeat) (fragment, error) {
	if r.Max == -1 {
		return compileUnboundedRepeat(b, r)
	}
	return compileBoundedRepeat(b, r)
}

func compileUnboundedRepeat(b *Builder, r pattern.Repeat) (fragment, error) {
	switch r.Min {
	case 0:
		return compileStar(b, r.Node)
	case 1:
		return compilePlus(b, r.Node)
	default:
		// {m,} : m-1 mandatory copies followed by a plus of one more copy.
		mandatory, err := compileNCopies(b, r.Node, r.Min-1)
		if err != nil {
			return fragment{}, err
		}
		tail, err := compilePlus(b, r.Node)
		if err != nil {
			return fragment{}, err
		}
		b.Patch(mandatory.end, tail.start)
		return fragment{start: mandatory.start, end: tail.end}, nil
	}
}

// compileStar builds `node*`: a split choosing between entering the body
// (looping back to itself) or exiting directly.
func compileStar(b *Builder, node pattern.Node) (fragment, error) {
	join := b.AddEpsilon(InvalidState)
	split := b.AddSplit(InvalidState, join)
	body, err := compileNode(b, node)
	if err != nil {
		return fragment{}, err
	}
	b.PatchSplit(split, body.start, InvalidState)
	b.Patch(body.end, split)
	return fragment{start: split, end: join}, nil
}

// compilePlus builds `node+`: the body runs once, then a split chooses
// between looping back into the body or exiting.
func compilePlus(b *Builder, node pattern.Node) (fragment, error) {
	join := b.AddEpsilon(InvalidState)
	body, err := compileNode(b, node)
	if err != nil {
		return fragment{}, err
	}
	split := b.AddSplit(body.start, join)
	b.Patch(body.end, split)
	return fragment{start: body.start, end: join}, nil
}

func compileBoundedRepeat(b *Builder, r pattern.Repeat) (fragment, error) {
	if r.Max > MaxRepeatCount || r.Min > MaxRepeatCount {
		return fragment{}, lexerr.New(lexerr.DfaBuild, "repetition count exceeds the supported maximum")
	}
	if r.Max == 0 {
		return compileEmpty(b), nil
	}

	optionalCount := r.Max - r.Min
	if r.Min == 0 {
		if optionalCount == 0 {
			return compileEmpty(b), nil
		}
		return compileOptionalChain(b, r.Node, optionalCount)
	}

	mandatory, err := compileNCopies(b, r.Node, r.Min)
	if err != nil {
		return fragment{}, err
	}
	if optionalCount == 0 {
		return mandatory, nil
	}
	optional, err := compileOptionalChain(b, r.Node, optionalCount)
	if err != nil {
		return fragment{}, err
	}
	b.Patch(mandatory.end, optional.start)
	return fragment{start: mandatory.start, end: optional.end}, nil
}

// compileNCopies concatenates n independent copies of node, where n must
// be at least 1; a zero-copy mandatory prefix is handled by the caller
// directly so no orphan fragment is ever left unpatched in the builder.
func compileNCopies(b *Builder, node pattern.Node, n int) (fragment, error) {
	first, err := compileNode(b, node)
	if err != nil {
		return fragment{}, err
	}
	prevEnd := first.end
	for i := 1; i < n; i++ {
		frag, err := compileNode(b, node)
		if err != nil {
			return fragment{}, err
		}
		b.Patch(prevEnd, frag.start)
		prevEnd = frag.end
	}
	return fragment{start: first.start, end: prevEnd}, nil
}

// compileOptionalChain builds a nested chain of n "quest"-like optional
// copies that all share one exit join, implementing the tail of a bounded
// repetition such as the two optional copies in `a{1,3}`.
func compileOptionalChain(b *Builder, node pattern.Node, n int) (fragment, error) {
	join := b.AddEpsilon(InvalidState)
	if n == 0 {
		return fragment{start: join, end: join}, nil
	}
	body, err := compileNode(b, node)
	if err != nil {
		return fragment{}, err
	}
	if n == 1 {
		b.Patch(body.end, join)
		split := b.AddSplit(body.start, join)
		return fragment{start: split, end: join}, nil
	}
	rest, err := compileOptionalChain(b, node, n-1)
	if err != nil {
		return fragment{}, err
	}
	b.Patch(body.end, rest.start)
	split := b.AddSplit(body.start, join)
	b.Patch(rest.end, join)
	return fragment{start: split, end: join}, nil
}
