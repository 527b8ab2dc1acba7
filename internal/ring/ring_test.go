package ring

import (
	"context"
	"testing"

	"chorddht/internal/chordspace"
	"chorddht/internal/directory"
	"chorddht/internal/rpc/local"
)

type harness struct {
	t     *testing.T
	sp    chordspace.Space
	dir   *directory.Directory
	nodes map[string]*Node
}

func newHarness(t *testing.T, bits uint) *harness {
	sp, err := chordspace.NewSpace(bits)
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}
	return &harness{t: t, sp: sp, dir: directory.New(sp), nodes: map[string]*Node{}}
}

func (h *harness) addNode(id string, key chordspace.Key, succListSize int) *Node {
	handle := chordspace.NodeHandle{ID: id, Key: key, Endpoint: "local://" + id}
	n := New(Config{
		Space:             h.sp,
		Self:              handle,
		SuccessorListSize: succListSize,
		Dialer:            local.New(h.dir),
	})
	h.dir.Register(n)
	h.nodes[id] = n
	return n
}

func (h *harness) converge(ctx context.Context, rounds int) {
	for i := 0; i < rounds; i++ {
		for _, n := range h.nodes {
			n.Stabilize(ctx)
		}
		for _, n := range h.nodes {
			n.CheckPredecessor(ctx)
		}
	}
	for i := 0; i < rounds; i++ {
		for _, n := range h.nodes {
			n.fixFingersOnce(ctx)
		}
	}
}

func TestSingleNodeRingIsOwnSuccessor(t *testing.T) {
	h := newHarness(t, 8)
	n := h.addNode("a", 10, 2)
	n.CreateRing()
	if succ := n.Successor(); !succ.Equal(n.Handle()) {
		t.Fatalf("successor = %v, want self", succ)
	}
	got, err := n.FindSuccessor(context.Background(), 200)
	if err != nil {
		t.Fatalf("FindSuccessor: %v", err)
	}
	if !got.Equal(n.Handle()) {
		t.Fatalf("FindSuccessor(200) = %v, want self", got)
	}
}

func TestThreeNodeRingConvergesAndRoutes(t *testing.T) {
	h := newHarness(t, 8)
	a := h.addNode("a", 10, 3)
	b := h.addNode("b", 100, 3)
	c := h.addNode("c", 200, 3)
	a.CreateRing()

	ctx := context.Background()
	if err := b.Join(ctx, a.Handle()); err != nil {
		t.Fatalf("b.Join: %v", err)
	}
	if err := c.Join(ctx, a.Handle()); err != nil {
		t.Fatalf("c.Join: %v", err)
	}
	h.converge(ctx, 10)

	cases := []struct {
		key  chordspace.Key
		want string
	}{
		{5, "a"},
		{10, "a"},
		{50, "b"},
		{100, "b"},
		{150, "c"},
		{200, "c"},
		{250, "a"}, // wraps
	}
	for _, c := range cases {
		got, err := a.FindSuccessor(ctx, c.key)
		if err != nil {
			t.Fatalf("FindSuccessor(%d): %v", c.key, err)
		}
		if got.ID != c.want {
			t.Errorf("FindSuccessor(%d) = %s, want %s", c.key, got.ID, c.want)
		}
	}
}

func TestPutGetDeleteRoutesToOwner(t *testing.T) {
	h := newHarness(t, 8)
	a := h.addNode("a", 10, 3)
	b := h.addNode("b", 100, 3)
	a.CreateRing()

	ctx := context.Background()
	if err := b.Join(ctx, a.Handle()); err != nil {
		t.Fatalf("b.Join: %v", err)
	}
	h.converge(ctx, 5)

	if err := a.Put(ctx, "hello", []byte("world")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := b.Get(ctx, "hello")
	if err != nil {
		t.Fatalf("Get from other node: %v", err)
	}
	if string(got) != "world" {
		t.Fatalf("Get = %q, want %q", got, "world")
	}

	if err := b.Delete(ctx, "hello"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := a.Get(ctx, "hello"); err == nil {
		t.Fatalf("Get after delete: want error, got nil")
	}
}

func TestLeaveRepairsPredecessorsSuccessor(t *testing.T) {
	h := newHarness(t, 8)
	a := h.addNode("a", 10, 3)
	b := h.addNode("b", 100, 3)
	c := h.addNode("c", 200, 3)
	a.CreateRing()

	ctx := context.Background()
	if err := b.Join(ctx, a.Handle()); err != nil {
		t.Fatalf("b.Join: %v", err)
	}
	if err := c.Join(ctx, a.Handle()); err != nil {
		t.Fatalf("c.Join: %v", err)
	}
	h.converge(ctx, 10)

	if err := b.Leave(ctx); err != nil {
		t.Fatalf("b.Leave: %v", err)
	}
	h.dir.Deregister("b")

	for i := 0; i < 10; i++ {
		a.Stabilize(ctx)
		c.Stabilize(ctx)
	}

	if succ := a.Successor(); succ.ID == "b" {
		t.Fatalf("a's successor still points at departed node b")
	}
}

func TestFailIsUnreachableWithoutHandoff(t *testing.T) {
	h := newHarness(t, 8)
	a := h.addNode("a", 10, 3)
	b := h.addNode("b", 100, 3)
	c := h.addNode("c", 200, 3)
	a.CreateRing()

	ctx := context.Background()
	if err := b.Join(ctx, a.Handle()); err != nil {
		t.Fatalf("b.Join: %v", err)
	}
	if err := c.Join(ctx, a.Handle()); err != nil {
		t.Fatalf("c.Join: %v", err)
	}
	h.converge(ctx, 10)

	if err := a.Put(ctx, "hello", []byte("world")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	b.Fail()
	if b.State() != StateDead {
		t.Fatalf("State() after Fail = %v, want StateDead", b.State())
	}

	// Unlike Leave, Fail never hands documents off or notifies
	// neighbors; b is still registered in the directory but every RPC
	// against it must be refused.
	if _, err := c.FindSuccessor(ctx, 100); err != nil {
		t.Fatalf("FindSuccessor after b's failure: %v", err)
	}

	for i := 0; i < 10; i++ {
		a.Stabilize(ctx)
		c.Stabilize(ctx)
	}

	if succ := a.Successor(); succ.ID == "b" {
		t.Fatalf("a's successor still points at the failed node b")
	}
}

// ringOf3 builds a converged 3-node ring with the given harness and
// returns its members, for the document placement/query scenarios.
func ringOf3(t *testing.T, h *harness) (a, b, c *Node) {
	a = h.addNode("10", 0x10, 3)
	b = h.addNode("80", 0x80, 3)
	c = h.addNode("f0", 0xf0, 3)
	a.CreateRing()

	ctx := context.Background()
	if err := b.Join(ctx, a.Handle()); err != nil {
		t.Fatalf("b.Join: %v", err)
	}
	if err := c.Join(ctx, a.Handle()); err != nil {
		t.Fatalf("c.Join: %v", err)
	}
	h.converge(ctx, 10)
	return a, b, c
}

func TestDocumentPlacementAtResponsibleNode(t *testing.T) {
	h := newHarness(t, 8)
	a, b, c := ringOf3(t, h)
	ctx := context.Background()

	if err := a.Put(ctx, "doc1", []byte("payload")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	key := h.sp.Hash([]byte("doc1"))
	owner, err := a.FindSuccessor(ctx, key)
	if err != nil {
		t.Fatalf("FindSuccessor(%d): %v", key, err)
	}

	for _, n := range []*Node{a, b, c} {
		holds := len(n.Documents()) == 1
		if n.Handle().Equal(owner) && !holds {
			t.Fatalf("doc1 not stored at its computed owner %s", owner.ID)
		}
		if !n.Handle().Equal(owner) && holds {
			t.Fatalf("doc1 stored at non-owning node %s, owner is %s", n.Handle().ID, owner.ID)
		}
	}
}

func TestQueryReportsOwnerAndBoundedPath(t *testing.T) {
	h := newHarness(t, 8)
	a, _, _ := ringOf3(t, h)
	ctx := context.Background()

	if err := a.Put(ctx, "doc1", []byte("payload")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	key := h.sp.Hash([]byte("doc1"))
	wantOwner, err := a.FindSuccessor(ctx, key)
	if err != nil {
		t.Fatalf("FindSuccessor(%d): %v", key, err)
	}

	result, err := a.Query(ctx, "doc1")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !result.Found {
		t.Fatalf("Query(doc1).Found = false, want true")
	}
	if !result.Owner.Equal(wantOwner) {
		t.Fatalf("Query(doc1).Owner = %s, want %s", result.Owner.ID, wantOwner.ID)
	}
	if maxHops := 2 * h.sp.Bits; uint(len(result.Path)) > maxHops {
		t.Fatalf("Query(doc1).Path has %d hops, want <= %d", len(result.Path), maxHops)
	}
}

func TestFixFingersConverges(t *testing.T) {
	h := newHarness(t, 8)
	a := h.addNode("a", 10, 3)
	b := h.addNode("b", 100, 3)
	c := h.addNode("c", 200, 3)
	a.CreateRing()

	ctx := context.Background()
	if err := b.Join(ctx, a.Handle()); err != nil {
		t.Fatalf("b.Join: %v", err)
	}
	if err := c.Join(ctx, a.Handle()); err != nil {
		t.Fatalf("c.Join: %v", err)
	}
	for i := 0; i < 10; i++ {
		a.Stabilize(ctx)
		b.Stabilize(ctx)
		c.Stabilize(ctx)
	}

	a.FixFingers(ctx)
	b.FixFingers(ctx)
	c.FixFingers(ctx)

	for _, entry := range a.FingerTable() {
		if entry.Node.IsZero() {
			t.Fatalf("finger at start=%d left unresolved", entry.Start)
		}
	}
}
