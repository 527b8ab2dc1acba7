// chordsim is a menu-driven, single-process simulation of a Chord
// ring: every node lives in this one process, dialed through
// internal/rpc/local rather than a socket, so ring behavior under
// join/leave/fail churn can be driven and inspected interactively
// without standing up a network.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"

	"chorddht/internal/chordspace"
	"chorddht/internal/directory"
	"chorddht/internal/logger"
	"chorddht/internal/ring"
	"chorddht/internal/rpc/local"
)

type simulation struct {
	sp     chordspace.Space
	dir    *directory.Directory
	dialer *local.Dialer
	lgr    logger.Logger
}

func newSimulation(bits uint, lgr logger.Logger) *simulation {
	sp, err := chordspace.NewSpace(bits)
	if err != nil {
		panic(err)
	}
	dir := directory.New(sp)
	return &simulation{sp: sp, dir: dir, dialer: local.New(dir), lgr: lgr}
}

func (s *simulation) node(id string) (*ring.Node, bool) {
	reg, ok := s.dir.Lookup(id)
	if !ok {
		return nil, false
	}
	n, ok := reg.(*ring.Node)
	return n, ok
}

// addNode allocates id through the directory and bootstraps it into
// the ring, joining through any already-running node or starting a
// fresh ring if this is the first one.
func (s *simulation) addNode(ctx context.Context, id string) (*ring.Node, error) {
	n, err := s.dir.NewNode(id, 3, s.dialer, s.lgr)
	if err != nil {
		return nil, err
	}
	if _, err := s.dir.Bootstrap(ctx, n); err != nil {
		s.dir.Deregister(id)
		return nil, err
	}
	return n, nil
}

func randomHexID(bits uint) string {
	nbytes := (bits + 7) / 8
	b := make([]byte, nbytes)
	_, _ = rand.Read(b)
	if rem := bits % 8; rem != 0 {
		b[0] &= byte((1 << rem) - 1)
	}
	return hex.EncodeToString(b)
}

func main() {
	bits := flag.Uint("bits", 16, "identifier space size in bits")
	flag.Parse()

	lgr := logger.NopLogger{}
	sim := newSimulation(*bits, lgr)

	fmt.Println("chord ring simulation — type a number, or press enter for the menu")
	printMenu()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("chordsim> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			break
		}
		input = strings.TrimSpace(input)
		if input == "" {
			printMenu()
			continue
		}
		line.AppendHistory(input)

		choice, err := strconv.Atoi(input)
		if err != nil || choice < 1 || choice > 11 {
			fmt.Println("out of range, pick a menu number")
			continue
		}
		if choice == 11 {
			fmt.Println("bye")
			return
		}
		dispatch(sim, choice, line)
	}
}

func printMenu() {
	fmt.Println(`
 1) add-node            7) stabilize-node
 2) add-document        8) fix-fingers
 3) query-document      9) stabilize-all
 4) print-ring         10) fail
 5) print-node         11) exit
 6) leave`)
}

func dispatch(sim *simulation, choice int, line *liner.State) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch choice {
	case 1:
		cmdAddNode(ctx, sim, line)
	case 2:
		cmdAddDocument(ctx, sim, line)
	case 3:
		cmdQueryDocument(ctx, sim, line)
	case 4:
		cmdPrintRing(sim, line)
	case 5:
		cmdPrintNode(sim, line)
	case 6:
		cmdLeave(ctx, sim, line)
	case 7:
		cmdStabilizeNode(ctx, sim, line)
	case 8:
		cmdFixFingers(ctx, sim, line)
	case 9:
		cmdStabilizeAll(ctx, sim)
	case 10:
		cmdFail(sim, line)
	}
}

func prompt(line *liner.State, label string) (string, bool) {
	in, err := line.Prompt(label)
	if err != nil || strings.TrimSpace(in) == "" {
		return "", false
	}
	return strings.TrimSpace(in), true
}

func cmdAddNode(ctx context.Context, sim *simulation, line *liner.State) {
	idArg, ok := prompt(line, "node id (hex, or a decimal N for N random ids)> ")
	if !ok {
		return
	}
	if n, err := strconv.Atoi(idArg); err == nil && n > 0 {
		for i := 0; i < n; i++ {
			id := randomHexID(sim.sp.Bits)
			if _, err := sim.addNode(ctx, id); err != nil {
				fmt.Printf("add-node %s failed: %v\n", id, err)
				continue
			}
			fmt.Printf("added node %s\n", id)
		}
		return
	}
	if _, err := sim.addNode(ctx, idArg); err != nil {
		fmt.Printf("add-node failed: %v\n", err)
		return
	}
	fmt.Printf("added node %s\n", idArg)
}

func cmdAddDocument(ctx context.Context, sim *simulation, line *liner.State) {
	name, ok := prompt(line, "filename> ")
	if !ok {
		return
	}
	data, ok := prompt(line, "data> ")
	if !ok {
		return
	}
	ctxNode, ok := prompt(line, "context node id> ")
	if !ok {
		return
	}
	n, exists := sim.node(ctxNode)
	if !exists {
		fmt.Printf("no such node: %s\n", ctxNode)
		return
	}
	if err := n.Put(ctx, name, []byte(data)); err != nil {
		fmt.Printf("add-document failed: %v\n", err)
		return
	}
	fmt.Println("stored")
}

func cmdQueryDocument(ctx context.Context, sim *simulation, line *liner.State) {
	name, ok := prompt(line, "filename> ")
	if !ok {
		return
	}
	ctxNode, ok := prompt(line, "context node id> ")
	if !ok {
		return
	}
	n, exists := sim.node(ctxNode)
	if !exists {
		fmt.Printf("no such node: %s\n", ctxNode)
		return
	}
	result, err := n.Query(ctx, name)
	if err != nil {
		fmt.Printf("query-document failed: %v\n", err)
		return
	}
	fmt.Println(directory.RenderQueryResult(name, result))
}

func cmdPrintRing(sim *simulation, line *liner.State) {
	withFingers, _ := prompt(line, "show finger tables? (y/N)> ")
	fmt.Print(sim.dir.RenderRing(strings.EqualFold(withFingers, "y")))
}

func cmdPrintNode(sim *simulation, line *liner.State) {
	id, ok := prompt(line, "node id> ")
	if !ok {
		return
	}
	n, exists := sim.node(id)
	if !exists {
		fmt.Printf("no such node: %s\n", id)
		return
	}
	fmt.Print(directory.RenderNode(n))
}

func cmdStabilizeNode(ctx context.Context, sim *simulation, line *liner.State) {
	id, ok := prompt(line, "node id> ")
	if !ok {
		return
	}
	n, exists := sim.node(id)
	if !exists {
		fmt.Printf("no such node: %s\n", id)
		return
	}
	n.Stabilize(ctx)
	fmt.Println("stabilized")
}

func cmdFixFingers(ctx context.Context, sim *simulation, line *liner.State) {
	id, ok := prompt(line, "node id> ")
	if !ok {
		return
	}
	n, exists := sim.node(id)
	if !exists {
		fmt.Printf("no such node: %s\n", id)
		return
	}
	n.FixFingers(ctx)
	fmt.Println("fingers fixed")
}

func cmdStabilizeAll(ctx context.Context, sim *simulation) {
	sim.dir.StabilizeAll(ctx)
	sim.dir.FixFingersAll(ctx)
	fmt.Println("stabilized all nodes")
}

func cmdLeave(ctx context.Context, sim *simulation, line *liner.State) {
	id, ok := prompt(line, "node id> ")
	if !ok {
		return
	}
	n, exists := sim.node(id)
	if !exists {
		fmt.Printf("no such node: %s\n", id)
		return
	}
	if err := n.Leave(ctx); err != nil {
		fmt.Printf("leave failed: %v\n", err)
		return
	}
	sim.dir.Deregister(id)
	fmt.Println("left ring")
}

// cmdFail simulates a crash: the node goes dead in place, still
// registered in the directory (so dialing it still resolves, and
// fails the way a dead socket would), with no graceful handoff.
func cmdFail(sim *simulation, line *liner.State) {
	id, ok := prompt(line, "node id> ")
	if !ok {
		return
	}
	n, exists := sim.node(id)
	if !exists {
		fmt.Printf("no such node: %s\n", id)
		return
	}
	n.Fail()
	fmt.Println("node failed")
}
