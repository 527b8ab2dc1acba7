package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/peterh/liner"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"chorddht/internal/api/chordpb"
	"chorddht/internal/chordspace"
)

// chordctl is an interactive client for a running ring: it resolves a
// document's owner with FindSuccessor and then talks to that owner
// directly, the same two-hop pattern any ring member uses internally.
func main() {
	addr := flag.String("addr", "127.0.0.1:4000", "address of any ring node (entry point)")
	bits := flag.Uint("bits", 32, "identifier space size in bits, must match the ring")
	timeout := flag.Duration("timeout", 5*time.Second, "request timeout")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	sp, err := chordspace.NewSpace(*bits)
	if err != nil {
		log.Fatalf("invalid -bits: %v", err)
	}

	conn, err := dial(*addr)
	if err != nil {
		log.Fatalf("failed to connect to %s: %v", *addr, err)
	}
	currentAddr := *addr
	client := chordpb.NewChordClient(conn)

	fmt.Printf("chordctl connected to %s\n", currentAddr)
	fmt.Println("Commands: put <key> <val> | get <key> | delete <key> | lookup <key> | rt | use <addr> | exit")

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt(fmt.Sprintf("chord[%s]> ", currentAddr))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println("aborted")
				continue
			}
			break
		}
		line.AppendHistory(input)

		args := strings.Fields(strings.TrimSpace(input))
		if len(args) == 0 {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		switch args[0] {
		case "put":
			if len(args) < 3 {
				fmt.Println("usage: put <key> <value>")
				break
			}
			runPut(ctx, client, sp, conn, currentAddr, args[1], args[2])
		case "get":
			if len(args) < 2 {
				fmt.Println("usage: get <key>")
				break
			}
			runGet(ctx, client, sp, conn, currentAddr, args[1])
		case "delete":
			if len(args) < 2 {
				fmt.Println("usage: delete <key>")
				break
			}
			runDelete(ctx, client, sp, conn, currentAddr, args[1])
		case "lookup":
			if len(args) < 2 {
				fmt.Println("usage: lookup <key>")
				break
			}
			runLookup(ctx, client, sp, args[1])
		case "rt":
			runRoutingTable(ctx, client)
		case "use":
			if len(args) < 2 {
				fmt.Println("usage: use <addr>")
				break
			}
			newConn, err := dial(args[1])
			if err != nil {
				fmt.Printf("failed to connect to %s: %v\n", args[1], err)
				break
			}
			_ = conn.Close()
			conn = newConn
			client = chordpb.NewChordClient(conn)
			currentAddr = args[1]
			fmt.Printf("switched connection to %s\n", currentAddr)
		case "exit", "quit":
			cancel()
			fmt.Println("bye")
			return
		default:
			fmt.Printf("unknown command: %s\n", args[0])
		}
		cancel()
	}
}

func dial(addr string) (*grpc.ClientConn, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return grpc.DialContext(ctx, addr, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithBlock())
}

// resolveOwner finds the document's owner starting from entry, the
// node chordctl is currently connected to.
func resolveOwner(ctx context.Context, entry chordpb.ChordClient, sp chordspace.Space, name string) (*chordpb.NodeHandle, error) {
	key := sp.Hash([]byte(name))
	reply, err := entry.FindSuccessor(ctx, &chordpb.FindSuccessorRequest{Key: uint64(key)})
	if err != nil {
		return nil, err
	}
	return reply.GetNode(), nil
}

func dialOwner(owner *chordpb.NodeHandle, fallbackConn *grpc.ClientConn, fallbackAddr string) (chordpb.ChordClient, func(), error) {
	if owner == nil || owner.Endpoint == fallbackAddr {
		return chordpb.NewChordClient(fallbackConn), func() {}, nil
	}
	conn, err := dial(owner.Endpoint)
	if err != nil {
		return nil, nil, err
	}
	return chordpb.NewChordClient(conn), func() { _ = conn.Close() }, nil
}

func runPut(ctx context.Context, entry chordpb.ChordClient, sp chordspace.Space, conn *grpc.ClientConn, entryAddr, name, value string) {
	start := time.Now()
	owner, err := resolveOwner(ctx, entry, sp, name)
	if err != nil {
		fmt.Printf("put failed: lookup: %v | latency=%s\n", err, time.Since(start))
		return
	}
	ownerClient, closeFn, err := dialOwner(owner, conn, entryAddr)
	if err != nil {
		fmt.Printf("put failed: dial owner: %v | latency=%s\n", err, time.Since(start))
		return
	}
	defer closeFn()

	_, err = ownerClient.StoreDocument(ctx, &chordpb.StoreDocumentRequest{
		Document: &chordpb.Document{Key: uint64(sp.Hash([]byte(name))), Name: name, Value: []byte(value)},
	})
	if err != nil {
		fmt.Printf("put failed: %v | latency=%s\n", err, time.Since(start))
		return
	}
	fmt.Printf("put ok: key=%s owner=%s | latency=%s\n", name, owner.GetId(), time.Since(start))
}

func runGet(ctx context.Context, entry chordpb.ChordClient, sp chordspace.Space, conn *grpc.ClientConn, entryAddr, name string) {
	start := time.Now()
	owner, err := resolveOwner(ctx, entry, sp, name)
	if err != nil {
		fmt.Printf("get failed: lookup: %v | latency=%s\n", err, time.Since(start))
		return
	}
	ownerClient, closeFn, err := dialOwner(owner, conn, entryAddr)
	if err != nil {
		fmt.Printf("get failed: dial owner: %v | latency=%s\n", err, time.Since(start))
		return
	}
	defer closeFn()

	reply, err := ownerClient.RetrieveDocument(ctx, &chordpb.RetrieveDocumentRequest{Name: name})
	if err != nil {
		fmt.Printf("get failed: %v | latency=%s\n", err, time.Since(start))
		return
	}
	if !reply.Found {
		fmt.Printf("key not found: %s | latency=%s\n", name, time.Since(start))
		return
	}
	fmt.Printf("get ok: key=%s value=%s owner=%s | latency=%s\n", name, reply.Document.GetValue(), owner.GetId(), time.Since(start))
}

func runDelete(ctx context.Context, entry chordpb.ChordClient, sp chordspace.Space, conn *grpc.ClientConn, entryAddr, name string) {
	start := time.Now()
	owner, err := resolveOwner(ctx, entry, sp, name)
	if err != nil {
		fmt.Printf("delete failed: lookup: %v | latency=%s\n", err, time.Since(start))
		return
	}
	ownerClient, closeFn, err := dialOwner(owner, conn, entryAddr)
	if err != nil {
		fmt.Printf("delete failed: dial owner: %v | latency=%s\n", err, time.Since(start))
		return
	}
	defer closeFn()

	_, err = ownerClient.RemoveDocument(ctx, &chordpb.RemoveDocumentRequest{Name: name})
	if err != nil {
		fmt.Printf("delete failed: %v | latency=%s\n", err, time.Since(start))
		return
	}
	fmt.Printf("delete ok: key=%s | latency=%s\n", name, time.Since(start))
}

func runLookup(ctx context.Context, entry chordpb.ChordClient, sp chordspace.Space, key string) {
	start := time.Now()
	owner, err := resolveOwner(ctx, entry, sp, key)
	if err != nil {
		fmt.Printf("lookup failed: %v | latency=%s\n", err, time.Since(start))
		return
	}
	fmt.Printf("lookup ok: successor=%s (%s) | latency=%s\n", owner.GetId(), owner.GetEndpoint(), time.Since(start))
}

func runRoutingTable(ctx context.Context, client chordpb.ChordClient) {
	pred, err := client.GetPredecessor(ctx, &chordpb.Empty{})
	if err != nil {
		fmt.Printf("get_predecessor failed: %v\n", err)
		return
	}
	succs, err := client.GetSuccessors(ctx, &chordpb.Empty{})
	if err != nil {
		fmt.Printf("get_successors failed: %v\n", err)
		return
	}
	fmt.Println("routing table:")
	if pred.Present {
		fmt.Printf("  predecessor: %s (%s)\n", pred.Node.GetId(), pred.Node.GetEndpoint())
	} else {
		fmt.Println("  predecessor: none")
	}
	fmt.Println("  successors:")
	for i, s := range succs.Nodes {
		fmt.Printf("    [%d] %s (%s)\n", i, s.GetId(), s.GetEndpoint())
	}
}
