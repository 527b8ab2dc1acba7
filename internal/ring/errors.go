package ring

import "errors"

var (
	// ErrLookupDiverged is returned when find_successor exceeds its hop
	// bound without converging, even after retrying once from the
	// node's own successor.
	ErrLookupDiverged = errors.New("ring: lookup diverged")

	// ErrNotResponsible names a key that lands on a node which is not
	// its current owner. No operation in this package returns it;
	// document operations route to the owner through FindSuccessor.
	ErrNotResponsible = errors.New("ring: node not responsible for key")

	// ErrAlone names a node that is a single-node ring. No operation in
	// this package returns it; a lone node answers every lookup itself.
	ErrAlone = errors.New("ring: node has no peers")

	// ErrDead is returned by any operation attempted on a node that has
	// left or failed.
	ErrDead = errors.New("ring: node is not running")
)
