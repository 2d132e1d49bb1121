package distributed

import "context"

// LocalTransport is an in-process Transport used by tests and by the
// single-machine integration path: ranks address each other via the same
// slice of inboxRegistry values rather than real sockets, while still exercising
// the exact Send/Receive contract RPCTransport implements over the wire.
type LocalTransport struct {
	rank    int
	inboxes []*inboxRegistry
}

// NewLocalTransports builds one LocalTransport per rank, all sharing the
// same set of inboxes so any rank can deliver directly to any other.
func NewLocalTransports(n int) []*LocalTransport {
	inboxes := make([]*inboxRegistry, n)
	for i := range inboxes {
		inboxes[i] = newInboxRegistry()
	}
	out := make([]*LocalTransport, n)
	for i := range out {
		out[i] = &LocalTransport{rank: i, inboxes: inboxes}
	}
	return out
}

func (t *LocalTransport) Send(ctx context.Context, rank int, level int, payload []byte) error {
	t.inboxes[rank].deliver(level, payload)
	return nil
}

func (t *LocalTransport) Receive(ctx context.Context, rank int, level int) ([]byte, error) {
	return t.inboxes[t.rank].await(ctx, level)
}
