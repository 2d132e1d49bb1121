package distributed

import (
	"context"
	"net"
	"net/rpc"
	"sync"

	"github.com/hpcsort/mergesort/internal/errs"
)

// Transport is the inter-rank message-passing interlayer of spec §6's
// "Wire protocol between ranks": each call moves one already-encoded
// message (message tag 0, communicator = the active sub-group formed
// after the power-of-two reduction) between two ranks. Transport
// implementations don't interpret payload bytes; record/codec.go owns
// the wire format.
type Transport interface {
	// Send blocks until the message has been accepted by the destination
	// rank's inbox for the given level.
	Send(ctx context.Context, rank int, level int, payload []byte) error
	// Receive blocks until a message for the given level has arrived in
	// this transport's own inbox, or ctx is canceled. Callers pass their
	// own rank; the implementations in this package do not use it.
	Receive(ctx context.Context, rank int, level int) ([]byte, error)
}

// DeliverArgs is the RPC payload for Transport.Deliver. net/rpc only
// registers methods whose argument types are exported.
type DeliverArgs struct {
	Level   int
	Payload []byte
}

// RPCTransport implements Transport over net/rpc, grounded in the same
// master/worker RPC shape used by the example MapReduce coordinator: one
// rpc.Server per rank accepting Deliver calls, and one rpc.Client per
// peer rank dialed lazily.
type RPCTransport struct {
	rank      int
	addresses []string // addresses[r] is rank r's listen address

	mu      sync.Mutex
	clients map[int]*rpc.Client

	inbox *inboxRegistry

	listener net.Listener
}

// NewRPCTransport starts an RPC server for rank listening on listenAddr
// and returns a Transport that can reach peers at the given addresses
// (indexed by rank).
func NewRPCTransport(rank int, listenAddr string, addresses []string) (*RPCTransport, error) {
	t := &RPCTransport{
		rank:      rank,
		addresses: addresses,
		clients:   make(map[int]*rpc.Client),
		inbox:     newInboxRegistry(),
	}

	srv := rpc.NewServer()
	if err := srv.RegisterName("Transport", (*transportService)(t)); err != nil {
		return nil, errs.MessagingError("registering RPC service: %v", err)
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, errs.MessagingError("listening on %s: %v", listenAddr, err)
	}
	t.listener = ln

	go srv.Accept(ln)
	return t, nil
}

// Close shuts down the RPC server and any dialed client connections.
func (t *RPCTransport) Close() error {
	t.mu.Lock()
	for _, c := range t.clients {
		_ = c.Close()
	}
	t.mu.Unlock()
	if t.listener != nil {
		return t.listener.Close()
	}
	return nil
}

func (t *RPCTransport) clientFor(rank int) (*rpc.Client, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.clients[rank]; ok {
		return c, nil
	}
	c, err := rpc.Dial("tcp", t.addresses[rank])
	if err != nil {
		return nil, errs.MessagingError("dialing rank %d at %s: %v", rank, t.addresses[rank], err)
	}
	t.clients[rank] = c
	return c, nil
}

// Send delivers payload to rank's RPC server.
func (t *RPCTransport) Send(ctx context.Context, rank int, level int, payload []byte) error {
	c, err := t.clientFor(rank)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		var reply struct{}
		done <- c.Call("Transport.Deliver", &DeliverArgs{Level: level, Payload: payload}, &reply)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return errs.MessagingError("sending to rank %d: %v", rank, err)
		}
		return nil
	}
}

// Receive blocks until the sender at the given level has delivered a
// message to this rank's inbox.
func (t *RPCTransport) Receive(ctx context.Context, rank int, level int) ([]byte, error) {
	return t.inbox.await(ctx, level)
}

// transportService is the RPC-exposed half of RPCTransport; it's a
// distinct named type so RegisterName only ever exports Deliver.
type transportService RPCTransport

func (s *transportService) Deliver(args *DeliverArgs, _ *struct{}) error {
	(*RPCTransport)(s).inbox.deliver(args.Level, args.Payload)
	return nil
}

// inboxRegistry buffers one pending payload per level for a rank, since a
// rank receives at most one message per level (spec §4.4.4).
type inboxRegistry struct {
	mu   sync.Mutex
	cond *sync.Cond
	byLevel map[int][]byte
}

func newInboxRegistry() *inboxRegistry {
	r := &inboxRegistry{byLevel: make(map[int][]byte)}
	r.cond = sync.NewCond(&r.mu)
	return r
}

func (r *inboxRegistry) deliver(level int, payload []byte) {
	r.mu.Lock()
	r.byLevel[level] = payload
	r.cond.Broadcast()
	r.mu.Unlock()
}

func (r *inboxRegistry) await(ctx context.Context, level int) ([]byte, error) {
	done := make(chan []byte, 1)
	go func() {
		r.mu.Lock()
		for {
			if p, ok := r.byLevel[level]; ok {
				delete(r.byLevel, level)
				r.mu.Unlock()
				done <- p
				return
			}
			r.cond.Wait()
		}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case p := <-done:
		return p, nil
	}
}
