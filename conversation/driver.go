package conversation

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/agenthub-io/agenthub/internal/api"
)

// ErrNotReady is returned by Send when the routing context is incomplete.
var ErrNotReady = errors.New("a project, board and AI engine must be selected before chatting")

// ErrEmptyMessage is returned by Send for whitespace-only content.
var ErrEmptyMessage = errors.New("message is empty")

// Context is the routing information every chat request carries. The driver
// refuses to send until all three fields are set.
type Context struct {
	ProjectKey string
	BoardID    int
	AIEngine   string
}

// Complete reports whether the context can route a message.
func (c Context) Complete() bool {
	return c.ProjectKey != "" && c.BoardID != 0 && c.AIEngine != ""
}

// pendingReply is a backend answer that arrived ahead of an earlier send
// still in flight. It is held back until its turn.
type pendingReply struct {
	reply api.ChatReply
	err   error
}

// Driver sequences sends and replies. Each send gets a strictly increasing
// seq; replies are applied to the transcript in seq order regardless of the
// order they come back in. Clearing the conversation bumps the generation,
// which invalidates every reply still in flight.
type Driver struct {
	api *api.Client

	transcript Transcript
	ctx        Context

	gen      int
	nextSeq  int
	nextDone int
	buffered map[int]pendingReply
	inflight int
}

// NewDriver creates a driver for the given client.
func NewDriver(client *api.Client) *Driver {
	return &Driver{
		api:      client,
		buffered: make(map[int]pendingReply),
	}
}

// SetContext updates the routing context for subsequent sends. Messages
// already in flight keep the context they were sent with.
func (d *Driver) SetContext(ctx Context) {
	d.ctx = ctx
}

// Context returns the current routing context.
func (d *Driver) Context() Context {
	return d.ctx
}

// CanSend reports whether a message could be sent right now.
func (d *Driver) CanSend() bool {
	return d.ctx.Complete()
}

// Pending reports whether any send is still awaiting a reply.
func (d *Driver) Pending() bool {
	return d.inflight > 0
}

// Transcript exposes the message log for rendering.
func (d *Driver) Transcript() *Transcript {
	return &d.transcript
}

// Generation returns the current conversation generation. Replies carrying
// an older generation are stale and must be handed to Discard.
func (d *Driver) Generation() int {
	return d.gen
}

// Send appends the user message optimistically and returns the seq, the
// generation and the request to perform. The caller runs the request off
// the update loop and feeds the outcome back through Apply or Fail.
func (d *Driver) Send(content string) (seq, gen int, req api.ChatRequest, err error) {
	if !d.ctx.Complete() {
		return 0, 0, api.ChatRequest{}, ErrNotReady
	}
	if strings.TrimSpace(content) == "" {
		return 0, 0, api.ChatRequest{}, ErrEmptyMessage
	}

	seq = d.nextSeq
	d.nextSeq++
	d.inflight++
	d.transcript.append(seq, RoleUser, content, nil)

	// The backend keys AI configs by lowercase engine id.
	req = api.ChatRequest{
		UserMessage: content,
		ProjectKey:  d.ctx.ProjectKey,
		BoardID:     d.ctx.BoardID,
		AIEngine:    strings.ToLower(d.ctx.AIEngine),
	}
	return seq, d.gen, req, nil
}

// Apply records a successful reply for seq. If an earlier send is still in
// flight the reply is buffered and surfaces only after its predecessors, so
// the transcript always reads in send order. Stale generations are dropped.
func (d *Driver) Apply(gen, seq int, reply api.ChatReply) {
	if gen != d.gen {
		return
	}
	d.buffered[seq] = pendingReply{reply: reply}
	d.flush()
}

// Fail records a failed send for seq. The user message is marked failed and
// the slot is released so later replies can surface.
func (d *Driver) Fail(gen, seq int) {
	if gen != d.gen {
		return
	}
	d.buffered[seq] = pendingReply{err: errors.New("send failed")}
	d.flush()
}

// flush applies buffered outcomes in seq order until it hits a gap.
func (d *Driver) flush() {
	for {
		outcome, ok := d.buffered[d.nextDone]
		if !ok {
			return
		}
		delete(d.buffered, d.nextDone)
		if outcome.err != nil {
			d.transcript.markFailed(d.nextDone)
		} else {
			d.transcript.append(d.nextDone, RoleAgent, outcome.reply.Response, outcome.reply.Metadata)
		}
		d.nextDone++
		d.inflight--
	}
}

// Clear discards the transcript and every reply still in flight. The
// generation bump makes late arrivals no-ops.
func (d *Driver) Clear() {
	d.gen++
	d.transcript = Transcript{}
	d.buffered = make(map[int]pendingReply)
	d.nextSeq = 0
	d.nextDone = 0
	d.inflight = 0
}

// Do performs the chat request. It exists so the update loop's command can
// stay a one-liner.
func (d *Driver) Do(ctx context.Context, req api.ChatRequest) (api.ChatReply, error) {
	return d.api.SendChat(ctx, req)
}

// QuickActions returns the canned prompts surfaced as one-tap buttons.
func QuickActions() []string {
	return []string{
		"Create Sprint",
		"Show Sprint Status",
		"View Backlog",
		"Generate Report",
	}
}

// bufferedSeqs is a test hook listing the held-back seqs in order.
func (d *Driver) bufferedSeqs() []int {
	seqs := make([]int, 0, len(d.buffered))
	for s := range d.buffered {
		seqs = append(seqs, s)
	}
	sort.Ints(seqs)
	return seqs
}
