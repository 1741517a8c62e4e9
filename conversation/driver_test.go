package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthub-io/agenthub/internal/api"
)

func readyDriver() *Driver {
	d := NewDriver(api.NewClient("http://127.0.0.1:1"))
	d.SetContext(Context{ProjectKey: "ALPHA", BoardID: 7, AIEngine: "ChatGPT"})
	return d
}

func reply(text string) api.ChatReply {
	return api.ChatReply{Response: text}
}

func contents(t *Transcript) []string {
	var out []string
	for _, m := range t.Messages() {
		out = append(out, string(m.Role)+":"+m.Content)
	}
	return out
}

func TestSendRequiresCompleteContext(t *testing.T) {
	d := NewDriver(api.NewClient("http://127.0.0.1:1"))

	_, _, _, err := d.Send("hi")
	require.ErrorIs(t, err, ErrNotReady)
	assert.Zero(t, d.Transcript().Len())

	d.SetContext(Context{ProjectKey: "ALPHA", BoardID: 7})
	assert.False(t, d.CanSend())

	d.SetContext(Context{ProjectKey: "ALPHA", BoardID: 7, AIEngine: "ChatGPT"})
	assert.True(t, d.CanSend())
}

func TestSendRejectsWhitespaceOnly(t *testing.T) {
	d := readyDriver()

	_, _, _, err := d.Send("   \t")
	require.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, d.Transcript().Len())
}

func TestSendAppendsOptimistically(t *testing.T) {
	d := readyDriver()

	seq, gen, req, err := d.Send("show sprint status")
	require.NoError(t, err)
	assert.Equal(t, 0, seq)
	assert.Equal(t, 0, gen)
	assert.Equal(t, "show sprint status", req.UserMessage)
	assert.Equal(t, "ALPHA", req.ProjectKey)
	assert.Equal(t, 7, req.BoardID)
	assert.Equal(t, "chatgpt", req.AIEngine, "backend keys AI configs by lowercase id")

	last, ok := d.Transcript().Last()
	require.True(t, ok)
	assert.Equal(t, RoleUser, last.Role)
	assert.True(t, d.Pending())
}

func TestReplyInOrder(t *testing.T) {
	d := readyDriver()
	seq, gen, _, _ := d.Send("hello")

	d.Apply(gen, seq, reply("hi there"))

	assert.Equal(t, []string{"user:hello", "agent:hi there"}, contents(d.Transcript()))
	assert.False(t, d.Pending())
}

func TestOutOfOrderRepliesAreBuffered(t *testing.T) {
	d := readyDriver()
	seqA, gen, _, _ := d.Send("first")
	seqB, _, _, _ := d.Send("second")

	// The second reply lands before the first.
	d.Apply(gen, seqB, reply("answer two"))
	assert.Equal(t, []string{"user:first", "user:second"}, contents(d.Transcript()),
		"a later reply must not surface ahead of an earlier send")
	assert.Equal(t, []int{seqB}, d.bufferedSeqs())

	d.Apply(gen, seqA, reply("answer one"))
	assert.Equal(t, []string{
		"user:first", "user:second", "agent:answer one", "agent:answer two",
	}, contents(d.Transcript()))
	assert.False(t, d.Pending())
}

func TestFailReleasesTheSlot(t *testing.T) {
	d := readyDriver()
	seqA, gen, _, _ := d.Send("first")
	seqB, _, _, _ := d.Send("second")

	d.Apply(gen, seqB, reply("answer two"))
	d.Fail(gen, seqA)

	msgs := d.Transcript().Messages()
	require.Len(t, msgs, 3)
	assert.True(t, msgs[0].Failed, "the failed send is flagged on its user message")
	assert.Equal(t, "agent:answer two", contents(d.Transcript())[2])
	assert.False(t, d.Pending())
}

func TestClearDiscardsLateReplies(t *testing.T) {
	d := readyDriver()
	seq, gen, _, _ := d.Send("about to be abandoned")

	d.Clear()
	require.Zero(t, d.Transcript().Len())

	// The reply comes back after the clear; it carries the old generation
	// and must vanish without touching the new conversation.
	d.Apply(gen, seq, reply("too late"))
	assert.Zero(t, d.Transcript().Len())
	assert.False(t, d.Pending())

	// A fresh conversation starts from seq zero again.
	seq2, gen2, _, err := d.Send("fresh start")
	require.NoError(t, err)
	assert.Equal(t, 0, seq2)
	assert.Equal(t, gen+1, gen2)
}

func TestReplyMetadataIsCarried(t *testing.T) {
	d := readyDriver()
	seq, gen, _, _ := d.Send("show DEMO-12")

	d.Apply(gen, seq, api.ChatReply{
		Response: "Here is the issue.",
		Metadata: &api.ReplyMetadata{
			IssueCard: &api.IssueCard{Key: "DEMO-12", Summary: "Fix login", Status: "In Progress"},
		},
	})

	last, ok := d.Transcript().Last()
	require.True(t, ok)
	require.NotNil(t, last.Metadata)
	require.NotNil(t, last.Metadata.IssueCard)
	assert.Equal(t, "DEMO-12", last.Metadata.IssueCard.Key)
}

func TestQuickActions(t *testing.T) {
	actions := QuickActions()
	require.Len(t, actions, 4)
	assert.Contains(t, actions, "Show Sprint Status")
}
