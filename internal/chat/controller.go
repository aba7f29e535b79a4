package chat

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"focus-guardian/internal/domain/model"
	"focus-guardian/internal/domain/ports/adapter"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrBusy                 = errors.New("a request is already in flight")
	ErrEmptyMessage         = errors.New("message is empty")
	ErrDictationUnsupported = errors.New("dictation is not supported")
)

// Message is one transcript entry. The assistant entry of the current turn
// grows append-only while its stream is being consumed.
type Message struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces the assistant reply for a transcript as an ordered
// chunk stream. The ChatContext is forwarded verbatim; the controller
// never looks inside it.
type Completer interface {
	Complete(ctx context.Context, messages []Message, chatCtx model.ChatContext) (adapter.Stream, error)
}

// Controller drives one chat transcript through user turns: append the
// user message, stream the assistant reply chunk by chunk, return to idle.
// One instance owns its transcript; all methods are safe for concurrent
// use, but only a single request may be in flight at a time.
type Controller struct {
	completer Completer
	dictation Dictation
	log       *zerolog.Logger

	mu         sync.Mutex
	transcript []Message
	draft      string
	inFlight   bool
	listening  bool
	onUpdate   func([]Message)
}

func NewController(completer Completer, dictation Dictation, logger *zerolog.Logger) *Controller {
	return &Controller{
		completer: completer,
		dictation: dictation,
		log:       logger,
	}
}

// SetOnUpdate registers an observer invoked with a transcript snapshot
// after every visible change (user append, assistant append, each chunk).
func (c *Controller) SetOnUpdate(fn func([]Message)) {
	c.mu.Lock()
	c.onUpdate = fn
	c.mu.Unlock()
}

// Transcript returns a copy of the conversation in insertion order.
func (c *Controller) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	c.draft = text
	c.mu.Unlock()
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

func (c *Controller) Listening() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listening
}

// Submit appends text as a user message, clears the draft, and consumes
// the completion stream into a new assistant message. It blocks until the
// stream ends; callers wanting a non-blocking turn run it in a goroutine.
// A second Submit while one is in flight is rejected with ErrBusy. On
// failure the transcript keeps whatever was appended so far, no retry is
// attempted, and the controller returns to idle.
func (c *Controller) Submit(ctx context.Context, text string, chatCtx model.ChatContext) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrBusy
	}
	c.inFlight = true
	c.transcript = append(c.transcript, Message{ID: newMessageID(), Role: RoleUser, Content: text})
	c.draft = ""
	sent := make([]Message, len(c.transcript))
	copy(sent, c.transcript)
	c.mu.Unlock()
	c.notify()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	stream, err := c.completer.Complete(ctx, sent, chatCtx)
	if err != nil {
		c.logErr(err, "chat request failed")
		return err
	}
	defer stream.Close()

	// The assistant message exists only once the stream is open, so a
	// failed request leaves the transcript ending with the user message.
	c.mu.Lock()
	idx := len(c.transcript)
	c.transcript = append(c.transcript, Message{ID: newMessageID(), Role: RoleAssistant})
	c.mu.Unlock()
	c.notify()

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			c.logErr(err, "chat stream interrupted")
			return err
		}
		if chunk == "" {
			continue
		}
		c.mu.Lock()
		c.transcript[idx].Content += chunk
		c.mu.Unlock()
		c.notify()
	}
}

// ToggleListening starts or stops the dictation capability. A finished
// capture appends its transcript to the draft; errors and manual stops
// leave the draft untouched.
func (c *Controller) ToggleListening() error {
	c.mu.Lock()
	if c.dictation == nil {
		c.mu.Unlock()
		return ErrDictationUnsupported
	}
	d := c.dictation
	if c.listening {
		c.listening = false
		c.mu.Unlock()
		d.Stop()
		return nil
	}
	c.listening = true
	c.mu.Unlock()

	if err := d.Start(&dictationSink{c: c}); err != nil {
		c.mu.Lock()
		c.listening = false
		c.mu.Unlock()
		c.logErr(err, "dictation start failed")
		return err
	}
	return nil
}

func (c *Controller) notify() {
	c.mu.Lock()
	fn := c.onUpdate
	var snapshot []Message
	if fn != nil {
		snapshot = make([]Message, len(c.transcript))
		copy(snapshot, c.transcript)
	}
	c.mu.Unlock()
	if fn != nil {
		fn(snapshot)
	}
}

func (c *Controller) logErr(err error, msg string) {
	if c.log != nil {
		c.log.Error().Err(err).Msg(msg)
	}
}

// dictationSink routes capability callbacks back into controller state.
type dictationSink struct {
	c *Controller
}

func (s *dictationSink) OnResult(transcript string) {
	s.c.mu.Lock()
	if s.c.draft != "" {
		s.c.draft += " "
	}
	s.c.draft += transcript
	s.c.listening = false
	s.c.mu.Unlock()
}

func (s *dictationSink) OnError(err error) {
	s.c.logErr(err, "dictation error")
	s.c.mu.Lock()
	s.c.listening = false
	s.c.mu.Unlock()
}

func (s *dictationSink) OnEnd() {
	s.c.mu.Lock()
	s.c.listening = false
	s.c.mu.Unlock()
}

// ULIDs keep message IDs unique and sortable in insertion order.
func newMessageID() string {
	return ulid.Make().String()
}
