// Package flow drives multi-step conversations as an explicit state machine.
// Every flow is a named graph of steps; the engine owns session state, back
// navigation, and the single step-boundary error wrapper.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/ulugdev/yordamchi/internal/catalog"
	"github.com/ulugdev/yordamchi/internal/logger"
)

// StepID identifies a registered conversation step.
type StepID string

// Location is a shared coordinate pair from the transport.
type Location struct {
	Lat float64
	Lon float64
}

// Event is a normalized inbound message.
type Event struct {
	Sender   int64
	Username string
	Text     string
	Location *Location
}

// Reply is outbound text plus the keyboard to present next.
type Reply struct {
	Text     string
	Keyboard catalog.Keyboard
}

// OutcomeKind enumerates step results.
type OutcomeKind int

const (
	// KindPrompt emits text and transitions to the next step.
	KindPrompt OutcomeKind = iota
	// KindTerminal emits text and returns the sender to the root menu.
	KindTerminal
	// KindRetry emits corrective text and re-enters the same step.
	KindRetry
)

// Outcome is the result of one step execution.
type Outcome struct {
	Kind  OutcomeKind
	Reply Reply
	Next  StepID
	Bind  map[string]any
}

// Prompt emits a reply, binds parameters, and awaits input at next.
func Prompt(reply Reply, next StepID, bind map[string]any) Outcome {
	return Outcome{Kind: KindPrompt, Reply: reply, Next: next, Bind: bind}
}

// Terminal emits text and clears the session; the engine attaches the root
// menu keyboard.
func Terminal(text string) Outcome {
	return Outcome{Kind: KindTerminal, Reply: Reply{Text: text}}
}

// Retry emits corrective text and keeps the current step pending.
func Retry(reply Reply) Outcome {
	return Outcome{Kind: KindRetry, Reply: reply}
}

// Step is one unit of conversation state.
type Step struct {
	ID StepID
	// Parent receives the sender on the back label; empty means root menu.
	Parent StepID
	// Prompt builds the reply shown when the step is entered.
	Prompt func(s *Session) Reply
	// BackReply overrides Prompt when the step is re-entered via back
	// navigation from a child step. Optional.
	BackReply func(s *Session) Reply
	// Handle consumes the next input event once the step is pending.
	Handle func(ctx context.Context, s *Session, ev Event) (Outcome, error)
}

// SendFunc delivers a reply to a sender through the transport.
type SendFunc func(ctx context.Context, recipient int64, reply Reply) error

// Engine is the registry of steps plus the dispatch loop.
type Engine struct {
	steps    map[StepID]*Step
	entries  map[string]StepID
	sessions SessionStore
	send     SendFunc
	rootMenu func(userID int64) catalog.Keyboard

	rootText string
	failText string
}

// Options configures NewEngine.
type Options struct {
	Sessions SessionStore
	Send     SendFunc
	// RootMenu builds the root keyboard for a sender (admin row included for
	// allow-listed ids).
	RootMenu func(userID int64) catalog.Keyboard
}

// NewEngine builds an empty engine.
func NewEngine(opts Options) *Engine {
	sessions := opts.Sessions
	if sessions == nil {
		sessions = NewMemoryStore()
	}
	return &Engine{
		steps:    make(map[StepID]*Step),
		entries:  make(map[string]StepID),
		sessions: sessions,
		send:     opts.Send,
		rootMenu: opts.RootMenu,
		rootText: "🏠 Asosiy menyuga qaytdik!",
		failText: "⚠️ Xatolik yuz berdi. Qaytadan urinib ko‘ring.",
	}
}

// Register adds a step to the graph. Duplicate or malformed registrations are
// rejected so the reachable state space stays enumerable.
func (e *Engine) Register(step *Step) error {
	if step == nil || step.ID == "" || step.Handle == nil {
		return fmt.Errorf("flow: invalid step registration")
	}
	if _, exists := e.steps[step.ID]; exists {
		return fmt.Errorf("flow: step already registered: %s", step.ID)
	}
	e.steps[step.ID] = step
	return nil
}

// MustRegister registers a step and panics on wiring mistakes. Wiring runs
// once at startup.
func (e *Engine) MustRegister(step *Step) {
	if err := e.Register(step); err != nil {
		panic(err)
	}
}

// Entry binds a root-menu label to a flow's first step.
func (e *Engine) Entry(label string, step StepID) {
	e.entries[label] = step
}

// Steps returns the ids of all registered steps, for diagnostics and tests.
func (e *Engine) Steps() []StepID {
	ids := make([]StepID, 0, len(e.steps))
	for id := range e.steps {
		ids = append(ids, id)
	}
	return ids
}

// Reset drops the sender's pending session, if any.
func (e *Engine) Reset(userID int64) {
	e.sessions.Clear(userID)
}

// Session returns the sender's current session, if any.
func (e *Engine) Session(userID int64) (*Session, bool) {
	return e.sessions.Get(userID)
}

// EnterStep opens a step for the sender: emits its prompt and marks it
// pending. Any previous session is overwritten.
func (e *Engine) EnterStep(ctx context.Context, ev Event, id StepID) error {
	step, ok := e.steps[id]
	if !ok {
		return fmt.Errorf("flow: unknown step: %s", id)
	}
	sess := &Session{UserID: ev.Sender, Username: ev.Username, Step: id}
	if step.Prompt == nil {
		return fmt.Errorf("flow: step %s has no prompt", id)
	}
	if err := e.send(ctx, ev.Sender, step.Prompt(sess)); err != nil {
		return err
	}
	e.sessions.Put(sess)
	return nil
}

// HandleEvent routes one inbound event. It reports whether the event was
// consumed (a pending step existed or a flow entry matched); unconsumed
// events fall through to the caller's fallback handling.
func (e *Engine) HandleEvent(ctx context.Context, ev Event) (bool, error) {
	if sess, ok := e.sessions.Get(ev.Sender); ok {
		return true, e.dispatch(ctx, sess, ev)
	}
	if id, ok := e.entries[ev.Text]; ok {
		return true, e.EnterStep(ctx, ev, id)
	}
	return false, nil
}

func (e *Engine) dispatch(ctx context.Context, sess *Session, ev Event) error {
	step, ok := e.steps[sess.Step]
	if !ok {
		// A stale session referencing an unregistered step cannot recover.
		logger.FLOW.Error("pending step missing",
			slog.String("event", "flow.dispatch"),
			slog.Int64("user_id", ev.Sender),
			slog.String("step", string(sess.Step)),
			logger.RID(ctx),
		)
		return e.toRoot(ctx, ev.Sender, e.failText)
	}

	// The back label is reserved at every step and is never data.
	if ev.Text == catalog.BackLabel {
		return e.goBack(ctx, sess, step)
	}

	out, err := e.safeHandle(ctx, step, sess, ev)
	if err != nil {
		logger.FLOW.Error("step failed",
			slog.String("event", "flow.step"),
			slog.Int64("user_id", ev.Sender),
			slog.String("step", string(step.ID)),
			slog.String("err", err.Error()),
			logger.RID(ctx),
		)
		return e.toRoot(ctx, ev.Sender, e.failText)
	}

	switch out.Kind {
	case KindPrompt:
		sess.Bind(out.Bind)
		sess.Step = out.Next
		if err := e.send(ctx, ev.Sender, out.Reply); err != nil {
			return err
		}
		e.sessions.Put(sess)
		return nil
	case KindRetry:
		return e.send(ctx, ev.Sender, out.Reply)
	case KindTerminal:
		out.Reply.Keyboard = e.rootMenu(ev.Sender)
		e.sessions.Clear(ev.Sender)
		return e.send(ctx, ev.Sender, out.Reply)
	default:
		return fmt.Errorf("flow: step %s returned unknown outcome kind %d", step.ID, out.Kind)
	}
}

// safeHandle is the single step boundary: panics and errors from any step are
// caught here and converted into a generic failure reply by the caller.
func (e *Engine) safeHandle(ctx context.Context, step *Step, sess *Session, ev Event) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FLOW.Error("step panic recovered",
				slog.String("event", "flow.panic"),
				slog.String("step", string(step.ID)),
				slog.Any("err", r),
				slog.String("stack", string(debug.Stack())),
				logger.RID(ctx),
			)
			err = fmt.Errorf("flow: step %s panicked: %v", step.ID, r)
		}
	}()
	return step.Handle(ctx, sess, ev)
}

func (e *Engine) goBack(ctx context.Context, sess *Session, step *Step) error {
	if step.Parent == "" {
		return e.toRoot(ctx, sess.UserID, e.rootText)
	}
	parent, ok := e.steps[step.Parent]
	if !ok {
		return e.toRoot(ctx, sess.UserID, e.rootText)
	}
	reply := parent.Prompt(sess)
	if parent.BackReply != nil {
		reply = parent.BackReply(sess)
	}
	sess.Step = parent.ID
	if err := e.send(ctx, sess.UserID, reply); err != nil {
		return err
	}
	e.sessions.Put(sess)
	return nil
}

func (e *Engine) toRoot(ctx context.Context, userID int64, text string) error {
	e.sessions.Clear(userID)
	return e.send(ctx, userID, Reply{
		Text:     text,
		Keyboard: e.rootMenu(userID),
	})
}
