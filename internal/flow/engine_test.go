package flow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ulugdev/yordamchi/internal/catalog"
)

type sentReply struct {
	recipient int64
	reply     Reply
}

func rootKeyboard() catalog.Keyboard {
	return catalog.Keyboard{Rows: [][]string{{"root"}}}
}

func newTestEngine() (*Engine, *[]sentReply) {
	var sent []sentReply
	e := NewEngine(Options{
		Send: func(_ context.Context, recipient int64, reply Reply) error {
			sent = append(sent, sentReply{recipient: recipient, reply: reply})
			return nil
		},
		RootMenu: func(int64) catalog.Keyboard { return rootKeyboard() },
	})
	return e, &sent
}

func TestEntryOpensFlowAndTerminalClearsSession(t *testing.T) {
	e, sent := newTestEngine()
	e.MustRegister(&Step{
		ID: "greet",
		Prompt: func(*Session) Reply {
			return Reply{Text: "ismingiz?"}
		},
		Handle: func(_ context.Context, _ *Session, ev Event) (Outcome, error) {
			return Terminal("salom " + ev.Text), nil
		},
	})
	e.Entry("👋 Salomlashish", "greet")

	consumed, err := e.HandleEvent(context.Background(), Event{Sender: 7, Text: "👋 Salomlashish"})
	require.NoError(t, err)
	require.True(t, consumed)
	require.Len(t, *sent, 1)
	assert.Equal(t, "ismingiz?", (*sent)[0].reply.Text)

	sess, ok := e.Session(7)
	require.True(t, ok)
	assert.Equal(t, StepID("greet"), sess.Step)

	consumed, err = e.HandleEvent(context.Background(), Event{Sender: 7, Text: "Aziz"})
	require.NoError(t, err)
	require.True(t, consumed)
	require.Len(t, *sent, 2)
	assert.Equal(t, "salom Aziz", (*sent)[1].reply.Text)
	assert.Equal(t, rootKeyboard(), (*sent)[1].reply.Keyboard)

	_, ok = e.Session(7)
	assert.False(t, ok)
}

func TestUnknownTextNotConsumed(t *testing.T) {
	e, sent := newTestEngine()

	consumed, err := e.HandleEvent(context.Background(), Event{Sender: 1, Text: "nimadir"})
	require.NoError(t, err)
	assert.False(t, consumed)
	assert.Empty(t, *sent)
}

func TestBackWithoutParentReturnsToRoot(t *testing.T) {
	e, sent := newTestEngine()
	e.MustRegister(&Step{
		ID:     "alone",
		Prompt: func(*Session) Reply { return Reply{Text: "kiriting"} },
		Handle: func(context.Context, *Session, Event) (Outcome, error) {
			return Terminal("ok"), nil
		},
	})
	require.NoError(t, e.EnterStep(context.Background(), Event{Sender: 3}, "alone"))

	consumed, err := e.HandleEvent(context.Background(), Event{Sender: 3, Text: catalog.BackLabel})
	require.NoError(t, err)
	require.True(t, consumed)
	require.Len(t, *sent, 2)
	assert.Equal(t, "🏠 Asosiy menyuga qaytdik!", (*sent)[1].reply.Text)
	assert.Equal(t, rootKeyboard(), (*sent)[1].reply.Keyboard)

	_, ok := e.Session(3)
	assert.False(t, ok)
}

func TestBackUsesParentBackReply(t *testing.T) {
	e, sent := newTestEngine()
	e.MustRegister(&Step{
		ID:        "menu",
		Prompt:    func(*Session) Reply { return Reply{Text: "tanlang"} },
		BackReply: func(*Session) Reply { return Reply{Text: "menyuga qaytdik"} },
		Handle: func(context.Context, *Session, Event) (Outcome, error) {
			return Terminal("ok"), nil
		},
	})
	e.MustRegister(&Step{
		ID:     "child",
		Parent: "menu",
		Handle: func(context.Context, *Session, Event) (Outcome, error) {
			return Terminal("ok"), nil
		},
	})

	sess := &Session{UserID: 5, Step: "child"}
	e.sessions.Put(sess)

	consumed, err := e.HandleEvent(context.Background(), Event{Sender: 5, Text: catalog.BackLabel})
	require.NoError(t, err)
	require.True(t, consumed)
	require.Len(t, *sent, 1)
	assert.Equal(t, "menyuga qaytdik", (*sent)[0].reply.Text)

	got, ok := e.Session(5)
	require.True(t, ok)
	assert.Equal(t, StepID("menu"), got.Step)
}

func TestRetryKeepsStepAndBinds(t *testing.T) {
	e, sent := newTestEngine()
	e.MustRegister(&Step{
		ID:     "pick",
		Prompt: func(*Session) Reply { return Reply{Text: "valyuta?"} },
		Handle: func(_ context.Context, _ *Session, ev Event) (Outcome, error) {
			return Prompt(Reply{Text: "miqdor?"}, "amount", map[string]any{"from": ev.Text}), nil
		},
	})
	e.MustRegister(&Step{
		ID:     "amount",
		Parent: "pick",
		Handle: func(_ context.Context, s *Session, ev Event) (Outcome, error) {
			if ev.Text == "abc" {
				return Retry(Reply{Text: "raqam kiriting"}), nil
			}
			from, _ := s.String("from")
			return Terminal(fmt.Sprintf("%s %s", ev.Text, from)), nil
		},
	})
	require.NoError(t, e.EnterStep(context.Background(), Event{Sender: 9}, "pick"))

	_, err := e.HandleEvent(context.Background(), Event{Sender: 9, Text: "USD"})
	require.NoError(t, err)

	_, err = e.HandleEvent(context.Background(), Event{Sender: 9, Text: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "raqam kiriting", (*sent)[len(*sent)-1].reply.Text)

	sess, ok := e.Session(9)
	require.True(t, ok)
	assert.Equal(t, StepID("amount"), sess.Step)

	_, err = e.HandleEvent(context.Background(), Event{Sender: 9, Text: "100"})
	require.NoError(t, err)
	assert.Equal(t, "100 USD", (*sent)[len(*sent)-1].reply.Text)
}

func TestHandlerErrorFallsBackToRoot(t *testing.T) {
	e, sent := newTestEngine()
	e.MustRegister(&Step{
		ID:     "boom",
		Prompt: func(*Session) Reply { return Reply{Text: "kiriting"} },
		Handle: func(context.Context, *Session, Event) (Outcome, error) {
			return Outcome{}, errors.New("upstream down")
		},
	})
	require.NoError(t, e.EnterStep(context.Background(), Event{Sender: 2}, "boom"))

	consumed, err := e.HandleEvent(context.Background(), Event{Sender: 2, Text: "x"})
	require.NoError(t, err)
	require.True(t, consumed)
	assert.Equal(t, "⚠️ Xatolik yuz berdi. Qaytadan urinib ko‘ring.", (*sent)[len(*sent)-1].reply.Text)

	_, ok := e.Session(2)
	assert.False(t, ok)
}

func TestHandlerPanicFallsBackToRoot(t *testing.T) {
	e, sent := newTestEngine()
	e.MustRegister(&Step{
		ID:     "panicky",
		Prompt: func(*Session) Reply { return Reply{Text: "kiriting"} },
		Handle: func(context.Context, *Session, Event) (Outcome, error) {
			panic("nil map write")
		},
	})
	require.NoError(t, e.EnterStep(context.Background(), Event{Sender: 4}, "panicky"))

	consumed, err := e.HandleEvent(context.Background(), Event{Sender: 4, Text: "x"})
	require.NoError(t, err)
	require.True(t, consumed)
	assert.Equal(t, "⚠️ Xatolik yuz berdi. Qaytadan urinib ko‘ring.", (*sent)[len(*sent)-1].reply.Text)

	_, ok := e.Session(4)
	assert.False(t, ok)
}

func TestRegisterRejectsDuplicatesAndInvalidSteps(t *testing.T) {
	e, _ := newTestEngine()
	step := &Step{
		ID:     "once",
		Handle: func(context.Context, *Session, Event) (Outcome, error) { return Terminal("ok"), nil },
	}
	require.NoError(t, e.Register(step))
	assert.Error(t, e.Register(step))
	assert.Error(t, e.Register(&Step{ID: "nohandler"}))
	assert.Error(t, e.Register(nil))
}

func TestResetDropsPendingSession(t *testing.T) {
	e, _ := newTestEngine()
	e.MustRegister(&Step{
		ID:     "pending",
		Prompt: func(*Session) Reply { return Reply{Text: "kiriting"} },
		Handle: func(context.Context, *Session, Event) (Outcome, error) { return Terminal("ok"), nil },
	})
	require.NoError(t, e.EnterStep(context.Background(), Event{Sender: 8}, "pending"))

	e.Reset(8)
	_, ok := e.Session(8)
	assert.False(t, ok)
}
