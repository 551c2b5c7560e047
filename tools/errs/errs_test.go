package errs

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapMsgKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := WrapMsg(cause, "load chat", "chat_id", 42)

	if !errors.Is(err, cause) {
		t.Error("wrapped error lost its cause")
	}
	msg := err.Error()
	if !strings.Contains(msg, "load chat") || !strings.Contains(msg, "chat_id=42") {
		t.Errorf("message = %q", msg)
	}
}

func TestWrapMsgNil(t *testing.T) {
	if WrapMsg(nil, "whatever") != nil {
		t.Error("wrapping nil must stay nil")
	}
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) must stay nil")
	}
}

func TestNewWithDetail(t *testing.T) {
	err := New("bad input", "field", "name")
	if got := err.Error(); got != "bad input, field=name" {
		t.Errorf("message = %q", got)
	}
}
