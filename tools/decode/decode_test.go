package decode

import "testing"

type sample struct {
	ChatID int64             `bson:"chat_id"`
	Name   string            `bson:"chat_name"`
	Tags   map[string]nested `bson:"tags"`
}

type nested struct {
	Owner int64 `bson:"owner_id"`
}

func TestMapDecodesBsonTags(t *testing.T) {
	out, err := Map[sample](map[string]any{
		"chat_id":   float64(42), // JSON numbers arrive as float64
		"chat_name": "general",
		"tags": map[string]any{
			"10": map[string]any{"owner_id": float64(7)},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out.ChatID != 42 || out.Name != "general" {
		t.Errorf("decoded = %+v", out)
	}
	if out.Tags["10"].Owner != 7 {
		t.Errorf("nested = %+v", out.Tags)
	}
}

func TestMapWeakTyping(t *testing.T) {
	out, err := Map[sample](map[string]any{"chat_id": "42"})
	if err != nil {
		t.Fatal(err)
	}
	if out.ChatID != 42 {
		t.Errorf("chat_id = %d, want 42", out.ChatID)
	}
}

func TestMapRejectsWrongShape(t *testing.T) {
	if _, err := Map[sample](map[string]any{"tags": "not a map"}); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestMapNilInput(t *testing.T) {
	if _, err := Map[sample](nil); err == nil {
		t.Fatal("expected an error for nil input")
	}
}
