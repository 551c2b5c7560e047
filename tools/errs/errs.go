package errs

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// New returns an error with the given message, optional key-value
// detail pairs and a captured stack.
func New(msg string, kv ...any) error {
	return errors.New(toString(msg, kv))
}

// Wrap 只补调用栈，不加内容
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(err)
}

// WrapMsg annotates err with a message plus key-value detail pairs
// ("msg, k1=v1, k2=v2") and a captured stack.
func WrapMsg(err error, msg string, kv ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, toString(msg, kv))
}

func toString(msg string, kv []any) string {
	if len(kv) == 0 {
		return msg
	}
	parts := make([]string, 0, len(kv)/2+1)
	if msg != "" {
		parts = append(parts, msg)
	}
	for i := 0; i < len(kv); i += 2 {
		var v any = "nil"
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		parts = append(parts, fmt.Sprintf("%v=%v", kv[i], v))
	}
	return strings.Join(parts, ", ")
}
