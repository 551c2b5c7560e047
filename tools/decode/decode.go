package decode

import (
	"github.com/mitchellh/mapstructure"

	"RoomsBot/tools/errs"
)

// Options 用于定制 Decode 行为。
type Options struct {
	// 是否启用宽松解码（默认 true）：
	// 例如 "123" -> int64、1.0 -> int 等。
	WeaklyTypedInput bool
	// 结构体字段读取用的 tag，默认 "bson"，与存储层模型共用一套标签。
	TagName string
}

// DefaultOptions 返回默认选项。
func DefaultOptions() Options {
	return Options{
		WeaklyTypedInput: true,
		TagName:          "bson",
	}
}

// Map decodes a loosely-typed map (e.g. a deserialized backup payload)
// into the struct T. Unknown keys are ignored; type mismatches that the
// weak decoder cannot bridge are reported as errors instead of being
// silently dropped.
func Map[T any](m map[string]any, opts ...Options) (*T, error) {
	if m == nil {
		return nil, errs.New("decode: input map is nil")
	}

	cfg := DefaultOptions()
	if len(opts) > 0 {
		cfg = opts[0]
	}

	var out T
	decCfg := &mapstructure.DecoderConfig{
		TagName:          cfg.TagName,
		Result:           &out,
		WeaklyTypedInput: cfg.WeaklyTypedInput,
	}
	dec, err := mapstructure.NewDecoder(decCfg)
	if err != nil {
		return nil, errs.WrapMsg(err, "decode: build decoder")
	}
	if err := dec.Decode(m); err != nil {
		return nil, errs.WrapMsg(err, "decode: decode map")
	}
	return &out, nil
}
