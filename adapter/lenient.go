package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/tidwall/jsonc"

	"github.com/simon-lentz/xjs/diag"
	"github.com/simon-lentz/xjs/value"
)

// LoadLenient reads path, strips comments and trailing commas with
// tidwall/jsonc, and decodes the result with encoding/json. The returned
// value carries no formatting metadata: every container defaults to
// single-line-with-newline-separated-members the way a freshly constructed
// value.Value does, so the result should never be round-tripped back over
// the original file. Use [Load] when format preservation matters.
func LoadLenient(path string) (*value.Value, diag.Result) {
	return NewAdapter().LoadLenient(path)
}

// LoadLenient is the Adapter-configured equivalent of the package-level
// [LoadLenient].
func (a *Adapter) LoadLenient(path string) (*value.Value, diag.Result) {
	raw, err := os.ReadFile(path)
	if err != nil {
		issue := diag.NewIssue(diag.Fatal, diag.E_ADAPTER_IO, err.Error()).
			WithPath(path, "").
			Build()
		c := diag.NewCollector(1)
		c.Collect(issue)
		return nil, c.Result()
	}

	cleaned := jsonc.ToJSON(raw)

	dec := json.NewDecoder(bytes.NewReader(cleaned))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		issue := diag.NewIssue(diag.Error, diag.E_ADAPTER_PARSE, err.Error()).
			WithPath(path, "").
			Build()
		c := diag.NewCollector(1)
		c.Collect(issue)
		return nil, c.Result()
	}

	v, err := fromAny(decoded)
	if err != nil {
		issue := diag.NewIssue(diag.Error, diag.E_ADAPTER_PARSE, err.Error()).
			WithPath(path, "").
			Build()
		c := diag.NewCollector(1)
		c.Collect(issue)
		return nil, c.Result()
	}
	return v, diag.OK()
}

// fromAny converts a decoded JSON value (produced with json.Decoder.UseNumber)
// into a value.Value tree with default (non-preserved) formatting metadata.
func fromAny(decoded any) (*value.Value, error) {
	switch x := decoded.(type) {
	case nil:
		return value.NewNull(), nil
	case bool:
		return value.NewBool(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return value.NewInteger(i), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("decode number %q: %w", x.String(), err)
		}
		return value.NewDecimal(f), nil
	case string:
		return value.NewString(x, value.StyleDouble), nil
	case []any:
		arr := value.NewEmptyArray()
		for _, item := range x {
			iv, err := fromAny(item)
			if err != nil {
				return nil, err
			}
			if err := arr.Append(value.NewReference(iv)); err != nil {
				return nil, fmt.Errorf("append array item: %w", err)
			}
		}
		return value.NewArray(arr), nil
	case map[string]any:
		obj := value.NewEmptyObject()
		for _, k := range orderedKeys(x) {
			mv, err := fromAny(x[k])
			if err != nil {
				return nil, err
			}
			if err := obj.AppendMember(k, value.NewReference(mv)); err != nil {
				return nil, fmt.Errorf("append member %q: %w", k, err)
			}
		}
		return value.NewObject(obj), nil
	default:
		return nil, fmt.Errorf("unsupported decoded type %T", decoded)
	}
}

// orderedKeys returns m's keys in sorted order. encoding/json decodes
// objects into an unordered map[string]any, so lenient loading cannot
// recover source key order; sorting at least makes output deterministic
// across runs.
func orderedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
