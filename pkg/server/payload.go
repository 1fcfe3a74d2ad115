package server

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

var parserPool fastjson.ParserPool

// ParsePayload flattens a webhook body into a text-valued map. Alert templates
// often post single quoted dicts, so those bodies are normalised first.
func ParsePayload(body []byte) (map[string]string, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty payload")
	}

	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		normalized := bytes.ReplaceAll(body, []byte("'"), []byte(`"`))
		v, err = p.ParseBytes(normalized)
		if err != nil {
			return nil, errors.Wrap(err, "invalid payload")
		}
	}

	obj, err := v.Object()
	if err != nil {
		return nil, errors.Wrap(err, "payload is not an object")
	}

	data := make(map[string]string, obj.Len())
	obj.Visit(func(key []byte, val *fastjson.Value) {
		switch val.Type() {
		case fastjson.TypeString:
			data[string(key)] = string(val.GetStringBytes())
		case fastjson.TypeNumber:
			data[string(key)] = val.String()
		case fastjson.TypeTrue, fastjson.TypeFalse:
			data[string(key)] = strconv.FormatBool(val.GetBool())
		case fastjson.TypeNull:
			data[string(key)] = ""
		default:
			data[string(key)] = val.String()
		}
	})

	return data, nil
}
