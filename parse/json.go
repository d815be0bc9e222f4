package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/flatkit/flatkit/format"
	"github.com/flatkit/flatkit/ir"
)

// parseJSON walks the token stream of the standard decoder so object
// field order survives; json.Unmarshal into a map would lose it.
// Numbers are kept as json.Number to preserve their source text.
func parseJSON(d []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty input")
		}
		return nil, &ParseError{Format: format.JSONFormat, Err: err}
	}
	node, err := jsonValue(dec, tok)
	if err != nil {
		return nil, &ParseError{Format: format.JSONFormat, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{
			Format: format.JSONFormat,
			Err:    errors.New("unexpected data after document"),
		}
	}
	return node, nil
}

func jsonValue(dec *json.Decoder, tok json.Token) (*ir.Node, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return jsonObject(dec)
		case '[':
			return jsonArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", v.String())
	case string:
		return ir.FromString(v), nil
	case json.Number:
		return ir.FromNumber(v.String()), nil
	case bool:
		return ir.FromBool(v), nil
	case nil:
		return ir.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func jsonObject(dec *json.Decoder) (*ir.Node, error) {
	res := ir.Object()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		val, err := jsonValue(dec, valTok)
		if err != nil {
			return nil, err
		}
		// duplicate keys: last one wins
		if i := res.IndexOf(key); i >= 0 {
			res.Values[i] = val
			continue
		}
		res.Append(key, val)
	}
	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return res, nil
}

func jsonArray(dec *json.Decoder) (*ir.Node, error) {
	res := ir.Array()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		val, err := jsonValue(dec, tok)
		if err != nil {
			return nil, err
		}
		res.Push(val)
	}
	// closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return res, nil
}
