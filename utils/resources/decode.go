package resources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bedrock-tool/blockmap/utils/blockmapping"
)

// The state and property tables are walked token by token, decoding them
// into maps would lose the document order the runtime ids depend on.

func decodeStates(data []byte) ([]blockmapping.StateGroup, error) {
	var groups []blockmapping.StateGroup
	dec := json.NewDecoder(bytes.NewReader(data))
	err := walkObject(dec, func(prefix string) error {
		return walkObject(dec, func(shortID string) error {
			g := blockmapping.StateGroup{Prefix: prefix, ShortID: shortID}
			if err := dec.Decode(&g.Metas); err != nil {
				return fmt.Errorf("%s: %w", g.Name(), err)
			}
			groups = append(groups, g)
			return nil
		})
	})
	return groups, err
}

type propertyDef struct {
	Type  blockmapping.TagType `json:"type"`
	Value json.RawMessage      `json:"value"`
}

func decodeProperties(data []byte) (map[string][]blockmapping.Property, error) {
	props := make(map[string][]blockmapping.Property)
	dec := json.NewDecoder(bytes.NewReader(data))
	err := walkObject(dec, func(name string) error {
		list := []blockmapping.Property{}
		err := walkObject(dec, func(prop string) error {
			var def propertyDef
			if err := dec.Decode(&def); err != nil {
				return err
			}
			p, err := def.property(prop)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			list = append(list, p)
			return nil
		})
		props[name] = list
		return err
	})
	return props, err
}

func (d propertyDef) property(name string) (blockmapping.Property, error) {
	raw := string(d.Value)
	switch d.Type {
	case blockmapping.TagByte:
		switch raw {
		case "true":
			return blockmapping.ByteProperty(name, 1), nil
		case "false":
			return blockmapping.ByteProperty(name, 0), nil
		}
		v, err := strconv.ParseInt(raw, 10, 16)
		if err != nil || v < -128 || v > 255 {
			return blockmapping.Property{}, fmt.Errorf("property %s: %s is not a byte", name, raw)
		}
		return blockmapping.ByteProperty(name, uint8(v)), nil
	case blockmapping.TagInt:
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return blockmapping.Property{}, fmt.Errorf("property %s: %s is not an int", name, raw)
		}
		return blockmapping.IntProperty(name, int32(v)), nil
	case blockmapping.TagString:
		var v string
		if err := json.Unmarshal(d.Value, &v); err != nil {
			return blockmapping.Property{}, fmt.Errorf("property %s: %w", name, err)
		}
		return blockmapping.StringProperty(name, v), nil
	}
	return blockmapping.Property{}, fmt.Errorf("property %s: %w: %d", name, blockmapping.ErrUnknownPropertyTag, d.Type)
}

// walkObject reads a json object from dec, calling fn for every key. fn must
// consume the value of the key.
func walkObject(dec *json.Decoder, fn func(key string) error) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key); err != nil {
			return err
		}
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %v, got %v", want, tok)
	}
	return nil
}
