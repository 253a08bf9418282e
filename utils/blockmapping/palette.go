package blockmapping

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

// BlockStateVersion is the block state format version written in every
// palette entry.
const BlockStateVersion int32 = 17629199

// PaletteStrategy selects how the palette of an epoch is serialized.
type PaletteStrategy int

const (
	// PaletteNBT encodes every state as a little endian NBT compound.
	PaletteNBT PaletteStrategy = iota
	// PaletteBlob serves a precomputed palette verbatim.
	PaletteBlob
	// PaletteLegacyList writes a count followed by name and meta per state.
	PaletteLegacyList
)

var strategyNames = map[PaletteStrategy]string{
	PaletteNBT:        "nbt",
	PaletteBlob:       "blob",
	PaletteLegacyList: "legacy-list",
}

func (s PaletteStrategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "PaletteStrategy(" + strconv.Itoa(int(s)) + ")"
}

func ParsePaletteStrategy(name string) (PaletteStrategy, error) {
	if name == "" {
		return PaletteNBT, nil
	}
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown palette strategy %q", name)
}

// EncodePalette serializes states with the given strategy. PaletteBlob has
// nothing to encode from, it falls back to the NBT encoding.
func EncodePalette(strategy PaletteStrategy, states []BlockState) ([]byte, error) {
	switch strategy {
	case PaletteNBT, PaletteBlob:
		return encodeNBT(states)
	case PaletteLegacyList:
		return encodeLegacyList(states), nil
	}
	return nil, fmt.Errorf("unknown palette strategy %d", strategy)
}

func encodeNBT(states []BlockState) ([]byte, error) {
	list := make([]any, 0, len(states))
	for _, s := range states {
		props := make([]tag, len(s.Properties))
		for i, p := range s.Properties {
			props[i] = tag{name: p.Name, value: p.Value}
		}
		list = append(list, compound(
			tag{"block", compound(
				tag{"name", s.Name},
				tag{"states", compound(props...)},
				tag{"version", BlockStateVersion},
			)},
			tag{"id", int16(s.LegacyID)},
		))
	}
	return nbt.MarshalEncoding(list, nbt.LittleEndian)
}

func encodeLegacyList(states []BlockState) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, len(states)*24))
	w := protocol.NewWriter(buf, 0)

	n := uint32(len(states))
	w.Varuint32(&n)
	for _, s := range states {
		name, meta := s.Name, int16(s.Meta)
		w.String(&name)
		w.Int16(&meta)
	}
	return buf.Bytes()
}

type tag struct {
	name  string
	value any
}

// compound builds a value the NBT encoder writes as a compound holding tags
// in the order given. Maps would lose that order, so a struct type is made
// with one field per tag.
func compound(tags ...tag) any {
	fields := make([]reflect.StructField, len(tags))
	for i, t := range tags {
		fields[i] = reflect.StructField{
			Name: "F" + strconv.Itoa(i),
			Type: reflect.TypeOf(t.value),
			Tag:  reflect.StructTag("nbt:" + strconv.Quote(t.name)),
		}
	}
	v := reflect.New(reflect.StructOf(fields)).Elem()
	for i, t := range tags {
		v.Field(i).Set(reflect.ValueOf(t.value))
	}
	return v.Interface()
}
