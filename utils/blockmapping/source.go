package blockmapping

import "fmt"

// StateGroup holds the meta values of one block in the compressed state
// table, in table order.
type StateGroup struct {
	Prefix  string
	ShortID string
	Metas   []int
}

func (g StateGroup) Name() string {
	return g.Prefix + ":" + g.ShortID
}

// Source is the parsed input of one epoch.
type Source struct {
	// LegacyIDs maps full block names to legacy ids.
	LegacyIDs map[string]int
	// States is the compressed state table in document order.
	States []StateGroup
	// Properties lists the typed properties per full block name. It is nil
	// for epochs without a property table.
	Properties map[string][]Property
	// Blob is a precomputed palette, only used by PaletteBlob.
	Blob []byte
}

// Decompress flattens the compressed state table of src into block states,
// keeping the natural order of the table.
func Decompress(src Source) ([]BlockState, error) {
	var n int
	for _, g := range src.States {
		n += len(g.Metas)
	}
	states := make([]BlockState, 0, n)
	for _, g := range src.States {
		name := g.Name()
		legacyID, ok := src.LegacyIDs[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLegacyName, name)
		}
		if !ValidLegacyID(legacyID) {
			return nil, fmt.Errorf("%w: %s has %d", ErrLegacyIDRange, name, legacyID)
		}
		props := src.Properties[name]
		for _, p := range props {
			if err := checkProperty(p); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
		}
		for _, meta := range g.Metas {
			states = append(states, BlockState{
				Name:       name,
				Properties: props,
				LegacyID:   legacyID,
				Meta:       meta,
			})
		}
	}
	return states, nil
}

func checkProperty(p Property) error {
	var ok bool
	switch p.Type {
	case TagByte:
		_, ok = p.Value.(uint8)
	case TagInt:
		_, ok = p.Value.(int32)
	case TagString:
		_, ok = p.Value.(string)
	default:
		return fmt.Errorf("%w: %d (%s)", ErrUnknownPropertyTag, p.Type, p.Name)
	}
	if !ok {
		return fmt.Errorf("property %s: %T is not a %s", p.Name, p.Value, p.Type)
	}
	return nil
}
