package blockmapping

import "fmt"

// TagType is the NBT tag id a property value is written as.
type TagType byte

const (
	TagByte   TagType = 1
	TagInt    TagType = 3
	TagString TagType = 8
)

func (t TagType) String() string {
	switch t {
	case TagByte:
		return "byte"
	case TagInt:
		return "int"
	case TagString:
		return "string"
	}
	return fmt.Sprintf("tag(%d)", byte(t))
}

// Property is one typed block property. Value holds a uint8 for TagByte,
// an int32 for TagInt and a string for TagString.
type Property struct {
	Name  string
	Type  TagType
	Value any
}

func ByteProperty(name string, v uint8) Property {
	return Property{Name: name, Type: TagByte, Value: v}
}

func IntProperty(name string, v int32) Property {
	return Property{Name: name, Type: TagInt, Value: v}
}

func StringProperty(name string, v string) Property {
	return Property{Name: name, Type: TagString, Value: v}
}

// BlockState is a single block state of an epoch's descriptive tables.
type BlockState struct {
	Name       string
	Properties []Property
	LegacyID   int
	Meta       int
}

func (s BlockState) String() string {
	return fmt.Sprintf("%s[%d:%d]", s.Name, s.LegacyID, s.Meta)
}

// Mappable reports whether the state fits the 4 bit meta of a legacy key.
func (s BlockState) Mappable() bool {
	return s.Meta >= 0 && s.Meta <= MaxMeta
}
