package blockmapping

const (
	metaBits = 4
	// MaxMeta is the largest meta value a legacy key can hold.
	MaxMeta = 1<<metaBits - 1
	// MaxLegacyID is the largest legacy id a legacy key can hold. The all
	// ones key is taken by noLegacy.
	MaxLegacyID = 1<<(32-metaBits) - 2
)

// LegacyKey packs a legacy block id and its meta value into one integer:
// the id sits in the high bits, the meta in the low 4 bits.
type LegacyKey uint32

const noLegacy = ^LegacyKey(0)

// Key builds the legacy key for id and meta. Ids outside 0..MaxLegacyID and
// meta values above MaxMeta do not fit and must be rejected by the caller.
func Key(id, meta int) LegacyKey {
	return LegacyKey(id<<metaBits | meta&MaxMeta)
}

// ValidLegacyID reports whether id fits in a legacy key.
func ValidLegacyID(id int) bool {
	return id >= 0 && id <= MaxLegacyID
}

func (k LegacyKey) ID() int {
	return int(k >> metaBits)
}

func (k LegacyKey) Meta() int {
	return int(k & MaxMeta)
}
