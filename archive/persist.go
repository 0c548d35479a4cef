package archive

// KeywordRow is the row shape a SQLite-backed persistence collaborator
// would store per key, matching spec.md §6's `keyword` table. It is a pure
// data-transfer struct: archive never imports a SQL driver itself.
type KeywordRow struct {
	Key    string
	MddID  *uint8
	Block  uint32
	Offset uint32
	Length uint32
}

// BlockRow is the row shape for spec.md §6's `block` table: one row per
// keyword or record block index entry.
type BlockRow struct {
	Kind             uint8
	Index            uint32
	CompressedOffset uint64
	CompressedSize   uint32
	DecompressedSize uint32
}

// Block-index kinds a BlockRow can describe.
const (
	BlockKindKeyword uint8 = iota
	BlockKindRecord
)

// Cache is the persistence seam a collaborator implements to skip rebuilding
// the index from the raw archive on every open. archive never calls these
// itself; a host process wiring in a cache implementation calls Snapshot
// once after Open and feeds the rows to its own SaveKeywords/SaveBlocks.
type Cache interface {
	SaveKeywords(rows []KeywordRow) error
	SaveBlocks(kind uint8, rows []BlockRow) error
}

// Snapshot flattens the mdx word index into the row shape a Cache
// implementation would persist.
func (s *Set) Snapshot() []KeywordRow {
	keys := s.facade.Keys()
	rows := make([]KeywordRow, 0, len(keys))
	for _, key := range keys {
		locs, ok := s.facade.WordLocators(key)
		if !ok {
			continue
		}
		for _, loc := range locs {
			rows = append(rows, KeywordRow{
				Key:    key,
				Block:  uint32(loc.Block),
				Offset: uint32(loc.Offset),
				Length: uint32(loc.Length),
			})
		}
	}

	return rows
}
