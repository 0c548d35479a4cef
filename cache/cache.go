// Package cache provides a bounded in-memory cache for decompressed MDict
// data blocks. Repeated lookups inside one hot block (common during
// prefix/incremental-search UIs) would otherwise re-read and re-inflate the
// same bytes on every call; the cache keeps a capped set of recently used
// blocks around, themselves re-compressed with LZ4 so a cache full of large
// record blocks costs a fraction of its decompressed footprint.
package cache

import (
	"bytes"
	"container/list"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/go-mdict/mdict/errs"
)

// Key identifies one decompressed block within one physical file's
// keyword-block or record-block table. FileID distinguishes the mdx file
// (-1) from each mdd sibling (its mdd_id) so that two files sharing the
// same block index never collide in the same cache.
type Key struct {
	FileID int
	Table  BlockTable
	Index  int
}

// BlockTable distinguishes the two block tables a Key can address.
type BlockTable uint8

const (
	KeywordBlockTable BlockTable = iota
	RecordBlockTable
)

// BlockCache is a bounded, LRU-evicted, LZ4-compressed cache of decompressed
// blocks. The zero value is not usable; construct with New.
type BlockCache struct {
	mu       sync.Mutex
	maxBytes int64
	curBytes int64
	ll       *list.List
	items    map[Key]*list.Element
}

type entry struct {
	key        Key
	packed     []byte
	plainSize  int
	packedSize int64
}

// New constructs a BlockCache that retains at most maxBytes of LZ4-packed
// block data before evicting the least recently used entries.
func New(maxBytes int64) *BlockCache {
	return &BlockCache{
		maxBytes: maxBytes,
		ll:       list.New(),
		items:    make(map[Key]*list.Element),
	}
}

// Get returns a copy of the cached, decompressed block for key, if present.
func (c *BlockCache) Get(key Key) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)

	e := el.Value.(*entry)
	plain, err := unpack(e.packed, e.plainSize)
	if err != nil {
		// A corrupted cache entry must never surface as a bad lookup result;
		// drop it and fall through to a cache miss.
		c.removeElement(el)
		return nil, false
	}

	return plain, true
}

// Put inserts a decompressed block into the cache, evicting older entries
// as needed to stay within the configured byte budget.
func (c *BlockCache) Put(key Key, plain []byte) {
	packed, err := pack(plain)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.curBytes -= el.Value.(*entry).packedSize
		el.Value = &entry{key: key, packed: packed, plainSize: len(plain), packedSize: int64(len(packed))}
		c.curBytes += int64(len(packed))
		c.ll.MoveToFront(el)
	} else {
		e := &entry{key: key, packed: packed, plainSize: len(plain), packedSize: int64(len(packed))}
		el := c.ll.PushFront(e)
		c.items[key] = el
		c.curBytes += e.packedSize
	}

	for c.curBytes > c.maxBytes && c.ll.Len() > 0 {
		back := c.ll.Back()
		if back == nil {
			break
		}
		c.removeElement(back)
	}
}

func (c *BlockCache) removeElement(el *list.Element) {
	e := el.Value.(*entry)
	delete(c.items, e.key)
	c.ll.Remove(el)
	c.curBytes -= e.packedSize
}

func pack(plain []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(plain); err != nil {
		return nil, errs.Wrap(errs.KindIO, "lz4 pack cache entry", err)
	}
	if err := w.Close(); err != nil {
		return nil, errs.Wrap(errs.KindIO, "lz4 pack cache entry", err)
	}

	return buf.Bytes(), nil
}

func unpack(packed []byte, plainSize int) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(packed))
	out := make([]byte, plainSize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, errs.Wrap(errs.KindCorrupt, "lz4 unpack cache entry", err)
	}

	return out, nil
}
