package structhash

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/docfold/docfold/internal/doctree"
)

// Domain prefixes for fingerprint computation. The version suffix enables
// future algorithm migration; the null separator prevents domain/data
// boundary ambiguity.
const (
	domainBlock   = "docfold/block/v1"
	domainInline  = "docfold/inline/v1"
	domainSeq     = "docfold/seq/v1"
	domainRow     = "docfold/row/v1"
	domainCell    = "docfold/cell/v1"
	domainDefItem = "docfold/defitem/v1"
)

// DefaultCacheSize bounds the per-call fingerprint cache. Evicted entries
// are simply recomputed.
const DefaultCacheSize = 4096

// Fingerprint is a location-independent digest of a node or sequence.
type Fingerprint [sha256.Size]byte

// String returns the fingerprint as lowercase hex.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Hasher computes and memoizes fingerprints for the duration of one
// reconciliation call. It is not safe for concurrent use; each call owns
// its own Hasher.
type Hasher struct {
	cache *lru.Cache[string, Fingerprint]
}

// NewHasher creates a Hasher with a cache of the given size.
// A size of zero or less selects DefaultCacheSize.
func NewHasher(cacheSize int) *Hasher {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	// lru.New only fails on a non-positive size, which is excluded above.
	cache, err := lru.New[string, Fingerprint](cacheSize)
	if err != nil {
		panic(err)
	}
	return &Hasher{cache: cache}
}

// Block returns the fingerprint of a single block. The key must be a stable
// path to the node within the tree being processed (e.g. "orig/2/0") and
// must be unique per node for the lifetime of the Hasher.
func (h *Hasher) Block(key string, b doctree.Block) Fingerprint {
	if fp, ok := h.cache.Get(key); ok {
		return fp
	}
	fp := h.hashBlock(key, b)
	h.cache.Add(key, fp)
	return fp
}

// Inline returns the fingerprint of a single inline, with the same key
// contract as Block.
func (h *Hasher) Inline(key string, in doctree.Inline) Fingerprint {
	if fp, ok := h.cache.Get(key); ok {
		return fp
	}
	fp := h.hashInline(key, in)
	h.cache.Add(key, fp)
	return fp
}

// Blocks returns the fingerprint of an ordered block sequence.
func (h *Hasher) Blocks(key string, blocks doctree.BlockList) Fingerprint {
	w := newDigest(domainSeq)
	w.num(len(blocks))
	for i, b := range blocks {
		w.fp(h.Block(childKey(key, i), b))
	}
	return w.sum()
}

// Inlines returns the fingerprint of an ordered inline sequence.
func (h *Hasher) Inlines(key string, inlines doctree.InlineList) Fingerprint {
	w := newDigest(domainSeq)
	w.num(len(inlines))
	for i, in := range inlines {
		w.fp(h.Inline(childKey(key, i), in))
	}
	return w.sum()
}

// Cell returns the fingerprint of one table cell: alignment, spans, and the
// cell's block sequence.
func (h *Hasher) Cell(key string, c doctree.TableCell) Fingerprint {
	w := newDigest(domainCell)
	w.str(c.Align)
	w.num(c.RowSpan)
	w.num(c.ColSpan)
	w.fp(h.Blocks(key, c.Blocks))
	return w.sum()
}

// Row returns the fingerprint of one table row.
func (h *Hasher) Row(key string, r doctree.TableRow) Fingerprint {
	w := newDigest(domainRow)
	w.num(len(r.Cells))
	for j, cell := range r.Cells {
		w.fp(h.Cell(childKey(key, j), cell))
	}
	return w.sum()
}

// DefItem returns the fingerprint of one definition-list item.
func (h *Hasher) DefItem(key string, item doctree.DefItem) Fingerprint {
	w := newDigest(domainDefItem)
	w.fp(h.Inlines(key+"/term", item.Term))
	w.num(len(item.Definitions))
	for j, def := range item.Definitions {
		w.fp(h.Blocks(childKey(key+"/defs", j), def))
	}
	return w.sum()
}

// HashBlock computes a block fingerprint without a shared cache.
// Intended for tests and one-off comparisons.
func HashBlock(b doctree.Block) Fingerprint {
	return NewHasher(0).Block("", b)
}

// HashInline computes an inline fingerprint without a shared cache.
func HashInline(in doctree.Inline) Fingerprint {
	return NewHasher(0).Inline("", in)
}

func childKey(key string, i int) string {
	return key + "/" + strconv.Itoa(i)
}

// digest accumulates framed values into a domain-separated SHA-256 state.
type digest struct {
	h hash.Hash
}

func newDigest(domain string) *digest {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	return &digest{h: h}
}

func (d *digest) sum() Fingerprint {
	var fp Fingerprint
	copy(fp[:], d.h.Sum(nil))
	return fp
}

// str writes a length-prefixed, NFC-normalized string. Normalizing at the
// hash boundary keeps fingerprints stable across Unicode encodings of the
// same text.
func (d *digest) str(s string) {
	normalized := norm.NFC.String(s)
	d.num(len(normalized))
	d.h.Write([]byte(normalized))
}

func (d *digest) num(n int) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(int64(n)))
	d.h.Write(buf[:])
}

func (d *digest) flag(b bool) {
	if b {
		d.h.Write([]byte{1})
	} else {
		d.h.Write([]byte{0})
	}
}

func (d *digest) fp(f Fingerprint) {
	d.h.Write(f[:])
}

func (d *digest) raw(data []byte) {
	d.num(len(data))
	d.h.Write(data)
}

func (d *digest) attr(a doctree.Attr) {
	d.str(a.ID)
	d.num(len(a.Classes))
	for _, c := range a.Classes {
		d.str(c)
	}
	d.num(len(a.KVs))
	for _, kv := range a.KVs {
		d.str(kv.Key)
		d.str(kv.Value)
	}
}

// hashBlock folds a block's discriminant, scalar fields, and child
// fingerprints. SourceInfo is never read.
func (h *Hasher) hashBlock(key string, b doctree.Block) Fingerprint {
	w := newDigest(domainBlock)
	w.str(string(b.NodeKind()))

	switch n := b.(type) {
	case *doctree.Paragraph:
		w.fp(h.Inlines(key, n.Inlines))
	case *doctree.Heading:
		w.num(n.Level)
		w.attr(n.Attr)
		w.fp(h.Inlines(key, n.Inlines))
	case *doctree.CodeBlock:
		w.attr(n.Attr)
		w.str(n.Text)
	case *doctree.RawBlock:
		w.str(n.Format)
		w.str(n.Text)
	case *doctree.BlockQuote:
		w.fp(h.Blocks(key, n.Blocks))
	case *doctree.Div:
		w.attr(n.Attr)
		w.fp(h.Blocks(key, n.Blocks))
	case *doctree.BulletList:
		w.flag(n.Tight)
		w.num(len(n.Items))
		for i, item := range n.Items {
			w.fp(h.Blocks(childKey(key, i), item))
		}
	case *doctree.OrderedList:
		w.num(n.Start)
		w.str(n.Style)
		w.flag(n.Tight)
		w.num(len(n.Items))
		for i, item := range n.Items {
			w.fp(h.Blocks(childKey(key, i), item))
		}
	case *doctree.DefinitionList:
		w.num(len(n.Items))
		for i, item := range n.Items {
			w.fp(h.DefItem(childKey(key, i), item))
		}
	case *doctree.Table:
		w.attr(n.Attr)
		w.fp(h.Inlines(key+"/caption", n.Caption))
		h.hashRows(w, key+"/head", n.Head)
		h.hashRows(w, key+"/body", n.Body)
		h.hashRows(w, key+"/foot", n.Foot)
	case *doctree.HorizontalRule:
		// Discriminant only.
	case *doctree.CustomBlock:
		h.hashCustom(w, key, n.Name, n.Slots, n.Payload)
	}

	return w.sum()
}

// hashInline is the inline counterpart of hashBlock.
func (h *Hasher) hashInline(key string, in doctree.Inline) Fingerprint {
	w := newDigest(domainInline)
	w.str(string(in.NodeKind()))

	switch n := in.(type) {
	case *doctree.Text:
		w.str(n.Text)
	case *doctree.Emph:
		w.fp(h.Inlines(key, n.Inlines))
	case *doctree.Strong:
		w.fp(h.Inlines(key, n.Inlines))
	case *doctree.Strikeout:
		w.fp(h.Inlines(key, n.Inlines))
	case *doctree.Ins:
		w.fp(h.Inlines(key, n.Inlines))
	case *doctree.Del:
		w.fp(h.Inlines(key, n.Inlines))
	case *doctree.Code:
		w.attr(n.Attr)
		w.str(n.Text)
	case *doctree.Quoted:
		w.str(n.QuoteType)
		w.fp(h.Inlines(key, n.Inlines))
	case *doctree.Span:
		w.attr(n.Attr)
		w.fp(h.Inlines(key, n.Inlines))
	case *doctree.Link:
		w.attr(n.Attr)
		w.str(n.Target)
		w.str(n.Title)
		w.fp(h.Inlines(key, n.Inlines))
	case *doctree.Image:
		w.attr(n.Attr)
		w.str(n.Target)
		w.str(n.Title)
		w.fp(h.Inlines(key, n.Inlines))
	case *doctree.LineBreak:
		w.flag(n.Hard)
	case *doctree.CustomInline:
		h.hashCustom(w, key, n.Name, n.Slots, n.Payload)
	}

	return w.sum()
}

func (h *Hasher) hashRows(w *digest, key string, rows []doctree.TableRow) {
	w.num(len(rows))
	for i, row := range rows {
		w.fp(h.Row(childKey(key, i), row))
	}
}

func (h *Hasher) hashCustom(w *digest, key, name string, slots map[string]doctree.Slot, payload []byte) {
	w.str(name)
	w.raw(payload)
	names := doctree.SortedSlotNames(slots)
	w.num(len(names))
	for _, slotName := range names {
		slot := slots[slotName]
		slotKey := key + "/slot/" + slotName
		w.str(slotName)
		w.str(string(slot.Kind))
		switch slot.Kind {
		case doctree.SlotBlock:
			w.fp(h.Block(slotKey, slot.Block))
		case doctree.SlotInline:
			w.fp(h.Inline(slotKey, slot.Inline))
		case doctree.SlotBlocks:
			w.fp(h.Blocks(slotKey, slot.Blocks))
		case doctree.SlotInlines:
			w.fp(h.Inlines(slotKey, slot.Inlines))
		}
	}
}
