package set

import (
	"math/bits"
	"slices"

	"tlog.app/go/tlog/tlwire"
)

type (
	Key interface {
		~int | ~uint | ~uint32
	}

	// Bits is a set of non-negative keys.
	// Words are stored sparsely, so memory depends on the number of keys, not on their values.
	Bits[K Key] struct {
		w map[uint64]uint64
	}
)

func (s *Bits[K]) Set(k K) {
	i, j := ij(k)

	if s.w == nil {
		s.w = make(map[uint64]uint64)
	}

	s.w[i] |= 1 << j
}

func (s *Bits[K]) SetAll(k ...K) {
	for _, k := range k {
		s.Set(k)
	}
}

func (s Bits[K]) Size() (r int) {
	for _, c := range s.w {
		r += bits.OnesCount64(c)
	}

	return r
}

// Range calls f for keys in increasing order until it returns false.
func (s Bits[K]) Range(f func(k K) bool) {
	idx := make([]uint64, 0, len(s.w))

	for i := range s.w {
		idx = append(idx, i)
	}

	slices.Sort(idx)

	for _, i := range idx {
		x := s.w[i]

		for x != 0 {
			j := bits.TrailingZeros64(x)
			x &^= 1 << j

			if !f(K(i*64 + uint64(j))) {
				return
			}
		}
	}
}

// Slice returns the keys in increasing order.
func (s Bits[K]) Slice() (l []K) {
	s.Range(func(k K) bool {
		l = append(l, k)
		return true
	})

	return l
}

func (s Bits[K]) TlogAppend(b []byte) []byte {
	var e tlwire.LowEncoder

	if s.w == nil {
		return e.AppendNil(b)
	}

	b = e.AppendTag(b, tlwire.Array, -1)

	s.Range(func(k K) bool {
		b = e.AppendInt(b, int(k))

		return true
	})

	b = e.AppendBreak(b)

	return b
}

func ij[K Key](k K) (i uint64, j int) {
	p := uint64(k)

	return p / 64, int(p % 64)
}
