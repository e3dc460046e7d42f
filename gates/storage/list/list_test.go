package list

import (
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"expressSeq/gates/storage"
	"expressSeq/gates/storage/array"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSpans = []int{1, 2, 4, DefaultSpan, 16}

func newTestList(t *testing.T, span int) *List[string] {
	t.Helper()
	l, err := NewListWithSpan[string](span)
	require.NoError(t, err)
	return l
}

// checkLinks сверяет все связи списка с позициями узлов, полученными обходом по коротким связям
func checkLinks[T any](t *testing.T, l *List[T]) {
	t.Helper()

	var slots []int
	prev := nilSlot
	for slot := l.head; slot != nilSlot; slot = l.nodes[slot].shortNext {
		require.Equal(t, prev, l.nodes[slot].shortPrev, "shortPrev of position %d", len(slots))
		slots = append(slots, slot)
		prev = slot
		require.LessOrEqual(t, len(slots), len(l.nodes), "short chain has a cycle")
	}
	require.Equal(t, prev, l.tail, "tail")
	require.Equal(t, l.length, len(slots), "length")
	require.Equal(t, len(l.nodes), len(slots)+len(l.free), "arena slots leaked")

	for p, slot := range slots {
		wantNext, wantPrev := nilSlot, nilSlot
		if p+l.span < len(slots) {
			wantNext = slots[p+l.span]
		}
		if p-l.span >= 0 {
			wantPrev = slots[p-l.span]
		}
		require.Equal(t, wantNext, l.nodes[slot].longNext, "longNext of position %d (span %d)", p, l.span)
		require.Equal(t, wantPrev, l.nodes[slot].longPrev, "longPrev of position %d (span %d)", p, l.span)
	}
}

func TestNewListWithSpan(t *testing.T) {
	_, err := NewListWithSpan[int](0)
	require.ErrorIs(t, err, ErrInvalidSpan)
	_, err = NewListWithSpan[int](-3)
	require.ErrorIs(t, err, ErrInvalidSpan)

	l := NewList[int]()
	assert.Equal(t, DefaultSpan, l.Span())
	assert.True(t, l.Empty())
}

func TestEmptyList(t *testing.T) {
	l := NewList[string]()

	assert.Equal(t, 0, l.Len())
	assert.Equal(t, "[]", l.String())

	_, err := l.Get(0)
	require.ErrorIs(t, err, storage.ErrIndexOutOfRange)
	_, err = l.RemoveAt(0)
	require.ErrorIs(t, err, storage.ErrIndexOutOfRange)
	checkLinks(t, l)
}

func TestAppend(t *testing.T) {
	l := NewList[string]()
	l.Append("1")
	l.Append("2")
	l.Append("3")

	assert.Equal(t, "[1, 2, 3]", l.String())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []interface{}{"1", "2", "3"}, l.Values())

	for i, want := range []string{"1", "2", "3"} {
		got, err := l.Get(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	checkLinks(t, l)
}

func TestRemoveAtMiddle(t *testing.T) {
	l := NewList[string]()
	l.Append("1")
	l.Append("2")
	l.Append("3")

	removed, err := l.RemoveAt(1)
	require.NoError(t, err)
	assert.Equal(t, "2", removed)
	assert.Equal(t, "[1, 3]", l.String())
	assert.Equal(t, 2, l.Len())
	checkLinks(t, l)
}

func TestInsertAtFront(t *testing.T) {
	l := NewList[string]()
	require.NoError(t, l.InsertAt(0, "0"))
	require.NoError(t, l.InsertAt(0, "1"))
	require.NoError(t, l.InsertAt(1, "2"))

	assert.Equal(t, "[1, 2, 0]", l.String())
	checkLinks(t, l)
}

func TestInsertAtEndIsAppend(t *testing.T) {
	l := NewList[int]()
	for i := 0; i < 20; i++ {
		require.NoError(t, l.InsertAt(i, i))
	}
	for i := 0; i < 20; i++ {
		got, err := l.Get(i)
		require.NoError(t, err)
		assert.Equal(t, i, got)
	}
	checkLinks(t, l)
}

func TestRemoveLastElement(t *testing.T) {
	l := NewList[string]()
	l.Append("only")

	removed, err := l.RemoveAt(0)
	require.NoError(t, err)
	assert.Equal(t, "only", removed)
	assert.Equal(t, "[]", l.String())
	assert.Equal(t, nilSlot, l.head)
	assert.Equal(t, nilSlot, l.tail)
	checkLinks(t, l)

	// Освободившийся слот переиспользуется
	l.Append("again")
	assert.Len(t, l.nodes, 1)
	checkLinks(t, l)
}

func TestLongPrevAfterAppends(t *testing.T) {
	l := NewList[int]()
	for i := 0; i < 100; i++ {
		l.Append(i)
	}

	for slot := l.head; slot != nilSlot; slot = l.nodes[slot].shortNext {
		p := l.nodes[slot].value
		if p < DefaultSpan {
			assert.Equal(t, nilSlot, l.nodes[slot].longPrev, "position %d", p)
			continue
		}
		require.NotEqual(t, nilSlot, l.nodes[slot].longPrev, "position %d", p)
		assert.Equal(t, p-DefaultSpan, l.nodes[l.nodes[slot].longPrev].value, "position %d", p)
	}
	checkLinks(t, l)
}

func TestAppendLinksForEverySpan(t *testing.T) {
	for _, span := range testSpans {
		t.Run("span"+strconv.Itoa(span), func(t *testing.T) {
			l := newTestList(t, span)
			for i := 0; i < 3*span+5; i++ {
				l.Append(strconv.Itoa(i))
				checkLinks(t, l)
			}
		})
	}
}

func TestOutOfRangeDoesNotMutate(t *testing.T) {
	l := NewList[string]()
	for i := 0; i < 12; i++ {
		l.Append(strconv.Itoa(i))
	}
	before := l.String()
	head, tail := l.head, l.tail

	for _, index := range []int{-1, 13, 100} {
		err := l.InsertAt(index, "x")
		require.ErrorIs(t, err, storage.ErrIndexOutOfRange, "insert %d", index)
	}
	for _, index := range []int{-1, 12, 100} {
		_, err := l.RemoveAt(index)
		require.ErrorIs(t, err, storage.ErrIndexOutOfRange, "remove %d", index)
		_, err = l.Get(index)
		require.ErrorIs(t, err, storage.ErrIndexOutOfRange, "get %d", index)
	}

	assert.Equal(t, 12, l.Len())
	assert.Equal(t, before, l.String())
	assert.Equal(t, head, l.head)
	assert.Equal(t, tail, l.tail)
	checkLinks(t, l)
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	for _, span := range testSpans {
		t.Run("span"+strconv.Itoa(span), func(t *testing.T) {
			l := newTestList(t, span)
			for i := 0; i < 40; i++ {
				l.Append(strconv.Itoa(i))
			}
			before := l.Values()

			for i := 0; i <= l.Len(); i++ {
				require.NoError(t, l.InsertAt(i, "new"))
				checkLinks(t, l)
				removed, err := l.RemoveAt(i)
				require.NoError(t, err)
				assert.Equal(t, "new", removed)
				checkLinks(t, l)
				require.Equal(t, before, l.Values(), "round trip at %d", i)
			}
		})
	}
}

func TestRemoveEveryPosition(t *testing.T) {
	for _, span := range testSpans {
		for size := 1; size <= 2*span+3; size++ {
			for index := 0; index < size; index++ {
				l := newTestList(t, span)
				for i := 0; i < size; i++ {
					l.Append(strconv.Itoa(i))
				}
				removed, err := l.RemoveAt(index)
				require.NoError(t, err)
				require.Equal(t, strconv.Itoa(index), removed)
				checkLinks(t, l)
			}
		}
	}
}

func TestClear(t *testing.T) {
	l := NewList[string]()
	l.Append("1")
	l.Append("2")
	l.Append("3")
	require.Equal(t, 3, l.Len())

	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, "[]", l.String())
	_, err := l.Get(0)
	require.ErrorIs(t, err, storage.ErrIndexOutOfRange)
	checkLinks(t, l)

	l.Append("4")
	assert.Equal(t, "[4]", l.String())
	checkLinks(t, l)
}

// TestRandomDifferential сравнивает список с последовательностью на массиве
// после каждой случайной вставки или удаления
func TestRandomDifferential(t *testing.T) {
	const operations = 10_000

	for _, span := range testSpans {
		t.Run("span"+strconv.Itoa(span), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(int64(span)))
			l, err := NewListWithSpan[int](span)
			require.NoError(t, err)
			ref := array.NewArray[int]()

			for op := 0; op < operations; op++ {
				if rnd.Float64() < 0.5 {
					index := rnd.Intn(ref.Len() + 1)
					require.NoError(t, ref.InsertAt(index, op))
					require.NoError(t, l.InsertAt(index, op))
				} else if ref.Len() > 0 {
					index := rnd.Intn(ref.Len())
					want, err := ref.RemoveAt(index)
					require.NoError(t, err)
					got, err := l.RemoveAt(index)
					require.NoError(t, err)
					require.Equal(t, want, got, "op %d: remove %d", op, index)
				}

				require.Equal(t, ref.Len(), l.Len(), "op %d", op)
				for i := 0; i < ref.Len(); i++ {
					want, _ := ref.Get(i)
					got, err := l.Get(i)
					require.NoError(t, err)
					require.Equal(t, want, got, "op %d: index %d", op, i)
				}
			}
			checkLinks(t, l)
			assert.Equal(t, ref.String(), l.String())
		})
	}
}

// TestRandomLinks проверяет все экспресс-связи после каждой операции
func TestRandomLinks(t *testing.T) {
	for _, span := range testSpans {
		t.Run("span"+strconv.Itoa(span), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(42))
			l := newTestList(t, span)
			for op := 0; op < 2_000; op++ {
				switch {
				case rnd.Intn(10) == 0:
					l.Append(fmt.Sprint(op))
				case rnd.Float64() < 0.5 || l.Len() == 0:
					require.NoError(t, l.InsertAt(rnd.Intn(l.Len()+1), fmt.Sprint(op)))
				default:
					_, err := l.RemoveAt(rnd.Intn(l.Len()))
					require.NoError(t, err)
				}
				checkLinks(t, l)
			}
		})
	}
}
