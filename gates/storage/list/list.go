package list

import (
	"fmt"
	"strings"

	"expressSeq/gates/storage"

	"github.com/emirpasic/gods/containers"
	"github.com/pkg/errors"
)

// DefaultSpan - на сколько узлов перепрыгивает экспресс-связь по умолчанию
const DefaultSpan = 8

var ErrInvalidSpan = errors.New("span must be positive")

var (
	_ storage.Storage[int]  = (*List[int])(nil)
	_ containers.Container = (*List[int])(nil)
)

// List - двусвязный список с дополнительными экспресс-связями.
// Узел на позиции i связан экспресс-связями с узлами на позициях i-span и i+span,
// поэтому доступ по индексу стоит O(n/span + span) переходов вместо O(n).
// Список не потокобезопасен. Нулевое значение List не готово к использованию, нужен NewList.
type List[T any] struct {
	nodes  []node[T] // Арена узлов, связи между узлами - индексы в ней
	free   []int     // Освободившиеся слоты арены для повторного использования
	head   int       // Слот первого узла
	tail   int       // Слот последнего узла (для ускорения вставки элемента в конец)
	length int       // Текущая длина списка (количество узлов)
	span   int
}

// NewList создает новый пустой список с экспресс-связями длины DefaultSpan
func NewList[T any]() *List[T] {
	l, _ := NewListWithSpan[T](DefaultSpan)
	return l
}

// NewListWithSpan создает новый пустой список с экспресс-связями длины span.
// Если span < 1, возвращает ErrInvalidSpan.
func NewListWithSpan[T any](span int) (*List[T], error) {
	if span < 1 {
		return nil, errors.Wrapf(ErrInvalidSpan, "span %d", span)
	}
	return &List[T]{head: nilSlot, tail: nilSlot, span: span}, nil
}

// Len возвращает количество элементов в списке
func (l *List[T]) Len() int {
	return l.length
}

// Size то же, что Len
func (l *List[T]) Size() int {
	return l.length
}

// Empty сообщает, пуст ли список
func (l *List[T]) Empty() bool {
	return l.length == 0
}

// Span возвращает длину экспресс-связи
func (l *List[T]) Span() int {
	return l.span
}

// Append добавляет элемент в конец списка
func (l *List[T]) Append(value T) {
	slot := l.alloc(value)

	// Случай вставки первого элемента
	if l.length == 0 {
		l.head = slot
		l.tail = slot
		l.length++
		return
	}

	l.nodes[l.tail].shortNext = slot
	l.nodes[slot].shortPrev = l.tail

	// Новый узел встает на позицию length, его экспресс-сосед - на позицию length-span.
	// Этот сосед идет сразу за экспресс-соседом текущего хвоста, если тот существует.
	if l.length >= l.span {
		back := l.head
		if prev := l.nodes[l.tail].longPrev; prev != nilSlot {
			back = l.nodes[prev].shortNext
		}
		l.nodes[back].longNext = slot
		l.nodes[slot].longPrev = back
	}

	l.tail = slot
	l.length++
}

// InsertAt вставляет элемент на позицию index, сдвигая последующие элементы вправо.
// Допустимы индексы от 0 до Len() включительно, иначе возвращается ErrIndexOutOfRange
// и список не меняется.
func (l *List[T]) InsertAt(index int, value T) error {
	if index < 0 || index > l.length {
		return storage.IndexError("insert", index, l.length)
	}
	if index == l.length {
		l.Append(value)
		return nil
	}

	next := l.locate(index)
	slot := l.alloc(value)
	prev := l.nodes[next].shortPrev

	l.nodes[slot].shortPrev = prev
	l.nodes[slot].shortNext = next
	l.nodes[next].shortPrev = slot
	// Случай вставки в начало
	if prev == nilSlot {
		l.head = slot
	} else {
		l.nodes[prev].shortNext = slot
	}
	l.length++

	l.repair(slot, index)
	return nil
}

// RemoveAt удаляет элемент на позиции index и возвращает его.
// Допустимы индексы от 0 до Len()-1, иначе возвращается ErrIndexOutOfRange
// и список не меняется.
func (l *List[T]) RemoveAt(index int) (value T, err error) {
	if index < 0 || index >= l.length {
		return value, storage.IndexError("remove", index, l.length-1)
	}

	slot := l.locate(index)
	removed := l.nodes[slot]

	// Случай удаления первого элемента
	if removed.shortPrev == nilSlot {
		l.head = removed.shortNext
	} else {
		l.nodes[removed.shortPrev].shortNext = removed.shortNext
	}
	// Случай удаления последнего элемента
	if removed.shortNext == nilSlot {
		l.tail = removed.shortPrev
	} else {
		l.nodes[removed.shortNext].shortPrev = removed.shortPrev
	}
	l.release(slot)
	l.length--

	// На позицию index встал правый сосед, а если его нет - окно чинится от нового хвоста
	switch {
	case removed.shortNext != nilSlot:
		l.repair(removed.shortNext, index)
	case removed.shortPrev != nilSlot:
		l.repair(removed.shortPrev, index-1)
	}
	return removed.value, nil
}

// Get возвращает элемент на позиции index.
// Допустимы индексы от 0 до Len()-1, иначе возвращается ErrIndexOutOfRange.
func (l *List[T]) Get(index int) (value T, err error) {
	if index < 0 || index >= l.length {
		return value, storage.IndexError("get", index, l.length-1)
	}
	return l.nodes[l.locate(index)].value, nil
}

// Clear удаляет все элементы из списка
func (l *List[T]) Clear() {
	l.nodes = nil
	l.free = nil
	l.head = nilSlot
	l.tail = nilSlot
	l.length = 0
}

// Values возвращает элементы списка в прямом порядке
func (l *List[T]) Values() []interface{} {
	values := make([]interface{}, 0, l.length)
	for slot := l.head; slot != nilSlot; slot = l.nodes[slot].shortNext {
		values = append(values, l.nodes[slot].value)
	}
	return values
}

// String возвращает элементы списка в виде "[a, b, c]"
func (l *List[T]) String() string {
	sb := strings.Builder{}
	sb.WriteString("[")
	for slot := l.head; slot != nilSlot; slot = l.nodes[slot].shortNext {
		if slot != l.head {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, l.nodes[slot].value)
	}
	sb.WriteString("]")
	return sb.String()
}

// locate возвращает слот узла на позиции index, индекс должен быть уже проверен.
// Обход начинается с ближайшего конца: сначала экспресс-связями, остаток - короткими.
func (l *List[T]) locate(index int) int {
	if index < l.length/2 {
		slot, pos := l.head, 0
		for pos+l.span <= index {
			slot = l.nodes[slot].longNext
			pos += l.span
		}
		for ; pos < index; pos++ {
			slot = l.nodes[slot].shortNext
		}
		return slot
	}

	slot, pos := l.tail, l.length-1
	for pos-l.span >= index {
		slot = l.nodes[slot].longPrev
		pos -= l.span
	}
	for ; pos > index; pos-- {
		slot = l.nodes[slot].shortPrev
	}
	return slot
}

// hop проходит steps коротких связей вперед или назад.
// Если список закончился раньше, возвращает nilSlot.
func (l *List[T]) hop(slot, steps int, forward bool) int {
	for i := 0; i < steps && slot != nilSlot; i++ {
		if forward {
			slot = l.nodes[slot].shortNext
		} else {
			slot = l.nodes[slot].shortPrev
		}
	}
	return slot
}

// repair заново вычисляет экспресс-связи всех узлов в окне [pos-span, pos+span],
// где pos - текущая позиция узла anchor. Для каждого узла перезаписываются оба конца
// обеих экспресс-связей. Курсоры ahead и behind идут на span узлов впереди и позади
// текущего, поэтому починка стоит O(span).
func (l *List[T]) repair(anchor, pos int) {
	back := min(pos, l.span)
	first := pos - back
	last := min(pos+l.span, l.length-1)

	start := l.hop(anchor, back, false)
	ahead := l.hop(start, l.span, true)
	behind := l.hop(start, l.span, false)

	for cur, i := start, first; i <= last; i++ {
		l.nodes[cur].longNext = ahead
		if ahead != nilSlot {
			l.nodes[ahead].longPrev = cur
			ahead = l.nodes[ahead].shortNext
		}

		l.nodes[cur].longPrev = behind
		if behind != nilSlot {
			l.nodes[behind].longNext = cur
			behind = l.nodes[behind].shortNext
		} else if i+1 == l.span {
			// Следующий узел окна первым получает экспресс-соседа слева - голову списка
			behind = l.head
		}

		cur = l.nodes[cur].shortNext
	}
}

// alloc размещает новый узел в арене и возвращает его слот
func (l *List[T]) alloc(value T) int {
	if n := len(l.free); n > 0 {
		slot := l.free[n-1]
		l.free = l.free[:n-1]
		l.nodes[slot] = newNode(value)
		return slot
	}
	l.nodes = append(l.nodes, newNode(value))
	return len(l.nodes) - 1
}

// release отвязывает узел и возвращает слот в арену, значение обнуляется для сборщика мусора
func (l *List[T]) release(slot int) {
	var zero T
	l.nodes[slot] = newNode(zero)
	l.free = append(l.free, slot)
}
