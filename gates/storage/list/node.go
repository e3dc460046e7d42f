package list

// nilSlot обозначает отсутствующего соседа
const nilSlot = -1

// node хранится в арене списка, все связи - индексы слотов арены
type node[T any] struct {
	value     T
	shortPrev int // Соседний узел слева
	shortNext int // Соседний узел справа
	longPrev  int // Узел на span позиций левее
	longNext  int // Узел на span позиций правее
}

func newNode[T any](value T) node[T] {
	return node[T]{value: value, shortPrev: nilSlot, shortNext: nilSlot, longPrev: nilSlot, longNext: nilSlot}
}
