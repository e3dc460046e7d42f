package array

import (
	"fmt"
	"strings"

	"expressSeq/gates/storage"

	"github.com/emirpasic/gods/containers"
	"github.com/emirpasic/gods/lists/arraylist"
)

var (
	_ storage.Storage[int]  = (*Array[int])(nil)
	_ containers.Container = (*Array[int])(nil)
)

// Array - последовательность на основе массива (gods arraylist).
// Вставка и удаление в середине стоят O(n) копирований, зато доступ по индексу O(1).
// Используется как эталон при сравнении со списком с экспресс-связями.
type Array[T any] struct {
	items *arraylist.List
}

// NewArray возвращает новую пустую последовательность
func NewArray[T any]() *Array[T] {
	return &Array[T]{items: arraylist.New()}
}

// Len возвращает количество элементов
func (a *Array[T]) Len() int {
	return a.items.Size()
}

// Size то же, что Len
func (a *Array[T]) Size() int {
	return a.items.Size()
}

// Empty сообщает, пуста ли последовательность
func (a *Array[T]) Empty() bool {
	return a.items.Empty()
}

// Append добавляет элемент в конец
func (a *Array[T]) Append(value T) {
	a.items.Add(value)
}

// InsertAt вставляет элемент на позицию index (от 0 до Len() включительно)
func (a *Array[T]) InsertAt(index int, value T) error {
	if index < 0 || index > a.items.Size() {
		return storage.IndexError("insert", index, a.items.Size())
	}
	// arraylist.Insert не умеет вставлять в позицию size
	if index == a.items.Size() {
		a.items.Add(value)
		return nil
	}
	a.items.Insert(index, value)
	return nil
}

// RemoveAt удаляет и возвращает элемент на позиции index
func (a *Array[T]) RemoveAt(index int) (value T, err error) {
	value, err = a.Get(index)
	if err != nil {
		return value, storage.IndexError("remove", index, a.items.Size()-1)
	}
	a.items.Remove(index)
	return value, nil
}

// Get возвращает элемент на позиции index
func (a *Array[T]) Get(index int) (value T, err error) {
	item, ok := a.items.Get(index)
	if !ok {
		return value, storage.IndexError("get", index, a.items.Size()-1)
	}
	// Для интерфейсных T значение nil хранится как nil interface{}
	value, _ = item.(T)
	return value, nil
}

// Clear очищает последовательность
func (a *Array[T]) Clear() {
	a.items.Clear()
}

// Values возвращает копию элементов
func (a *Array[T]) Values() []interface{} {
	return a.items.Values()
}

// String возвращает элементы в виде "[a, b, c]"
func (a *Array[T]) String() string {
	values := a.items.Values()
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
