package storage

import (
	"github.com/pkg/errors"
)

var (
	// ErrIndexOutOfRange возвращается при обращении по индексу за пределами последовательности
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrNotImplemented возвращается для операций, которые хранилище не поддерживает
	ErrNotImplemented = errors.New("not implemented")
)

// Storage описывает позиционную последовательность элементов.
// Реализации не потокобезопасны: при доступе из нескольких горутин
// вся последовательность защищается одним внешним мьютексом.
type Storage[T any] interface {
	Append(value T)
	InsertAt(index int, value T) error
	RemoveAt(index int) (T, error)
	Get(index int) (T, error)
	Len() int
	Clear()
	String() string
}

// IndexError оборачивает ErrIndexOutOfRange: op - имя операции, limit - верхняя граница
// допустимого диапазона (включительно для вставки, исключительно для остальных операций)
func IndexError(op string, index, limit int) error {
	return errors.Wrapf(ErrIndexOutOfRange, "%s: index %d, valid range [0, %d]", op, index, limit)
}
