package dto

// Element - тело запросов к последовательности и содержимое ответов с элементом.
// Index указателем, чтобы отличать отсутствующий индекс от нулевого.
type Element struct {
	Index *int   `json:"index,omitempty"`
	Value string `json:"value"`
}

func NewElement() *Element {
	return &Element{}
}

// Size - содержимое ответов с длиной последовательности
type Size struct {
	Size int `json:"size"`
}
