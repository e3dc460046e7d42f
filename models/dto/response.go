package dto

import "encoding/json"

const (
	ResultOK    = "OK"
	ResultError = "ERROR"
)

type Response struct {
	Result string          `json:"result"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func (r *Response) Update(result string, data json.RawMessage, error string) {
	r.Result = result
	r.Data = data
	r.Error = error
}

// OK записывает успешный результат с данными data
func (r *Response) OK(data json.RawMessage) {
	r.Update(ResultOK, data, "")
}

// Fail записывает ошибку без данных
func (r *Response) Fail(error string) {
	r.Update(ResultError, nil, error)
}
