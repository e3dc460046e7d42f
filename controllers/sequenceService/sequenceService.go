package sequenceService

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"expressSeq/gates/storage"
	"expressSeq/models/dto"
	"expressSeq/pkg"

	"github.com/hashicorp/go-multierror"
)

// SequenceService отдает операции последовательности по HTTP.
// Сама последовательность не потокобезопасна, поэтому все обращения к ней идут под mu.
type SequenceService struct {
	server  http.Server
	mu      sync.Mutex
	storage storage.Storage[string]
	logs    io.Closer // Файл логов, закрывается вместе с сервисом
}

// unsupported - операции коллекций, которые последовательность не поддерживает
var unsupported = []string{"/contains", "/set", "/index-of", "/sublist", "/iterate", "/to-array"}

func NewSequenceService(addr string, storage storage.Storage[string], logs io.Closer) (service *SequenceService) {
	service = new(SequenceService)
	service.server = http.Server{}
	router := http.NewServeMux()
	router.HandleFunc("/append", service.handleAppend)
	router.HandleFunc("/insert", service.handleInsert)
	router.HandleFunc("/remove", service.handleRemove)
	router.HandleFunc("/get", service.handleGet)
	router.HandleFunc("/size", service.handleSize)
	router.HandleFunc("/clear", service.handleClear)
	router.HandleFunc("/view", service.handleView)
	for _, path := range unsupported {
		router.HandleFunc(path, service.handleNotImplemented)
	}
	service.server.Handler = router
	service.server.Addr = addr
	service.storage = storage
	service.logs = logs
	return service
}

// Start запускает сервис последовательности и блокируется до Close
func (ss *SequenceService) Start() {
	wErr := pkg.NewWrappedError("(ss *SequenceService) Start()")

	wErr.LogMsg(fmt.Sprintf("Listening on %s", ss.server.Addr))
	err := ss.server.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		wErr.Specify(err, "ss.server.ListenAndServe()").LogError()
		return
	}
	wErr.LogMsg("Server closed")
}

// Close останавливает сервер и закрывает файл логов
func (ss *SequenceService) Close() error {
	var result *multierror.Error
	result = multierror.Append(result, ss.server.Close())
	if ss.logs != nil {
		result = multierror.Append(result, ss.logs.Close())
	}
	return result.ErrorOrNil()
}

// handleAppend обрабатывает запрос на добавление элемента в конец
/*
Запрос должен быть с методом POST и с содержимым в формате JSON следующего вида:
{"value": "a"}

Возвращает клиенту ответ с содержимым в формате JSON следующего вида:
{"result": "OK", "data": {"size": 1}, "error": ""}
*/
func (ss *SequenceService) handleAppend(w http.ResponseWriter, req *http.Request) {
	setHttpHeaders(w)
	wErr := pkg.NewWrappedError("(ss *SequenceService) handleAppend()")

	resp := &dto.Response{}
	defer writeResponseContent(w, resp, wErr)

	element, ok := readElement(req, resp, wErr, false)
	if !ok {
		return
	}

	ss.mu.Lock()
	ss.storage.Append(element.Value)
	size := ss.storage.Len()
	ss.mu.Unlock()

	respondJson(resp, wErr, dto.Size{Size: size})
	wErr.LogMsg(fmt.Sprintf("OK - append: {size: %d}", size))
}

// handleInsert обрабатывает запрос на вставку элемента по индексу
/*
Запрос должен быть с методом POST и с содержимым в формате JSON следующего вида:
{"index": 0, "value": "a"}

Возвращает клиенту ответ с содержимым в формате JSON следующего вида:
{"result": "OK", "data": {"size": 1}, "error": ""}

В случае индекса за пределами [0, size]:
{"result": "ERROR", "data": null, "error": "insert: index 5, valid range [0, 1]: index out of range"}
*/
func (ss *SequenceService) handleInsert(w http.ResponseWriter, req *http.Request) {
	setHttpHeaders(w)
	wErr := pkg.NewWrappedError("(ss *SequenceService) handleInsert()")

	resp := &dto.Response{}
	defer writeResponseContent(w, resp, wErr)

	element, ok := readElement(req, resp, wErr, true)
	if !ok {
		return
	}

	ss.mu.Lock()
	err := ss.storage.InsertAt(*element.Index, element.Value)
	size := ss.storage.Len()
	ss.mu.Unlock()
	if err != nil {
		reportStorageError(resp, wErr, err, "ss.storage.InsertAt()")
		return
	}

	respondJson(resp, wErr, dto.Size{Size: size})
	wErr.LogMsg(fmt.Sprintf("OK - insert: {index: %d, size: %d}", *element.Index, size))
}

// handleRemove обрабатывает запрос на удаление элемента по индексу
/*
Запрос должен быть с методом POST и с содержимым в формате JSON следующего вида:
{"index": 0}

Возвращает клиенту удаленный элемент:
{"result": "OK", "data": {"index": 0, "value": "a"}, "error": ""}
*/
func (ss *SequenceService) handleRemove(w http.ResponseWriter, req *http.Request) {
	setHttpHeaders(w)
	wErr := pkg.NewWrappedError("(ss *SequenceService) handleRemove()")

	resp := &dto.Response{}
	defer writeResponseContent(w, resp, wErr)

	element, ok := readElement(req, resp, wErr, true)
	if !ok {
		return
	}

	ss.mu.Lock()
	value, err := ss.storage.RemoveAt(*element.Index)
	ss.mu.Unlock()
	if err != nil {
		reportStorageError(resp, wErr, err, "ss.storage.RemoveAt()")
		return
	}

	element.Value = value
	respondJson(resp, wErr, element)
	wErr.LogMsg(fmt.Sprintf("OK - remove: {index: %d}", *element.Index))
}

// handleGet обрабатывает запрос на получение элемента по индексу
/*
Запрос должен быть с методом POST и с содержимым в формате JSON следующего вида:
{"index": 0}

Возвращает клиенту ответ с содержимым в формате JSON следующего вида:
{"result": "OK", "data": {"index": 0, "value": "a"}, "error": ""}
*/
func (ss *SequenceService) handleGet(w http.ResponseWriter, req *http.Request) {
	setHttpHeaders(w)
	wErr := pkg.NewWrappedError("(ss *SequenceService) handleGet()")

	resp := &dto.Response{}
	defer writeResponseContent(w, resp, wErr)

	element, ok := readElement(req, resp, wErr, true)
	if !ok {
		return
	}

	ss.mu.Lock()
	value, err := ss.storage.Get(*element.Index)
	ss.mu.Unlock()
	if err != nil {
		reportStorageError(resp, wErr, err, "ss.storage.Get()")
		return
	}

	element.Value = value
	respondJson(resp, wErr, element)
	wErr.LogMsg(fmt.Sprintf("OK - get: {index: %d}", *element.Index))
}

// handleSize обрабатывает запрос на получение длины последовательности.
// Запрос должен быть с методом GET, тело игнорируется.
func (ss *SequenceService) handleSize(w http.ResponseWriter, req *http.Request) {
	setHttpHeaders(w)
	wErr := pkg.NewWrappedError("(ss *SequenceService) handleSize()")

	resp := &dto.Response{}
	defer writeResponseContent(w, resp, wErr)

	if !checkMethod(req, resp, wErr, http.MethodGet) {
		return
	}

	ss.mu.Lock()
	size := ss.storage.Len()
	ss.mu.Unlock()

	respondJson(resp, wErr, dto.Size{Size: size})
}

// handleClear обрабатывает запрос на очистку последовательности.
// Запрос должен быть с методом POST, тело игнорируется.
func (ss *SequenceService) handleClear(w http.ResponseWriter, req *http.Request) {
	setHttpHeaders(w)
	wErr := pkg.NewWrappedError("(ss *SequenceService) handleClear()")

	resp := &dto.Response{}
	defer writeResponseContent(w, resp, wErr)

	if !checkMethod(req, resp, wErr, http.MethodPost) {
		return
	}

	ss.mu.Lock()
	ss.storage.Clear()
	ss.mu.Unlock()

	resp.OK(nil)
	wErr.LogMsg("OK - clear")
}

// handleView обрабатывает запрос на строковое представление последовательности
/*
Запрос должен быть с методом GET. Тело запроса игнорируется.

Возвращает клиенту ответ с содержимым в формате JSON следующего вида:
{"result": "OK", "data": "[a, b, c]", "error": ""}
*/
func (ss *SequenceService) handleView(w http.ResponseWriter, req *http.Request) {
	setHttpHeaders(w)
	wErr := pkg.NewWrappedError("(ss *SequenceService) handleView()")

	resp := &dto.Response{}
	defer writeResponseContent(w, resp, wErr)

	if !checkMethod(req, resp, wErr, http.MethodGet) {
		return
	}

	ss.mu.Lock()
	view := ss.storage.String()
	ss.mu.Unlock()

	respondJson(resp, wErr, view)
}

// handleNotImplemented отвечает на операции, которых у последовательности нет
func (ss *SequenceService) handleNotImplemented(w http.ResponseWriter, req *http.Request) {
	setHttpHeaders(w)
	wErr := pkg.NewWrappedError("(ss *SequenceService) handleNotImplemented()")

	resp := &dto.Response{}
	defer writeResponseContent(w, resp, wErr)

	w.WriteHeader(http.StatusNotImplemented)
	resp.Fail(fmt.Sprintf("%s: %s", req.URL.Path, storage.ErrNotImplemented))
	wErr.LogMsg(resp.Error)
}

// readElement проверяет метод (POST) и разбирает тело запроса.
// Если needIndex, индекс обязателен. При ошибке заполняет resp и возвращает false.
func readElement(req *http.Request, resp *dto.Response, wErr *pkg.WrappedError, needIndex bool) (*dto.Element, bool) {
	if !checkMethod(req, resp, wErr, http.MethodPost) {
		return nil, false
	}

	requestBytes, err := io.ReadAll(req.Body)
	if err != nil {
		resp.Fail(fmt.Sprintf("cannot read request bytes: %s", err))
		wErr.Specify(err, "io.ReadAll(req.Body)").LogError()
		return nil, false
	}
	element := dto.NewElement()
	err = json.Unmarshal(requestBytes, element)
	if err != nil {
		messageString := fmt.Sprintf("cannot unmarshal request json: %s", err.Error())
		resp.Fail(messageString)
		wErr.LogMsg(messageString)
		return nil, false
	}

	// Проверка наличия необходимых данных в запросе
	if needIndex && element.Index == nil {
		messageString := "required data is missing: index"
		resp.Fail(messageString)
		wErr.LogMsg(messageString)
		return nil, false
	}
	return element, true
}

func checkMethod(req *http.Request, resp *dto.Response, wErr *pkg.WrappedError, method string) bool {
	if req.Method != method {
		messageString := fmt.Sprintf("invalid request method: '%s' (need '%s')", req.Method, method)
		wErr.LogMsg(messageString)
		resp.Fail(messageString)
		return false
	}
	return true
}

// reportStorageError отдает клиенту ошибку хранилища.
// Выход за границы - ошибка клиента и пишется в лог как сообщение, остальное - как ошибка.
func reportStorageError(resp *dto.Response, wErr *pkg.WrappedError, err error, comment string) {
	resp.Fail(err.Error())
	if errors.Is(err, storage.ErrIndexOutOfRange) {
		wErr.LogMsg(err.Error())
		return
	}
	wErr.Specify(err, comment).LogError()
}

func respondJson(resp *dto.Response, wErr *pkg.WrappedError, data any) {
	dataJson, err := json.Marshal(data)
	if err != nil {
		resp.Fail(err.Error())
		wErr.Specify(err, "json.Marshal(data)").LogError()
		return
	}
	resp.OK(dataJson)
}

func writeResponseContent(w http.ResponseWriter, resp *dto.Response, wErr *pkg.WrappedError) {
	err := json.NewEncoder(w).Encode(resp)
	if err != nil {
		wErr.Specify(err, "json.NewEncoder(w).Encode(resp)").LogError()
	}
}

func setHttpHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "*")
	w.Header().Set("Access-Control-Allow-Headers", "*")
	w.Header().Set("Content-Type", "application/json")
}
