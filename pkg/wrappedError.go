package pkg

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

const (
	loggerName = "expressSeq"
	errorTag   = "[ERROR]"
	messageTag = "(msg)"

	// DefaultLogFile - имя файла логов, если другое не задано
	DefaultLogFile = "log.txt"
)

// logger общий для всех WrappedError, настраивается InitLogger
var logger = hclog.New(&hclog.LoggerOptions{Name: loggerName, Output: os.Stdout, Level: hclog.Info})

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitLogger настраивает общий логгер: вывод в стандартный вывод и дозапись в файл fileName.
// Пустой fileName отключает запись в файл. Неизвестный level заменяется на info.
// Возвращает io.Closer для файла логов, который нужно закрыть при завершении работы.
func InitLogger(fileName, level string) (io.Closer, error) {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}

	var (
		output io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)
	if fileName != "" {
		file, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		output = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	logger = hclog.New(&hclog.LoggerOptions{Name: loggerName, Output: output, Level: lvl})
	return closer, nil
}

// WrappedError представляет собой структуру для обертывания ошибки и записи ее в логи.
// Реализует интерфейс error.
// Дополнительно реализует функционал вывода сообщений (не ошибок) в логи.
type WrappedError struct {
	functionName string // Имя функции (где произошла ошибка?)
	comment      string // Комментарий к ошибке (что именно вызвало ошибку?)
	err          error  // Ошибка, которая будет обернута
	logger       hclog.Logger
}

// NewWrappedError создает новый экземпляр WrappedError с именем функции, но без комментария.
// То есть уже известно, где ошибка может произойти, но что именно за ошибка еще неизвестно.
func NewWrappedError(funcName string) *WrappedError {
	return &WrappedError{functionName: funcName, logger: logger}
}

// Specify обновляет экземпляр, если переданная ошибка не nil. Перезаписываются err и comment.
func (e *WrappedError) Specify(err error, comment string) *WrappedError {
	if err != nil {
		e.err = err
		e.comment = comment
	}
	return e
}

// Error возвращает строковое представление ошибки с комментарием и именем функции.
func (e *WrappedError) Error() string {
	if e.err == nil {
		return ""
	}
	return fmt.Sprintf("'%s' in function '%s' invoked '%s'", e.comment, e.functionName, e.err.Error())
}

// Unwrap возвращает обернутую ошибку, чтобы работали errors.Is и errors.As
func (e *WrappedError) Unwrap() error {
	return e.err
}

// LogError записывает ошибку в лог. Если ошибки нет, то ничего не делает.
func (e *WrappedError) LogError() {
	if e.err != nil {
		e.logger.Error(errorTag+" "+e.comment, "function", e.functionName, "error", e.err)
	}
}

// LogMsg записывает в лог сообщение, которое не является ошибкой
func (e *WrappedError) LogMsg(msg string) {
	e.logger.Info(messageTag+" "+msg, "function", e.functionName)
}
