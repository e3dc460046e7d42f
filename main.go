package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"expressSeq/controllers/sequenceService"
	"expressSeq/gates/storage"
	"expressSeq/gates/storage/array"
	"expressSeq/gates/storage/list"
	"expressSeq/pkg"
)

var (
	addr        string
	storageKind string
	span        int
	logFile     string
	logLevel    string
)

func init() {
	flag.StringVar(&addr, "addr", ":8080", "Address to listen on")
	flag.StringVar(&storageKind, "storage", "express", "Sequence backend: express or array")
	flag.IntVar(&span, "span", list.DefaultSpan, "Express link span of the express backend")
	flag.StringVar(&logFile, "log-file", pkg.DefaultLogFile, "Log file to append to, empty to log to stdout only")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error")
}

func main() {
	flag.Parse()

	logs, err := pkg.InitLogger(logFile, logLevel)
	if err != nil {
		log.Fatalln("pkg.InitLogger():", err)
	}

	var st storage.Storage[string]
	switch storageKind {
	case "express":
		st, err = list.NewListWithSpan[string](span)
		if err != nil {
			log.Fatalln("list.NewListWithSpan():", err)
		}
	case "array":
		st = array.NewArray[string]()
	default:
		log.Fatalf("unknown storage %q (need express or array)\n", storageKind)
	}

	ss := sequenceService.NewSequenceService(addr, st, logs)

	signalCh := make(chan os.Signal, 1)                      // канал для получения сигнала
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM) // привязываем его к сигналам остановки
	go func() {
		<-signalCh
		_ = ss.Close()
	}()

	ss.Start()
}
