package logger

import (
	"log"
	"os"
)

var (
	infoLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
)

func Init() {
	infoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	errorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	debugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// ensure guards against use before Init in tests.
func ensure() {
	if infoLogger == nil {
		Init()
	}
}

func Info(msg string) {
	ensure()
	infoLogger.Println(msg)
}

func Infof(format string, v ...interface{}) {
	ensure()
	infoLogger.Printf(format, v...)
}

func Error(msg string) {
	ensure()
	errorLogger.Println(msg)
}

func Errorf(format string, v ...interface{}) {
	ensure()
	errorLogger.Printf(format, v...)
}

func Debug(msg string) {
	ensure()
	debugLogger.Println(msg)
}

func Debugf(format string, v ...interface{}) {
	ensure()
	debugLogger.Printf(format, v...)
}

func Fatal(msg string) {
	ensure()
	errorLogger.Fatal(msg)
}

func Fatalf(format string, v ...interface{}) {
	ensure()
	errorLogger.Fatalf(format, v...)
}
