// Package logger is a small asynchronous levelled logger. Messages are
// formatted on the caller's goroutine and written by a single writer
// goroutine so the render loop never blocks on console or file I/O.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	DEBUG = iota
	INFO
	WARN
	ERROR
)

var LevelMap = map[int][]byte{
	DEBUG: []byte("DEBUG"),
	INFO:  []byte("INFO"),
	WARN:  []byte("WARN"),
	ERROR: []byte("ERROR"),
}

// ParseLogLevel converts a level name to its constant
func ParseLogLevel(level string) (int, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return 0, fmt.Errorf("unknown log level: %v", level)
	}
}

var (
	leftBracket  = []byte("[")
	rightBracket = []byte("]")
	space        = []byte(" ")
	colon        = []byte(":")
	funcBracket  = []byte("()")
	lineFeed     = []byte("\n")
)

var (
	RED     = []byte{27, 91, 51, 49, 109}
	GREEN   = []byte{27, 91, 51, 50, 109}
	YELLOW  = []byte{27, 91, 51, 51, 109}
	BLUE    = []byte{27, 91, 51, 52, 109}
	MAGENTA = []byte{27, 91, 51, 53, 109}
	CYAN    = []byte{27, 91, 51, 54, 109}
	RESET   = []byte{27, 91, 48, 109}
)

const logInfoChanSize = 1000

type Config struct {
	AppName      string
	Level        int
	TrackLine    bool
	EnableFile   bool
	FileDir      string
	DisableColor bool
	// Output defaults to os.Stderr
	Output io.Writer
}

type Logger struct {
	conf      Config
	file      *os.File
	infoChan  chan *logInfo
	closeChan chan struct{}
	closeOnce sync.Once
}

type logInfo struct {
	time     time.Time
	level    int
	msg      []byte
	fileName string
	funcName string
	line     int
}

var (
	mu  sync.RWMutex
	LOG *Logger
)

// InitLogger starts the global logger. A nil config logs everything to
// stderr with colors and caller tracking.
func InitLogger(config *Config) {
	if config == nil {
		config = &Config{
			AppName:   "pmapview",
			Level:     DEBUG,
			TrackLine: true,
		}
	}
	l := New(*config)

	mu.Lock()
	old := LOG
	LOG = l
	mu.Unlock()

	if old != nil {
		old.Close()
	}
}

// CloseLogger flushes pending messages and stops the global logger
func CloseLogger() {
	mu.Lock()
	l := LOG
	LOG = nil
	mu.Unlock()

	if l != nil {
		l.Close()
	}
}

// New creates a logger with its own writer goroutine
func New(conf Config) *Logger {
	if conf.Output == nil {
		conf.Output = os.Stderr
	}
	if conf.AppName == "" {
		conf.AppName = "application"
	}
	l := &Logger{
		conf:      conf,
		infoChan:  make(chan *logInfo, logInfoChanSize),
		closeChan: make(chan struct{}),
	}
	if conf.EnableFile {
		l.openFile()
	}
	go l.doLog()
	return l
}

func (l *Logger) openFile() {
	dir := l.conf.FileDir
	if dir == "" {
		dir = "./log"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(l.conf.Output, "%screate log dir error: %v%s\n", RED, err, RESET)
		return
	}
	fileName := filepath.Join(dir, l.conf.AppName+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		_, _ = fmt.Fprintf(l.conf.Output, "%sopen log file error: %v%s\n", RED, err, RESET)
		return
	}
	l.file = file
}

// Close drains the queue and waits for the writer goroutine
func (l *Logger) Close() {
	l.closeOnce.Do(func() {
		l.closeChan <- struct{}{}
		<-l.closeChan
		if l.file != nil {
			_ = l.file.Close()
		}
	})
}

func (l *Logger) doLog() {
	var logBuf bytes.Buffer
	var plainBuf bytes.Buffer
	timeBuf := make([]byte, 0, 64)
	for {
		select {
		case <-l.closeChan:
			for {
				select {
				case info := <-l.infoChan:
					l.write(info, &logBuf, &plainBuf, timeBuf)
				default:
					l.closeChan <- struct{}{}
					return
				}
			}
		case info := <-l.infoChan:
			l.write(info, &logBuf, &plainBuf, timeBuf)
		}
	}
}

func (l *Logger) write(info *logInfo, logBuf, plainBuf *bytes.Buffer, timeBuf []byte) {
	color := !l.conf.DisableColor
	l.format(logBuf, info, timeBuf[:0], color)
	_, _ = l.conf.Output.Write(logBuf.Bytes())
	if l.file != nil {
		l.format(plainBuf, info, timeBuf[:0], false)
		_, _ = l.file.Write(plainBuf.Bytes())
		plainBuf.Reset()
	}
	logBuf.Reset()
}

func (l *Logger) format(buf *bytes.Buffer, info *logInfo, timeBuf []byte, color bool) {
	if color {
		buf.Write(CYAN)
	}
	buf.Write(leftBracket)
	buf.Write(info.time.AppendFormat(timeBuf, "2006-01-02 15:04:05.000"))
	buf.Write(rightBracket)
	if color {
		buf.Write(RESET)
	}
	buf.Write(space)

	if color {
		switch info.level {
		case DEBUG:
			buf.Write(BLUE)
		case INFO:
			buf.Write(GREEN)
		case WARN:
			buf.Write(YELLOW)
		case ERROR:
			buf.Write(RED)
		}
	}
	buf.Write(leftBracket)
	buf.Write(LevelMap[info.level])
	buf.Write(rightBracket)
	if color {
		buf.Write(RESET)
	}
	buf.Write(space)

	if color && info.level == ERROR {
		buf.Write(RED)
		buf.Write(info.msg)
		buf.Write(RESET)
	} else {
		buf.Write(info.msg)
	}

	if info.fileName != "" {
		buf.Write(space)
		if color {
			buf.Write(MAGENTA)
		}
		buf.Write(leftBracket)
		buf.WriteString(info.fileName)
		buf.Write(colon)
		buf.WriteString(strconv.Itoa(info.line))
		buf.Write(space)
		buf.WriteString(info.funcName)
		buf.Write(funcBracket)
		buf.Write(rightBracket)
		if color {
			buf.Write(RESET)
		}
	}

	buf.Write(lineFeed)
}

func (l *Logger) log(level int, msg string, param []any) {
	if level < l.conf.Level {
		return
	}
	info := &logInfo{
		time:  time.Now(),
		level: level,
		msg:   fmt.Appendf(nil, msg, param...),
	}
	if l.conf.TrackLine {
		info.fileName, info.line, info.funcName = getLineFunc(3)
	}
	l.infoChan <- info
}

func getLineFunc(skip int) (fileName string, line int, funcName string) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "???", -1, "???"
	}
	fileName = path.Base(file)
	funcName = runtime.FuncForPC(pc).Name()
	split := strings.Split(funcName, ".")
	if len(split) != 0 {
		funcName = split[len(split)-1]
	}
	return fileName, line, funcName
}

func logGlobal(level int, msg string, param []any) {
	mu.RLock()
	l := LOG
	mu.RUnlock()
	if l == nil {
		return
	}
	l.log(level, msg, param)
}

func Debug(msg string, param ...any) {
	logGlobal(DEBUG, msg, param)
}

func Info(msg string, param ...any) {
	logGlobal(INFO, msg, param)
}

func Warn(msg string, param ...any) {
	logGlobal(WARN, msg, param)
}

func Error(msg string, param ...any) {
	logGlobal(ERROR, msg, param)
}
