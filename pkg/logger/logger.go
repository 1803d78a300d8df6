package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger 对 logrus 的一层薄封装，保留 printf 风格的调用方式
type Logger struct {
	entry  *logrus.Entry
	prefix string
}

var (
	std   *Logger
	stdMu sync.RWMutex
)

func newBase(level string, useColor bool, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(parseLevel(level))
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
		ForceColors:     useColor,
		DisableColors:   !useColor,
	})
	return l
}

// Init 可以重复调用，之后通过 WithPrefix 创建的子 logger 使用新的设置
func Init(level string, useColor bool) {
	setStd(&Logger{entry: logrus.NewEntry(newBase(level, useColor, os.Stderr))})
}

func setStd(l *Logger) {
	stdMu.Lock()
	std = l
	stdMu.Unlock()
}

// InitWithFile 日志写入文件，打开失败时退回 stderr
func InitWithFile(level string, logFile string) {
	var out io.Writer = os.Stderr
	if logFile != "" {
		if file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			out = file
		}
	}
	setStd(&Logger{entry: logrus.NewEntry(newBase(level, false, out))})
}

func Get() *Logger {
	stdMu.RLock()
	l := std
	stdMu.RUnlock()
	if l != nil {
		return l
	}

	stdMu.Lock()
	defer stdMu.Unlock()
	if std == nil {
		std = &Logger{entry: logrus.NewEntry(newBase("INFO", true, os.Stderr))}
	}
	return std
}

func SetLevel(level string) {
	Get().entry.Logger.SetLevel(parseLevel(level))
}

// SetOutput 主要给测试用，把日志收集到 buffer 里
func SetOutput(w io.Writer) {
	Get().entry.Logger.SetOutput(w)
}

func parseLevel(s string) logrus.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return logrus.DebugLevel
	case "INFO":
		return logrus.InfoLevel
	case "WARN", "WARNING":
		return logrus.WarnLevel
	case "ERROR":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func Debug(format string, v ...interface{}) { Get().Debug(format, v...) }

func Info(format string, v ...interface{}) { Get().Info(format, v...) }

func Warn(format string, v ...interface{}) { Get().Warn(format, v...) }

func Error(format string, v ...interface{}) { Get().Error(format, v...) }

func Fatal(format string, v ...interface{}) {
	Get().Error(format, v...)
	os.Exit(1)
}

func (l *Logger) Debug(format string, v ...interface{}) { l.log(logrus.DebugLevel, format, v...) }

func (l *Logger) Info(format string, v ...interface{}) { l.log(logrus.InfoLevel, format, v...) }

func (l *Logger) Warn(format string, v ...interface{}) { l.log(logrus.WarnLevel, format, v...) }

func (l *Logger) Error(format string, v ...interface{}) { l.log(logrus.ErrorLevel, format, v...) }

func (l *Logger) log(level logrus.Level, format string, v ...interface{}) {
	if !l.entry.Logger.IsLevelEnabled(level) {
		return
	}
	msg := fmt.Sprintf(format, v...)
	if l.prefix != "" {
		msg = fmt.Sprintf("[%s] %s", l.prefix, msg)
	}
	l.entry.Log(level, msg)
}

// WithPrefix 返回带固定前缀的子 logger，共享同一个输出与级别
func WithPrefix(prefix string) *Logger {
	parent := Get()
	return &Logger{
		entry:  parent.entry.WithField("component", strings.ToLower(prefix)),
		prefix: prefix,
	}
}
