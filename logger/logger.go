package logger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LOG_ENABLE             = "SYPIV_HPC_LOGLEVEL"
	LOG_PATH               = "SYPIV_HPC_LOGPATH"
	LOG_TIMEOUT            = "SYPIV_HPC_TIMEOUT"
	LOG_FILENAME           = "sypiv-hpc.log"
	LOG_DEFAULT_TIMEOUT    = 24
	SYPIV_DEBUG_LOGGING    = 10
	SYPIV_INFO_LOGGING     = 20
	SYPIV_WARNING_LOGGING  = 30
	SYPIV_ERROR_LOGGING    = 40
	SYPIV_CRITICAL_LOGGING = 50
)

var (
	Log *zap.Logger
)

func init() {
	Log = New(zapcore.Lock(os.Stderr), &fileSink{})
}

func logFilePath() string {
	logPath := "/tmp/"
	if env := os.Getenv(LOG_PATH); len(env) > 0 {
		logPath = env
	}
	return filepath.Join(logPath, LOG_FILENAME)
}

func logTimeout() int {
	if t, err := strconv.Atoi(os.Getenv(LOG_TIMEOUT)); err == nil {
		return t
	}
	return LOG_DEFAULT_TIMEOUT
}

// fileSink opens the log file on its first write. Entries below the level
// threshold never reach a sink, so a quiet run leaves the filesystem alone.
// The path is read from the environment at that point, after .env loading.
type fileSink struct {
	mu     sync.Mutex
	opened bool
	file   *os.File
}

func (s *fileSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened {
		s.opened = true
		f, err := openLogFile(logFilePath(), logTimeout())
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger cannot open file: %v\n", err)
		}
		s.file = f
	}
	if s.file == nil {
		// stderr already has the entry
		return len(p), nil
	}
	return s.file.Write(p)
}

func (s *fileSink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	return s.file.Sync()
}

// New builds a logger writing every entry to each sink. Level filtering is
// left to LogLevel so the threshold can change without rebuilding.
func New(sinks ...zapcore.WriteSyncer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encCfg.EncodeLevel = levelEncoder
	encCfg.CallerKey = ""
	enc := zapcore.NewConsoleEncoder(encCfg)
	cores := make([]zapcore.Core, 0, len(sinks))
	for _, s := range sinks {
		cores = append(cores, zapcore.NewCore(enc, s, zapcore.DebugLevel))
	}
	return zap.New(zapcore.NewTee(cores...))
}

// openLogFile opens the shared log file for appending. The first line of the
// file is an RFC3339 timestamp; files older than timeout hours, or without a
// readable header, are removed and started over.
func openLogFile(logfile string, timeout int) (*os.File, error) {
	if f, err := os.Open(logfile); err == nil {
		scanner := bufio.NewScanner(f)
		scanner.Scan()
		f.Close()
		if tag, terr := time.Parse(time.RFC3339, scanner.Text()); terr == nil {
			if int(time.Since(tag).Hours()) > timeout {
				os.Remove(logfile)
			}
		} else {
			os.Remove(logfile)
		}
	}
	f, err := os.OpenFile(logfile,
		os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("LogWriter: OpenFile: %w", err)
	}
	if stat, serr := f.Stat(); serr == nil {
		if stat.Size() == 0 {
			f.WriteString(time.Now().Format(time.RFC3339) + "\n")
			f.Sync()
		}
	}
	return f, nil
}

func levelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch l {
	case zapcore.WarnLevel:
		enc.AppendString("WARNING")
	case zapcore.DPanicLevel:
		enc.AppendString("CRITICAL")
	default:
		enc.AppendString(l.CapitalString())
	}
}

func LogLevel() int {
	if env, err := strconv.Atoi(os.Getenv(LOG_ENABLE)); err == nil {
		return env
	} else {
		return SYPIV_CRITICAL_LOGGING
	}
}

func getLogLevel(level int) zapcore.Level {
	switch level := level; level {
	case SYPIV_DEBUG_LOGGING:
		return zapcore.DebugLevel
	case SYPIV_INFO_LOGGING:
		return zapcore.InfoLevel
	case SYPIV_WARNING_LOGGING:
		return zapcore.WarnLevel
	case SYPIV_ERROR_LOGGING:
		return zapcore.ErrorLevel
	default:
		// DPanic only panics on development loggers; New never builds one
		return zapcore.DPanicLevel
	}
}

func logObj(level int, name string, v interface{}) {
	if LogLevel() <= level {
		Log.Log(getLogLevel(level), name, zap.Any("value", v))
	}
}

func logPrintf(level int, format string, a ...interface{}) {
	if LogLevel() <= level {
		Log.Log(getLogLevel(level), fmt.Sprintf(format, a...))
	}
}

func DebugObj(name string, v interface{}) {
	logObj(SYPIV_DEBUG_LOGGING, name, v)
}

func DebugPrintf(format string, a ...interface{}) {
	logPrintf(SYPIV_DEBUG_LOGGING, format, a...)
}

func InfoObj(name string, v interface{}) {
	logObj(SYPIV_INFO_LOGGING, name, v)
}

func InfoPrintf(format string, a ...interface{}) {
	logPrintf(SYPIV_INFO_LOGGING, format, a...)
}

func WarningObj(name string, v interface{}) {
	logObj(SYPIV_WARNING_LOGGING, name, v)
}

func WarningPrintf(format string, a ...interface{}) {
	logPrintf(SYPIV_WARNING_LOGGING, format, a...)
}

func ErrorObj(name string, v interface{}) {
	logObj(SYPIV_ERROR_LOGGING, name, v)
}

func ErrorPrintf(format string, a ...interface{}) {
	logPrintf(SYPIV_ERROR_LOGGING, format, a...)
}

func CriticalObj(name string, v interface{}) {
	logObj(SYPIV_CRITICAL_LOGGING, name, v)
}

func CriticalPrintf(format string, a ...interface{}) {
	logPrintf(SYPIV_CRITICAL_LOGGING, format, a...)
}

// Sync flushes buffered entries; call before os.Exit.
func Sync() {
	Log.Sync()
}
