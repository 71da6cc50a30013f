package app

import (
	"strconv"

	"lingua_backend/pkg/logger"

	"go.uber.org/zap/zapcore"
)

func uintStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func levelNow() zapcore.Level {
	return logger.Level()
}
