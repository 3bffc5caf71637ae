package logger

import (
	"fmt"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

const (
	fileLogMaxAge       = 7 * 24 * time.Hour
	fileLogRotationTime = 24 * time.Hour
)

type fileSink = rotatelogs.RotateLogs

func newFileSink(pattern string) (*fileSink, error) {
	rl, err := rotatelogs.New(
		pattern,
		rotatelogs.WithMaxAge(fileLogMaxAge),
		rotatelogs.WithRotationTime(fileLogRotationTime),
	)
	if err != nil {
		return nil, fmt.Errorf("open rotating log %q: %w", pattern, err)
	}
	return rl, nil
}
