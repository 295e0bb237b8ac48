package timeline

import "errors"

var (
	// ErrNegativeOffset 步骤偏移为负数或 NaN
	ErrNegativeOffset = errors.New("timeline: step offset must be >= 0")
	// ErrNegativeDuration 步骤时长为负数或 NaN
	ErrNegativeDuration = errors.New("timeline: step duration must be >= 0")
	// ErrUnknownProperty 属性名不受支持
	ErrUnknownProperty = errors.New("timeline: unknown property")
)
