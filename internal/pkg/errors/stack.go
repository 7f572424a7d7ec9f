package errors

import (
	"path/filepath"
	"runtime"
)

// defaultCallerSkip runtime.Callers, captureStack, New/Wrap 계열 함수를 건너뛰어
// 에러를 생성한 호출 지점이 0번째 프레임이 되도록 하는 값입니다.
const defaultCallerSkip = 3

// maxStackFrames 에러마다 보관하는 최대 스택 프레임 수
const maxStackFrames = 5

// StackFrame 스택 프레임 하나의 위치 정보입니다.
type StackFrame struct {
	File     string // 파일 이름 (경로 제외)
	Line     int    // 줄 번호
	Function string // 패키지 경로를 포함한 함수 이름
}

func captureStack(skip int) []StackFrame {
	pc := make([]uintptr, maxStackFrames)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	callersFrames := runtime.CallersFrames(pc[:n])

	frames := make([]StackFrame, 0, n)
	for {
		frame, more := callersFrames.Next()
		frames = append(frames, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			break
		}
	}

	return frames
}
