package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// hook 포맷팅된 로그 이벤트를 파일과 콘솔로 분배합니다.
type hook struct {
	fileWriter    io.Writer // 로테이션 파일 (모든 레벨)
	consoleWriter io.Writer // 표준 에러 (모든 레벨)

	formatter Formatter

	mu     sync.RWMutex
	closed bool
}

func (h *hook) Levels() []Level {
	return AllLevels
}

// Fire 로그 이벤트를 한 번 포맷팅하여 설정된 모든 Writer에 기록합니다.
func (h *hook) Fire(entry *Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil
	}

	msg, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	// 콘솔 쓰기 실패는 로깅 전체에 영향을 주지 않도록 전파하지 않는다.
	if h.consoleWriter != nil {
		if _, err := h.consoleWriter.Write(msg); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] 콘솔 로그 쓰기 실패: %v\n", err)
		}
	}

	if h.fileWriter != nil {
		if _, err := h.fileWriter.Write(msg); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] 로그 파일 쓰기 실패: %v\n", err)
			return err
		}
	}

	return nil
}

// Close 이후의 로그 기록을 차단합니다. 진행 중인 Fire가 끝날 때까지 대기합니다.
func (h *hook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	return nil
}
