package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer hook 비활성화와 로그 파일 해제를 한 번에 수행합니다. 여러 번 호출해도 안전합니다.
type closer struct {
	closers []io.Closer

	hook *hook

	closed atomic.Bool
}

func (c *closer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	// 닫힌 파일에 쓰는 일이 없도록 hook을 먼저 막는다.
	if c.hook != nil {
		_ = c.hook.Close()
	}

	var errs error
	for _, cl := range c.closers {
		if cl == nil {
			continue
		}
		if err := cl.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
