package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/darkkaiser/go-prowl/pkg/prowl"
	"github.com/peterbourgon/ff/v3"
)

func (c *cli) runAdd(ctx context.Context, args []string) int {
	var (
		flagset       = flag.NewFlagSet("add", flag.ContinueOnError)
		flConfig      = flagset.String("config", "", "설정 파일 경로 (기본: ./prowl.json, 없으면 무시)")
		flAPIKeys     = flagset.String("apikey", "", "쉼표로 구분한 API 키 목록 (설정의 prowl.api_keys 대신 사용)")
		flApplication = flagset.String("application", "", "애플리케이션 이름 (설정의 prowl.application 대신 사용)")
		flEvent       = flagset.String("event", "", "알림 제목 (필수)")
		flDescription = flagset.String("description", "", "알림 본문 (필수)")
		flPriority    = flagset.String("priority", "", "우선순위: very-low, moderate, normal, high, emergency 또는 -2~2")
		flURL         = flagset.String("url", "", "알림에 첨부할 URL")
	)
	flagset.SetOutput(c.stderr)

	if err := ff.Parse(flagset, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if flagset.NArg() > 0 {
		return c.fail(exitUsage, fmt.Errorf("알 수 없는 인자입니다: %v", flagset.Args()))
	}

	cfg, closer, err := c.prepare(*flConfig)
	if err != nil {
		return c.fail(exitFailure, err)
	}
	defer closer.Close()

	params := prowl.Params{
		APIKeys:     cfg.Prowl.APIKeys,
		Application: cfg.Prowl.Application,
		Event:       *flEvent,
		Description: *flDescription,
		URL:         *flURL,
	}
	if *flAPIKeys != "" {
		params.APIKeys = splitKeys(*flAPIKeys)
	}
	if *flApplication != "" {
		params.Application = *flApplication
	}

	if *flPriority != "" {
		p, err := prowl.ParsePriority(*flPriority)
		if err != nil {
			return c.fail(exitUsage, err)
		}
		params.Priority = p.Ptr()
	} else if p, ok := cfg.Prowl.Priority(); ok {
		params.Priority = p.Ptr()
	}

	n, err := prowl.NewNotification(params)
	if err != nil {
		return c.fail(exitCodeFor(err), err)
	}

	quota, err := c.newSender(cfg).Add(ctx, n)
	if err != nil {
		logRequestFailure("add", err)
		return c.fail(exitCodeFor(err), err)
	}

	fmt.Fprintf(c.stdout, "알림을 전송했습니다 (수신자: %d명)%s\n", len(n.APIKeys()), formatQuota(quota))

	return exitOK
}

// formatQuota " (남은 호출: 999회, 초기화: 2025-01-01T10:00:00+09:00)"
func formatQuota(q *prowl.Quota) string {
	if q == nil {
		return ""
	}
	if q.ResetDate.IsZero() {
		return fmt.Sprintf(" (남은 호출: %d회)", q.Remaining)
	}
	return fmt.Sprintf(" (남은 호출: %d회, 초기화: %s)", q.Remaining, q.ResetDate.Local().Format(time.RFC3339))
}
