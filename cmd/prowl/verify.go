package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	applog "github.com/darkkaiser/go-prowl/pkg/log"
	"github.com/peterbourgon/ff/v3"
)

// runVerify 지정된 API 키를 하나씩 확인합니다. 하나라도 실패하면 exitFailure를 반환합니다.
func (c *cli) runVerify(ctx context.Context, args []string) int {
	var (
		flagset   = flag.NewFlagSet("verify", flag.ContinueOnError)
		flConfig  = flagset.String("config", "", "설정 파일 경로 (기본: ./prowl.json, 없으면 무시)")
		flAPIKeys = flagset.String("apikey", "", "쉼표로 구분한 API 키 목록 (설정의 prowl.api_keys 대신 사용)")
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

	keys := cfg.Prowl.APIKeys
	if *flAPIKeys != "" {
		keys = splitKeys(*flAPIKeys)
	}
	if len(keys) == 0 {
		return c.fail(exitUsage, errors.New("확인할 API 키가 없습니다 (-apikey 또는 설정의 prowl.api_keys)"))
	}

	v := c.newVerifier(cfg)

	code := exitOK
	for _, key := range keys {
		masked := applog.MaskSensitiveData(key)

		quota, err := v.Verify(ctx, key)
		if err != nil {
			logRequestFailure("verify", err)
			fmt.Fprintf(c.stdout, "%s: 확인 실패: %v\n", masked, err)
			code = max(code, exitCodeFor(err))
			continue
		}

		fmt.Fprintf(c.stdout, "%s: 유효한 API 키입니다%s\n", masked, formatQuota(quota))
	}

	return code
}
