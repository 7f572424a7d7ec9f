// Package prowl Prowl(https://www.prowlapp.com) 푸시 알림 서비스의 Go 클라이언트입니다.
//
// 알림은 NewNotification으로 생성하며, 이때 필드 길이, 키 개수, 우선순위 범위 등
// 클라이언트 측 제약을 모두 검증합니다. 검증을 통과한 Notification만 Client.Add로 전송할 수 있습니다.
//
//	n, err := prowl.NewNotification(prowl.Params{
//	    APIKeys:     []string{apiKey},
//	    Application: "backup",
//	    Event:       "완료",
//	    Description: "야간 백업이 끝났습니다",
//	    Priority:    prowl.High.Ptr(),
//	})
//	if err != nil {
//	    var ve *prowl.ValidationError
//	    errors.As(err, &ve) // ve.Field, ve.Rule
//	}
//
//	quota, err := prowl.NewClient().Add(ctx, n)
//	switch {
//	case errors.Is(err, prowl.ErrUnauthorized):
//	case errors.Is(err, prowl.ErrRateLimited):
//	}
//
// 라이브러리는 재시도하지 않으며 고루틴을 만들지 않습니다.
package prowl
