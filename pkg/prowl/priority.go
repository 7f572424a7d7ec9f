package prowl

import (
	"fmt"
	"strconv"
	"strings"
)

// Priority 알림의 긴급도입니다. Prowl은 -2부터 2까지의 정수로 전송합니다.
//
// 정의된 상수 외의 값은 NewNotification에서 거부되므로 잘못된 우선순위가 전송되는 일은 없습니다.
type Priority int8

const (
	VeryLow   Priority = -2
	Moderate  Priority = -1
	Normal    Priority = 0
	High      Priority = 1
	Emergency Priority = 2
)

var priorityNames = map[Priority]string{
	VeryLow:   "very-low",
	Moderate:  "moderate",
	Normal:    "normal",
	High:      "high",
	Emergency: "emergency",
}

// Int 전송에 사용하는 정수 값을 반환합니다.
func (p Priority) Int() int {
	return int(p)
}

// IsValid 정의된 우선순위인지 확인합니다.
func (p Priority) IsValid() bool {
	_, ok := priorityNames[p]
	return ok
}

// Ptr Params.Priority에 대입할 수 있도록 포인터를 반환합니다.
//
//	prowl.Params{Priority: prowl.High.Ptr(), ...}
func (p Priority) Ptr() *Priority {
	return &p
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "Priority(" + strconv.Itoa(int(p)) + ")"
}

// ParsePriority 이름(very-low, moderate, normal, high, emergency) 또는 정수(-2~2)를 Priority로 변환합니다.
// 이름은 대소문자를 구분하지 않으며 '_'와 '-'를 같게 취급합니다.
func ParsePriority(s string) (Priority, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")

	if name == "verylow" {
		name = "very-low"
	}
	for p, n := range priorityNames {
		if n == name {
			return p, nil
		}
	}

	if i, err := strconv.Atoi(name); err == nil {
		if p := Priority(i); i >= int(VeryLow) && i <= int(Emergency) && p.IsValid() {
			return p, nil
		}
	}

	return Normal, fmt.Errorf("prowl: 알 수 없는 우선순위입니다: %q (very-low, moderate, normal, high, emergency 또는 -2~2)", s)
}
