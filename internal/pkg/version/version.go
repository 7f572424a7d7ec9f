// Package version go-prowl 빌드 정보를 관리합니다.
//
// 링커 플래그(-ldflags)로 주입된 버전 메타데이터와 실행 환경 정보(Go 버전, OS, 아키텍처)를 합쳐
// 하나의 Info로 제공합니다. ldflags가 없는 개발 빌드(go run, go install)에서는
// debug.ReadBuildInfo의 VCS 정보와 모듈 버전으로 값을 보강합니다.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

const (
	unknown = "unknown"
	none    = "none"

	// productName User-Agent 헤더에 사용하는 제품 이름
	productName = "go-prowl"
)

var globalBuildInfo atomic.Value

// readBuildInfo 테스트에서 교체할 수 있도록 변수로 선언합니다.
var readBuildInfo = debug.ReadBuildInfo

// 다음 변수들은 빌드 시점에 -ldflags "-X ..."로 주입됩니다.
// 직접 참조하지 말고 Get()을 사용합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = ""
	buildDate     = ""
)

func init() {
	bi := Info{
		Version:   strings.TrimSpace(appVersion),
		Commit:    strings.TrimSpace(gitCommitHash),
		BuildDate: strings.TrimSpace(buildDate),
	}

	if strings.ToLower(strings.TrimSpace(gitTreeState)) == "dirty" {
		bi.DirtyBuild = true
	}

	set(enrichBuildInfo(bi))
}

// Info 빌드 및 실행 환경 정보입니다.
type Info struct {
	Version    string `json:"version"`     // 예: v1.2.0
	Commit     string `json:"commit"`      // Git 커밋 해시
	BuildDate  string `json:"build_date"`  // ISO 8601 권장
	GoVersion  string `json:"go_version"`  // 예: go1.24.0
	OS         string `json:"os"`          // 예: linux
	Arch       string `json:"arch"`        // 예: amd64
	DirtyBuild bool   `json:"dirty_build"` // 빌드 시점 작업 트리에 커밋되지 않은 변경이 있었는지 여부
}

// Get 빌드 정보를 반환합니다.
func Get() Info {
	bi := globalBuildInfo.Load()
	if bi == nil {
		return Info{Version: unknown, Commit: unknown, BuildDate: unknown}
	}
	return bi.(Info)
}

func set(bi Info) {
	globalBuildInfo.Store(bi)
}

// enrichBuildInfo 비어 있는 필드를 런타임 정보와 debug.BuildInfo로 채웁니다.
func enrichBuildInfo(bi Info) Info {
	if bi.GoVersion == "" {
		bi.GoVersion = runtime.Version()
	}
	if bi.OS == "" {
		bi.OS = runtime.GOOS
	}
	if bi.Arch == "" {
		bi.Arch = runtime.GOARCH
	}

	if val, ok := readBuildInfo(); ok {
		for _, setting := range val.Settings {
			switch setting.Key {
			case "vcs.revision":
				if bi.Commit == "" || bi.Commit == unknown || bi.Commit == none {
					bi.Commit = setting.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" || bi.BuildDate == unknown {
					bi.BuildDate = setting.Value
				}
			case "vcs.modified":
				if setting.Value == "true" {
					bi.DirtyBuild = true
				}
			}
		}

		// 라이브러리로 import된 경우 Main 모듈은 호스트 애플리케이션이므로,
		// 의존성 목록에서 go-prowl 모듈 버전을 우선 찾는다.
		if bi.Version == "" {
			for _, dep := range val.Deps {
				if dep.Path == modulePath {
					bi.Version = dep.Version
					break
				}
			}
		}
		if bi.Version == "" && val.Main.Path == modulePath && val.Main.Version != "(devel)" {
			bi.Version = val.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" || bi.Commit == none {
		bi.Commit = unknown
	}
	if bi.BuildDate == "" {
		bi.BuildDate = unknown
	}

	return bi
}

// modulePath go-prowl 모듈 경로
const modulePath = "github.com/darkkaiser/go-prowl"

// Version 버전 문자열을 반환합니다.
func Version() string {
	return Get().Version
}

// UserAgent Prowl API 요청에 사용하는 User-Agent 값을 반환합니다.
// 예: "go-prowl/v1.2.0 (linux; amd64)"
func UserAgent() string {
	bi := Get()
	return fmt.Sprintf("%s/%s (%s; %s)", productName, bi.Version, bi.OS, bi.Arch)
}

// ToMap 구조적 로깅용 맵을 반환합니다.
func (i Info) ToMap() map[string]any {
	return map[string]any{
		"version":     i.Version,
		"commit":      i.Commit,
		"build_date":  i.BuildDate,
		"go_version":  i.GoVersion,
		"os":          i.OS,
		"arch":        i.Arch,
		"dirty_build": i.DirtyBuild,
	}
}

// String 빌드 정보를 한 줄로 요약합니다.
func (i Info) String() string {
	if i.Version == "" {
		return unknown
	}
	v := i.Version
	if i.DirtyBuild {
		v += "+dirty"
	}

	var details []string
	if i.Commit != "" && i.Commit != unknown {
		commit := i.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		details = append(details, "commit: "+commit)
	}
	if i.BuildDate != "" && i.BuildDate != unknown {
		details = append(details, "date: "+i.BuildDate)
	}
	if i.GoVersion != "" {
		details = append(details, "go_version: "+i.GoVersion)
	}
	if i.OS != "" {
		details = append(details, "os: "+i.OS)
	}
	if i.Arch != "" {
		details = append(details, "arch: "+i.Arch)
	}

	if len(details) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}
