package prowl

import (
	"testing"
	"time"

	apperrors "github.com/darkkaiser/go-prowl/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	t.Run("성공 응답", func(t *testing.T) {
		body := `<?xml version="1.0" encoding="UTF-8"?>
<prowl>
<success code="200" remaining="999" resetdate="1700000000" />
</prowl>`

		r, err := parseResponse([]byte(body))
		require.NoError(t, err)
		assert.True(t, r.success)
		assert.Equal(t, 200, r.code)
		require.NotNil(t, r.quota)
		assert.Equal(t, 999, r.quota.Remaining)
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), r.quota.ResetDate)
	})

	t.Run("한도 정보가 없는 성공 응답", func(t *testing.T) {
		r, err := parseResponse([]byte(`<prowl><success code="200"/></prowl>`))
		require.NoError(t, err)
		assert.True(t, r.success)
		assert.Nil(t, r.quota)
	})

	t.Run("에러 응답", func(t *testing.T) {
		body := `<?xml version="1.0" encoding="UTF-8"?>
<prowl>
<error code="401">Invalid API key</error>
</prowl>`

		r, err := parseResponse([]byte(body))
		require.NoError(t, err)
		assert.False(t, r.success)
		assert.Equal(t, 401, r.code)
		assert.Equal(t, "Invalid API key", r.message)
		assert.Nil(t, r.quota)
	})

	t.Run("속성이 없는 에러 응답", func(t *testing.T) {
		r, err := parseResponse([]byte(`<prowl><error> Something broke </error></prowl>`))
		require.NoError(t, err)
		assert.False(t, r.success)
		assert.Equal(t, 0, r.code)
		assert.Equal(t, "Something broke", r.message)
	})

	t.Run("XML이 아닌 본문", func(t *testing.T) {
		_, err := parseResponse([]byte(`<html><body>Bad Gateway`))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
	})

	t.Run("prowl 요소가 없는 본문", func(t *testing.T) {
		_, err := parseResponse([]byte(`<other><success code="200"/></other>`))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
	})

	t.Run("success와 error가 모두 없는 본문", func(t *testing.T) {
		_, err := parseResponse([]byte(`<prowl><unknown/></prowl>`))
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ParsingFailed))
	})
}
