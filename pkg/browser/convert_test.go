package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/kiosk/pkg/kiosk"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
		ok   bool
	}{
		{name: "int", in: 1300, want: 1300, ok: true},
		{name: "int64", in: int64(7), want: 7, ok: true},
		{name: "float64", in: 499.2, want: 499.2, ok: true},
		{name: "string", in: "12", ok: false},
		{name: "nil", in: nil, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toFloat(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestField(t *testing.T) {
	obj := map[string]interface{}{"scrollHeight": 2400, "viewportHeight": 1080.5}

	h, err := field(obj, "scrollHeight")
	require.NoError(t, err)
	assert.Equal(t, 2400.0, h)

	v, err := field(obj, "viewportHeight")
	require.NoError(t, err)
	assert.Equal(t, 1080.5, v)

	_, err = field(obj, "missing")
	assert.Error(t, err)

	_, err = field([]interface{}{1}, "scrollHeight")
	assert.Error(t, err)
}

func TestDecodeKeyEvent(t *testing.T) {
	t.Run("json string", func(t *testing.T) {
		ev, err := DecodeKeyEvent([]interface{}{`{"code":"KeyX","key":"X","ctrl":true,"shift":true,"alt":false,"meta":false,"repeat":false}`})
		require.NoError(t, err)
		assert.Equal(t, kiosk.KeyEvent{Code: "KeyX", Key: "X", Ctrl: true, Shift: true}, ev)
	})

	t.Run("object", func(t *testing.T) {
		ev, err := DecodeKeyEvent([]interface{}{map[string]interface{}{"code": "Space", "key": " ", "repeat": true}})
		require.NoError(t, err)
		assert.Equal(t, kiosk.KeyEvent{Code: "Space", Key: " ", Repeat: true}, ev)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := DecodeKeyEvent(nil)
		assert.Error(t, err)
		_, err = DecodeKeyEvent([]interface{}{42})
		assert.Error(t, err)
		_, err = DecodeKeyEvent([]interface{}{"{not json"})
		assert.Error(t, err)
	})
}

func TestVeilArg(t *testing.T) {
	arg := veilArg(kiosk.VeilState{Opacity: 1, Fade: 350 * time.Millisecond, Message: "Up next", ShowMessage: true})

	assert.Equal(t, map[string]interface{}{
		"opacity":     1.0,
		"fadeMs":      int64(350),
		"message":     "Up next",
		"showMessage": true,
	}, arg)
}
