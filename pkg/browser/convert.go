package browser

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/entrhq/kiosk/pkg/kiosk"
)

// toFloat converts a number returned by Evaluate. Playwright decodes
// integral JavaScript numbers as int and the rest as float64.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

// field reads a numeric field of an object returned by Evaluate.
func field(v interface{}, name string) (float64, error) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("expected object, got %T", v)
	}
	f, ok := toFloat(obj[name])
	if !ok {
		return 0, fmt.Errorf("field %q is not a number: %v", name, obj[name])
	}
	return f, nil
}

// DecodeKeyEvent decodes the payload the page script posts for a keydown:
// a JSON string, or an already decoded object.
func DecodeKeyEvent(args []interface{}) (kiosk.KeyEvent, error) {
	var ev kiosk.KeyEvent
	if len(args) == 0 {
		return ev, errors.New("missing key event")
	}

	var raw []byte
	switch v := args[0].(type) {
	case string:
		raw = []byte(v)
	case map[string]interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return ev, fmt.Errorf("failed to encode key event: %w", err)
		}
		raw = b
	default:
		return ev, fmt.Errorf("unexpected key event payload %T", args[0])
	}

	if err := json.Unmarshal(raw, &ev); err != nil {
		return ev, fmt.Errorf("failed to decode key event: %w", err)
	}
	return ev, nil
}

// veilArg is the argument handed to the page script's renderVeil.
func veilArg(state kiosk.VeilState) map[string]interface{} {
	return map[string]interface{}{
		"opacity":     state.Opacity,
		"fadeMs":      state.Fade.Milliseconds(),
		"message":     state.Message,
		"showMessage": state.ShowMessage,
	}
}
