package browser

import (
	"strconv"
	"strings"

	"github.com/entrhq/kiosk/pkg/kiosk"
)

// Names of the functions the page script calls into the controller.
const (
	KeyBinding    = "__kioskKey"
	ActionBinding = "__kioskAction"
)

// LongPress is how long a pointer must stay down to toggle pause.
const LongPress = 800

// ScriptOptions parameterizes InitScript.
type ScriptOptions struct {
	// Fullscreen makes the page request fullscreen after load and whenever
	// it becomes visible again
	Fullscreen bool

	// VeilColor is the CSS background of the veil
	VeilColor string
}

// InitScript returns the page script for kiosk sessions. It is inert on
// documents loaded without the kiosk flag.
func InitScript(opts ScriptOptions) string {
	color := opts.VeilColor
	if color == "" {
		color = "#000"
	}

	r := strings.NewReplacer(
		"{{param.kiosk}}", kiosk.ParamKiosk,
		"{{param.cover}}", kiosk.ParamCover,
		"{{param.message}}", kiosk.ParamMessage,
		"{{fullscreen}}", strconv.FormatBool(opts.Fullscreen),
		"{{veilColor}}", strconv.Quote(color),
		"{{keyBinding}}", KeyBinding,
		"{{actionBinding}}", ActionBinding,
		"{{longPress}}", strconv.Itoa(LongPress),
	)
	return r.Replace(pageScript)
}

const pageScript = `(() => {
  const params = new URLSearchParams(location.search);
  if (params.get('{{param.kiosk}}') !== '1') return;

  const state = { opacity: 0, message: '', showMessage: false, paused: false };
  const cover = Number(params.get('{{param.cover}}'));
  if (Number.isFinite(cover) && cover > 0) {
    state.opacity = 1;
    state.message = params.get('{{param.message}}') || '';
    state.showMessage = state.message !== '';
  }

  let veil = null, caption = null, help = null;

  function css() {
    const style = document.createElement('style');
    style.textContent =
      '#kiosk-veil{position:fixed;inset:0;z-index:2147483646;pointer-events:none;' +
      'display:flex;align-items:center;justify-content:center;background:' + {{veilColor}} + ';}' +
      '#kiosk-veil .kiosk-veil-message{color:#fff;font:600 2.2rem system-ui,sans-serif;' +
      'text-align:center;padding:0 8vw;}' +
      '.kiosk-help{position:fixed;inset:0;z-index:2147483647;display:flex;align-items:center;' +
      'justify-content:center;background:rgba(0,0,0,.45);}' +
      '.kiosk-help.hidden{display:none;}' +
      '.kiosk-help-card{background:#fff;color:#222;padding:20px 28px;border-radius:12px;' +
      'font-family:system-ui,sans-serif;text-align:center;}' +
      '.kiosk-help-card button{margin:6px;font-size:1rem;}' +
      'body.kiosk-paused::after{content:"Paused";position:fixed;bottom:12px;right:16px;' +
      'background:rgba(0,0,0,.6);color:#fff;padding:6px 10px;border-radius:8px;z-index:2147483647;}';
    return style;
  }

  function build() {
    if (veil || !document.documentElement) return;

    veil = document.createElement('div');
    veil.id = 'kiosk-veil';
    caption = document.createElement('div');
    caption.className = 'kiosk-veil-message';
    veil.appendChild(caption);

    help = document.createElement('div');
    help.id = 'kiosk-help';
    help.className = 'kiosk-help hidden';
    const card = document.createElement('div');
    card.className = 'kiosk-help-card';
    card.innerHTML =
      '<h3>Kiosk Controls</h3>' +
      '<p><strong>Space</strong> / <strong>P</strong> pause or resume</p>' +
      '<p><strong>H</strong> show or hide help</p>' +
      '<p><strong>Ctrl+Shift+X</strong> exit kiosk mode</p>' +
      '<button data-kiosk-action="toggle_pause">Pause / Resume</button>' +
      '<button data-kiosk-action="toggle_help">Close</button>' +
      '<button data-kiosk-action="exit">Exit kiosk</button>';
    help.appendChild(card);
    help.addEventListener('click', (e) => {
      const action = e.target && e.target.getAttribute && e.target.getAttribute('data-kiosk-action');
      if (action) post('{{actionBinding}}', action);
    });

    document.documentElement.appendChild(css());
    document.documentElement.appendChild(veil);
    document.documentElement.appendChild(help);
    apply(0);
  }

  function apply(fadeMs) {
    if (!veil) return;
    veil.style.transition = 'opacity ' + Math.max(0, fadeMs) + 'ms ease';
    veil.style.opacity = String(state.opacity);
    caption.textContent = state.message;
    caption.style.visibility = state.showMessage ? 'visible' : 'hidden';
  }

  function syncPaused() {
    if (document.body) document.body.classList.toggle('kiosk-paused', state.paused);
  }

  function post(binding, payload) {
    const fn = window[binding];
    if (typeof fn === 'function') {
      try { fn(payload); } catch (e) { /* controller gone */ }
    }
  }

  window.__kiosk = {
    renderVeil(s) {
      state.opacity = Number(s.opacity) || 0;
      state.message = s.message || '';
      state.showMessage = !!s.showMessage;
      build();
      apply(Number(s.fadeMs) || 0);
    },
    setPaused(p) {
      state.paused = !!p;
      syncPaused();
    },
    toggleHelp() {
      build();
      if (!help) return false;
      help.classList.toggle('hidden');
      return !help.classList.contains('hidden');
    },
  };

  build();
  document.addEventListener('DOMContentLoaded', () => { build(); syncPaused(); });

  document.addEventListener('keydown', (e) => {
    if (e.code === 'Space' || (e.ctrlKey && e.shiftKey && e.code === 'KeyX')) e.preventDefault();
    post('{{keyBinding}}', JSON.stringify({
      code: e.code, key: e.key, ctrl: e.ctrlKey, shift: e.shiftKey,
      alt: e.altKey, meta: e.metaKey, repeat: e.repeat,
    }));
  }, true);

  let pressTimer = null;
  const cancelPress = () => { clearTimeout(pressTimer); pressTimer = null; };
  document.addEventListener('pointerdown', () => {
    cancelPress();
    pressTimer = setTimeout(() => { pressTimer = null; post('{{actionBinding}}', 'toggle_pause'); }, {{longPress}});
  }, true);
  document.addEventListener('pointerup', cancelPress, true);
  document.addEventListener('pointercancel', cancelPress, true);
  document.addEventListener('pointermove', cancelPress, true);

  if ({{fullscreen}}) {
    const ensureFullscreen = () => {
      const el = document.documentElement;
      if (!document.fullscreenElement && el && el.requestFullscreen) {
        el.requestFullscreen().catch(() => {});
      }
    };
    window.addEventListener('load', () => {
      setTimeout(ensureFullscreen, 300);
      setTimeout(ensureFullscreen, 600);
    });
    document.addEventListener('visibilitychange', () => {
      if (!document.hidden) setTimeout(ensureFullscreen, 100);
    });
  }
})();`
