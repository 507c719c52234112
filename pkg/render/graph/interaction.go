package graph

import (
	"bytes"
	"fmt"
)

const interactionCSS = `
    .fm-node { cursor: pointer; }
    .fm-node circle { transition: opacity 0.15s ease; }
    .fm-node:hover circle { opacity: 0.85; }
    .fm-close, .fm-info, .fm-help { cursor: pointer; }
    .fm-info.disabled { opacity: 0.4; cursor: not-allowed; }`

// interactionJS replays the selection controller policy: selecting closes
// help, the info toggle is disabled while a panel is open, and the help
// overlay is dismissed by clicking it.
const interactionJS = `
    (function () {
      const root = document.getElementById('%s');
      if (!root) return;
      const svgMode = %t;
      let selected = null;
      let help = false;
      const show = (el, on) => {
        if (!el) return;
        if (svgMode) el.setAttribute('visibility', on ? 'visible' : 'hidden');
        else el.hidden = !on;
      };
      const info = root.querySelector('.fm-info');
      const overlay = root.querySelector('.fm-help');
      function sync() {
        root.querySelectorAll('.fm-panel').forEach(p => show(p, p.dataset.for === selected));
        show(overlay, help && selected === null);
        if (info) {
          info.classList.toggle('disabled', selected !== null);
          if (!svgMode) info.disabled = selected !== null;
        }
      }
      root.querySelectorAll('.fm-node').forEach(n => n.addEventListener('click', () => {
        selected = n.dataset.feature;
        help = false;
        sync();
      }));
      root.querySelectorAll('.fm-close').forEach(c => c.addEventListener('click', e => {
        e.stopPropagation();
        selected = null;
        sync();
      }));
      if (info) info.addEventListener('click', () => {
        if (selected !== null) return;
        help = !help;
        sync();
      });
      if (overlay) overlay.addEventListener('click', () => {
        help = false;
        sync();
      });
      sync();
    })();`

func interactionScript(docID string, svgMode bool) string {
	return fmt.Sprintf(interactionJS, docID, svgMode)
}

func renderInteraction(buf *bytes.Buffer, docID string, svgMode bool) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", interactionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", interactionScript(docID, svgMode))
}
