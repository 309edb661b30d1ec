package main

import (
	"fmt"
	"html"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recera/viewpane/internal/config"
	"github.com/recera/viewpane/internal/content"
	"github.com/recera/viewpane/pkg/bridge"
)

func newServeCommand() *cobra.Command {
	var port int
	var host string
	var document string

	cmd := &cobra.Command{
		Use:   "serve [document]",
		Short: "Serve a document preview with the websocket viewport bridge",
		Long: `Serves a browser preview of a document. The page connects back over a
websocket; every connected view gets its own viewport engine on the server,
receives transform and indicator frames, and is told to reload when the
watched document changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if len(args) > 0 {
				document = args[0]
			}
			if document == "" {
				document = cfg.Serve.Document
			}
			if document == "" {
				return fmt.Errorf("no document given: pass one as an argument or set serve.document in viewpane.json")
			}
			if host == "" {
				host = cfg.Serve.Host
			}
			if port == 0 {
				port = cfg.Serve.Port
			}
			return runServe(host, port, document, cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to serve the preview on")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind the preview server to")

	return cmd
}

func runServe(host string, port int, document string, cfg *config.Config) error {
	if _, err := os.Stat(document); err != nil {
		return fmt.Errorf("cannot read document %s: %w", document, err)
	}

	server := bridge.NewServer(cfg.ViewportOptions())

	watcher, err := content.NewWatcher(document, 100*time.Millisecond, func(path string) {
		log.Printf("[Serve] %s changed, reloading %d view(s)", filepath.Base(path), server.SessionCount())
		server.Broadcast(bridge.Frame{Type: "reload"})
	})
	if err != nil {
		return err
	}
	defer watcher.Close()
	watcher.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, previewPage)
	})
	mux.HandleFunc("/document", func(w http.ResponseWriter, r *http.Request) {
		serveDocument(w, document)
	})
	mux.HandleFunc("/viewpane/live", server.HandleWebSocket)

	addr := fmt.Sprintf("%s:%d", host, port)
	log.Printf("[Serve] Previewing %s on http://%s", document, addr)
	return http.ListenAndServe(addr, mux)
}

// serveDocument returns the document body as a content fragment. Rendering
// pipelines (markdown, sanitization) are external collaborators; plain text
// is escaped into a <pre> block and HTML passes through untouched.
func serveDocument(w http.ResponseWriter, document string) {
	data, err := os.ReadFile(document)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	switch strings.ToLower(filepath.Ext(document)) {
	case ".html", ".htm":
		w.Write(data)
	default:
		fmt.Fprintf(w, "<pre>%s</pre>", html.EscapeString(string(data)))
	}
}

// previewPage is the thin client: it loads the document into the one content
// node, reports viewport and content sizes, forwards raw input as bridge
// commands, and applies the transform / indicator frames it receives. The
// engine on the server is the sole source of truth for viewport position, so
// every handled input calls preventDefault.
const previewPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>viewpane</title>
<style>
  html, body { margin: 0; height: 100%; overflow: hidden; }
  #viewport { position: relative; width: 100%; height: 100%; overflow: hidden; }
  #content { position: absolute; left: 50%; top: 0; transform-origin: center; }
  .thumb { position: absolute; background: rgba(100,100,100,.6); border-radius: 3px; opacity: 0; transition: opacity .2s; }
  #vthumb { right: 2px; width: 6px; }
  #hthumb { bottom: 2px; height: 6px; }
  #zoom { position: absolute; right: 12px; bottom: 12px; padding: 2px 8px; background: rgba(0,0,0,.6); color: #fff; border-radius: 4px; font: 12px sans-serif; opacity: 0; transition: opacity .2s; }
</style>
</head>
<body>
<div id="viewport">
  <div id="content"></div>
  <div id="vthumb" class="thumb"></div>
  <div id="hthumb" class="thumb"></div>
  <div id="zoom"></div>
</div>
<script>
const viewport = document.getElementById('viewport');
const contentEl = document.getElementById('content');
const ws = new WebSocket('ws://' + location.host + '/viewpane/live');
const send = (msg) => { if (ws.readyState === 1) ws.send(JSON.stringify(msg)); };

function reportSizes() {
  send({action: 'resize', width: viewport.clientWidth, height: viewport.clientHeight});
  send({action: 'measure', width: contentEl.scrollWidth, height: contentEl.scrollHeight});
}

async function loadDocument() {
  const res = await fetch('/document');
  contentEl.innerHTML = await res.text();
  contentEl.style.marginLeft = -contentEl.scrollWidth / 2 + 'px';
  // Measure shortly after layout settles.
  setTimeout(reportSizes, 150);
}

ws.onopen = loadDocument;
ws.onmessage = (ev) => {
  const frame = JSON.parse(ev.data);
  if (frame.type === 'transform') {
    contentEl.style.transform = frame.transform;
  } else if (frame.type === 'indicators') {
    const ind = frame.indicators;
    const show = ind.Visible ? 1 : 0;
    const v = document.getElementById('vthumb');
    v.style.opacity = show;
    v.style.top = ind.Vertical.Position + 'px';
    v.style.height = ind.Vertical.Extent + 'px';
    const h = document.getElementById('hthumb');
    h.style.opacity = show;
    h.style.left = ind.Horizontal.Position + 'px';
    h.style.width = ind.Horizontal.Extent + 'px';
    const z = document.getElementById('zoom');
    z.style.opacity = show;
    z.textContent = ind.ZoomLabel;
  } else if (frame.type === 'reload') {
    loadDocument();
  }
};

window.addEventListener('resize', () =>
  send({action: 'resize', width: viewport.clientWidth, height: viewport.clientHeight}));

viewport.addEventListener('wheel', (e) => {
  e.preventDefault();
  if (e.ctrlKey) {
    send({action: 'zoom', delta: e.deltaY > 0 ? -10 : 10, cursorX: e.clientX, cursorY: e.clientY});
  } else if (e.shiftKey) {
    send({action: 'pan', deltaX: -e.deltaY, deltaY: 0});
  } else {
    send({action: 'pan', deltaX: -e.deltaX, deltaY: -e.deltaY});
  }
}, {passive: false});

window.addEventListener('keydown', (e) => {
  if (e.ctrlKey && (e.key === '+' || e.key === '=')) { e.preventDefault(); send({action: 'zoom', delta: 10}); }
  else if (e.ctrlKey && e.key === '-') { e.preventDefault(); send({action: 'zoom', delta: -10}); }
  else if (e.ctrlKey && e.key === '0') { e.preventDefault(); send({action: 'reset'}); }
  else if (e.key === 'Home') { e.preventDefault(); send({action: 'scrollTop'}); }
  else if (e.key === 'End') { e.preventDefault(); send({action: 'scrollBottom'}); }
});
</script>
</body>
</html>
`
