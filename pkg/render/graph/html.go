package graph

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/matzehuels/featuremap/pkg/panel"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { margin: 0; font-family: sans-serif; background: #f3f4f6; }
  .fm-root { position: relative; min-height: 100vh; display: flex; justify-content: center; align-items: center; padding: 1rem; box-sizing: border-box; }
  .fm-root svg { max-width: 100%; height: auto; }
  .fm-panel { position: fixed; top: 0; bottom: 0; width: 33%; background: white; box-shadow: 0 0 16px rgba(0,0,0,.2); padding: 1.5rem; overflow-y: auto; box-sizing: border-box; }
  .fm-panel.right { right: 0; }
  .fm-panel.left { left: 0; }
  .fm-panel .fm-close { position: absolute; top: 1rem; right: 1rem; border: 0; background: none; font-size: 1.5rem; cursor: pointer; }
  .fm-info { position: fixed; top: 1rem; left: 1rem; width: 2.5rem; height: 2.5rem; border-radius: 50%; border: 0; background: #e5e7eb; font: bold 1.1rem serif; cursor: pointer; }
  .fm-info:disabled { opacity: .4; cursor: not-allowed; }
  .fm-help { position: fixed; inset: 0; background: rgba(0,0,0,.5); display: flex; align-items: center; justify-content: center; overflow: auto; }
  .fm-help[hidden], .fm-panel[hidden] { display: none; }
  .fm-help-box { background: white; padding: 1.5rem; border-radius: .5rem; max-width: 42rem; margin: 1rem; }
</style>
</head>
<body>
<div class="fm-root" id="{{.DocID}}">
{{.SVG}}
{{range .Panels}}<aside class="fm-panel {{$.Side}}" data-for="{{.ID}}" hidden>
<button class="fm-close" aria-label="Close">&times;</button>
{{.Body}}</aside>
{{end}}<button class="fm-info" aria-label="How to use this sitemap">i</button>
<div class="fm-help" hidden><div class="fm-help-box">
{{.Help}}</div></div>
<script>{{.Script}}</script>
</div>
</body>
</html>
`

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

type pagePanel struct {
	ID   string
	Body template.HTML
}

type pageData struct {
	Title  string
	DocID  string
	Side   PanelSide
	SVG    template.HTML
	Panels []pagePanel
	Help   template.HTML
	Script template.JS
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
}

func markdownHTML(md goldmark.Markdown, c panel.Content) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(panel.Markdown(c)), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	// goldmark escapes raw HTML by default, so the output is safe to embed.
	return template.HTML(buf.String()), nil
}

// RenderHTML renders a standalone HTML page: the map SVG, one detail panel
// per feature, the info button and the help overlay. The page needs no
// network access.
func RenderHTML(s *Scene, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(s, opts...)

	mapSVG := RenderSVG(s, WithDocumentID(r.docID+"-map"))
	if i := bytes.Index(mapSVG, []byte("<svg")); i > 0 {
		mapSVG = mapSVG[i:]
	}

	md := newMarkdown()
	data := pageData{
		Title:  s.Map.Title,
		DocID:  r.docID,
		Side:   r.side,
		SVG:    template.HTML(mapSVG),
		Script: template.JS(interactionScript(r.docID, false)),
	}
	for _, n := range s.Nodes {
		body, err := markdownHTML(md, panel.Detail(n.Feature, r.panel))
		if err != nil {
			return nil, fmt.Errorf("panel %s: %w", n.Feature.ID, err)
		}
		data.Panels = append(data.Panels, pagePanel{ID: n.Feature.ID, Body: body})
	}
	help, err := markdownHTML(md, panel.Help(s.Map))
	if err != nil {
		return nil, fmt.Errorf("help overlay: %w", err)
	}
	data.Help = help

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute page template: %w", err)
	}
	return buf.Bytes(), nil
}
