package http

import (
	"html/template"

	"github.com/aretw0/frasig/pkg/domain"
)

type pageData struct {
	Sentence string
	SVG      template.HTML
}

// setAnalysis fills the result area. The SVG comes from our own renderer,
// which escapes all tree text.
func (d *pageData) setAnalysis(a *domain.Analysis) {
	d.SVG = template.HTML(a.SVG)
}

var page = template.Must(template.New("index").Parse(pageHTML))

const pageHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>FRASIG - Interaktiv PSG</title>
    <style>
        body { font-family: 'Segoe UI', sans-serif; background: #f0f2f5; display: flex; justify-content: center; padding: 40px; }
        .container { background: white; padding: 30px; border-radius: 15px; box-shadow: 0 8px 25px rgba(0,0,0,0.1); width: 95%; text-align: center; }
        h1 { color: #1a73e8; }
        input[type="text"] { width: 70%; padding: 12px; border: 2px solid #ddd; border-radius: 8px; font-size: 16px; }
        button { padding: 12px 25px; background: #1a73e8; color: white; border: none; border-radius: 8px; cursor: pointer; }
        .result-area { margin-top: 40px; border-top: 1px solid #eee; overflow-x: auto; padding: 20px; display: flex; flex-direction: column; align-items: center; }
        svg { max-width: 100%; height: auto; }
    </style>
</head>
<body>
    <div class="container">
        <h1>FRASIG</h1>
        <form method="POST">
            <input type="text" name="sentence" placeholder="Skriv en mening..." value="{{ .Sentence }}" required>
            <button type="submit">Analysera</button>
        </form>
        {{- if .SVG }}
        <div class="result-area">
            <h3>Resultat för: <i>"{{ .Sentence }}"</i></h3>
            {{ .SVG }}
        </div>
        {{- end }}
    </div>
</body>
</html>
`
