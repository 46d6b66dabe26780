package server

const harnessTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 1rem; }
        pre { white-space: pre-wrap; }
    </style>
    <script src="wasm_exec.js"></script>
</head>
<body>
    <pre id="{{.OutputID}}">Loading scripts...</pre>
    <div id="{{.ScreenshotID}}" style="display: none"></div>
{{- if .Wasm}}
    <script>
        const go = new Go();
        WebAssembly.instantiateStreaming(fetch({{.Wasm}}), go.importObject)
            .then(result => go.run(result.instance))
            .catch(err => {
                document.getElementById({{.OutputID}}).textContent += "failed to load " + {{.Wasm}} + ": " + err + "\n";
            });
    </script>
{{- end}}
</body>
</html>
`
