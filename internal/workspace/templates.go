package workspace

var templates = map[string]string{
	"python": `#!/usr/bin/env python3
"""
{{.Name}}.py

Descripción del módulo

Autor: {{.Author}}
Fecha: {{.Date}}
"""


def main():
    """Función principal"""
    pass


if __name__ == "__main__":
    main()
`,
	"go": `// Package main: {{.Name}}
//
// Autor: {{.Author}}
// Fecha: {{.Date}}
package main

func main() {
}
`,
	"javascript": `/**
 * {{.Name}}.js
 *
 * Descripción del módulo
 *
 * @author {{.Author}}
 * @date {{.Date}}
 */

'use strict';

function main() {
    // Código aquí
}

if (require.main === module) {
    main();
}

module.exports = { main };
`,
	"html": `<!DOCTYPE html>
<html lang="es">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Name}}</title>
</head>
<body>
    <h1>{{.Name}}</h1>
</body>
</html>
`,
	"css": `/* {{.Name}}.css - {{.Date}} */

body {
    margin: 0;
    font-family: Arial, sans-serif;
}
`,
	"markdown": `# {{.Name}}

Descripción del proyecto/documento.

## Uso

` + "```bash\n# Ejemplos de uso\n```" + `

---
{{.Author}}, {{.Year}}
`,
	"json": `{
  "name": "{{.Name}}",
  "version": "1.0.0",
  "created": "{{.Date}}"
}
`,
	"yaml": `# {{.Name}}
name: {{.Name}}
version: 1.0.0
created: "{{.Date}}"
`,
	"gitignore": `# Binarios
*.exe
*.out

# Entornos
.env
.venv/
__pycache__/
node_modules/

# Editores
.vscode/
.idea/
`,
	"dockerfile": `FROM python:3.12-slim

WORKDIR /app
COPY . .

CMD ["python", "main.py"]
`,
}
