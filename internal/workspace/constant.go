package workspace

// Log prefixes
const (
	LogPrefixAnalyze = "internal.workspace.AnalyzeProject"
	LogPrefixFind    = "internal.workspace.FindFiles"
	LogPrefixCreate  = "internal.workspace.CreateFile"
)

const (
	MaxFindResults     = 20
	MaxLanguagesShown  = 5
	MaxParsedFileBytes = 512 * 1024
)

var ignoredDirs = map[string]bool{
	".git":         true,
	"__pycache__":  true,
	"node_modules": true,
	"vendor":       true,
	".vscode":      true,
	".idea":        true,
}

var extensionTypes = map[string]string{
	".py":         "python",
	".go":         "go",
	".js":         "javascript",
	".ts":         "typescript",
	".html":       "html",
	".css":        "css",
	".json":       "json",
	".md":         "markdown",
	".yml":        "yaml",
	".yaml":       "yaml",
	".toml":       "toml",
	".txt":        "text",
	".sh":         "bash",
	".sql":        "sql",
	".gitignore":  "gitignore",
	".dockerfile": "dockerfile",
}

// artifactTypes are coarse creation kinds that map onto a concrete file type.
var artifactTypes = map[string]string{
	"api":      "python",
	"web":      "python",
	"function": "python",
	"class":    "python",
}

// User-facing messages
const (
	MsgOutsideRoot      = "❌ La ruta '%s' está fuera del espacio de trabajo"
	MsgDirNotFound      = "❌ El directorio '%s' no existe"
	MsgNotADirectory    = "❌ '%s' no es un directorio"
	MsgNoMatches        = "🔍 No se encontraron archivos que coincidan con '%s'"
	MsgMatchesHeader    = "🔍 Encontrados %d archivos que coinciden con '%s':\n"
	MsgMatchLine        = "  📄 %s\n"
	MsgMoreMatches      = "  ... y %d archivos más\n"
	MsgFileExists       = "❌ El archivo '%s' ya existe. Usa /edit para modificarlo."
	MsgFileCreated      = "✅ Archivo creado: %s (%s)\n📝 Tipo: %s\n🔧 Template aplicado automáticamente"
	MsgPermissionDenied = "❌ Sin permisos para crear '%s'"
)
