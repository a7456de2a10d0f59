package router

import (
	"time"

	"intent-pipeline/internal/intent"
)

// Log prefixes
const (
	LogPrefixRoute = "internal.router.Route"
)

// Routing thresholds
const (
	DirectThreshold = 0.7
	ToolsThreshold  = 0.6
)

// Tool collaborator names
const (
	ToolCodeAnalyzer      = "code_analyzer"
	ToolWorkspaceExplorer = "workspace_explorer"
	ToolFileManager       = "file_manager"
)

// Defaults
const (
	DefaultLLMTimeout      = 120 * time.Second
	DefaultAssistantName   = "DevAsistente"
	DefaultAnalyzePath     = "."
	DefaultFindPattern     = "*"
	DefaultCreatePath      = "new_file.py"
	DefaultCreateFileType  = "python"
	MetricsEventRoute      = "route"
	PromptRecentActionsMax = 2
)

// Messages
const (
	MsgLLMFailed        = "Lo siento, hubo un error procesando tu solicitud."
	MsgLLMFailedHistory = "Error en LLM"
	MsgProcessingError  = "Error procesando solicitud: %v"
	MsgToolError        = "Error usando herramientas: %v"
	MsgNoActiveSession  = "📊 **Estado**: No hay conversación activa"
)

// Tool result headers
const (
	HeaderAnalysis = "📊 **Análisis completado**:\n"
	HeaderSearch   = "🔍 **Búsqueda completada**:\n"
	HeaderCreated  = "📁 **Archivo creado**:\n"
)

// Prompt parts
const (
	PromptPersona       = "Eres %s, un asistente conversacional para desarrollo. Responde de forma natural y útil."
	PromptContext       = "Contexto: El usuario está trabajando en %s"
	PromptRecentActions = "Acciones recientes: %s"
	PromptTarget        = "Target específico: %s"
	PromptClosing       = "Responde de forma conversacional, no como comando. Si necesitas acción específica, sé proactivo."
	PromptSeparator     = "\n\n"
)

var intentGuidance = map[intent.Intent]string{
	intent.IntentAnalyze:  "El usuario quiere que analices código/proyecto. Enfócate en findings específicos y sugerencias.",
	intent.IntentCreate:   "El usuario quiere crear algo. Pregunta detalles si necesitas y genera contenido útil.",
	intent.IntentOptimize: "El usuario quiere optimizar algo. Identifica bottlenecks y sugiere mejoras específicas.",
	intent.IntentExplain:  "El usuario quiere explicación. Sé claro, didáctico y da ejemplos.",
	intent.IntentFind:     "El usuario busca algo. Ayúdale a localizar lo que necesita.",
}

// toolForIntent maps an intent to the collaborator that can satisfy it.
var toolForIntent = map[intent.Intent]string{
	intent.IntentAnalyze: ToolCodeAnalyzer,
	intent.IntentFind:    ToolWorkspaceExplorer,
	intent.IntentCreate:  ToolFileManager,
}

const helpText = `🤖 **%s - Ayuda Conversacional**

Puedes hablar conmigo naturalmente:

🔍 **Análisis**:
• "Analiza este proyecto"
• "Qué problemas tiene el código"
• "Revisa el performance"

🏗️ **Creación**:
• "Crea una nueva función"
• "Genera una API REST"
• "Hacer un proyecto Python"

🔧 **Optimización**:
• "Optimiza este código"
• "Mejora el performance"
• "Acelera la función X"

📊 **Estado**:
• "Estado del proyecto"
• "Métricas del sistema"
• "Progreso actual"

🔎 **Búsqueda**:
• "Busca la función main"
• "Dónde está definida la clase X"

💡 **Ejemplo**: En lugar de ` + "`/analyze --metrics performance`" + `, simplemente di "Analiza el performance de este proyecto"
`

const statusText = `📊 **Estado de la Conversación**

⏱️ **Duración**: %.1f minutos
🔢 **Turnos**: %d (%d exitosos)
⚡ **Tiempo promedio**: %.2fs
✅ **Tasa de éxito**: %.1f%%

🎯 **Contexto Actual**:
• **Tarea**: %s
• **Objetivo**: %s
• **Acciones recientes**: %s`
