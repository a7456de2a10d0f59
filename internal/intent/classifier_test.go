package intent

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClassify_EmptyInput(t *testing.T) {
	c := New(0)

	for _, in := range []string{"", "   ", "\t\n "} {
		got := c.Classify(in)
		if got.Intent != IntentUnknown {
			t.Errorf("Classify(%q) intent = %s, want unknown", in, got.Intent)
		}
		if got.Confidence != 0 {
			t.Errorf("Classify(%q) confidence = %f, want 0", in, got.Confidence)
		}
		if got.HasTarget() {
			t.Errorf("Classify(%q) target = %q, want none", in, got.Target)
		}
		if got.OriginalText != in {
			t.Errorf("Classify(%q) original text = %q", in, got.OriginalText)
		}
	}
}

func TestClassify_Intents(t *testing.T) {
	c := New(0)

	tests := []struct {
		name       string
		text       string
		wantIntent Intent
		wantConf   float64
	}{
		{"analyze with keyword", "Analiza este proyecto y encuentra problemas", IntentAnalyze, 0.9*0.8 + 0.5/6},
		{"analyze pattern only", "Analiza este proyecto", IntentAnalyze, 0.9 * 0.8},
		{"create pattern only", "Crea una función", IntentCreate, 0.85 * 0.8},
		{"create pattern and keywords", "hacer un nuevo servicio", IntentCreate, 0.85*0.8 + 0.5*2/7},
		{"status pattern and keywords", "Estado del progreso", IntentStatus, 0.9*0.8 + 0.5*2/5},
		{"optimize", "optimiza la memoria del código", IntentOptimize, 0.8 * 0.8},
		{"keyword only", "evaluar", IntentAnalyze, 0.5 / 6},
		{"nothing matches", "hola mundo", IntentUnknown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text)
			if got.Intent != tt.wantIntent {
				t.Errorf("intent = %s, want %s", got.Intent, tt.wantIntent)
			}
			if !approx(got.Confidence, tt.wantConf) {
				t.Errorf("confidence = %f, want %f", got.Confidence, tt.wantConf)
			}
		})
	}
}

func TestClassify_ScenarioA(t *testing.T) {
	got := New(0).Classify("Analiza este proyecto y encuentra problemas")
	if got.Intent != IntentAnalyze || got.Confidence <= 0.5 {
		t.Fatalf("got %s %.2f, want analyze > 0.5", got.Intent, got.Confidence)
	}
	if got.Detail(DetailFocus) != "issues" {
		t.Errorf("focus = %q, want issues", got.Detail(DetailFocus))
	}
}

func TestClassify_ConfidenceClamped(t *testing.T) {
	c := New(0)
	inputs := []string{
		"analizar revisar problemas análisis examinar evaluar este proyecto",
		"crear generar nuevo nueva construir implementar hacer un archivo",
		"ayuda como cómo puedo debo comandos opciones con esto",
	}
	for _, in := range inputs {
		got := c.Classify(in)
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("Classify(%q) confidence %f out of range", in, got.Confidence)
		}
	}
	if got := c.Classify(inputs[0]); got.Confidence != 1.0 {
		t.Errorf("expected saturated confidence, got %f", got.Confidence)
	}
}

func TestClassify_TieKeepsFirstGroup(t *testing.T) {
	c := &PatternClassifier{
		threshold: DefaultConfidenceThreshold,
		groups: []patternGroup{
			{intent: IntentFind, confidence: 0.5, keywords: []string{"shared"}},
			{intent: IntentExplain, confidence: 0.5, keywords: []string{"shared"}},
		},
	}

	for i := 0; i < 20; i++ {
		if got := c.Classify("shared word"); got.Intent != IntentFind {
			t.Fatalf("tie resolved to %s, want find", got.Intent)
		}
	}
}

func TestClassify_Target(t *testing.T) {
	c := New(0)

	tests := []struct {
		text string
		want string
	}{
		{"revisa el archivo main.py", "main.py"},
		{"Analiza este proyecto", "proyecto"},
		{"implementa la función parse_args", "parse_args"},
		{"busca src/utils", "src/utils"},
		{"abre config.json", "config.json"},
		{"Crea una función", ""},
	}
	for _, tt := range tests {
		if got := c.Classify(tt.text).Target; got != tt.want {
			t.Errorf("target(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestClassify_Details(t *testing.T) {
	c := New(0)

	t.Run("Analyze defaults to general", func(t *testing.T) {
		got := c.Classify("Analiza este proyecto")
		if got.Detail(DetailFocus) != "general" {
			t.Errorf("focus = %q", got.Detail(DetailFocus))
		}
	})

	t.Run("Analyze performance focus", func(t *testing.T) {
		got := c.Classify("analiza el rendimiento de este código")
		if got.Intent != IntentAnalyze || got.Detail(DetailFocus) != "performance" {
			t.Errorf("got %s focus=%q", got.Intent, got.Detail(DetailFocus))
		}
	})

	t.Run("Create type", func(t *testing.T) {
		got := c.Classify("Crea una función")
		if got.Detail(DetailType) != "function" {
			t.Errorf("type = %q", got.Detail(DetailType))
		}
	})

	t.Run("Create without type omits key", func(t *testing.T) {
		got := c.Classify("hacer un nuevo servicio")
		if _, ok := got.Details[DetailType]; ok {
			t.Errorf("expected no type key, got %v", got.Details)
		}
	})

	t.Run("Optimize axis", func(t *testing.T) {
		got := c.Classify("optimiza la memoria del código")
		if got.Detail(DetailTarget) != "memory" {
			t.Errorf("target = %q", got.Detail(DetailTarget))
		}
	})
}

func TestIsConfident(t *testing.T) {
	c := New(0)
	if c.Threshold() != DefaultConfidenceThreshold {
		t.Fatalf("threshold = %f", c.Threshold())
	}
	if !c.IsConfident(ParsedIntent{Confidence: 0.4}) {
		t.Error("0.4 should be confident")
	}
	if c.IsConfident(ParsedIntent{Confidence: 0.39}) {
		t.Error("0.39 should not be confident")
	}
	if New(0.9).IsConfident(ParsedIntent{Confidence: 0.8}) {
		t.Error("custom threshold not applied")
	}
}

func TestSuggestions(t *testing.T) {
	c := New(0)

	t.Run("Confident input has none", func(t *testing.T) {
		if got := c.Suggestions("Analiza este proyecto"); len(got) != 0 {
			t.Errorf("expected no suggestions, got %v", got)
		}
	})

	t.Run("Static hints", func(t *testing.T) {
		got := c.Suggestions("hola")
		want := []string{HintBeMoreSpecific, HintMentionFile, HintUseKeywords}
		if len(got) != len(want) {
			t.Fatalf("got %v", got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("hint %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("Lexical triggers first", func(t *testing.T) {
		got := c.Suggestions("archivo con error")
		if len(got) != MaxSuggestions {
			t.Fatalf("expected %d hints, got %v", MaxSuggestions, got)
		}
		if got[0] != HintFileLocation || got[1] != HintExamplePhrase {
			t.Errorf("unexpected order: %v", got)
		}
	})
}

func TestIntentTitle(t *testing.T) {
	if IntentStatus.Title() != "Status" {
		t.Errorf("got %q", IntentStatus.Title())
	}
	if !IntentHelp.Valid() || Intent("dance").Valid() {
		t.Error("Valid() mismatch")
	}
}
