package assistant

import (
	"fmt"
	"strings"
)

// Request describes an app to generate.
type Request struct {
	Query        string
	Language     string
	ColorScheme  string
	Complex      bool
	Architecture string
	Extras       []string
}

const complexInstruction = "This is a complex app. Separate files clearly.\n" +
	"For each file, start with a line '### filename: <name>'.\n" +
	"Then provide the code in a markdown block.\n" +
	"Example:\n" +
	"### filename: main.py\n" +
	"```python\n...\n```"

const singleInstruction = "The code must be self-contained in a single file."

// LanguageInstruction returns the language-specific guidance for a generation prompt.
func LanguageInstruction(language string) string {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "python":
		return "Write a complete Python Streamlit application. " +
			"List all required pip packages in a comment at the top: '# requirements: pkg1, pkg2'. " +
			"Include error handling. " +
			"IMPORTANT: Include a sidebar with an 'Intuitive User Interface (UI) Builder' section " +
			"using Streamlit widgets."
	case "html":
		return "Write a complete HTML app with CSS (Flexbox/Grid) and JS. " +
			"Include a 'drag-and-drop' style editor interface simulation."
	case "c++":
		return "Write a complete C++ console app, compatible with WebAssembly if possible."
	default:
		return fmt.Sprintf("Write a complete application in %s.", language)
	}
}

// GenerationPrompt builds the prompt for a new app.
func GenerationPrompt(r Request) string {
	structure := singleInstruction
	if r.Complex {
		structure = complexInstruction
	}
	arch := r.Architecture
	if arch == "" {
		arch = "Standard"
	}
	scheme := r.ColorScheme
	if scheme == "" {
		scheme = "Default"
	}
	return fmt.Sprintf("Primary Request: %s\n"+
		"Specs:\n- Lang: %s\n- Style: %s\n- Arch: %s\n"+
		"- Extras: %s\n"+
		"- Instructions: %s\n"+
		"- Structure: %s\n\n"+
		"Generate the code exactly matching requests.",
		r.Query, r.Language, scheme, arch,
		strings.Join(r.Extras, ", "),
		LanguageInstruction(r.Language),
		structure)
}

// RefinePrompt asks for a rewrite of existing code.
func RefinePrompt(code, request string) string {
	return fmt.Sprintf("Here is the existing code for an app:\n\n```\n%s\n```\n\n"+
		"User Request: %s\n"+
		"Rewrite the code to incorporate this request. Return the full updated code in markdown blocks. "+
		"For apps with several files, start each file with a line '### filename: <name>'.",
		code, request)
}

// ChatPrompt wraps one chat turn about an app.
func ChatPrompt(language, code, question string) string {
	return fmt.Sprintf("Context: You are an AI assistant helping a developer with their %s app.\n"+
		"Code:\n%s\n\n"+
		"User Question: %s\n"+
		"Answer helpful and concise.",
		language, code, question)
}

func ExplainPrompt(language, code string) string {
	return fmt.Sprintf("Explain this %s code for a beginner. "+
		"Cover: 1. Architecture 2. Main functions 3. How to run it 4. Where to customize it. "+
		"\n\nCode:\n%s", language, code)
}

func ReadmePrompt(language, code string) string {
	return fmt.Sprintf("Generate a professional README.md for this %s application. "+
		"Include: Description, Features, Installation, Usage, and Credits. "+
		"\n\nCode Context:\n%s", language, code)
}

func ScorePrompt(language, code string) string {
	return fmt.Sprintf("Review this %s code. "+
		"Provide a score from 1-10 for: 1. Readability 2. Security 3. Performance. "+
		"Briefly explain each score."+
		"\n\nCode:\n%s", language, code)
}

func WhyPrompt(language, code string) string {
	return fmt.Sprintf("Analyze this %s application structure. "+
		"Why was this specific architecture/pattern chosen over others? "+
		"Explain the benefits for this use case."+
		"\n\nCode Context:\n%s", language, code)
}

// ArchitectPrompt is the first step of multi-agent generation.
func ArchitectPrompt(query string) string {
	return fmt.Sprintf("Design a high-level architecture for: %s. Brief bullet points.", query)
}

// DeveloperPrompt turns an architecture plan into code.
func DeveloperPrompt(query, plan string) string {
	return fmt.Sprintf("Write the code for %s following this plan: %s", query, plan)
}

// EnhancedQuery folds the request specs into the query for multi-agent mode.
func EnhancedQuery(r Request) string {
	arch := r.Architecture
	if arch == "" {
		arch = "Standard"
	}
	return fmt.Sprintf("%s (Language: %s, Arch: %s, Style: %s)", r.Query, r.Language, arch, r.ColorScheme)
}
