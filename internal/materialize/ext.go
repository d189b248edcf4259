package materialize

import "strings"

type extRule struct {
	contains []string
	exact    []string
	ext      string
}

// extRules map a block's language tag to a file extension. First match wins.
var extRules = []extRule{
	{contains: []string{"python"}, exact: []string{"py"}, ext: ".py"},
	{contains: []string{"html"}, ext: ".html"},
	{contains: []string{"javascript"}, exact: []string{"js", "jsx"}, ext: ".js"},
	{contains: []string{"typescript"}, exact: []string{"ts", "tsx"}, ext: ".ts"},
	{contains: []string{"css"}, ext: ".css"},
	{exact: []string{"c++", "cpp", "cxx"}, ext: ".cpp"},
	{exact: []string{"go", "golang"}, ext: ".go"},
	{exact: []string{"bash", "sh", "shell"}, ext: ".sh"},
	{exact: []string{"json"}, ext: ".json"},
	{exact: []string{"yaml", "yml"}, ext: ".yaml"},
	{exact: []string{"markdown", "md"}, ext: ".md"},
}

// ExtForLanguage returns the file extension for a language tag, or "" when
// the table has no entry for it.
func ExtForLanguage(language string) string {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		return ""
	}
	for _, r := range extRules {
		for _, s := range r.contains {
			if strings.Contains(lang, s) {
				return r.ext
			}
		}
		for _, s := range r.exact {
			if lang == s {
				return r.ext
			}
		}
	}
	return ""
}

// BlockExt returns the extension for an unnamed block, defaulting to ".txt".
func BlockExt(language string) string {
	if ext := ExtForLanguage(language); ext != "" {
		return ext
	}
	return ".txt"
}
