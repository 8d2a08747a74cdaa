package highlight

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/match"
)

// defaultLanguagesJSON maps file-name glob patterns to chroma lexer names,
// the table SetLanguage consults before falling back to chroma's own
// name/file-name matching. Kept small and compiled-in: the spec's Non-goals
// place a settings UI outside the core, so there is no file-backed
// override path for this table, only the name or extension the caller
// passes directly.
const defaultLanguagesJSON = `{
	"*.go": "go",
	"*.rs": "rust",
	"*.py": "python",
	"*.js": "javascript",
	"*.jsx": "javascript",
	"*.ts": "typescript",
	"*.tsx": "typescript",
	"*.md": "markdown",
	"*.json": "json",
	"*.toml": "toml",
	"*.yaml": "yaml",
	"*.yml": "yaml",
	"*.sh": "bash",
	"*.c": "c",
	"*.h": "c",
	"*.cpp": "cpp",
	"*.hpp": "cpp",
	"*.java": "java",
	"*.rb": "ruby",
	"*.sql": "sql"
}`

// resolveLanguageName maps a file name to a chroma lexer name by matching
// its base name against defaultLanguagesJSON's glob keys, returning "" on
// no match so the caller can fall back to treating name itself as a
// lexer name (e.g. a caller that already passes "go" rather than a path).
func resolveLanguageName(name string) string {
	base := name
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		base = name[idx+1:]
	}
	resolved := ""
	gjson.Parse(defaultLanguagesJSON).ForEach(func(pattern, lexerName gjson.Result) bool {
		if match.Match(base, pattern.String()) {
			resolved = lexerName.String()
			return false
		}
		return true
	})
	return resolved
}
