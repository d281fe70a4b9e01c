package main

// Supported languages, how they are recognized from a path, how they are
// tokenized for highlighting and which external formatter they use.

import (
	"path/filepath"

	sitter "github.com/mitjafelicijan/go-tree-sitter"
	"github.com/mitjafelicijan/go-tree-sitter/bash"
	"github.com/mitjafelicijan/go-tree-sitter/c"
	"github.com/mitjafelicijan/go-tree-sitter/cpp"
	"github.com/mitjafelicijan/go-tree-sitter/css"
	"github.com/mitjafelicijan/go-tree-sitter/dockerfile"
	"github.com/mitjafelicijan/go-tree-sitter/golang"
	"github.com/mitjafelicijan/go-tree-sitter/html"
	"github.com/mitjafelicijan/go-tree-sitter/javascript"
	"github.com/mitjafelicijan/go-tree-sitter/lua"
	markdown "github.com/mitjafelicijan/go-tree-sitter/markdown/tree-sitter-markdown"
	"github.com/mitjafelicijan/go-tree-sitter/php"
	"github.com/mitjafelicijan/go-tree-sitter/python"
	"github.com/mitjafelicijan/go-tree-sitter/sql"
	"github.com/mitjafelicijan/go-tree-sitter/typescript/tsx"
	"github.com/mitjafelicijan/go-tree-sitter/typescript/typescript"
)

// Language describes a recognized file type.
type Language struct {
	Name       string                  // Display name.
	Extensions []string                // File suffixes (e.g., .go) or base names (e.g., Makefile).
	Grammar    func() *sitter.Language // Tree-sitter grammar; nil when Lexer is used.
	Query      string                  // Highlight query under queries/, without extension.
	Lexer      string                  // Chroma lexer name for languages without a grammar.
	Formatter  []string                // Formatter command; the file path is appended.
}

// languages is the fixed table used for detection.
var languages = []*Language{
	{
		Name:       "Go",
		Extensions: []string{".go"},
		Grammar:    golang.GetLanguage,
		Query:      "go",
		Formatter:  []string{"gofmt"},
	},
	{
		Name:       "C",
		Extensions: []string{".c", ".h"},
		Grammar:    c.GetLanguage,
		Query:      "c",
		Formatter:  []string{"clang-format"},
	},
	{
		Name:       "C++",
		Extensions: []string{".cpp", ".hpp", ".cc", ".hh", ".cxx", ".hxx"},
		Grammar:    cpp.GetLanguage,
		Query:      "cpp",
		Formatter:  []string{"clang-format"},
	},
	{
		Name:       "Python",
		Extensions: []string{".py"},
		Grammar:    python.GetLanguage,
		Query:      "python",
	},
	{
		Name:       "JavaScript",
		Extensions: []string{".js", ".mjs", ".cjs"},
		Grammar:    javascript.GetLanguage,
		Query:      "javascript",
		Formatter:  []string{"prettier"},
	},
	{
		Name:       "TypeScript",
		Extensions: []string{".ts"},
		Grammar:    typescript.GetLanguage,
		Query:      "typescript",
		Formatter:  []string{"prettier"},
	},
	{
		Name:       "TSX",
		Extensions: []string{".tsx"},
		Grammar:    tsx.GetLanguage,
		Query:      "typescript",
		Formatter:  []string{"prettier"},
	},
	{
		Name:       "Bash",
		Extensions: []string{".sh", ".bash"},
		Grammar:    bash.GetLanguage,
		Query:      "bash",
		Formatter:  []string{"shfmt"},
	},
	{
		Name:       "CSS",
		Extensions: []string{".css"},
		Grammar:    css.GetLanguage,
		Query:      "css",
		Formatter:  []string{"prettier"},
	},
	{
		Name:       "HTML",
		Extensions: []string{".html", ".htm"},
		Grammar:    html.GetLanguage,
		Query:      "html",
		Formatter:  []string{"prettier"},
	},
	{
		Name:       "Rust",
		Extensions: []string{".rs"},
		Lexer:      "rust",
	},
	{
		Name:       "Lua",
		Extensions: []string{".lua"},
		Grammar:    lua.GetLanguage,
		Query:      "lua",
	},
	{
		Name:       "Markdown",
		Extensions: []string{".md", ".markdown"},
		Grammar:    markdown.GetLanguage,
		Query:      "markdown",
		Formatter:  []string{"prettier"},
	},
	{
		Name:       "YAML",
		Extensions: []string{".yaml", ".yml"},
		Lexer:      "yaml",
	},
	{
		Name:       "TOML",
		Extensions: []string{".toml"},
		Lexer:      "toml",
	},
	{
		Name:       "JSON",
		Extensions: []string{".json"},
		Lexer:      "json",
		Formatter:  []string{"prettier"},
	},
	{
		Name:       "PHP",
		Extensions: []string{".php"},
		Grammar:    php.GetLanguage,
		Query:      "php",
	},
	{
		Name:       "SQL",
		Extensions: []string{".sql"},
		Grammar:    sql.GetLanguage,
		Query:      "sql",
	},
	{
		Name:       "Dockerfile",
		Extensions: []string{".dockerfile", "Dockerfile"},
		Grammar:    dockerfile.GetLanguage,
		Query:      "dockerfile",
	},
	{
		Name:       "Makefile",
		Extensions: []string{".make", ".mk", "Makefile", "makefile", "GNUmakefile"},
		Lexer:      "makefile",
	},
}

// detectLanguage finds the language for path by suffix or base name. It
// returns nil for unknown files.
func detectLanguage(path string) *Language {
	if path == "" {
		return nil
	}
	ext := filepath.Ext(path)
	base := filepath.Base(path)
	for _, lang := range languages {
		for _, e := range lang.Extensions {
			// Check if the extension matches or if the base filename (like 'Makefile') matches.
			if e == ext || e == base {
				return lang
			}
		}
	}
	return nil
}

// highlighterName describes how a language is tokenized.
func (l *Language) highlighterName() string {
	if l.Grammar != nil {
		return "tree-sitter"
	}
	return "chroma/" + l.Lexer
}
