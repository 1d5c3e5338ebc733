package analyzer

import "strings"

// Language décrit un langage supporté par l'analyseur.
type Language struct {
	ID         string
	Name       string
	Extensions []string
}

// SupportedLanguages liste les langages reconnus.
var SupportedLanguages = []Language{
	{ID: "python", Name: "Python", Extensions: []string{".py"}},
	{ID: "javascript", Name: "JavaScript", Extensions: []string{".js", ".jsx"}},
	{ID: "typescript", Name: "TypeScript", Extensions: []string{".ts", ".tsx"}},
	{ID: "java", Name: "Java", Extensions: []string{".java"}},
	{ID: "cpp", Name: "C++", Extensions: []string{".cpp", ".cc", ".cxx"}},
	{ID: "c", Name: "C", Extensions: []string{".c", ".h"}},
	{ID: "csharp", Name: "C#", Extensions: []string{".cs"}},
	{ID: "go", Name: "Go", Extensions: []string{".go"}},
	{ID: "rust", Name: "Rust", Extensions: []string{".rs"}},
	{ID: "php", Name: "PHP", Extensions: []string{".php"}},
	{ID: "ruby", Name: "Ruby", Extensions: []string{".rb"}},
	{ID: "swift", Name: "Swift", Extensions: []string{".swift"}},
	{ID: "kotlin", Name: "Kotlin", Extensions: []string{".kt"}},
	{ID: "scala", Name: "Scala", Extensions: []string{".scala"}},
	{ID: "r", Name: "R", Extensions: []string{".r"}},
	{ID: "sql", Name: "SQL", Extensions: []string{".sql"}},
	{ID: "html", Name: "HTML", Extensions: []string{".html", ".htm"}},
	{ID: "css", Name: "CSS", Extensions: []string{".css"}},
}

// LanguageName retourne le nom affichable d'un langage, ou l'identifiant
// tel quel s'il est inconnu.
func LanguageName(id string) string {
	for _, l := range SupportedLanguages {
		if l.ID == id {
			return l.Name
		}
	}
	return id
}

// IsSupportedLanguage indique si l'identifiant de langage est reconnu.
func IsSupportedLanguage(id string) bool {
	for _, l := range SupportedLanguages {
		if l.ID == id {
			return true
		}
	}
	return false
}

// DetectLanguage déduit le langage de l'extension du fichier.
// Retourne "unknown" si l'extension n'est pas reconnue.
func DetectLanguage(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 {
		return "unknown"
	}
	ext := strings.ToLower(filename[idx:])
	for _, l := range SupportedLanguages {
		for _, e := range l.Extensions {
			if ext == e {
				return l.ID
			}
		}
	}
	return "unknown"
}
