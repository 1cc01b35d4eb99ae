package piston

var fileNames = map[string]string{
	"python":     "main.py",
	"java":       "Main.java",
	"c++":        "main.cpp",
	"c":          "main.c",
	"go":         "main.go",
	"javascript": "index.js",
	"typescript": "index.ts",
	"rust":       "main.rs",
}

// FileName returns the source file name the sandbox compiles for a language
func FileName(language string) string {
	if name, ok := fileNames[language]; ok {
		return name
	}
	return "main"
}
