// Package template holds the per-language default source skeletons
// installed into the editor when the user switches language.
package template

import "sort"

const javaTemplate = `import java.util.Scanner;

public class Main {
    public static void main(String[] args) {
        Scanner sc = new Scanner(System.in);
        // Your code here

    }
}`

const pythonTemplate = `# Your code here
import sys

`

const cppTemplate = `#include <iostream>
using namespace std;

int main() {
    // Your code here

    return 0;
}`

// templates maps language identifiers to default source skeletons.
// Populated at process start; read-only afterwards.
var templates = map[string]string{
	"java":   javaTemplate,
	"python": pythonTemplate,
	"cpp":    cppTemplate,
}

// TemplateFor returns the default source skeleton for a language.
// Unknown languages get an empty template rather than an error: the
// only thing overwritten is the caller's own draft.
func TemplateFor(language string) string {
	return templates[language]
}

// Known reports whether the language has a registered template.
func Known(language string) bool {
	_, ok := templates[language]
	return ok
}

// Languages returns the registered language identifiers in sorted order.
func Languages() []string {
	langs := make([]string, 0, len(templates))
	for lang := range templates {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
