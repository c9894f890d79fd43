package service

import (
	"strings"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"
)

// TextEmbedding returns a small deterministic embedding for search
// ordering: rune count, vowel count and word count.
func TextEmbedding(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var vowels float32
	for _, r := range text {
		if strings.ContainsRune("aeiou", r) {
			vowels++
		}
	}
	words := float32(len(strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})))
	return pgvector.NewVector([]float32{float32(len(text)), vowels, words})
}
