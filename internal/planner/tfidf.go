package planner

import (
	"math"
	"regexp"
	"slices"

	"github.com/abhisek/studyforge/internal/quiz"
)

// tokenPattern matches words of two or more word characters.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

func tokenize(doc string) []string {
	return tokenPattern.FindAllString(quiz.NormalizeTopic(doc), -1)
}

// Vectorize returns one L2-normalised TF-IDF row per document. Columns
// follow the lexicographically sorted vocabulary. IDF is smoothed:
// ln((1+n)/(1+df)) + 1. A document with no tokens yields a zero row.
func Vectorize(docs []string) [][]float64 {
	tokens := make([][]string, len(docs))
	df := make(map[string]int)
	for i, d := range docs {
		tokens[i] = tokenize(d)
		seen := make(map[string]bool)
		for _, tok := range tokens[i] {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for tok := range df {
		vocab = append(vocab, tok)
	}
	slices.Sort(vocab)
	col := make(map[string]int, len(vocab))
	for i, tok := range vocab {
		col[tok] = i
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, tok := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(df[tok]))) + 1
	}

	rows := make([][]float64, len(docs))
	for i, toks := range tokens {
		row := make([]float64, len(vocab))
		for _, tok := range toks {
			row[col[tok]]++
		}
		var norm float64
		for j := range row {
			row[j] *= idf[j]
			norm += row[j] * row[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
		rows[i] = row
	}
	return rows
}
