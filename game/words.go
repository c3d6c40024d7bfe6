package game

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type RandomWordsGenerator interface {
	Generate(count int) []string
}

var defaultWords = []string{
	"apple", "banana", "car", "house", "elephant",
	"rainbow", "guitar", "pizza", "mountain", "computer",
	"river", "clock", "book", "tree", "sun",
	"moon", "star", "cat", "dog", "bicycle",
}

// WordBank is a fixed vocabulary. Sampling is memoryless across rounds.
type WordBank struct {
	words []string
}

func NewWordBank(words []string, minSize int) (*WordBank, error) {
	cleaned := lo.Uniq(lo.Compact(lo.Map(words, func(w string, _ int) string {
		return strings.TrimSpace(w)
	})))

	if len(cleaned) < minSize {
		return nil, fmt.Errorf("%w: %d words, need %d", ErrVocabularyTooSmall, len(cleaned), minSize)
	}
	return &WordBank{words: cleaned}, nil
}

func DefaultWordBank() *WordBank {
	return &WordBank{words: append([]string{}, defaultWords...)}
}

// LoadWordBank reads one word per line.
func LoadWordBank(path string, minSize int) (*WordBank, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open words file %s: %w", path, err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read words file %s: %w", path, err)
	}

	wb, err := NewWordBank(words, minSize)
	if err != nil {
		return nil, err
	}
	log.Info().Int("count", len(wb.words)).Str("file", path).Msg("vocabulary loaded")
	return wb, nil
}

// Generate draws count distinct words uniformly at random.
func (wb *WordBank) Generate(count int) []string {
	return lo.Samples(wb.words, min(count, len(wb.words)))
}

func (wb *WordBank) Size() int {
	return len(wb.words)
}
