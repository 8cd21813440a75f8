package game

import (
	"math/rand/v2"
	"strings"
)

const (
	maxRedraws        = 8
	consonantRunLimit = 4
	vowelRatioWindow  = 5
	vowelRatioCeiling = 0.6
)

// letterBagCounts is the French letter frequency the bag is filled with.
var letterBagCounts = []struct {
	letter string
	count  int
}{
	{"E", 15}, {"A", 9}, {"I", 8}, {"O", 6}, {"U", 5}, {"Y", 2},
	{"S", 7}, {"R", 6}, {"T", 6}, {"N", 6}, {"L", 5},
	{"D", 3}, {"M", 3},
	{"P", 2}, {"C", 2}, {"B", 2}, {"F", 2}, {"G", 2}, {"H", 2},
	{"V", 1}, {"J", 1}, {"Q", 1}, {"K", 1}, {"W", 1}, {"X", 1}, {"Z", 1},
}

func IsVowel(letter string) bool {
	return len(letter) == 1 && strings.Contains("AEIOUY", letter)
}

// LetterGenerator draws letters from a depleting weighted bag and steers away from
// unpronounceable boards. It is not safe for concurrent use.
type LetterGenerator struct {
	rng  *rand.Rand
	bag  []string
	last string
}

func NewLetterGenerator(rng *rand.Rand) *LetterGenerator {
	g := &LetterGenerator{rng: rng}
	g.refill()
	return g
}

func (g *LetterGenerator) refill() {
	for _, entry := range letterBagCounts {
		for range entry.count {
			g.bag = append(g.bag, entry.letter)
		}
	}
}

func (g *LetterGenerator) BagSize() int {
	return len(g.bag)
}

func (g *LetterGenerator) takeAt(idx int) string {
	letter := g.bag[idx]
	g.bag[idx] = g.bag[len(g.bag)-1]
	g.bag = g.bag[:len(g.bag)-1]
	return letter
}

func (g *LetterGenerator) drawFromBag() string {
	if len(g.bag) == 0 {
		g.refill()
	}
	return g.takeAt(g.rng.IntN(len(g.bag)))
}

// drawMatching takes a random letter of the wanted class straight from the bag.
func (g *LetterGenerator) drawMatching(wantVowel bool) (string, bool) {
	matches := make([]int, 0, len(g.bag))
	for idx, letter := range g.bag {
		if IsVowel(letter) == wantVowel {
			matches = append(matches, idx)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	return g.takeAt(matches[g.rng.IntN(len(matches))]), true
}

// pick draws one letter. want is nil when any letter will do. After maxRedraws misses
// it takes a letter of the wanted class straight from the bag instead of keeping the
// last draw, and only accepts any letter when the bag holds none of that class.
func (g *LetterGenerator) pick(want *bool) string {
	candidate := g.drawFromBag()
	if want == nil {
		return candidate
	}
	for attempt := 0; IsVowel(candidate) != *want && attempt < maxRedraws; attempt++ {
		g.bag = append(g.bag, candidate)
		candidate = g.drawFromBag()
	}
	if IsVowel(candidate) == *want {
		return candidate
	}
	g.bag = append(g.bag, candidate)
	if letter, ok := g.drawMatching(*want); ok {
		return letter
	}
	return g.drawFromBag()
}

// Draw returns the next letter given the letters already on the board, oldest first.
// Pass nil when the board is empty.
func (g *LetterGenerator) Draw(recent []string) string {
	want := requiredClass(recent)

	letter := g.pick(want)
	if g.last != "" && letter == g.last {
		g.bag = append(g.bag, letter)
		letter = g.pick(want)
	}
	g.last = letter
	return letter
}

// requiredClass returns a pointer to true when the next letter must be a vowel, to false
// when it must be a consonant, and nil when it is free.
func requiredClass(recent []string) *bool {
	forceVowel := consonantStreak(recent) >= consonantRunLimit
	forceConsonant := false
	if !forceVowel && len(recent) >= vowelRatioWindow {
		forceConsonant = vowelRatio(recent) >= vowelRatioCeiling
	}
	switch {
	case forceVowel && forceConsonant:
		return nil
	case forceVowel:
		v := true
		return &v
	case forceConsonant:
		v := false
		return &v
	}
	return nil
}

func consonantStreak(letters []string) int {
	streak := 0
	for i := len(letters) - 1; i >= 0; i-- {
		if letters[i] == "" || IsVowel(letters[i]) {
			break
		}
		streak++
	}
	return streak
}

func vowelRatio(letters []string) float64 {
	if len(letters) == 0 {
		return 0
	}
	vowels := 0
	for _, l := range letters {
		if IsVowel(l) {
			vowels++
		}
	}
	return float64(vowels) / float64(len(letters))
}
