package poker

import (
	"errors"
	"sort"
	"testing"

	ph "github.com/paulhankin/poker"

	"github.com/lox/handrank/internal/randutil"
)

func mustParseHand(t testing.TB, s string) Hand {
	t.Helper()
	h, err := ParseHand(s)
	if err != nil {
		t.Fatalf("ParseHand(%q): %v", s, err)
	}
	return h
}

// forEachHand calls fn for every five-card combination of the deck.
func forEachHand(fn func(Hand)) {
	for a := Card(0); a < NumCards; a++ {
		for b := a + 1; b < NumCards; b++ {
			for c := b + 1; c < NumCards; c++ {
				for d := c + 1; d < NumCards; d++ {
					base := Hand(0).Add(a).Add(b).Add(c).Add(d)
					for e := d + 1; e < NumCards; e++ {
						fn(base.Add(e))
					}
				}
			}
		}
	}
}

func TestClassifyScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		hand     string
		wantType HandType
		wantKey  []Rank
	}{
		{"royal flush", "As Ks Qs Js Ts", StraightFlush, []Rank{Ace}},
		{"steel wheel", "As 2s 3s 4s 5s", StraightFlush, []Rank{Five}},
		{"six high straight flush", "2s 3s 4s 5s 6s", StraightFlush, []Rank{Six}},
		{"quad fours", "4h 4d 4c 4s 9s", Quads, []Rank{Four, Nine}},
		{"quads with low kicker", "Ac Ad Ah As 2c", Quads, []Rank{Ace, Two}},
		{"sevens full of twos", "7s 7h 7d 2c 2s", FullHouse, []Rank{Seven, Two}},
		{"twos full of aces", "2s 2h 2d Ac As", FullHouse, []Rank{Two, Ace}},
		{"king high flush", "2s 4s 6s 9s Ks", Flush, []Rank{King, Nine, Six, Four, Two}},
		{"broadway", "Ac Kd Qh Js Ts", Straight, []Rank{Ace}},
		{"wheel", "Ah 2c 3d 4s 5h", Straight, []Rank{Five}},
		{"trips", "8c 8d 8h Ks 3c", Trips, []Rank{Eight, King, Three}},
		{"two pair", "Jc Jd 4h 4s Ac", TwoPair, []Rank{Jack, Four, Ace}},
		{"two pair low kicker", "Qc Qd Th Ts 2c", TwoPair, []Rank{Queen, Ten, Two}},
		{"pair", "9c 9d Ah 5s 2c", Pair, []Rank{Nine, Ace, Five, Two}},
		{"ace high", "Ac Jd 8h 5s 2c", HighCard, []Rank{Ace, Jack, Eight, Five, Two}},
		{"almost wheel", "Ac 2d 3h 4s 6c", HighCard, []Rank{Ace, Six, Four, Three, Two}},
		{"king high wrap is not a straight", "Kc Ad 2h 3s 4c", HighCard, []Rank{Ace, King, Four, Three, Two}},
		{"weakest hand", "7c 5d 4h 3s 2c", HighCard, []Rank{Seven, Five, Four, Three, Two}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s, err := Classify(mustParseHand(t, tc.hand))
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			want := Strength{Type: tc.wantType, Key: NewStrengthKey(tc.wantKey...)}
			if s != want {
				t.Errorf("Classify(%s) = %s, want %s", tc.hand, s, want)
			}
			if s.Key.Len() != tc.wantType.KeyLen() {
				t.Errorf("Key length %d, want %d", s.Key.Len(), tc.wantType.KeyLen())
			}
		})
	}
}

func TestClassifyInvalid(t *testing.T) {
	t.Parallel()
	four := Hand(0).Add(NewCard(Ace, Spades)).Add(NewCard(King, Spades)).Add(NewCard(Queen, Spades)).Add(NewCard(Jack, Spades))
	six := four.Add(NewCard(Ten, Spades)).Add(NewCard(Nine, Spades))

	for name, h := range map[string]Hand{
		"empty":       0,
		"four cards":  four,
		"six cards":   six,
		"outside bit": four | 1<<60,
	} {
		if _, err := Classify(h); !errors.Is(err, ErrInvalidHand) {
			t.Errorf("%s: expected ErrInvalidHand, got %v", name, err)
		}
	}

	if _, err := Evaluate(NewCard(Ace, Spades), NewCard(Ace, Spades), NewCard(King, Spades), NewCard(Queen, Spades), NewCard(Jack, Spades)); !errors.Is(err, ErrInvalidHand) {
		t.Errorf("duplicate card: expected ErrInvalidHand, got %v", err)
	}
}

func TestStrengthOrdering(t *testing.T) {
	t.Parallel()
	// Strongest first
	ordered := []string{
		"As Ks Qs Js Ts",
		"6h 5h 4h 3h 2h",
		"5d 4d 3d 2d Ad",
		"Ac Ad Ah As Kc",
		"2c 2d 2h 2s 3c",
		"Ac Ad Ah Kc Kd",
		"Ac Qc Tc 8c 6c",
		"Ac Kd Qh Js Ts",
		"6c 5d 4h 3s 2c",
		"5c 4d 3h 2s Ac",
		"Ac Ad Ah Kc Qd",
		"Ac Ad Kh Ks Qc",
		"Ac Ad Kh Ks Jc",
		"Ac Ad Kh Qs Jc",
		"Ac Kd Qh Js 9c",
		"7c 5d 4h 3s 2c",
	}

	for i := 1; i < len(ordered); i++ {
		a := mustParseHand(t, ordered[i-1])
		b := mustParseHand(t, ordered[i])
		cmp, err := Compare(a, b)
		if err != nil {
			t.Fatal(err)
		}
		if cmp != 1 {
			t.Errorf("%s should beat %s (got %d)", ordered[i-1], ordered[i], cmp)
		}
	}

	// Suits never break ties
	cmp, err := Compare(mustParseHand(t, "Ac Kd Qh Js 9c"), mustParseHand(t, "As Kh Qd Jc 9s"))
	if err != nil {
		t.Fatal(err)
	}
	if cmp != 0 {
		t.Errorf("Expected tie between suit permutations, got %d", cmp)
	}
}

func TestStraightHigh(t *testing.T) {
	t.Parallel()
	tests := []struct {
		ranks []Rank
		high  Rank
		ok    bool
	}{
		{[]Rank{Ace, Two, Three, Four, Five}, Five, true},
		{[]Rank{Two, Three, Four, Five, Six}, Six, true},
		{[]Rank{Ten, Jack, Queen, King, Ace}, Ace, true},
		{[]Rank{Nine, Jack, Queen, King, Ace}, 0, false},
		{[]Rank{Jack, Queen, King, Ace, Two}, 0, false},
		{[]Rank{Two, Three, Four, Five}, 0, false},
	}
	for _, tc := range tests {
		high, ok := StraightHigh(RankMaskOf(tc.ranks...))
		if ok != tc.ok || high != tc.high {
			t.Errorf("StraightHigh(%v) = %v, %v; want %v, %v", tc.ranks, high, ok, tc.high, tc.ok)
		}
		if IsStraightPattern(tc.ranks...) != tc.ok {
			t.Errorf("IsStraightPattern(%v) mismatch", tc.ranks)
		}
	}
}

func TestClassifyExhaustiveCounts(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive enumeration skipped in short mode")
	}
	t.Parallel()

	want := map[HandType]int{
		StraightFlush: 40,
		Quads:         624,
		FullHouse:     3744,
		Flush:         5108,
		Straight:      10200,
		Trips:         54912,
		TwoPair:       123552,
		Pair:          1098240,
		HighCard:      1302540,
	}

	got := make(map[HandType]int)
	total := 0
	forEachHand(func(h Hand) {
		got[classify(h).Type]++
		total++
	})

	if total != 2598960 {
		t.Fatalf("Enumerated %d hands, want 2598960", total)
	}
	for ht, n := range want {
		if got[ht] != n {
			t.Errorf("%s: got %d hands, want %d", ht, got[ht], n)
		}
	}
}

func toOracle(c Card) ph.Card {
	var s ph.Suit
	switch c.Suit() {
	case Clubs:
		s = ph.Club
	case Diamonds:
		s = ph.Diamond
	case Hearts:
		s = ph.Heart
	default:
		s = ph.Spade
	}
	// Library ranks run 1..13 with the ace as 1.
	r := ph.Rank(c.Rank())
	if c.Rank() == Ace {
		r = ph.Rank(1)
	}
	card, err := ph.MakeCard(s, r)
	if err != nil {
		panic(err)
	}
	return card
}

func oracleScore(h Hand) int16 {
	var five [5]ph.Card
	for i, c := range h.Cards() {
		five[i] = toOracle(c)
	}
	return ph.Eval5(&five)
}

// TestClassifyMatchesOracle checks every hand against an independent evaluator:
// equal strengths must get equal library scores, and ordering must agree.
func TestClassifyMatchesOracle(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive enumeration skipped in short mode")
	}
	t.Parallel()

	scores := make(map[Strength]int16, 7462)
	forEachHand(func(h Hand) {
		s := classify(h)
		score := oracleScore(h)
		if prev, ok := scores[s]; ok && prev != score {
			t.Fatalf("%s classified %s but oracle score %d differs from tied score %d", h, s, score, prev)
		}
		scores[s] = score
	})

	if len(scores) != 7462 {
		t.Errorf("Found %d distinct strengths, want 7462", len(scores))
	}

	strengths := make([]Strength, 0, len(scores))
	for s := range scores {
		strengths = append(strengths, s)
	}
	sort.Slice(strengths, func(i, j int) bool { return strengths[j].Beats(strengths[i]) })
	for i := 1; i < len(strengths); i++ {
		if scores[strengths[i]] <= scores[strengths[i-1]] {
			t.Fatalf("Ordering disagrees: %s (oracle %d) should beat %s (oracle %d)",
				strengths[i], scores[strengths[i]], strengths[i-1], scores[strengths[i-1]])
		}
	}
}

func TestCompareRandomHandsIsAntisymmetric(t *testing.T) {
	t.Parallel()
	rng := randutil.New(7)
	deck := NewDeck(rng)
	for i := 0; i < 2000; i++ {
		deck.Shuffle()
		a, err := deck.DealHand()
		if err != nil {
			t.Fatal(err)
		}
		b, err := deck.DealHand()
		if err != nil {
			t.Fatal(err)
		}
		ab, _ := Compare(a, b)
		ba, _ := Compare(b, a)
		if ab != -ba {
			t.Fatalf("Compare(%s, %s) = %d but reverse = %d", a, b, ab, ba)
		}
		if (oracleScore(a) > oracleScore(b)) != (ab > 0) {
			t.Fatalf("Compare(%s, %s) = %d disagrees with oracle", a, b, ab)
		}
	}
}

func BenchmarkClassify(b *testing.B) {
	h := mustParseHand(b, "Ac Ad Kh Ks Qc")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Classify(h)
	}
}
