// Package games bundles the stateless minigames reachable from the user
// menu. Randomness and terminal I/O are injected so every game can be
// exercised with a seeded generator and scripted input.
package games

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// Games runs the minigames against the given random source and streams.
type Games struct {
	rng *rand.Rand
	in  *bufio.Reader
	out io.Writer
}

// New builds a Games instance. If in is already a *bufio.Reader it is used
// as-is, so the caller's buffered input is not stranded between games.
func New(rng *rand.Rand, in io.Reader, out io.Writer) *Games {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Games{rng: rng, in: br, out: out}
}

func (g *Games) printf(format string, args ...any) {
	fmt.Fprintf(g.out, format, args...)
}

// readLine reads one trimmed input line. On EOF it returns the empty string.
func (g *Games) readLine(prompt string) string {
	g.printf("%s", prompt)
	line, _ := g.in.ReadString('\n')
	return strings.TrimSpace(line)
}

// readInt keeps prompting until a number is entered. A false second return
// means the input stream ended.
func (g *Games) readInt(prompt string) (int, bool) {
	for {
		line := g.readLine(prompt)
		if line == "" {
			return 0, false
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			g.printf("Invalid input! Please enter a valid number.\n")
			continue
		}
		return n, true
	}
}

// Lottery asks for 5 unique numbers between 1 and 50 and compares them
// against a random draw. All five must match for the jackpot.
func (g *Games) Lottery() {
	g.printf("Welcome to the Lottery Game!\n")
	g.printf("Choose 5 unique numbers between 1 and 50; match the draw to win the jackpot.\n")

	winning := make(map[int]bool, 5)
	for _, n := range g.rng.Perm(50)[:5] {
		winning[n+1] = true
	}

	picked := make(map[int]bool, 5)
	for len(picked) < 5 {
		n, ok := g.readInt(fmt.Sprintf("Enter number %d (1-50): ", len(picked)+1))
		if !ok {
			return
		}
		switch {
		case n < 1 || n > 50:
			g.printf("Invalid input! Please enter a number between 1 and 50.\n")
		case picked[n]:
			g.printf("You already picked this number. Try another!\n")
		default:
			picked[n] = true
			g.printf("Your current numbers: %v\n", sortedKeys(picked))
		}
	}

	g.printf("Your lottery numbers: %v\n", sortedKeys(picked))
	g.printf("Winning numbers: %v\n", sortedKeys(winning))

	if equalSets(picked, winning) {
		g.printf("JACKPOT! You won the lottery!\n")
	} else {
		g.printf("Better luck next time!\n")
	}
}

// NumberGuessing gives the player 5 attempts to find a random number between
// 1 and 100, with higher/lower hints after each miss.
func (g *Games) NumberGuessing() {
	g.printf("Welcome to the Number Guessing Game!\n")
	g.printf("Guess the number between 1 and 100. You have 5 attempts.\n")

	target := g.rng.Intn(100) + 1
	var guesses []int

	for attempts := 5; attempts > 0; {
		n, ok := g.readInt("Guess a number (1-100): ")
		if !ok {
			return
		}
		if n < 1 || n > 100 {
			g.printf("Out of range! Pick a number between 1 and 100.\n")
			continue
		}

		guesses = append(guesses, n)
		if n == target {
			g.printf("BOOM! You guessed it right!\n")
			return
		}
		if n > target {
			g.printf("Too high! Try a smaller number.\n")
		} else {
			g.printf("Too low! Try a bigger number.\n")
		}
		attempts--
		g.printf("Attempts left: %d\n", attempts)
	}

	g.printf("No more attempts! The correct number was %d.\n", target)
	g.printf("Your guesses: %v\n", guesses)
}

// RockPaperScissors plays rounds against the computer until one side
// reaches 3 points.
func (g *Games) RockPaperScissors() {
	g.printf("Welcome to Rock, Paper, Scissors! First to 3 points wins.\n")

	choices := []string{"rock", "paper", "scissors"}
	beats := map[string]string{"rock": "scissors", "paper": "rock", "scissors": "paper"}

	player, computer := 0, 0
	for player < 3 && computer < 3 {
		pick := strings.ToLower(g.readLine("Choose (rock, paper, or scissors): "))
		if pick == "" {
			return
		}
		if beats[pick] == "" {
			g.printf("Invalid choice! Please select rock, paper, or scissors.\n")
			continue
		}

		cpu := choices[g.rng.Intn(len(choices))]
		g.printf("You chose: %s | Computer chose: %s\n", pick, cpu)

		switch {
		case pick == cpu:
			g.printf("It's a tie! No points given.\n")
		case beats[pick] == cpu:
			player++
			g.printf("You win this round!\n")
		default:
			computer++
			g.printf("Computer wins this round!\n")
		}
		g.printf("Scoreboard - You: %d | Computer: %d\n", player, computer)
	}

	if player == 3 {
		g.printf("Congratulations, you won the game!\n")
	} else {
		g.printf("The computer won the game. Better luck next time!\n")
	}
}

// hangmanWords is the occupation word list the hangman game draws from.
var hangmanWords = []string{
	"engineer", "doctor", "teacher", "architect", "pilot",
	"lawyer", "nurse", "carpenter", "electrician", "plumber", "chef",
	"farmer", "scientist", "accountant", "journalist", "artist",
	"mechanic", "librarian", "veterinarian", "programmer",
}

// Hangman reveals a hidden occupation word letter by letter; 5 wrong guesses
// lose the game.
func (g *Games) Hangman() {
	g.printf("Welcome to the Hangman Challenge!\n")

	word := hangmanWords[g.rng.Intn(len(hangmanWords))]
	revealed := make([]byte, len(word))
	for i := range revealed {
		revealed[i] = '_'
	}
	guessed := map[byte]bool{}

	for attempts := 5; attempts > 0; {
		g.printf("Word: %s\n", spaced(revealed))
		input := strings.ToLower(g.readLine("Guess a letter: "))
		if input == "" {
			return
		}
		if len(input) != 1 || input[0] < 'a' || input[0] > 'z' {
			g.printf("Please enter a single valid letter!\n")
			continue
		}
		letter := input[0]
		if guessed[letter] {
			g.printf("You've already guessed that letter. Try again!\n")
			continue
		}
		guessed[letter] = true

		if strings.IndexByte(word, letter) >= 0 {
			g.printf("Great! The letter is in the word!\n")
			for i := 0; i < len(word); i++ {
				if word[i] == letter {
					revealed[i] = letter
				}
			}
			if !strings.ContainsRune(string(revealed), '_') {
				g.printf("Congratulations! You've guessed the word: %s\n", word)
				return
			}
		} else {
			attempts--
			g.printf("Oops! That letter is not in the word. Attempts left: %d\n", attempts)
		}
	}

	g.printf("Game Over! The correct word was: %q\n", word)
}

type quizQuestion struct {
	question string
	options  []string
	answer   string
}

var quizBank = []quizQuestion{
	{
		question: "What is the capital of France?",
		options:  []string{"a) Berlin", "b) Madrid", "c) Paris", "d) Rome"},
		answer:   "c",
	},
	{
		question: "Which programming language is used for web development?",
		options:  []string{"a) Python", "b) JavaScript", "c) C++", "d) Ruby"},
		answer:   "b",
	},
	{
		question: "What is the largest planet in our solar system?",
		options:  []string{"a) Earth", "b) Mars", "c) Jupiter", "d) Venus"},
		answer:   "c",
	},
	{
		question: "Which element has the chemical symbol 'O'?",
		options:  []string{"a) Oxygen", "b) Gold", "c) Osmium", "d) Iron"},
		answer:   "a",
	},
	{
		question: "What is the main ingredient in guacamole?",
		options:  []string{"a) Tomato", "b) Avocado", "c) Cucumber", "d) Onion"},
		answer:   "b",
	},
}

// Quiz walks the fixed question bank and reports the final score.
func (g *Games) Quiz() {
	g.printf("Welcome to the Quiz Challenge!\n")

	score := 0
	for i, q := range quizBank {
		g.printf("\nQuestion %d: %s\n", i+1, q.question)
		for _, o := range q.options {
			g.printf("%s\n", o)
		}

		var answer string
		for {
			answer = strings.ToLower(g.readLine("Enter your answer (a, b, c, or d): "))
			if answer == "" {
				return
			}
			if len(answer) == 1 && strings.Contains("abcd", answer) {
				break
			}
			g.printf("Invalid choice! Please enter a valid option (a, b, c, or d).\n")
		}

		if answer == q.answer {
			score++
			g.printf("Correct! You earned a point. Current score: %d\n", score)
		} else {
			g.printf("Oops! Wrong answer. No points this time.\n")
		}
	}

	g.printf("\nQuiz completed! Your final score: %d/%d\n", score, len(quizBank))
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func equalSets(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func spaced(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = string(c)
	}
	return strings.Join(parts, " ")
}
