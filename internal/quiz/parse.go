package quiz

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lectern/internal/services"
	"lectern/internal/services/llm"
)

// Option labels in display order.
var Labels = [4]string{"A", "B", "C", "D"}

// Choice is one labelled answer option.
type Choice struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question is a parsed multiple-choice question.
type Question struct {
	Number  int      `json:"number"`
	Prompt  string   `json:"prompt"`
	Options []Choice `json:"options"`
	Answer  string   `json:"answer"`
}

var (
	questionLine = regexp.MustCompile(`^(?:Q(?:uestion)?\s*)?(\d+)\s*[.):]\s*(.+)$`)
	optionLine   = regexp.MustCompile(`^\(?([A-Da-d])[.)]\s*(.*)$`)
	answerLine   = regexp.MustCompile(`(?i)^(?:correct\s+)?answer\s*[:\-]\s*\(?([A-D])\b`)
	emphasis     = strings.NewReplacer("**", "", "__", "")
)

// Parse extracts well-formed questions from raw quiz text. Malformed blocks
// are skipped and described in the returned error; a non-nil error therefore
// does not mean questions is empty. When nothing parses at all the error
// carries services.ErrEmptyResult.
func Parse(raw string) ([]Question, error) {
	var (
		questions []Question
		problems  []error
		current   *Question
	)
	flush := func() {
		if current == nil {
			return
		}
		if err := validateQuestion(*current); err != nil {
			problems = append(problems, err)
		} else {
			questions = append(questions, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(llm.StripCodeFence(raw), "\n") {
		line = strings.TrimSpace(emphasis.Replace(line))
		if line == "" {
			continue
		}
		if m := answerLine.FindStringSubmatch(line); m != nil {
			if current != nil {
				current.Answer = strings.ToUpper(m[1])
			}
			continue
		}
		if m := optionLine.FindStringSubmatch(line); m != nil && current != nil && current.Answer == "" {
			current.Options = append(current.Options, Choice{Label: strings.ToUpper(m[1]), Text: strings.TrimSpace(m[2])})
			continue
		}
		if m := questionLine.FindStringSubmatch(line); m != nil {
			flush()
			number, _ := strconv.Atoi(m[1])
			current = &Question{Number: number, Prompt: strings.TrimSpace(m[2])}
			continue
		}
		if current != nil && len(current.Options) == 0 {
			// Prompt continued on the next line.
			current.Prompt = strings.TrimSpace(current.Prompt + " " + line)
		}
	}
	flush()

	if len(questions) == 0 && len(problems) == 0 {
		return nil, services.Wrap(services.ErrEmptyResult, services.StageQuizzing, "parse", "no questions found", nil)
	}
	if len(questions) == 0 {
		return nil, services.Wrap(services.ErrEmptyResult, services.StageQuizzing, "parse", "no well-formed questions", errors.Join(problems...))
	}
	return questions, errors.Join(problems...)
}

func validateQuestion(q Question) error {
	if q.Prompt == "" {
		return fmt.Errorf("question %d: empty prompt", q.Number)
	}
	if len(q.Options) != len(Labels) {
		return fmt.Errorf("question %d: expected %d options, got %d", q.Number, len(Labels), len(q.Options))
	}
	for i, option := range q.Options {
		if option.Label != Labels[i] {
			return fmt.Errorf("question %d: option %d labelled %q, want %q", q.Number, i+1, option.Label, Labels[i])
		}
	}
	if q.Answer == "" {
		return fmt.Errorf("question %d: missing answer", q.Number)
	}
	return nil
}

// CheckCount reports a mismatch between requested and parsed question counts.
func CheckCount(questions []Question, requested int) error {
	if len(questions) != requested {
		return fmt.Errorf("expected %d questions, got %d", requested, len(questions))
	}
	return nil
}
