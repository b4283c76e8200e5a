package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"style-finder/internal/domain"
	"style-finder/internal/service"
)

const defaultScore = 3

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Answer the questionnaire on stdin and write the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		reader := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		secret, err := authorize(rt.svc, rt.cfg.AccessSecret, reader, out)
		if err != nil {
			return err
		}

		name, err := promptRequired(reader, out, "Name: ")
		if err != nil {
			return err
		}
		participant, err := promptRequired(reader, out, "Participant ID: ")
		if err != nil {
			return err
		}

		answers, err := askResponses(reader, out, rt.svc.Questions())
		if err != nil {
			return err
		}

		rep, err := rt.svc.Submit(cmd.Context(), service.Submission{
			AccessSecret:  secret,
			Name:          name,
			ParticipantID: participant,
			Answers:       answers,
		})
		if err != nil {
			return err
		}
		printReport(out, rep)
		return nil
	},
}

func prompt(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptRequired(r *bufio.Reader, w io.Writer, label string) (string, error) {
	for {
		v, err := prompt(r, w, label)
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
		fmt.Fprintln(w, "A value is required.")
	}
}

// askResponses asks every item in catalog order; an empty line keeps the default.
func askResponses(r *bufio.Reader, w io.Writer, items []domain.QuestionItem) ([]domain.Answer, error) {
	answers := make([]domain.Answer, 0, len(items))
	for i, item := range items {
		label := fmt.Sprintf("\n[%d/%d] %s\n%s\nScore %d-%d [%d]: ",
			i+1, len(items), item.Group, item.Text, domain.MinScore, domain.MaxScore, defaultScore)
		for {
			input, err := prompt(r, w, label)
			if err != nil {
				return nil, fmt.Errorf("question %d: %w", item.ID, err)
			}
			score, ok := parseScore(input)
			if ok {
				answers = append(answers, domain.Answer{QuestionID: item.ID, Score: score})
				break
			}
			fmt.Fprintf(w, "Enter a whole number from %d to %d.\n", domain.MinScore, domain.MaxScore)
		}
	}
	return answers, nil
}

func parseScore(input string) (int, bool) {
	if input == "" {
		return defaultScore, true
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < domain.MinScore || n > domain.MaxScore {
		return 0, false
	}
	return n, true
}
