package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcoach/internal/curriculum"
	"github.com/abhisek/mathcoach/internal/questiongen"
	"github.com/abhisek/mathcoach/internal/session"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer questions in the terminal without the full-screen app",
	Long: `Generate questions for a cycle and topic and answer them on stdin.

Each answer is graded and the worked explanation is printed. With
--adaptive, the next question is easier or harder depending on the
previous answer.`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().String("cycle", "", "Cycle: junior or senior (required)")
	askCmd.Flags().String("topic", "", "Topic: algebra, geometry, trigonometry, functions, probability (required)")
	askCmd.Flags().String("difficulty", "", "Difficulty: easy, medium or exam (turns on smart mode)")
	askCmd.Flags().Int("count", 1, "Number of questions")
	askCmd.Flags().Bool("adaptive", false, "Pick each follow-up question from the previous answer")
	_ = askCmd.MarkFlagRequired("cycle")
	_ = askCmd.MarkFlagRequired("topic")
}

func runAsk(cmd *cobra.Command, args []string) error {
	sel, err := askSelection(cmd)
	if err != nil {
		return err
	}
	count, _ := cmd.Flags().GetInt("count")

	rt, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	_, err = askLoop(cmd.Context(), rt.newMachine(), sel, count, cmd.InOrStdin(), cmd.OutOrStdout())
	return err
}

func askSelection(cmd *cobra.Command) (curriculum.Selection, error) {
	cycleVal, _ := cmd.Flags().GetString("cycle")
	topicVal, _ := cmd.Flags().GetString("topic")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	adaptive, _ := cmd.Flags().GetBool("adaptive")

	var sel curriculum.Selection
	var err error
	if sel.Cycle, err = curriculum.ParseCycle(cycleVal); err != nil {
		return sel, err
	}
	if sel.Topic, err = curriculum.ParseTopic(topicVal); err != nil {
		return sel, err
	}
	if sel.Difficulty, err = curriculum.ParseDifficulty(diffVal); err != nil {
		return sel, err
	}
	sel.SmartMode = sel.Difficulty != ""
	sel.AdaptiveMode = adaptive
	return sel, nil
}

// askLoop runs count question/answer rounds against m and returns the
// number of correct answers. A blank answer skips the question.
func askLoop(ctx context.Context, m *session.Machine, sel curriculum.Selection, count int, in io.Reader, out io.Writer) (int, error) {
	scanner := bufio.NewScanner(in)
	correct := 0
	followUp := false

	for i := 1; i <= count; i++ {
		if !followUp {
			if err := m.RequestNext(ctx, sel); err != nil {
				fmt.Fprintln(out, m.Snapshot().StatusMessage)
				var verr *questiongen.ValidationError
				if errors.As(err, &verr) {
					return correct, err
				}
				continue
			}
		}
		followUp = false

		snap := m.Snapshot()
		fmt.Fprintf(out, "── Question %d/%d ──\n%s\n\nYour answer: ", i, count, snap.Question.Prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprint(out, "(skipped)\n\n")
			continue
		}

		v, ticket, err := m.Submit(answer)
		if err != nil {
			return correct, err
		}
		if v.IsCorrect {
			correct++
		}
		fmt.Fprintln(out, v.Message)
		if err := m.ToggleHint(); err == nil {
			if q := m.Snapshot().Question; q != nil && q.Explanation != "" {
				fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
			}
		}
		fmt.Fprintln(out)

		if ticket != nil && i < count {
			if err := m.Await(ctx, ticket); err != nil {
				var ge *questiongen.GenerationError
				if errors.As(err, &ge) {
					fmt.Fprintln(out, ge.Message(true))
				}
				continue
			}
			followUp = true
		}
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, count)
	return correct, nil
}
