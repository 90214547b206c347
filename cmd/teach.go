package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/potato4751/teaching-ai-validator/internal/llm"
	"github.com/potato4751/teaching-ai-validator/internal/session"
	"github.com/potato4751/teaching-ai-validator/internal/store"
)

// teachCmd is the plain-stdin alternative to the TUI, useful over ssh
// and in scripts.
var teachCmd = &cobra.Command{
	Use:   "teach <topic>",
	Short: "Teach a topic from the terminal without the TUI",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		topicName := strings.Join(args, " ")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		eventRepo := st.EventRepo()
		provider, err := llm.NewProviderFromEnv(ctx, eventRepo)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Running with canned questions; fact-checking disabled.")
			provider = llm.NewMockProvider()
		}

		svc := buildService(provider, eventRepo)

		start, err := svc.StartTeaching(ctx, topicName)
		if err != nil {
			return err
		}
		fmt.Printf("Learner: %s\n\n", start.OpeningQuestion)

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 64*1024), 64*1024)

		for {
			fmt.Print("You: ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "/quit" || line == "/exit" {
				break
			}
			if line == "/progress" {
				printProgress(svc)
				continue
			}

			step, err := svc.TeachStep(ctx, line)
			if err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
				continue
			}
			fmt.Printf("\nLearner: %s\n", step.AIResponse)
			fmt.Printf("         (quality %.2f)\n\n", step.QualityScore)
		}

		fmt.Println()
		printProgress(svc)
		return scanner.Err()
	},
}

func printProgress(svc *session.Service) {
	p := svc.Progress()
	fmt.Printf("Exchanges: %d   Avg quality: %.2f   Trend: %s\n", p.Exchanges, p.AverageQuality, p.Trend)
	fmt.Printf("Difficulty: %d/3   Corrections: %d   Duration: %.1f min\n", p.Difficulty, p.CorrectionsMade, p.DurationMinutes)
	if p.CorrectionMode {
		fmt.Println("A correction is still in progress.")
	}
}
