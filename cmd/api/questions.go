package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/interview-coach/internal/logz"
	"alfredoptarigan/interview-coach/internal/services"
)

var questionsCmd = &cobra.Command{
	Use:   "questions <resume.pdf>",
	Short: "Print the interview questions generated for a resume",
	Long:  "Extracts a local resume PDF and asks the configured models for questions, without touching the database.",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestions,
}

func init() {
	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logz.Drop()

	text, err := services.NewPDFParserService().ExtractText(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	gateway, err := newGateway(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	questions := services.NewCoachService(gateway).GenerateQuestions(cmd.Context(), services.ToStructuredResume(text))
	if len(questions) == 0 {
		return fmt.Errorf("could not generate questions")
	}

	out, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
