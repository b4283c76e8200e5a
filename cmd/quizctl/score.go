package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"style-finder/internal/domain"
	"style-finder/internal/service"
)

// responsesFile mirrors the POST /assessments body.
type responsesFile struct {
	Name          string          `json:"name"`
	ParticipantID string          `json:"participant_id"`
	Responses     []domain.Answer `json:"responses"`
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a saved set of responses and write the report",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("responses")
		if path == "" {
			return fmt.Errorf("--responses is required")
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read responses: %w", err)
		}
		var in responsesFile
		if err := json.Unmarshal(raw, &in); err != nil {
			return fmt.Errorf("decode responses: %w", err)
		}
		if v, _ := cmd.Flags().GetString("name"); v != "" {
			in.Name = v
		}
		if v, _ := cmd.Flags().GetString("participant"); v != "" {
			in.ParticipantID = v
		}

		rt, err := newRuntime(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		rep, err := rt.svc.Submit(cmd.Context(), service.Submission{
			AccessSecret:  rt.cfg.AccessSecret,
			Name:          in.Name,
			ParticipantID: in.ParticipantID,
			Answers:       in.Responses,
		})
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), rep)
		return nil
	},
}

func init() {
	scoreCmd.Flags().String("responses", "", "JSON file with name, participant_id and responses")
	scoreCmd.Flags().String("name", "", "Participant name (overrides the file)")
	scoreCmd.Flags().String("participant", "", "Participant id (overrides the file)")
}
