package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var conversationCmd = &cobra.Command{
	Use:   "conversation",
	Short: "Browse past conversations",
	Long:  `List conversations or show the full question/answer history of one.`,
}

var conversationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations",
	Args:  cobra.NoArgs,
	RunE:  runConversationList,
}

var conversationShowCmd = &cobra.Command{
	Use:   "show [conversation-id]",
	Short: "Show a conversation's turns",
	Args:  cobra.ExactArgs(1),
	RunE:  runConversationShow,
}

func init() {
	conversationCmd.AddCommand(conversationListCmd)
	conversationCmd.AddCommand(conversationShowCmd)
	rootCmd.AddCommand(conversationCmd)
}

func runConversationList(cmd *cobra.Command, _ []string) error {
	if conversationService == nil {
		return errors.New("conversation service not configured")
	}

	ctx := context.Background()

	convs, err := conversationService.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}

	if len(convs) == 0 {
		cmd.Println("No conversations yet.")
		return nil
	}

	cmd.Println("Conversations:")
	cmd.Println()
	for i := range convs {
		cmd.Printf("  %s\n", convs[i].ID)
		cmd.Printf("    Started: %s\n", convs[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Printf("    Updated: %s\n", convs[i].UpdatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d conversations\n", len(convs))
	return nil
}

func runConversationShow(cmd *cobra.Command, args []string) error {
	if conversationService == nil {
		return errors.New("conversation service not configured")
	}

	ctx := context.Background()

	turns, err := conversationService.Turns(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}

	if len(turns) == 0 {
		cmd.Println("Conversation has no turns.")
		return nil
	}

	for i, turn := range turns {
		if i > 0 {
			cmd.Println()
		}
		cmd.Printf("[%s]\n", turn.CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Printf("Q: %s\n", turn.Question)
		cmd.Printf("A: %s\n", turn.Answer)

		for j, src := range turn.Sources {
			if !src.Available {
				cmd.Printf("   [%d] %s (no longer available)\n", j+1, src.ChunkID)
				continue
			}
			cmd.Printf("   [%d] %s, chunk %d\n", j+1, src.DocumentFilename, src.ChunkIndex+1)
		}
	}

	return nil
}
