package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cubekit/cubekit"
	"github.com/cubekit/cubekit/internal/storage"
)

var shareCmd = &cobra.Command{
	Use:   "share <name>",
	Short: "Create a shareable configuration from a saved state",
	Long: `Wrap a saved state in a versioned, checksummed envelope that other
cubekit users can import. The envelope prints to stdout unless -o is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runShare,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a shareable configuration",
	Long: `Import a shareable configuration from a file. The envelope checksum is
verified and the state is structurally validated before saving.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	shareOutput      string
	shareDescription string
	importStateName  string
)

func init() {
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(importCmd)
	shareCmd.Flags().StringVarP(&shareOutput, "output", "o", "", "Write the envelope to a file instead of stdout")
	shareCmd.Flags().StringVar(&shareDescription, "description", "", "Description to embed in the envelope")
	importCmd.Flags().StringVar(&importStateName, "state", "", "Name to save the imported state under (default: imported)")
}

func runShare(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	state, err := loadOrSolved(db, args[0], false)
	if err != nil {
		return err
	}

	envelope, err := cubekit.CreateShareableConfiguration(state, cubekit.ShareMetadata{
		Description: shareDescription,
	})
	if err != nil {
		return err
	}

	if shareOutput == "" {
		fmt.Println(envelope)
		return nil
	}
	if err := os.WriteFile(shareOutput, []byte(envelope), 0644); err != nil {
		return fmt.Errorf("failed to write envelope: %w", err)
	}
	fmt.Printf("Wrote shareable configuration to %s\n", shareOutput)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read envelope: %w", err)
	}

	result := cubekit.ImportShareableConfiguration(string(data))
	for _, w := range result.Warnings {
		fmt.Println(statusStyle.Render("warning: " + w))
	}
	if !result.Success {
		for _, e := range result.Errors {
			fmt.Println(errorStyle.Render(e))
		}
		return fmt.Errorf("import failed")
	}

	name := importStateName
	if name == "" {
		name = "imported"
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := storage.NewStateRepository(db).Save(name, result.State); err != nil {
		return err
	}

	fmt.Printf("Imported state saved as %q\n", name)
	fmt.Println()
	fmt.Print(RenderState(result.State))
	fmt.Println()
	fmt.Println(renderSummary(result.State))
	return nil
}
