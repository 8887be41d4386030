package cmd

import (
	"fmt"

	"github.com/cwbudde/swinglibrary-go/swinglib"
	"github.com/cwbudde/swinglibrary-go/tree"
	"github.com/spf13/cobra"
)

var (
	treeAddr     string
	treeScope    string
	treeFormat   string
	treeMaxDepth int
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Connect to a running agent and dump its widget tree",
	RunE:  runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().StringVar(&treeAddr, "addr", "127.0.0.1:5678", "agent address (host:port; 5678 Swing default, 5679 SWT/RCP)")
	treeCmd.Flags().StringVar(&treeScope, "scope", "", "locator narrowing the dump to one component's subtree")
	treeCmd.Flags().StringVar(&treeFormat, "format", "text", "output format: text, json")
	treeCmd.Flags().IntVar(&treeMaxDepth, "max-depth", -1, "maximum depth to print (0 = root only, negative = unbounded)")
}

func runTree(cmd *cobra.Command, args []string) error {
	session := swinglib.NewSession()
	if err := session.Connect(treeAddr); err != nil {
		return err
	}
	defer session.Disconnect()

	out, err := session.Tree(treeScope, tree.Format(treeFormat), treeMaxDepth)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
