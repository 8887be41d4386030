package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/swinglibrary-go/internal/ast"
	"github.com/cwbudde/swinglibrary-go/internal/parser"
	"github.com/spf13/cobra"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [locator]",
	Short: "Parse a locator string and display its AST",
	Long: `Parse a locator string and display its Abstract Syntax Tree.

If no locator is given on the command line, reads it from stdin.
Use --dump-ast to show the full tagged-variant structure instead of the
default round-tripped canonical form.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(cmd *cobra.Command, args []string) error {
	var input string
	if len(args) > 0 {
		input = args[0]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	node, err := parser.Parse(input)
	if err != nil {
		return err
	}

	if parseDumpAST {
		fmt.Println("Locator AST:")
		fmt.Println("============")
		dumpASTNode(node, 0)
	} else {
		fmt.Println(node.String())
	}
	return nil
}

func dumpASTNode(node ast.Node, indent int) {
	indentStr := ""
	for i := 0; i < indent; i++ {
		indentStr += "  "
	}

	switch n := node.(type) {
	case *ast.Cascade:
		fmt.Printf("%sCascade (%d segments)\n", indentStr, len(n.Segments))
		for i, seg := range n.Segments {
			fmt.Printf("%s  [%d] capture=%v\n", indentStr, i, seg.Capture)
			dumpASTNode(seg.Inner, indent+2)
		}
	case *ast.Css:
		fmt.Printf("%sCss (%d chains)\n", indentStr, len(n.Chains))
		for _, chain := range n.Chains {
			fmt.Printf("%s  chain: %s\n", indentStr, chain.String())
		}
	case *ast.XPath:
		fmt.Printf("%sXPath (%d steps)\n", indentStr, len(n.Steps))
		for _, step := range n.Steps {
			fmt.Printf("%s  step: %s\n", indentStr, step.String())
		}
	case *ast.Legacy:
		fmt.Printf("%sLegacy kind=%s value=%q\n", indentStr, n.Kind, n.Value)
	default:
		fmt.Printf("%s%T: %s\n", indentStr, node, node.String())
	}
}
