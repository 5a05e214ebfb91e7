package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	docsysSvc "branchwrite/internal/domain/services/docsystem"
)

var docCmd = &cobra.Command{
	Use:     "doc",
	Aliases: []string{"docs", "d"},
	Short:   "Manage the documents of a book",
}

var (
	docTitle string
	docType  string
	docFile  string

	importFilename string
)

var docCreateCmd = &cobra.Command{
	Use:   "create <book-id>",
	Short: "Append an empty document to a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := services.Documents.CreateDocument(cmd.Context(), &docsysSvc.CreateDocumentRequest{
			BookID:  args[0],
			Title:   docTitle,
			DocType: docType,
		})
		if err != nil {
			return err
		}
		printSuccess(cmd, "created %s %q (order %d)", doc.DocType, doc.Title, doc.Order)
		return printResult(cmd, doc)
	},
}

var docListCmd = &cobra.Command{
	Use:   "list <book-id>",
	Short: "List a book's documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := services.Documents.ListDocuments(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, docs)
	},
}

var docCatCmd = &cobra.Command{
	Use:   "cat <book-id> <doc-id>",
	Short: "Print a document's content",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := services.Documents.LoadContent(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	},
}

var docWriteCmd = &cobra.Command{
	Use:   "write <book-id> <doc-id>",
	Short: "Replace a document's content from a file or stdin",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(cmd, docFile)
		if err != nil {
			return err
		}
		if err := services.Documents.SaveContent(cmd.Context(), args[0], args[1], string(content)); err != nil {
			return err
		}
		printSuccess(cmd, "saved %s", args[1])
		return nil
	},
}

var docImportCmd = &cobra.Command{
	Use:   "import <book-id>",
	Short: "Create documents from Markdown, text, HTML or a zip of them",
	Long: `Create a document from a .md, .txt or .html file. Markdown may carry YAML
front matter setting title, doc_type and status. A .zip file creates one
document per supported entry, in entry name order.

Reading from stdin assumes Markdown unless --filename names the type.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, docFile)
		if err != nil {
			return err
		}

		filename := importFilename
		if filename == "" && docFile != "-" {
			filename = filepath.Base(docFile)
		}

		if strings.EqualFold(filepath.Ext(filename), ".zip") {
			result, err := services.Documents.ImportArchive(cmd.Context(), args[0], data)
			if err != nil {
				return err
			}
			printSuccess(cmd, "imported %d of %d files", result.Summary.Created, result.Summary.TotalFiles)
			if result.Summary.Failed > 0 {
				printHint(cmd, "%d files failed, see errors", result.Summary.Failed)
			}
			return printResult(cmd, result)
		}

		doc, err := services.Documents.ImportDocument(cmd.Context(), args[0], filename, data)
		if err != nil {
			return err
		}
		printSuccess(cmd, "imported %q (%d words)", doc.Title, doc.WordCount)
		return printResult(cmd, doc)
	},
}

var docDeleteCmd = &cobra.Command{
	Use:   "delete <book-id> <doc-id>",
	Short: "Delete a document from a book",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := services.Documents.DeleteDocument(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		printSuccess(cmd, "deleted document %s", args[1])
		return nil
	},
}

func init() {
	docCreateCmd.Flags().StringVar(&docTitle, "title", "", "document title")
	docCreateCmd.Flags().StringVar(&docType, "type", "chapter", "document type: chapter, section or note")
	_ = docCreateCmd.MarkFlagRequired("title")

	docWriteCmd.Flags().StringVarP(&docFile, "file", "f", "-", "content file (- for stdin)")
	docImportCmd.Flags().StringVarP(&docFile, "file", "f", "-", "file to import (- for stdin)")
	docImportCmd.Flags().StringVar(&importFilename, "filename", "", "filename used to pick the converter, e.g. notes.html")

	docCmd.AddCommand(
		docCreateCmd,
		docListCmd,
		docCatCmd,
		docWriteCmd,
		docImportCmd,
		docDeleteCmd,
	)
}
