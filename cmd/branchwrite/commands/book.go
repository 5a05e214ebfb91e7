package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	docsysSvc "branchwrite/internal/domain/services/docsystem"
)

var bookCmd = &cobra.Command{
	Use:     "book",
	Aliases: []string{"books", "b"},
	Short:   "Manage books",
}

var (
	bookName        string
	bookDescription string
	bookAuthor      string
	bookGenre       string
	clearCurrent    bool
)

var bookCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a book",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := services.Books.CreateBook(cmd.Context(), &docsysSvc.CreateBookRequest{
			Name:        bookName,
			Description: bookDescription,
			Author:      bookAuthor,
			Genre:       bookGenre,
		})
		if err != nil {
			return err
		}
		printSuccess(cmd, "created book %s", book.Config.ID)
		printHint(cmd, "add a chapter with: branchwrite doc create %s --title <title>", book.Config.ID)
		return printResult(cmd, book.Config)
	},
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books, most recently modified first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		books, err := services.Books.ListBooks(cmd.Context())
		if err != nil {
			return err
		}
		return printResult(cmd, books)
	},
}

var bookShowCmd = &cobra.Command{
	Use:   "show <book-id>",
	Short: "Show a book with its document list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		book, err := services.Books.GetBook(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printResult(cmd, book)
	},
}

var bookCurrentCmd = &cobra.Command{
	Use:   "current <book-id> [doc-id]",
	Short: "Set the book's current document, or clear it with --clear",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var docID *string
		if !clearCurrent {
			if len(args) != 2 {
				return fmt.Errorf("a document id is required unless --clear is set")
			}
			docID = &args[1]
		}

		book, err := services.Books.SetCurrentDocument(cmd.Context(), args[0], docID)
		if err != nil {
			return err
		}
		if book.CurrentDocumentID == nil {
			printSuccess(cmd, "cleared current document")
		} else {
			printSuccess(cmd, "current document is %s", *book.CurrentDocumentID)
		}
		return nil
	},
}

var bookDeleteCmd = &cobra.Command{
	Use:   "delete <book-id>",
	Short: "Delete a book and all its documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := services.Books.DeleteBook(cmd.Context(), args[0]); err != nil {
			return err
		}
		printSuccess(cmd, "deleted book %s", args[0])
		return nil
	},
}

func init() {
	bookCreateCmd.Flags().StringVar(&bookName, "name", "", "book name")
	bookCreateCmd.Flags().StringVar(&bookDescription, "description", "", "book description")
	bookCreateCmd.Flags().StringVar(&bookAuthor, "author", "", "author name")
	bookCreateCmd.Flags().StringVar(&bookGenre, "genre", "", "genre")
	_ = bookCreateCmd.MarkFlagRequired("name")

	bookCurrentCmd.Flags().BoolVar(&clearCurrent, "clear", false, "clear the current document")

	bookCmd.AddCommand(
		bookCreateCmd,
		bookListCmd,
		bookShowCmd,
		bookCurrentCmd,
		bookDeleteCmd,
	)
}
