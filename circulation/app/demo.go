package app

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/Astemirdum/library-circulation/circulation/internal/model"
	"github.com/pkg/errors"
)

type circulation interface {
	RegisterBook(ctx context.Context, title, author, isbn string) (model.Book, error)
	RegisterUser(ctx context.Context, name string, id int) (model.User, error)
	BorrowBook(ctx context.Context, userID int, isbn string, days int) (model.Loan, error)
	ReturnBook(ctx context.Context, userID int, isbn string) (model.ReturnReceipt, error)
}

// RunDemo registers a book and a reader, lends the book for a week and takes
// it straight back, then prints the fine to w.
func RunDemo(ctx context.Context, svc circulation, w io.Writer) error {
	book, err := svc.RegisterBook(ctx, "Clean Code", "Robert C. Martin", "978-0132350884")
	if err != nil {
		return errors.Wrap(err, "RegisterBook")
	}
	user, err := svc.RegisterUser(ctx, "João Silva", 1)
	if err != nil {
		return errors.Wrap(err, "RegisterUser")
	}
	if _, err = svc.BorrowBook(ctx, user.ID, book.ISBN, 7); err != nil {
		return errors.Wrap(err, "BorrowBook")
	}
	receipt, err := svc.ReturnBook(ctx, user.ID, book.ISBN)
	if err != nil {
		return errors.Wrap(err, "ReturnBook")
	}
	_, err = fmt.Fprintf(w, "Fine charged: %s\n", strconv.FormatFloat(receipt.Fine, 'f', -1, 64))
	return err
}
