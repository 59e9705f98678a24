package repository

import (
	"github.com/Astemirdum/library-circulation/circulation/internal/model"
)

type Predicate[T any] func(T) bool

func BookByISBN(isbn string) Predicate[*model.Book] {
	return func(b *model.Book) bool {
		return b.ISBN == isbn
	}
}

func AvailableBookByISBN(isbn string) Predicate[*model.Book] {
	return func(b *model.Book) bool {
		return b.ISBN == isbn && b.IsAvailable
	}
}

func UserByID(id int) Predicate[*model.User] {
	return func(u *model.User) bool {
		return u.ID == id
	}
}

// OutstandingLoan matches a loan of isbn by userID that has not been returned yet.
func OutstandingLoan(userID int, isbn string) Predicate[*model.Loan] {
	return func(l *model.Loan) bool {
		return l.User.ID == userID && l.Book.ISBN == isbn && l.IsOutstanding()
	}
}
