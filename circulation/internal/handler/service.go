package handler

import (
	"context"

	"github.com/Astemirdum/library-circulation/circulation/internal/model"
	"github.com/Astemirdum/library-circulation/circulation/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CirculationService interface {
	RegisterBook(ctx context.Context, title, author, isbn string) (model.Book, error)
	RegisterUser(ctx context.Context, name string, id int) (model.User, error)
	BorrowBook(ctx context.Context, userID int, isbn string, days int) (model.Loan, error)
	ReturnBook(ctx context.Context, userID int, isbn string) (model.ReturnReceipt, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListLoans(ctx context.Context) ([]model.Loan, error)
	ListOverdueLoans(ctx context.Context) ([]model.Loan, error)
}

var _ CirculationService = (*service.Service)(nil)
