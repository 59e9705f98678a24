package model

import (
	"time"

	"github.com/Astemirdum/library-circulation/circulation/internal/errs"
	"github.com/google/uuid"
)

const (
	DefaultFinePerDay = 1.0

	day = 24 * time.Hour
)

type Book struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn"`
	IsAvailable bool   `json:"isAvailable"`
}

func NewBook(title, author, isbn string) *Book {
	return &Book{
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		IsAvailable: true,
	}
}

// Borrow does not check availability, callers do.
func (b *Book) Borrow() { b.IsAvailable = false }

func (b *Book) Return() { b.IsAvailable = true }

type User struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

func NewUser(name string, id int) *User {
	return &User{Name: name, ID: id}
}

type LoanStatus string

const (
	StatusOutstanding LoanStatus = "OUTSTANDING"
	StatusOverdue     LoanStatus = "OVERDUE"
	StatusReturned    LoanStatus = "RETURNED"
)

// Loan refers to a book and a user owned by their repositories.
type Loan struct {
	UID        uuid.UUID  `json:"loanUid"`
	Book       *Book      `json:"book"`
	User       *User      `json:"user"`
	LoanDate   time.Time  `json:"loanDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
}

func NewLoan(book *Book, user *User, loanDate time.Time, days int) *Loan {
	return &Loan{
		UID:      uuid.New(),
		Book:     book,
		User:     user,
		LoanDate: loanDate,
		DueDate:  loanDate.AddDate(0, 0, days),
	}
}

func (l *Loan) IsOutstanding() bool {
	return l.ReturnDate == nil
}

// MarkReturned records the return date and makes the book available again.
// ReturnDate is set once: a second call fails with errs.ErrLoanReturned.
func (l *Loan) MarkReturned(at time.Time) error {
	if !l.IsOutstanding() {
		return errs.ErrLoanReturned
	}
	l.ReturnDate = &at
	l.Book.Return()
	return nil
}

// DaysLate counts whole days between DueDate and ReturnDate, partial days dropped.
func (l *Loan) DaysLate() int {
	if l.ReturnDate == nil || !l.ReturnDate.After(l.DueDate) {
		return 0
	}
	return int(l.ReturnDate.Sub(l.DueDate) / day)
}

func (l *Loan) CalculateFine(finePerDay float64) float64 {
	return float64(l.DaysLate()) * finePerDay
}

func (l *Loan) Status(now time.Time) LoanStatus {
	switch {
	case !l.IsOutstanding():
		return StatusReturned
	case now.After(l.DueDate):
		return StatusOverdue
	default:
		return StatusOutstanding
	}
}

// Snapshot copies the loan together with its book and user.
func (l *Loan) Snapshot() Loan {
	cp := *l
	if l.Book != nil {
		book := *l.Book
		cp.Book = &book
	}
	if l.User != nil {
		user := *l.User
		cp.User = &user
	}
	if l.ReturnDate != nil {
		rd := *l.ReturnDate
		cp.ReturnDate = &rd
	}
	return cp
}

type ReturnReceipt struct {
	Loan     Loan    `json:"loan"`
	DaysLate int     `json:"daysLate"`
	Fine     float64 `json:"fine"`
}

type RegisterBookRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	ISBN   string `json:"isbn" validate:"required"`
}

type RegisterUserRequest struct {
	Name string `json:"name" validate:"required"`
	ID   int    `json:"id"`
}

type BorrowRequest struct {
	UserID int    `json:"userId"`
	ISBN   string `json:"isbn" validate:"required"`
	Days   int    `json:"days" validate:"required,gt=0"`
}

type ReturnRequest struct {
	UserID int    `json:"userId"`
	ISBN   string `json:"isbn" validate:"required"`
}
