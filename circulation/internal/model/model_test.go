package model_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/library-circulation/circulation/internal/errs"
	"github.com/Astemirdum/library-circulation/circulation/internal/model"
	"github.com/stretchr/testify/require"
)

var loanDate = time.Date(2024, time.January, 10, 9, 30, 0, 0, time.UTC)

func TestBook_BorrowReturn(t *testing.T) {
	t.Parallel()
	b := model.NewBook("Clean Code", "Robert C. Martin", "978-0132350884")
	require.True(t, b.IsAvailable)

	b.Borrow()
	require.False(t, b.IsAvailable)

	b.Return()
	require.True(t, b.IsAvailable)
	b.Return()
	require.True(t, b.IsAvailable)
}

func TestNewLoan(t *testing.T) {
	t.Parallel()
	loan := model.NewLoan(model.NewBook("t", "a", "i"), model.NewUser("u", 1), loanDate, 7)

	require.Equal(t, loanDate, loan.LoanDate)
	require.Equal(t, loanDate.Add(7*24*time.Hour), loan.DueDate)
	require.Nil(t, loan.ReturnDate)
	require.True(t, loan.IsOutstanding())
	require.NotEqual(t, loan.UID, model.NewLoan(loan.Book, loan.User, loanDate, 7).UID)
}

func TestNewLoan_LongDuration(t *testing.T) {
	t.Parallel()
	loan := model.NewLoan(model.NewBook("t", "a", "i"), model.NewUser("u", 1), loanDate, 200000)

	require.True(t, loan.DueDate.After(loanDate))
	require.Equal(t, loanDate.AddDate(0, 0, 200000), loan.DueDate)

	require.NoError(t, loan.MarkReturned(loanDate.Add(time.Hour)))
	require.Zero(t, loan.DaysLate())
	require.Zero(t, loan.CalculateFine(model.DefaultFinePerDay))
}

func TestLoan_CalculateFine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		days         int
		returnAfter  time.Duration
		finePerDay   float64
		wantDaysLate int
		wantFine     float64
	}{
		{
			name:        "returned immediately",
			days:        7,
			returnAfter: 0,
			finePerDay:  model.DefaultFinePerDay,
		},
		{
			name:        "returned exactly on due date",
			days:        7,
			returnAfter: 7 * 24 * time.Hour,
			finePerDay:  model.DefaultFinePerDay,
		},
		{
			name:        "less than a day late",
			days:        7,
			returnAfter: 7*24*time.Hour + 23*time.Hour,
			finePerDay:  model.DefaultFinePerDay,
		},
		{
			name:         "three days late",
			days:         7,
			returnAfter:  10 * 24 * time.Hour,
			finePerDay:   model.DefaultFinePerDay,
			wantDaysLate: 3,
			wantFine:     3,
		},
		{
			name:         "partial day truncated",
			days:         1,
			returnAfter:  3*24*time.Hour + 5*time.Hour,
			finePerDay:   model.DefaultFinePerDay,
			wantDaysLate: 2,
			wantFine:     2,
		},
		{
			name:         "custom rate",
			days:         0,
			returnAfter:  4 * 24 * time.Hour,
			finePerDay:   0.5,
			wantDaysLate: 4,
			wantFine:     2,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			loan := model.NewLoan(model.NewBook("t", "a", "i"), model.NewUser("u", 1), loanDate, tt.days)
			require.NoError(t, loan.MarkReturned(loanDate.Add(tt.returnAfter)))

			require.Equal(t, tt.wantDaysLate, loan.DaysLate())
			require.Equal(t, tt.wantFine, loan.CalculateFine(tt.finePerDay))
		})
	}
}

func TestLoan_CalculateFine_Outstanding(t *testing.T) {
	t.Parallel()
	loan := model.NewLoan(model.NewBook("t", "a", "i"), model.NewUser("u", 1), loanDate.AddDate(0, 0, -30), 7)
	require.Zero(t, loan.CalculateFine(model.DefaultFinePerDay))
}

func TestLoan_MarkReturned(t *testing.T) {
	t.Parallel()
	book := model.NewBook("t", "a", "i")
	book.Borrow()
	loan := model.NewLoan(book, model.NewUser("u", 1), loanDate, 7)

	first := loanDate.Add(24 * time.Hour)
	require.NoError(t, loan.MarkReturned(first))
	require.True(t, book.IsAvailable)
	require.False(t, loan.IsOutstanding())

	book.Borrow()
	err := loan.MarkReturned(first.Add(48 * time.Hour))
	require.ErrorIs(t, err, errs.ErrLoanReturned)
	require.Equal(t, first, *loan.ReturnDate)
	require.False(t, book.IsAvailable)
}

func TestLoan_Status(t *testing.T) {
	t.Parallel()
	loan := model.NewLoan(model.NewBook("t", "a", "i"), model.NewUser("u", 1), loanDate, 7)

	require.Equal(t, model.StatusOutstanding, loan.Status(loanDate.Add(24*time.Hour)))
	require.Equal(t, model.StatusOutstanding, loan.Status(loan.DueDate))
	require.Equal(t, model.StatusOverdue, loan.Status(loan.DueDate.Add(time.Minute)))

	require.NoError(t, loan.MarkReturned(loan.DueDate.Add(time.Hour)))
	require.Equal(t, model.StatusReturned, loan.Status(loan.DueDate.Add(time.Hour)))
}

func TestLoan_Snapshot(t *testing.T) {
	t.Parallel()
	loan := model.NewLoan(model.NewBook("t", "a", "i"), model.NewUser("u", 1), loanDate, 7)
	loan.Book.Borrow()

	snap := loan.Snapshot()
	require.NoError(t, loan.MarkReturned(loanDate))

	require.Equal(t, loan.UID, snap.UID)
	require.False(t, snap.Book.IsAvailable)
	require.Nil(t, snap.ReturnDate)
	require.True(t, loan.Book.IsAvailable)
}
