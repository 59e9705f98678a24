package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/Astemirdum/library-circulation/circulation/internal/errs"
	"github.com/Astemirdum/library-circulation/circulation/internal/model"
	"github.com/Astemirdum/library-circulation/circulation/internal/notify"
	"github.com/Astemirdum/library-circulation/circulation/internal/publisher"
	"github.com/Astemirdum/library-circulation/circulation/internal/repository"
	"github.com/Astemirdum/library-circulation/pkg/clock"
	"github.com/Astemirdum/library-circulation/pkg/kafka"
	"github.com/Astemirdum/library-circulation/pkg/metrics"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	subjectNewBook = "New Book"
	subjectWelcome = "Welcome"
	subjectLoan    = "Loan"
	subjectFine    = "Fine"
)

type Service struct {
	// mu serializes the lookup-then-mutate sequences of borrow and return
	// and guards the fields of stored entities.
	mu sync.RWMutex

	books    repository.Repository[*model.Book]
	users    repository.Repository[*model.User]
	loans    repository.Repository[*model.Loan]
	notifier notify.Notifier

	publisher  publisher.Publisher
	clock      clock.Clock
	metrics    *metrics.Collector
	finePerDay float64
	log        *zap.Logger
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

func WithPublisher(p publisher.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithMetrics(m *metrics.Collector) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithFinePerDay(fine float64) Option {
	return func(s *Service) {
		s.finePerDay = fine
	}
}

func NewService(
	books repository.Repository[*model.Book],
	users repository.Repository[*model.User],
	loans repository.Repository[*model.Loan],
	notifier notify.Notifier,
	log *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		books:      books,
		users:      users,
		loans:      loans,
		notifier:   notifier,
		publisher:  publisher.NewNopPublisher(),
		clock:      clock.New(),
		metrics:    metrics.New(nil),
		finePerDay: model.DefaultFinePerDay,
		log:        log.Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterBook stores a new available book and announces it to everyone.
// Duplicate ISBNs are accepted.
func (s *Service) RegisterBook(ctx context.Context, title, author, isbn string) (model.Book, error) {
	book := model.NewBook(title, author, isbn)
	snapshot := *book

	s.mu.Lock()
	err := s.books.Add(ctx, book)
	s.mu.Unlock()
	if err != nil {
		return model.Book{}, errors.Wrap(err, "books.Add")
	}

	s.metrics.BooksRegistered.Inc()
	s.log.Info("book registered", zap.String("isbn", isbn), zap.String("title", title))
	s.notifier.Notify(ctx, notify.Broadcast(), subjectNewBook, fmt.Sprintf("%s registered in the library.", title))
	return snapshot, nil
}

// RegisterUser stores a new user and welcomes them. Duplicate ids are accepted.
func (s *Service) RegisterUser(ctx context.Context, name string, id int) (model.User, error) {
	user := model.NewUser(name, id)

	s.mu.Lock()
	err := s.users.Add(ctx, user)
	s.mu.Unlock()
	if err != nil {
		return model.User{}, errors.Wrap(err, "users.Add")
	}

	s.metrics.UsersRegistered.Inc()
	s.log.Info("user registered", zap.Int("userID", id))
	s.notifier.Notify(ctx, notify.Personal(user), subjectWelcome, "You have been registered in the library.")
	return *user, nil
}

// BorrowBook lends the first available copy of isbn to userID for days.
// An unknown user and a missing or lent book both yield errs.ErrCannotBorrow
// and leave every entity untouched.
func (s *Service) BorrowBook(ctx context.Context, userID int, isbn string, days int) (model.Loan, error) {
	if days <= 0 {
		return model.Loan{}, errors.Wrapf(errs.ErrInvalidDuration, "days=%d", days)
	}

	loan, err := s.lend(ctx, userID, isbn, days)
	if err != nil {
		s.metrics.Loans.WithLabelValues(metrics.ResultRejected).Inc()
		s.log.Debug("borrow rejected", zap.Int("userID", userID), zap.String("isbn", isbn), zap.Error(err))
		return model.Loan{}, err
	}

	s.metrics.Loans.WithLabelValues(metrics.ResultOK).Inc()
	s.log.Info("book borrowed",
		zap.Stringer("loanUID", loan.UID),
		zap.Int("userID", userID),
		zap.String("isbn", isbn),
		zap.Time("dueDate", loan.DueDate))
	s.notifier.Notify(ctx, notify.Personal(loan.User), subjectLoan, fmt.Sprintf("You borrowed: %s", loan.Book.Title))
	s.publish(ctx, s.loanEvent(kafka.EventLoanCreated, loan, 0, 0))
	return loan, nil
}

func (s *Service) lend(ctx context.Context, userID int, isbn string, days int) (model.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.Get(ctx, repository.UserByID(userID))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Loan{}, errors.Wrapf(errs.ErrCannotBorrow, "user %d not found", userID)
		}
		return model.Loan{}, errors.Wrap(err, "users.Get")
	}
	book, err := s.books.Get(ctx, repository.AvailableBookByISBN(isbn))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Loan{}, errors.Wrapf(errs.ErrCannotBorrow, "book %s not available", isbn)
		}
		return model.Loan{}, errors.Wrap(err, "books.Get")
	}

	book.Borrow()
	loan := model.NewLoan(book, user, s.clock.Now(), days)
	if err := s.loans.Add(ctx, loan); err != nil {
		book.Return()
		return model.Loan{}, errors.Wrap(err, "loans.Add")
	}
	return loan.Snapshot(), nil
}

// ReturnBook closes the outstanding loan of isbn by userID and charges the fine.
// Without such a loan it fails with errs.ErrNoActiveLoan and changes nothing.
func (s *Service) ReturnBook(ctx context.Context, userID int, isbn string) (model.ReturnReceipt, error) {
	receipt, err := s.takeBack(ctx, userID, isbn)
	if err != nil {
		if errors.Is(err, errs.ErrNoActiveLoan) {
			s.metrics.Returns.WithLabelValues(metrics.ResultNotFound).Inc()
		}
		return model.ReturnReceipt{}, err
	}

	s.log.Info("book returned",
		zap.Stringer("loanUID", receipt.Loan.UID),
		zap.Int("userID", userID),
		zap.String("isbn", isbn),
		zap.Int("daysLate", receipt.DaysLate),
		zap.Float64("fine", receipt.Fine))
	if receipt.Fine > 0 {
		s.metrics.Returns.WithLabelValues(metrics.ResultLate).Inc()
		s.metrics.Fines.Add(receipt.Fine)
		s.notifier.Notify(ctx, notify.Personal(receipt.Loan.User), subjectFine,
			fmt.Sprintf("You have a fine of %s", strconv.FormatFloat(receipt.Fine, 'f', -1, 64)))
	} else {
		s.metrics.Returns.WithLabelValues(metrics.ResultOnTime).Inc()
	}
	s.publish(ctx, s.loanEvent(kafka.EventLoanReturned, receipt.Loan, receipt.DaysLate, receipt.Fine))
	return receipt, nil
}

func (s *Service) takeBack(ctx context.Context, userID int, isbn string) (model.ReturnReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, err := s.loans.Get(ctx, repository.OutstandingLoan(userID, isbn))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.ReturnReceipt{}, errors.Wrapf(errs.ErrNoActiveLoan, "user %d, isbn %s", userID, isbn)
		}
		return model.ReturnReceipt{}, errors.Wrap(err, "loans.Get")
	}
	if err := loan.MarkReturned(s.clock.Now()); err != nil {
		return model.ReturnReceipt{}, err
	}
	return model.ReturnReceipt{
		Loan:     loan.Snapshot(),
		DaysLate: loan.DaysLate(),
		Fine:     loan.CalculateFine(s.finePerDay),
	}, nil
}

func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books, err := s.books.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "books.GetAll")
	}
	items := make([]model.Book, 0, len(books))
	for _, b := range books {
		items = append(items, *b)
	}
	return items, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "users.GetAll")
	}
	items := make([]model.User, 0, len(users))
	for _, u := range users {
		items = append(items, *u)
	}
	return items, nil
}

func (s *Service) ListLoans(ctx context.Context) ([]model.Loan, error) {
	return s.listLoans(ctx, func(*model.Loan) bool { return true })
}

// ListOverdueLoans returns outstanding loans whose due date has passed.
func (s *Service) ListOverdueLoans(ctx context.Context) ([]model.Loan, error) {
	now := s.clock.Now()
	return s.listLoans(ctx, func(l *model.Loan) bool {
		return l.Status(now) == model.StatusOverdue
	})
}

func (s *Service) listLoans(ctx context.Context, keep func(*model.Loan) bool) ([]model.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loans, err := s.loans.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loans.GetAll")
	}
	items := make([]model.Loan, 0, len(loans))
	for _, l := range loans {
		if keep(l) {
			items = append(items, l.Snapshot())
		}
	}
	return items, nil
}

func (s *Service) loanEvent(typ kafka.EventType, loan model.Loan, daysLate int, fine float64) kafka.EventCirculation {
	return kafka.EventCirculation{
		EventID:   uuid.NewString(),
		EventType: typ,
		Timestamp: s.clock.Now(),
		LoanUID:   loan.UID.String(),
		UserID:    loan.User.ID,
		ISBN:      loan.Book.ISBN,
		DueDate:   loan.DueDate,
		DaysLate:  daysLate,
		Fine:      fine,
	}
}

// publish logs and drops publisher errors.
func (s *Service) publish(ctx context.Context, event kafka.EventCirculation) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publisher.Publish",
			zap.String("type", string(event.EventType)),
			zap.String("loanUID", event.LoanUID),
			zap.Error(err))
	}
}
