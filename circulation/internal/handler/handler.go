package handler

import (
	"net/http"

	_ "github.com/Astemirdum/library-circulation/circulation/swagger"

	"github.com/Astemirdum/library-circulation/circulation/internal/errs"
	"github.com/Astemirdum/library-circulation/circulation/internal/model"
	md "github.com/Astemirdum/library-circulation/pkg/middleware"
	"github.com/Astemirdum/library-circulation/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	circulationSvc CirculationService
	gatherer       prometheus.Gatherer
	log            *zap.Logger
}

func New(circulationSvc CirculationService, gatherer prometheus.Gatherer, log *zap.Logger) *Handler {
	return &Handler{
		circulationSvc: circulationSvc,
		gatherer:       gatherer,
		log:            log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/books", h.RegisterBook)
	api.GET("/books", h.GetBooks)

	api.POST("/users", h.RegisterUser)
	api.GET("/users", h.GetUsers)

	api.POST("/loans", h.BorrowBook)
	api.POST("/loans/return", h.ReturnBook)
	api.GET("/loans", h.GetLoans)
	api.GET("/loans/overdue", h.GetOverdueLoans)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// RegisterBook godoc
// @Summary Register a book
// @Tags books
// @Accept json
// @Produce json
// @Param request body model.RegisterBookRequest true "book"
// @Success 201 {object} model.Book
// @Failure 400 {object} echo.HTTPError
// @Router /books [post]
func (h *Handler) RegisterBook(c echo.Context) error {
	var req model.RegisterBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	book, err := h.circulationSvc.RegisterBook(c.Request().Context(), req.Title, req.Author, req.ISBN)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, book)
}

// GetBooks godoc
// @Summary List books in registration order
// @Tags books
// @Produce json
// @Success 200 {array} model.Book
// @Router /books [get]
func (h *Handler) GetBooks(c echo.Context) error {
	books, err := h.circulationSvc.ListBooks(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, books)
}

// RegisterUser godoc
// @Summary Register a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.RegisterUserRequest true "user"
// @Success 201 {object} model.User
// @Failure 400 {object} echo.HTTPError
// @Router /users [post]
func (h *Handler) RegisterUser(c echo.Context) error {
	var req model.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	user, err := h.circulationSvc.RegisterUser(c.Request().Context(), req.Name, req.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// GetUsers godoc
// @Summary List users in registration order
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Router /users [get]
func (h *Handler) GetUsers(c echo.Context) error {
	users, err := h.circulationSvc.ListUsers(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// BorrowBook godoc
// @Summary Lend a book to a user
// @Tags loans
// @Accept json
// @Produce json
// @Param request body model.BorrowRequest true "loan"
// @Success 201 {object} model.Loan
// @Failure 400 {object} echo.HTTPError
// @Failure 409 {object} echo.HTTPError
// @Router /loans [post]
func (h *Handler) BorrowBook(c echo.Context) error {
	var req model.BorrowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	loan, err := h.circulationSvc.BorrowBook(c.Request().Context(), req.UserID, req.ISBN, req.Days)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

// ReturnBook godoc
// @Summary Return a borrowed book and charge the fine
// @Tags loans
// @Accept json
// @Produce json
// @Param request body model.ReturnRequest true "return"
// @Success 200 {object} model.ReturnReceipt
// @Failure 404 {object} echo.HTTPError
// @Router /loans/return [post]
func (h *Handler) ReturnBook(c echo.Context) error {
	var req model.ReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.circulationSvc.ReturnBook(c.Request().Context(), req.UserID, req.ISBN)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, receipt)
}

// GetLoans godoc
// @Summary List loans in creation order
// @Tags loans
// @Produce json
// @Success 200 {array} model.Loan
// @Router /loans [get]
func (h *Handler) GetLoans(c echo.Context) error {
	loans, err := h.circulationSvc.ListLoans(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

// GetOverdueLoans godoc
// @Summary List outstanding loans past their due date
// @Tags loans
// @Produce json
// @Success 200 {array} model.Loan
// @Router /loans/overdue [get]
func (h *Handler) GetOverdueLoans(c echo.Context) error {
	loans, err := h.circulationSvc.ListOverdueLoans(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrCannotBorrow):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrNoActiveLoan):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidDuration):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
